package resolution

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/0xBased-lang/kektech/models"
)

type repository struct {
	db *gorm.DB
}

// NewRepository creates a new resolution repository
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	return &repository{db: tx}
}

func (r *repository) GetMarket(ctx context.Context, id uuid.UUID) (*models.Market, error) {
	var market models.Market
	err := r.db.WithContext(ctx).First(&market, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &market, nil
}

func (r *repository) GetMarketForUpdate(ctx context.Context, id uuid.UUID) (*models.Market, error) {
	var market models.Market
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&market, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &market, nil
}

func (r *repository) UpdateMarket(ctx context.Context, market *models.Market) error {
	return r.db.WithContext(ctx).Save(market).Error
}

func (r *repository) GetResolutionByMarket(ctx context.Context, marketID uuid.UUID) (*models.ResolutionRecord, error) {
	var record models.ResolutionRecord
	err := r.db.WithContext(ctx).First(&record, "market_id = ?", marketID).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *repository) GetResolutionForUpdate(ctx context.Context, marketID uuid.UUID) (*models.ResolutionRecord, error) {
	var record models.ResolutionRecord
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&record, "market_id = ?", marketID).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *repository) CreateResolution(ctx context.Context, record *models.ResolutionRecord) error {
	return r.db.WithContext(ctx).Create(record).Error
}

func (r *repository) UpdateResolution(ctx context.Context, record *models.ResolutionRecord) error {
	return r.db.WithContext(ctx).Save(record).Error
}

func (r *repository) GetWalletForUpdate(ctx context.Context, participantID uuid.UUID) (*models.Wallet, error) {
	var wallet models.Wallet
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&wallet, "participant_id = ?", participantID).Error
	if err != nil {
		return nil, err
	}
	return &wallet, nil
}

func (r *repository) UpdateWallet(ctx context.Context, wallet *models.Wallet) error {
	return r.db.WithContext(ctx).Save(wallet).Error
}

func (r *repository) CreateTransaction(ctx context.Context, txn *models.Transaction) error {
	return r.db.WithContext(ctx).Create(txn).Error
}

func (r *repository) CreateAuditLog(ctx context.Context, entry *models.AuditLog) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *repository) Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return r.db.WithContext(ctx).Transaction(fn)
}
