package markets

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/0xBased-lang/kektech/models"
)

// repository implements the Repository interface using GORM
type repository struct {
	db *gorm.DB
}

// NewRepository creates a new market repository
func NewRepository(db *gorm.DB) Repository {
	return &repository{
		db: db,
	}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	return &repository{db: tx}
}

// GetByID returns a market by ID with its resolution record
func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*models.Market, error) {
	var market models.Market
	err := r.db.WithContext(ctx).
		Preload("Resolution").
		Where("id = ?", id).
		First(&market).Error
	if err != nil {
		return nil, err
	}
	return &market, nil
}

// GetByIDForUpdate returns a market by ID under a row lock for mutation
func (r *repository) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*models.Market, error) {
	var market models.Market
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		First(&market).Error
	if err != nil {
		return nil, err
	}
	return &market, nil
}

// List returns paginated markets with optional status filter
func (r *repository) List(ctx context.Context, filters *MarketFilters) ([]models.Market, int64, error) {
	var result []models.Market
	var total int64

	query := r.db.WithContext(ctx).Model(&models.Market{})
	if filters != nil && filters.Status != "" {
		query = query.Where("status = ?", filters.Status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page, perPage := 1, 20
	if filters != nil {
		if filters.Page > 0 {
			page = filters.Page
		}
		if filters.PerPage > 0 && filters.PerPage <= 100 {
			perPage = filters.PerPage
		}
	}

	err := query.
		Order("created_at DESC").
		Offset((page - 1) * perPage).
		Limit(perPage).
		Find(&result).Error
	return result, total, err
}

// Create persists a new market
func (r *repository) Create(ctx context.Context, market *models.Market) error {
	return r.db.WithContext(ctx).Create(market).Error
}

// Update persists market changes
func (r *repository) Update(ctx context.Context, market *models.Market) error {
	return r.db.WithContext(ctx).Save(market).Error
}

// GetPosition returns the participant's position in a market, if any
func (r *repository) GetPosition(ctx context.Context, marketID, participantID uuid.UUID) (*models.Position, error) {
	var position models.Position
	err := r.db.WithContext(ctx).
		Where("market_id = ? AND participant_id = ?", marketID, participantID).
		First(&position).Error
	if err != nil {
		return nil, err
	}
	return &position, nil
}

// GetPositionsByMarket returns all positions recorded against a market
func (r *repository) GetPositionsByMarket(ctx context.Context, marketID uuid.UUID) ([]models.Position, error) {
	var positions []models.Position
	err := r.db.WithContext(ctx).
		Where("market_id = ?", marketID).
		Order("created_at ASC").
		Find(&positions).Error
	return positions, err
}

// ListVoidCandidates returns markets still ACTIVE whose resolution deadline
// passed before the cutoff, i.e. abandoned by their resolver.
func (r *repository) ListVoidCandidates(ctx context.Context, deadlineBefore time.Time) ([]models.Market, error) {
	var result []models.Market
	err := r.db.WithContext(ctx).
		Where("status = ? AND resolution_deadline < ?", models.MarketStatusActive, deadlineBefore).
		Find(&result).Error
	return result, err
}

// CreateAuditLog persists an audit entry
func (r *repository) CreateAuditLog(ctx context.Context, entry *models.AuditLog) error {
	return r.db.WithContext(ctx).Create(entry).Error
}
