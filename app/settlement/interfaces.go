package settlement

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/0xBased-lang/kektech/models"
)

// Repository defines the interface for settlement data access
type Repository interface {
	WithTx(tx *gorm.DB) Repository

	GetMarket(ctx context.Context, id uuid.UUID) (*models.Market, error)
	GetMarketForUpdate(ctx context.Context, id uuid.UUID) (*models.Market, error)
	UpdateMarket(ctx context.Context, market *models.Market) error

	GetPosition(ctx context.Context, marketID, participantID uuid.UUID) (*models.Position, error)
	GetPositionForUpdate(ctx context.Context, marketID, participantID uuid.UUID) (*models.Position, error)
	UpdatePosition(ctx context.Context, position *models.Position) error

	GetWalletForUpdate(ctx context.Context, participantID uuid.UUID) (*models.Wallet, error)
	UpdateWallet(ctx context.Context, wallet *models.Wallet) error
	CreateTransaction(ctx context.Context, txn *models.Transaction) error

	Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service defines the interface for claim business logic
type Service interface {
	PreviewClaim(ctx context.Context, marketID, participantID uuid.UUID) (*ClaimPreviewResponse, error)
	Claim(ctx context.Context, marketID, participantID uuid.UUID) (*ClaimResponse, error)
}

// EntryGuard serializes claims per market within a single process.
type EntryGuard interface {
	TryAcquire(id uuid.UUID) bool
	Release(id uuid.UUID)
}
