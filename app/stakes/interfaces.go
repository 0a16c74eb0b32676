package stakes

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/0xBased-lang/kektech/models"
)

// Repository defines the interface for stake data access
type Repository interface {
	WithTx(tx *gorm.DB) Repository

	GetMarket(ctx context.Context, id uuid.UUID) (*models.Market, error)
	GetMarketForUpdate(ctx context.Context, id uuid.UUID) (*models.Market, error)
	UpdateMarket(ctx context.Context, market *models.Market) error

	GetPosition(ctx context.Context, marketID, participantID uuid.UUID) (*models.Position, error)
	GetPositionsByParticipant(ctx context.Context, participantID uuid.UUID) ([]models.Position, error)
	SavePosition(ctx context.Context, position *models.Position) error

	GetWalletForUpdate(ctx context.Context, participantID uuid.UUID) (*models.Wallet, error)
	UpdateWallet(ctx context.Context, wallet *models.Wallet) error
	CreateTransaction(ctx context.Context, txn *models.Transaction) error

	Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service defines the interface for stake placement business logic
type Service interface {
	PlaceStake(ctx context.Context, marketID, participantID uuid.UUID, req *PlaceStakeRequest) (*StakeResponse, error)
	Quote(ctx context.Context, marketID uuid.UUID, req *QuoteRequest) (*QuoteResponse, error)
	GetPosition(ctx context.Context, marketID, participantID uuid.UUID) (*PositionResponse, error)
	GetPortfolio(ctx context.Context, participantID uuid.UUID) (*PortfolioResponse, error)
}

// SafeguardEngine defines the protection checks applied to every stake
type SafeguardEngine interface {
	CheckStakeBounds(amount decimal.Decimal) error
	CheckExpiry(expiresAt time.Time, now time.Time) error
	CheckWhaleLimit(market *models.Market, amount decimal.Decimal) error
	CheckSlippage(shares, actualCost decimal.Decimal, minOddsBps int64) error
}

// EntryGuard rejects re-entrant operations against the same market
type EntryGuard interface {
	TryAcquire(marketID uuid.UUID) bool
	Release(marketID uuid.UUID)
}
