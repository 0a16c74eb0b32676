package markets

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/0xBased-lang/kektech/models"
)

// Repository defines the interface for market data access
type Repository interface {
	WithTx(tx *gorm.DB) Repository

	GetByID(ctx context.Context, id uuid.UUID) (*models.Market, error)
	GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*models.Market, error)
	List(ctx context.Context, filters *MarketFilters) ([]models.Market, int64, error)
	Create(ctx context.Context, market *models.Market) error
	Update(ctx context.Context, market *models.Market) error

	GetPosition(ctx context.Context, marketID, participantID uuid.UUID) (*models.Position, error)
	GetPositionsByMarket(ctx context.Context, marketID uuid.UUID) ([]models.Position, error)

	ListVoidCandidates(ctx context.Context, deadlineBefore time.Time) ([]models.Market, error)
	CreateAuditLog(ctx context.Context, entry *models.AuditLog) error
}

// Service defines the interface for market lifecycle business logic
type Service interface {
	CreateMarket(ctx context.Context, req *CreateMarketRequest) (*MarketResponse, error)
	ActivateMarket(ctx context.Context, id uuid.UUID) (*MarketResponse, error)
	GetMarketByID(ctx context.Context, id uuid.UUID) (*MarketResponse, error)
	GetMarkets(ctx context.Context, filters *MarketFilters) (*MarketListResponse, error)
	GetMarketState(ctx context.Context, id uuid.UUID) (*MarketStateResponse, error)
	GetOdds(ctx context.Context, id uuid.UUID) (*OddsResponse, error)
	VoidTimedOutMarket(ctx context.Context, id uuid.UUID) (*MarketResponse, error)
	ProcessTimedOutMarkets(ctx context.Context) (int, error)
}

// PricingEngine defines the interface for LMSR bonding-curve calculations
type PricingEngine interface {
	Cost(b, q1, q2 decimal.Decimal) (decimal.Decimal, error)
	CostToBuy(market *models.Market, outcome models.Outcome, shares decimal.Decimal) (decimal.Decimal, error)
	QuoteShares(market *models.Market, outcome models.Outcome, payment decimal.Decimal) (shares, actualCost decimal.Decimal, err error)
	Odds(market *models.Market) (OddsQuote, error)
}

// OddsQuote carries clamped display odds for both outcomes in basis points.
type OddsQuote struct {
	Outcome1Bps int64 `json:"outcome1_bps"`
	Outcome2Bps int64 `json:"outcome2_bps"`
}
