package resolution

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/0xBased-lang/kektech/models"
)

// Repository defines the interface for resolution data access
type Repository interface {
	WithTx(tx *gorm.DB) Repository

	GetMarket(ctx context.Context, id uuid.UUID) (*models.Market, error)
	GetMarketForUpdate(ctx context.Context, id uuid.UUID) (*models.Market, error)
	UpdateMarket(ctx context.Context, market *models.Market) error

	GetResolutionByMarket(ctx context.Context, marketID uuid.UUID) (*models.ResolutionRecord, error)
	GetResolutionForUpdate(ctx context.Context, marketID uuid.UUID) (*models.ResolutionRecord, error)
	CreateResolution(ctx context.Context, record *models.ResolutionRecord) error
	UpdateResolution(ctx context.Context, record *models.ResolutionRecord) error

	GetWalletForUpdate(ctx context.Context, participantID uuid.UUID) (*models.Wallet, error)
	UpdateWallet(ctx context.Context, wallet *models.Wallet) error
	CreateTransaction(ctx context.Context, txn *models.Transaction) error
	CreateAuditLog(ctx context.Context, entry *models.AuditLog) error

	Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service defines the interface for resolution and dispute business logic
type Service interface {
	ProposeOutcome(ctx context.Context, marketID, proposerID uuid.UUID, req *ProposeOutcomeRequest) (*ResolutionResponse, error)
	SubmitDisputeSignals(ctx context.Context, marketID, aggregatorID uuid.UUID, req *SignalRequest) (*SignalResponse, error)
	DisputeResolution(ctx context.Context, marketID, challengerID uuid.UUID, req *ChallengeRequest) (*ResolutionResponse, error)
	RuleOnChallenge(ctx context.Context, marketID, investigatorID uuid.UUID, req *RulingRequest) (*ResolutionResponse, error)
	FinalizeAfterWindow(ctx context.Context, marketID, callerID uuid.UUID) (*ResolutionResponse, error)
	AdminResolveMarket(ctx context.Context, marketID, adminID uuid.UUID, req *AdminResolveRequest) (*ResolutionResponse, error)
	GetResolution(ctx context.Context, marketID uuid.UUID) (*ResolutionResponse, error)
}

// FeeSink receives the platform fee at finalization. Forward runs inside the
// finalization transaction; a non-nil error leaves the fee accrued on the
// market instead of blocking finalization.
type FeeSink interface {
	Forward(ctx context.Context, tx *gorm.DB, marketID uuid.UUID, amount decimal.Decimal) error
}
