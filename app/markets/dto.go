package markets

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/0xBased-lang/kektech/internal/validator"
	"github.com/0xBased-lang/kektech/models"
)

// CreateMarketRequest represents a request to create a market
type CreateMarketRequest struct {
	Question           string           `json:"question" binding:"required,max=255"`
	Outcome1Label      string           `json:"outcome1_label" binding:"required,max=100"`
	Outcome2Label      string           `json:"outcome2_label" binding:"required,max=100"`
	ResolutionDeadline time.Time        `json:"resolution_deadline" binding:"required"`
	Liquidity          *decimal.Decimal `json:"liquidity,omitempty"`
	FeePercentage      *decimal.Decimal `json:"fee_percentage,omitempty"`
}

// Validate applies the request rules the binding tags cannot express.
func (r *CreateMarketRequest) Validate(v *validator.Validator, now time.Time) bool {
	v.Check(validator.NotBlank(r.Question), "question", "question must not be blank")
	v.Check(validator.NotBlank(r.Outcome1Label), "outcome1_label", "outcome label must not be blank")
	v.Check(validator.NotBlank(r.Outcome2Label), "outcome2_label", "outcome label must not be blank")
	v.Check(r.Outcome1Label != r.Outcome2Label, "outcome2_label", "outcome labels must differ")
	v.Check(r.ResolutionDeadline.After(now), "resolution_deadline", "resolution deadline must be in the future")
	if r.Liquidity != nil {
		v.Check(r.Liquidity.IsPositive(), "liquidity", "liquidity must be positive")
	}
	if r.FeePercentage != nil {
		v.Check(!r.FeePercentage.IsNegative() && r.FeePercentage.LessThan(decimal.NewFromInt(1)),
			"fee_percentage", "fee percentage must be in [0, 1)")
	}
	return v.Valid()
}

// MarketFilters represents filters for listing markets
type MarketFilters struct {
	Status  string `form:"status"`
	Page    int    `form:"page,default=1"`
	PerPage int    `form:"per_page,default=20"`
}

// MarketResponse represents a market in API responses
type MarketResponse struct {
	ID                 uuid.UUID       `json:"id"`
	Question           string          `json:"question"`
	Outcome1Label      string          `json:"outcome1_label"`
	Outcome2Label      string          `json:"outcome2_label"`
	Status             string          `json:"status"`
	Result             int16           `json:"result"`
	ResolutionDeadline time.Time       `json:"resolution_deadline"`
	Liquidity          decimal.Decimal `json:"liquidity"`
	PoolAmount         decimal.Decimal `json:"pool_amount"`
	AccruedFees        decimal.Decimal `json:"accrued_fees"`
	CreatedAt          time.Time       `json:"created_at"`
}

// MarketListResponse represents a paginated list of markets
type MarketListResponse struct {
	Markets []MarketResponse `json:"markets"`
	Total   int64            `json:"total"`
	Page    int              `json:"page"`
	PerPage int              `json:"per_page"`
}

// MarketStateResponse exposes the lifecycle state and result read surface.
type MarketStateResponse struct {
	ID          uuid.UUID  `json:"id"`
	Status      string     `json:"status"`
	Result      int16      `json:"result"`
	ResultLabel string     `json:"result_label,omitempty"`
	FinalizedAt *time.Time `json:"finalized_at,omitempty"`
	VoidedAt    *time.Time `json:"voided_at,omitempty"`
}

// OddsResponse represents the clamped display odds of a market
type OddsResponse struct {
	MarketID    uuid.UUID `json:"market_id"`
	Outcome1Bps int64     `json:"outcome1_bps"`
	Outcome2Bps int64     `json:"outcome2_bps"`
	GeneratedAt time.Time `json:"generated_at"`
}

// ToMarketResponse converts a market model to a response DTO
func ToMarketResponse(m *models.Market) *MarketResponse {
	return &MarketResponse{
		ID:                 m.ID,
		Question:           m.Question,
		Outcome1Label:      m.Outcome1Label,
		Outcome2Label:      m.Outcome2Label,
		Status:             string(m.Status),
		Result:             int16(m.Result),
		ResolutionDeadline: m.ResolutionDeadline,
		Liquidity:          m.Liquidity,
		PoolAmount:         m.PoolAmount,
		AccruedFees:        m.AccruedFees,
		CreatedAt:          m.CreatedAt,
	}
}

// ToMarketStateResponse converts a market model to its state read surface
func ToMarketStateResponse(m *models.Market) *MarketStateResponse {
	return &MarketStateResponse{
		ID:          m.ID,
		Status:      string(m.Status),
		Result:      int16(m.Result),
		ResultLabel: m.OutcomeLabel(m.Result),
		FinalizedAt: m.FinalizedAt,
		VoidedAt:    m.VoidedAt,
	}
}
