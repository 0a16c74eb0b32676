package stakes

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/0xBased-lang/kektech/models"
)

// PlaceStakeRequest represents a stake placement request
type PlaceStakeRequest struct {
	Outcome    models.Outcome  `json:"outcome" binding:"required"`
	Amount     decimal.Decimal `json:"amount" binding:"required"`
	MinOddsBps int64           `json:"min_odds_bps"`
	ExpiresAt  time.Time       `json:"expires_at"`
}

// QuoteRequest represents a dry-run pricing request
type QuoteRequest struct {
	Outcome models.Outcome  `form:"outcome" binding:"required"`
	Amount  decimal.Decimal `form:"amount" binding:"required"`
}

// StakeResponse represents the result of a placed stake
type StakeResponse struct {
	MarketID      uuid.UUID       `json:"market_id"`
	ParticipantID uuid.UUID       `json:"participant_id"`
	Outcome       models.Outcome  `json:"outcome"`
	OutcomeLabel  string          `json:"outcome_label"`
	Amount        decimal.Decimal `json:"amount"`
	SharesIssued  decimal.Decimal `json:"shares_issued"`
	EffectiveBps  int64           `json:"effective_odds_bps"`
	TotalShares   decimal.Decimal `json:"total_shares"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	PlacedAt      time.Time       `json:"placed_at"`
}

// QuoteResponse represents a non-binding share quote
type QuoteResponse struct {
	MarketID     uuid.UUID       `json:"market_id"`
	Outcome      models.Outcome  `json:"outcome"`
	Amount       decimal.Decimal `json:"amount"`
	Shares       decimal.Decimal `json:"shares"`
	ActualCost   decimal.Decimal `json:"actual_cost"`
	EffectiveBps int64           `json:"effective_odds_bps"`
}

// PositionResponse represents a participant's position in a market
type PositionResponse struct {
	MarketID     uuid.UUID       `json:"market_id"`
	Outcome      models.Outcome  `json:"outcome"`
	OutcomeLabel string          `json:"outcome_label,omitempty"`
	Amount       decimal.Decimal `json:"amount"`
	Shares       decimal.Decimal `json:"shares"`
	Claimed      bool            `json:"claimed"`
	PayoutAmount *decimal.Decimal `json:"payout_amount"`
}

// PortfolioResponse represents all positions held by a participant
type PortfolioResponse struct {
	ParticipantID uuid.UUID          `json:"participant_id"`
	Positions     []PositionResponse `json:"positions"`
	TotalStaked   decimal.Decimal    `json:"total_staked"`
}

// ToPositionResponse converts a position model to a response DTO
func ToPositionResponse(p *models.Position) *PositionResponse {
	return &PositionResponse{
		MarketID:     p.MarketID,
		Outcome:      p.Outcome,
		Amount:       p.Amount,
		Shares:       p.Shares,
		Claimed:      p.Claimed,
		PayoutAmount: p.PayoutAmount,
	}
}
