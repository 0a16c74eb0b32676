package settlement

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Claim kinds reported on previews and receipts.
const (
	ClaimKindPayout = "payout"
	ClaimKindRefund = "refund"
)

// ClaimPreviewResponse describes what a claim would pay without executing it
type ClaimPreviewResponse struct {
	MarketID     uuid.UUID       `json:"market_id"`
	MarketStatus string          `json:"market_status"`
	Kind         string          `json:"kind"`
	Amount       decimal.Decimal `json:"amount"`
	Claimed      bool            `json:"claimed"`
	ClaimedAt    *time.Time      `json:"claimed_at,omitempty"`
}

// ClaimResponse is the receipt for an executed claim
type ClaimResponse struct {
	MarketID      uuid.UUID       `json:"market_id"`
	PositionID    uuid.UUID       `json:"position_id"`
	Kind          string          `json:"kind"`
	Amount        decimal.Decimal `json:"amount"`
	WalletBalance decimal.Decimal `json:"wallet_balance"`
	ClaimedAt     time.Time       `json:"claimed_at"`
}
