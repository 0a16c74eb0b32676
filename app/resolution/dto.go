package resolution

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/0xBased-lang/kektech/models"
)

// ProposeOutcomeRequest opens a resolution for a market past its deadline
type ProposeOutcomeRequest struct {
	Outcome  models.Outcome `json:"outcome" binding:"required"`
	Evidence string         `json:"evidence"`
}

// SignalRequest carries cumulative agree/disagree totals from off-chain voting
type SignalRequest struct {
	AgreeCount    int64 `json:"agree_count" binding:"min=0"`
	DisagreeCount int64 `json:"disagree_count" binding:"min=0"`
}

// ChallengeRequest posts a bond-backed challenge against a proposed outcome
type ChallengeRequest struct {
	Reason string          `json:"reason" binding:"required"`
	Bond   decimal.Decimal `json:"bond" binding:"required"`
}

// RulingRequest settles an open bond challenge
type RulingRequest struct {
	Upheld     bool           `json:"upheld"`
	NewOutcome models.Outcome `json:"new_outcome"`
	Reason     string         `json:"reason"`
}

// AdminResolveRequest is the administrator override for disputed markets
type AdminResolveRequest struct {
	Outcome models.Outcome `json:"outcome" binding:"required"`
	Reason  string         `json:"reason" binding:"required"`
}

// BondDisputeInfo describes an existing challenge
type BondDisputeInfo struct {
	ChallengerID uuid.UUID       `json:"challenger_id"`
	Reason       string          `json:"reason"`
	BondAmount   decimal.Decimal `json:"bond_amount"`
	Status       string          `json:"status"`
	ChallengedAt time.Time       `json:"challenged_at"`
}

// ResolutionResponse represents the resolution state of a market
type ResolutionResponse struct {
	MarketID        uuid.UUID        `json:"market_id"`
	MarketStatus    string           `json:"market_status"`
	ProposedOutcome models.Outcome   `json:"proposed_outcome"`
	ProposerID      uuid.UUID        `json:"proposer_id"`
	Evidence        string           `json:"evidence,omitempty"`
	Status          string           `json:"status"`
	WindowEndsAt    time.Time        `json:"window_ends_at"`
	WindowOpen      bool             `json:"window_open"`
	AgreeCount      int64            `json:"agree_count"`
	DisagreeCount   int64            `json:"disagree_count"`
	Bond            *BondDisputeInfo `json:"bond,omitempty"`
	FinalOutcome    models.Outcome   `json:"final_outcome,omitempty"`
	FinalizeReason  string           `json:"finalize_reason,omitempty"`
}

// SignalResponse reports the verdict of one signal submission
type SignalResponse struct {
	MarketID      uuid.UUID `json:"market_id"`
	MarketStatus  string    `json:"market_status"`
	AgreeCount    int64     `json:"agree_count"`
	DisagreeCount int64     `json:"disagree_count"`
	Verdict       string    `json:"verdict"`
}

// ToResolutionResponse converts a record and its market to a response DTO
func ToResolutionResponse(market *models.Market, r *models.ResolutionRecord) *ResolutionResponse {
	resp := &ResolutionResponse{
		MarketID:        r.MarketID,
		MarketStatus:    string(market.Status),
		ProposedOutcome: r.ProposedOutcome,
		ProposerID:      r.ProposerID,
		Evidence:        r.Evidence,
		Status:          string(r.Status),
		WindowEndsAt:    r.Community.WindowEndsAt,
		WindowOpen:      r.Community.Active,
		AgreeCount:      r.Community.AgreeCount,
		DisagreeCount:   r.Community.DisagreeCount,
		FinalOutcome:    r.FinalOutcome,
		FinalizeReason:  r.FinalizeReason,
	}
	if r.Bond != nil {
		resp.Bond = &BondDisputeInfo{
			ChallengerID: r.Bond.ChallengerID,
			Reason:       r.Bond.Reason,
			BondAmount:   r.Bond.BondAmount,
			Status:       string(r.Bond.Status),
			ChallengedAt: r.Bond.ChallengedAt,
		}
	}
	return resp
}

// verdictLabel maps a signal verdict to its wire value
func verdictLabel(v models.SignalVerdict) string {
	switch v {
	case models.VerdictFinalize:
		return "finalized"
	case models.VerdictDispute:
		return "disputed"
	default:
		return "pending"
	}
}
