package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Position tracks one participant's cumulative holding in a market. A
// participant may only ever hold one side: later stakes on the same outcome
// accumulate, a stake on the opposite outcome is rejected upstream.
type Position struct {
	ID            uuid.UUID        `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	MarketID      uuid.UUID        `gorm:"type:uuid;not null;uniqueIndex:idx_positions_market_participant" json:"market_id"`
	ParticipantID uuid.UUID        `gorm:"type:uuid;not null;uniqueIndex:idx_positions_market_participant" json:"participant_id"`
	Outcome       Outcome          `gorm:"type:smallint;not null" json:"outcome"`
	Amount        decimal.Decimal  `gorm:"type:decimal(20,2);not null;check:amount > 0" json:"amount"`
	Shares        decimal.Decimal  `gorm:"type:decimal(30,8);not null;check:shares > 0" json:"shares"`
	Claimed       bool             `gorm:"default:false" json:"claimed"`
	ClaimedAt     *time.Time       `gorm:"type:timestamptz" json:"claimed_at"`
	PayoutAmount  *decimal.Decimal `gorm:"type:decimal(20,2)" json:"payout_amount"`
	CreatedAt     time.Time        `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time        `gorm:"autoUpdateTime" json:"updated_at"`

	Market *Market `gorm:"foreignKey:MarketID" json:"market,omitempty"`
}

// TableName specifies the table name for Position model
func (*Position) TableName() string {
	return "positions"
}

// BeforeCreate sets up the model before creation
func (p *Position) BeforeCreate(_ *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// Accumulate adds a same-outcome fill to the position.
func (p *Position) Accumulate(outcome Outcome, amount, shares decimal.Decimal) error {
	if p.Outcome != outcome {
		return ErrOppositePosition
	}
	if amount.LessThanOrEqual(decimal.Zero) || shares.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidStakeAmount
	}
	p.Amount = p.Amount.Add(amount)
	p.Shares = p.Shares.Add(shares)
	return nil
}

// IsWinner reports whether the position sits on the finalized outcome.
func (p *Position) IsWinner(result Outcome) bool {
	return result.Valid() && p.Outcome == result
}

// MarkClaimed flips the claimed flag exactly once. The flag must be persisted
// before any value transfer so a re-entrant claim can never pay twice.
func (p *Position) MarkClaimed(payout decimal.Decimal) error {
	if p.Claimed {
		return ErrAlreadyClaimed
	}
	now := time.Now()
	p.Claimed = true
	p.ClaimedAt = &now
	p.PayoutAmount = &payout
	return nil
}

// Validate performs validation on the position model
func (p *Position) Validate() error {
	if p.MarketID == uuid.Nil {
		return ErrInvalidMarketID
	}
	if p.ParticipantID == uuid.Nil {
		return ErrInvalidParticipantID
	}
	if !p.Outcome.Valid() {
		return ErrInvalidOutcome
	}
	if p.Amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidStakeAmount
	}
	if p.Shares.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidStakeAmount
	}
	return nil
}
