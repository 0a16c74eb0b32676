package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Outcome identifies one side of a binary market.
type Outcome int16

const (
	OutcomeUnset Outcome = 0
	Outcome1     Outcome = 1
	Outcome2     Outcome = 2
)

// Valid reports whether the outcome is one of the two bettable sides.
func (o Outcome) Valid() bool {
	return o == Outcome1 || o == Outcome2
}

// Opposite returns the other side of the market.
func (o Outcome) Opposite() Outcome {
	switch o {
	case Outcome1:
		return Outcome2
	case Outcome2:
		return Outcome1
	}
	return OutcomeUnset
}

// MarketStatus represents the lifecycle state of a market
type MarketStatus string

const (
	MarketStatusPending   MarketStatus = "pending"
	MarketStatusActive    MarketStatus = "active"
	MarketStatusResolving MarketStatus = "resolving"
	MarketStatusDisputed  MarketStatus = "disputed"
	MarketStatusFinalized MarketStatus = "finalized"
	MarketStatusVoided    MarketStatus = "voided"
)

// Market represents a binary prediction market priced by an LMSR bonding curve.
// Q1 and Q2 are the real share inventories; the virtual liquidity used for
// display odds is never stored here.
type Market struct {
	ID                 uuid.UUID       `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	Question           string          `gorm:"type:varchar(255);not null" json:"question"`
	Outcome1Label      string          `gorm:"type:varchar(100);not null" json:"outcome1_label"`
	Outcome2Label      string          `gorm:"type:varchar(100);not null" json:"outcome2_label"`
	Status             MarketStatus    `gorm:"type:varchar(20);default:'pending';index" json:"status"`
	Result             Outcome         `gorm:"type:smallint;default:0" json:"result"`
	ResolutionDeadline time.Time       `gorm:"type:timestamptz;not null;index" json:"resolution_deadline"`
	Liquidity          decimal.Decimal `gorm:"type:decimal(20,8);not null" json:"liquidity"`
	Q1                 decimal.Decimal `gorm:"type:decimal(30,8);default:0;check:q1 >= 0" json:"q1"`
	Q2                 decimal.Decimal `gorm:"type:decimal(30,8);default:0;check:q2 >= 0" json:"q2"`
	PoolAmount         decimal.Decimal `gorm:"type:decimal(20,2);default:0.00" json:"pool_amount"`
	AccruedFees        decimal.Decimal `gorm:"type:decimal(20,2);default:0.00" json:"accrued_fees"`
	FeePercentage      decimal.Decimal `gorm:"type:decimal(5,4);default:0.0200" json:"fee_percentage"`
	ResolutionNote     string          `gorm:"type:text" json:"resolution_note"`
	ActivatedAt        *time.Time      `gorm:"type:timestamptz" json:"activated_at"`
	FinalizedAt        *time.Time      `gorm:"type:timestamptz" json:"finalized_at"`
	VoidedAt           *time.Time      `gorm:"type:timestamptz" json:"voided_at"`
	CreatedAt          time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt          time.Time       `gorm:"autoUpdateTime" json:"updated_at"`

	// Associations
	Positions  []Position        `gorm:"foreignKey:MarketID" json:"-"`
	Resolution *ResolutionRecord `gorm:"foreignKey:MarketID" json:"resolution,omitempty"`
}

// TableName specifies the table name for Market model
func (*Market) TableName() string {
	return "markets"
}

// BeforeCreate sets up the model before creation
func (m *Market) BeforeCreate(_ *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// IsActive checks if the market has been activated and not yet left ACTIVE
func (m *Market) IsActive() bool {
	return m.Status == MarketStatusActive
}

// IsFinalized checks if the market has reached its immutable terminal state
func (m *Market) IsFinalized() bool {
	return m.Status == MarketStatusFinalized
}

// IsVoided checks if the market was voided through the timeout-refund path
func (m *Market) IsVoided() bool {
	return m.Status == MarketStatusVoided
}

// CanStake checks if stakes are accepted right now. Only ACTIVE markets
// before the resolution deadline take money.
func (m *Market) CanStake(now time.Time) bool {
	return m.Status == MarketStatusActive && now.Before(m.ResolutionDeadline)
}

// Activate moves the market from PENDING to ACTIVE.
func (m *Market) Activate() error {
	if m.Status != MarketStatusPending {
		return ErrInvalidTransition
	}
	now := time.Now()
	m.Status = MarketStatusActive
	m.ActivatedAt = &now
	return nil
}

// BeginResolving moves the market from ACTIVE to RESOLVING. Legal only after
// the resolution deadline.
func (m *Market) BeginResolving(now time.Time) error {
	if m.Status != MarketStatusActive {
		return ErrInvalidTransition
	}
	if now.Before(m.ResolutionDeadline) {
		return ErrBettingClosed
	}
	m.Status = MarketStatusResolving
	return nil
}

// MarkDisputed moves the market from RESOLVING to DISPUTED.
func (m *Market) MarkDisputed() error {
	if m.Status != MarketStatusResolving {
		return ErrInvalidTransition
	}
	m.Status = MarketStatusDisputed
	return nil
}

// Finalize sets the immutable result. Legal from RESOLVING or DISPUTED only;
// DISPUTED -> FINALIZED is the single back-and-forward pair in the lifecycle.
func (m *Market) Finalize(result Outcome, note string) error {
	if m.Status != MarketStatusResolving && m.Status != MarketStatusDisputed {
		return ErrInvalidTransition
	}
	if !result.Valid() {
		return ErrInvalidOutcome
	}
	now := time.Now()
	m.Status = MarketStatusFinalized
	m.Result = result
	m.ResolutionNote = note
	m.FinalizedAt = &now
	return nil
}

// CanVoid checks whether the timeout-refund path is open: the market is still
// ACTIVE (no outcome was ever proposed) and the resolver grace period after
// the deadline has elapsed.
func (m *Market) CanVoid(now time.Time, grace time.Duration) bool {
	return m.Status == MarketStatusActive && now.After(m.ResolutionDeadline.Add(grace))
}

// Void moves an abandoned market to the terminal VOIDED state so participants
// can reclaim their original stakes.
func (m *Market) Void(now time.Time, grace time.Duration) error {
	if m.Status != MarketStatusActive {
		return ErrInvalidTransition
	}
	if !now.After(m.ResolutionDeadline.Add(grace)) {
		return ErrGracePeriodNotOver
	}
	m.Status = MarketStatusVoided
	m.VoidedAt = &now
	return nil
}

// PlatformFee calculates the platform fee on the current pool.
func (m *Market) PlatformFee() decimal.Decimal {
	return m.PoolAmount.Mul(m.FeePercentage).Round(2)
}

// PrizePool returns the pool available to winners, net of the platform fee.
// Real inventories and real stakes only.
func (m *Market) PrizePool() decimal.Decimal {
	return m.PoolAmount.Sub(m.PlatformFee())
}

// WinningShares returns the real share inventory of the finalized outcome.
func (m *Market) WinningShares() decimal.Decimal {
	switch m.Result {
	case Outcome1:
		return m.Q1
	case Outcome2:
		return m.Q2
	}
	return decimal.Zero
}

// OutcomeLabel returns the display label for an outcome.
func (m *Market) OutcomeLabel(o Outcome) string {
	switch o {
	case Outcome1:
		return m.Outcome1Label
	case Outcome2:
		return m.Outcome2Label
	}
	return ""
}

// ApplyStake records a fill against the real inventories and pool.
func (m *Market) ApplyStake(outcome Outcome, shares, cost decimal.Decimal) error {
	if !outcome.Valid() {
		return ErrInvalidOutcome
	}
	if shares.LessThanOrEqual(decimal.Zero) || cost.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidStakeAmount
	}
	if outcome == Outcome1 {
		m.Q1 = m.Q1.Add(shares)
	} else {
		m.Q2 = m.Q2.Add(shares)
	}
	m.PoolAmount = m.PoolAmount.Add(cost)
	return nil
}

// Validate performs validation on the market model
func (m *Market) Validate() error {
	if m.Question == "" {
		return ErrInvalidMarketQuestion
	}
	if m.Outcome1Label == "" || m.Outcome2Label == "" {
		return ErrInvalidOutcomeLabel
	}
	if m.Liquidity.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidLiquidity
	}
	if m.Q1.IsNegative() || m.Q2.IsNegative() {
		return ErrInvalidStakeAmount
	}
	if m.ResolutionDeadline.IsZero() {
		return ErrInvalidDeadline
	}
	if m.FeePercentage.IsNegative() || m.FeePercentage.GreaterThanOrEqual(decimal.NewFromInt(1)) {
		return ErrInvalidFeePercentage
	}
	return nil
}
