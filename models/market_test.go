package models

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestOutcome(t *testing.T) {
	t.Run("Valid", func(t *testing.T) {
		assert.True(t, Outcome1.Valid())
		assert.True(t, Outcome2.Valid())
		assert.False(t, OutcomeUnset.Valid())
		assert.False(t, Outcome(3).Valid())
	})

	t.Run("Opposite", func(t *testing.T) {
		assert.Equal(t, Outcome2, Outcome1.Opposite())
		assert.Equal(t, Outcome1, Outcome2.Opposite())
		assert.Equal(t, OutcomeUnset, OutcomeUnset.Opposite())
	})
}

func TestMarket(t *testing.T) {
	t.Run("TableName", func(t *testing.T) {
		m := Market{}
		assert.Equal(t, "markets", m.TableName())
	})

	t.Run("BeforeCreate", func(t *testing.T) {
		m := Market{}
		assert.Equal(t, uuid.Nil, m.ID)

		err := m.BeforeCreate(nil)
		assert.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, m.ID)

		existingID := uuid.New()
		m2 := Market{ID: existingID}
		err = m2.BeforeCreate(nil)
		assert.NoError(t, err)
		assert.Equal(t, existingID, m2.ID)
	})

	t.Run("Status checks", func(t *testing.T) {
		now := time.Now()

		m := Market{
			Status:             MarketStatusActive,
			ResolutionDeadline: now.Add(time.Hour),
		}
		assert.True(t, m.IsActive())
		assert.True(t, m.CanStake(now))

		m.ResolutionDeadline = now.Add(-time.Hour)
		assert.False(t, m.CanStake(now))

		m.Status = MarketStatusPending
		m.ResolutionDeadline = now.Add(time.Hour)
		assert.False(t, m.CanStake(now))

		m.Status = MarketStatusFinalized
		assert.True(t, m.IsFinalized())
		assert.False(t, m.CanStake(now))

		m.Status = MarketStatusVoided
		assert.True(t, m.IsVoided())
	})

	t.Run("Activate", func(t *testing.T) {
		m := Market{Status: MarketStatusPending}

		err := m.Activate()
		assert.NoError(t, err)
		assert.Equal(t, MarketStatusActive, m.Status)
		assert.NotNil(t, m.ActivatedAt)

		err = m.Activate()
		assert.Equal(t, ErrInvalidTransition, err)
	})

	t.Run("BeginResolving", func(t *testing.T) {
		now := time.Now()
		m := Market{
			Status:             MarketStatusActive,
			ResolutionDeadline: now.Add(time.Hour),
		}

		err := m.BeginResolving(now)
		assert.Equal(t, ErrBettingClosed, err)
		assert.Equal(t, MarketStatusActive, m.Status)

		err = m.BeginResolving(now.Add(2 * time.Hour))
		assert.NoError(t, err)
		assert.Equal(t, MarketStatusResolving, m.Status)

		err = m.BeginResolving(now.Add(2 * time.Hour))
		assert.Equal(t, ErrInvalidTransition, err)

		pending := Market{Status: MarketStatusPending, ResolutionDeadline: now}
		err = pending.BeginResolving(now.Add(time.Hour))
		assert.Equal(t, ErrInvalidTransition, err)
	})

	t.Run("MarkDisputed", func(t *testing.T) {
		m := Market{Status: MarketStatusResolving}

		err := m.MarkDisputed()
		assert.NoError(t, err)
		assert.Equal(t, MarketStatusDisputed, m.Status)

		err = m.MarkDisputed()
		assert.Equal(t, ErrInvalidTransition, err)

		active := Market{Status: MarketStatusActive}
		err = active.MarkDisputed()
		assert.Equal(t, ErrInvalidTransition, err)
	})

	t.Run("Finalize", func(t *testing.T) {
		m := Market{Status: MarketStatusResolving}

		err := m.Finalize(OutcomeUnset, "")
		assert.Equal(t, ErrInvalidOutcome, err)

		err = m.Finalize(Outcome1, "community agreement")
		assert.NoError(t, err)
		assert.Equal(t, MarketStatusFinalized, m.Status)
		assert.Equal(t, Outcome1, m.Result)
		assert.Equal(t, "community agreement", m.ResolutionNote)
		assert.NotNil(t, m.FinalizedAt)

		err = m.Finalize(Outcome2, "again")
		assert.Equal(t, ErrInvalidTransition, err)
	})

	t.Run("Finalize from disputed", func(t *testing.T) {
		m := Market{Status: MarketStatusDisputed}

		err := m.Finalize(Outcome2, "admin override")
		assert.NoError(t, err)
		assert.Equal(t, MarketStatusFinalized, m.Status)
		assert.Equal(t, Outcome2, m.Result)
	})

	t.Run("Finalize from active rejected", func(t *testing.T) {
		m := Market{Status: MarketStatusActive}
		err := m.Finalize(Outcome1, "")
		assert.Equal(t, ErrInvalidTransition, err)
	})

	t.Run("Void", func(t *testing.T) {
		grace := 72 * time.Hour
		deadline := time.Now().Add(-time.Hour)
		m := Market{
			Status:             MarketStatusActive,
			ResolutionDeadline: deadline,
		}

		assert.False(t, m.CanVoid(time.Now(), grace))
		err := m.Void(time.Now(), grace)
		assert.Equal(t, ErrGracePeriodNotOver, err)
		assert.Equal(t, MarketStatusActive, m.Status)

		afterGrace := deadline.Add(grace + time.Minute)
		assert.True(t, m.CanVoid(afterGrace, grace))
		err = m.Void(afterGrace, grace)
		assert.NoError(t, err)
		assert.Equal(t, MarketStatusVoided, m.Status)
		assert.NotNil(t, m.VoidedAt)

		err = m.Void(afterGrace, grace)
		assert.Equal(t, ErrInvalidTransition, err)

		resolving := Market{Status: MarketStatusResolving, ResolutionDeadline: deadline}
		assert.False(t, resolving.CanVoid(afterGrace, grace))
		err = resolving.Void(afterGrace, grace)
		assert.Equal(t, ErrInvalidTransition, err)
	})

	t.Run("Financial calculations", func(t *testing.T) {
		m := Market{
			PoolAmount:    decimal.NewFromInt(1000),
			FeePercentage: decimal.NewFromFloat(0.02),
			Q1:            decimal.NewFromInt(300),
			Q2:            decimal.NewFromInt(150),
			Result:        Outcome1,
		}

		assert.True(t, decimal.NewFromInt(20).Equal(m.PlatformFee()))
		assert.True(t, decimal.NewFromInt(980).Equal(m.PrizePool()))
		assert.True(t, decimal.NewFromInt(300).Equal(m.WinningShares()))

		m.Result = Outcome2
		assert.True(t, decimal.NewFromInt(150).Equal(m.WinningShares()))

		m.Result = OutcomeUnset
		assert.True(t, m.WinningShares().IsZero())
	})

	t.Run("OutcomeLabel", func(t *testing.T) {
		m := Market{Outcome1Label: "Yes", Outcome2Label: "No"}
		assert.Equal(t, "Yes", m.OutcomeLabel(Outcome1))
		assert.Equal(t, "No", m.OutcomeLabel(Outcome2))
		assert.Equal(t, "", m.OutcomeLabel(OutcomeUnset))
	})

	t.Run("ApplyStake", func(t *testing.T) {
		m := Market{
			Q1:         decimal.NewFromInt(100),
			Q2:         decimal.NewFromInt(100),
			PoolAmount: decimal.NewFromInt(200),
		}

		err := m.ApplyStake(Outcome1, decimal.NewFromInt(40), decimal.NewFromInt(25))
		assert.NoError(t, err)
		assert.True(t, decimal.NewFromInt(140).Equal(m.Q1))
		assert.True(t, decimal.NewFromInt(100).Equal(m.Q2))
		assert.True(t, decimal.NewFromInt(225).Equal(m.PoolAmount))

		err = m.ApplyStake(Outcome2, decimal.NewFromInt(10), decimal.NewFromInt(8))
		assert.NoError(t, err)
		assert.True(t, decimal.NewFromInt(110).Equal(m.Q2))

		err = m.ApplyStake(OutcomeUnset, decimal.NewFromInt(10), decimal.NewFromInt(8))
		assert.Equal(t, ErrInvalidOutcome, err)

		err = m.ApplyStake(Outcome1, decimal.Zero, decimal.NewFromInt(8))
		assert.Equal(t, ErrInvalidStakeAmount, err)

		err = m.ApplyStake(Outcome1, decimal.NewFromInt(10), decimal.Zero)
		assert.Equal(t, ErrInvalidStakeAmount, err)
	})

	t.Run("Validate", func(t *testing.T) {
		valid := Market{
			Question:           "Will it rain tomorrow?",
			Outcome1Label:      "Yes",
			Outcome2Label:      "No",
			Liquidity:          decimal.NewFromInt(500),
			ResolutionDeadline: time.Now().Add(24 * time.Hour),
			FeePercentage:      decimal.NewFromFloat(0.02),
		}
		assert.NoError(t, valid.Validate())

		m := valid
		m.Question = ""
		assert.Equal(t, ErrInvalidMarketQuestion, m.Validate())

		m = valid
		m.Outcome2Label = ""
		assert.Equal(t, ErrInvalidOutcomeLabel, m.Validate())

		m = valid
		m.Liquidity = decimal.Zero
		assert.Equal(t, ErrInvalidLiquidity, m.Validate())

		m = valid
		m.Q1 = decimal.NewFromInt(-1)
		assert.Equal(t, ErrInvalidStakeAmount, m.Validate())

		m = valid
		m.ResolutionDeadline = time.Time{}
		assert.Equal(t, ErrInvalidDeadline, m.Validate())

		m = valid
		m.FeePercentage = decimal.NewFromInt(1)
		assert.Equal(t, ErrInvalidFeePercentage, m.Validate())
	})
}
