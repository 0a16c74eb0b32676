package stakes

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/0xBased-lang/kektech/models"
)

var oddsScale = decimal.NewFromInt(10000)

// safeguardEngine implements the SafeguardEngine interface
type safeguardEngine struct {
	config *Config
}

// NewSafeguardEngine creates a new stake safeguard engine
func NewSafeguardEngine(config *Config) SafeguardEngine {
	return &safeguardEngine{
		config: config,
	}
}

// CheckStakeBounds validates the amount against the configured min and max.
func (se *safeguardEngine) CheckStakeBounds(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return models.ErrInvalidStakeAmount
	}
	if amount.LessThan(se.config.MinStakeAmount) {
		return models.ErrStakeTooSmall
	}
	if amount.GreaterThan(se.config.MaxStakeAmount) {
		return models.ErrStakeTooLarge
	}
	return nil
}

// CheckExpiry rejects requests whose client-side deadline has passed. A zero
// expiry means the caller opted out of deadline protection.
func (se *safeguardEngine) CheckExpiry(expiresAt time.Time, now time.Time) error {
	if expiresAt.IsZero() {
		return nil
	}
	if now.After(expiresAt) {
		return models.ErrStakeExpired
	}
	return nil
}

// CheckWhaleLimit caps any single stake at a percentage of the current real
// pool. The first stake into an empty pool is exempt, since any cap against
// a zero pool would make the market unusable.
func (se *safeguardEngine) CheckWhaleLimit(market *models.Market, amount decimal.Decimal) error {
	if market.PoolAmount.LessThanOrEqual(decimal.Zero) {
		return nil
	}
	limit := market.PoolAmount.Mul(se.config.WhaleCapPercentage)
	if amount.GreaterThan(limit) {
		return models.ErrWhaleLimitExceeded
	}
	return nil
}

// CheckSlippage compares the effective odds of the fill against the caller's
// stated minimum. A zero minimum opts out of slippage protection.
func (se *safeguardEngine) CheckSlippage(shares, actualCost decimal.Decimal, minOddsBps int64) error {
	if minOddsBps <= 0 {
		return nil
	}
	if actualCost.LessThanOrEqual(decimal.Zero) {
		return models.ErrSlippageExceeded
	}
	effectiveBps := shares.Div(actualCost).Mul(oddsScale).RoundDown(0).IntPart()
	if effectiveBps < minOddsBps {
		return models.ErrSlippageExceeded
	}
	return nil
}
