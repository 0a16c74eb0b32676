package stakes

import (
	"github.com/shopspring/decimal"

	"github.com/0xBased-lang/kektech/models"
)

// Config represents the configuration for the stakes module
type Config struct {
	MinStakeAmount     decimal.Decimal `env:"STAKE_MIN_AMOUNT"`
	MaxStakeAmount     decimal.Decimal `env:"STAKE_MAX_AMOUNT"`
	WhaleCapPercentage decimal.Decimal `env:"STAKE_WHALE_CAP_PERCENTAGE"`
}

func (c *Config) Validate() error {
	type validation struct {
		ok  bool
		err error
	}

	checks := []validation{
		{c.MinStakeAmount.GreaterThan(decimal.Zero), models.ErrInvalidStakeLimits},
		{c.MaxStakeAmount.GreaterThan(c.MinStakeAmount), models.ErrInvalidStakeLimits},

		{c.WhaleCapPercentage.GreaterThan(decimal.Zero) &&
			c.WhaleCapPercentage.LessThanOrEqual(decimal.NewFromInt(1)),
			models.ErrInvalidWhalePercentage},
	}

	for _, v := range checks {
		if !v.ok {
			return v.err
		}
	}
	return nil
}

// GetDefaultConfig returns the default stakes configuration
func GetDefaultConfig() *Config {
	return &Config{
		MinStakeAmount:     decimal.NewFromInt(1),
		MaxStakeAmount:     decimal.NewFromInt(100000),
		WhaleCapPercentage: decimal.NewFromFloat(0.25), // 25% of the current pool
	}
}
