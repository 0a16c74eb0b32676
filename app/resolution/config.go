package resolution

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/0xBased-lang/kektech/models"
)

// Config represents the configuration for the resolution module
type Config struct {
	DisputeWindow         time.Duration   `env:"RESOLUTION_DISPUTE_WINDOW"`
	AgreementThreshold    int64           `env:"RESOLUTION_AGREEMENT_THRESHOLD"`
	DisagreementThreshold int64           `env:"RESOLUTION_DISAGREEMENT_THRESHOLD"`
	MinimumBond           decimal.Decimal `env:"RESOLUTION_MINIMUM_BOND"`
}

func (c *Config) Validate() error {
	type validation struct {
		ok  bool
		err error
	}

	checks := []validation{
		{c.DisputeWindow > 0, models.ErrInvalidDisputeWindow},

		// Anything at or under 50 could finalize against a majority;
		// anything at or over 50 on the disagree side could overlap it.
		{c.AgreementThreshold > 50 && c.AgreementThreshold <= 100, models.ErrInvalidAgreementThreshold},
		{c.DisagreementThreshold > 0 && c.DisagreementThreshold < 50, models.ErrInvalidDisagreementThreshold},

		{c.MinimumBond.GreaterThan(decimal.Zero), models.ErrInvalidMinimumBond},
	}

	for _, v := range checks {
		if !v.ok {
			return v.err
		}
	}
	return nil
}

// GetDefaultConfig returns the default resolution configuration
func GetDefaultConfig() *Config {
	return &Config{
		DisputeWindow:         48 * time.Hour,
		AgreementThreshold:    75,
		DisagreementThreshold: 40,
		MinimumBond:           decimal.NewFromInt(100),
	}
}
