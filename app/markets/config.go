package markets

import (
	"time"

	"github.com/0xBased-lang/kektech/models"
	"github.com/shopspring/decimal"
)

// Config represents the configuration for the markets module
type Config struct {
	DefaultLiquidity    decimal.Decimal `env:"MARKET_DEFAULT_LIQUIDITY"`
	VirtualLiquidity    decimal.Decimal `env:"MARKET_VIRTUAL_LIQUIDITY"`
	OddsFloorBps        int64           `env:"MARKET_ODDS_FLOOR_BPS"`
	OddsCeilingBps      int64           `env:"MARKET_ODDS_CEILING_BPS"`
	MaxQuoteIterations  int             `env:"MARKET_MAX_QUOTE_ITERATIONS"`
	QuoteTolerance      decimal.Decimal `env:"MARKET_QUOTE_TOLERANCE"`
	FeePercentage       decimal.Decimal `env:"MARKET_FEE_PERCENTAGE"`
	ResolverGracePeriod time.Duration   `env:"MARKET_RESOLVER_GRACE_PERIOD"`
	MinMarketDuration   time.Duration   `env:"MARKET_MIN_DURATION"`
	OddsCacheTTL        time.Duration   `env:"MARKET_ODDS_CACHE_TTL"`
}

func (c *Config) Validate() error {
	type validation struct {
		ok  bool
		err error
	}

	checks := []validation{
		{c.DefaultLiquidity.GreaterThan(decimal.Zero), models.ErrInvalidLiquidity},
		{c.VirtualLiquidity.GreaterThan(decimal.Zero), models.ErrInvalidVirtualLiquidity},

		{c.OddsFloorBps > 10000, models.ErrInvalidOddsBounds},
		{c.OddsCeilingBps > c.OddsFloorBps, models.ErrInvalidOddsBounds},

		{c.MaxQuoteIterations > 0 && c.MaxQuoteIterations <= 64, models.ErrInvalidIterationCap},
		{c.QuoteTolerance.GreaterThan(decimal.Zero), models.ErrInvalidIterationCap},

		{c.FeePercentage.GreaterThanOrEqual(decimal.Zero) &&
			c.FeePercentage.LessThan(decimal.NewFromInt(1)),
			models.ErrInvalidFeePercentage},

		{c.ResolverGracePeriod > 0, models.ErrInvalidGracePeriod},
		{c.MinMarketDuration >= 0, models.ErrInvalidDeadline},
		{c.OddsCacheTTL >= 0, models.ErrInvalidOddsBounds},
	}

	for _, v := range checks {
		if !v.ok {
			return v.err
		}
	}
	return nil
}

// GetDefaultConfig returns the default markets configuration
func GetDefaultConfig() *Config {
	return &Config{
		DefaultLiquidity:    decimal.NewFromInt(100),
		VirtualLiquidity:    decimal.NewFromInt(10),
		OddsFloorBps:        10100,   // 1.01x
		OddsCeilingBps:      1000000, // 100x
		MaxQuoteIterations:  25,
		QuoteTolerance:      decimal.NewFromFloat(0.000001), // relative to initial bracket
		FeePercentage:       decimal.NewFromFloat(0.02),     // 2%
		ResolverGracePeriod: 7 * 24 * time.Hour,
		MinMarketDuration:   time.Hour,
		OddsCacheTTL:        5 * time.Second,
	}
}
