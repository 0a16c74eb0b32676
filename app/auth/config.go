package auth

import (
	"time"

	"github.com/0xBased-lang/kektech/models"
)

// Config represents the configuration for the auth module
type Config struct {
	SymmetricKey  string        `env:"AUTH_SYMMETRIC_KEY"`
	TokenDuration time.Duration `env:"AUTH_TOKEN_DURATION"`

	// DevTokenIssuance exposes POST /auth/token, which mints a token for an
	// arbitrary participant ID. Never enable outside local development.
	DevTokenIssuance bool `env:"AUTH_DEV_TOKEN_ISSUANCE"`
}

func (c *Config) Validate() error {
	if len(c.SymmetricKey) != 32 {
		return models.ErrInvalidSymmetricKey
	}
	if c.TokenDuration <= 0 {
		return models.ErrInvalidTokenDuration
	}
	return nil
}

// GetDefaultConfig returns the default auth configuration
func GetDefaultConfig() *Config {
	return &Config{
		TokenDuration: 24 * time.Hour,
	}
}
