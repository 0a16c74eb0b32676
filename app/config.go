package app

import (
	"github.com/0xBased-lang/kektech/app/auth"
	"github.com/0xBased-lang/kektech/app/database"
	"github.com/0xBased-lang/kektech/app/markets"
	"github.com/0xBased-lang/kektech/app/resolution"
	"github.com/0xBased-lang/kektech/app/settlement"
	"github.com/0xBased-lang/kektech/app/stakes"
	"github.com/0xBased-lang/kektech/internal/nexus"
)

type Config struct {
	DB database.Config

	Auth       auth.Config
	Markets    markets.Config
	Stakes     stakes.Config
	Resolution resolution.Config
	Settlement settlement.Config

	AppHost string `env:"APP_HOST" default:"localhost"`
	AppPort string `env:"APP_PORT" default:"8080"`
	Env     string `env:"APP_ENV" default:"development"`

	CacheBackend string `env:"CACHE_BACKEND" default:"memory"`
	RedisAddr    string `env:"REDIS_ADDR" default:"localhost:6379"`
}

// LoadConfig loads the application configuration from environment variables
// or a config file. Module defaults fill in anything the environment leaves
// unset.
func LoadConfig() (*Config, error) {
	c := &Config{
		Auth:       *auth.GetDefaultConfig(),
		Markets:    *markets.GetDefaultConfig(),
		Stakes:     *stakes.GetDefaultConfig(),
		Resolution: *resolution.GetDefaultConfig(),
		Settlement: *settlement.GetDefaultConfig(),
	}
	err := nexus.NewLoader().Load(c)
	return c, err
}
