package markets

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/0xBased-lang/kektech/app/api"
	"github.com/0xBased-lang/kektech/internal/cache"
	"github.com/0xBased-lang/kektech/internal/logger"
	"github.com/0xBased-lang/kektech/internal/sanitizer"
)

// Dependencies represents the dependencies needed for the markets module
type Dependencies struct {
	DB           *gorm.DB
	Config       *Config
	Sanitizer    sanitizer.HTMLStripperer
	Cache        cache.Cache[OddsQuote]
	Logger       logger.Logger
	AuthRequired gin.HandlerFunc
}

// Init initializes the markets module, mounts routes, and returns the
// service for background consumers such as the void sweeper.
func Init(r *gin.RouterGroup, deps Dependencies) Service {
	config := deps.Config
	if config == nil {
		config = GetDefaultConfig()
	}
	if err := config.Validate(); err != nil {
		panic("Invalid markets configuration: " + err.Error())
	}

	pe := NewPricingEngine(config)
	repo := NewRepository(deps.DB)
	srvs := NewService(repo, config, pe, deps.Cache, deps.Logger)
	handler := NewHandler(srvs, deps.Sanitizer)

	marketsGroup := r.Group("/markets")
	marketsGroup.GET("", handler.GetMarkets)
	marketsGroup.GET("/:id", handler.GetMarketByID)
	marketsGroup.GET("/:id/state", handler.GetMarketState)
	marketsGroup.GET("/:id/odds", handler.GetOdds)
	marketsGroup.POST("", deps.AuthRequired, api.Can("market:create"), handler.CreateMarket)
	marketsGroup.POST("/:id/activate", deps.AuthRequired, api.Can("market:activate"), handler.ActivateMarket)
	marketsGroup.POST("/:id/void", handler.VoidMarket)

	return srvs
}
