package stakes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/0xBased-lang/kektech/app/markets"
	"github.com/0xBased-lang/kektech/internal/cache"
	"github.com/0xBased-lang/kektech/internal/logger"
)

// Dependencies represents the dependencies needed for the stakes module
type Dependencies struct {
	DB            *gorm.DB
	Config        *Config
	MarketsConfig *markets.Config
	Guard         EntryGuard
	OddsCache     cache.Cache[markets.OddsQuote]
	Logger        logger.Logger
	AuthRequired  gin.HandlerFunc
}

// Init initializes the stakes module and mounts routes
func Init(r *gin.RouterGroup, deps Dependencies) {
	config := deps.Config
	if config == nil {
		config = GetDefaultConfig()
	}
	if err := config.Validate(); err != nil {
		panic("Invalid stakes configuration: " + err.Error())
	}

	marketsConfig := deps.MarketsConfig
	if marketsConfig == nil {
		marketsConfig = markets.GetDefaultConfig()
	}

	repo := NewRepository(deps.DB)
	pricing := markets.NewPricingEngine(marketsConfig)
	safeguards := NewSafeguardEngine(config)
	srvs := NewService(repo, config, pricing, safeguards, deps.Guard, deps.OddsCache, deps.Logger)
	handler := NewHandler(srvs)

	marketsGroup := r.Group("/markets")
	marketsGroup.GET("/:id/quote", handler.Quote)
	marketsGroup.POST("/:id/stakes", deps.AuthRequired, handler.PlaceStake)
	marketsGroup.GET("/:id/position", deps.AuthRequired, handler.GetPosition)

	r.GET("/portfolio", deps.AuthRequired, handler.GetPortfolio)
}
