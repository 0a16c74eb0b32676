package resolution

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/0xBased-lang/kektech/app/api"
	"github.com/0xBased-lang/kektech/internal/logger"
	"github.com/0xBased-lang/kektech/internal/sanitizer"
)

// Dependencies represents the dependencies needed for the resolution module
type Dependencies struct {
	DB           *gorm.DB
	Config       *Config
	FeeSink      FeeSink
	Sanitizer    sanitizer.HTMLStripperer
	Logger       logger.Logger
	AuthRequired gin.HandlerFunc
}

// Init initializes the resolution module and mounts routes
func Init(r *gin.RouterGroup, deps Dependencies) {
	config := deps.Config
	if config == nil {
		config = GetDefaultConfig()
	}
	if err := config.Validate(); err != nil {
		panic("Invalid resolution configuration: " + err.Error())
	}

	repo := NewRepository(deps.DB)
	srvs := NewService(repo, config, deps.FeeSink, deps.Logger)
	handler := NewHandler(srvs, deps.Sanitizer)

	group := r.Group("/markets/:id/resolution")
	group.GET("", handler.GetResolution)
	group.POST("", deps.AuthRequired, api.Can("resolution:propose"), handler.ProposeOutcome)
	group.POST("/signals", deps.AuthRequired, api.Can("resolution:signal"), handler.SubmitSignals)
	group.POST("/challenge", deps.AuthRequired, handler.Challenge)
	group.POST("/ruling", deps.AuthRequired, api.Can("resolution:rule"), handler.Rule)
	group.POST("/finalize", deps.AuthRequired, api.Can("resolution:finalize"), handler.Finalize)
	group.POST("/admin", deps.AuthRequired, api.Can("resolution:admin"), handler.AdminResolve)
}
