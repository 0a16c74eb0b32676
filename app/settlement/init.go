package settlement

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/0xBased-lang/kektech/internal/logger"
)

// Dependencies represents the dependencies needed for the settlement module
type Dependencies struct {
	DB           *gorm.DB
	Config       *Config
	Guard        EntryGuard
	Logger       logger.Logger
	AuthRequired gin.HandlerFunc
}

// Init initializes the settlement module, mounts routes, and returns the
// treasury fee sink for the resolution module to use at finalization.
func Init(r *gin.RouterGroup, deps Dependencies) *TreasurySink {
	config := deps.Config
	if config == nil {
		config = GetDefaultConfig()
	}
	if err := config.Validate(); err != nil {
		panic("Invalid settlement configuration: " + err.Error())
	}

	repo := NewRepository(deps.DB)
	srvs := NewService(repo, deps.Guard, deps.Logger)
	handler := NewHandler(srvs)

	group := r.Group("/markets/:id/claim")
	group.GET("", deps.AuthRequired, handler.PreviewClaim)
	group.POST("", deps.AuthRequired, handler.Claim)

	return NewTreasurySink(repo, config.TreasuryID())
}
