package auth

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/0xBased-lang/kektech/app/api"
	"github.com/0xBased-lang/kektech/internal/security"
)

// Dependencies represents the dependencies needed for the auth module
type Dependencies struct {
	DB         *gorm.DB
	Config     *Config
	TokenMaker security.Maker
}

// Init wires the auth module and returns the authentication middleware for
// the router to apply to protected groups.
func Init(r *gin.RouterGroup, deps Dependencies) gin.HandlerFunc {
	config := deps.Config
	if config == nil {
		config = GetDefaultConfig()
	}

	repo := NewRepository(deps.DB)
	srvs := NewService(repo)
	middleware := Middleware(deps.TokenMaker, srvs)

	handler := NewHandler(srvs, deps.TokenMaker, config)
	authGroup := r.Group("/auth")
	authGroup.GET("/me", middleware, handler.Me)
	authGroup.POST("/roles", middleware, api.Can("roles:grant"), handler.GrantRole)
	if config.DevTokenIssuance {
		authGroup.POST("/token", handler.IssueToken)
	}

	return middleware
}
