package deps

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/0xBased-lang/kektech/internal/guard"
	"github.com/0xBased-lang/kektech/internal/logger"
	"github.com/0xBased-lang/kektech/internal/sanitizer"
	"github.com/0xBased-lang/kektech/internal/security"
)

// Container holds the shared dependencies every feature module draws from.
// Feature-specific wiring (caches, fee sinks) stays in main where the
// modules are mounted.
type Container struct {
	DB         *gorm.DB
	TokenMaker security.Maker
	Sanitizer  sanitizer.HTMLStripperer
	Logger     logger.Logger

	// Guard serializes in-process operations per market across the stake
	// and claim surfaces.
	Guard *guard.EntryGuard

	// AuthRequired is the token-verification middleware, set once the auth
	// module is initialized.
	AuthRequired gin.HandlerFunc
}

func NewContainer(db *gorm.DB,
	tokenMaker security.Maker,
	sanitizer sanitizer.HTMLStripperer,
	logger logger.Logger,
) *Container {
	return &Container{
		DB:         db,
		TokenMaker: tokenMaker,
		Sanitizer:  sanitizer,
		Logger:     logger,
		Guard:      guard.NewEntryGuard(),
	}
}
