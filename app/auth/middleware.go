package auth

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/0xBased-lang/kektech/app/api"
	"github.com/0xBased-lang/kektech/internal/security"
)

const (
	AuthorizationHeaderKey  = "Authorization"
	AuthorizationTypeBearer = "Bearer"

	participantIDKey = "participantID"
	permissionsKey   = "permissions"
)

// Middleware verifies the bearer token and loads the caller's permissions
// into the request context.
func Middleware(tokenMaker security.Maker, authService Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader(AuthorizationHeaderKey)
		if authHeader == "" {
			api.UnauthorizedResponse(c)
			c.Abort()
			return
		}

		fields := strings.Fields(authHeader)
		if len(fields) < 2 || fields[0] != AuthorizationTypeBearer {
			api.UnauthorizedResponse(c)
			c.Abort()
			return
		}

		payload, err := tokenMaker.VerifyToken(fields[1])
		if err != nil {
			api.UnauthorizedResponse(c)
			c.Abort()
			return
		}

		permissions, err := authService.GetPermissions(c.Request.Context(), payload.UserID)
		if err != nil {
			api.ForbiddenResponse(c, "Could not retrieve participant permissions")
			c.Abort()
			return
		}

		c.Set(participantIDKey, payload.UserID)
		c.Set(permissionsKey, permissions)
		c.Next()
	}
}

// ParticipantID returns the authenticated participant from the context.
func ParticipantID(c *gin.Context) (uuid.UUID, bool) {
	value, exists := c.Get(participantIDKey)
	if !exists {
		return uuid.Nil, false
	}
	id, ok := value.(uuid.UUID)
	return id, ok
}
