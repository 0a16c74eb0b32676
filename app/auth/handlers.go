package auth

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/0xBased-lang/kektech/app/api"
	"github.com/0xBased-lang/kektech/internal/security"
	"github.com/0xBased-lang/kektech/models"
)

// Handler handles HTTP requests for auth
type Handler struct {
	service    Service
	tokenMaker security.Maker
	config     *Config
}

// NewHandler creates a new auth handler
func NewHandler(service Service, tokenMaker security.Maker, config *Config) *Handler {
	return &Handler{
		service:    service,
		tokenMaker: tokenMaker,
		config:     config,
	}
}

// MeResponse describes the authenticated caller
type MeResponse struct {
	ParticipantID string   `json:"participant_id"`
	Permissions   []string `json:"permissions"`
}

// Me godoc
// @Summary Get the authenticated participant
// @Description Returns the caller's participant ID and effective permissions
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} api.Response{data=MeResponse}
// @Failure 401 {object} api.Response{error=api.ErrorInfo}
// @Router /api/v1/auth/me [get]
func (h *Handler) Me(c *gin.Context) {
	participantID, ok := ParticipantID(c)
	if !ok {
		api.UnauthorizedResponse(c)
		return
	}

	permissions, err := h.service.GetPermissions(c.Request.Context(), participantID)
	if err != nil {
		api.InternalErrorResponse(c, "Failed to load permissions")
		return
	}

	api.SuccessResponse(c, http.StatusOK, "Participant retrieved successfully", &MeResponse{
		ParticipantID: participantID.String(),
		Permissions:   permissions,
	})
}

// GrantRoleRequest assigns a role to a participant
type GrantRoleRequest struct {
	ParticipantID uuid.UUID `json:"participant_id" binding:"required"`
	Role          string    `json:"role" binding:"required"`
}

// GrantRole godoc
// @Summary Grant a role
// @Description Assign a privileged role to a participant
// @Tags auth
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body GrantRoleRequest true "Role grant"
// @Success 201 {object} api.Response
// @Failure 400 {object} api.Response{error=api.ErrorInfo}
// @Failure 404 {object} api.Response{error=api.ErrorInfo}
// @Router /api/v1/auth/roles [post]
func (h *Handler) GrantRole(c *gin.Context) {
	var req GrantRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.BadRequestResponse(c, err.Error())
		return
	}

	if err := h.service.GrantRole(c.Request.Context(), req.ParticipantID, req.Role); err != nil {
		if errors.Is(err, models.ErrRecordNotFound) {
			api.NotFoundResponse(c, "Role")
			return
		}
		api.InternalErrorResponse(c, "Failed to grant role")
		return
	}
	api.CreatedResponse(c, "Role granted successfully", nil)
}

// TokenRequest mints a development token for a participant
type TokenRequest struct {
	ParticipantID uuid.UUID `json:"participant_id" binding:"required"`
}

// TokenResponse carries a freshly minted bearer token
type TokenResponse struct {
	Token     string `json:"token"`
	ExpiresAt string `json:"expires_at"`
}

// IssueToken godoc
// @Summary Issue a development token
// @Description Mint a bearer token for a participant. Only available when dev issuance is enabled.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body TokenRequest true "Participant"
// @Success 201 {object} api.Response{data=TokenResponse}
// @Failure 400 {object} api.Response{error=api.ErrorInfo}
// @Router /api/v1/auth/token [post]
func (h *Handler) IssueToken(c *gin.Context) {
	var req TokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.BadRequestResponse(c, err.Error())
		return
	}

	token, payload, err := h.tokenMaker.CreateToken(req.ParticipantID, h.config.TokenDuration, 1, security.TokenScopeAccess)
	if err != nil {
		api.InternalErrorResponse(c, "Failed to create token")
		return
	}
	api.CreatedResponse(c, "Token issued successfully", &TokenResponse{
		Token:     token,
		ExpiresAt: payload.ExpiredAt.Format("2006-01-02T15:04:05Z07:00"),
	})
}
