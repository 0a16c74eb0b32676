package settlement

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/0xBased-lang/kektech/app/api"
	"github.com/0xBased-lang/kektech/app/auth"
	"github.com/0xBased-lang/kektech/models"
)

// Handler handles HTTP requests for claims
type Handler struct {
	service Service
}

// NewHandler creates a new settlement handler
func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) parseUUIDFromParam(c *gin.Context, paramName string) (uuid.UUID, bool) {
	param := c.Param(paramName)
	id, err := uuid.Parse(param)
	if err != nil {
		api.BadRequestResponse(c, "Invalid "+paramName+" format")
		return uuid.Nil, false
	}
	return id, true
}

// handleServiceError maps common service errors to HTTP responses
func (h *Handler) handleServiceError(c *gin.Context, err error, operation string) {
	switch {
	case errors.Is(err, models.ErrRecordNotFound):
		api.NotFoundResponse(c, "Market")
	case errors.Is(err, models.ErrNoPosition):
		api.NotFoundResponse(c, "Position")
	case errors.Is(err, models.ErrAlreadyClaimed):
		api.ConflictResponse(c, err.Error())
	case errors.Is(err, models.ErrOperationInProgress):
		api.ConflictResponse(c, err.Error())
	case errors.Is(err, models.ErrMarketNotFinalized),
		errors.Is(err, models.ErrNothingToClaim),
		errors.Is(err, models.ErrNoWinningShares):
		api.BadRequestResponse(c, err.Error())
	default:
		api.InternalErrorResponse(c, "Failed to "+operation)
	}
}

// PreviewClaim godoc
// @Summary Preview a claim
// @Description Show what claiming would pay for the caller's position without executing it
// @Tags settlement
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Market ID" format(uuid)
// @Success 200 {object} api.Response{data=ClaimPreviewResponse}
// @Failure 400 {object} api.Response{error=api.ErrorInfo}
// @Failure 404 {object} api.Response{error=api.ErrorInfo}
// @Router /api/v1/markets/{id}/claim [get]
func (h *Handler) PreviewClaim(c *gin.Context) {
	marketID, ok := h.parseUUIDFromParam(c, "id")
	if !ok {
		return
	}
	participantID, ok := auth.ParticipantID(c)
	if !ok {
		api.UnauthorizedResponse(c)
		return
	}

	resp, err := h.service.PreviewClaim(c.Request.Context(), marketID, participantID)
	if err != nil {
		h.handleServiceError(c, err, "preview claim")
		return
	}
	api.SuccessResponse(c, http.StatusOK, "Claim preview generated successfully", resp)
}

// Claim godoc
// @Summary Claim winnings or a refund
// @Description Pay out a winning position on a finalized market, or refund the original stake on a voided one
// @Tags settlement
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Market ID" format(uuid)
// @Success 200 {object} api.Response{data=ClaimResponse}
// @Failure 400 {object} api.Response{error=api.ErrorInfo}
// @Failure 404 {object} api.Response{error=api.ErrorInfo}
// @Failure 409 {object} api.Response{error=api.ErrorInfo}
// @Router /api/v1/markets/{id}/claim [post]
func (h *Handler) Claim(c *gin.Context) {
	marketID, ok := h.parseUUIDFromParam(c, "id")
	if !ok {
		return
	}
	participantID, ok := auth.ParticipantID(c)
	if !ok {
		api.UnauthorizedResponse(c)
		return
	}

	resp, err := h.service.Claim(c.Request.Context(), marketID, participantID)
	if err != nil {
		h.handleServiceError(c, err, "settle claim")
		return
	}
	api.SuccessResponse(c, http.StatusOK, "Claim settled successfully", resp)
}
