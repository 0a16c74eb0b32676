package resolution

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/0xBased-lang/kektech/app/api"
	"github.com/0xBased-lang/kektech/app/auth"
	"github.com/0xBased-lang/kektech/internal/sanitizer"
	"github.com/0xBased-lang/kektech/models"
)

// Handler handles HTTP requests for market resolution
type Handler struct {
	service   Service
	sanitizer sanitizer.HTMLStripperer
}

// NewHandler creates a new resolution handler
func NewHandler(service Service, sanitizer sanitizer.HTMLStripperer) *Handler {
	return &Handler{service: service, sanitizer: sanitizer}
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
	case errors.Is(err, models.ErrNoOpenResolution):
		api.NotFoundResponse(c, "Resolution")
	case errors.Is(err, models.ErrResolutionExists),
		errors.Is(err, models.ErrChallengeExists):
		api.ConflictResponse(c, err.Error())
	case errors.Is(err, models.ErrInsufficientBalance):
		api.ErrorResponse(c, http.StatusUnprocessableEntity, "INSUFFICIENT_BALANCE", err.Error(), nil)
	case errors.Is(err, models.ErrInvalidTransition),
		errors.Is(err, models.ErrInvalidOutcome),
		errors.Is(err, models.ErrInvalidDeadline),
		errors.Is(err, models.ErrDisputeWindowClosed),
		errors.Is(err, models.ErrDisputeWindowOpen),
		errors.Is(err, models.ErrBondTooSmall),
		errors.Is(err, models.ErrNoOpenChallenge),
		errors.Is(err, models.ErrResolutionFinalized),
		errors.Is(err, models.ErrInvalidDisputeReason),
		errors.Is(err, models.ErrInvalidSignalCounts),
		errors.Is(err, models.ErrMarketNotDisputed):
		api.BadRequestResponse(c, err.Error())
	default:
		api.InternalErrorResponse(c, "Failed to "+operation)
	}
}

// GetResolution godoc
// @Summary Get resolution state
// @Description Get the resolution and dispute state of a market
// @Tags resolution
// @Accept json
// @Produce json
// @Param id path string true "Market ID" format(uuid)
// @Success 200 {object} api.Response{data=ResolutionResponse}
// @Failure 404 {object} api.Response{error=api.ErrorInfo}
// @Failure 500 {object} api.Response{error=api.ErrorInfo}
// @Router /api/v1/markets/{id}/resolution [get]
func (h *Handler) GetResolution(c *gin.Context) {
	marketID, ok := h.parseUUIDFromParam(c, "id")
	if !ok {
		return
	}

	resp, err := h.service.GetResolution(c.Request.Context(), marketID)
	if err != nil {
		h.handleServiceError(c, err, "fetch resolution")
		return
	}
	api.SuccessResponse(c, http.StatusOK, "Resolution retrieved successfully", resp)
}

// ProposeOutcome godoc
// @Summary Propose an outcome
// @Description Propose the winning outcome for a market past its deadline, opening the dispute window
// @Tags resolution
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Market ID" format(uuid)
// @Param request body ProposeOutcomeRequest true "Proposed outcome"
// @Success 201 {object} api.Response{data=ResolutionResponse}
// @Failure 400 {object} api.Response{error=api.ErrorInfo}
// @Failure 404 {object} api.Response{error=api.ErrorInfo}
// @Failure 409 {object} api.Response{error=api.ErrorInfo}
// @Router /api/v1/markets/{id}/resolution [post]
func (h *Handler) ProposeOutcome(c *gin.Context) {
	marketID, ok := h.parseUUIDFromParam(c, "id")
	if !ok {
		return
	}
	proposerID, ok := auth.ParticipantID(c)
	if !ok {
		api.UnauthorizedResponse(c)
		return
	}

	var req ProposeOutcomeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.BadRequestResponse(c, err.Error())
		return
	}
	req.Evidence = h.sanitizer.StripHTML(req.Evidence)

	resp, err := h.service.ProposeOutcome(c.Request.Context(), marketID, proposerID, &req)
	if err != nil {
		h.handleServiceError(c, err, "propose outcome")
		return
	}
	api.CreatedResponse(c, "Outcome proposed successfully", resp)
}

// SubmitSignals godoc
// @Summary Submit community dispute signals
// @Description Record cumulative agree/disagree totals for an open dispute window
// @Tags resolution
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Market ID" format(uuid)
// @Param request body SignalRequest true "Cumulative signal counts"
// @Success 200 {object} api.Response{data=SignalResponse}
// @Failure 400 {object} api.Response{error=api.ErrorInfo}
// @Failure 404 {object} api.Response{error=api.ErrorInfo}
// @Router /api/v1/markets/{id}/resolution/signals [post]
func (h *Handler) SubmitSignals(c *gin.Context) {
	marketID, ok := h.parseUUIDFromParam(c, "id")
	if !ok {
		return
	}
	aggregatorID, ok := auth.ParticipantID(c)
	if !ok {
		api.UnauthorizedResponse(c)
		return
	}

	var req SignalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.BadRequestResponse(c, err.Error())
		return
	}

	resp, err := h.service.SubmitDisputeSignals(c.Request.Context(), marketID, aggregatorID, &req)
	if err != nil {
		h.handleServiceError(c, err, "submit signals")
		return
	}
	api.SuccessResponse(c, http.StatusOK, "Signals recorded successfully", resp)
}

// Challenge godoc
// @Summary Challenge a proposed outcome
// @Description Post a bond-backed challenge against a proposed outcome while the window is open
// @Tags resolution
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Market ID" format(uuid)
// @Param request body ChallengeRequest true "Challenge details"
// @Success 201 {object} api.Response{data=ResolutionResponse}
// @Failure 400 {object} api.Response{error=api.ErrorInfo}
// @Failure 409 {object} api.Response{error=api.ErrorInfo}
// @Failure 422 {object} api.Response{error=api.ErrorInfo}
// @Router /api/v1/markets/{id}/resolution/challenge [post]
func (h *Handler) Challenge(c *gin.Context) {
	marketID, ok := h.parseUUIDFromParam(c, "id")
	if !ok {
		return
	}
	challengerID, ok := auth.ParticipantID(c)
	if !ok {
		api.UnauthorizedResponse(c)
		return
	}

	var req ChallengeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.BadRequestResponse(c, err.Error())
		return
	}
	req.Reason = h.sanitizer.StripHTML(req.Reason)

	resp, err := h.service.DisputeResolution(c.Request.Context(), marketID, challengerID, &req)
	if err != nil {
		h.handleServiceError(c, err, "challenge resolution")
		return
	}
	api.CreatedResponse(c, "Challenge recorded successfully", resp)
}

// Rule godoc
// @Summary Rule on an open challenge
// @Description Uphold or reject a bond-backed challenge; an upheld challenge refunds the bond and may replace the proposed outcome
// @Tags resolution
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Market ID" format(uuid)
// @Param request body RulingRequest true "Ruling"
// @Success 200 {object} api.Response{data=ResolutionResponse}
// @Failure 400 {object} api.Response{error=api.ErrorInfo}
// @Failure 404 {object} api.Response{error=api.ErrorInfo}
// @Router /api/v1/markets/{id}/resolution/ruling [post]
func (h *Handler) Rule(c *gin.Context) {
	marketID, ok := h.parseUUIDFromParam(c, "id")
	if !ok {
		return
	}
	investigatorID, ok := auth.ParticipantID(c)
	if !ok {
		api.UnauthorizedResponse(c)
		return
	}

	var req RulingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.BadRequestResponse(c, err.Error())
		return
	}
	req.Reason = h.sanitizer.StripHTML(req.Reason)

	resp, err := h.service.RuleOnChallenge(c.Request.Context(), marketID, investigatorID, &req)
	if err != nil {
		h.handleServiceError(c, err, "rule on challenge")
		return
	}
	api.SuccessResponse(c, http.StatusOK, "Ruling applied successfully", resp)
}

// Finalize godoc
// @Summary Finalize after the dispute window
// @Description Seal the proposed outcome once the dispute window has elapsed without a dispute
// @Tags resolution
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Market ID" format(uuid)
// @Success 200 {object} api.Response{data=ResolutionResponse}
// @Failure 400 {object} api.Response{error=api.ErrorInfo}
// @Failure 404 {object} api.Response{error=api.ErrorInfo}
// @Router /api/v1/markets/{id}/resolution/finalize [post]
func (h *Handler) Finalize(c *gin.Context) {
	marketID, ok := h.parseUUIDFromParam(c, "id")
	if !ok {
		return
	}
	callerID, ok := auth.ParticipantID(c)
	if !ok {
		api.UnauthorizedResponse(c)
		return
	}

	resp, err := h.service.FinalizeAfterWindow(c.Request.Context(), marketID, callerID)
	if err != nil {
		h.handleServiceError(c, err, "finalize resolution")
		return
	}
	api.SuccessResponse(c, http.StatusOK, "Resolution finalized successfully", resp)
}

// AdminResolve godoc
// @Summary Resolve a disputed market
// @Description Administrator override that finalizes a DISPUTED market with an explicit outcome and reason
// @Tags resolution
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Market ID" format(uuid)
// @Param request body AdminResolveRequest true "Override outcome and reason"
// @Success 200 {object} api.Response{data=ResolutionResponse}
// @Failure 400 {object} api.Response{error=api.ErrorInfo}
// @Failure 404 {object} api.Response{error=api.ErrorInfo}
// @Router /api/v1/markets/{id}/resolution/admin [post]
func (h *Handler) AdminResolve(c *gin.Context) {
	marketID, ok := h.parseUUIDFromParam(c, "id")
	if !ok {
		return
	}
	adminID, ok := auth.ParticipantID(c)
	if !ok {
		api.UnauthorizedResponse(c)
		return
	}

	var req AdminResolveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.BadRequestResponse(c, err.Error())
		return
	}
	req.Reason = h.sanitizer.StripHTML(req.Reason)

	resp, err := h.service.AdminResolveMarket(c.Request.Context(), marketID, adminID, &req)
	if err != nil {
		h.handleServiceError(c, err, "resolve disputed market")
		return
	}
	api.SuccessResponse(c, http.StatusOK, "Market resolved successfully", resp)
}
