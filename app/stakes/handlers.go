package stakes

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/0xBased-lang/kektech/app/api"
	"github.com/0xBased-lang/kektech/app/auth"
	"github.com/0xBased-lang/kektech/models"
)

// Handler handles HTTP requests for stakes
type Handler struct {
	service Service
}

// NewHandler creates a new stake handler
func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) parseMarketID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		api.BadRequestResponse(c, "Invalid market ID format")
		return uuid.Nil, false
	}
	return id, true
}

// handleServiceError maps stake placement errors to HTTP responses
func (h *Handler) handleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, models.ErrRecordNotFound):
		api.NotFoundResponse(c, "Market")
	case errors.Is(err, models.ErrNoPosition):
		api.NotFoundResponse(c, "Position")
	case errors.Is(err, models.ErrOperationInProgress):
		api.ConflictResponse(c, err.Error())
	case errors.Is(err, models.ErrInsufficientBalance):
		api.ErrorResponse(c, http.StatusUnprocessableEntity, "INSUFFICIENT_BALANCE", err.Error(), nil)
	case errors.Is(err, models.ErrInvalidStakeAmount),
		errors.Is(err, models.ErrStakeTooSmall),
		errors.Is(err, models.ErrStakeTooLarge),
		errors.Is(err, models.ErrStakeExpired),
		errors.Is(err, models.ErrWhaleLimitExceeded),
		errors.Is(err, models.ErrSlippageExceeded),
		errors.Is(err, models.ErrOppositePosition),
		errors.Is(err, models.ErrInvalidOutcome),
		errors.Is(err, models.ErrMarketNotActive),
		errors.Is(err, models.ErrBettingClosed),
		errors.Is(err, models.ErrQuoteNotConverged):
		api.BadRequestResponse(c, err.Error())
	default:
		api.InternalErrorResponse(c, "Failed to process stake")
	}
}

// PlaceStake godoc
// @Summary Place a stake
// @Description Buy outcome shares on a market with expiry, slippage and whale protection
// @Tags stakes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Market ID"
// @Param request body PlaceStakeRequest true "Stake placement request"
// @Success 201 {object} api.Response{data=StakeResponse}
// @Failure 400 {object} api.Response{error=api.ErrorInfo}
// @Failure 404 {object} api.Response{error=api.ErrorInfo}
// @Failure 409 {object} api.Response{error=api.ErrorInfo}
// @Failure 422 {object} api.Response{error=api.ErrorInfo}
// @Router /api/v1/markets/{id}/stakes [post]
func (h *Handler) PlaceStake(c *gin.Context) {
	marketID, ok := h.parseMarketID(c)
	if !ok {
		return
	}
	participantID, ok := auth.ParticipantID(c)
	if !ok {
		api.UnauthorizedResponse(c)
		return
	}

	var req PlaceStakeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.BadRequestResponse(c, err.Error())
		return
	}

	result, err := h.service.PlaceStake(c.Request.Context(), marketID, participantID, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	api.CreatedResponse(c, "Stake placed successfully", result)
}

// Quote godoc
// @Summary Quote a stake
// @Description Price a stake without placing it
// @Tags stakes
// @Accept json
// @Produce json
// @Param id path string true "Market ID"
// @Param outcome query int true "Outcome (1 or 2)"
// @Param amount query string true "Payment amount"
// @Success 200 {object} api.Response{data=QuoteResponse}
// @Failure 400 {object} api.Response{error=api.ErrorInfo}
// @Failure 404 {object} api.Response{error=api.ErrorInfo}
// @Router /api/v1/markets/{id}/quote [get]
func (h *Handler) Quote(c *gin.Context) {
	marketID, ok := h.parseMarketID(c)
	if !ok {
		return
	}

	var req QuoteRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		api.BadRequestResponse(c, err.Error())
		return
	}

	result, err := h.service.Quote(c.Request.Context(), marketID, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	api.SuccessResponse(c, http.StatusOK, "Quote generated successfully", result)
}

// GetPosition godoc
// @Summary Get own position
// @Description Get the authenticated participant's position in a market
// @Tags stakes
// @Produce json
// @Security BearerAuth
// @Param id path string true "Market ID"
// @Success 200 {object} api.Response{data=PositionResponse}
// @Failure 404 {object} api.Response{error=api.ErrorInfo}
// @Router /api/v1/markets/{id}/position [get]
func (h *Handler) GetPosition(c *gin.Context) {
	marketID, ok := h.parseMarketID(c)
	if !ok {
		return
	}
	participantID, ok := auth.ParticipantID(c)
	if !ok {
		api.UnauthorizedResponse(c)
		return
	}

	result, err := h.service.GetPosition(c.Request.Context(), marketID, participantID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	api.SuccessResponse(c, http.StatusOK, "Position retrieved successfully", result)
}

// GetPortfolio godoc
// @Summary Get own portfolio
// @Description Get all positions held by the authenticated participant
// @Tags stakes
// @Produce json
// @Security BearerAuth
// @Success 200 {object} api.Response{data=PortfolioResponse}
// @Router /api/v1/portfolio [get]
func (h *Handler) GetPortfolio(c *gin.Context) {
	participantID, ok := auth.ParticipantID(c)
	if !ok {
		api.UnauthorizedResponse(c)
		return
	}

	result, err := h.service.GetPortfolio(c.Request.Context(), participantID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	api.SuccessResponse(c, http.StatusOK, "Portfolio retrieved successfully", result)
}
