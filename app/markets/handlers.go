package markets

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/0xBased-lang/kektech/app/api"
	"github.com/0xBased-lang/kektech/internal/sanitizer"
	"github.com/0xBased-lang/kektech/internal/validator"
	"github.com/0xBased-lang/kektech/models"
)

// Handler handles HTTP requests for markets
type Handler struct {
	service   Service
	sanitizer sanitizer.HTMLStripperer
}

// NewHandler creates a new market handler
func NewHandler(service Service, sanitizer sanitizer.HTMLStripperer) *Handler {
	return &Handler{
		service:   service,
		sanitizer: sanitizer,
	}
}

// parseUUIDFromParam extracts and validates UUID from path parameter
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
func (h *Handler) handleServiceError(c *gin.Context, err error, entityName, operation string) {
	switch {
	case errors.Is(err, models.ErrRecordNotFound):
		api.NotFoundResponse(c, entityName)
	case errors.Is(err, models.ErrInvalidTransition),
		errors.Is(err, models.ErrGracePeriodNotOver),
		errors.Is(err, models.ErrInvalidDeadline),
		errors.Is(err, models.ErrInvalidMarketQuestion),
		errors.Is(err, models.ErrInvalidOutcomeLabel),
		errors.Is(err, models.ErrInvalidLiquidity):
		api.BadRequestResponse(c, err.Error())
	default:
		api.InternalErrorResponse(c, "Failed to "+operation)
	}
}

// GetMarkets godoc
// @Summary List markets
// @Description Get a paginated list of markets with optional status filter
// @Tags markets
// @Accept json
// @Produce json
// @Param status query string false "Filter by market status" Enums(pending,active,resolving,disputed,finalized,voided)
// @Param page query int false "Page number" default(1)
// @Param per_page query int false "Items per page" default(20)
// @Success 200 {object} api.Response{data=[]MarketResponse}
// @Failure 400 {object} api.Response{error=api.ErrorInfo}
// @Failure 500 {object} api.Response{error=api.ErrorInfo}
// @Router /api/v1/markets [get]
func (h *Handler) GetMarkets(c *gin.Context) {
	var filters MarketFilters
	if err := c.ShouldBindQuery(&filters); err != nil {
		api.BadRequestResponse(c, err.Error())
		return
	}

	result, err := h.service.GetMarkets(c.Request.Context(), &filters)
	if err != nil {
		api.InternalErrorResponse(c, "Failed to fetch markets")
		return
	}

	meta := api.PaginationMeta{
		Page:       result.Page,
		PerPage:    result.PerPage,
		Total:      result.Total,
		TotalPages: int((result.Total + int64(result.PerPage) - 1) / int64(result.PerPage)),
		HasNext:    int64(result.Page*result.PerPage) < result.Total,
		HasPrev:    result.Page > 1,
	}
	api.SuccessResponseWithMeta(c, http.StatusOK, "Markets retrieved successfully", result.Markets, meta)
}

// GetMarketByID godoc
// @Summary Get market details
// @Description Get detailed information about a specific market
// @Tags markets
// @Accept json
// @Produce json
// @Param id path string true "Market ID"
// @Success 200 {object} api.Response{data=MarketResponse}
// @Failure 400 {object} api.Response{error=api.ErrorInfo}
// @Failure 404 {object} api.Response{error=api.ErrorInfo}
// @Failure 500 {object} api.Response{error=api.ErrorInfo}
// @Router /api/v1/markets/{id} [get]
func (h *Handler) GetMarketByID(c *gin.Context) {
	id, ok := h.parseUUIDFromParam(c, "id")
	if !ok {
		return
	}

	result, err := h.service.GetMarketByID(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err, "Market", "fetch market")
		return
	}
	api.SuccessResponse(c, http.StatusOK, "Market retrieved successfully", result)
}

// GetMarketState godoc
// @Summary Get market lifecycle state
// @Description Get the current lifecycle state and result of a market
// @Tags markets
// @Accept json
// @Produce json
// @Param id path string true "Market ID"
// @Success 200 {object} api.Response{data=MarketStateResponse}
// @Failure 400 {object} api.Response{error=api.ErrorInfo}
// @Failure 404 {object} api.Response{error=api.ErrorInfo}
// @Router /api/v1/markets/{id}/state [get]
func (h *Handler) GetMarketState(c *gin.Context) {
	id, ok := h.parseUUIDFromParam(c, "id")
	if !ok {
		return
	}

	result, err := h.service.GetMarketState(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err, "Market", "fetch market state")
		return
	}
	api.SuccessResponse(c, http.StatusOK, "Market state retrieved successfully", result)
}

// GetOdds godoc
// @Summary Get display odds
// @Description Get the current clamped display odds for both outcomes
// @Tags markets
// @Accept json
// @Produce json
// @Param id path string true "Market ID"
// @Success 200 {object} api.Response{data=OddsResponse}
// @Failure 400 {object} api.Response{error=api.ErrorInfo}
// @Failure 404 {object} api.Response{error=api.ErrorInfo}
// @Failure 500 {object} api.Response{error=api.ErrorInfo}
// @Router /api/v1/markets/{id}/odds [get]
func (h *Handler) GetOdds(c *gin.Context) {
	id, ok := h.parseUUIDFromParam(c, "id")
	if !ok {
		return
	}

	result, err := h.service.GetOdds(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err, "Market", "price market")
		return
	}
	api.SuccessResponse(c, http.StatusOK, "Odds retrieved successfully", result)
}

// CreateMarket godoc
// @Summary Create a market
// @Description Create a new binary market in the pending state
// @Tags markets
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateMarketRequest true "Market creation request"
// @Success 201 {object} api.Response{data=MarketResponse}
// @Failure 400 {object} api.Response{error=api.ErrorInfo}
// @Failure 500 {object} api.Response{error=api.ErrorInfo}
// @Router /api/v1/markets [post]
func (h *Handler) CreateMarket(c *gin.Context) {
	var req CreateMarketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.BadRequestResponse(c, err.Error())
		return
	}

	req.Question = h.sanitizer.StripHTML(req.Question)
	req.Outcome1Label = h.sanitizer.StripHTML(req.Outcome1Label)
	req.Outcome2Label = h.sanitizer.StripHTML(req.Outcome2Label)

	v := validator.New()
	if !req.Validate(v, time.Now()) {
		api.ValidationErrorResponse(c, v.Errors)
		return
	}

	result, err := h.service.CreateMarket(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err, "Market", "create market")
		return
	}
	api.CreatedResponse(c, "Market created successfully", result)
}

// ActivateMarket godoc
// @Summary Activate a market
// @Description Open a pending market for betting
// @Tags markets
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Market ID"
// @Success 200 {object} api.Response{data=MarketResponse}
// @Failure 400 {object} api.Response{error=api.ErrorInfo}
// @Failure 404 {object} api.Response{error=api.ErrorInfo}
// @Router /api/v1/markets/{id}/activate [post]
func (h *Handler) ActivateMarket(c *gin.Context) {
	id, ok := h.parseUUIDFromParam(c, "id")
	if !ok {
		return
	}

	result, err := h.service.ActivateMarket(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err, "Market", "activate market")
		return
	}
	api.UpdatedResponse(c, "Market activated successfully", result)
}

// VoidMarket godoc
// @Summary Void a timed out market
// @Description Void an active market whose resolver grace period has elapsed
// @Tags markets
// @Accept json
// @Produce json
// @Param id path string true "Market ID"
// @Success 200 {object} api.Response{data=MarketResponse}
// @Failure 400 {object} api.Response{error=api.ErrorInfo}
// @Failure 404 {object} api.Response{error=api.ErrorInfo}
// @Router /api/v1/markets/{id}/void [post]
func (h *Handler) VoidMarket(c *gin.Context) {
	id, ok := h.parseUUIDFromParam(c, "id")
	if !ok {
		return
	}

	result, err := h.service.VoidTimedOutMarket(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err, "Market", "void market")
		return
	}
	api.UpdatedResponse(c, "Market voided successfully", result)
}
