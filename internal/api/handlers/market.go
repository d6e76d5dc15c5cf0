package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Chaitanya-OverDev/AgriAssist/internal/api/dto"
	"github.com/Chaitanya-OverDev/AgriAssist/internal/api/middleware"
	"github.com/Chaitanya-OverDev/AgriAssist/internal/core/docdb"
	"github.com/Chaitanya-OverDev/AgriAssist/internal/domain/errors"
	"github.com/Chaitanya-OverDev/AgriAssist/internal/domain/models"
	"github.com/Chaitanya-OverDev/AgriAssist/internal/services/market"
)

// MarketHandler handles mandi price endpoints. These run the eager
// workflow: stale data triggers an inline scrape.
type MarketHandler struct {
	marketService market.Service
	users         docdb.UsersCollection
}

// NewMarketHandler creates a new MarketHandler.
func NewMarketHandler(marketService market.Service, users docdb.UsersCollection) *MarketHandler {
	return &MarketHandler{
		marketService: marketService,
		users:         users,
	}
}

// MyDistrict handles GET /users/{userId}/market/my-district
// @Summary Prices for the user's district
// @Description Returns mandi prices for the user's saved district, refreshing when stale
// @Tags Market
// @Produce json
// @Param userId path string true "User ID"
// @Success 200 {object} dto.MarketResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/v1/users/{userId}/market/my-district [get]
func (h *MarketHandler) MyDistrict(c *gin.Context) {
	h.forUser(c, true)
}

// MyState handles GET /users/{userId}/market/my-state
// @Summary Prices for the user's state
// @Description Returns state-wide mandi prices, refreshing when stale
// @Tags Market
// @Produce json
// @Param userId path string true "User ID"
// @Success 200 {object} dto.MarketResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/v1/users/{userId}/market/my-state [get]
func (h *MarketHandler) MyState(c *gin.Context) {
	h.forUser(c, false)
}

// Search handles GET /market/search
// @Summary Search prices by state and district
// @Description Returns mandi prices for an explicit state and optional district
// @Tags Market
// @Produce json
// @Param state query string true "State name"
// @Param district query string false "District name"
// @Success 200 {object} dto.MarketResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/v1/market/search [get]
func (h *MarketHandler) Search(c *gin.Context) {
	state := c.Query("state")
	district := c.Query("district")
	if state == "" {
		middleware.HandleError(c, errors.NewValidationError("missing state", "query parameter state is required"))
		return
	}

	h.respond(c, state, district)
}

// forUser serves the user's saved location, state-wide or district-scoped.
func (h *MarketHandler) forUser(c *gin.Context, districtScoped bool) {
	ctx := c.Request.Context()
	userID := c.Param("userId")

	user, err := h.users.GetByID(ctx, userID)
	if err != nil {
		middleware.HandleError(c, errors.NewInternalError("failed to load user", err))
		return
	}
	if user == nil {
		middleware.HandleError(c, errors.NewNotFoundError("user", userID))
		return
	}
	if user.State == "" {
		middleware.HandleError(c, errors.NewBadRequestError("no saved location",
			"save GPS coordinates before browsing market prices"))
		return
	}

	district := ""
	if districtScoped {
		district = user.District
	}
	h.respond(c, user.State, district)
}

// respond runs the workflow and writes the listing.
func (h *MarketHandler) respond(c *gin.Context, state, district string) {
	rows, err := h.marketService.Workflow(c.Request.Context(), state, district)
	if err != nil {
		middleware.HandleError(c, errors.NewInternalError("failed to load market prices", err))
		return
	}

	label := district
	if label == "" {
		label = models.AllDistricts
	}
	c.JSON(http.StatusOK, dto.MarketResponse{
		State:    state,
		District: label,
		Rows:     rows,
		Total:    len(rows),
	})
}
