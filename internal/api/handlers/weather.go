package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Chaitanya-OverDev/AgriAssist/internal/api/dto"
	"github.com/Chaitanya-OverDev/AgriAssist/internal/api/middleware"
	"github.com/Chaitanya-OverDev/AgriAssist/internal/core/docdb"
	"github.com/Chaitanya-OverDev/AgriAssist/internal/domain/errors"
	"github.com/Chaitanya-OverDev/AgriAssist/internal/services/weather"
)

// WeatherHandler handles the forecast endpoint.
type WeatherHandler struct {
	weatherService weather.Service
	users          docdb.UsersCollection
}

// NewWeatherHandler creates a new WeatherHandler.
func NewWeatherHandler(weatherService weather.Service, users docdb.UsersCollection) *WeatherHandler {
	return &WeatherHandler{
		weatherService: weatherService,
		users:          users,
	}
}

// MyForecast handles GET /users/{userId}/weather/forecast
// @Summary 5-day forecast for the user's location
// @Description Returns the cached forecast, refreshing when stale
// @Tags Weather
// @Produce json
// @Param userId path string true "User ID"
// @Success 200 {object} dto.ForecastResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/v1/users/{userId}/weather/forecast [get]
func (h *WeatherHandler) MyForecast(c *gin.Context) {
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
	if !user.HasCoordinates() {
		middleware.HandleError(c, errors.NewBadRequestError("no saved location",
			"save GPS coordinates before requesting a forecast"))
		return
	}

	days, err := h.weatherService.Forecast(ctx, user.ID, user.Latitude, user.Longitude)
	if err != nil {
		middleware.HandleError(c, errors.NewServiceUnavailableError("weather service", err))
		return
	}

	c.JSON(http.StatusOK, dto.ForecastResponse{Days: days})
}
