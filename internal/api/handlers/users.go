package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/Chaitanya-OverDev/AgriAssist/internal/api/dto"
	"github.com/Chaitanya-OverDev/AgriAssist/internal/api/middleware"
	"github.com/Chaitanya-OverDev/AgriAssist/internal/core/docdb"
	"github.com/Chaitanya-OverDev/AgriAssist/internal/domain/errors"
	"github.com/Chaitanya-OverDev/AgriAssist/internal/services/geocode"
)

// UsersHandler handles user profile endpoints.
type UsersHandler struct {
	users   docdb.UsersCollection
	geocode geocode.Client
}

// NewUsersHandler creates a new UsersHandler.
func NewUsersHandler(users docdb.UsersCollection, geocodeClient geocode.Client) *UsersHandler {
	return &UsersHandler{
		users:   users,
		geocode: geocodeClient,
	}
}

// GetUser handles GET /users/{userId}
// @Summary Get a user
// @Description Retrieves a user's farm profile
// @Tags Users
// @Produce json
// @Param userId path string true "User ID"
// @Success 200 {object} dto.UserResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/v1/users/{userId} [get]
func (h *UsersHandler) GetUser(c *gin.Context) {
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

	c.JSON(http.StatusOK, dto.UserResponse{User: user})
}

// UpdateUser handles PUT /users/{userId}
// @Summary Update a farm profile
// @Description Updates the user's name and farm details
// @Tags Users
// @Accept json
// @Produce json
// @Param userId path string true "User ID"
// @Param request body dto.UpdateUserRequest true "Profile fields"
// @Success 200 {object} dto.UserResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/v1/users/{userId} [put]
func (h *UsersHandler) UpdateUser(c *gin.Context) {
	ctx := c.Request.Context()
	userID := c.Param("userId")

	var req dto.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleError(c, errors.NewValidationError("invalid request body", err.Error()))
		return
	}

	user, err := h.users.GetByID(ctx, userID)
	if err != nil {
		middleware.HandleError(c, errors.NewInternalError("failed to load user", err))
		return
	}
	if user == nil {
		middleware.HandleError(c, errors.NewNotFoundError("user", userID))
		return
	}

	user.FullName = req.FullName
	user.HasFarm = req.HasFarm
	user.WaterSupply = req.WaterSupply
	user.FarmType = req.FarmType

	if err := h.users.Update(ctx, user); err != nil {
		middleware.HandleError(c, errors.NewInternalError("failed to update user", err))
		return
	}

	c.JSON(http.StatusOK, dto.UserResponse{User: user})
}

// UpdateLocation handles PUT /users/{userId}/location
// @Summary Save GPS coordinates
// @Description Stores coordinates and reverse-geocodes them to state and district
// @Tags Users
// @Accept json
// @Produce json
// @Param userId path string true "User ID"
// @Param request body dto.UpdateLocationRequest true "Coordinates"
// @Success 200 {object} dto.UserResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/v1/users/{userId}/location [put]
func (h *UsersHandler) UpdateLocation(c *gin.Context) {
	ctx := c.Request.Context()
	userID := c.Param("userId")

	var req dto.UpdateLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleError(c, errors.NewValidationError("invalid request body", err.Error()))
		return
	}

	user, err := h.users.GetByID(ctx, userID)
	if err != nil {
		middleware.HandleError(c, errors.NewInternalError("failed to load user", err))
		return
	}
	if user == nil {
		middleware.HandleError(c, errors.NewNotFoundError("user", userID))
		return
	}

	user.Latitude = req.Latitude
	user.Longitude = req.Longitude

	// A failed reverse geocode still saves the coordinates; state and
	// district stay as they were.
	place, err := h.geocode.Reverse(ctx, req.Latitude, req.Longitude)
	if err != nil {
		log.Warn().Err(err).Str("user_id", userID).Msg("reverse geocode failed")
	} else {
		if place.State != "" {
			user.State = place.State
		}
		if place.District != "" {
			user.District = place.District
		}
	}

	if err := h.users.Update(ctx, user); err != nil {
		middleware.HandleError(c, errors.NewInternalError("failed to update user", err))
		return
	}

	c.JSON(http.StatusOK, dto.UserResponse{User: user})
}

// DeleteUser handles DELETE /users/{userId}
// @Summary Delete a user
// @Description Removes the user account
// @Tags Users
// @Produce json
// @Param userId path string true "User ID"
// @Success 204 "Deleted"
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/v1/users/{userId} [delete]
func (h *UsersHandler) DeleteUser(c *gin.Context) {
	ctx := c.Request.Context()
	userID := c.Param("userId")

	deleted, err := h.users.Delete(ctx, userID)
	if err != nil {
		middleware.HandleError(c, errors.NewInternalError("failed to delete user", err))
		return
	}
	if !deleted {
		middleware.HandleError(c, errors.NewNotFoundError("user", userID))
		return
	}

	c.Status(http.StatusNoContent)
}
