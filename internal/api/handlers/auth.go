package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Chaitanya-OverDev/AgriAssist/internal/api/dto"
	"github.com/Chaitanya-OverDev/AgriAssist/internal/api/middleware"
	"github.com/Chaitanya-OverDev/AgriAssist/internal/domain/errors"
	"github.com/Chaitanya-OverDev/AgriAssist/internal/services/auth"
)

// AuthHandler handles OTP authentication endpoints.
type AuthHandler struct {
	authService auth.Service
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService auth.Service) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// SendOTP handles POST /auth/send-otp
// @Summary Request a login code
// @Description Issues a fresh OTP for the phone number, replacing any previous one
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.SendOTPRequest true "Phone number"
// @Success 200 {object} dto.SendOTPResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/v1/auth/send-otp [post]
func (h *AuthHandler) SendOTP(c *gin.Context) {
	var req dto.SendOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleError(c, errors.NewValidationError("invalid request body", err.Error()))
		return
	}

	code, err := h.authService.SendOTP(c.Request.Context(), req.PhoneNumber)
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	// No SMS gateway yet: the code is echoed so the client can display it.
	c.JSON(http.StatusOK, dto.SendOTPResponse{
		Message: "OTP sent",
		OTP:     code,
	})
}

// VerifyOTP handles POST /auth/verify-otp
// @Summary Verify a login code
// @Description Verifies the OTP and returns the user, creating the account on first login
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.VerifyOTPRequest true "Phone number and code"
// @Success 200 {object} dto.VerifyOTPResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/v1/auth/verify-otp [post]
func (h *AuthHandler) VerifyOTP(c *gin.Context) {
	var req dto.VerifyOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleError(c, errors.NewValidationError("invalid request body", err.Error()))
		return
	}

	user, err := h.authService.VerifyOTP(c.Request.Context(), req.PhoneNumber, req.OTP)
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.VerifyOTPResponse{User: user})
}
