// Package middleware provides HTTP middleware for the API.
package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	domainerrors "github.com/Chaitanya-OverDev/AgriAssist/internal/domain/errors"
)

// ErrorMiddleware handles error recovery and formatting.
type ErrorMiddleware struct{}

// NewErrorMiddleware creates a new ErrorMiddleware.
func NewErrorMiddleware() *ErrorMiddleware {
	return &ErrorMiddleware{}
}

// Recovery returns a gin middleware that recovers from panics.
func (m *ErrorMiddleware) Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				log.Error().
					Interface("error", err).
					Str("path", c.Request.URL.Path).
					Str("method", c.Request.Method).
					Msg("panic recovered")

				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
					"code":    "INTERNAL_ERROR",
					"message": "internal server error",
				})
			}
		}()
		c.Next()
	}
}

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// HandleError handles errors and sends appropriate HTTP responses.
func HandleError(c *gin.Context, err error) {
	if err == nil {
		return
	}

	if domainErr, ok := domainerrors.GetDomainError(err); ok {
		c.AbortWithStatusJSON(domainErr.HTTPStatus, ErrorResponse{
			Code:    domainErr.Code,
			Message: domainErr.Message,
			Details: domainErr.Details,
		})
		return
	}

	log.Error().Err(err).Msg("unhandled error")
	c.AbortWithStatusJSON(http.StatusInternalServerError, ErrorResponse{
		Code:    "INTERNAL_ERROR",
		Message: "internal server error",
	})
}

// NotFound returns a 404 handler.
func NotFound() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusNotFound, ErrorResponse{
			Code:    "NOT_FOUND",
			Message: "resource not found",
			Details: c.Request.URL.Path,
		})
	}
}
