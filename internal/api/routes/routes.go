// Package routes defines the HTTP routes for the AgriAssist backend.
package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/Chaitanya-OverDev/AgriAssist/internal/api/handlers"
	"github.com/Chaitanya-OverDev/AgriAssist/internal/api/middleware"
)

// Config holds the dependencies for setting up routes.
type Config struct {
	HealthHandler  *handlers.HealthHandler
	AuthHandler    *handlers.AuthHandler
	UsersHandler   *handlers.UsersHandler
	ChatHandler    *handlers.ChatHandler
	MarketHandler  *handlers.MarketHandler
	WeatherHandler *handlers.WeatherHandler
	SpeechHandler  *handlers.SpeechHandler
}

// Setup configures all routes on the Gin engine.
func Setup(r *gin.Engine, cfg *Config) {
	v1 := r.Group("/api/v1")
	{
		// Health check routes
		v1.GET("/health", cfg.HealthHandler.Health)
		v1.GET("/ready", cfg.HealthHandler.Ready)
		v1.GET("/live", cfg.HealthHandler.Live)

		// OTP authentication
		auth := v1.Group("/auth")
		{
			auth.POST("/send-otp", cfg.AuthHandler.SendOTP)
			auth.POST("/verify-otp", cfg.AuthHandler.VerifyOTP)
		}

		// User-scoped routes
		users := v1.Group("/users/:userId")
		{
			users.GET("", cfg.UsersHandler.GetUser)
			users.PUT("", cfg.UsersHandler.UpdateUser)
			users.PUT("/location", cfg.UsersHandler.UpdateLocation)
			users.DELETE("", cfg.UsersHandler.DeleteUser)

			// Chat sessions and messages
			sessions := users.Group("/sessions")
			{
				sessions.POST("", cfg.ChatHandler.CreateSession)
				sessions.GET("", cfg.ChatHandler.ListSessions)
				sessions.GET("/:sessionId/messages", cfg.ChatHandler.GetHistory)
				sessions.POST("/:sessionId/messages", cfg.ChatHandler.SendMessage)
				sessions.DELETE("/:sessionId", cfg.ChatHandler.DeleteSession)
			}

			// Saved-location convenience routes
			users.GET("/market/my-district", cfg.MarketHandler.MyDistrict)
			users.GET("/market/my-state", cfg.MarketHandler.MyState)
			users.GET("/weather/forecast", cfg.WeatherHandler.MyForecast)
		}

		// Explicit market search
		v1.GET("/market/search", cfg.MarketHandler.Search)

		// Text-to-speech
		v1.POST("/speech/synthesize", cfg.SpeechHandler.Synthesize)
	}
}

// SetupWithMiddleware sets up routes with common middleware.
func SetupWithMiddleware(r *gin.Engine, cfg *Config, loggingMw *middleware.LoggingMiddleware, errorMw *middleware.ErrorMiddleware) {
	r.Use(middleware.NewCORSMiddleware(middleware.DefaultCORSConfig()))
	r.Use(loggingMw.Logger())
	r.Use(errorMw.Recovery())
	r.Use(gin.Recovery())
	r.NoRoute(middleware.NotFound())

	Setup(r, cfg)
}
