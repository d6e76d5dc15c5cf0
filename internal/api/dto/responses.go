package dto

import (
	"github.com/Chaitanya-OverDev/AgriAssist/internal/domain/models"
)

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// HealthResponse represents a health check response.
type HealthResponse struct {
	Status     string            `json:"status"`
	Components map[string]string `json:"components,omitempty"`
}

// SendOTPResponse represents the response for an OTP request. The code is
// only echoed when no SMS gateway is configured.
type SendOTPResponse struct {
	Message string `json:"message"`
	OTP     string `json:"otp,omitempty"`
}

// VerifyOTPResponse represents the response for a successful login.
type VerifyOTPResponse struct {
	User *models.User `json:"user"`
}

// UserResponse represents a single-user response.
type UserResponse struct {
	User *models.User `json:"user"`
}

// SessionResponse represents a single chat session response.
type SessionResponse struct {
	Session *models.ChatSession `json:"session"`
}

// SessionsResponse represents a session listing.
type SessionsResponse struct {
	Sessions []*models.ChatSession `json:"sessions"`
	Total    int                   `json:"total"`
}

// MessagesResponse represents a chat history listing.
type MessagesResponse struct {
	Messages []*models.ChatMessage `json:"messages"`
	Total    int                   `json:"total"`
}

// ChatResponse represents the reply to a chat turn.
type ChatResponse struct {
	Reply *models.ChatMessage `json:"reply"`
}

// MarketResponse represents a market price listing.
type MarketResponse struct {
	State    string                `json:"state"`
	District string                `json:"district"`
	Rows     []models.CommodityRow `json:"rows"`
	Total    int                   `json:"total"`
}

// ForecastResponse represents a weather forecast listing.
type ForecastResponse struct {
	Days []models.ForecastDay `json:"days"`
}
