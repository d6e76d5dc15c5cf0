// Package dto provides Data Transfer Objects for API requests and responses.
package dto

// SendOTPRequest represents the request body for requesting a login code.
type SendOTPRequest struct {
	PhoneNumber string `json:"phoneNumber" binding:"required"`
}

// VerifyOTPRequest represents the request body for verifying a login code.
type VerifyOTPRequest struct {
	PhoneNumber string `json:"phoneNumber" binding:"required"`
	OTP         string `json:"otp" binding:"required"`
}

// UpdateUserRequest represents the request body for updating a farm profile.
type UpdateUserRequest struct {
	FullName    string `json:"fullName" binding:"required,min=1,max=100"`
	HasFarm     string `json:"hasFarm" binding:"required,oneof=yes no"`
	WaterSupply string `json:"waterSupply" binding:"omitempty,max=50"`
	FarmType    string `json:"farmType" binding:"omitempty,max=50"`
}

// UpdateLocationRequest represents the request body for saving GPS
// coordinates. State and district are resolved server-side.
type UpdateLocationRequest struct {
	Latitude  float64 `json:"latitude" binding:"required"`
	Longitude float64 `json:"longitude" binding:"required"`
}

// CreateSessionRequest represents the request body for creating a chat session.
type CreateSessionRequest struct {
	Title string `json:"title" binding:"omitempty,max=100"`
}

// SendChatMessageRequest represents the request body for a chat turn.
type SendChatMessageRequest struct {
	Content string `json:"content" binding:"required,min=1,max=8000"`
}

// SynthesizeRequest represents the request body for speech synthesis.
type SynthesizeRequest struct {
	Text string `json:"text" binding:"required,min=1,max=8000"`
}
