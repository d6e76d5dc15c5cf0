// Package models contains domain models for the AgriAssist backend.
package models

import (
	"time"

	"github.com/google/uuid"
)

// MessageRole identifies who authored a chat message.
type MessageRole string

const (
	// RoleUser marks a message written by the farmer.
	RoleUser MessageRole = "user"
	// RoleModel marks a message authored by the assistant model.
	RoleModel MessageRole = "model"
)

// DefaultSessionTitle is the placeholder title for new sessions.
const DefaultSessionTitle = "New Consultation"

// ChatSession groups the messages of one conversation thread.
type ChatSession struct {
	ID        string    `json:"id" bson:"_id"`
	UserID    string    `json:"userId" bson:"userId"`
	Title     string    `json:"title" bson:"title"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
}

// NewChatSession creates a session for the given user.
// An empty title falls back to the placeholder.
func NewChatSession(userID, title string) *ChatSession {
	if title == "" {
		title = DefaultSessionTitle
	}
	return &ChatSession{
		ID:        uuid.NewString(),
		UserID:    userID,
		Title:     title,
		CreatedAt: time.Now().UTC(),
	}
}

// ChatMessage is a single persisted turn in a session.
// Messages are replayed to the model ordered by CreatedAt; the orchestrator
// appends but never edits or reorders existing messages.
type ChatMessage struct {
	ID        string      `json:"id" bson:"_id"`
	SessionID string      `json:"sessionId" bson:"sessionId"`
	Role      MessageRole `json:"role" bson:"role"`
	Content   string      `json:"content" bson:"content"`
	CreatedAt time.Time   `json:"createdAt" bson:"createdAt"`
}

// NewChatMessage creates a message for the given session.
func NewChatMessage(sessionID string, role MessageRole, content string) *ChatMessage {
	return &ChatMessage{
		ID:        uuid.NewString(),
		SessionID: sessionID,
		Role:      role,
		Content:   content,
		CreatedAt: time.Now().UTC(),
	}
}
