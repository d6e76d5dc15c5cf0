// Package docdb provides the chat collection interfaces.
package docdb

import (
	"context"

	"github.com/Chaitanya-OverDev/AgriAssist/internal/domain/models"
)

// SessionsCollection defines the interface for chat session persistence.
type SessionsCollection interface {
	// Create inserts a new chat session.
	Create(ctx context.Context, session *models.ChatSession) error

	// Get retrieves a session by ID, scoped to its owning user.
	// Returns nil without error when no document matches.
	Get(ctx context.Context, id, userID string) (*models.ChatSession, error)

	// ListByUser returns the user's sessions, newest first.
	ListByUser(ctx context.Context, userID string) ([]*models.ChatSession, error)

	// UpdateTitle replaces the session title.
	UpdateTitle(ctx context.Context, id, title string) error

	// Delete removes a session. Returns true if a document was deleted.
	// Messages are removed separately via MessagesCollection.DeleteBySession.
	Delete(ctx context.Context, id, userID string) (bool, error)

	// EnsureIndexes creates necessary indexes for the collection.
	EnsureIndexes(ctx context.Context) error
}

// MessagesCollection defines the interface for chat message persistence.
type MessagesCollection interface {
	// Add inserts a new message.
	Add(ctx context.Context, message *models.ChatMessage) error

	// Get retrieves a message by ID, or nil if none exists.
	Get(ctx context.Context, id string) (*models.ChatMessage, error)

	// ListBySession returns the session's messages ordered by createdAt
	// ascending, the order they are replayed to the model.
	ListBySession(ctx context.Context, sessionID string) ([]*models.ChatMessage, error)

	// DeleteBySession removes all messages of a session.
	// Returns the number of messages deleted.
	DeleteBySession(ctx context.Context, sessionID string) (int64, error)

	// EnsureIndexes creates necessary indexes for the collection.
	EnsureIndexes(ctx context.Context) error
}
