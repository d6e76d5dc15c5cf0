// Package mongodb provides the chat collections implementation.
package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Chaitanya-OverDev/AgriAssist/internal/domain/models"
)

const (
	// SessionsCollectionName is the name of the chat sessions collection.
	SessionsCollectionName = "chat_sessions"
	// MessagesCollectionName is the name of the chat messages collection.
	MessagesCollectionName = "chat_messages"
)

// SessionsCollection implements docdb.SessionsCollection for MongoDB.
type SessionsCollection struct {
	sessions *mongo.Collection
}

// NewSessionsCollection creates a new sessions collection wrapper.
func NewSessionsCollection(db *mongo.Database) *SessionsCollection {
	return &SessionsCollection{
		sessions: db.Collection(SessionsCollectionName),
	}
}

// Create inserts a new chat session.
func (c *SessionsCollection) Create(ctx context.Context, session *models.ChatSession) error {
	if session.ID == "" {
		return fmt.Errorf("session ID is required")
	}

	_, err := c.sessions.InsertOne(ctx, session)
	if err != nil {
		return fmt.Errorf("failed to insert session: %w", err)
	}
	return nil
}

// Get retrieves a session by ID, scoped to its owning user.
func (c *SessionsCollection) Get(ctx context.Context, id, userID string) (*models.ChatSession, error) {
	var session models.ChatSession
	err := c.sessions.FindOne(ctx, bson.M{"_id": id, "userId": userID}).Decode(&session)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	return &session, nil
}

// ListByUser returns the user's sessions, newest first.
func (c *SessionsCollection) ListByUser(ctx context.Context, userID string) ([]*models.ChatSession, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cursor, err := c.sessions.Find(ctx, bson.M{"userId": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	defer cursor.Close(ctx)

	var sessions []*models.ChatSession
	if err := cursor.All(ctx, &sessions); err != nil {
		return nil, fmt.Errorf("failed to decode sessions: %w", err)
	}
	return sessions, nil
}

// UpdateTitle replaces the session title.
func (c *SessionsCollection) UpdateTitle(ctx context.Context, id, title string) error {
	_, err := c.sessions.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"title": title}})
	if err != nil {
		return fmt.Errorf("failed to update session title: %w", err)
	}
	return nil
}

// Delete removes a session.
func (c *SessionsCollection) Delete(ctx context.Context, id, userID string) (bool, error) {
	result, err := c.sessions.DeleteOne(ctx, bson.M{"_id": id, "userId": userID})
	if err != nil {
		return false, fmt.Errorf("failed to delete session: %w", err)
	}
	return result.DeletedCount > 0, nil
}

// EnsureIndexes creates necessary indexes for the collection.
func (c *SessionsCollection) EnsureIndexes(ctx context.Context) error {
	_, err := c.sessions.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "userId", Value: 1}, {Key: "createdAt", Value: -1}},
	})
	if err != nil {
		return fmt.Errorf("failed to create sessions indexes: %w", err)
	}
	return nil
}

// MessagesCollection implements docdb.MessagesCollection for MongoDB.
type MessagesCollection struct {
	messages *mongo.Collection
}

// NewMessagesCollection creates a new messages collection wrapper.
func NewMessagesCollection(db *mongo.Database) *MessagesCollection {
	return &MessagesCollection{
		messages: db.Collection(MessagesCollectionName),
	}
}

// Add inserts a new message.
func (c *MessagesCollection) Add(ctx context.Context, message *models.ChatMessage) error {
	if message.ID == "" {
		return fmt.Errorf("message ID is required")
	}

	_, err := c.messages.InsertOne(ctx, message)
	if err != nil {
		return fmt.Errorf("failed to insert message: %w", err)
	}
	return nil
}

// Get retrieves a message by ID.
func (c *MessagesCollection) Get(ctx context.Context, id string) (*models.ChatMessage, error) {
	var message models.ChatMessage
	err := c.messages.FindOne(ctx, bson.M{"_id": id}).Decode(&message)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get message: %w", err)
	}
	return &message, nil
}

// ListBySession returns the session's messages ordered by createdAt ascending.
func (c *MessagesCollection) ListBySession(ctx context.Context, sessionID string) ([]*models.ChatMessage, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})

	cursor, err := c.messages.Find(ctx, bson.M{"sessionId": sessionID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}
	defer cursor.Close(ctx)

	var messages []*models.ChatMessage
	if err := cursor.All(ctx, &messages); err != nil {
		return nil, fmt.Errorf("failed to decode messages: %w", err)
	}
	return messages, nil
}

// DeleteBySession removes all messages of a session.
func (c *MessagesCollection) DeleteBySession(ctx context.Context, sessionID string) (int64, error) {
	result, err := c.messages.DeleteMany(ctx, bson.M{"sessionId": sessionID})
	if err != nil {
		return 0, fmt.Errorf("failed to delete messages: %w", err)
	}
	return result.DeletedCount, nil
}

// EnsureIndexes creates necessary indexes for the collection.
func (c *MessagesCollection) EnsureIndexes(ctx context.Context) error {
	_, err := c.messages.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "sessionId", Value: 1}, {Key: "createdAt", Value: 1}},
	})
	if err != nil {
		return fmt.Errorf("failed to create messages indexes: %w", err)
	}
	return nil
}
