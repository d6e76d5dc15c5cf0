// Package mongodb provides MongoDB client implementation.
package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Chaitanya-OverDev/AgriAssist/internal/core/docdb"
)

// Client implements the docdb.Client interface for MongoDB.
type Client struct {
	client   *mongo.Client
	database *Database
	users    *UsersCollection
	otps     *OTPCollection
	sessions *SessionsCollection
	messages *MessagesCollection
}

// ClientConfig holds MongoDB connection configuration.
type ClientConfig struct {
	URI          string
	DatabaseName string
}

// NewClient creates a new MongoDB client.
func NewClient(ctx context.Context, config *ClientConfig) (*Client, error) {
	if config == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	if config.URI == "" {
		return nil, fmt.Errorf("mongodb URI is required")
	}
	if config.DatabaseName == "" {
		return nil, fmt.Errorf("database name is required")
	}

	clientOpts := options.Client().ApplyURI(config.URI)
	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	// Verify connection
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	db := client.Database(config.DatabaseName)

	return &Client{
		client:   client,
		database: NewDatabase(db),
		users:    NewUsersCollection(db),
		otps:     NewOTPCollection(db),
		sessions: NewSessionsCollection(db),
		messages: NewMessagesCollection(db),
	}, nil
}

// Database returns the database interface.
func (c *Client) Database() docdb.Database {
	return c.database
}

// Users returns the users collection.
func (c *Client) Users() docdb.UsersCollection {
	return c.users
}

// OTPs returns the one-time password collection.
func (c *Client) OTPs() docdb.OTPCollection {
	return c.otps
}

// Sessions returns the chat sessions collection.
func (c *Client) Sessions() docdb.SessionsCollection {
	return c.sessions
}

// Messages returns the chat messages collection.
func (c *Client) Messages() docdb.MessagesCollection {
	return c.messages
}

// Ping verifies the connection to MongoDB.
func (c *Client) Ping(ctx context.Context) error {
	if err := c.client.Ping(ctx, nil); err != nil {
		return fmt.Errorf("mongodb ping failed: %w", err)
	}
	return nil
}

// Close closes the MongoDB connection.
func (c *Client) Close(ctx context.Context) error {
	if err := c.client.Disconnect(ctx); err != nil {
		return fmt.Errorf("failed to disconnect from mongodb: %w", err)
	}
	return nil
}

// EnsureIndexes creates all necessary indexes for all collections.
func (c *Client) EnsureIndexes(ctx context.Context) error {
	if err := c.users.EnsureIndexes(ctx); err != nil {
		return fmt.Errorf("failed to ensure users indexes: %w", err)
	}
	if err := c.sessions.EnsureIndexes(ctx); err != nil {
		return fmt.Errorf("failed to ensure sessions indexes: %w", err)
	}
	if err := c.messages.EnsureIndexes(ctx); err != nil {
		return fmt.Errorf("failed to ensure messages indexes: %w", err)
	}
	return nil
}
