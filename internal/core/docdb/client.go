// Package docdb defines the document database client interface.
package docdb

import (
	"context"
)

// Client defines the interface for a document database client.
type Client interface {
	// Database returns the database interface.
	Database() Database

	// Users returns the users collection.
	Users() UsersCollection

	// OTPs returns the one-time password collection.
	OTPs() OTPCollection

	// Sessions returns the chat sessions collection.
	Sessions() SessionsCollection

	// Messages returns the chat messages collection.
	Messages() MessagesCollection

	// Ping verifies the database connection.
	Ping(ctx context.Context) error

	// Close closes the database connection.
	Close(ctx context.Context) error
}
