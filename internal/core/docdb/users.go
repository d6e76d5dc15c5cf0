// Package docdb provides the users collection interface.
package docdb

import (
	"context"

	"github.com/Chaitanya-OverDev/AgriAssist/internal/domain/models"
)

// UsersCollection defines the interface for user persistence.
// Lookups return nil without error when no document matches.
type UsersCollection interface {
	// Create inserts a new user.
	Create(ctx context.Context, user *models.User) error

	// GetByID retrieves a user by ID.
	GetByID(ctx context.Context, id string) (*models.User, error)

	// GetByPhone retrieves a user by phone number.
	GetByPhone(ctx context.Context, phoneNumber string) (*models.User, error)

	// List returns all users.
	List(ctx context.Context) ([]*models.User, error)

	// Update persists profile changes for an existing user.
	Update(ctx context.Context, user *models.User) error

	// Delete removes a user. Returns true if a document was deleted.
	Delete(ctx context.Context, id string) (bool, error)

	// EnsureIndexes creates necessary indexes for the collection.
	EnsureIndexes(ctx context.Context) error
}

// OTPCollection defines the interface for one-time password persistence.
type OTPCollection interface {
	// Replace deletes any previous OTPs for the phone number and stores
	// the new one.
	Replace(ctx context.Context, otp *models.OTP) error

	// GetActive retrieves the newest unused, unexpired OTP for a phone
	// number, or nil if none exists.
	GetActive(ctx context.Context, phoneNumber string) (*models.OTP, error)

	// MarkUsed flags an OTP as consumed.
	MarkUsed(ctx context.Context, id string) error
}
