// Package mongodb provides the users collection implementation.
package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Chaitanya-OverDev/AgriAssist/internal/domain/models"
)

const (
	// UsersCollectionName is the name of the users collection.
	UsersCollectionName = "users"
	// OTPCollectionName is the name of the one-time password collection.
	OTPCollectionName = "otp_codes"
)

// UsersCollection implements docdb.UsersCollection for MongoDB.
type UsersCollection struct {
	users *mongo.Collection
}

// NewUsersCollection creates a new users collection wrapper.
func NewUsersCollection(db *mongo.Database) *UsersCollection {
	return &UsersCollection{
		users: db.Collection(UsersCollectionName),
	}
}

// Create inserts a new user.
func (c *UsersCollection) Create(ctx context.Context, user *models.User) error {
	if user.ID == "" {
		return fmt.Errorf("user ID is required")
	}

	_, err := c.users.InsertOne(ctx, user)
	if err != nil {
		return fmt.Errorf("failed to insert user: %w", err)
	}
	return nil
}

// GetByID retrieves a user by ID.
func (c *UsersCollection) GetByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	err := c.users.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}

// GetByPhone retrieves a user by phone number.
func (c *UsersCollection) GetByPhone(ctx context.Context, phoneNumber string) (*models.User, error) {
	var user models.User
	err := c.users.FindOne(ctx, bson.M{"phoneNumber": phoneNumber}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user by phone: %w", err)
	}
	return &user, nil
}

// List returns all users.
func (c *UsersCollection) List(ctx context.Context) ([]*models.User, error) {
	cursor, err := c.users.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer cursor.Close(ctx)

	var users []*models.User
	if err := cursor.All(ctx, &users); err != nil {
		return nil, fmt.Errorf("failed to decode users: %w", err)
	}
	return users, nil
}

// Update persists profile changes for an existing user.
func (c *UsersCollection) Update(ctx context.Context, user *models.User) error {
	user.UpdatedAt = time.Now().UTC()

	result, err := c.users.ReplaceOne(ctx, bson.M{"_id": user.ID}, user)
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("user %s does not exist", user.ID)
	}
	return nil
}

// Delete removes a user.
func (c *UsersCollection) Delete(ctx context.Context, id string) (bool, error) {
	result, err := c.users.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return false, fmt.Errorf("failed to delete user: %w", err)
	}
	return result.DeletedCount > 0, nil
}

// EnsureIndexes creates necessary indexes for the collection.
func (c *UsersCollection) EnsureIndexes(ctx context.Context) error {
	_, err := c.users.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "phoneNumber", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("failed to create users indexes: %w", err)
	}
	return nil
}

// OTPCollection implements docdb.OTPCollection for MongoDB.
type OTPCollection struct {
	otps *mongo.Collection
}

// NewOTPCollection creates a new OTP collection wrapper.
func NewOTPCollection(db *mongo.Database) *OTPCollection {
	return &OTPCollection{
		otps: db.Collection(OTPCollectionName),
	}
}

// Replace deletes any previous OTPs for the phone number and stores the new one.
func (c *OTPCollection) Replace(ctx context.Context, otp *models.OTP) error {
	if _, err := c.otps.DeleteMany(ctx, bson.M{"phoneNumber": otp.PhoneNumber}); err != nil {
		return fmt.Errorf("failed to delete previous otps: %w", err)
	}
	if _, err := c.otps.InsertOne(ctx, otp); err != nil {
		return fmt.Errorf("failed to insert otp: %w", err)
	}
	return nil
}

// GetActive retrieves the newest unused, unexpired OTP for a phone number.
func (c *OTPCollection) GetActive(ctx context.Context, phoneNumber string) (*models.OTP, error) {
	filter := bson.M{
		"phoneNumber": phoneNumber,
		"isUsed":      false,
		"expiresAt":   bson.M{"$gt": time.Now().UTC()},
	}
	opts := options.FindOne().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	var otp models.OTP
	err := c.otps.FindOne(ctx, filter, opts).Decode(&otp)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get active otp: %w", err)
	}
	return &otp, nil
}

// MarkUsed flags an OTP as consumed.
func (c *OTPCollection) MarkUsed(ctx context.Context, id string) error {
	_, err := c.otps.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"isUsed": true}})
	if err != nil {
		return fmt.Errorf("failed to mark otp used: %w", err)
	}
	return nil
}
