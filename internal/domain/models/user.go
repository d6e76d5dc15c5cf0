// Package models contains domain models for the AgriAssist backend.
package models

import (
	"time"

	"github.com/google/uuid"
)

// User represents a registered farmer.
type User struct {
	ID          string    `json:"id" bson:"_id"`
	PhoneNumber string    `json:"phoneNumber" bson:"phoneNumber"`
	FullName    string    `json:"fullName" bson:"fullName"`
	IsVerified  bool      `json:"isVerified" bson:"isVerified"`
	HasFarm     string    `json:"hasFarm,omitempty" bson:"hasFarm,omitempty"`
	WaterSupply string    `json:"waterSupply,omitempty" bson:"waterSupply,omitempty"`
	FarmType    string    `json:"farmType,omitempty" bson:"farmType,omitempty"`
	State       string    `json:"state,omitempty" bson:"state,omitempty"`
	District    string    `json:"district,omitempty" bson:"district,omitempty"`
	Latitude    float64   `json:"latitude,omitempty" bson:"latitude,omitempty"`
	Longitude   float64   `json:"longitude,omitempty" bson:"longitude,omitempty"`
	CreatedAt   time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt" bson:"updatedAt"`
}

// NewUser creates a verified user for the given phone number.
func NewUser(phoneNumber string) *User {
	now := time.Now().UTC()
	return &User{
		ID:          uuid.NewString(),
		PhoneNumber: phoneNumber,
		FullName:    "GuestUser",
		IsVerified:  true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// HasCoordinates reports whether the user has stored GPS coordinates.
func (u *User) HasCoordinates() bool {
	return u.Latitude != 0 && u.Longitude != 0
}
