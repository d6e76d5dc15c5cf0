package models

import (
	"time"

	"github.com/google/uuid"
)

// OTPValidity is how long a one-time password stays usable.
const OTPValidity = 5 * time.Minute

// OTP is a one-time password issued for phone-number login.
type OTP struct {
	ID          string    `json:"id" bson:"_id"`
	PhoneNumber string    `json:"phoneNumber" bson:"phoneNumber"`
	Code        string    `json:"-" bson:"code"`
	ExpiresAt   time.Time `json:"expiresAt" bson:"expiresAt"`
	IsUsed      bool      `json:"isUsed" bson:"isUsed"`
	CreatedAt   time.Time `json:"createdAt" bson:"createdAt"`
}

// NewOTP creates an unused OTP for the given phone number.
func NewOTP(phoneNumber, code string) *OTP {
	now := time.Now().UTC()
	return &OTP{
		ID:          uuid.NewString(),
		PhoneNumber: phoneNumber,
		Code:        code,
		ExpiresAt:   now.Add(OTPValidity),
		IsUsed:      false,
		CreatedAt:   now,
	}
}

// IsExpired reports whether the OTP is past its validity window.
func (o *OTP) IsExpired() bool {
	return time.Now().UTC().After(o.ExpiresAt)
}
