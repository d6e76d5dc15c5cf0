// Package auth implements phone-number OTP authentication.
package auth

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"regexp"

	"github.com/rs/zerolog"

	"github.com/Chaitanya-OverDev/AgriAssist/internal/core/docdb"
	domainerrors "github.com/Chaitanya-OverDev/AgriAssist/internal/domain/errors"
	"github.com/Chaitanya-OverDev/AgriAssist/internal/domain/models"
)

// phonePattern matches a 10-digit Indian mobile number.
var phonePattern = regexp.MustCompile(`^[6-9]\d{9}$`)

// codePattern matches a 6-digit OTP.
var codePattern = regexp.MustCompile(`^\d{6}$`)

// Service defines the OTP authentication operations.
type Service interface {
	// SendOTP generates a fresh code for the phone number, replacing any
	// previous one. The code is returned so dev deployments without an SMS
	// gateway can surface it.
	SendOTP(ctx context.Context, phoneNumber string) (string, error)

	// VerifyOTP checks the code and returns the user, creating the account
	// on first login.
	VerifyOTP(ctx context.Context, phoneNumber, code string) (*models.User, error)
}

// ServiceConfig holds the dependencies for the auth service.
type ServiceConfig struct {
	Users  docdb.UsersCollection
	OTPs   docdb.OTPCollection
	Logger zerolog.Logger
}

// service implements Service.
type service struct {
	users  docdb.UsersCollection
	otps   docdb.OTPCollection
	logger zerolog.Logger
}

// NewService creates a new auth service.
func NewService(cfg *ServiceConfig) (Service, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	if cfg.Users == nil {
		return nil, fmt.Errorf("users collection is required")
	}
	if cfg.OTPs == nil {
		return nil, fmt.Errorf("otp collection is required")
	}

	return &service{
		users:  cfg.Users,
		otps:   cfg.OTPs,
		logger: cfg.Logger,
	}, nil
}

// SendOTP generates and stores a fresh code for the phone number.
func (s *service) SendOTP(ctx context.Context, phoneNumber string) (string, error) {
	if err := validatePhone(phoneNumber); err != nil {
		return "", err
	}

	code, err := generateCode()
	if err != nil {
		return "", domainerrors.NewInternalError("failed to generate otp", err)
	}

	otp := models.NewOTP(phoneNumber, code)
	if err := s.otps.Replace(ctx, otp); err != nil {
		return "", domainerrors.NewInternalError("failed to store otp", err)
	}

	s.logger.Info().Str("phone_number", phoneNumber).Msg("otp issued")
	return code, nil
}

// VerifyOTP checks the submitted code against the active OTP and returns
// the account, creating it on first login.
func (s *service) VerifyOTP(ctx context.Context, phoneNumber, code string) (*models.User, error) {
	if err := validatePhone(phoneNumber); err != nil {
		return nil, err
	}
	if err := validateCode(code); err != nil {
		return nil, err
	}

	active, err := s.otps.GetActive(ctx, phoneNumber)
	if err != nil {
		return nil, domainerrors.NewInternalError("failed to load otp", err)
	}
	if active == nil || active.Code != code {
		return nil, domainerrors.NewValidationError("invalid otp", "the code is wrong or has expired")
	}

	if err := s.otps.MarkUsed(ctx, active.ID); err != nil {
		return nil, domainerrors.NewInternalError("failed to consume otp", err)
	}

	user, err := s.users.GetByPhone(ctx, phoneNumber)
	if err != nil {
		return nil, domainerrors.NewInternalError("failed to load user", err)
	}
	if user == nil {
		user = models.NewUser(phoneNumber)
		if err := s.users.Create(ctx, user); err != nil {
			return nil, domainerrors.NewInternalError("failed to create user", err)
		}
		s.logger.Info().Str("user_id", user.ID).Msg("user created on first login")
	}

	return user, nil
}

// validatePhone rejects anything but a 10-digit mobile number starting 6-9.
func validatePhone(phoneNumber string) error {
	if !phonePattern.MatchString(phoneNumber) {
		return domainerrors.NewValidationError("invalid phone number",
			"phone number must be 10 digits starting with 6-9")
	}
	return nil
}

// validateCode rejects malformed codes before any database lookup.
// "000000" is refused outright; it is the placeholder mobile clients send
// when the input field is left untouched.
func validateCode(code string) error {
	if !codePattern.MatchString(code) {
		return domainerrors.NewValidationError("invalid otp", "otp must be exactly 6 digits")
	}
	if code == "000000" {
		return domainerrors.NewValidationError("invalid otp", "otp must not be all zeros")
	}
	return nil
}

// generateCode returns a random 6-digit code in 100000-999999, keeping a
// safe distance from the rejected all-zeros placeholder.
func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}
