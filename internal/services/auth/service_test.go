// Package auth_test provides unit tests for OTP authentication.
package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerrors "github.com/Chaitanya-OverDev/AgriAssist/internal/domain/errors"
	"github.com/Chaitanya-OverDev/AgriAssist/internal/domain/models"
	"github.com/Chaitanya-OverDev/AgriAssist/internal/services/auth"
)

// fakeUsers is an in-memory users collection keyed by phone number.
type fakeUsers struct {
	byPhone map[string]*models.User
}

func (f *fakeUsers) Create(ctx context.Context, u *models.User) error {
	f.byPhone[u.PhoneNumber] = u
	return nil
}

func (f *fakeUsers) GetByID(ctx context.Context, id string) (*models.User, error) {
	for _, u := range f.byPhone {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUsers) GetByPhone(ctx context.Context, phone string) (*models.User, error) {
	return f.byPhone[phone], nil
}

func (f *fakeUsers) List(ctx context.Context) ([]*models.User, error)    { return nil, nil }
func (f *fakeUsers) Update(ctx context.Context, u *models.User) error    { return nil }
func (f *fakeUsers) Delete(ctx context.Context, id string) (bool, error) { return false, nil }
func (f *fakeUsers) EnsureIndexes(ctx context.Context) error             { return nil }

// fakeOTPs is an in-memory OTP collection holding one code per phone.
type fakeOTPs struct {
	byPhone map[string]*models.OTP
}

func (f *fakeOTPs) Replace(ctx context.Context, otp *models.OTP) error {
	f.byPhone[otp.PhoneNumber] = otp
	return nil
}

func (f *fakeOTPs) GetActive(ctx context.Context, phone string) (*models.OTP, error) {
	otp := f.byPhone[phone]
	if otp == nil || otp.IsUsed || otp.IsExpired() {
		return nil, nil
	}
	return otp, nil
}

func (f *fakeOTPs) MarkUsed(ctx context.Context, id string) error {
	for _, otp := range f.byPhone {
		if otp.ID == id {
			otp.IsUsed = true
		}
	}
	return nil
}

func setupAuth(t *testing.T) (auth.Service, *fakeUsers, *fakeOTPs) {
	t.Helper()

	users := &fakeUsers{byPhone: map[string]*models.User{}}
	otps := &fakeOTPs{byPhone: map[string]*models.OTP{}}

	svc, err := auth.NewService(&auth.ServiceConfig{
		Users:  users,
		OTPs:   otps,
		Logger: zerolog.Nop(),
	})
	require.NoError(t, err)

	return svc, users, otps
}

func TestSendOTP_IssuesSixDigitCode(t *testing.T) {
	svc, _, otps := setupAuth(t)

	code, err := svc.SendOTP(context.Background(), "9876543210")
	require.NoError(t, err)
	assert.Len(t, code, 6)

	stored := otps.byPhone["9876543210"]
	require.NotNil(t, stored)
	assert.Equal(t, code, stored.Code)
	assert.False(t, stored.IsUsed)
}

func TestSendOTP_ReplacesPreviousCode(t *testing.T) {
	svc, _, otps := setupAuth(t)
	ctx := context.Background()

	first, err := svc.SendOTP(ctx, "9876543210")
	require.NoError(t, err)

	second, err := svc.SendOTP(ctx, "9876543210")
	require.NoError(t, err)

	stored := otps.byPhone["9876543210"]
	assert.Equal(t, second, stored.Code)
	// The first code is no longer usable once replaced.
	if first != second {
		_, err = svc.VerifyOTP(ctx, "9876543210", first)
		assert.Error(t, err)
	}
}

func TestSendOTP_RejectsInvalidPhone(t *testing.T) {
	svc, _, _ := setupAuth(t)
	ctx := context.Background()

	for _, phone := range []string{"", "12345", "1234567890", "98765432101", "98765abc10"} {
		_, err := svc.SendOTP(ctx, phone)
		require.Error(t, err, "phone %q", phone)
		assert.True(t, domainerrors.IsValidationError(err))
	}
}

func TestVerifyOTP_CreatesUserOnFirstLogin(t *testing.T) {
	svc, users, _ := setupAuth(t)
	ctx := context.Background()

	code, err := svc.SendOTP(ctx, "9876543210")
	require.NoError(t, err)

	user, err := svc.VerifyOTP(ctx, "9876543210", code)
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, "9876543210", user.PhoneNumber)
	assert.True(t, user.IsVerified)
	assert.NotNil(t, users.byPhone["9876543210"])
}

func TestVerifyOTP_ReturnsExistingUser(t *testing.T) {
	svc, users, _ := setupAuth(t)
	ctx := context.Background()

	existing := models.NewUser("9876543210")
	existing.FullName = "Ramesh"
	users.byPhone["9876543210"] = existing

	code, err := svc.SendOTP(ctx, "9876543210")
	require.NoError(t, err)

	user, err := svc.VerifyOTP(ctx, "9876543210", code)
	require.NoError(t, err)
	assert.Equal(t, existing.ID, user.ID)
	assert.Equal(t, "Ramesh", user.FullName)
}

func TestVerifyOTP_RejectsWrongCode(t *testing.T) {
	svc, _, _ := setupAuth(t)
	ctx := context.Background()

	code, err := svc.SendOTP(ctx, "9876543210")
	require.NoError(t, err)

	wrong := "111111"
	if wrong == code {
		wrong = "222222"
	}

	_, err = svc.VerifyOTP(ctx, "9876543210", wrong)
	require.Error(t, err)
	assert.True(t, domainerrors.IsValidationError(err))
}

func TestVerifyOTP_CodeIsSingleUse(t *testing.T) {
	svc, _, _ := setupAuth(t)
	ctx := context.Background()

	code, err := svc.SendOTP(ctx, "9876543210")
	require.NoError(t, err)

	_, err = svc.VerifyOTP(ctx, "9876543210", code)
	require.NoError(t, err)

	_, err = svc.VerifyOTP(ctx, "9876543210", code)
	assert.Error(t, err)
}

func TestVerifyOTP_RejectsExpiredCode(t *testing.T) {
	svc, _, otps := setupAuth(t)
	ctx := context.Background()

	code, err := svc.SendOTP(ctx, "9876543210")
	require.NoError(t, err)

	otps.byPhone["9876543210"].ExpiresAt = time.Now().UTC().Add(-time.Minute)

	_, err = svc.VerifyOTP(ctx, "9876543210", code)
	assert.Error(t, err)
}

func TestVerifyOTP_RejectsMalformedCodes(t *testing.T) {
	svc, _, _ := setupAuth(t)
	ctx := context.Background()

	for _, code := range []string{"", "12345", "1234567", "12a456", "000000"} {
		_, err := svc.VerifyOTP(ctx, "9876543210", code)
		require.Error(t, err, "code %q", code)
		assert.True(t, domainerrors.IsValidationError(err))
	}
}
