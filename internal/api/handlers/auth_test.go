// Package handlers_test provides unit tests for the HTTP handlers.
package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Chaitanya-OverDev/AgriAssist/internal/api/handlers"
	domainerrors "github.com/Chaitanya-OverDev/AgriAssist/internal/domain/errors"
	"github.com/Chaitanya-OverDev/AgriAssist/internal/domain/models"
)

// fakeAuthService scripts the auth service for handler tests.
type fakeAuthService struct {
	code      string
	user      *models.User
	sendErr   error
	verifyErr error
}

func (f *fakeAuthService) SendOTP(ctx context.Context, phone string) (string, error) {
	return f.code, f.sendErr
}

func (f *fakeAuthService) VerifyOTP(ctx context.Context, phone, code string) (*models.User, error) {
	return f.user, f.verifyErr
}

func newAuthRouter(svc *fakeAuthService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := handlers.NewAuthHandler(svc)
	r.POST("/auth/send-otp", h.SendOTP)
	r.POST("/auth/verify-otp", h.VerifyOTP)
	return r
}

func TestSendOTP_Success(t *testing.T) {
	router := newAuthRouter(&fakeAuthService{code: "123456"})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/auth/send-otp",
		strings.NewReader(`{"phoneNumber":"9876543210"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "123456", resp["otp"])
}

func TestSendOTP_MissingBody(t *testing.T) {
	router := newAuthRouter(&fakeAuthService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/auth/send-otp", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSendOTP_ValidationErrorMapsTo400(t *testing.T) {
	router := newAuthRouter(&fakeAuthService{
		sendErr: domainerrors.NewValidationError("invalid phone number", "must be 10 digits"),
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/auth/send-otp",
		strings.NewReader(`{"phoneNumber":"12"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "VALIDATION_ERROR")
}

func TestVerifyOTP_ReturnsUser(t *testing.T) {
	user := models.NewUser("9876543210")
	router := newAuthRouter(&fakeAuthService{user: user})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/auth/verify-otp",
		strings.NewReader(`{"phoneNumber":"9876543210","otp":"123456"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), user.ID)
}

func TestVerifyOTP_WrongCodeMapsTo400(t *testing.T) {
	router := newAuthRouter(&fakeAuthService{
		verifyErr: domainerrors.NewValidationError("invalid otp", "the code is wrong or has expired"),
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/auth/verify-otp",
		strings.NewReader(`{"phoneNumber":"9876543210","otp":"111111"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
