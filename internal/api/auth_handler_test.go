package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/stridehq/stride-api/internal/mocks"
	"github.com/stridehq/stride-api/internal/service"
	"github.com/stridehq/stride-api/internal/service/auth"
)

func newTestAuthHandler(t *testing.T) (*AuthHandler, service.UserService) {
	t.Helper()
	hasher := auth.NewBcryptHasher(bcrypt.MinCost)
	userService := service.NewUserService(mocks.NewMockUserStore(), hasher, discardLogger())
	jwtService := &mocks.MockJWTService{Token: "test-token"}
	return NewAuthHandler(userService, jwtService, hasher), userService
}

func postJSON(t *testing.T, handler http.HandlerFunc, path string, payload any) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

func TestRegisterSuccess(t *testing.T) {
	handler, _ := newTestAuthHandler(t)

	rec := postJSON(t, handler.Register, "/api/auth/register", RegisterRequest{
		Email:    "alice@example.com",
		Password: "long-enough-password",
	})

	require.Equal(t, http.StatusCreated, rec.Code)

	var resp AuthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEqual(t, uuid.Nil, resp.UserID)
	assert.Equal(t, "test-token", resp.Token)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	handler, userService := newTestAuthHandler(t)

	_, err := userService.CreateUser(context.Background(), "alice@example.com", "long-enough-password")
	require.NoError(t, err)

	rec := postJSON(t, handler.Register, "/api/auth/register", RegisterRequest{
		Email:    "alice@example.com",
		Password: "another-long-password",
	})

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestRegisterValidation(t *testing.T) {
	handler, _ := newTestAuthHandler(t)

	tests := []struct {
		name string
		req  RegisterRequest
	}{
		{"missing email", RegisterRequest{Password: "long-enough-password"}},
		{"malformed email", RegisterRequest{Email: "not-an-email", Password: "long-enough-password"}},
		{"short password", RegisterRequest{Email: "alice@example.com", Password: "short"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := postJSON(t, handler.Register, "/api/auth/register", tc.req)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestRegisterMalformedBody(t *testing.T) {
	handler, _ := newTestAuthHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", bytes.NewReader([]byte("{not json")))
	rec := httptest.NewRecorder()
	handler.Register(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLoginSuccess(t *testing.T) {
	handler, userService := newTestAuthHandler(t)

	user, err := userService.CreateUser(context.Background(), "alice@example.com", "long-enough-password")
	require.NoError(t, err)

	rec := postJSON(t, handler.Login, "/api/auth/login", LoginRequest{
		Email:    "alice@example.com",
		Password: "long-enough-password",
	})

	require.Equal(t, http.StatusOK, rec.Code)

	var resp AuthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, user.ID, resp.UserID)
	assert.Equal(t, "test-token", resp.Token)
}

func TestLoginWrongPassword(t *testing.T) {
	handler, userService := newTestAuthHandler(t)

	_, err := userService.CreateUser(context.Background(), "alice@example.com", "long-enough-password")
	require.NoError(t, err)

	rec := postJSON(t, handler.Login, "/api/auth/login", LoginRequest{
		Email:    "alice@example.com",
		Password: "wrong-password",
	})

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid credentials")
}

func TestLoginUnknownEmail(t *testing.T) {
	handler, _ := newTestAuthHandler(t)

	rec := postJSON(t, handler.Login, "/api/auth/login", LoginRequest{
		Email:    "nobody@example.com",
		Password: "whatever-password",
	})

	// Indistinguishable from a wrong password.
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid credentials")
}
