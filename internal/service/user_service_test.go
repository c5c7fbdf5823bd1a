package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stridehq/stride-api/internal/domain"
	"github.com/stridehq/stride-api/internal/mocks"
	"github.com/stridehq/stride-api/internal/service/auth"
	"github.com/stridehq/stride-api/internal/store"
)

func newTestUserService() UserService {
	// bcrypt's minimum cost keeps the tests fast.
	return NewUserService(mocks.NewMockUserStore(), auth.NewBcryptHasher(4), discardLogger())
}

func TestCreateUserHashesPassword(t *testing.T) {
	svc := newTestUserService()

	user, err := svc.CreateUser(context.Background(), "runner@example.com", "correct horse battery")
	require.NoError(t, err)

	assert.Equal(t, "runner@example.com", user.Email)
	assert.NotEmpty(t, user.HashedPassword)
	assert.NotEqual(t, "correct horse battery", user.HashedPassword)

	// The stored hash verifies against the original password.
	hasher := auth.NewBcryptHasher(4)
	assert.NoError(t, hasher.Compare(user.HashedPassword, "correct horse battery"))
	assert.Error(t, hasher.Compare(user.HashedPassword, "wrong password"))
}

func TestCreateUserRejectsShortPassword(t *testing.T) {
	svc := newTestUserService()

	_, err := svc.CreateUser(context.Background(), "runner@example.com", "short")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidPassword)
}

func TestCreateUserRejectsBadEmail(t *testing.T) {
	svc := newTestUserService()

	_, err := svc.CreateUser(context.Background(), "not-an-email", "correct horse battery")
	assert.ErrorIs(t, err, domain.ErrInvalidEmail)
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	svc := newTestUserService()

	_, err := svc.CreateUser(context.Background(), "runner@example.com", "correct horse battery")
	require.NoError(t, err)

	_, err = svc.CreateUser(context.Background(), "runner@example.com", "another password")
	assert.ErrorIs(t, err, store.ErrEmailExists)
}

func TestGetUserByEmail(t *testing.T) {
	svc := newTestUserService()

	created, err := svc.CreateUser(context.Background(), "runner@example.com", "correct horse battery")
	require.NoError(t, err)

	got, err := svc.GetUserByEmail(context.Background(), "runner@example.com")
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)

	_, err = svc.GetUserByEmail(context.Background(), "nobody@example.com")
	assert.ErrorIs(t, err, store.ErrUserNotFound)
}

func TestGetUser(t *testing.T) {
	svc := newTestUserService()

	created, err := svc.CreateUser(context.Background(), "runner@example.com", "correct horse battery")
	require.NoError(t, err)

	got, err := svc.GetUser(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.Email, got.Email)
}
