package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"barvid/internal/repository"
)

func newAuthFixture(t *testing.T) *AuthService {
	t.Helper()

	return NewAuthService(repository.NewUserRepository(t.TempDir()))
}

func TestLogin(t *testing.T) {
	svc := newAuthFixture(t)
	ctx := context.Background()

	_, err := svc.AddUser(ctx, "somchai", "packline99")
	require.NoError(t, err)

	user, err := svc.Login(ctx, "somchai", "packline99")
	require.NoError(t, err)
	assert.Equal(t, "somchai", user.Username)

	// Wrong password and unknown user fail identically.
	_, err = svc.Login(ctx, "somchai", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(ctx, "nobody", "packline99")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAddUserConflict(t *testing.T) {
	svc := newAuthFixture(t)
	ctx := context.Background()

	_, err := svc.AddUser(ctx, "somchai", "packline99")
	require.NoError(t, err)

	_, err = svc.AddUser(ctx, "somchai", "other")
	assert.ErrorIs(t, err, ErrUsernameExists)
}

func TestChangePassword(t *testing.T) {
	svc := newAuthFixture(t)
	ctx := context.Background()

	_, err := svc.AddUser(ctx, "somchai", "packline99")
	require.NoError(t, err)

	err = svc.ChangePassword(ctx, "somchai", "wrong-current", "newpass123")
	assert.ErrorIs(t, err, ErrWrongPassword)

	require.NoError(t, svc.ChangePassword(ctx, "somchai", "packline99", "newpass123"))

	_, err = svc.Login(ctx, "somchai", "packline99")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(ctx, "somchai", "newpass123")
	assert.NoError(t, err)
}

func TestBootstrap(t *testing.T) {
	svc := newAuthFixture(t)
	ctx := context.Background()

	require.NoError(t, svc.Bootstrap(ctx))

	user, err := svc.Login(ctx, "admin", "1234")
	require.NoError(t, err)
	assert.Equal(t, "admin", user.Username)

	// Idempotent once any user exists.
	require.NoError(t, svc.Bootstrap(ctx))

	_, err = svc.AddUser(ctx, "somchai", "packline99")
	require.NoError(t, err)
	require.NoError(t, svc.Bootstrap(ctx))
}
