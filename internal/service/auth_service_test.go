package service

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthRegisterAndLogin(t *testing.T) {
	ctx := context.Background()
	svc := NewAuthService(newFakeUserRepo(), "test-secret", time.Hour)

	user, err := svc.Register(ctx, "Ada", "ada@example.com", "hunter22")
	require.NoError(t, err)
	assert.False(t, user.ID.IsZero())
	assert.Empty(t, user.PasswordHash, "hash must never leave the service")

	_, err = svc.Register(ctx, "Ada Again", "ada@example.com", "other")
	assert.ErrorIs(t, err, ErrUserAlreadyExists)

	token, loggedIn, err := svc.Login(ctx, "ada@example.com", "hunter22")
	require.NoError(t, err)
	assert.Equal(t, user.ID, loggedIn.ID)
	assert.Empty(t, loggedIn.PasswordHash)

	// The token must carry the user ID and verify against the secret.
	claims := &jwtClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)
	assert.True(t, parsed.Valid)
	assert.Equal(t, user.ID.Hex(), claims.UserID)
}

func TestAuthLoginFailures(t *testing.T) {
	ctx := context.Background()
	svc := NewAuthService(newFakeUserRepo(), "test-secret", time.Hour)

	_, err := svc.Register(ctx, "Ada", "ada@example.com", "hunter22")
	require.NoError(t, err)

	_, _, err = svc.Login(ctx, "ada@example.com", "wrong")
	assert.ErrorIs(t, err, ErrAuthenticationFailed)

	_, _, err = svc.Login(ctx, "nobody@example.com", "hunter22")
	assert.ErrorIs(t, err, ErrAuthenticationFailed, "unknown email and bad password are indistinguishable")

	_, _, err = svc.Login(ctx, "", "")
	assert.Error(t, err)
}

func TestAuthRegisterValidation(t *testing.T) {
	svc := NewAuthService(newFakeUserRepo(), "test-secret", time.Hour)

	_, err := svc.Register(context.Background(), "", "ada@example.com", "hunter22")
	assert.Error(t, err)
	_, err = svc.Register(context.Background(), "Ada", "", "hunter22")
	assert.Error(t, err)
	_, err = svc.Register(context.Background(), "Ada", "ada@example.com", "")
	assert.Error(t, err)
}
