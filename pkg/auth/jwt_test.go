package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key"

func newTestValidator(t *testing.T) *JWTValidator {
	t.Helper()
	v, err := NewJWTValidator(JWTConfig{
		SigningMethod: "HS256",
		SecretKey:     testSecret,
		Issuer:        "dreamvault",
	})
	require.NoError(t, err)
	return v
}

func newTestGenerator(t *testing.T, expiry time.Duration) *JWTGenerator {
	t.Helper()
	g, err := NewJWTGenerator(JWTGeneratorConfig{
		SigningMethod: "HS256",
		SecretKey:     testSecret,
		Issuer:        "dreamvault",
		ExpiryTime:    expiry,
	})
	require.NoError(t, err)
	return g
}

func TestValidateToken(t *testing.T) {
	validator := newTestValidator(t)

	t.Run("accepts a freshly issued token", func(t *testing.T) {
		token, err := newTestGenerator(t, time.Hour).GenerateToken("user-1", "u@example.com", []string{"member"})
		require.NoError(t, err)

		claims, err := validator.ValidateToken(token)
		require.NoError(t, err)
		assert.Equal(t, "user-1", claims.UserID)
		assert.Equal(t, "u@example.com", claims.Email)
		assert.Equal(t, []string{"member"}, claims.Roles)
	})

	t.Run("rejects an expired token", func(t *testing.T) {
		token, err := newTestGenerator(t, -time.Minute).GenerateToken("user-1", "", nil)
		require.NoError(t, err)

		_, err = validator.ValidateToken(token)
		assert.ErrorIs(t, err, ErrExpiredToken)
	})

	t.Run("rejects a token signed with another key", func(t *testing.T) {
		other, err := NewJWTGenerator(JWTGeneratorConfig{
			SecretKey: "other-secret",
			Issuer:    "dreamvault",
		})
		require.NoError(t, err)

		token, err := other.GenerateToken("user-1", "", nil)
		require.NoError(t, err)

		_, err = validator.ValidateToken(token)
		assert.ErrorIs(t, err, ErrInvalidSignature)
	})

	t.Run("rejects a wrong issuer", func(t *testing.T) {
		g, err := NewJWTGenerator(JWTGeneratorConfig{
			SecretKey: testSecret,
			Issuer:    "someone-else",
		})
		require.NoError(t, err)

		token, err := g.GenerateToken("user-1", "", nil)
		require.NoError(t, err)

		_, err = validator.ValidateToken(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("rejects garbage", func(t *testing.T) {
		_, err := validator.ValidateToken("not-a-token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestUserContext(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		ctx := SetUserInContext(context.Background(), &UserContext{UserID: "user-9"})

		user, err := GetUserFromContext(ctx)
		require.NoError(t, err)
		assert.Equal(t, "user-9", user.UserID)
	})

	t.Run("missing user", func(t *testing.T) {
		_, err := GetUserFromContext(context.Background())
		assert.ErrorIs(t, err, ErrMissingUser)
	})
}
