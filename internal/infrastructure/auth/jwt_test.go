package auth

import (
	"testing"
	"time"

	"github.com/ginvoice/backend/internal/infrastructure/config"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testJWTService() *JWTService {
	return NewJWTService(config.JWTConfig{
		Secret:                "test-secret-key-that-is-long-enough",
		AccessTokenExpiration: time.Hour,
		Issuer:                "ginvoice-test",
	})
}

func TestJWTService_GenerateAndValidate(t *testing.T) {
	service := testJWTService()
	userID := uuid.New()

	t.Run("round trips claims", func(t *testing.T) {
		token, err := service.Generate(GenerateTokenInput{
			UserID:       userID,
			Name:         "a.fischer",
			Capabilities: []string{"intake:write", "dashboard:read"},
		})
		require.NoError(t, err)
		require.NotEmpty(t, token.AccessToken)
		assert.Equal(t, "Bearer", token.TokenType)

		claims, err := service.Validate(token.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, userID.String(), claims.UserID)
		assert.Equal(t, "a.fischer", claims.Name)
		assert.True(t, claims.HasCapability("intake:write"))
		assert.False(t, claims.HasCapability("accounting:post"))

		parsed, err := claims.GetUserUUID()
		require.NoError(t, err)
		assert.Equal(t, userID, parsed)
	})

	t.Run("rejects tampered tokens", func(t *testing.T) {
		token, err := service.Generate(GenerateTokenInput{UserID: userID, Name: "a.fischer"})
		require.NoError(t, err)

		_, err = service.Validate(token.AccessToken + "x")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("rejects tokens signed with a different secret", func(t *testing.T) {
		other := NewJWTService(config.JWTConfig{
			Secret:                "another-secret-key-entirely-here",
			AccessTokenExpiration: time.Hour,
			Issuer:                "ginvoice-test",
		})
		token, err := other.Generate(GenerateTokenInput{UserID: userID, Name: "a.fischer"})
		require.NoError(t, err)

		_, err = service.Validate(token.AccessToken)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("rejects expired tokens", func(t *testing.T) {
		expired := NewJWTService(config.JWTConfig{
			Secret:                "test-secret-key-that-is-long-enough",
			AccessTokenExpiration: -time.Minute,
			Issuer:                "ginvoice-test",
		})
		token, err := expired.Generate(GenerateTokenInput{UserID: userID, Name: "a.fischer"})
		require.NoError(t, err)

		_, err = service.Validate(token.AccessToken)
		assert.ErrorIs(t, err, ErrExpiredToken)
	})

	t.Run("remaining TTL shrinks towards zero", func(t *testing.T) {
		token, err := service.Generate(GenerateTokenInput{UserID: userID, Name: "a.fischer"})
		require.NoError(t, err)

		claims, err := service.Validate(token.AccessToken)
		require.NoError(t, err)

		ttl := claims.GetRemainingTTL()
		assert.True(t, ttl > 0)
		assert.True(t, ttl <= time.Hour)
	})
}
