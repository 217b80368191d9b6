package utils

import (
	"testing"

	"film-vault/internal/config"

	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	config.Set(&config.Config{
		App: config.AppConfig{Name: "film-vault"},
		JWT: config.JWTConfig{Secret: "test-secret", ExpireHours: 1},
	})

	token, err := GenerateToken(42, "admin")
	require.NoError(t, err)

	claims, err := ParseToken(token)
	require.NoError(t, err)
	require.EqualValues(t, 42, claims.UserID)
	require.Equal(t, "admin", claims.Role)

	_, err = ParseToken(token + "x")
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenExpired(t *testing.T) {
	config.Set(&config.Config{
		App: config.AppConfig{Name: "film-vault"},
		JWT: config.JWTConfig{Secret: "test-secret", ExpireHours: -1},
	})

	token, err := GenerateToken(1, "user")
	require.NoError(t, err)

	_, err = ParseToken(token)
	require.ErrorIs(t, err, ErrExpiredToken)
}

func TestTokenWithoutSecret(t *testing.T) {
	config.Set(&config.Config{JWT: config.JWTConfig{}})

	_, err := GenerateToken(1, "user")
	require.Error(t, err)

	_, err = ParseToken("anything")
	require.ErrorIs(t, err, ErrInvalidToken)
}
