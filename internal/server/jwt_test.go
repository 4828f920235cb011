package server

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/umukozihr/resume-tailor/internal/config"
)

func TestJWTRoundTrip(t *testing.T) {
	service := NewJWTService(&config.JWTConfig{Secret: "test-secret", ExpirationHours: 1})
	userID := uuid.New()

	token, err := service.GenerateToken(userID)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := service.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.GetUserID())
}

func TestValidateToken_WrongSecret(t *testing.T) {
	issuer := NewJWTService(&config.JWTConfig{Secret: "secret-one", ExpirationHours: 1})
	verifier := NewJWTService(&config.JWTConfig{Secret: "secret-two", ExpirationHours: 1})

	token, err := issuer.GenerateToken(uuid.New())
	require.NoError(t, err)

	_, err = verifier.ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateToken_Malformed(t *testing.T) {
	service := NewJWTService(&config.JWTConfig{Secret: "test-secret", ExpirationHours: 1})

	for _, bad := range []string{"", "not.a.token", "abc"} {
		_, err := service.ValidateToken(bad)
		assert.Error(t, err, bad)
	}
}
