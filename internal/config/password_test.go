package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPasswordConfig(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cfg, err := NewPasswordConfig()
		require.NoError(t, err)
		assert.Equal(t, 12, cfg.BcryptCost)
		assert.Empty(t, cfg.Pepper)
	})

	t.Run("from environment", func(t *testing.T) {
		t.Setenv("BCRYPT_COST", "10")
		t.Setenv("PASSWORD_PEPPER", "global-secret")

		cfg, err := NewPasswordConfig()
		require.NoError(t, err)
		assert.Equal(t, 10, cfg.BcryptCost)
		assert.Equal(t, "global-secret", cfg.Pepper)
	})

	t.Run("rejects bad values", func(t *testing.T) {
		for _, bad := range []string{"nine", "9", "15"} {
			t.Setenv("BCRYPT_COST", bad)
			_, err := NewPasswordConfig()
			assert.Error(t, err, bad)
		}
	})
}

func TestHashAndVerifyPassword(t *testing.T) {
	cfg := &PasswordConfig{BcryptCost: 10}

	hash, err := cfg.HashPassword("correct horse battery")
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse battery", hash)

	assert.True(t, cfg.VerifyPassword("correct horse battery", hash))
	assert.False(t, cfg.VerifyPassword("wrong password", hash))
	assert.False(t, cfg.VerifyPassword("", hash))
}

func TestHashPassword_SaltedPerCall(t *testing.T) {
	cfg := &PasswordConfig{BcryptCost: 10}

	first, err := cfg.HashPassword("same password")
	require.NoError(t, err)
	second, err := cfg.HashPassword("same password")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.True(t, cfg.VerifyPassword("same password", first))
	assert.True(t, cfg.VerifyPassword("same password", second))
}

func TestVerifyPassword_PepperMustMatch(t *testing.T) {
	peppered := &PasswordConfig{BcryptCost: 10, Pepper: "pepper-one"}
	hash, err := peppered.HashPassword("secret phrase")
	require.NoError(t, err)

	assert.True(t, peppered.VerifyPassword("secret phrase", hash))

	unpeppered := &PasswordConfig{BcryptCost: 10}
	assert.False(t, unpeppered.VerifyPassword("secret phrase", hash))

	otherPepper := &PasswordConfig{BcryptCost: 10, Pepper: "pepper-two"}
	assert.False(t, otherPepper.VerifyPassword("secret phrase", hash))
}

func TestVerifyPassword_GarbageHash(t *testing.T) {
	cfg := &PasswordConfig{BcryptCost: 10}
	assert.False(t, cfg.VerifyPassword("anything", "not-a-bcrypt-hash"))
	assert.False(t, cfg.VerifyPassword("anything", ""))
}
