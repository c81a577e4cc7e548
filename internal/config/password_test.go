package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPasswordConfig_Defaults(t *testing.T) {
	t.Setenv("BCRYPT_COST", "")
	t.Setenv("PASSWORD_PEPPER", "")

	cfg, err := NewPasswordConfig()
	require.NoError(t, err)
	assert.Equal(t, 12, cfg.BcryptCost)
	assert.Empty(t, cfg.Pepper)
}

func TestNewPasswordConfig_CostOutOfRange(t *testing.T) {
	for _, cost := range []string{"9", "15", "abc"} {
		t.Run(cost, func(t *testing.T) {
			t.Setenv("BCRYPT_COST", cost)
			_, err := NewPasswordConfig()
			assert.Error(t, err)
		})
	}
}

func TestPasswordConfig_HashAndVerify(t *testing.T) {
	cfg := &PasswordConfig{BcryptCost: 10}

	hash, err := cfg.HashPassword("correct-horse-battery")
	require.NoError(t, err)
	require.NotEmpty(t, hash)
	assert.NotEqual(t, "correct-horse-battery", hash)

	assert.True(t, cfg.VerifyPassword("correct-horse-battery", hash))
	assert.False(t, cfg.VerifyPassword("wrong-password", hash))
}

func TestPasswordConfig_PepperChangesHash(t *testing.T) {
	plain := &PasswordConfig{BcryptCost: 10}
	peppered := &PasswordConfig{BcryptCost: 10, Pepper: "extra-secret"}

	hash, err := peppered.HashPassword("correct-horse-battery")
	require.NoError(t, err)

	assert.True(t, peppered.VerifyPassword("correct-horse-battery", hash))
	assert.False(t, plain.VerifyPassword("correct-horse-battery", hash))
}
