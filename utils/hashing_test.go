package utils

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndCheckPassword(t *testing.T) {
	viper.Set("PASSWORD_PEPPER", "test-pepper")
	t.Cleanup(func() { viper.Set("PASSWORD_PEPPER", "") })

	hash, err := HashPassword("rahasia123")
	require.NoError(t, err)
	assert.NotEqual(t, "rahasia123", hash)

	assert.True(t, CheckPasswordHash("rahasia123", hash))
	assert.False(t, CheckPasswordHash("salah", hash))
}

func TestCheckPasswordHashPepperMismatch(t *testing.T) {
	viper.Set("PASSWORD_PEPPER", "pepper-a")
	hash, err := HashPassword("rahasia123")
	require.NoError(t, err)

	viper.Set("PASSWORD_PEPPER", "pepper-b")
	t.Cleanup(func() { viper.Set("PASSWORD_PEPPER", "") })
	assert.False(t, CheckPasswordHash("rahasia123", hash))
}
