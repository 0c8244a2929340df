package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("Sup3r-Secret")
	require.NoError(t, err)
	assert.NotEqual(t, "Sup3r-Secret", hash)

	assert.True(t, CheckPasswordHash("Sup3r-Secret", hash))
	assert.False(t, CheckPasswordHash("wrong-password", hash))
}

func TestHashPasswordIsSalted(t *testing.T) {
	first, err := HashPassword("Sup3r-Secret")
	require.NoError(t, err)
	second, err := HashPassword("Sup3r-Secret")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestValidatePassword(t *testing.T) {
	assert.NoError(t, ValidatePassword("long-enough"))
	assert.Error(t, ValidatePassword("short"))
}

func TestGenerateSecureToken(t *testing.T) {
	first, err := GenerateSecureToken()
	require.NoError(t, err)
	assert.Len(t, first, 64)

	second, err := GenerateSecureToken()
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
}
