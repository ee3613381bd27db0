package helpers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashPassword_UsesFixedCost(t *testing.T) {
	hash, err := HashPassword("secret")
	require.NoError(t, err)

	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.Equal(t, PasswordCost, cost)
	assert.NotEqual(t, "secret", hash)
}

func TestHashPassword_Salted(t *testing.T) {
	a, err := HashPassword("secret")
	require.NoError(t, err)
	b, err := HashPassword("secret")
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
	assert.True(t, CompareHashAndPassword(a, "secret"))
	assert.True(t, CompareHashAndPassword(b, "secret"))
}

func TestCompareHashAndPassword_Mismatch(t *testing.T) {
	hash, err := HashPassword("secret")
	require.NoError(t, err)

	assert.False(t, CompareHashAndPassword(hash, "Secret"))
	assert.False(t, CompareHashAndPassword(hash, ""))
	assert.False(t, CompareHashAndPassword("not-a-bcrypt-hash", "secret"))
	assert.False(t, CompareHashAndPassword("", "secret"))
}
