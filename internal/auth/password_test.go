package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword_RoundTrip(t *testing.T) {
	password := "correct horse battery staple"

	hashed, err := HashPassword(password, 4)
	require.NoError(t, err)
	assert.NotEqual(t, password, hashed)

	assert.NoError(t, ComparePassword(hashed, password))
	assert.Error(t, ComparePassword(hashed, "wrong password"))
}

func TestHashPassword_FreshSaltEachCall(t *testing.T) {
	password := "same input"

	first, err := HashPassword(password, 4)
	require.NoError(t, err)
	second, err := HashPassword(password, 4)
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.NoError(t, ComparePassword(first, password))
	assert.NoError(t, ComparePassword(second, password))
}

func TestComparePassword_MalformedDigest(t *testing.T) {
	assert.Error(t, ComparePassword("not a bcrypt digest", "anything"))
	assert.Error(t, ComparePassword("", "anything"))
}
