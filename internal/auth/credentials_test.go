// FilePath: internal/auth/credentials_test.go
package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPasswordVerifies(t *testing.T) {
	store := NewCredentialStore(4) // min cost keeps the test fast

	hash, err := store.HashPassword("s3cret-pw")
	require.NoError(t, err)
	require.NotEmpty(t, hash)

	assert.True(t, store.CheckPassword("s3cret-pw", hash))
	assert.False(t, store.CheckPassword("wrong-pw", hash))
}

func TestHashPasswordIsSalted(t *testing.T) {
	store := NewCredentialStore(4)

	hash1, err := store.HashPassword("same-input")
	require.NoError(t, err)
	hash2, err := store.HashPassword("same-input")
	require.NoError(t, err)

	assert.NotEqual(t, hash1, hash2)
	assert.True(t, store.CheckPassword("same-input", hash1))
	assert.True(t, store.CheckPassword("same-input", hash2))
}

func TestCheckPasswordMalformedHash(t *testing.T) {
	store := NewCredentialStore(4)

	assert.False(t, store.CheckPassword("anything", "not-a-bcrypt-hash"))
	assert.False(t, store.CheckPassword("anything", ""))
}

func TestNewCredentialStoreCostFallback(t *testing.T) {
	store := NewCredentialStore(999)

	hash, err := store.HashPassword("pw")
	require.NoError(t, err)
	assert.True(t, store.CheckPassword("pw", hash))
}
