// ABOUTME: Tests for bcrypt password hashing and verification
// ABOUTME: Malformed hashes must verify as false, never error into callers

package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword_SaltsPerCall(t *testing.T) {
	h1, err := HashPassword("correct-horse")
	require.NoError(t, err)
	h2, err := HashPassword("correct-horse")
	require.NoError(t, err)

	assert.NotEqual(t, h1, h2)
	assert.NotContains(t, h1, "correct-horse")
}

func TestCheckPassword(t *testing.T) {
	hash, err := HashPassword("correct-horse")
	require.NoError(t, err)

	assert.True(t, CheckPassword("correct-horse", hash))
	assert.False(t, CheckPassword("wrong", hash))
	assert.False(t, CheckPassword("", hash))
}

func TestCheckPassword_MalformedHash(t *testing.T) {
	assert.False(t, CheckPassword("anything", ""))
	assert.False(t, CheckPassword("anything", "not-a-bcrypt-hash"))
	assert.False(t, CheckPassword("anything", "$2a$corrupted"))
}

func TestCheckPassword_DummyHashNeverMatches(t *testing.T) {
	// The dummy hash exists for timing parity on unknown handles; no real
	// password should validate against it.
	assert.False(t, CheckPassword("password", DummyHash))
	assert.False(t, CheckPassword("", DummyHash))
}
