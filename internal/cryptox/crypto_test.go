package cryptox

import (
	"encoding/hex"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword_Format(t *testing.T) {
	stored, err := HashPassword("secret1")
	require.NoError(t, err)

	hashed, salt, ok := strings.Cut(stored, ".")
	require.True(t, ok, "stored value must contain a dot")
	assert.Len(t, hashed, scryptKeyLen*2)
	assert.Len(t, salt, saltSize*2)

	_, err = hex.DecodeString(hashed)
	assert.NoError(t, err)
	_, err = hex.DecodeString(salt)
	assert.NoError(t, err)
}

func TestHashPassword_SaltIsRandom(t *testing.T) {
	a, err := HashPassword("same")
	require.NoError(t, err)
	b, err := HashPassword("same")
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestComparePassword(t *testing.T) {
	stored, err := HashPassword("secret1")
	require.NoError(t, err)

	assert.True(t, ComparePassword("secret1", stored))
	assert.False(t, ComparePassword("secret2", stored))
	assert.False(t, ComparePassword("", stored))
	assert.False(t, ComparePassword("Secret1", stored))
}

func TestComparePassword_UsesEmbeddedSalt(t *testing.T) {
	stored, err := hashWithSalt("test123", "00112233445566778899aabbccddeeff")
	require.NoError(t, err)

	again, err := hashWithSalt("test123", "00112233445566778899aabbccddeeff")
	require.NoError(t, err)
	assert.Equal(t, stored, again, "same password and salt must be deterministic")
	assert.True(t, ComparePassword("test123", stored))
}

func TestComparePassword_MalformedStored(t *testing.T) {
	for _, stored := range []string{
		"",
		"nodot",
		".onlysalt",
		"abcd.",
		"zz-not-hex.00112233",
		"00.0123456789abcdef0123456789abcdef",
	} {
		assert.False(t, ComparePassword("anything", stored), "stored %q", stored)
	}
}

// A stored key shorter than 64 bytes must not be compared at its own length.
func TestComparePassword_TruncatedHashRejectsGuesses(t *testing.T) {
	const stored = "00.0123456789abcdef0123456789abcdef"
	for i := 0; i < 300; i++ {
		guess := fmt.Sprintf("guess%d", i)
		require.False(t, ComparePassword(guess, stored), "accepted %q", guess)
	}
}

func TestComparePassword_TruncatedValidHash(t *testing.T) {
	stored, err := HashPassword("s3cret!")
	require.NoError(t, err)

	hashed, salt, _ := strings.Cut(stored, ".")
	assert.False(t, ComparePassword("s3cret!", hashed[:32]+"."+salt))
}
