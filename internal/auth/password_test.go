package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerify(t *testing.T) {
	t.Parallel()

	digest, err := HashPassword("s3cret-password")
	require.NoError(t, err)
	require.NotEmpty(t, digest)
	assert.NotEqual(t, "s3cret-password", digest)

	assert.True(t, VerifyPassword("s3cret-password", digest))
	assert.False(t, VerifyPassword("wrong-password", digest))
}

func TestHashIsSalted(t *testing.T) {
	t.Parallel()

	first, err := HashPassword("same input")
	require.NoError(t, err)
	second, err := HashPassword("same input")
	require.NoError(t, err)

	// Same password, different salt, different digest; both verify.
	assert.NotEqual(t, first, second)
	assert.True(t, VerifyPassword("same input", first))
	assert.True(t, VerifyPassword("same input", second))
}

func TestVerifyMalformedDigest(t *testing.T) {
	t.Parallel()

	assert.False(t, VerifyPassword("anything", "not-a-bcrypt-digest"))
	assert.False(t, VerifyPassword("anything", ""))
}
