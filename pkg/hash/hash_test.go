package hash_test

import (
	"testing"

	"github.com/prasetyadi/gerai/pkg/hash"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordRoundTrip(t *testing.T) {
	h, err := hash.Password("rahasia123")
	require.NoError(t, err)
	assert.NotEqual(t, "rahasia123", h, "hash must not equal the plaintext")

	assert.True(t, hash.Verify("rahasia123", h))
	assert.False(t, hash.Verify("rahasia124", h))
}

func TestHashesAreSalted(t *testing.T) {
	h1, err := hash.Password("samepassword")
	require.NoError(t, err)
	h2, err := hash.Password("samepassword")
	require.NoError(t, err)

	assert.NotEqual(t, h1, h2, "two hashes of the same password must differ")
	assert.True(t, hash.Verify("samepassword", h1))
	assert.True(t, hash.Verify("samepassword", h2))
}

func TestVerifyMalformedHash(t *testing.T) {
	assert.False(t, hash.Verify("anything", ""))
	assert.False(t, hash.Verify("anything", "not-a-bcrypt-hash"))
}
