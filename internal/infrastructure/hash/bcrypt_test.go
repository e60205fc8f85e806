package hash

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeVerifyRoundTrip(t *testing.T) {
	codec := NewBcryptCodec()

	hash, err := codec.Encode("correct horse battery staple")
	require.NoError(t, err)
	require.NotEmpty(t, hash)
	assert.NotContains(t, hash, "correct horse")

	assert.True(t, codec.Verify("correct horse battery staple", hash))
	assert.False(t, codec.Verify("wrong password", hash))
}

func TestEncodeProducesDistinctHashes(t *testing.T) {
	codec := NewBcryptCodec()

	h1, err := codec.Encode("same input")
	require.NoError(t, err)
	h2, err := codec.Encode("same input")
	require.NoError(t, err)

	// Salted: two encodings of one plaintext must differ.
	assert.NotEqual(t, h1, h2)
}

func TestVerifyRejectsGarbageHash(t *testing.T) {
	codec := NewBcryptCodec()
	assert.False(t, codec.Verify("anything", "not-a-bcrypt-hash"))
}
