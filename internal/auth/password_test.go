package auth

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestVerifyPassword(t *testing.T) {
	hash, err := HashPassword("s3cret-pass")
	require.NoError(t, err)
	require.NotEqual(t, "s3cret-pass", hash)

	require.True(t, VerifyPassword("s3cret-pass", hash))
	require.False(t, VerifyPassword("wrong", hash))
}

func TestVerifyPasswordEmptyHashNeverMatches(t *testing.T) {
	require.False(t, VerifyPassword("anything", ""))
	require.False(t, VerifyPassword("", ""))
}
