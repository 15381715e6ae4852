package token

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRefreshToken_Shape(t *testing.T) {
	tok, err := NewRefreshToken()

	require.NoError(t, err)
	assert.Len(t, tok, 2*refreshTokenBytes)
	_, err = hex.DecodeString(tok)
	assert.NoError(t, err)
}

func TestNewRefreshToken_Unique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		tok, err := NewRefreshToken()
		require.NoError(t, err)
		assert.False(t, seen[tok], "duplicate refresh token")
		seen[tok] = true
	}
}
