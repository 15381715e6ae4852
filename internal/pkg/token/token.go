package token

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// refreshTokenBytes is the entropy behind each opaque session refresh token.
// Sessions store and rotate the hex form, so the refresh_token GSI carries
// 2*refreshTokenBytes characters per item.
const refreshTokenBytes = 32

// NewRefreshToken mints the opaque token a session presents to rotate its
// access token. Hex keeps it URL- and JSON-safe without an extra encoding
// layer.
func NewRefreshToken() (string, error) {
	b := make([]byte, refreshTokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate refresh token: %w", err)
	}
	return hex.EncodeToString(b), nil
}
