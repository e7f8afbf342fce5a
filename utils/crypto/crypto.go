package crypto

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
)

// TokenLength is the number of random bytes in a token key. The hex-encoded
// key is twice this long.
const TokenLength = 20

// GenerateTokenKey generates a cryptographically secure opaque token key.
func GenerateTokenKey() (string, error) {
	raw := make([]byte, TokenLength)
	if _, err := io.ReadFull(rand.Reader, raw); err != nil {
		return "", fmt.Errorf("failed to generate token key: %w", err)
	}
	return hex.EncodeToString(raw), nil
}
