package auth

import (
	"crypto/rand"
	"encoding/hex"
)

// GenerateSecureToken returns a hex string built from 32 bytes of
// cryptographically secure randomness. Used for email verification and
// password reset tokens.
func GenerateSecureToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
