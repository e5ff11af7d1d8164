// Package security provides the credential primitives behind the auth
// service: bcrypt password hashing and opaque bearer-session tokens.
package security

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
)

// defaultTokenBytes yields 43 URL-safe characters, enough entropy that
// session tokens need no server-side signing.
const defaultTokenBytes = 32

// RandomTokenGenerator mints opaque session tokens from crypto/rand.
// Size is the number of random bytes before encoding; zero means the default.
type RandomTokenGenerator struct {
	Size int
}

func (g RandomTokenGenerator) NewToken() (string, error) {
	size := g.Size
	if size <= 0 {
		size = defaultTokenBytes
	}
	buf := make([]byte, size)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("security: token entropy read failed: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
