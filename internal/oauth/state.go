package oauth

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
)

// stateByteLen is the number of random bytes in a state token (256 bits).
const stateByteLen = 32

// GenerateState generates a random state parameter for OAuth.
// The state is used to prevent CSRF attacks and link the authorization
// response back to the original request.
func GenerateState() (string, error) {
	buf := make([]byte, stateByteLen)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate state: %w", err)
	}

	return base64.RawURLEncoding.EncodeToString(buf), nil
}
