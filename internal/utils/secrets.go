package utils

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// GenerateSecret generates a cryptographically secure random secret
func GenerateSecret(bytes int) (string, error) {
	b := make([]byte, bytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate random bytes: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// GenerateAdminSecrets generates the shared admin secret and the session signing key
func GenerateAdminSecrets() (adminSecret, signingKey string, err error) {
	adminSecret, err = GenerateSecret(24)
	if err != nil {
		return "", "", fmt.Errorf("failed to generate admin secret: %w", err)
	}

	signingKey, err = GenerateSecret(32) // 256-bit
	if err != nil {
		return "", "", fmt.Errorf("failed to generate signing key: %w", err)
	}

	return adminSecret, signingKey, nil
}
