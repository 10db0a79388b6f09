package utils

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// ErrMalformedInviteToken is returned for tokens not produced by NewInviteToken.
var ErrMalformedInviteToken = errors.New("malformed invite token")

// GenerateSecureRandomString returns lengthInBytes random bytes, hex encoded.
func GenerateSecureRandomString(lengthInBytes int) (string, error) {
	if lengthInBytes <= 0 {
		return "", fmt.Errorf("lengthInBytes must be positive")
	}
	b := make([]byte, lengthInBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to read random bytes: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// HashPassword hashes a plaintext secret using bcrypt.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(hash), err
}

// CheckPasswordHash compares a plaintext secret with a bcrypt hash.
func CheckPasswordHash(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// NewInviteToken returns the token to mail to identityID and the bcrypt hash to store.
// The token is "<identityID>.<secret>" so the row can be found without scanning hashes.
func NewInviteToken(identityID string) (token string, secretHash string, err error) {
	secret, err := GenerateSecureRandomString(24)
	if err != nil {
		return "", "", err
	}
	secretHash, err = HashPassword(secret)
	if err != nil {
		return "", "", fmt.Errorf("failed to hash invite secret: %w", err)
	}
	return identityID + "." + secret, secretHash, nil
}

// ParseInviteToken splits a token produced by NewInviteToken.
func ParseInviteToken(token string) (identityID string, secret string, err error) {
	identityID, secret, ok := strings.Cut(token, ".")
	if !ok || identityID == "" || secret == "" {
		return "", "", ErrMalformedInviteToken
	}
	return identityID, secret, nil
}
