package utils

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("correct horse battery staple")
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse battery staple", hash)
	assert.True(t, CheckPasswordHash("correct horse battery staple", hash))
	assert.False(t, CheckPasswordHash("wrong", hash))
}

func TestGenerateSecureRandomString(t *testing.T) {
	a, err := GenerateSecureRandomString(16)
	require.NoError(t, err)
	b, err := GenerateSecureRandomString(16)
	require.NoError(t, err)
	assert.Len(t, a, 32)
	assert.NotEqual(t, a, b)

	_, err = GenerateSecureRandomString(0)
	assert.Error(t, err)
}

func TestInviteToken(t *testing.T) {
	token, hash, err := NewInviteToken("identity-1")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(token, "identity-1."))

	id, secret, err := ParseInviteToken(token)
	require.NoError(t, err)
	assert.Equal(t, "identity-1", id)
	assert.True(t, CheckPasswordHash(secret, hash))

	for _, bad := range []string{"", "nodot", ".secret", "id."} {
		_, _, err := ParseInviteToken(bad)
		assert.ErrorIs(t, err, ErrMalformedInviteToken, bad)
	}
}

func TestGenerateAndParseJWT(t *testing.T) {
	token, expiresAt, err := GenerateJWT("user-1", "secret", time.Hour, "loandesk")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, time.Minute)

	claims, err := ParseAndValidateJWT(token, "secret", "loandesk")
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.Subject)

	_, err = ParseAndValidateJWT(token, "other-secret", "loandesk")
	assert.Error(t, err)

	_, err = ParseAndValidateJWT(token, "secret", "someone-else")
	assert.Error(t, err)
}
