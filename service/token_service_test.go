// file: service/token_service_test.go

package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-auth-api/model"
)

func TestNewTokenService_EmptySecret(t *testing.T) {
	_, err := NewTokenService("", 15*time.Minute)
	assert.Error(t, err)
}

func TestTokenService_AccessTokenRoundTrip(t *testing.T) {
	tokens, err := NewTokenService("test-secret", 15*time.Minute)
	require.NoError(t, err)

	issuedAt := time.Now()
	tokenString, err := tokens.GenerateAccessToken(42, "alice@example.com", model.RoleAdmin)
	require.NoError(t, err)
	assert.NotEmpty(t, tokenString)

	claims, err := tokens.ParseAccessToken(tokenString)
	require.NoError(t, err)

	assert.Equal(t, 42, claims.UserID)
	assert.Equal(t, "alice@example.com", claims.Email)
	assert.Equal(t, "admin", claims.Role)
	assert.Equal(t, "42", claims.Subject)

	// Expiry must be the configured window after issuance.
	expectedExpiry := issuedAt.Add(15 * time.Minute)
	assert.WithinDuration(t, expectedExpiry, claims.ExpiresAt.Time, 5*time.Second)
}

func TestTokenService_ParseRejectsWrongKey(t *testing.T) {
	signer, err := NewTokenService("signing-secret", 15*time.Minute)
	require.NoError(t, err)
	verifier, err := NewTokenService("a-different-secret", 15*time.Minute)
	require.NoError(t, err)

	tokenString, err := signer.GenerateAccessToken(1, "bob@example.com", model.RoleUser)
	require.NoError(t, err)

	_, err = verifier.ParseAccessToken(tokenString)
	assert.Error(t, err)
}

func TestTokenService_ParseRejectsExpiredToken(t *testing.T) {
	// A negative TTL produces a token that is already expired.
	tokens, err := NewTokenService("test-secret", -1*time.Minute)
	require.NoError(t, err)

	tokenString, err := tokens.GenerateAccessToken(1, "bob@example.com", model.RoleUser)
	require.NoError(t, err)

	_, err = tokens.ParseAccessToken(tokenString)
	assert.Error(t, err)
}

func TestTokenService_NewRefreshToken(t *testing.T) {
	tokens, err := NewTokenService("test-secret", 15*time.Minute)
	require.NoError(t, err)

	first, err := tokens.NewRefreshToken()
	require.NoError(t, err)
	second, err := tokens.NewRefreshToken()
	require.NoError(t, err)

	// 64 random bytes, hex encoded.
	assert.Len(t, first, 128)
	assert.NotEqual(t, first, second)
}

func TestTokenService_HashToken(t *testing.T) {
	tokens, err := NewTokenService("test-secret", 15*time.Minute)
	require.NoError(t, err)

	hash := tokens.HashToken("some-raw-token")

	assert.Equal(t, hash, tokens.HashToken("some-raw-token"), "digest must be deterministic")
	assert.NotEqual(t, hash, tokens.HashToken("another-raw-token"))
	assert.NotContains(t, hash, "some-raw-token")
	assert.Len(t, hash, 64) // sha256 hex
}
