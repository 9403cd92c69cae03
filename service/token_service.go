// file: service/token_service.go

package service

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"go-auth-api/logger"
	"go-auth-api/model"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// refreshTokenBytes is the entropy of a raw refresh token (512 bits).
const refreshTokenBytes = 64

// TokenService issues and verifies credentials: signed short-lived access
// tokens and opaque refresh tokens. The signing secret is injected once at
// construction and never read from global state.
type TokenService struct {
	secretKey []byte
	accessTTL time.Duration
}

// NewTokenService creates a TokenService. An empty secret is a configuration
// error and is rejected here so the process fails before accepting traffic.
func NewTokenService(secretKey string, accessTTL time.Duration) (*TokenService, error) {
	if secretKey == "" {
		return nil, errors.New("jwt signing secret must not be empty")
	}
	return &TokenService{
		secretKey: []byte(secretKey),
		accessTTL: accessTTL,
	}, nil
}

// GenerateAccessToken signs a JWT carrying the user's id, email and role,
// valid for the configured access window.
func (s *TokenService) GenerateAccessToken(userID int, email string, role model.Role) (string, error) {
	now := time.Now()

	claims := &model.AppClaims{
		UserID: userID,
		Email:  email,
		Role:   string(role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.Itoa(userID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.accessTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.secretKey)
	if err != nil {
		logger.Log.WithError(err).WithField("user_id", userID).Error("Failed to sign access token")
		return "", fmt.Errorf("failed to sign token string: %w", err)
	}

	return tokenString, nil
}

// ParseAccessToken verifies signature and expiry and returns the claims.
func (s *TokenService) ParseAccessToken(tokenString string) (*model.AppClaims, error) {
	claims := &model.AppClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return s.secretKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("invalid access token")
	}

	return claims, nil
}

// NewRefreshToken generates a cryptographically random opaque token. The
// value carries no user data; ownership is bound only via the stored hash.
func (s *TokenService) NewRefreshToken() (string, error) {
	buf := make([]byte, refreshTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate refresh token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

// HashToken returns the SHA-256 hex digest of a raw refresh token. Tokens
// are stored and looked up by this digest, so a leaked database never
// exposes a redeemable value.
func (s *TokenService) HashToken(rawToken string) string {
	sum := sha256.Sum256([]byte(rawToken))
	return hex.EncodeToString(sum[:])
}
