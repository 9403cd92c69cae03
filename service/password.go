// file: service/password.go

package service

import (
	"go-auth-api/logger"

	"golang.org/x/crypto/bcrypt"
)

// HashPassword derives a bcrypt hash for storage. bcrypt is deliberately
// slow; only the login and register paths may call it.
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), 14)
	if err != nil {
		logger.Log.WithError(err).Error("Failed to hash password")
		return "", err
	}
	return string(bytes), nil
}

// CheckPasswordHash verifies a plaintext password against a stored hash.
func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}
