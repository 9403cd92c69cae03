// file: model/token.go

package model

import "time"

// RefreshToken holds the stored form of a refresh token. Only the SHA-256
// digest of the raw token is persisted; the raw value exists solely in the
// response that issued it.
type RefreshToken struct {
	ID        int       `json:"id"`
	UserID    int       `json:"user_id"`
	TokenHash string    `json:"-"` // The hash is not exposed in JSON responses.
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}
