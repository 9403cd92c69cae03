package model

import "github.com/golang-jwt/jwt/v5"

// AppClaims is the claim set embedded in every access token. The embedded
// role reflects the user's role at issue time; authoritative reads go back
// to the database (see AuthService.GetMe).
type AppClaims struct {
	UserID int    `json:"user_id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}
