// file: model/response.go

package model

// UserSummary is the trimmed user view returned alongside freshly issued
// credentials.
type UserSummary struct {
	ID    int    `json:"id"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
}

// AuthResponse is returned by register, login and refresh. The refresh token
// is the raw value and is shown to the client exactly once.
type AuthResponse struct {
	AccessToken  string      `json:"access_token"`
	RefreshToken string      `json:"refresh_token"`
	User         UserSummary `json:"user"`
}
