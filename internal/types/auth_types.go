// Package types holds the request and response DTOs of the HTTP surface.
package types

// LoginRequest is the credential payload for staff sign-in.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse returns the issued session token and basic identity.
type LoginResponse struct {
	Token    string `json:"token"`
	UserID   uint   `json:"userId"`
	Username string `json:"username"`
	Nickname string `json:"nickname"`
	Locale   string `json:"locale"`
}

// ChangePasswordRequest updates the signed-in user's password.
type ChangePasswordRequest struct {
	OldPassword string `json:"oldPassword"`
	NewPassword string `json:"newPassword"`
}
