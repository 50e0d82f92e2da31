package dto

import "github.com/hongminglow/driveops-be/internal/models"

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

type ValidateTokenRequest struct {
	Token string `json:"token"`
}

// TokenInfo is the decoded identity returned by validate-token.
type TokenInfo struct {
	ID    int64       `json:"id"`
	Role  models.Role `json:"role"`
	Email string      `json:"email,omitempty"`
}

// ValidateTokenResponse carries either a TokenInfo or the literal false.
type ValidateTokenResponse struct {
	IsValid any `json:"isValid"`
}

type DriverRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type DriverUpdateRequest struct {
	Email    *string `json:"email"`
	Password *string `json:"password"`
}
