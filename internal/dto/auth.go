package dto

import "time"

// LoginRequest holds the credentials of a principal.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse represents the response for a successful login.
type LoginResponse struct {
	Token     string            `json:"token"`
	ExpiresAt time.Time         `json:"expiresAt"`
	Principal PrincipalResponse `json:"principal"`
}
