// File: internal/auth/model.go
package auth

import (
	"estatehub_backend/internal/shared"
	"estatehub_backend/internal/user"
)

// SignupRequest is the email/password registration payload.
type SignupRequest struct {
	Username string `json:"username" binding:"required,min=3,max=100,alphanum"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8,max=72"`
}

// SigninRequest is the email/password login payload.
type SigninRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// GoogleSignInRequest carries a Firebase ID token obtained client-side.
type GoogleSignInRequest struct {
	IDToken string `json:"idToken" binding:"required"`
}

// AuthResponse pairs the issued session token with the account it belongs to.
type AuthResponse struct {
	Token shared.TokenResponse `json:"token"`
	User  user.UserResponse    `json:"user"`
}
