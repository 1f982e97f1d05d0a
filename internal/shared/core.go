// File: internal/shared/core.go
package shared

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// UserDataForToken abstracts the user data needed for token generation,
// so the auth package does not depend on the user package's GORM model.
type UserDataForToken interface {
	GetID() uuid.UUID
	GetEmail() string
	GetUsername() string
	GetIsAdmin() bool
}

// Claims is the JWT claims structure carried by session tokens.
type Claims struct {
	UserID   uuid.UUID `json:"user_id"`
	Email    string    `json:"email"`
	Username string    `json:"username"`
	IsAdmin  bool      `json:"is_admin"`
	jwt.RegisteredClaims
}

// TokenService defines the interface for session token operations.
type TokenService interface {
	GenerateToken(userData UserDataForToken) (token string, expiresAt time.Time, err error)
	ValidateToken(tokenString string) (*Claims, error)
}

// TokenResponse is the payload returned after a successful sign-in.
type TokenResponse struct {
	AccessToken string    `json:"access_token"`
	ExpiresAt   time.Time `json:"expires_at"`
	TokenType   string    `json:"token_type"`
}
