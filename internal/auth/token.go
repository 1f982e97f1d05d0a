// File: internal/auth/token.go
package auth

import (
	"fmt"
	"time"

	"estatehub_backend/internal/common"
	"estatehub_backend/internal/config"
	"estatehub_backend/internal/shared"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

// JWTService issues and validates HMAC-signed session tokens.
type JWTService struct {
	cfg    *config.Config
	logger *zap.Logger
}

// NewJWTService creates a new JWT token service.
func NewJWTService(cfg *config.Config, logger *zap.Logger) shared.TokenService {
	return &JWTService{cfg: cfg, logger: logger}
}

// GenerateToken signs a session token for the given user.
func (s *JWTService) GenerateToken(userData shared.UserDataForToken) (string, time.Time, error) {
	expirationTime := time.Now().Add(s.cfg.JWTTokenExpiry)

	claims := &shared.Claims{
		UserID:   userData.GetID(),
		Email:    userData.GetEmail(),
		Username: userData.GetUsername(),
		IsAdmin:  userData.GetIsAdmin(),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expirationTime),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    s.cfg.JWTIssuer,
			Subject:   userData.GetID().String(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		s.logger.Error("Failed to sign session token", zap.Error(err))
		return "", time.Time{}, fmt.Errorf("could not sign session token: %w", err)
	}
	return tokenString, expirationTime, nil
}

// ValidateToken validates a session token and returns its claims.
func (s *JWTService) ValidateToken(tokenString string) (*shared.Claims, error) {
	claims := &shared.Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.cfg.JWTSecret), nil
	})
	if err != nil {
		return nil, common.ErrUnauthorized.WithDetails("Invalid or expired session token.")
	}
	if parsed, ok := token.Claims.(*shared.Claims); ok && token.Valid {
		return parsed, nil
	}
	return nil, common.ErrUnauthorized.WithDetails("Invalid session token claims.")
}
