// File: internal/middleware/auth.go
package middleware

import (
	"strings"

	"estatehub_backend/internal/common"
	"estatehub_backend/internal/shared"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	// AuthorizationHeader is the header name for the authorization token.
	AuthorizationHeader = "Authorization"
	// AuthorizationTypeBearer is the prefix for Bearer tokens.
	AuthorizationTypeBearer = "Bearer"
	// UserIDKey is the context key for the authenticated user's ID.
	UserIDKey = "userID"
	// UserClaimsKey stores the whole claims object.
	UserClaimsKey = "userClaims"
)

// AuthMiddleware creates a Gin middleware validating session JWTs.
func AuthMiddleware(tokenService shared.TokenService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader(AuthorizationHeader)
		if authHeader == "" {
			common.RespondWithError(c, common.ErrUnauthorized.WithDetails("Authorization header is required."))
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || !strings.EqualFold(parts[0], AuthorizationTypeBearer) {
			common.RespondWithError(c, common.ErrUnauthorized.WithDetails("Authorization header format must be 'Bearer <token>'."))
			return
		}

		claims, err := tokenService.ValidateToken(parts[1])
		if err != nil {
			logger.Warn("Token validation failed", zap.Error(err))
			common.RespondWithError(c, common.ErrUnauthorized.WithDetails("Invalid or expired session token."))
			return
		}

		c.Set(UserIDKey, claims.UserID)
		c.Set(UserClaimsKey, claims)
		c.Next()
	}
}

// OptionalAuthMiddleware populates the user context when a valid Bearer
// token is present but lets anonymous requests through. Routes that show
// extra data to owners or admins use this instead of AuthMiddleware.
func OptionalAuthMiddleware(tokenService shared.TokenService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader(AuthorizationHeader)
		if authHeader == "" {
			c.Next()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || !strings.EqualFold(parts[0], AuthorizationTypeBearer) {
			c.Next()
			return
		}

		claims, err := tokenService.ValidateToken(parts[1])
		if err != nil {
			logger.Debug("Optional auth: ignoring invalid token", zap.Error(err))
			c.Next()
			return
		}

		c.Set(UserIDKey, claims.UserID)
		c.Set(UserClaimsKey, claims)
		c.Next()
	}
}

// AdminRequired gates a route group to administrator accounts. It must run
// after AuthMiddleware.
func AdminRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := GetClaimsFromContext(c)
		if claims == nil {
			common.RespondWithError(c, common.ErrForbidden.WithDetails("User claims not found in context."))
			return
		}
		if !claims.IsAdmin {
			common.RespondWithError(c, common.ErrForbidden.WithDetails("Administrator access is required for this resource."))
			return
		}
		c.Next()
	}
}

// GetUserIDFromContext retrieves the user ID from the Gin context.
// Returns uuid.Nil if not found.
func GetUserIDFromContext(c *gin.Context) uuid.UUID {
	val, exists := c.Get(UserIDKey)
	if !exists {
		return uuid.Nil
	}
	userID, ok := val.(uuid.UUID)
	if !ok {
		return uuid.Nil
	}
	return userID
}

// GetClaimsFromContext retrieves the full claims object from the Gin context.
func GetClaimsFromContext(c *gin.Context) *shared.Claims {
	val, exists := c.Get(UserClaimsKey)
	if !exists {
		return nil
	}
	claims, ok := val.(*shared.Claims)
	if !ok {
		return nil
	}
	return claims
}

// IsAdminFromContext reports whether the authenticated user is an admin.
func IsAdminFromContext(c *gin.Context) bool {
	claims := GetClaimsFromContext(c)
	return claims != nil && claims.IsAdmin
}
