// File: internal/auth/handler.go
package auth

import (
	"errors"

	"estatehub_backend/internal/common"
	"estatehub_backend/internal/middleware"
	"estatehub_backend/internal/user"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Handler struct holds dependencies for auth handlers.
type Handler struct {
	service *Service
	logger  *zap.Logger
}

// NewHandler creates a new auth handler.
func NewHandler(service *Service, logger *zap.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// RegisterRoutes sets up the authentication routes.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup, authMW gin.HandlerFunc) {
	authGroup := router.Group("/auth")
	{
		authGroup.POST("/signup", h.signup)
		authGroup.POST("/signin", h.signin)
		authGroup.POST("/google", h.googleSignIn)
		authGroup.GET("/me", authMW, h.me)
	}
}

func bindJSON(c *gin.Context, logger *zap.Logger, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		logger.Warn("Auth: invalid request body", zap.Error(err), zap.String("path", c.Request.URL.Path))
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			common.RespondWithError(c, common.NewValidationAPIError(common.FormatValidationErrors(ve)))
			return false
		}
		common.RespondWithError(c, common.ErrBadRequest.WithDetails(err.Error()))
		return false
	}
	return true
}

func (h *Handler) signup(c *gin.Context) {
	var req SignupRequest
	if !bindJSON(c, h.logger, &req) {
		return
	}

	account, err := h.service.Signup(c.Request.Context(), req)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondCreated(c, "Account created successfully.", user.ToUserResponse(account))
}

func (h *Handler) signin(c *gin.Context) {
	var req SigninRequest
	if !bindJSON(c, h.logger, &req) {
		return
	}

	account, token, err := h.service.Signin(c.Request.Context(), req)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "Signed in successfully.", AuthResponse{
		Token: *token,
		User:  user.ToUserResponse(account),
	})
}

func (h *Handler) googleSignIn(c *gin.Context) {
	var req GoogleSignInRequest
	if !bindJSON(c, h.logger, &req) {
		return
	}

	account, token, err := h.service.GoogleSignIn(c.Request.Context(), req)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "Signed in with Google successfully.", AuthResponse{
		Token: *token,
		User:  user.ToUserResponse(account),
	})
}

func (h *Handler) me(c *gin.Context) {
	userID := middleware.GetUserIDFromContext(c)
	if userID == uuid.Nil {
		common.RespondWithError(c, common.ErrInternalServer.WithDetails("User identifier missing."))
		return
	}

	account, err := h.service.Me(c.Request.Context(), userID)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "Profile retrieved successfully.", user.ToUserResponse(account))
}
