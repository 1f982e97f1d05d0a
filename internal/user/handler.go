// File: internal/user/handler.go
package user

import (
	"errors"

	"estatehub_backend/internal/common"
	"estatehub_backend/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Handler struct holds dependencies for user handlers.
type Handler struct {
	service *Service
	logger  *zap.Logger
}

// NewHandler creates a new user handler.
func NewHandler(service *Service, logger *zap.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// RegisterRoutes sets up the routes for user operations.
// authMW authenticates the caller; adminMW additionally requires admin rights.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup, authMW, adminMW gin.HandlerFunc) {
	userGroup := router.Group("/users")
	{
		meGroup := userGroup.Group("/me")
		meGroup.Use(authMW)
		{
			meGroup.GET("", h.getMe)
			meGroup.PUT("", h.updateMe)
			meGroup.DELETE("", h.deleteMe)
		}

		adminGroup := userGroup.Group("/admin")
		adminGroup.Use(authMW, adminMW)
		{
			adminGroup.GET("", h.adminListUsers)
			adminGroup.GET("/summary", h.adminSummary)
			adminGroup.PATCH("/:id/status", h.adminUpdateStatus)
		}
	}
}

func (h *Handler) getMe(c *gin.Context) {
	userID := middleware.GetUserIDFromContext(c)
	if userID == uuid.Nil {
		h.logger.Error("User ID not found in context for /me", zap.String("path", c.Request.URL.Path))
		common.RespondWithError(c, common.ErrInternalServer.WithDetails("User identifier missing."))
		return
	}
	usr, err := h.service.GetProfile(c.Request.Context(), userID)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "User profile retrieved successfully.", ToUserResponse(usr))
}

func (h *Handler) updateMe(c *gin.Context) {
	userID := middleware.GetUserIDFromContext(c)
	if userID == uuid.Nil {
		common.RespondWithError(c, common.ErrInternalServer.WithDetails("User identifier missing."))
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("Profile update: invalid request body", zap.Error(err))
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			common.RespondWithError(c, common.NewValidationAPIError(common.FormatValidationErrors(ve)))
			return
		}
		common.RespondWithError(c, common.ErrBadRequest.WithDetails(err.Error()))
		return
	}

	usr, err := h.service.UpdateProfile(c.Request.Context(), userID, req)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "Profile updated successfully.", ToUserResponse(usr))
}

func (h *Handler) deleteMe(c *gin.Context) {
	userID := middleware.GetUserIDFromContext(c)
	if userID == uuid.Nil {
		common.RespondWithError(c, common.ErrInternalServer.WithDetails("User identifier missing."))
		return
	}
	if err := h.service.DeleteAccount(c.Request.Context(), userID); err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondNoContent(c)
}

func (h *Handler) adminListUsers(c *gin.Context) {
	page, pageSize := common.GetPaginationParams(c)
	query := AdminQuery{
		Search:   c.Query("search"),
		Status:   c.Query("status"),
		IsAdmin:  c.Query("isAdmin"),
		Sort:     c.Query("sort"),
		Order:    c.Query("order"),
		Page:     page,
		PageSize: pageSize,
	}

	users, pagination, err := h.service.AdminSearchUsers(c.Request.Context(), query)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}

	responses := make([]UserResponse, 0, len(users))
	for i := range users {
		responses = append(responses, ToUserResponse(&users[i]))
	}
	common.RespondPaginated(c, "Users retrieved successfully.", responses, pagination)
}

func (h *Handler) adminSummary(c *gin.Context) {
	summary, err := h.service.AdminSummary(c.Request.Context())
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "User summary retrieved successfully.", summary)
}

func (h *Handler) adminUpdateStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		common.RespondWithError(c, common.ErrBadRequest.WithDetails("Invalid user ID format."))
		return
	}

	var req AdminUpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			common.RespondWithError(c, common.NewValidationAPIError(common.FormatValidationErrors(ve)))
			return
		}
		common.RespondWithError(c, common.ErrBadRequest.WithDetails(err.Error()))
		return
	}

	usr, err := h.service.AdminUpdateUserStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "User status updated successfully.", ToUserResponse(usr))
}
