// File: internal/notification/handler.go
package notification

import (
	"estatehub_backend/internal/common"
	"estatehub_backend/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Handler struct holds dependencies for notification handlers.
type Handler struct {
	service Service
	logger  *zap.Logger
}

// NewHandler creates a new notification handler.
func NewHandler(service Service, logger *zap.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// RegisterRoutes sets up the routes for notification operations.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup, authMW gin.HandlerFunc) {
	group := router.Group("/notifications")
	group.Use(authMW)
	{
		group.GET("", h.list)
		group.PATCH("/:id/read", h.markRead)
		group.POST("/read-all", h.markAllRead)
	}
}

func (h *Handler) list(c *gin.Context) {
	userID := middleware.GetUserIDFromContext(c)
	if userID == uuid.Nil {
		common.RespondWithError(c, common.ErrInternalServer.WithDetails("User identifier missing."))
		return
	}

	page, pageSize := common.GetPaginationParams(c)
	notifications, pagination, err := h.service.List(c.Request.Context(), userID, page, pageSize)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}

	responses := make([]NotificationResponse, 0, len(notifications))
	for i := range notifications {
		responses = append(responses, ToNotificationResponse(&notifications[i]))
	}
	common.RespondPaginated(c, "Notifications retrieved successfully.", responses, pagination)
}

func (h *Handler) markRead(c *gin.Context) {
	userID := middleware.GetUserIDFromContext(c)
	if userID == uuid.Nil {
		common.RespondWithError(c, common.ErrInternalServer.WithDetails("User identifier missing."))
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		common.RespondWithError(c, common.ErrBadRequest.WithDetails("Invalid notification ID format."))
		return
	}

	if err := h.service.MarkRead(c.Request.Context(), userID, id); err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "Notification marked as read.", nil)
}

func (h *Handler) markAllRead(c *gin.Context) {
	userID := middleware.GetUserIDFromContext(c)
	if userID == uuid.Nil {
		common.RespondWithError(c, common.ErrInternalServer.WithDetails("User identifier missing."))
		return
	}

	if err := h.service.MarkAllRead(c.Request.Context(), userID); err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "All notifications marked as read.", nil)
}
