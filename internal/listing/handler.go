// File: internal/listing/handler.go
package listing

import (
	"errors"

	"estatehub_backend/internal/common"
	"estatehub_backend/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Handler struct holds dependencies for listing handlers.
type Handler struct {
	service *Service
	logger  *zap.Logger
}

// NewHandler creates a new listing handler.
func NewHandler(service *Service, logger *zap.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// RegisterRoutes sets up the routes for listing operations. The public
// search and stats endpoints take no auth; everything else layers the auth
// middleware, with the moderation console additionally behind the admin
// gate.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup, authMW, optionalAuthMW, adminMW gin.HandlerFunc) {
	listingGroup := router.Group("/listings")
	{
		listingGroup.GET("", h.searchPublic)
		listingGroup.GET("/stats", h.stats)

		adminGroup := listingGroup.Group("/admin")
		adminGroup.Use(authMW, adminMW)
		{
			adminGroup.GET("", h.searchAdmin)
			adminGroup.GET("/summary", h.adminSummary)
			adminGroup.PATCH("/:id/status", h.adminUpdateStatus)
		}

		// Owners and admins can fetch their non-active listings here, so the
		// token is honored when present without requiring one.
		listingGroup.GET("/:id", optionalAuthMW, h.getByID)

		authedGroup := listingGroup.Group("")
		authedGroup.Use(authMW)
		{
			authedGroup.POST("", h.create)
			authedGroup.PUT("/:id", h.update)
			authedGroup.DELETE("/:id", h.delete)
		}
	}

	myListings := router.Group("/users/me/listings")
	myListings.Use(authMW)
	{
		myListings.GET("", h.listMine)
	}
}

func parseSearchQuery(c *gin.Context) SearchQuery {
	page, pageSize := common.GetPaginationParams(c)
	return SearchQuery{
		Search:    c.Query("search"),
		Type:      c.Query("type"),
		Offer:     c.Query("offer"),
		Furnished: c.Query("furnished"),
		Parking:   c.Query("parking"),
		Status:    c.Query("status"),
		IsActive:  c.Query("isActive"),
		Sort:      c.Query("sort"),
		Order:     c.Query("order"),
		Page:      page,
		PageSize:  pageSize,
	}
}

func toResponses(listings []Listing) []ListingResponse {
	responses := make([]ListingResponse, 0, len(listings))
	for i := range listings {
		responses = append(responses, ToListingResponse(&listings[i]))
	}
	return responses
}

func (h *Handler) searchPublic(c *gin.Context) {
	listings, pagination, err := h.service.SearchPublic(c.Request.Context(), parseSearchQuery(c))
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondPaginated(c, "Listings retrieved successfully.", toResponses(listings), pagination)
}

func (h *Handler) stats(c *gin.Context) {
	stats, err := h.service.Stats(c.Request.Context())
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "Listing stats retrieved successfully.", stats)
}

func (h *Handler) getByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		common.RespondWithError(c, common.ErrBadRequest.WithDetails("Invalid listing ID format."))
		return
	}

	// Unauthenticated callers get uuid.Nil and see only active listings.
	callerID := middleware.GetUserIDFromContext(c)
	l, err := h.service.GetByID(c.Request.Context(), id, callerID, middleware.IsAdminFromContext(c))
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "Listing retrieved successfully.", ToListingResponse(l))
}

func (h *Handler) create(c *gin.Context) {
	userID := middleware.GetUserIDFromContext(c)
	if userID == uuid.Nil {
		common.RespondWithError(c, common.ErrInternalServer.WithDetails("User identifier missing."))
		return
	}

	var req CreateListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("Listing creation: invalid request body", zap.Error(err))
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			common.RespondWithError(c, common.NewValidationAPIError(common.FormatValidationErrors(ve)))
			return
		}
		common.RespondWithError(c, common.ErrBadRequest.WithDetails(err.Error()))
		return
	}

	l, err := h.service.Create(c.Request.Context(), userID, req)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondCreated(c, "Listing created successfully. It will become visible once approved.", ToListingResponse(l))
}

func (h *Handler) update(c *gin.Context) {
	userID := middleware.GetUserIDFromContext(c)
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		common.RespondWithError(c, common.ErrBadRequest.WithDetails("Invalid listing ID format."))
		return
	}

	var req UpdateListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			common.RespondWithError(c, common.NewValidationAPIError(common.FormatValidationErrors(ve)))
			return
		}
		common.RespondWithError(c, common.ErrBadRequest.WithDetails(err.Error()))
		return
	}

	l, err := h.service.Update(c.Request.Context(), id, userID, req)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "Listing updated successfully.", ToListingResponse(l))
}

func (h *Handler) delete(c *gin.Context) {
	userID := middleware.GetUserIDFromContext(c)
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		common.RespondWithError(c, common.ErrBadRequest.WithDetails("Invalid listing ID format."))
		return
	}

	if err := h.service.Delete(c.Request.Context(), id, userID, middleware.IsAdminFromContext(c)); err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondNoContent(c)
}

func (h *Handler) listMine(c *gin.Context) {
	userID := middleware.GetUserIDFromContext(c)
	if userID == uuid.Nil {
		common.RespondWithError(c, common.ErrInternalServer.WithDetails("User identifier missing."))
		return
	}

	page, pageSize := common.GetPaginationParams(c)
	listings, pagination, err := h.service.ListByOwner(c.Request.Context(), userID, c.Query("status"), page, pageSize)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondPaginated(c, "Your listings retrieved successfully.", toResponses(listings), pagination)
}

func (h *Handler) searchAdmin(c *gin.Context) {
	listings, pagination, err := h.service.SearchAdmin(c.Request.Context(), parseSearchQuery(c))
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondPaginated(c, "Listings retrieved successfully.", toResponses(listings), pagination)
}

func (h *Handler) adminSummary(c *gin.Context) {
	summary, err := h.service.AdminSummary(c.Request.Context())
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "Listing summary retrieved successfully.", summary)
}

func (h *Handler) adminUpdateStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		common.RespondWithError(c, common.ErrBadRequest.WithDetails("Invalid listing ID format."))
		return
	}

	var req ModerationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondWithError(c, common.ErrBadRequest.WithDetails(err.Error()))
		return
	}

	l, err := h.service.AdminUpdateStatus(c.Request.Context(), id, req)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "Listing status updated successfully.", ToListingResponse(l))
}
