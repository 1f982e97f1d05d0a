// File: internal/listing/service.go
package listing

import (
	"context"

	"estatehub_backend/internal/common"
	"estatehub_backend/internal/notification"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service encapsulates listing business logic: owner-scoped CRUD, public
// search, and the admin moderation operations.
type Service struct {
	repo     Repository
	notifier notification.Service
	logger   *zap.Logger
}

// NewService creates a new listing service.
func NewService(repo Repository, notifier notification.Service, logger *zap.Logger) *Service {
	return &Service{
		repo:     repo,
		notifier: notifier,
		logger:   logger,
	}
}

// Create stores a new listing for the given owner. The initial moderation
// state is always pending and invisible, regardless of what the client sent.
func (s *Service) Create(ctx context.Context, ownerID uuid.UUID, req CreateListingRequest) (*Listing, error) {
	pending := StatusPending
	inactive := false

	l := &Listing{
		UserID:        ownerID,
		Name:          req.Name,
		Slug:          MakeSlug(req.Name),
		Description:   req.Description,
		Address:       req.Address,
		Type:          ListingType(req.Type),
		Offer:         req.Offer,
		Furnished:     req.Furnished,
		Parking:       req.Parking,
		RegularPrice:  req.RegularPrice,
		DiscountPrice: req.DiscountPrice,
		Bedrooms:      req.Bedrooms,
		Bathrooms:     req.Bathrooms,
		ImageURLs:     req.ImageURLs,
		Status:        &pending,
		IsActive:      &inactive,
		WasAccepted:   false,
	}
	if l.Bedrooms == 0 {
		l.Bedrooms = 1
	}
	if l.Bathrooms == 0 {
		l.Bathrooms = 1
	}

	if err := s.repo.Create(ctx, l); err != nil {
		return nil, err
	}
	s.logger.Info("Listing created",
		zap.String("listing_id", l.ID.String()),
		zap.String("owner_id", ownerID.String()))
	return l, nil
}

// GetByID returns a listing, gating non-active listings to their owner or
// an admin so pending and declined listings never leak publicly.
func (s *Service) GetByID(ctx context.Context, id uuid.UUID, callerID uuid.UUID, callerIsAdmin bool) (*Listing, error) {
	l, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if EffectiveStatus(l.Status, l.IsActive) != StatusActive {
		if !callerIsAdmin && l.UserID != callerID {
			return nil, common.ErrNotFound.WithDetails("Listing not found.")
		}
	}
	return l, nil
}

// Update applies the owner's edits. Only the owner may update a listing,
// and moderation fields are never touched here.
func (s *Service) Update(ctx context.Context, id uuid.UUID, callerID uuid.UUID, req UpdateListingRequest) (*Listing, error) {
	l, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if l.UserID != callerID {
		return nil, common.ErrForbidden.WithDetails("You can only update your own listings.")
	}

	if req.Name != nil {
		l.Name = *req.Name
		l.Slug = MakeSlug(*req.Name)
	}
	if req.Description != nil {
		l.Description = *req.Description
	}
	if req.Address != nil {
		l.Address = *req.Address
	}
	if req.Type != nil {
		l.Type = ListingType(*req.Type)
	}
	if req.Offer != nil {
		l.Offer = *req.Offer
	}
	if req.Furnished != nil {
		l.Furnished = *req.Furnished
	}
	if req.Parking != nil {
		l.Parking = *req.Parking
	}
	if req.RegularPrice != nil {
		l.RegularPrice = *req.RegularPrice
	}
	if req.DiscountPrice != nil {
		l.DiscountPrice = *req.DiscountPrice
	}
	if req.Bedrooms != nil {
		l.Bedrooms = *req.Bedrooms
	}
	if req.Bathrooms != nil {
		l.Bathrooms = *req.Bathrooms
	}
	if req.ImageURLs != nil {
		l.ImageURLs = req.ImageURLs
	}

	if err := s.repo.Update(ctx, l); err != nil {
		return nil, err
	}
	return l, nil
}

// Delete removes a listing. The owner may always delete their own listing;
// admins may delete any.
func (s *Service) Delete(ctx context.Context, id uuid.UUID, callerID uuid.UUID, callerIsAdmin bool) error {
	l, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if !callerIsAdmin && l.UserID != callerID {
		return common.ErrForbidden.WithDetails("You can only delete your own listings.")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("Listing deleted",
		zap.String("listing_id", id.String()),
		zap.String("caller_id", callerID.String()))
	return nil
}

// SearchPublic runs the public search. Only effectively-active listings are
// ever returned, legacy rows included.
func (s *Service) SearchPublic(ctx context.Context, q SearchQuery) ([]Listing, *common.Pagination, error) {
	filter := buildPublicFilter(q)
	orderBy := common.ResolveSort(q.Sort, q.Order, publicSortColumns, "created_at")

	listings, total, err := s.repo.Search(ctx, filter, orderBy, q.Page, q.PageSize)
	if err != nil {
		return nil, nil, err
	}
	return listings, common.NewPagination(total, q.Page, q.PageSize), nil
}

// SearchAdmin runs the moderation console search across all states.
func (s *Service) SearchAdmin(ctx context.Context, q SearchQuery) ([]Listing, *common.Pagination, error) {
	filter := buildAdminFilter(q)
	orderBy := common.ResolveSort(q.Sort, q.Order, adminSortColumns, "created_at")

	listings, total, err := s.repo.Search(ctx, filter, orderBy, q.Page, q.PageSize)
	if err != nil {
		return nil, nil, err
	}
	return listings, common.NewPagination(total, q.Page, q.PageSize), nil
}

// ListByOwner returns the caller's own listings, optionally narrowed to one
// moderation state. All states are visible to the owner.
func (s *Service) ListByOwner(ctx context.Context, ownerID uuid.UUID, rawStatus string, page, pageSize int) ([]Listing, *common.Pagination, error) {
	filter := common.Filter{}.Where("user_id = ?", ownerID)
	if rawStatus != "" {
		status, err := ParseStatus(rawStatus)
		if err != nil {
			return nil, nil, err
		}
		filter = statusPredicate(filter, status)
	}

	listings, total, err := s.repo.Search(ctx, filter, "created_at DESC", page, pageSize)
	if err != nil {
		return nil, nil, err
	}
	return listings, common.NewPagination(total, page, pageSize), nil
}

// AdminUpdateStatus applies a moderation decision. The transition is a
// single update-by-id so two racing admins resolve as last-write-wins, and
// a first approval is recorded permanently. The owner is notified of
// user-facing decisions.
func (s *Service) AdminUpdateStatus(ctx context.Context, id uuid.UUID, req ModerationRequest) (*Listing, error) {
	next, err := ResolveModeration(req)
	if err != nil {
		return nil, err
	}

	l, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := ApplyTransition(l, next); err != nil {
		return nil, err
	}
	if err := s.repo.UpdateModeration(ctx, id, next, *l.IsActive, l.WasAccepted); err != nil {
		return nil, err
	}

	s.logger.Info("Listing moderation decision applied",
		zap.String("listing_id", id.String()),
		zap.String("status", string(next)))

	if err := s.notifier.NotifyModerationDecision(ctx, l.UserID, l.ID, l.Name, string(next)); err != nil {
		// The decision itself stuck; a lost notification is not worth a 500.
		s.logger.Warn("Moderation notification failed", zap.Error(err))
	}
	return l, nil
}

// Stats returns the public homepage aggregate.
func (s *Service) Stats(ctx context.Context) (*Stats, error) {
	return s.repo.Stats(ctx)
}

// AdminSummary returns the moderation dashboard aggregate.
func (s *Service) AdminSummary(ctx context.Context) (*AdminSummary, error) {
	return s.repo.Summarize(ctx)
}
