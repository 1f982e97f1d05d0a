// File: internal/notification/service.go
package notification

import (
	"context"
	"fmt"

	"estatehub_backend/internal/common"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service defines the notification operations exposed to other features.
type Service interface {
	NotifyModerationDecision(ctx context.Context, ownerID, listingID uuid.UUID, listingName, decision string) error
	List(ctx context.Context, userID uuid.UUID, page, pageSize int) ([]Notification, *common.Pagination, error)
	MarkRead(ctx context.Context, userID, id uuid.UUID) error
	MarkAllRead(ctx context.Context, userID uuid.UUID) error
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

// NewService creates a new notification service.
func NewService(repo Repository, logger *zap.Logger) Service {
	return &service{repo: repo, logger: logger}
}

// NotifyModerationDecision records an in-app notification for a moderation
// decision on the owner's listing. Decisions without a user-facing meaning
// (moving a listing back to pending) are silently skipped.
func (s *service) NotifyModerationDecision(ctx context.Context, ownerID, listingID uuid.UUID, listingName, decision string) error {
	var notifType, message string
	switch decision {
	case "active":
		notifType = TypeListingApproved
		message = fmt.Sprintf("Your listing %q has been approved and is now publicly visible.", listingName)
	case "declined":
		notifType = TypeListingDeclined
		message = fmt.Sprintf("Your listing %q has been declined.", listingName)
	case "inactive":
		notifType = TypeListingDeactivated
		message = fmt.Sprintf("Your listing %q has been deactivated.", listingName)
	default:
		return nil
	}

	n := &Notification{
		UserID:    ownerID,
		Type:      notifType,
		Message:   message,
		ListingID: &listingID,
	}
	if err := s.repo.Create(ctx, n); err != nil {
		s.logger.Error("Failed to create moderation notification",
			zap.String("user_id", ownerID.String()),
			zap.String("listing_id", listingID.String()),
			zap.Error(err))
		return err
	}
	return nil
}

func (s *service) List(ctx context.Context, userID uuid.UUID, page, pageSize int) ([]Notification, *common.Pagination, error) {
	notifications, total, err := s.repo.ListForUser(ctx, userID, page, pageSize)
	if err != nil {
		return nil, nil, err
	}
	return notifications, common.NewPagination(total, page, pageSize), nil
}

func (s *service) MarkRead(ctx context.Context, userID, id uuid.UUID) error {
	return s.repo.MarkRead(ctx, userID, id)
}

func (s *service) MarkAllRead(ctx context.Context, userID uuid.UUID) error {
	return s.repo.MarkAllRead(ctx, userID)
}
