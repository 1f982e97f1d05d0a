// File: internal/notification/repository.go
package notification

import (
	"context"

	"estatehub_backend/internal/common"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository defines the interface for notification data operations.
type Repository interface {
	Create(ctx context.Context, n *Notification) error
	ListForUser(ctx context.Context, userID uuid.UUID, page, pageSize int) ([]Notification, int64, error)
	MarkRead(ctx context.Context, userID, id uuid.UUID) error
	MarkAllRead(ctx context.Context, userID uuid.UUID) error
}

type gormRepository struct {
	db *gorm.DB
}

// NewGORMRepository creates a new GORM notification repository.
func NewGORMRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) Create(ctx context.Context, n *Notification) error {
	return r.db.WithContext(ctx).Create(n).Error
}

// ListForUser returns the user's notifications, newest first.
func (r *gormRepository) ListForUser(ctx context.Context, userID uuid.UUID, page, pageSize int) ([]Notification, int64, error) {
	var notifications []Notification
	var total int64

	base := r.db.WithContext(ctx).Model(&Notification{}).Where("user_id = ?", userID)
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	pq := common.PaginationQuery{Page: page, PageSize: pageSize}
	err := base.Session(&gorm.Session{}).
		Order("created_at DESC").
		Offset(pq.Offset()).
		Limit(pq.Limit()).
		Find(&notifications).Error
	if err != nil {
		return nil, 0, err
	}
	return notifications, total, nil
}

// MarkRead flags one notification as read. Scoping by user_id keeps users
// from touching each other's notifications.
func (r *gormRepository) MarkRead(ctx context.Context, userID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Model(&Notification{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("is_read", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return common.ErrNotFound.WithDetails("Notification not found.")
	}
	return nil
}

// MarkAllRead flags every unread notification of the user as read.
func (r *gormRepository) MarkAllRead(ctx context.Context, userID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Update("is_read", true).Error
}
