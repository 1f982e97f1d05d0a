// File: internal/listing/repository.go
package listing

import (
	"context"
	"errors"

	"estatehub_backend/internal/common"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository defines the interface for listing data operations.
type Repository interface {
	Create(ctx context.Context, listing *Listing) error
	FindByID(ctx context.Context, id uuid.UUID) (*Listing, error)
	Update(ctx context.Context, listing *Listing) error
	Delete(ctx context.Context, id uuid.UUID) error
	Search(ctx context.Context, filter common.Filter, orderBy string, page, pageSize int) ([]Listing, int64, error)
	UpdateModeration(ctx context.Context, id uuid.UUID, status ListingStatus, isActive bool, wasAccepted bool) error
	Stats(ctx context.Context) (*Stats, error)
	Summarize(ctx context.Context) (*AdminSummary, error)
}

type gormRepository struct {
	db *gorm.DB
}

// NewGORMRepository creates a new GORM listing repository.
func NewGORMRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

// Create inserts a new listing record.
func (r *gormRepository) Create(ctx context.Context, listing *Listing) error {
	return r.db.WithContext(ctx).Create(listing).Error
}

// FindByID retrieves a listing by its UUID.
func (r *gormRepository) FindByID(ctx context.Context, id uuid.UUID) (*Listing, error) {
	var l Listing
	err := r.db.WithContext(ctx).First(&l, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrNotFound.WithDetails("Listing not found.")
		}
		return nil, err
	}
	return &l, nil
}

// Update saves an existing listing record.
func (r *gormRepository) Update(ctx context.Context, listing *Listing) error {
	return r.db.WithContext(ctx).Save(listing).Error
}

// Delete removes a listing record permanently.
func (r *gormRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&Listing{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return common.ErrNotFound.WithDetails("Listing not found.")
	}
	return nil
}

// Search returns a page of listings matching the filter, plus the total
// count of matches. The same filter drives both queries so the count always
// agrees with the returned page.
func (r *gormRepository) Search(ctx context.Context, filter common.Filter, orderBy string, page, pageSize int) ([]Listing, int64, error) {
	var listings []Listing
	var total int64

	base := filter.Apply(r.db.WithContext(ctx).Model(&Listing{}))
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query := filter.Apply(r.db.WithContext(ctx).Model(&Listing{}))
	if orderBy != "" {
		query = query.Order(orderBy)
	}
	pq := common.PaginationQuery{Page: page, PageSize: pageSize}
	err := query.
		Offset(pq.Offset()).
		Limit(pq.Limit()).
		Find(&listings).Error
	if err != nil {
		return nil, 0, err
	}
	return listings, total, nil
}

// UpdateModeration writes a moderation decision as a single update-by-id.
// was_accepted is only ever written as true, keeping the flag monotonic even
// if two admins race on the same listing.
func (r *gormRepository) UpdateModeration(ctx context.Context, id uuid.UUID, status ListingStatus, isActive bool, wasAccepted bool) error {
	updates := map[string]interface{}{
		"status":    status,
		"is_active": isActive,
	}
	if wasAccepted {
		updates["was_accepted"] = true
	}

	result := r.db.WithContext(ctx).
		Model(&Listing{}).
		Where("id = ?", id).
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return common.ErrNotFound.WithDetails("Listing not found.")
	}
	return nil
}

// Stats counts publicly visible listings for the homepage. Every count is
// scoped by the shared visibility predicate.
func (r *gormRepository) Stats(ctx context.Context) (*Stats, error) {
	stats := &Stats{}
	visible := visibilityPredicate(common.Filter{})

	count := func(extra common.Filter, dest *int64) error {
		return visible.Merge(extra).
			Apply(r.db.WithContext(ctx).Model(&Listing{})).
			Count(dest).Error
	}

	if err := count(common.Filter{}, &stats.TotalActive); err != nil {
		return nil, err
	}
	if err := count(common.Filter{}.Where("type = ?", TypeSale), &stats.SaleCount); err != nil {
		return nil, err
	}
	if err := count(common.Filter{}.Where("type = ?", TypeRent), &stats.RentCount); err != nil {
		return nil, err
	}
	if err := count(common.Filter{}.Where("offer = ?", true), &stats.OfferCount); err != nil {
		return nil, err
	}
	return stats, nil
}

// Summarize counts listings by moderation state for the admin dashboard.
func (r *gormRepository) Summarize(ctx context.Context) (*AdminSummary, error) {
	summary := &AdminSummary{}

	count := func(filter common.Filter, dest *int64) error {
		return filter.
			Apply(r.db.WithContext(ctx).Model(&Listing{})).
			Count(dest).Error
	}

	if err := count(common.Filter{}, &summary.Total); err != nil {
		return nil, err
	}
	if err := count(statusPredicate(common.Filter{}, StatusActive), &summary.Active); err != nil {
		return nil, err
	}
	if err := count(statusPredicate(common.Filter{}, StatusInactive), &summary.Inactive); err != nil {
		return nil, err
	}
	if err := count(statusPredicate(common.Filter{}, StatusDeclined), &summary.Declined); err != nil {
		return nil, err
	}
	if err := count(statusPredicate(common.Filter{}, StatusPending), &summary.Pending); err != nil {
		return nil, err
	}
	if err := count(common.Filter{}.Where("offer = ?", true), &summary.Offers); err != nil {
		return nil, err
	}
	if err := count(acceptedPredicate(common.Filter{}), &summary.Accepted); err != nil {
		return nil, err
	}
	return summary, nil
}
