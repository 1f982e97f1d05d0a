// File: internal/user/repository.go
package user

import (
	"context"
	"errors"
	"strings"

	"estatehub_backend/internal/common"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository defines the interface for user data operations.
type Repository interface {
	Create(ctx context.Context, user *User) error
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByUsername(ctx context.Context, username string) (*User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)
	FindByProvider(ctx context.Context, authProvider string, providerID string) (*User, error)
	Update(ctx context.Context, user *User) error
	Delete(ctx context.Context, id uuid.UUID) error
	Search(ctx context.Context, filter common.Filter, orderBy string, page, pageSize int) ([]User, int64, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status UserStatus) error
	Summarize(ctx context.Context) (*Summary, error)
}

type gormRepository struct {
	db *gorm.DB
}

// NewGORMRepository creates a new GORM user repository.
func NewGORMRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

// Create inserts a new user record into the database.
func (r *gormRepository) Create(ctx context.Context, user *User) error {
	user.Email = strings.ToLower(strings.TrimSpace(user.Email))
	err := r.db.WithContext(ctx).Create(user).Error
	if err != nil {
		if isUniqueViolation(err) {
			if strings.Contains(err.Error(), "email") {
				return common.ErrConflict.WithDetails("An account with this email already exists.")
			}
			if strings.Contains(err.Error(), "username") {
				return common.ErrConflict.WithDetails("This username is already taken.")
			}
			if strings.Contains(err.Error(), "idx_auth_provider_provider_id") {
				return common.ErrConflict.WithDetails("This social account is already linked to a user.")
			}
			return common.ErrConflict.WithDetails("An account with this email or username already exists.")
		}
		return err
	}
	return nil
}

func isUniqueViolation(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey) ||
		strings.Contains(err.Error(), "unique constraint") ||
		strings.Contains(err.Error(), "UNIQUE constraint failed") ||
		strings.Contains(err.Error(), "duplicate key value violates unique constraint")
}

// FindByEmail retrieves a user by their email address.
func (r *gormRepository) FindByEmail(ctx context.Context, email string) (*User, error) {
	var userModel User
	normalizedEmail := strings.ToLower(strings.TrimSpace(email))
	err := r.db.WithContext(ctx).Where("email = ?", normalizedEmail).First(&userModel).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrNotFound.WithDetails("User not found with this email.")
		}
		return nil, err
	}
	return &userModel, nil
}

// FindByUsername retrieves a user by their username.
func (r *gormRepository) FindByUsername(ctx context.Context, username string) (*User, error) {
	var userModel User
	err := r.db.WithContext(ctx).Where("username = ?", username).First(&userModel).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrNotFound.WithDetails("User not found with this username.")
		}
		return nil, err
	}
	return &userModel, nil
}

// FindByID retrieves a user by their UUID.
func (r *gormRepository) FindByID(ctx context.Context, id uuid.UUID) (*User, error) {
	var userModel User
	err := r.db.WithContext(ctx).First(&userModel, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrNotFound.WithDetails("User not found.")
		}
		return nil, err
	}
	return &userModel, nil
}

// FindByProvider retrieves a user by their social login identity.
func (r *gormRepository) FindByProvider(ctx context.Context, authProvider string, providerID string) (*User, error) {
	var userModel User
	err := r.db.WithContext(ctx).
		Where("auth_provider = ? AND provider_id = ?", authProvider, providerID).
		First(&userModel).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrNotFound.WithDetails("User not found for this provider identity.")
		}
		return nil, err
	}
	return &userModel, nil
}

// Update saves an existing user record.
func (r *gormRepository) Update(ctx context.Context, user *User) error {
	err := r.db.WithContext(ctx).Save(user).Error
	if err != nil && isUniqueViolation(err) {
		return common.ErrConflict.WithDetails("An account with this email or username already exists.")
	}
	return err
}

// Delete removes a user record permanently.
func (r *gormRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&User{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return common.ErrNotFound.WithDetails("User not found.")
	}
	return nil
}

// Search returns a page of users matching the filter, plus the total count
// of matches. The same filter drives both queries so the count always agrees
// with the returned page.
func (r *gormRepository) Search(ctx context.Context, filter common.Filter, orderBy string, page, pageSize int) ([]User, int64, error) {
	var users []User
	var total int64

	base := filter.Apply(r.db.WithContext(ctx).Model(&User{}))
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query := filter.Apply(r.db.WithContext(ctx).Model(&User{}))
	if orderBy != "" {
		query = query.Order(orderBy)
	}
	pq := common.PaginationQuery{Page: page, PageSize: pageSize}
	err := query.
		Offset(pq.Offset()).
		Limit(pq.Limit()).
		Find(&users).Error
	if err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

// UpdateStatus sets the moderation status of an account.
func (r *gormRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status UserStatus) error {
	result := r.db.WithContext(ctx).
		Model(&User{}).
		Where("id = ?", id).
		Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return common.ErrNotFound.WithDetails("User not found.")
	}
	return nil
}

// Summarize counts accounts by moderation status for the admin console.
func (r *gormRepository) Summarize(ctx context.Context) (*Summary, error) {
	summary := &Summary{}
	db := r.db.WithContext(ctx).Model(&User{})

	if err := db.Session(&gorm.Session{}).Count(&summary.Total).Error; err != nil {
		return nil, err
	}
	if err := db.Session(&gorm.Session{}).Where("status = ?", StatusApproved).Count(&summary.Approved).Error; err != nil {
		return nil, err
	}
	if err := db.Session(&gorm.Session{}).Where("status = ?", StatusDeactivated).Count(&summary.Deactivated).Error; err != nil {
		return nil, err
	}
	if err := db.Session(&gorm.Session{}).Where("is_admin = ?", true).Count(&summary.Admins).Error; err != nil {
		return nil, err
	}
	return summary, nil
}
