// File: internal/user/service.go
package user

import (
	"context"
	"errors"
	"fmt"

	"estatehub_backend/internal/common"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service encapsulates profile and account administration logic.
type Service struct {
	repo   Repository
	logger *zap.Logger
}

// NewService creates a new user service.
func NewService(repo Repository, logger *zap.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// GetProfile returns the account record for the given user ID.
func (s *Service) GetProfile(ctx context.Context, userID uuid.UUID) (*User, error) {
	return s.repo.FindByID(ctx, userID)
}

// UpdateProfile applies the fields present in the request to the caller's
// own account. Uniqueness conflicts on email or username surface as 409.
func (s *Service) UpdateProfile(ctx context.Context, userID uuid.UUID, req UpdateProfileRequest) (*User, error) {
	account, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.Username != nil {
		account.Username = *req.Username
	}
	if req.Email != nil {
		account.Email = *req.Email
	}
	if req.Avatar != nil {
		account.Avatar = *req.Avatar
	}
	if req.Password != nil {
		hashed, err := common.HashPassword(*req.Password)
		if err != nil {
			s.logger.Error("Failed to hash password during profile update", zap.Error(err))
			return nil, common.ErrInternalServer.WithDetails("Could not process the new password.")
		}
		account.PasswordHash = &hashed
	}

	if err := s.repo.Update(ctx, account); err != nil {
		return nil, err
	}
	s.logger.Info("User profile updated", zap.String("user_id", userID.String()))
	return account, nil
}

// DeleteAccount removes the caller's own account permanently.
func (s *Service) DeleteAccount(ctx context.Context, userID uuid.UUID) error {
	if err := s.repo.Delete(ctx, userID); err != nil {
		return err
	}
	s.logger.Info("User account deleted", zap.String("user_id", userID.String()))
	return nil
}

// AdminSearchUsers returns a page of accounts for the admin console.
// The search term matches username or email as a lowercased substring.
func (s *Service) AdminSearchUsers(ctx context.Context, query AdminQuery) ([]User, *common.Pagination, error) {
	filter := common.Filter{}

	if pattern, ok := common.LikePattern(query.Search); ok {
		filter = filter.Where("LOWER(username) LIKE ? OR LOWER(email) LIKE ?", pattern, pattern)
	}
	if query.Status != "" {
		status, err := ParseUserStatus(query.Status)
		if err != nil {
			return nil, nil, common.ErrBadRequest.WithDetails(
				fmt.Sprintf("Invalid status filter %q. Expected 'approved' or 'deactivated'.", query.Status))
		}
		filter = filter.Where("status = ?", status)
	}
	if isAdmin, ok := common.ParseBoolParam(query.IsAdmin); ok {
		filter = filter.Where("is_admin = ?", isAdmin)
	}

	orderBy := common.ResolveSort(query.Sort, query.Order, adminUserSortColumns, "created_at")

	users, total, err := s.repo.Search(ctx, filter, orderBy, query.Page, query.PageSize)
	if err != nil {
		return nil, nil, err
	}
	pagination := common.NewPagination(total, query.Page, query.PageSize)
	return users, pagination, nil
}

// adminUserSortColumns whitelists sortable columns for the admin user list.
var adminUserSortColumns = map[string]string{
	"created_at": "created_at",
	"username":   "username",
	"email":      "email",
}

// AdminQuery carries the parsed query parameters of the admin user list.
type AdminQuery struct {
	Search   string
	Status   string
	IsAdmin  string
	Sort     string
	Order    string
	Page     int
	PageSize int
}

// AdminUpdateUserStatus sets an account's moderation status. Unknown status
// values are rejected with 400 before touching the database.
func (s *Service) AdminUpdateUserStatus(ctx context.Context, id uuid.UUID, rawStatus string) (*User, error) {
	status, err := ParseUserStatus(rawStatus)
	if err != nil {
		return nil, common.ErrBadRequest.WithDetails(
			fmt.Sprintf("Invalid status %q. Expected 'approved' or 'deactivated'.", rawStatus))
	}

	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrNotFound.WithDetails("User not found.")
		}
		return nil, err
	}

	s.logger.Info("Admin changed user status",
		zap.String("user_id", id.String()),
		zap.String("status", string(status)))
	return s.repo.FindByID(ctx, id)
}

// AdminSummary aggregates account counts for the admin dashboard.
func (s *Service) AdminSummary(ctx context.Context) (*Summary, error) {
	return s.repo.Summarize(ctx)
}
