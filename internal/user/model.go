// File: internal/user/model.go
package user

import (
	"fmt"
	"strings"
	"time"

	"estatehub_backend/internal/common"

	"github.com/google/uuid"
)

// UserStatus is the moderation state of an account. Deactivated accounts
// cannot sign in and their listings are hidden from public search.
type UserStatus string

const (
	StatusApproved    UserStatus = "approved"
	StatusDeactivated UserStatus = "deactivated"
)

// ParseUserStatus validates a raw status string, case-insensitively.
func ParseUserStatus(raw string) (UserStatus, error) {
	switch UserStatus(strings.ToLower(strings.TrimSpace(raw))) {
	case StatusApproved:
		return StatusApproved, nil
	case StatusDeactivated:
		return StatusDeactivated, nil
	default:
		return "", fmt.Errorf("unknown user status %q", raw)
	}
}

// User represents an account in the database.
type User struct {
	common.BaseModel            // Embeds ID, CreatedAt, UpdatedAt
	Username         string     `gorm:"type:varchar(100);not null;uniqueIndex"`
	Email            string     `gorm:"type:varchar(255);not null;uniqueIndex"`
	PasswordHash     *string    `gorm:"type:varchar(255)"` // NULL for social-only accounts
	Avatar           string     `gorm:"type:text;not null;default:''"`
	AuthProvider     string     `gorm:"type:varchar(50);not null;default:'email'"`
	ProviderID       *string    `gorm:"type:varchar(255);index:idx_auth_provider_provider_id,unique"`
	IsAdmin          bool       `gorm:"not null;default:false"`
	Status           UserStatus `gorm:"type:varchar(20);not null;default:'approved'"`
}

// TableName specifies the table name for the User model.
func (User) TableName() string {
	return "users"
}

// Sanitize removes sensitive information like password hash.
func (u *User) Sanitize() {
	u.PasswordHash = nil
}

// IsDeactivated reports whether the account has been disabled by an admin.
func (u *User) IsDeactivated() bool {
	return u.Status == StatusDeactivated
}

// --- shared.UserDataForToken implementation ---

func (u *User) GetID() uuid.UUID {
	return u.ID
}

func (u *User) GetEmail() string {
	return u.Email
}

func (u *User) GetUsername() string {
	return u.Username
}

func (u *User) GetIsAdmin() bool {
	return u.IsAdmin
}

// --- DTOs (Data Transfer Objects) for API requests/responses ---

// UpdateProfileRequest defines the fields a user may change on their own
// profile. All fields are optional; absent fields are left untouched.
type UpdateProfileRequest struct {
	Username *string `json:"username,omitempty" binding:"omitempty,min=3,max=100,alphanum"`
	Email    *string `json:"email,omitempty" binding:"omitempty,email"`
	Password *string `json:"password,omitempty" binding:"omitempty,min=8,max=72"`
	Avatar   *string `json:"avatar,omitempty" binding:"omitempty,url"`
}

// AdminUpdateStatusRequest is the body of the admin status toggle endpoint.
type AdminUpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// UserResponse defines the structure for user data sent in API responses.
type UserResponse struct {
	ID           uuid.UUID  `json:"id"`
	Username     string     `json:"username"`
	Email        string     `json:"email"`
	Avatar       string     `json:"avatar,omitempty"`
	AuthProvider string     `json:"auth_provider"`
	IsAdmin      bool       `json:"is_admin"`
	Status       UserStatus `json:"status"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// ToUserResponse converts a User model to a UserResponse DTO.
func ToUserResponse(user *User) UserResponse {
	return UserResponse{
		ID:           user.ID,
		Username:     user.Username,
		Email:        user.Email,
		Avatar:       user.Avatar,
		AuthProvider: user.AuthProvider,
		IsAdmin:      user.IsAdmin,
		Status:       user.Status,
		CreatedAt:    user.CreatedAt,
		UpdatedAt:    user.UpdatedAt,
	}
}

// Summary aggregates account counts for the admin console.
type Summary struct {
	Total       int64 `json:"total"`
	Approved    int64 `json:"approved"`
	Deactivated int64 `json:"deactivated"`
	Admins      int64 `json:"admins"`
}
