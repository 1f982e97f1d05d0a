// File: internal/notification/model.go
package notification

import (
	"time"

	"estatehub_backend/internal/common"

	"github.com/google/uuid"
)

// Notification types emitted by moderation decisions.
const (
	TypeListingApproved    = "listing_approved"
	TypeListingDeclined    = "listing_declined"
	TypeListingDeactivated = "listing_deactivated"
)

// Notification is an in-app message delivered to a user.
type Notification struct {
	common.BaseModel
	UserID    uuid.UUID  `gorm:"type:uuid;not null;index"`
	Type      string     `gorm:"type:varchar(50);not null"`
	Message   string     `gorm:"type:text;not null"`
	ListingID *uuid.UUID `gorm:"type:uuid"`
	IsRead    bool       `gorm:"not null;default:false;index"`
}

// TableName specifies the table name for the Notification model.
func (Notification) TableName() string {
	return "notifications"
}

// NotificationResponse is the API representation of a notification.
type NotificationResponse struct {
	ID        uuid.UUID  `json:"id"`
	Type      string     `json:"type"`
	Message   string     `json:"message"`
	ListingID *uuid.UUID `json:"listing_id,omitempty"`
	IsRead    bool       `json:"is_read"`
	CreatedAt time.Time  `json:"created_at"`
}

// ToNotificationResponse converts a Notification model to its API shape.
func ToNotificationResponse(n *Notification) NotificationResponse {
	return NotificationResponse{
		ID:        n.ID,
		Type:      n.Type,
		Message:   n.Message,
		ListingID: n.ListingID,
		IsRead:    n.IsRead,
		CreatedAt: n.CreatedAt,
	}
}
