// File: internal/listing/status.go
package listing

import (
	"fmt"
	"strings"

	"estatehub_backend/internal/common"
)

// ListingStatus is the canonical moderation state of a listing.
type ListingStatus string

const (
	StatusPending  ListingStatus = "pending"
	StatusActive   ListingStatus = "active"
	StatusDeclined ListingStatus = "declined"
	StatusInactive ListingStatus = "inactive"
)

// ParseStatus validates a raw status string, case-insensitively and with
// surrounding whitespace ignored. Unknown values return a 400-class error.
func ParseStatus(raw string) (ListingStatus, error) {
	switch ListingStatus(strings.ToLower(strings.TrimSpace(raw))) {
	case StatusPending:
		return StatusPending, nil
	case StatusActive:
		return StatusActive, nil
	case StatusDeclined:
		return StatusDeclined, nil
	case StatusInactive:
		return StatusInactive, nil
	default:
		return "", common.ErrBadRequest.WithDetails(
			fmt.Sprintf("Invalid listing status %q. Expected one of 'pending', 'active', 'declined', 'inactive'.", raw))
	}
}

// EffectiveStatus reconciles the canonical status with the legacy is_active
// flag. It is the single source of truth for a listing's moderation state:
// a present status always wins; rows without one predate the state machine
// and are active unless is_active is explicitly false.
func EffectiveStatus(status *ListingStatus, isActive *bool) ListingStatus {
	if status != nil {
		return *status
	}
	if isActive != nil && !*isActive {
		return StatusInactive
	}
	return StatusActive
}

// ApplyTransition moves a listing to the next moderation state, keeping the
// legacy flag in sync and recording a first approval permanently. An
// unknown state leaves the listing untouched and returns an error.
func ApplyTransition(l *Listing, next ListingStatus) error {
	switch next {
	case StatusPending, StatusActive, StatusDeclined, StatusInactive:
	default:
		return common.ErrBadRequest.WithDetails(
			fmt.Sprintf("Invalid listing status %q.", string(next)))
	}

	status := next
	active := next == StatusActive
	l.Status = &status
	l.IsActive = &active
	if active {
		l.WasAccepted = true
	}
	return nil
}

// LifetimeAccepted reports whether a listing was ever approved, counting
// listings approved before the was_accepted flag existed via their current
// effective state.
func LifetimeAccepted(l *Listing) bool {
	return l.WasAccepted || EffectiveStatus(l.Status, l.IsActive) == StatusActive
}

// ResolveModeration maps a moderation request body onto a target status.
// An explicit status wins over the legacy boolean; a body with neither
// field is rejected.
func ResolveModeration(req ModerationRequest) (ListingStatus, error) {
	if req.Status != nil && strings.TrimSpace(*req.Status) != "" {
		return ParseStatus(*req.Status)
	}
	if req.IsActive != nil {
		if *req.IsActive {
			return StatusActive, nil
		}
		return StatusInactive, nil
	}
	return "", common.ErrBadRequest.WithDetails("Either 'status' or 'isActive' must be provided.")
}
