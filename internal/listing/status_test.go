package listing

import (
	"testing"

	"estatehub_backend/internal/common"

	"github.com/stretchr/testify/assert"
)

func statusPtr(s ListingStatus) *ListingStatus { return &s }
func boolPtr(b bool) *bool                     { return &b }

func TestParseStatus(t *testing.T) {
	tests := []struct {
		raw     string
		want    ListingStatus
		wantErr bool
	}{
		{"pending", StatusPending, false},
		{"ACTIVE", StatusActive, false},
		{" Declined ", StatusDeclined, false},
		{"inactive", StatusInactive, false},
		{"bogus", "", true},
		{"", "", true},
		{"activeX", "", true},
	}
	for _, tt := range tests {
		got, err := ParseStatus(tt.raw)
		if tt.wantErr {
			assert.Error(t, err, "raw=%q", tt.raw)
			apiErr, ok := common.IsAPIError(err)
			assert.True(t, ok)
			assert.Equal(t, common.ErrBadRequest.Code, apiErr.Code)
		} else {
			assert.NoError(t, err, "raw=%q", tt.raw)
			assert.Equal(t, tt.want, got)
		}
	}
}

func TestEffectiveStatus(t *testing.T) {
	// A present status always wins, whatever the legacy flag says.
	assert.Equal(t, StatusPending, EffectiveStatus(statusPtr(StatusPending), boolPtr(true)))
	assert.Equal(t, StatusDeclined, EffectiveStatus(statusPtr(StatusDeclined), nil))
	assert.Equal(t, StatusActive, EffectiveStatus(statusPtr(StatusActive), boolPtr(false)))

	// Legacy rows: no status, visibility decided by is_active.
	assert.Equal(t, StatusActive, EffectiveStatus(nil, nil))
	assert.Equal(t, StatusActive, EffectiveStatus(nil, boolPtr(true)))
	assert.Equal(t, StatusInactive, EffectiveStatus(nil, boolPtr(false)))
}

func TestApplyTransition_ToActive(t *testing.T) {
	l := &Listing{Status: statusPtr(StatusPending), IsActive: boolPtr(false)}

	err := ApplyTransition(l, StatusActive)
	assert.NoError(t, err)
	assert.Equal(t, StatusActive, *l.Status)
	assert.True(t, *l.IsActive)
	assert.True(t, l.WasAccepted)
}

func TestApplyTransition_WasAcceptedIsMonotonic(t *testing.T) {
	l := &Listing{Status: statusPtr(StatusPending)}

	assert.NoError(t, ApplyTransition(l, StatusActive))
	assert.True(t, l.WasAccepted)

	assert.NoError(t, ApplyTransition(l, StatusDeclined))
	assert.Equal(t, StatusDeclined, *l.Status)
	assert.False(t, *l.IsActive)
	assert.True(t, l.WasAccepted, "a past approval must survive later transitions")

	assert.NoError(t, ApplyTransition(l, StatusInactive))
	assert.True(t, l.WasAccepted)
}

func TestApplyTransition_InvalidLeavesListingUntouched(t *testing.T) {
	l := &Listing{Status: statusPtr(StatusPending), IsActive: boolPtr(false), WasAccepted: false}

	err := ApplyTransition(l, ListingStatus("bogus"))
	assert.Error(t, err)
	assert.Equal(t, StatusPending, *l.Status)
	assert.False(t, *l.IsActive)
	assert.False(t, l.WasAccepted)
}

func TestLifetimeAccepted(t *testing.T) {
	// Flag set: counted even when currently declined.
	assert.True(t, LifetimeAccepted(&Listing{Status: statusPtr(StatusDeclined), WasAccepted: true}))

	// Currently active without the flag: legacy row approved before the flag
	// existed.
	assert.True(t, LifetimeAccepted(&Listing{IsActive: boolPtr(true)}))
	assert.True(t, LifetimeAccepted(&Listing{}))

	// Never accepted.
	assert.False(t, LifetimeAccepted(&Listing{Status: statusPtr(StatusPending)}))
	assert.False(t, LifetimeAccepted(&Listing{IsActive: boolPtr(false)}))
}

func TestResolveModeration(t *testing.T) {
	activeStr := "ACTIVE"
	pendingStr := "pending"
	empty := ""

	// Explicit status wins over the legacy boolean.
	next, err := ResolveModeration(ModerationRequest{Status: &pendingStr, IsActive: boolPtr(true)})
	assert.NoError(t, err)
	assert.Equal(t, StatusPending, next)

	next, err = ResolveModeration(ModerationRequest{Status: &activeStr})
	assert.NoError(t, err)
	assert.Equal(t, StatusActive, next)

	// Legacy boolean alone maps to active/inactive.
	next, err = ResolveModeration(ModerationRequest{IsActive: boolPtr(true)})
	assert.NoError(t, err)
	assert.Equal(t, StatusActive, next)

	next, err = ResolveModeration(ModerationRequest{IsActive: boolPtr(false)})
	assert.NoError(t, err)
	assert.Equal(t, StatusInactive, next)

	// An empty status string falls through to the boolean.
	next, err = ResolveModeration(ModerationRequest{Status: &empty, IsActive: boolPtr(false)})
	assert.NoError(t, err)
	assert.Equal(t, StatusInactive, next)

	// Neither field is a bad request.
	_, err = ResolveModeration(ModerationRequest{})
	assert.Error(t, err)
}
