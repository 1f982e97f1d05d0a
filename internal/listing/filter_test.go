package listing

import (
	"testing"

	"estatehub_backend/internal/common"

	"github.com/stretchr/testify/assert"
)

func TestBuildPublicFilter_AlwaysCarriesVisibility(t *testing.T) {
	filter := buildPublicFilter(SearchQuery{})
	sql, args := filter.SQL()

	assert.Contains(t, sql, "status = ? OR (status IS NULL AND (is_active IS NULL OR is_active <> ?))")
	assert.Contains(t, args, StatusActive)
}

func TestBuildPublicFilter_CombinesClausesWithVisibilityIntact(t *testing.T) {
	filter := buildPublicFilter(SearchQuery{
		Search:    "Cozy",
		Type:      "rent",
		Offer:     "yes",
		Furnished: "false",
	})
	sql, args := filter.SQL()

	// The status disjunction stays parenthesized next to the AND clauses.
	assert.Contains(t, sql, "(status = ? OR (status IS NULL AND (is_active IS NULL OR is_active <> ?)))")
	assert.Contains(t, sql, "(LOWER(name) LIKE ?)")
	assert.Contains(t, sql, "(type = ?)")
	assert.Contains(t, sql, "(offer = ?)")
	assert.Contains(t, sql, "(furnished = ?)")
	assert.Contains(t, args, "%cozy%")
	assert.Contains(t, args, "rent")
}

func TestBuildCommonFilter_UnspecifiedBooleansOmitClause(t *testing.T) {
	filter := buildCommonFilter(SearchQuery{Offer: "maybe", Parking: "", Furnished: "nope"})
	assert.True(t, filter.IsEmpty())
}

func TestBuildAdminFilter_NoStatusParamsReturnsAllStates(t *testing.T) {
	filter := buildAdminFilter(SearchQuery{})
	assert.True(t, filter.IsEmpty())
}

func TestBuildAdminFilter_StatusWinsOverIsActive(t *testing.T) {
	filter := buildAdminFilter(SearchQuery{Status: "pending", IsActive: "true"})
	sql, args := filter.SQL()

	assert.Equal(t, "(status = ?)", sql)
	assert.Equal(t, []interface{}{StatusPending}, args)
}

func TestBuildAdminFilter_IsActiveMapsToStates(t *testing.T) {
	filter := buildAdminFilter(SearchQuery{IsActive: "1"})
	sql, _ := filter.SQL()
	assert.Contains(t, sql, "status = ? OR (status IS NULL AND (is_active IS NULL OR is_active <> ?))")

	filter = buildAdminFilter(SearchQuery{IsActive: "no"})
	sql, args := filter.SQL()
	assert.Contains(t, sql, "status = ? OR (status IS NULL AND is_active = ?)")
	assert.Contains(t, args, StatusInactive)
}

func TestBuildAdminFilter_InvalidStatusFallsThrough(t *testing.T) {
	filter := buildAdminFilter(SearchQuery{Status: "bogus", IsActive: "false"})
	sql, _ := filter.SQL()
	assert.Contains(t, sql, "status = ? OR (status IS NULL AND is_active = ?)")

	filter = buildAdminFilter(SearchQuery{Status: "bogus"})
	assert.True(t, filter.IsEmpty())
}

func TestPublicSortWhitelist(t *testing.T) {
	assert.Equal(t, "regular_price ASC",
		common.ResolveSort("regularPrice", "asc", publicSortColumns, "created_at"))
	assert.Equal(t, "created_at ASC",
		common.ResolveSort("user_id", "asc", publicSortColumns, "created_at"),
		"non-whitelisted sort fields fall back to created_at")
	assert.Equal(t, "name DESC",
		common.ResolveSort("name", "sideways", publicSortColumns, "created_at"),
		"unknown order words sort descending")
}
