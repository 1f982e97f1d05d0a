package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilter_WhereIsImmutable(t *testing.T) {
	base := Filter{}.Where("type = ?", "sale")
	withOffer := base.Where("offer = ?", true)
	withParking := base.Where("parking = ?", true)

	offerSQL, offerArgs := withOffer.SQL()
	parkingSQL, parkingArgs := withParking.SQL()

	assert.Equal(t, "(type = ?) AND (offer = ?)", offerSQL)
	assert.Equal(t, []interface{}{"sale", true}, offerArgs)
	assert.Equal(t, "(type = ?) AND (parking = ?)", parkingSQL)
	assert.Equal(t, []interface{}{"sale", true}, parkingArgs)
}

func TestFilter_DisjunctionSurvivesConjunction(t *testing.T) {
	f := Filter{}.
		Where("status = ? OR (status IS NULL AND is_active <> ?)", "active", false).
		Where("offer = ?", true)

	sql, args := f.SQL()
	assert.Equal(t, "(status = ? OR (status IS NULL AND is_active <> ?)) AND (offer = ?)", sql)
	assert.Equal(t, []interface{}{"active", false, true}, args)
}

func TestFilter_Empty(t *testing.T) {
	var f Filter
	assert.True(t, f.IsEmpty())
	sql, args := f.SQL()
	assert.Empty(t, sql)
	assert.Nil(t, args)
}

func TestParseBoolParam(t *testing.T) {
	cases := []struct {
		raw   string
		value bool
		ok    bool
	}{
		{"true", true, true},
		{"1", true, true},
		{"yes", true, true},
		{"TRUE", true, true},
		{" Yes ", true, true},
		{"false", false, true},
		{"0", false, true},
		{"no", false, true},
		{"", false, false},
		{"maybe", false, false},
		{"2", false, false},
	}
	for _, tc := range cases {
		value, ok := ParseBoolParam(tc.raw)
		assert.Equal(t, tc.ok, ok, "raw=%q", tc.raw)
		if tc.ok {
			assert.Equal(t, tc.value, value, "raw=%q", tc.raw)
		}
	}
}

func TestLikePattern(t *testing.T) {
	pattern, ok := LikePattern("  Ocean View ")
	assert.True(t, ok)
	assert.Equal(t, "%ocean view%", pattern)

	_, ok = LikePattern("   ")
	assert.False(t, ok)

	_, ok = LikePattern("")
	assert.False(t, ok)
}

func TestResolveSort(t *testing.T) {
	whitelist := map[string]string{
		"createdAt":    "created_at",
		"regularPrice": "regular_price",
	}

	assert.Equal(t, "regular_price ASC", ResolveSort("regularPrice", "asc", whitelist, "created_at"))
	assert.Equal(t, "regular_price DESC", ResolveSort("regularPrice", "desc", whitelist, "created_at"))
	// Anything that is not "asc" sorts descending.
	assert.Equal(t, "created_at DESC", ResolveSort("createdAt", "sideways", whitelist, "created_at"))
	// Unknown sort fields fall back to the default column.
	assert.Equal(t, "created_at DESC", ResolveSort("password", "", whitelist, "created_at"))
	assert.Equal(t, "created_at ASC", ResolveSort("", "ASC", whitelist, "created_at"))
}

func TestNewPagination_FloorsTotalPages(t *testing.T) {
	p := NewPagination(0, 1, 10)
	assert.Equal(t, 1, p.TotalPages)
	assert.False(t, p.HasNext)
	assert.False(t, p.HasPrev)

	p = NewPagination(101, 2, 10)
	assert.Equal(t, 11, p.TotalPages)
	assert.True(t, p.HasNext)
	assert.True(t, p.HasPrev)

	p = NewPagination(10, 1, 10)
	assert.Equal(t, 1, p.TotalPages)
}
