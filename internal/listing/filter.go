// File: internal/listing/filter.go
package listing

import (
	"estatehub_backend/internal/common"
)

// Sort whitelists per endpoint. Query-parameter names map to columns so
// callers can never sort by an unexposed field.
var (
	publicSortColumns = map[string]string{
		"createdAt":      "created_at",
		"created_at":     "created_at",
		"regular_price":  "regular_price",
		"regularPrice":   "regular_price",
		"discount_price": "discount_price",
		"discountPrice":  "discount_price",
		"name":           "name",
	}

	adminSortColumns = map[string]string{
		"created_at": "created_at",
		"updated_at": "updated_at",
		"name":       "name",
		"status":     "status",
	}
)

// visibilityPredicate filters to effectively-active listings. The disjunction
// keeps legacy rows visible: a NULL status means the row predates the state
// machine and is active unless is_active says otherwise.
func visibilityPredicate(f common.Filter) common.Filter {
	return f.Where(
		"status = ? OR (status IS NULL AND (is_active IS NULL OR is_active <> ?))",
		StatusActive, false,
	)
}

// statusPredicate filters by one canonical status, reconciling legacy rows
// for the states they can represent. Pending and declined only exist as
// explicit statuses, so those are plain equality checks.
func statusPredicate(f common.Filter, status ListingStatus) common.Filter {
	switch status {
	case StatusActive:
		return visibilityPredicate(f)
	case StatusInactive:
		return f.Where(
			"status = ? OR (status IS NULL AND is_active = ?)",
			StatusInactive, false,
		)
	default:
		return f.Where("status = ?", status)
	}
}

// acceptedPredicate filters to listings that were ever approved.
func acceptedPredicate(f common.Filter) common.Filter {
	return f.Where(
		"was_accepted = ? OR status = ? OR (status IS NULL AND (is_active IS NULL OR is_active <> ?))",
		true, StatusActive, false,
	)
}

// SearchQuery carries the parsed query parameters of a listing search.
type SearchQuery struct {
	Search    string
	Type      string
	Offer     string
	Furnished string
	Parking   string
	Status    string
	IsActive  string
	Sort      string
	Order     string
	Page      int
	PageSize  int
}

// buildCommonFilter translates the filter params shared by the public and
// admin searches. Boolean params are tri-state: absent or unparsable values
// omit the clause entirely.
func buildCommonFilter(q SearchQuery) common.Filter {
	filter := common.Filter{}

	if pattern, ok := common.LikePattern(q.Search); ok {
		filter = filter.Where("LOWER(name) LIKE ?", pattern)
	}
	if q.Type == string(TypeSale) || q.Type == string(TypeRent) {
		filter = filter.Where("type = ?", q.Type)
	}
	if offer, ok := common.ParseBoolParam(q.Offer); ok {
		filter = filter.Where("offer = ?", offer)
	}
	if furnished, ok := common.ParseBoolParam(q.Furnished); ok {
		filter = filter.Where("furnished = ?", furnished)
	}
	if parking, ok := common.ParseBoolParam(q.Parking); ok {
		filter = filter.Where("parking = ?", parking)
	}
	return filter
}

// buildPublicFilter is the public search filter: the shared params plus the
// visibility predicate unconditionally.
func buildPublicFilter(q SearchQuery) common.Filter {
	return visibilityPredicate(buildCommonFilter(q))
}

// buildAdminFilter is the admin search filter. A valid status param wins
// over the legacy isActive param; an invalid one is ignored rather than
// rejected, like every other filter param. With neither, no status clause
// is added and all states are returned.
func buildAdminFilter(q SearchQuery) common.Filter {
	filter := buildCommonFilter(q)

	if status, err := ParseStatus(q.Status); err == nil {
		return statusPredicate(filter, status)
	}
	if isActive, ok := common.ParseBoolParam(q.IsActive); ok {
		if isActive {
			return statusPredicate(filter, StatusActive)
		}
		return statusPredicate(filter, StatusInactive)
	}
	return filter
}
