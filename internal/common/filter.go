// File: internal/common/filter.go
package common

import (
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// Predicate is a single parenthesized SQL condition with its arguments.
type Predicate struct {
	Expr string
	Args []interface{}
}

// Filter is an immutable conjunction of predicates. Repositories apply the
// same Filter to the count query and the fetch query, so totals and items
// always agree. Each predicate is wrapped in parentheses before being ANDed,
// which keeps internal OR disjunctions (such as the legacy status
// reconciliation clause) intact.
type Filter struct {
	preds []Predicate
}

// Where returns a new Filter with the given condition appended.
func (f Filter) Where(expr string, args ...interface{}) Filter {
	preds := make([]Predicate, 0, len(f.preds)+1)
	preds = append(preds, f.preds...)
	preds = append(preds, Predicate{Expr: expr, Args: args})
	return Filter{preds: preds}
}

// Merge returns a new Filter carrying the predicates of both filters.
func (f Filter) Merge(other Filter) Filter {
	preds := make([]Predicate, 0, len(f.preds)+len(other.preds))
	preds = append(preds, f.preds...)
	preds = append(preds, other.preds...)
	return Filter{preds: preds}
}

// IsEmpty reports whether the filter carries no predicates.
func (f Filter) IsEmpty() bool {
	return len(f.preds) == 0
}

// Apply attaches every predicate to the query as a parenthesized AND clause.
func (f Filter) Apply(db *gorm.DB) *gorm.DB {
	for _, p := range f.preds {
		db = db.Where("("+p.Expr+")", p.Args...)
	}
	return db
}

// SQL renders the conjunction as a single expression, mainly for tests and
// logging.
func (f Filter) SQL() (string, []interface{}) {
	if len(f.preds) == 0 {
		return "", nil
	}
	exprs := make([]string, len(f.preds))
	var args []interface{}
	for i, p := range f.preds {
		exprs[i] = "(" + p.Expr + ")"
		args = append(args, p.Args...)
	}
	return strings.Join(exprs, " AND "), args
}

// ParseBoolParam interprets a tri-state boolean query parameter.
// "true"/"1"/"yes" map to true, "false"/"0"/"no" to false; anything else
// (including absence) means "not specified" and the caller omits the clause.
func ParseBoolParam(raw string) (value, ok bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "true", "1", "yes":
		return true, true
	case "false", "0", "no":
		return false, true
	default:
		return false, false
	}
}

// LikePattern builds a case-insensitive substring pattern for a search term.
// Whitespace-only terms yield ok=false and no filter is applied.
func LikePattern(term string) (pattern string, ok bool) {
	term = strings.TrimSpace(term)
	if term == "" {
		return "", false
	}
	return "%" + strings.ToLower(term) + "%", true
}

// ResolveSort maps a requested sort field through a whitelist of
// query-parameter name -> column name and returns an ORDER BY fragment.
// Unknown fields fall back to the default column rather than erroring.
// "asc" (any case) sorts ascending; anything else sorts descending.
func ResolveSort(requested, order string, whitelist map[string]string, defaultColumn string) string {
	column, found := whitelist[strings.TrimSpace(requested)]
	if !found {
		column = defaultColumn
	}
	direction := "DESC"
	if strings.EqualFold(strings.TrimSpace(order), "asc") {
		direction = "ASC"
	}
	return fmt.Sprintf("%s %s", column, direction)
}
