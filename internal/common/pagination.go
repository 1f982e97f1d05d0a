// File: internal/common/pagination.go
package common

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

const (
	DefaultPage     = 1
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// PaginationQuery holds pagination parameters from the request query. The
// repositories lean on Offset and Limit so the clamps hold even for callers
// that sidestep GetPaginationParams.
type PaginationQuery struct {
	Page     int `form:"page"`
	PageSize int `form:"limit"`
}

// GetPaginationParams extracts and clamps pagination parameters from the Gin
// context. Page is clamped to >=1, limit to [1, MaxPageSize]; absent or
// unparsable values fall back to the defaults.
func GetPaginationParams(c *gin.Context) (page, pageSize int) {
	page, err := strconv.Atoi(c.DefaultQuery("page", strconv.Itoa(DefaultPage)))
	if err != nil || page < 1 {
		page = DefaultPage
	}

	pageSize, err = strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(DefaultPageSize)))
	if err != nil || pageSize < 1 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}
	return page, pageSize
}

// Offset calculates the offset for database queries.
func (pq *PaginationQuery) Offset() int {
	if pq.Page < 1 {
		pq.Page = DefaultPage
	}
	return (pq.Page - 1) * pq.Limit()
}

// Limit calculates the clamped limit for database queries.
func (pq *PaginationQuery) Limit() int {
	if pq.PageSize < 1 {
		pq.PageSize = DefaultPageSize
	}
	if pq.PageSize > MaxPageSize {
		pq.PageSize = MaxPageSize
	}
	return pq.PageSize
}
