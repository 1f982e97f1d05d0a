// File: internal/common/pagination_test.go
package common

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func paginationTestContext(rawQuery string) *gin.Context {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/listings?"+rawQuery, nil)
	return c
}

func TestGetPaginationParams(t *testing.T) {
	testCases := []struct {
		name         string
		rawQuery     string
		expectedPage int
		expectedSize int
	}{
		{"defaults when absent", "", DefaultPage, DefaultPageSize},
		{"explicit values pass through", "page=4&limit=25", 4, 25},
		{"page zero falls back", "page=0&limit=10", DefaultPage, 10},
		{"negative page falls back", "page=-3", DefaultPage, DefaultPageSize},
		{"limit above max clamps", "page=1&limit=500", 1, MaxPageSize},
		{"limit zero falls back to default", "limit=0", DefaultPage, DefaultPageSize},
		{"unparsable values fall back", "page=abc&limit=xyz", DefaultPage, DefaultPageSize},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			page, pageSize := GetPaginationParams(paginationTestContext(tc.rawQuery))
			assert.Equal(t, tc.expectedPage, page)
			assert.Equal(t, tc.expectedSize, pageSize)
		})
	}
}

func TestPaginationQueryOffsetAndLimit(t *testing.T) {
	testCases := []struct {
		name           string
		query          PaginationQuery
		expectedOffset int
		expectedLimit  int
	}{
		{"first page", PaginationQuery{Page: 1, PageSize: 10}, 0, 10},
		{"third page", PaginationQuery{Page: 3, PageSize: 10}, 20, 10},
		{"zero page treated as first", PaginationQuery{Page: 0, PageSize: 10}, 0, 10},
		{"zero size falls back to default", PaginationQuery{Page: 2, PageSize: 0}, DefaultPageSize, DefaultPageSize},
		{"oversized limit clamps before offset", PaginationQuery{Page: 2, PageSize: 500}, MaxPageSize, MaxPageSize},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			pq := tc.query
			assert.Equal(t, tc.expectedOffset, pq.Offset())
			assert.Equal(t, tc.expectedLimit, pq.Limit())
		})
	}
}
