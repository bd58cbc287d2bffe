package repository

import (
	"strings"
)

// ListQuery represents common list query parameters
type ListQuery struct {
	Page    int
	PerPage int
	Search  string
	SortBy  string
	SortDir string
	Filters map[string]string
}

// NewListQuery creates a ListQuery with defaults
func NewListQuery() *ListQuery {
	return &ListQuery{
		Page:    1,
		PerPage: 20,
		Filters: make(map[string]string),
	}
}

// Filter returns a filter value, treating "all" as unset
func (q *ListQuery) Filter(name string) string {
	v := strings.TrimSpace(q.Filters[name])
	if strings.EqualFold(v, "all") {
		return ""
	}
	return v
}

// Matches reports whether any field contains the search term, case-insensitively
func (q *ListQuery) Matches(fields ...string) bool {
	term := strings.ToLower(strings.TrimSpace(q.Search))
	if term == "" {
		return true
	}
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), term) {
			return true
		}
	}
	return false
}

// Paginate slices items to the requested page. PerPage <= 0 returns everything.
func Paginate[T any](items []T, q *ListQuery) ([]T, int64) {
	total := int64(len(items))
	if q == nil || q.PerPage <= 0 {
		return items, total
	}

	page := q.Page
	if page < 1 {
		page = 1
	}
	start := (page - 1) * q.PerPage
	if start >= len(items) {
		return []T{}, total
	}
	end := start + q.PerPage
	if end > len(items) {
		end = len(items)
	}
	return items[start:end], total
}
