package shared

import "math"

const defaultPageSize = 20

// Pagination contains metadata for paginated listings.
type Pagination struct {
	Page       int
	Limit      int
	Total      int
	TotalPages int
}

// NewPagination computes pagination metadata.
func NewPagination(page, limit, total int) Pagination {
	if limit <= 0 {
		limit = defaultPageSize
	}
	if page <= 0 {
		page = 1
	}
	totalPages := int(math.Ceil(float64(total) / float64(limit)))
	return Pagination{Page: page, Limit: limit, Total: total, TotalPages: totalPages}
}

// Offset returns the row offset for the current page.
func (p Pagination) Offset() int {
	return (p.Page - 1) * p.Limit
}
