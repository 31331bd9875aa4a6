package query

import "math"

// Page is a normalized page request.
type Page struct {
	Page  int
	Limit int
}

// NewPage clamps page to at least 1 and limit into [1, maxLimit], using
// defaultLimit when limit is unset. Page is capped so that Offset fits an int.
func NewPage(page, limit, defaultLimit, maxLimit int) Page {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultLimit
	}
	if maxLimit > 0 && limit > maxLimit {
		limit = maxLimit
	}
	// Keep Offset from overflowing; such pages are simply empty.
	if limit > 0 && page > math.MaxInt/limit {
		page = math.MaxInt / limit
	}
	return Page{Page: page, Limit: limit}
}

func (p Page) Offset() int {
	return (p.Page - 1) * p.Limit
}

func TotalPages(total int64, limit int) int {
	if limit < 1 || total <= 0 {
		return 0
	}
	pages := total / int64(limit)
	if total%int64(limit) != 0 {
		pages++
	}
	return int(pages)
}
