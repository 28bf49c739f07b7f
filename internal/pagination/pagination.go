// ABOUTME: Pagination metadata shared by list endpoints and the table view
// ABOUTME: Normalizes server metadata and encodes page/limit query parameters

package pagination

import (
	"net/url"
	"strconv"
)

// Meta is the pagination block returned alongside every paginated collection
type Meta struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
	Pages int `json:"pages"`
}

// PagesFor returns ceil(total/limit), 0 when limit is not positive
func PagesFor(total, limit int) int {
	if limit <= 0 || total <= 0 {
		return 0
	}
	return (total + limit - 1) / limit
}

// Normalize fills in Pages when the server omitted it and clamps Page into [1, Pages]
func (m Meta) Normalize() Meta {
	if m.Pages <= 0 {
		m.Pages = PagesFor(m.Total, m.Limit)
	}
	if m.Page < 1 {
		m.Page = 1
	}
	if m.Pages > 0 && m.Page > m.Pages {
		m.Page = m.Pages
	}
	return m
}

// HasPrev reports whether a previous page exists
func (m Meta) HasPrev() bool {
	return m.Page > 1
}

// HasNext reports whether a following page exists
func (m Meta) HasNext() bool {
	return m.Page < m.Pages
}

// Prev returns the previous page number, or the current page at the first page
func (m Meta) Prev() int {
	if m.HasPrev() {
		return m.Page - 1
	}
	return m.Page
}

// Next returns the following page number, or the current page at the last page
func (m Meta) Next() int {
	if m.HasNext() {
		return m.Page + 1
	}
	return m.Page
}

// InRange reports whether page p can be requested
func (m Meta) InRange(p int) bool {
	return p >= 1 && p <= m.Pages
}

// Params are the page/limit inputs of a list request
type Params struct {
	Page  int
	Limit int
}

// Apply writes page and limit into q, skipping zero values
func (p Params) Apply(q url.Values) {
	if p.Page > 0 {
		q.Set("page", strconv.Itoa(p.Page))
	}
	if p.Limit > 0 {
		q.Set("limit", strconv.Itoa(p.Limit))
	}
}
