package pagination

import (
	"net/http"
	"strconv"
)

const (
	DefaultPerPage = 20
	MaxPerPage     = 100
)

// Params is a page request read from the query string. Page is 1-based.
type Params struct {
	Page    int
	PerPage int
}

// DefaultParams returns the first page with the default size.
func DefaultParams() Params {
	return Params{Page: 1, PerPage: DefaultPerPage}
}

// FromRequest reads ?page= and ?perPage=. Missing or out of range values
// fall back to the defaults.
func FromRequest(r *http.Request) Params {
	p := DefaultParams()
	q := r.URL.Query()

	if v, err := strconv.Atoi(q.Get("page")); err == nil && v > 0 {
		p.Page = v
	}
	if v, err := strconv.Atoi(q.Get("perPage")); err == nil && v > 0 && v <= MaxPerPage {
		p.PerPage = v
	}

	return p
}

// Offset is the zero-based index of the first item on the page.
func (p Params) Offset() int64 {
	return int64(p.Page-1) * int64(p.PerPage)
}

// Limit is the page size.
func (p Params) Limit() int64 {
	return int64(p.PerPage)
}

// Page is one page of a listing plus the totals a client needs to walk it.
type Page[T any] struct {
	Items      []T   `json:"items"`
	Page       int   `json:"page"`
	PerPage    int   `json:"perPage"`
	TotalCount int64 `json:"totalCount"`
	TotalPages int64 `json:"totalPages"`
	HasNext    bool  `json:"hasNext"`
	HasPrev    bool  `json:"hasPrev"`
}

// NewPage builds a Page. A nil items slice is returned as an empty one.
func NewPage[T any](items []T, totalCount int64, p Params) Page[T] {
	if items == nil {
		items = []T{}
	}

	perPage := int64(p.PerPage)
	totalPages := int64(0)
	if perPage > 0 {
		totalPages = (totalCount + perPage - 1) / perPage
	}

	return Page[T]{
		Items:      items,
		Page:       p.Page,
		PerPage:    p.PerPage,
		TotalCount: totalCount,
		TotalPages: totalPages,
		HasNext:    int64(p.Page) < totalPages,
		HasPrev:    p.Page > 1,
	}
}
