package models

import (
	"math"
	"strings"
)

const (
	DefaultPageNumber = 1
	DefaultPageSize   = 20
	MaxPageSize       = 100
	MaxPageNumber     = 1000000
)

// PageRequest describes one page of a listing.
type PageRequest struct {
	PageNumber int    `json:"pageNumber" validate:"min=1,max=1000000"`
	PageSize   int    `json:"pageSize" validate:"min=1,max=100"`
	Filters    string `json:"filters"`
	SortOrder  string `json:"sortOrder"`
}

func (PageRequest) ValidationMessages() map[string]string {
	return map[string]string{
		"pageNumber.min": "Page number must be greater than or equal to 1",
		"pageNumber.max": "Page number must not exceed 1000000",
		"pageSize.min":   "Page size must be between 1 and 100",
		"pageSize.max":   "Page size must be between 1 and 100",
	}
}

// Offset is the number of rows skipped before this page. It saturates at
// math.MaxInt so that a huge page number never wraps to a negative offset.
func (r PageRequest) Offset() int {
	if r.PageNumber <= 1 || r.PageSize <= 0 {
		return 0
	}
	if r.PageNumber-1 > math.MaxInt/r.PageSize {
		return math.MaxInt
	}
	return (r.PageNumber - 1) * r.PageSize
}

// Descending reports whether SortOrder asks for names in reverse order.
// Unknown tokens sort ascending.
func (r PageRequest) Descending() bool {
	switch strings.ToLower(strings.TrimSpace(r.SortOrder)) {
	case "desc", "descending", "name_desc", "name desc", "-name":
		return true
	default:
		return false
	}
}

// Page is one slice of a listing plus the metadata needed to walk the rest.
type Page[T any] struct {
	Items       []T
	PageNumber  int
	PageSize    int
	TotalCount  int64
	TotalPages  int
	HasPrevious bool
	HasNext     bool
}

// NewPage computes the page metadata for items fetched with req out of total rows.
func NewPage[T any](items []T, req PageRequest, total int64) Page[T] {
	totalPages := 0
	if req.PageSize > 0 {
		totalPages = int((total + int64(req.PageSize) - 1) / int64(req.PageSize))
	}
	if items == nil {
		items = []T{}
	}
	return Page[T]{
		Items:       items,
		PageNumber:  req.PageNumber,
		PageSize:    req.PageSize,
		TotalCount:  total,
		TotalPages:  totalPages,
		HasPrevious: req.PageNumber > 1,
		HasNext:     req.PageNumber < totalPages,
	}
}
