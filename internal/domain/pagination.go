package domain

import (
	"math"
	"strings"
)

const (
	DefaultPageSize int32 = 20
	MaxPageSize     int32 = 100

	// MaxPage keeps (page-1)*pageSize within int32 for any page size
	MaxPage = math.MaxInt32 / MaxPageSize
)

type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// ListParams carries the search, sort and paging options shared by list endpoints
type ListParams struct {
	Search    string
	IsActive  *bool
	Page      int32
	PageSize  int32
	SortBy    string
	SortOrder SortOrder
}

// Normalize clamps paging and falls back to defaultSort for sort keys not in allowed
func (p ListParams) Normalize(allowed []string, defaultSort string) ListParams {
	p.Search = strings.TrimSpace(p.Search)
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Page > MaxPage {
		p.Page = MaxPage
	}
	if p.PageSize < 1 {
		p.PageSize = DefaultPageSize
	}
	if p.PageSize > MaxPageSize {
		p.PageSize = MaxPageSize
	}

	valid := false
	for _, key := range allowed {
		if key == p.SortBy {
			valid = true
			break
		}
	}
	if !valid {
		p.SortBy = defaultSort
	}
	if p.SortOrder != SortAsc {
		p.SortOrder = SortDesc
	}
	return p
}

// Offset is the number of rows skipped before the current page
func (p ListParams) Offset() int64 {
	if p.Page < 1 {
		return 0
	}
	return int64(p.Page-1) * int64(p.PageSize)
}

// Page is one page of a list result
type Page[T any] struct {
	Items      []T   `json:"items"`
	Total      int64 `json:"total"`
	Page       int32 `json:"page"`
	PageSize   int32 `json:"pageSize"`
	TotalPages int32 `json:"totalPages"`
}

func NewPage[T any](items []T, total int64, params ListParams) Page[T] {
	if items == nil {
		items = []T{}
	}
	totalPages := int32(0)
	if params.PageSize > 0 {
		totalPages = int32((total + int64(params.PageSize) - 1) / int64(params.PageSize))
	}
	return Page[T]{
		Items:      items,
		Total:      total,
		Page:       params.Page,
		PageSize:   params.PageSize,
		TotalPages: totalPages,
	}
}
