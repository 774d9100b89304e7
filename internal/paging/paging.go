package paging

import "strconv"

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

type Params struct {
	Page     int
	PageSize int
}

// Normalize clamps page to >= 1 and page size to [1, MaxPageSize],
// defaulting to DefaultPageSize.
func (p Params) Normalize() Params {
	if p.Page < 1 {
		p.Page = 1
	}
	switch {
	case p.PageSize <= 0:
		p.PageSize = DefaultPageSize
	case p.PageSize > MaxPageSize:
		p.PageSize = MaxPageSize
	}
	return p
}

func (p Params) Offset() int {
	p = p.Normalize()
	return (p.Page - 1) * p.PageSize
}

func (p Params) Limit() int { return p.Normalize().PageSize }

// FromQuery parses page and page_size query values; junk falls back to defaults.
func FromQuery(page, pageSize string) Params {
	pg, _ := strconv.Atoi(page)
	sz, _ := strconv.Atoi(pageSize)
	return Params{Page: pg, PageSize: sz}.Normalize()
}

type Page[T any] struct {
	Items    []T `json:"items"`
	Page     int `json:"page"`
	PageSize int `json:"page_size"`
	Total    int `json:"total"`
}

func NewPage[T any](items []T, p Params, total int) Page[T] {
	p = p.Normalize()
	if items == nil {
		items = []T{}
	}
	return Page[T]{Items: items, Page: p.Page, PageSize: p.PageSize, Total: total}
}

// Map converts the items of a page, keeping its position.
func Map[T, U any](p Page[T], fn func(T) U) Page[U] {
	out := make([]U, 0, len(p.Items))
	for _, it := range p.Items {
		out = append(out, fn(it))
	}
	return Page[U]{Items: out, Page: p.Page, PageSize: p.PageSize, Total: p.Total}
}
