package domain

import "math"

// Page is one slice of an ordered result set.
type Page[T any] struct {
	Items      []T
	TotalCount int
	PageNumber int
	PageSize   int
}

// TotalPages returns ceil(TotalCount / PageSize).
func (p Page[T]) TotalPages() int {
	if p.PageSize <= 0 {
		return 0
	}
	return (p.TotalCount + p.PageSize - 1) / p.PageSize
}

// Offset is the number of rows skipped before the page starts. Page numbers
// too large to address saturate at math.MaxInt, which is past any result set.
func (p Page[T]) Offset() int {
	if p.PageNumber < 1 || p.PageSize < 1 {
		return 0
	}
	if p.PageNumber-1 > math.MaxInt/p.PageSize {
		return math.MaxInt
	}
	return (p.PageNumber - 1) * p.PageSize
}
