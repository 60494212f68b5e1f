package domain

import (
	"math"
	"testing"
)

func TestPage_TotalPages(t *testing.T) {
	tests := []struct {
		total, size, want int
	}{
		{0, 10, 0},
		{1, 10, 1},
		{10, 10, 1},
		{11, 10, 2},
		{25, 5, 5},
		{3, 0, 0},
	}

	for _, tc := range tests {
		p := Page[int]{TotalCount: tc.total, PageSize: tc.size}
		if got := p.TotalPages(); got != tc.want {
			t.Fatalf("TotalPages(total=%d,size=%d) = %d, want %d", tc.total, tc.size, got, tc.want)
		}
	}
}

func TestPage_Offset(t *testing.T) {
	if got := (Page[int]{PageNumber: 3, PageSize: 10}).Offset(); got != 20 {
		t.Fatalf("offset = %d, want 20", got)
	}
	if got := (Page[int]{PageNumber: 0, PageSize: 10}).Offset(); got != 0 {
		t.Fatalf("offset = %d, want 0", got)
	}
}

func TestPage_OffsetSaturates(t *testing.T) {
	p := Page[int]{PageNumber: math.MaxInt, PageSize: 10}
	if got := p.Offset(); got != math.MaxInt {
		t.Fatalf("offset = %d, want math.MaxInt", got)
	}
	p = Page[int]{PageNumber: math.MaxInt/10 + 1, PageSize: 10}
	if got := p.Offset(); got < 0 {
		t.Fatalf("offset went negative: %d", got)
	}
}
