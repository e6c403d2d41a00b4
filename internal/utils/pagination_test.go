package utils

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPagination(t *testing.T) {
	tests := []struct {
		name       string
		page       int
		limit      int
		wantPage   int
		wantLimit  int
		wantOffset int
	}{
		{"first page", 1, 20, 1, 20, 0},
		{"third page", 3, 10, 3, 10, 20},
		{"limit capped", 2, 5000, 2, MaxLimit, MaxLimit},
		{"non-positive values", 0, 0, 1, 1, 0},
		{"huge page", 4611686018427387904, 4, math.MaxInt / 4, 4, (math.MaxInt/4 - 1) * 4},
		{"max int page", math.MaxInt, 1, math.MaxInt, 1, math.MaxInt - 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPagination(tt.page, tt.limit)
			assert.Equal(t, tt.wantPage, p.Page)
			assert.Equal(t, tt.wantLimit, p.Limit)
			assert.Equal(t, tt.wantOffset, p.Offset)
			assert.GreaterOrEqual(t, p.Offset, 0)
		})
	}
}

func TestPagination_Window(t *testing.T) {
	tests := []struct {
		name      string
		p         Pagination
		n         int
		wantStart int
		wantEnd   int
	}{
		{"first page", Pagination{Limit: 2, Offset: 0}, 5, 0, 2},
		{"last partial page", Pagination{Limit: 2, Offset: 4}, 5, 4, 5},
		{"past the end", Pagination{Limit: 2, Offset: 10}, 5, 5, 5},
		{"negative offset", Pagination{Limit: 2, Offset: -4}, 5, 0, 2},
		{"huge limit", Pagination{Limit: math.MaxInt, Offset: 1}, 5, 1, 5},
		{"huge offset", Pagination{Limit: 4, Offset: math.MaxInt - 1}, 5, 5, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := tt.p.Window(tt.n)
			assert.Equal(t, tt.wantStart, start)
			assert.Equal(t, tt.wantEnd, end)
		})
	}
}
