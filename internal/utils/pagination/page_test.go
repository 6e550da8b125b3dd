package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPage(t *testing.T) {
	tests := []struct {
		name     string
		page     int
		limit    int
		want     Page
		wantSkip int
	}{
		{name: "defaults", page: 0, limit: 0, want: Page{Number: 1, Limit: 20}, wantSkip: 0},
		{name: "third page of ten", page: 3, limit: 10, want: Page{Number: 3, Limit: 10}, wantSkip: 20},
		{name: "negative values", page: -2, limit: -5, want: Page{Number: 1, Limit: 20}, wantSkip: 0},
		{name: "limit capped", page: 2, limit: 500, want: Page{Number: 2, Limit: MaxLimit}, wantSkip: MaxLimit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewPage(tt.page, tt.limit)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantSkip, got.Offset())
		})
	}
}

func TestTotalPages(t *testing.T) {
	assert.Equal(t, 0, TotalPages(0, 20))
	assert.Equal(t, 1, TotalPages(1, 20))
	assert.Equal(t, 1, TotalPages(20, 20))
	assert.Equal(t, 2, TotalPages(21, 20))
	assert.Equal(t, 5, TotalPages(41, 10))
	assert.Equal(t, 0, TotalPages(10, 0))
}
