package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSummaryCaption(t *testing.T) {
	tests := []struct {
		name  string
		shown int
		total int64
		want  string
	}{
		{"all rows shown", 2, 2, "Totals for the period"},
		{"empty period", 0, 0, "Totals for the period"},
		{"capped", StatementMaxRows, 1500, "Totals for the first 1000 of 1500 transactions"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, summaryCaption(tt.shown, tt.total))
		})
	}
}
