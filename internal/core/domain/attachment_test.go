package domain_test

import (
	"testing"

	"github.com/SscSPs/finance_tracker_app/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func TestPartitionAttachments(t *testing.T) {
	a := domain.Attachment{PublicID: "a", URL: "https://cdn/a"}
	b := domain.Attachment{PublicID: "b", URL: "https://cdn/b"}
	c := domain.Attachment{PublicID: "c", URL: "https://cdn/c"}

	tests := []struct {
		name     string
		current  []domain.Attachment
		keepIDs  []string
		wantKeep []domain.Attachment
		wantDrop []domain.Attachment
	}{
		{
			name:     "keep one of three",
			current:  []domain.Attachment{a, b, c},
			keepIDs:  []string{"b"},
			wantKeep: []domain.Attachment{b},
			wantDrop: []domain.Attachment{a, c},
		},
		{
			name:     "nil keep list drops everything",
			current:  []domain.Attachment{a, b},
			keepIDs:  nil,
			wantKeep: nil,
			wantDrop: []domain.Attachment{a, b},
		},
		{
			name:     "unknown ids are ignored",
			current:  []domain.Attachment{a},
			keepIDs:  []string{"a", "zzz"},
			wantKeep: []domain.Attachment{a},
			wantDrop: nil,
		},
		{
			name:     "order follows current list",
			current:  []domain.Attachment{c, a, b},
			keepIDs:  []string{"b", "c"},
			wantKeep: []domain.Attachment{c, b},
			wantDrop: []domain.Attachment{a},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			keep, drop := domain.PartitionAttachments(tt.current, tt.keepIDs)
			assert.Equal(t, tt.wantKeep, keep)
			assert.Equal(t, tt.wantDrop, drop)
		})
	}
}
