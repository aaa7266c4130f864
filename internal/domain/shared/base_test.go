package shared

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPageQuery_Normalize(t *testing.T) {
	tests := []struct {
		name string
		in   PageQuery
		want PageQuery
	}{
		{"默认值", PageQuery{}, PageQuery{Page: 0, Size: 10, SortBy: "createdAt"}},
		{"负页码归零", PageQuery{Page: -3, Size: 5, SortBy: "title"}, PageQuery{Page: 0, Size: 5, SortBy: "title"}},
		{"超过最大页大小", PageQuery{Page: 2, Size: 1000, SortBy: "id", Ascending: true}, PageQuery{Page: 2, Size: 100, SortBy: "id", Ascending: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.in.Normalize())
		})
	}

	assert.Equal(t, 20, PageQuery{Page: 2, Size: 10}.Offset())
}

func TestBase(t *testing.T) {
	now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	b := NewBase(now)
	assert.True(t, b.IsNew())
	assert.Equal(t, now, b.CreatedAt)

	later := now.Add(time.Hour)
	b.Touch(later)
	assert.Equal(t, later, b.UpdatedAt)
	assert.Equal(t, now, b.CreatedAt)
}
