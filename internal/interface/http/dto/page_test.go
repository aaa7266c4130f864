package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/xiebiao/bookshop/internal/domain/shared"
)

func TestPageParams_ToPageQuery(t *testing.T) {
	tests := []struct {
		name string
		in   PageParams
		want shared.PageQuery
	}{
		{"默认降序", PageParams{}, shared.PageQuery{}},
		{"升序", PageParams{Page: 2, Size: 5, SortBy: "title", SortDirection: "asc"}, shared.PageQuery{Page: 2, Size: 5, SortBy: "title", Ascending: true}},
		{"大小写不敏感", PageParams{SortDirection: "ASC"}, shared.PageQuery{Ascending: true}},
		{"显式降序", PageParams{SortDirection: "desc"}, shared.PageQuery{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.in.ToPageQuery())
		})
	}
}
