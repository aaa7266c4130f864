package dto

import (
	"strings"

	"github.com/xiebiao/bookshop/internal/domain/shared"
)

// PageParams 分页与排序参数,page从0开始
type PageParams struct {
	Page          int    `form:"page" binding:"omitempty,min=0" example:"0"`
	Size          int    `form:"size" binding:"omitempty,min=1" example:"10"`
	SortBy        string `form:"sortBy" example:"createdAt"`
	SortDirection string `form:"sort-direction" binding:"omitempty,oneof=asc desc ASC DESC" example:"desc"`
}

// ToPageQuery 转换为领域分页参数,默认降序
func (p PageParams) ToPageQuery() shared.PageQuery {
	return shared.PageQuery{
		Page:      p.Page,
		Size:      p.Size,
		SortBy:    p.SortBy,
		Ascending: strings.EqualFold(p.SortDirection, "asc"),
	}
}
