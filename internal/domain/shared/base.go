package shared

import (
	"context"
	"time"
)

// Base 实体公共属性(ID、创建时间、更新时间)
// 各实体以内嵌方式复用
type Base struct {
	ID        uint
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewBase 以当前时间初始化
func NewBase(now time.Time) Base {
	return Base{CreatedAt: now, UpdatedAt: now}
}

// Touch 刷新更新时间
func (b *Base) Touch(now time.Time) {
	b.UpdatedAt = now
}

// IsNew 是否尚未持久化
func (b Base) IsNew() bool {
	return b.ID == 0
}

// Transactor 事务边界
// fn内所有仓储操作使用同一事务,fn返回error时回滚
type Transactor interface {
	Transaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// PageQuery 分页与排序参数(Page从0开始)
type PageQuery struct {
	Page      int
	Size      int
	SortBy    string
	Ascending bool
}

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// Normalize 补全默认值
func (q PageQuery) Normalize() PageQuery {
	if q.Page < 0 {
		q.Page = 0
	}
	if q.Size <= 0 {
		q.Size = DefaultPageSize
	}
	if q.Size > MaxPageSize {
		q.Size = MaxPageSize
	}
	if q.SortBy == "" {
		q.SortBy = "createdAt"
	}
	return q
}

// Offset 偏移量
func (q PageQuery) Offset() int {
	return q.Page * q.Size
}
