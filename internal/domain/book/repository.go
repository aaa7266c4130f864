package book

import (
	"context"

	"github.com/xiebiao/bookshop/internal/domain/shared"
)

// Repository 图书仓储接口(库存存储)
// 由domain层定义,infrastructure层实现(mysql、memory)
type Repository interface {
	// Create 创建图书,回填ID与时间
	Create(ctx context.Context, book *Book) error

	// FindByID 根据ID查找图书,不存在返回ErrBookNotFound
	FindByID(ctx context.Context, id uint) (*Book, error)

	// Update 保存图书全部字段
	Update(ctx context.Context, book *Book) error

	// Search 分页搜索
	Search(ctx context.Context, params SearchParams) ([]*Book, int64, error)

	// LockByID 悲观锁查询图书(SELECT FOR UPDATE)
	// 必须在事务内调用
	LockByID(ctx context.Context, id uint) (*Book, error)

	// DecrementStock 原子扣减库存,返回扣减后的图书
	// 全有或全无:库存不足返回ErrInsufficientStock,不会截断为0
	DecrementStock(ctx context.Context, id uint, amount int) (*Book, error)
}

// SearchParams 搜索参数
// Term 同时匹配书名、作者、类型、出版年份(忽略大小写)
type SearchParams struct {
	Term string
	shared.PageQuery
}

// Cache 图书详情缓存
// Get未命中返回(nil, nil)
type Cache interface {
	Get(ctx context.Context, id uint) (*Book, error)
	Set(ctx context.Context, book *Book) error
	Delete(ctx context.Context, ids ...uint) error
}

// NopCache 不缓存
type NopCache struct{}

func (NopCache) Get(context.Context, uint) (*Book, error) { return nil, nil }
func (NopCache) Set(context.Context, *Book) error         { return nil }
func (NopCache) Delete(context.Context, ...uint) error    { return nil }
