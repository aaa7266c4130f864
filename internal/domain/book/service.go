package book

import (
	"context"

	"go.uber.org/zap"

	"github.com/xiebiao/bookshop/pkg/logger"
)

// Service 图书领域服务接口
type Service interface {
	// AddBook 新增图书
	AddBook(ctx context.Context, b *Book) (*Book, error)

	// UpdateBook 更新图书信息,成功后失效缓存
	UpdateBook(ctx context.Context, id uint, d Details) (*Book, error)

	// GetBook 查询图书详情(先查缓存)
	GetBook(ctx context.Context, id uint) (*Book, error)

	// SearchBooks 分页搜索
	SearchBooks(ctx context.Context, params SearchParams) ([]*Book, int64, error)
}

type service struct {
	repo  Repository
	cache Cache
}

// NewService 创建图书领域服务
func NewService(repo Repository, cache Cache) Service {
	if cache == nil {
		cache = NopCache{}
	}
	return &service{repo: repo, cache: cache}
}

func (s *service) AddBook(ctx context.Context, b *Book) (*Book, error) {
	if err := b.validate(); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *service) UpdateBook(ctx context.Context, id uint, d Details) (*Book, error) {
	b, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := b.ApplyDetails(d); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, b); err != nil {
		return nil, err
	}

	// 先更新数据库,再删除缓存
	if err := s.cache.Delete(ctx, id); err != nil {
		logger.L().Warn("book cache invalidation failed", zap.Uint("book_id", id), zap.Error(err))
	}
	return b, nil
}

// GetBook Cache-Aside:缓存未命中再查数据库并回填
// 缓存异常不影响查询结果
func (s *service) GetBook(ctx context.Context, id uint) (*Book, error) {
	cached, err := s.cache.Get(ctx, id)
	if err != nil {
		logger.L().Warn("book cache read failed", zap.Uint("book_id", id), zap.Error(err))
	}
	if cached != nil {
		return cached, nil
	}

	b, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, b); err != nil {
		logger.L().Warn("book cache write failed", zap.Uint("book_id", id), zap.Error(err))
	}
	return b, nil
}

func (s *service) SearchBooks(ctx context.Context, params SearchParams) ([]*Book, int64, error) {
	params.PageQuery = params.PageQuery.Normalize()
	return s.repo.Search(ctx, params)
}
