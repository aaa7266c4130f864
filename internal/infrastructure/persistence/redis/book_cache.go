package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"github.com/xiebiao/bookshop/internal/domain/book"
	"github.com/xiebiao/bookshop/internal/domain/shared"
	apperrors "github.com/xiebiao/bookshop/pkg/errors"
	"github.com/xiebiao/bookshop/pkg/metrics"
)

// DefaultBookTTL 图书详情缓存默认过期时间
const DefaultBookTTL = 10 * time.Minute

// BookCache 图书详情缓存(Cache-Aside)
// Key设计：book:{id},值为JSON
// 写库后由service删除缓存,下次读取时回填
type BookCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewBookCache 创建图书缓存,ttl<=0时使用DefaultBookTTL
func NewBookCache(client *redis.Client, ttl time.Duration) *BookCache {
	if ttl <= 0 {
		ttl = DefaultBookTTL
	}
	return &BookCache{client: client, ttl: ttl}
}

var _ book.Cache = (*BookCache)(nil)

// cachedBook 缓存结构,价格存字符串保证精度
type cachedBook struct {
	ID              uint      `json:"id"`
	Title           string    `json:"title"`
	Genre           string    `json:"genre"`
	ISBN            string    `json:"isbn"`
	Author          string    `json:"author"`
	PublicationYear int       `json:"publication_year"`
	Price           string    `json:"price"`
	QuantityInStock int       `json:"quantity_in_stock"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func bookKey(id uint) string {
	return fmt.Sprintf("book:%d", id)
}

// Get 读取缓存,未命中返回(nil, nil)
func (c *BookCache) Get(ctx context.Context, id uint) (*book.Book, error) {
	data, err := c.client.Get(ctx, bookKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			metrics.IncBookCache("miss")
			return nil, nil
		}
		metrics.IncBookCache("error")
		return nil, apperrors.WrapCode(err, apperrors.ErrCodeRedisError, "读取图书缓存失败")
	}

	var cb cachedBook
	if err := json.Unmarshal(data, &cb); err != nil {
		// 格式损坏按未命中处理,由调用方回源后覆盖
		metrics.IncBookCache("miss")
		return nil, nil
	}
	price, err := decimal.NewFromString(cb.Price)
	if err != nil {
		metrics.IncBookCache("miss")
		return nil, nil
	}

	metrics.IncBookCache("hit")
	return &book.Book{
		Base: shared.Base{
			ID:        cb.ID,
			CreatedAt: cb.CreatedAt,
			UpdatedAt: cb.UpdatedAt,
		},
		Title:           cb.Title,
		Genre:           book.Genre(cb.Genre),
		ISBN:            cb.ISBN,
		Author:          cb.Author,
		PublicationYear: cb.PublicationYear,
		Price:           price,
		QuantityInStock: cb.QuantityInStock,
	}, nil
}

// Set 写入缓存
func (c *BookCache) Set(ctx context.Context, b *book.Book) error {
	data, err := json.Marshal(cachedBook{
		ID:              b.ID,
		Title:           b.Title,
		Genre:           string(b.Genre),
		ISBN:            b.ISBN,
		Author:          b.Author,
		PublicationYear: b.PublicationYear,
		Price:           b.Price.String(),
		QuantityInStock: b.QuantityInStock,
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.UpdatedAt,
	})
	if err != nil {
		return apperrors.Wrap(err, "序列化图书缓存失败")
	}

	if err := c.client.Set(ctx, bookKey(b.ID), data, c.ttl).Err(); err != nil {
		return apperrors.WrapCode(err, apperrors.ErrCodeRedisError, "写入图书缓存失败")
	}
	return nil
}

// Delete 删除缓存(库存或信息变化后调用)
func (c *BookCache) Delete(ctx context.Context, ids ...uint) error {
	if len(ids) == 0 {
		return nil
	}
	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = bookKey(id)
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		return apperrors.WrapCode(err, apperrors.ErrCodeRedisError, "删除图书缓存失败")
	}
	return nil
}
