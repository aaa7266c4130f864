package cart

import (
	"context"
	"errors"

	"github.com/xiebiao/bookshop/internal/domain/book"
	"github.com/xiebiao/bookshop/internal/domain/shared"
	apperrors "github.com/xiebiao/bookshop/pkg/errors"
)

// Service 购物车领域服务
type Service interface {
	// GetOrCreate 获取用户购物车,没有则创建空购物车
	GetOrCreate(ctx context.Context, userID uint) (*Cart, error)

	// AddToCart 加入购物车
	// 校验图书存在且库存不少于合并后的数量
	AddToCart(ctx context.Context, userID, bookID uint, quantity int) (*Cart, error)

	// GetCart 查看购物车
	GetCart(ctx context.Context, userID uint) (*Cart, error)

	// ClearCart 清空购物车,对空购物车幂等,没有购物车返回ErrCartNotFound
	ClearCart(ctx context.Context, userID uint) error
}

type service struct {
	tx       shared.Transactor
	repo     Repository
	bookRepo book.Repository
}

// NewService 创建购物车领域服务
// 写操作在tx中执行并锁定购物车行
func NewService(tx shared.Transactor, repo Repository, bookRepo book.Repository) Service {
	return &service{tx: tx, repo: repo, bookRepo: bookRepo}
}

func (s *service) GetOrCreate(ctx context.Context, userID uint) (*Cart, error) {
	var c *Cart
	err := s.tx.Transaction(ctx, func(txCtx context.Context) error {
		var err error
		c, err = s.lockOrCreate(txCtx, userID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (s *service) AddToCart(ctx context.Context, userID, bookID uint, quantity int) (*Cart, error) {
	if quantity <= 0 {
		return nil, ErrInvalidQuantity
	}

	var c *Cart
	err := s.tx.Transaction(ctx, func(txCtx context.Context) error {
		// 先锁购物车再读其他数据,明细读取不落在旧快照上
		// 新建的购物车在校验失败时随事务回滚
		var err error
		c, err = s.lockOrCreate(txCtx, userID)
		if err != nil {
			return err
		}

		b, err := s.bookRepo.FindByID(txCtx, bookID)
		if err != nil {
			if errors.Is(err, book.ErrBookNotFound) {
				return apperrors.New(apperrors.ErrCodeBookNotFound, "Book not found.")
			}
			return err
		}
		if !b.HasStock(c.QuantityOf(bookID) + quantity) {
			return ErrInsufficientStock
		}

		item, err := c.AddItem(bookID, quantity)
		if err != nil {
			return err
		}
		item.Book = b

		return s.repo.Save(txCtx, c)
	})
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (s *service) GetCart(ctx context.Context, userID uint) (*Cart, error) {
	return s.repo.FindByUserID(ctx, userID)
}

func (s *service) ClearCart(ctx context.Context, userID uint) error {
	return s.tx.Transaction(ctx, func(txCtx context.Context) error {
		c, err := s.repo.LockByUserID(txCtx, userID)
		if err != nil {
			if errors.Is(err, ErrCartNotFound) {
				return ErrCartNotFound
			}
			return err
		}
		c.Clear()
		return s.repo.Save(txCtx, c)
	})
}

// lockOrCreate 锁定用户购物车,不存在则创建
// 并发请求已创建时改为锁定已有购物车
func (s *service) lockOrCreate(ctx context.Context, userID uint) (*Cart, error) {
	c, err := s.repo.LockByUserID(ctx, userID)
	if err == nil {
		return c, nil
	}
	if !errors.Is(err, ErrCartNotFound) {
		return nil, err
	}

	c = NewCart(userID)
	if err := s.repo.Create(ctx, c); err != nil {
		if errors.Is(err, ErrCartExists) {
			return s.repo.LockByUserID(ctx, userID)
		}
		return nil, err
	}
	return c, nil
}
