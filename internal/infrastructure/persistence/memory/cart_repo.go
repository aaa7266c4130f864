package memory

import (
	"context"
	"time"

	"github.com/xiebiao/bookshop/internal/domain/cart"
)

type cartRepository struct {
	s *Store
}

// NewCartRepository 创建购物车仓储
func NewCartRepository(s *Store) cart.Repository {
	return &cartRepository{s: s}
}

func (r *cartRepository) FindByUserID(ctx context.Context, userID uint) (*cart.Cart, error) {
	defer r.s.lock(ctx)()

	c, ok := r.s.carts[userID]
	if !ok {
		return nil, cart.NotFoundForUser(userID)
	}

	out := cloneCart(c)
	for i := range out.Items {
		out.Items[i].Book = cloneBook(r.s.books[out.Items[i].BookID])
	}
	return out, nil
}

// LockByUserID 事务已持有存储锁
func (r *cartRepository) LockByUserID(ctx context.Context, userID uint) (*cart.Cart, error) {
	return r.FindByUserID(ctx, userID)
}

func (r *cartRepository) Create(ctx context.Context, c *cart.Cart) error {
	defer r.s.lock(ctx)()

	if _, exists := r.s.carts[c.UserID]; exists {
		return cart.ErrCartExists
	}

	r.s.nextCartID++
	c.ID = r.s.nextCartID
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now()
	}
	r.assignItemIDs(c)
	r.s.carts[c.UserID] = cloneCart(c)
	return nil
}

func (r *cartRepository) Save(ctx context.Context, c *cart.Cart) error {
	if c.ID == 0 {
		return r.Create(ctx, c)
	}

	defer r.s.lock(ctx)()

	existing, ok := r.s.carts[c.UserID]
	if !ok || existing.ID != c.ID {
		return cart.NotFoundForUser(c.UserID)
	}

	c.UpdatedAt = time.Now()
	r.assignItemIDs(c)
	r.s.carts[c.UserID] = cloneCart(c)
	return nil
}

func (r *cartRepository) assignItemIDs(c *cart.Cart) {
	for i := range c.Items {
		c.Items[i].CartID = c.ID
		if c.Items[i].ID == 0 {
			r.s.nextCartItemID++
			c.Items[i].ID = r.s.nextCartItemID
		}
	}
}
