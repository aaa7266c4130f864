// Package memory 内存存储,用于本地运行与测试
//
// 所有仓储共享一把互斥锁。Transaction持锁执行fn,期间仓储操作不再加锁;
// fn返回error时恢复事务开始前的快照。并发结账因此完全串行,不会超卖。
package memory

import (
	"context"
	"sync"

	"github.com/xiebiao/bookshop/internal/domain/book"
	"github.com/xiebiao/bookshop/internal/domain/cart"
	"github.com/xiebiao/bookshop/internal/domain/purchase"
)

type txKey struct{}

// Store 内存数据
type Store struct {
	mu sync.Mutex

	books      map[uint]*book.Book
	nextBookID uint

	carts          map[uint]*cart.Cart // user_id → cart
	nextCartID     uint
	nextCartItemID uint

	purchases          []*purchase.Purchase
	nextPurchaseID     uint
	nextPurchaseItemID uint
}

// NewStore 创建空存储
func NewStore() *Store {
	return &Store{
		books: make(map[uint]*book.Book),
		carts: make(map[uint]*cart.Cart),
	}
}

// Transaction 串行执行fn,出错回滚
// 嵌套调用直接复用外层事务
func (s *Store) Transaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if s.inTx(ctx) {
		return fn(ctx)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	snap := s.snapshot()
	if err := fn(context.WithValue(ctx, txKey{}, s)); err != nil {
		s.restore(snap)
		return err
	}
	return nil
}

func (s *Store) inTx(ctx context.Context) bool {
	owner, ok := ctx.Value(txKey{}).(*Store)
	return ok && owner == s
}

// lock 事务外加锁,事务内由Transaction持锁
func (s *Store) lock(ctx context.Context) func() {
	if s.inTx(ctx) {
		return func() {}
	}
	s.mu.Lock()
	return s.mu.Unlock
}

type snapshot struct {
	books              map[uint]*book.Book
	nextBookID         uint
	carts              map[uint]*cart.Cart
	nextCartID         uint
	nextCartItemID     uint
	purchaseCount      int
	nextPurchaseID     uint
	nextPurchaseItemID uint
}

func (s *Store) snapshot() snapshot {
	books := make(map[uint]*book.Book, len(s.books))
	for id, b := range s.books {
		books[id] = cloneBook(b)
	}
	carts := make(map[uint]*cart.Cart, len(s.carts))
	for userID, c := range s.carts {
		carts[userID] = cloneCart(c)
	}
	return snapshot{
		books:              books,
		nextBookID:         s.nextBookID,
		carts:              carts,
		nextCartID:         s.nextCartID,
		nextCartItemID:     s.nextCartItemID,
		purchaseCount:      len(s.purchases),
		nextPurchaseID:     s.nextPurchaseID,
		nextPurchaseItemID: s.nextPurchaseItemID,
	}
}

// restore 购买记录只追加,截断即可
func (s *Store) restore(snap snapshot) {
	s.books = snap.books
	s.nextBookID = snap.nextBookID
	s.carts = snap.carts
	s.nextCartID = snap.nextCartID
	s.nextCartItemID = snap.nextCartItemID
	s.purchases = s.purchases[:snap.purchaseCount]
	s.nextPurchaseID = snap.nextPurchaseID
	s.nextPurchaseItemID = snap.nextPurchaseItemID
}

// Repositories 返回共享同一存储的三个仓储
func (s *Store) Repositories() (book.Repository, cart.Repository, purchase.Repository) {
	return NewBookRepository(s), NewCartRepository(s), NewPurchaseRepository(s)
}

func cloneBook(b *book.Book) *book.Book {
	if b == nil {
		return nil
	}
	c := *b
	return &c
}

func cloneCart(c *cart.Cart) *cart.Cart {
	out := *c
	out.Items = make([]cart.CartItem, len(c.Items))
	copy(out.Items, c.Items)
	for i := range out.Items {
		out.Items[i].Book = nil
	}
	return &out
}
