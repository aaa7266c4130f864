package mysql

import (
	"context"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	purchaseapp "github.com/xiebiao/bookshop/internal/application/purchase"
	"github.com/xiebiao/bookshop/internal/domain/book"
	"github.com/xiebiao/bookshop/internal/domain/cart"
	"github.com/xiebiao/bookshop/internal/domain/payment"
	"github.com/xiebiao/bookshop/internal/domain/purchase"
	"github.com/xiebiao/bookshop/internal/domain/shared"
)

// openTestDB 需要BOOKSHOP_TEST_MYSQL_DSN指向一个可清空的测试库
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := os.Getenv("BOOKSHOP_TEST_MYSQL_DSN")
	if dsn == "" {
		t.Skip("BOOKSHOP_TEST_MYSQL_DSN未设置,跳过MySQL集成测试")
	}

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, AutoMigrate(db))

	for _, table := range []string{"purchase_items", "purchases", "cart_items", "carts", "books"} {
		require.NoError(t, db.Exec("DELETE FROM "+table).Error)
	}
	return db
}

func seedBook(t *testing.T, repo book.Repository, title, isbn string, stock int) *book.Book {
	t.Helper()
	b, err := book.NewBook(title, book.GenreFiction, isbn, "Author", 2020, decimal.NewFromInt(15), stock)
	require.NoError(t, err)
	require.NoError(t, repo.Create(context.Background(), b))
	return b
}

func TestBookRepository(t *testing.T) {
	db := openTestDB(t)
	repo := NewBookRepository(db)
	ctx := context.Background()

	b := seedBook(t, repo, "Go in Action", "978-1", 5)
	seedBook(t, repo, "Poems", "978-2", 1)

	t.Run("ISBN重复", func(t *testing.T) {
		dup, _ := book.NewBook("Other", book.GenrePoetry, "978-1", "X", 2001, decimal.NewFromInt(1), 1)
		assert.ErrorIs(t, repo.Create(ctx, dup), book.ErrISBNDuplicate)
	})

	t.Run("搜索忽略大小写", func(t *testing.T) {
		books, total, err := repo.Search(ctx, book.SearchParams{Term: "GO IN"})
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		assert.Equal(t, b.ID, books[0].ID)
	})

	t.Run("扣减库存", func(t *testing.T) {
		updated, err := repo.DecrementStock(ctx, b.ID, 3)
		require.NoError(t, err)
		assert.Equal(t, 2, updated.QuantityInStock)

		_, err = repo.DecrementStock(ctx, b.ID, 3)
		assert.ErrorIs(t, err, book.ErrInsufficientStock)

		_, err = repo.DecrementStock(ctx, 999999, 1)
		assert.ErrorIs(t, err, book.ErrBookNotFound)
	})
}

func TestCheckoutTransaction_Rollback(t *testing.T) {
	db := openTestDB(t)
	tx := NewTxManager(db)
	books := NewBookRepository(db)
	carts := NewCartRepository(db)
	purchases := NewPurchaseRepository(db)
	ctx := context.Background()

	b := seedBook(t, books, "Rollback", "978-3", 4)
	c := cart.NewCart(42)
	require.NoError(t, carts.Create(ctx, c))
	_, err := c.AddItem(b.ID, 2)
	require.NoError(t, err)
	require.NoError(t, carts.Save(ctx, c))

	t.Run("出错时回滚", func(t *testing.T) {
		err := tx.Transaction(ctx, func(ctx context.Context) error {
			if _, err := books.LockByID(ctx, b.ID); err != nil {
				return err
			}
			if _, err := books.DecrementStock(ctx, b.ID, 2); err != nil {
				return err
			}
			return book.ErrInsufficientStock
		})
		require.Error(t, err)

		after, err := books.FindByID(ctx, b.ID)
		require.NoError(t, err)
		assert.Equal(t, 4, after.QuantityInStock)
	})

	t.Run("提交后写入购买记录并清空购物车", func(t *testing.T) {
		err := tx.Transaction(ctx, func(ctx context.Context) error {
			if _, err := books.DecrementStock(ctx, b.ID, 2); err != nil {
				return err
			}
			p := purchase.NewPurchase(42, purchase.PaymentWeb, time.Now(), []purchase.PurchaseItem{
				{BookID: b.ID, Quantity: 2, UnitPrice: b.Price},
			})
			if err := purchases.Create(ctx, p); err != nil {
				return err
			}
			c.Clear()
			return carts.Save(ctx, c)
		})
		require.NoError(t, err)

		history, total, err := purchases.ListByUserID(ctx, 42, shared.PageQuery{})
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		require.Len(t, history[0].Items, 1)
		assert.Equal(t, "Rollback", history[0].Items[0].Book.Title)
		assert.True(t, history[0].Total().Equal(decimal.NewFromInt(30)))

		reloaded, err := carts.FindByUserID(ctx, 42)
		require.NoError(t, err)
		assert.True(t, reloaded.IsEmpty())
	})
}

func TestCheckout_ConcurrentSameCart(t *testing.T) {
	db := openTestDB(t)
	tx := NewTxManager(db)
	books := NewBookRepository(db)
	carts := NewCartRepository(db)
	purchases := NewPurchaseRepository(db)
	ctx := context.Background()

	b := seedBook(t, books, "Double Submit", "978-4", 10)
	_, err := cart.NewService(tx, carts, books).AddToCart(ctx, 51, b.ID, 2)
	require.NoError(t, err)

	uc := purchaseapp.NewCheckoutUseCase(tx, carts, books, purchases,
		payment.NewDispatcher(payment.SimulatedGateways(), nil), nil, nil)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = uc.Execute(ctx, purchaseapp.CheckoutRequest{UserID: 51, PaymentMethod: "WEB"})
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		assert.ErrorIs(t, err, purchase.ErrEmptyCart, "第二次结账看到已清空的购物车")
	}
	assert.Equal(t, 1, succeeded)

	after, err := books.FindByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, 8, after.QuantityInStock, "库存只扣减一次")

	_, total, err := purchases.ListByUserID(ctx, 51, shared.PageQuery{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
}

func TestAddToCart_ConcurrentSameCart(t *testing.T) {
	db := openTestDB(t)
	books := NewBookRepository(db)
	svc := cart.NewService(NewTxManager(db), NewCartRepository(db), books)
	ctx := context.Background()

	b := seedBook(t, books, "Crowded", "978-5", 100)
	_, err := svc.AddToCart(ctx, 52, b.ID, 1)
	require.NoError(t, err)

	var wg sync.WaitGroup
	errs := make([]error, 10)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.AddToCart(ctx, 52, b.ID, 1)
		}(i)
	}
	wg.Wait()
	for _, err := range errs {
		require.NoError(t, err)
	}

	c, err := svc.GetCart(ctx, 52)
	require.NoError(t, err)
	require.Len(t, c.Items, 1)
	assert.Equal(t, 11, c.Items[0].Quantity)
}
