package purchase

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/bookshop/internal/domain/book"
	"github.com/xiebiao/bookshop/internal/domain/cart"
	"github.com/xiebiao/bookshop/internal/domain/payment"
	"github.com/xiebiao/bookshop/internal/domain/purchase"
	"github.com/xiebiao/bookshop/internal/domain/shared"
	"github.com/xiebiao/bookshop/internal/infrastructure/persistence/memory"
	apperrors "github.com/xiebiao/bookshop/pkg/errors"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []purchase.CompletedEvent
	err    error
}

func (p *recordingPublisher) PublishCompleted(_ context.Context, evt purchase.CompletedEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, evt)
	return p.err
}

type mockCache struct {
	mock.Mock
}

func (m *mockCache) Get(ctx context.Context, id uint) (*book.Book, error) {
	args := m.Called(ctx, id)
	b, _ := args.Get(0).(*book.Book)
	return b, args.Error(1)
}

func (m *mockCache) Set(ctx context.Context, b *book.Book) error {
	return m.Called(ctx, b).Error(0)
}

func (m *mockCache) Delete(ctx context.Context, ids ...uint) error {
	return m.Called(ctx, ids).Error(0)
}

type env struct {
	store     *memory.Store
	books     book.Repository
	carts     cart.Repository
	purchases purchase.Repository
	cartSvc   cart.Service
	publisher *recordingPublisher
}

func newEnv() *env {
	store := memory.NewStore()
	books, carts, purchases := store.Repositories()
	return &env{
		store:     store,
		books:     books,
		carts:     carts,
		purchases: purchases,
		cartSvc:   cart.NewService(store, carts, books),
		publisher: &recordingPublisher{},
	}
}

func (e *env) addBook(t *testing.T, title, isbn, price string, stock int) *book.Book {
	t.Helper()
	b, err := book.NewBook(title, book.GenreFiction, isbn, "Author", 2000, decimal.RequireFromString(price), stock)
	require.NoError(t, err)
	require.NoError(t, e.books.Create(context.Background(), b))
	return b
}

func (e *env) addToCart(t *testing.T, userID, bookID uint, qty int) {
	t.Helper()
	_, err := e.cartSvc.AddToCart(context.Background(), userID, bookID, qty)
	require.NoError(t, err)
}

func (e *env) stockOf(t *testing.T, id uint) int {
	t.Helper()
	b, err := e.books.FindByID(context.Background(), id)
	require.NoError(t, err)
	return b.QuantityInStock
}

func (e *env) useCase(gateways payment.Gateways) *CheckoutUseCase {
	return NewCheckoutUseCase(e.store, e.carts, e.books, e.purchases,
		payment.NewDispatcher(gateways, nil), nil, e.publisher)
}

func (e *env) checkout(userID uint) (*PurchaseResponse, error) {
	return e.useCase(payment.SimulatedGateways()).Execute(context.Background(), CheckoutRequest{
		UserID:        userID,
		PaymentMethod: "WEB",
	})
}

func TestCheckout_Success(t *testing.T) {
	e := newEnv()
	dune := e.addBook(t, "Dune", "111", "10.50", 5)
	emma := e.addBook(t, "Emma", "222", "4.00", 3)
	e.addToCart(t, 1, dune.ID, 2)
	e.addToCart(t, 1, emma.ID, 3)

	resp, err := e.checkout(1)
	require.NoError(t, err)

	assert.NotZero(t, resp.ID)
	assert.Equal(t, "WEB", resp.PaymentMethod)
	assert.Equal(t, "33.00", resp.Total)
	require.Len(t, resp.Items, 2)
	assert.Equal(t, "Dune", resp.Items[0].Book.Title, "明细保持购物车顺序")
	assert.Equal(t, "10.50", resp.Items[0].UnitPrice)

	assert.Equal(t, 3, e.stockOf(t, dune.ID))
	assert.Equal(t, 0, e.stockOf(t, emma.ID))

	c, err := e.carts.FindByUserID(context.Background(), 1)
	require.NoError(t, err)
	assert.True(t, c.IsEmpty(), "结账后清空购物车")

	history, total, err := e.purchases.ListByUserID(context.Background(), 1, shared.PageQuery{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, 5, history[0].TotalQuantity())

	require.Len(t, e.publisher.events, 1)
	assert.Equal(t, resp.ID, e.publisher.events[0].PurchaseID)
	assert.Equal(t, "33.00", e.publisher.events[0].Total)
}

func TestCheckout_Failures(t *testing.T) {
	t.Run("购物车不存在", func(t *testing.T) {
		e := newEnv()
		_, err := e.checkout(42)
		require.Error(t, err)
		assert.ErrorIs(t, err, cart.ErrCartNotFound)
		assert.Equal(t, "Cart not found for user: 42", apperrors.GetAppError(err).Message)
	})

	t.Run("空购物车", func(t *testing.T) {
		e := newEnv()
		_, err := e.cartSvc.GetOrCreate(context.Background(), 1)
		require.NoError(t, err)

		_, err = e.checkout(1)
		assert.ErrorIs(t, err, purchase.ErrEmptyCart)
		assert.Equal(t, "Cannot checkout empty cart.", apperrors.GetAppError(err).Message)
	})

	t.Run("库存不足", func(t *testing.T) {
		e := newEnv()
		b := e.addBook(t, "Dune", "111", "10", 2)
		e.addToCart(t, 1, b.ID, 2)
		_, err := e.books.DecrementStock(context.Background(), b.ID, 1)
		require.NoError(t, err)

		_, err = e.checkout(1)
		assert.ErrorIs(t, err, book.ErrInsufficientStock)
		assert.Equal(t, "Insufficient stock for book: Dune", apperrors.GetAppError(err).Message)
		assert.Equal(t, 1, e.stockOf(t, b.ID))
		assert.Empty(t, e.publisher.events)
	})

	t.Run("非法支付方式", func(t *testing.T) {
		e := newEnv()
		_, err := e.useCase(payment.SimulatedGateways()).Execute(context.Background(), CheckoutRequest{UserID: 1, PaymentMethod: "CARD"})
		assert.ErrorIs(t, err, purchase.ErrInvalidPaymentMethod)
	})
}

func TestCheckout_Atomicity(t *testing.T) {
	t.Run("后面的行库存不足时前面的扣减回滚", func(t *testing.T) {
		e := newEnv()
		first := e.addBook(t, "First", "111", "10", 5)
		second := e.addBook(t, "Second", "222", "10", 5)
		e.addToCart(t, 1, first.ID, 2)
		e.addToCart(t, 1, second.ID, 4)
		_, err := e.books.DecrementStock(context.Background(), second.ID, 3)
		require.NoError(t, err)

		_, err = e.checkout(1)
		require.Error(t, err)
		assert.Equal(t, "Insufficient stock for book: Second", apperrors.GetAppError(err).Message)

		assert.Equal(t, 5, e.stockOf(t, first.ID))
		assert.Equal(t, 2, e.stockOf(t, second.ID))

		c, err := e.carts.FindByUserID(context.Background(), 1)
		require.NoError(t, err)
		assert.Len(t, c.Items, 2, "购物车保持不变")

		_, total, err := e.purchases.ListByUserID(context.Background(), 1, shared.PageQuery{})
		require.NoError(t, err)
		assert.Zero(t, total)
	})

	t.Run("支付失败整体回滚", func(t *testing.T) {
		e := newEnv()
		b := e.addBook(t, "Dune", "111", "10", 5)
		e.addToCart(t, 1, b.ID, 2)

		failing := payment.SimulatedGateways()
		failing.Web = payment.GatewayFunc(func(context.Context, *purchase.Purchase) error {
			return errors.New("gateway timeout")
		})

		_, err := e.useCase(failing).Execute(context.Background(), CheckoutRequest{UserID: 1, PaymentMethod: "web"})
		require.Error(t, err)
		assert.ErrorIs(t, err, payment.ErrPaymentFailed)
		assert.Equal(t, 500, apperrors.GetAppError(err).HTTPStatus())

		assert.Equal(t, 5, e.stockOf(t, b.ID))
		c, err := e.carts.FindByUserID(context.Background(), 1)
		require.NoError(t, err)
		assert.Equal(t, 2, c.QuantityOf(b.ID))
		assert.Empty(t, e.publisher.events)
	})
}

func TestCheckout_AfterCommit(t *testing.T) {
	t.Run("发布失败不影响结账", func(t *testing.T) {
		e := newEnv()
		e.publisher.err = errors.New("broker down")
		b := e.addBook(t, "Dune", "111", "10", 5)
		e.addToCart(t, 1, b.ID, 1)

		resp, err := e.checkout(1)
		require.NoError(t, err)
		assert.NotZero(t, resp.ID)
		assert.Equal(t, 4, e.stockOf(t, b.ID))
	})

	t.Run("提交后失效缓存", func(t *testing.T) {
		e := newEnv()
		a := e.addBook(t, "A", "111", "10", 5)
		b := e.addBook(t, "B", "222", "10", 5)
		e.addToCart(t, 1, a.ID, 1)
		e.addToCart(t, 1, b.ID, 1)

		cache := new(mockCache)
		cache.On("Delete", mock.Anything, []uint{a.ID, b.ID}).Return(errors.New("redis down"))

		uc := NewCheckoutUseCase(e.store, e.carts, e.books, e.purchases,
			payment.NewDispatcher(payment.SimulatedGateways(), nil), cache, nil)
		_, err := uc.Execute(context.Background(), CheckoutRequest{UserID: 1, PaymentMethod: "USSD"})
		require.NoError(t, err)
		cache.AssertExpectations(t)
	})
}

func TestCheckout_ConcurrentNoOversell(t *testing.T) {
	e := newEnv()
	b := e.addBook(t, "Dune", "111", "10", 5)

	const buyers = 20
	for u := uint(1); u <= buyers; u++ {
		e.addToCart(t, u, b.ID, 1)
	}

	uc := e.useCase(payment.SimulatedGateways())
	var (
		wg        sync.WaitGroup
		succeeded atomic.Int32
		rejected  atomic.Int32
	)
	for u := uint(1); u <= buyers; u++ {
		wg.Add(1)
		go func(userID uint) {
			defer wg.Done()
			_, err := uc.Execute(context.Background(), CheckoutRequest{UserID: userID, PaymentMethod: "TRANSFER"})
			switch {
			case err == nil:
				succeeded.Add(1)
			case errors.Is(err, book.ErrInsufficientStock):
				rejected.Add(1)
			}
		}(u)
	}
	wg.Wait()

	assert.Equal(t, int32(5), succeeded.Load())
	assert.Equal(t, int32(buyers-5), rejected.Load())
	assert.Equal(t, 0, e.stockOf(t, b.ID))
}

func TestListPurchasesUseCase(t *testing.T) {
	e := newEnv()
	b := e.addBook(t, "Dune", "111", "10", 10)
	for i := 0; i < 3; i++ {
		e.addToCart(t, 1, b.ID, i+1)
		_, err := e.checkout(1)
		require.NoError(t, err)
	}

	uc := NewListPurchasesUseCase(e.purchases)

	page, err := uc.Execute(context.Background(), ListPurchasesRequest{
		UserID:    1,
		PageQuery: shared.PageQuery{Size: 2, SortBy: "id", Ascending: true},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(3), page.Total)
	require.Len(t, page.Items, 2)
	assert.Equal(t, 1, page.Items[0].Items[0].Quantity)

	empty, err := uc.Execute(context.Background(), ListPurchasesRequest{UserID: 99})
	require.NoError(t, err)
	assert.Zero(t, empty.Total)
	assert.Empty(t, empty.Items)
}
