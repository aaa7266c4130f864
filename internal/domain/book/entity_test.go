package book

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestBook(t *testing.T, stock int) *Book {
	t.Helper()
	b, err := NewBook("Dune", GenreFiction, "978-0441013593", "Frank Herbert", 1965, decimal.RequireFromString("19.99"), stock)
	require.NoError(t, err)
	return b
}

func TestNewBook(t *testing.T) {
	t.Run("无效类型", func(t *testing.T) {
		_, err := NewBook("Dune", Genre("COOKING"), "1", "a", 1965, decimal.NewFromInt(1), 1)
		assert.True(t, errors.Is(err, ErrInvalidGenre))
	})

	t.Run("价格必须大于0", func(t *testing.T) {
		_, err := NewBook("Dune", GenreFiction, "1", "a", 1965, decimal.Zero, 1)
		assert.True(t, errors.Is(err, ErrInvalidPrice))
	})

	t.Run("库存不能为负", func(t *testing.T) {
		_, err := NewBook("Dune", GenreFiction, "1", "a", 1965, decimal.NewFromInt(1), -1)
		assert.True(t, errors.Is(err, ErrInvalidStock))
	})
}

func TestBook_DecrStock(t *testing.T) {
	t.Run("正常扣减", func(t *testing.T) {
		b := newTestBook(t, 10)
		require.NoError(t, b.DecrStock(3))
		assert.Equal(t, 7, b.QuantityInStock)
	})

	t.Run("库存不足不修改库存", func(t *testing.T) {
		b := newTestBook(t, 1)
		err := b.DecrStock(2)
		assert.True(t, errors.Is(err, ErrInsufficientStock))
		assert.Equal(t, 1, b.QuantityInStock)
	})

	t.Run("扣减到0", func(t *testing.T) {
		b := newTestBook(t, 2)
		require.NoError(t, b.DecrStock(2))
		assert.Equal(t, 0, b.QuantityInStock)
	})

	t.Run("数量必须为正", func(t *testing.T) {
		b := newTestBook(t, 2)
		assert.True(t, errors.Is(b.DecrStock(0), ErrInvalidQuantity))
	})
}

func TestBook_ApplyDetails(t *testing.T) {
	b := newTestBook(t, 5)
	stock := 12

	err := b.ApplyDetails(Details{
		Title:           "Dune Messiah",
		Genre:           GenreFiction,
		ISBN:            "978-0593098233",
		Author:          "Frank Herbert",
		PublicationYear: 1969,
		Price:           decimal.RequireFromString("15.50"),
		QuantityInStock: &stock,
	})
	require.NoError(t, err)
	assert.Equal(t, "Dune Messiah", b.Title)
	assert.Equal(t, 12, b.QuantityInStock)

	t.Run("校验失败时不修改", func(t *testing.T) {
		err := b.ApplyDetails(Details{Title: "Broken", Genre: "NOPE", Price: decimal.NewFromInt(1)})
		assert.Error(t, err)
		assert.Equal(t, "Dune Messiah", b.Title)
	})

	t.Run("不传库存时保持原值", func(t *testing.T) {
		err := b.ApplyDetails(Details{Title: "Dune Messiah", Genre: GenreSatire, Price: decimal.NewFromInt(3)})
		require.NoError(t, err)
		assert.Equal(t, 12, b.QuantityInStock)
		assert.Equal(t, GenreSatire, b.Genre)
	})
}

func TestParseGenre(t *testing.T) {
	g, err := ParseGenre(" thriller ")
	require.NoError(t, err)
	assert.Equal(t, GenreThriller, g)

	_, err = ParseGenre("romance")
	assert.True(t, errors.Is(err, ErrInvalidGenre))
}

func TestInsufficientStockFor(t *testing.T) {
	err := InsufficientStockFor("Dune")
	assert.Equal(t, "Insufficient stock for book: Dune", err.Message)
	assert.True(t, errors.Is(err, ErrInsufficientStock))
}
