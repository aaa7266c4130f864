package book

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/xiebiao/bookshop/internal/domain/shared"
)

// Genre 图书类型(封闭枚举)
type Genre string

const (
	GenreFiction  Genre = "FICTION"
	GenreThriller Genre = "THRILLER"
	GenreMystery  Genre = "MYSTERY"
	GenrePoetry   Genre = "POETRY"
	GenreHorror   Genre = "HORROR"
	GenreSatire   Genre = "SATIRE"
)

// Genres 全部合法类型,顺序固定
var Genres = []Genre{GenreFiction, GenreThriller, GenreMystery, GenrePoetry, GenreHorror, GenreSatire}

// IsValid 是否为合法类型
func (g Genre) IsValid() bool {
	switch g {
	case GenreFiction, GenreThriller, GenreMystery, GenrePoetry, GenreHorror, GenreSatire:
		return true
	}
	return false
}

// ParseGenre 解析类型(忽略大小写)
func ParseGenre(s string) (Genre, error) {
	g := Genre(strings.ToUpper(strings.TrimSpace(s)))
	if !g.IsValid() {
		return "", ErrInvalidGenre
	}
	return g, nil
}

// Book 图书实体(聚合根)
// 价格使用decimal,库存不允许为负
type Book struct {
	shared.Base
	Title           string
	Genre           Genre
	ISBN            string
	Author          string
	PublicationYear int
	Price           decimal.Decimal
	QuantityInStock int
}

// NewBook 创建新图书(工厂方法)
func NewBook(title string, genre Genre, isbn, author string, year int, price decimal.Decimal, stock int) (*Book, error) {
	b := &Book{
		Base:            shared.NewBase(time.Now()),
		Title:           title,
		Genre:           genre,
		ISBN:            isbn,
		Author:          author,
		PublicationYear: year,
		Price:           price,
		QuantityInStock: stock,
	}
	if err := b.validate(); err != nil {
		return nil, err
	}
	return b, nil
}

// Details 可修改的图书信息
type Details struct {
	Title           string
	Genre           Genre
	ISBN            string
	Author          string
	PublicationYear int
	Price           decimal.Decimal
	// QuantityInStock 为nil时不修改库存
	QuantityInStock *int
}

// ApplyDetails 覆盖图书信息
func (b *Book) ApplyDetails(d Details) error {
	next := *b
	next.Title = d.Title
	next.Genre = d.Genre
	next.ISBN = d.ISBN
	next.Author = d.Author
	next.PublicationYear = d.PublicationYear
	next.Price = d.Price
	if d.QuantityInStock != nil {
		next.QuantityInStock = *d.QuantityInStock
	}
	if err := next.validate(); err != nil {
		return err
	}
	next.Touch(time.Now())
	*b = next
	return nil
}

// HasStock 库存是否满足数量
func (b *Book) HasStock(quantity int) bool {
	return b.QuantityInStock >= quantity
}

// DecrStock 扣减库存
// 扣减后库存不能为负数
func (b *Book) DecrStock(quantity int) error {
	if quantity <= 0 {
		return ErrInvalidQuantity
	}
	if b.QuantityInStock < quantity {
		return ErrInsufficientStock
	}
	b.QuantityInStock -= quantity
	b.Touch(time.Now())
	return nil
}

func (b *Book) validate() error {
	if !b.Genre.IsValid() {
		return ErrInvalidGenre
	}
	if !b.Price.IsPositive() {
		return ErrInvalidPrice
	}
	if b.QuantityInStock < 0 {
		return ErrInvalidStock
	}
	return nil
}
