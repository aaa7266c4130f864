package book

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/xiebiao/bookshop/internal/domain/book"
)

// AddBookUseCase 新增图书用例
// 应用层只负责流程编排,业务规则由领域服务校验
type AddBookUseCase struct {
	bookService book.Service
}

// NewAddBookUseCase 创建新增图书用例
func NewAddBookUseCase(bookService book.Service) *AddBookUseCase {
	return &AddBookUseCase{bookService: bookService}
}

// AddBookRequest 新增图书请求DTO
type AddBookRequest struct {
	Title           string
	Genre           string
	ISBN            string
	Author          string
	PublicationYear int
	Price           decimal.Decimal
	QuantityInStock int
}

// Execute 执行新增图书
func (uc *AddBookUseCase) Execute(ctx context.Context, req AddBookRequest) (*BookResponse, error) {
	genre, err := book.ParseGenre(req.Genre)
	if err != nil {
		return nil, err
	}

	b, err := book.NewBook(req.Title, genre, req.ISBN, req.Author, req.PublicationYear, req.Price, req.QuantityInStock)
	if err != nil {
		return nil, err
	}

	created, err := uc.bookService.AddBook(ctx, b)
	if err != nil {
		return nil, err
	}
	return ToBookResponse(created), nil
}
