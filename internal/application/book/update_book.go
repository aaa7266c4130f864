package book

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/xiebiao/bookshop/internal/domain/book"
)

// UpdateBookUseCase 更新图书用例
type UpdateBookUseCase struct {
	bookService book.Service
}

// NewUpdateBookUseCase 创建更新图书用例
func NewUpdateBookUseCase(bookService book.Service) *UpdateBookUseCase {
	return &UpdateBookUseCase{bookService: bookService}
}

// UpdateBookRequest 更新图书请求DTO
// QuantityInStock为nil时保持原库存
type UpdateBookRequest struct {
	ID              uint
	Title           string
	Genre           string
	ISBN            string
	Author          string
	PublicationYear int
	Price           decimal.Decimal
	QuantityInStock *int
}

// Execute 执行更新
func (uc *UpdateBookUseCase) Execute(ctx context.Context, req UpdateBookRequest) (*BookResponse, error) {
	genre, err := book.ParseGenre(req.Genre)
	if err != nil {
		return nil, err
	}

	updated, err := uc.bookService.UpdateBook(ctx, req.ID, book.Details{
		Title:           req.Title,
		Genre:           genre,
		ISBN:            req.ISBN,
		Author:          req.Author,
		PublicationYear: req.PublicationYear,
		Price:           req.Price,
		QuantityInStock: req.QuantityInStock,
	})
	if err != nil {
		return nil, err
	}
	return ToBookResponse(updated), nil
}
