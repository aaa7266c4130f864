package book

import (
	"context"

	"github.com/xiebiao/bookshop/internal/domain/book"
	"github.com/xiebiao/bookshop/internal/domain/shared"
)

// SearchBooksUseCase 图书搜索用例
type SearchBooksUseCase struct {
	bookService book.Service
}

// NewSearchBooksUseCase 创建图书搜索用例
func NewSearchBooksUseCase(bookService book.Service) *SearchBooksUseCase {
	return &SearchBooksUseCase{bookService: bookService}
}

// SearchBooksRequest 搜索请求DTO
type SearchBooksRequest struct {
	Term string
	shared.PageQuery
}

// Execute 执行搜索
func (uc *SearchBooksUseCase) Execute(ctx context.Context, req SearchBooksRequest) (*PageResult[*BookResponse], error) {
	page := req.PageQuery.Normalize()

	books, total, err := uc.bookService.SearchBooks(ctx, book.SearchParams{
		Term:      req.Term,
		PageQuery: page,
	})
	if err != nil {
		return nil, err
	}

	items := make([]*BookResponse, len(books))
	for i, b := range books {
		items[i] = ToBookResponse(b)
	}
	return &PageResult[*BookResponse]{
		Items: items,
		Total: total,
		Page:  page.Page,
		Size:  page.Size,
	}, nil
}
