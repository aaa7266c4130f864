package book

import (
	"github.com/xiebiao/bookshop/internal/domain/book"
)

// DateTimeLayout 响应中的时间格式
const DateTimeLayout = "2006-01-02 15:04:05"

// BookResponse 图书响应DTO
// 价格以两位小数字符串返回,避免浮点误差
type BookResponse struct {
	ID              uint   `json:"id" example:"1"`
	Title           string `json:"title" example:"The Go Programming Language"`
	Genre           string `json:"genre" example:"FICTION"`
	ISBN            string `json:"isbn" example:"978-0134190440"`
	Author          string `json:"author" example:"Alan Donovan"`
	PublicationYear int    `json:"publicationYear" example:"2015"`
	Price           string `json:"price" example:"39.99"`
	QuantityInStock int    `json:"quantityInStock" example:"10"`
	CreatedAt       string `json:"createdAt" example:"2024-01-15 10:30:00"`
	UpdatedAt       string `json:"updatedAt" example:"2024-01-15 10:30:00"`
}

// ToBookResponse 领域实体 → 响应DTO,b为nil时返回nil
func ToBookResponse(b *book.Book) *BookResponse {
	if b == nil {
		return nil
	}
	return &BookResponse{
		ID:              b.ID,
		Title:           b.Title,
		Genre:           string(b.Genre),
		ISBN:            b.ISBN,
		Author:          b.Author,
		PublicationYear: b.PublicationYear,
		Price:           b.Price.StringFixed(2),
		QuantityInStock: b.QuantityInStock,
		CreatedAt:       b.CreatedAt.Format(DateTimeLayout),
		UpdatedAt:       b.UpdatedAt.Format(DateTimeLayout),
	}
}

// PageResult 分页结果
type PageResult[T any] struct {
	Items []T
	Total int64
	Page  int
	Size  int
}
