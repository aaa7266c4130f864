package cart

import (
	bookapp "github.com/xiebiao/bookshop/internal/application/book"
	"github.com/xiebiao/bookshop/internal/domain/cart"
)

// CartResponse 购物车响应DTO
type CartResponse struct {
	ID        uint                `json:"id" example:"1"`
	UserID    uint                `json:"userId" example:"7"`
	Items     []*CartItemResponse `json:"items"`
	CreatedAt string              `json:"createdAt" example:"2024-01-15 10:30:00"`
	UpdatedAt string              `json:"updatedAt" example:"2024-01-15 10:30:00"`
}

// CartItemResponse 购物车明细
type CartItemResponse struct {
	ID        uint                  `json:"id" example:"1"`
	Book      *bookapp.BookResponse `json:"book"`
	Quantity  int                   `json:"quantity" example:"2"`
	CreatedAt string                `json:"createdAt" example:"2024-01-15 10:30:00"`
	UpdatedAt string                `json:"updatedAt" example:"2024-01-15 10:30:00"`
}

// ToCartResponse 领域实体 → 响应DTO
func ToCartResponse(c *cart.Cart) *CartResponse {
	items := make([]*CartItemResponse, len(c.Items))
	for i, item := range c.Items {
		items[i] = &CartItemResponse{
			ID:        item.ID,
			Book:      bookapp.ToBookResponse(item.Book),
			Quantity:  item.Quantity,
			CreatedAt: item.CreatedAt.Format(bookapp.DateTimeLayout),
			UpdatedAt: item.UpdatedAt.Format(bookapp.DateTimeLayout),
		}
	}
	return &CartResponse{
		ID:        c.ID,
		UserID:    c.UserID,
		Items:     items,
		CreatedAt: c.CreatedAt.Format(bookapp.DateTimeLayout),
		UpdatedAt: c.UpdatedAt.Format(bookapp.DateTimeLayout),
	}
}
