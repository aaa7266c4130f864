package purchase

import (
	bookapp "github.com/xiebiao/bookshop/internal/application/book"
	"github.com/xiebiao/bookshop/internal/domain/purchase"
)

// PurchaseResponse 购买记录响应DTO
type PurchaseResponse struct {
	ID            uint                    `json:"id" example:"1"`
	UserID        uint                    `json:"userId" example:"7"`
	PurchaseDate  string                  `json:"purchaseDate" example:"2024-01-15 10:30:00"`
	Items         []*PurchaseItemResponse `json:"items"`
	PaymentMethod string                  `json:"paymentMethod" example:"WEB"`
	Total         string                  `json:"total" example:"59.98"`
	CreatedAt     string                  `json:"createdAt" example:"2024-01-15 10:30:00"`
	UpdatedAt     string                  `json:"updatedAt" example:"2024-01-15 10:30:00"`
}

// PurchaseItemResponse 购买明细
type PurchaseItemResponse struct {
	Book      *bookapp.BookResponse `json:"book"`
	Quantity  int                   `json:"quantity" example:"2"`
	UnitPrice string                `json:"unitPrice" example:"29.99"`
	CreatedAt string                `json:"createdAt" example:"2024-01-15 10:30:00"`
	UpdatedAt string                `json:"updatedAt" example:"2024-01-15 10:30:00"`
}

// ToPurchaseResponse 领域实体 → 响应DTO
func ToPurchaseResponse(p *purchase.Purchase) *PurchaseResponse {
	items := make([]*PurchaseItemResponse, len(p.Items))
	for i, item := range p.Items {
		items[i] = &PurchaseItemResponse{
			Book:      bookapp.ToBookResponse(item.Book),
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice.StringFixed(2),
			CreatedAt: item.CreatedAt.Format(bookapp.DateTimeLayout),
			UpdatedAt: item.UpdatedAt.Format(bookapp.DateTimeLayout),
		}
	}
	return &PurchaseResponse{
		ID:            p.ID,
		UserID:        p.UserID,
		PurchaseDate:  p.PurchaseDate.Format(bookapp.DateTimeLayout),
		Items:         items,
		PaymentMethod: string(p.PaymentMethod),
		Total:         p.Total().StringFixed(2),
		CreatedAt:     p.CreatedAt.Format(bookapp.DateTimeLayout),
		UpdatedAt:     p.UpdatedAt.Format(bookapp.DateTimeLayout),
	}
}
