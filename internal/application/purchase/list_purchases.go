package purchase

import (
	"context"

	bookapp "github.com/xiebiao/bookshop/internal/application/book"
	"github.com/xiebiao/bookshop/internal/domain/purchase"
	"github.com/xiebiao/bookshop/internal/domain/shared"
)

// ListPurchasesUseCase 购买历史用例
type ListPurchasesUseCase struct {
	purchaseRepo purchase.Repository
}

// NewListPurchasesUseCase 创建购买历史用例
func NewListPurchasesUseCase(purchaseRepo purchase.Repository) *ListPurchasesUseCase {
	return &ListPurchasesUseCase{purchaseRepo: purchaseRepo}
}

// ListPurchasesRequest 购买历史查询
// SortBy 支持 purchaseDate、paymentMethod、createdAt、id
type ListPurchasesRequest struct {
	UserID uint
	shared.PageQuery
}

// Execute 分页查询用户购买历史,没有记录时返回空列表
func (uc *ListPurchasesUseCase) Execute(ctx context.Context, req ListPurchasesRequest) (*bookapp.PageResult[*PurchaseResponse], error) {
	page := req.PageQuery.Normalize()
	purchases, total, err := uc.purchaseRepo.ListByUserID(ctx, req.UserID, page)
	if err != nil {
		return nil, err
	}

	items := make([]*PurchaseResponse, len(purchases))
	for i, p := range purchases {
		items[i] = ToPurchaseResponse(p)
	}
	return &bookapp.PageResult[*PurchaseResponse]{
		Items: items,
		Total: total,
		Page:  page.Page,
		Size:  page.Size,
	}, nil
}
