package cart

import (
	"context"

	"github.com/xiebiao/bookshop/internal/domain/cart"
)

// ViewCartUseCase 查看购物车用例
type ViewCartUseCase struct {
	cartService cart.Service
}

// NewViewCartUseCase 创建查看购物车用例
func NewViewCartUseCase(cartService cart.Service) *ViewCartUseCase {
	return &ViewCartUseCase{cartService: cartService}
}

// Execute 查看购物车,用户没有购物车时返回NotFound
func (uc *ViewCartUseCase) Execute(ctx context.Context, userID uint) (*CartResponse, error) {
	c, err := uc.cartService.GetCart(ctx, userID)
	if err != nil {
		return nil, err
	}
	return ToCartResponse(c), nil
}
