package cart

import (
	"context"

	"github.com/xiebiao/bookshop/internal/domain/cart"
)

// ClearCartUseCase 清空购物车用例
type ClearCartUseCase struct {
	cartService cart.Service
}

// NewClearCartUseCase 创建清空购物车用例
func NewClearCartUseCase(cartService cart.Service) *ClearCartUseCase {
	return &ClearCartUseCase{cartService: cartService}
}

// Execute 清空购物车
func (uc *ClearCartUseCase) Execute(ctx context.Context, userID uint) error {
	return uc.cartService.ClearCart(ctx, userID)
}
