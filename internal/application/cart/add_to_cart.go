package cart

import (
	"context"

	"github.com/xiebiao/bookshop/internal/domain/cart"
)

// AddToCartUseCase 加入购物车用例
type AddToCartUseCase struct {
	cartService cart.Service
}

// NewAddToCartUseCase 创建加入购物车用例
func NewAddToCartUseCase(cartService cart.Service) *AddToCartUseCase {
	return &AddToCartUseCase{cartService: cartService}
}

// AddToCartRequest 加入购物车请求DTO
type AddToCartRequest struct {
	UserID   uint
	BookID   uint
	Quantity int
}

// Execute 加入购物车,返回最新的购物车
// 同一本书再次加入时累加数量,库存按累加后的数量校验
func (uc *AddToCartUseCase) Execute(ctx context.Context, req AddToCartRequest) (*CartResponse, error) {
	c, err := uc.cartService.AddToCart(ctx, req.UserID, req.BookID, req.Quantity)
	if err != nil {
		return nil, err
	}
	return ToCartResponse(c), nil
}
