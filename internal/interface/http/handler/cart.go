package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	appcart "github.com/xiebiao/bookshop/internal/application/cart"
	"github.com/xiebiao/bookshop/internal/interface/http/dto"
	"github.com/xiebiao/bookshop/pkg/response"
)

// CartHandler 购物车HTTP处理器
type CartHandler struct {
	addToCart *appcart.AddToCartUseCase
	viewCart  *appcart.ViewCartUseCase
	clearCart *appcart.ClearCartUseCase
}

// NewCartHandler 创建购物车处理器
func NewCartHandler(
	addToCart *appcart.AddToCartUseCase,
	viewCart *appcart.ViewCartUseCase,
	clearCart *appcart.ClearCartUseCase,
) *CartHandler {
	return &CartHandler{
		addToCart: addToCart,
		viewCart:  viewCart,
		clearCart: clearCart,
	}
}

// AddToCart 加入购物车
// @Summary      加入购物车
// @Description  用户没有购物车时自动创建;同一本书累加数量,按累加后的数量校验库存
// @Tags         购物车
// @Accept       json
// @Produce      json
// @Param        request body dto.AddToCartRequest true "加入信息"
// @Success      200 {object} response.Response{data=appcart.CartResponse}
// @Failure      400 {object} response.Response "参数错误或库存不足"
// @Failure      404 {object} response.Response "图书不存在"
// @Router       /api/cart/add [post]
func (h *CartHandler) AddToCart(c *gin.Context) {
	var req dto.AddToCartRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.addToCart.Execute(c.Request.Context(), appcart.AddToCartRequest{
		UserID:   req.UserID,
		BookID:   req.BookID,
		Quantity: req.Quantity,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithMessage(c, http.StatusOK, "Book added to cart successfully.", result)
}

// ViewCart 查看购物车
// @Summary      查看购物车
// @Tags         购物车
// @Produce      json
// @Param        userId path int true "用户ID"
// @Success      200 {object} response.Response{data=appcart.CartResponse}
// @Failure      404 {object} response.Response "购物车不存在"
// @Router       /api/cart/{userId} [get]
func (h *CartHandler) ViewCart(c *gin.Context) {
	userID, ok := pathID(c, "userId")
	if !ok {
		return
	}

	result, err := h.viewCart.Execute(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithMessage(c, http.StatusOK, "View cart successfully.", result)
}

// ClearCart 清空购物车
// @Summary      清空购物车
// @Description  删除全部明细,购物车本身保留;对空购物车幂等
// @Tags         购物车
// @Produce      json
// @Param        userId path int true "用户ID"
// @Success      200 {object} response.Response
// @Failure      404 {object} response.Response "购物车不存在"
// @Router       /api/cart/{userId} [delete]
func (h *CartHandler) ClearCart(c *gin.Context) {
	userID, ok := pathID(c, "userId")
	if !ok {
		return
	}

	if err := h.clearCart.Execute(c.Request.Context(), userID); err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithMessage(c, http.StatusOK, "Cart cleared successfully.", nil)
}
