package handler

import (
	"github.com/gin-gonic/gin"

	apppurchase "github.com/xiebiao/bookshop/internal/application/purchase"
	"github.com/xiebiao/bookshop/internal/interface/http/dto"
	"github.com/xiebiao/bookshop/pkg/response"
)

// PurchaseHandler 结账与购买历史HTTP处理器
type PurchaseHandler struct {
	checkout      *apppurchase.CheckoutUseCase
	listPurchases *apppurchase.ListPurchasesUseCase
}

// NewPurchaseHandler 创建购买处理器
func NewPurchaseHandler(
	checkout *apppurchase.CheckoutUseCase,
	listPurchases *apppurchase.ListPurchasesUseCase,
) *PurchaseHandler {
	return &PurchaseHandler{
		checkout:      checkout,
		listPurchases: listPurchases,
	}
}

// Checkout 结账
// @Summary      结账
// @Description  购物车 → 购买记录。单个事务内锁定并扣减库存、调用支付、清空购物车,任一步失败整体回滚
// @Tags         购买
// @Accept       json
// @Produce      json
// @Param        request body dto.CheckoutRequest true "结账信息"
// @Success      201 {object} response.Response{data=apppurchase.PurchaseResponse}
// @Failure      400 {object} response.Response "空购物车或库存不足"
// @Failure      404 {object} response.Response "购物车不存在"
// @Failure      500 {object} response.Response "支付失败"
// @Router       /api/purchases/checkout [post]
func (h *PurchaseHandler) Checkout(c *gin.Context) {
	var req dto.CheckoutRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.checkout.Execute(c.Request.Context(), apppurchase.CheckoutRequest{
		UserID:        req.UserID,
		PaymentMethod: req.PaymentMethod,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Purchase checkout successful.", result)
}

// ListPurchases 购买历史
// @Summary      购买历史
// @Tags         购买
// @Produce      json
// @Param        userId         path  int    true  "用户ID"
// @Param        page           query int    false "页码(从0开始)"
// @Param        size           query int    false "每页大小(默认10,最大100)"
// @Param        sortBy         query string false "purchaseDate|paymentMethod|createdAt|id" default(createdAt)
// @Param        sort-direction query string false "asc|desc" default(desc)
// @Success      200 {object} response.Response{data=response.PageData{list=[]apppurchase.PurchaseResponse}}
// @Router       /api/purchases/{userId} [get]
func (h *PurchaseHandler) ListPurchases(c *gin.Context) {
	userID, ok := pathID(c, "userId")
	if !ok {
		return
	}
	var q dto.PageParams
	if !bindQuery(c, &q) {
		return
	}

	result, err := h.listPurchases.Execute(c.Request.Context(), apppurchase.ListPurchasesRequest{
		UserID:    userID,
		PageQuery: q.ToPageQuery(),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPage(c, "Purchase history retrieved successfully.", result.Items, result.Total, result.Page, result.Size)
}
