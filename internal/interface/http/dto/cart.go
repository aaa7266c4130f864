package dto

// AddToCartRequest 加入购物车请求
type AddToCartRequest struct {
	UserID   uint `json:"userId" binding:"required" example:"7"`
	BookID   uint `json:"bookId" binding:"required" example:"1"`
	Quantity int  `json:"quantity" binding:"min=1" example:"2"`
}
