package dto

// CheckoutRequest 结账请求
type CheckoutRequest struct {
	UserID        uint   `json:"userId" binding:"required" example:"7"`
	PaymentMethod string `json:"paymentMethod" binding:"required,payment_method" example:"WEB"`
}
