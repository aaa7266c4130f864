package purchase

import (
	apperrors "github.com/xiebiao/bookshop/pkg/errors"
)

var (
	// ErrEmptyCart 空购物车不能结账
	ErrEmptyCart = apperrors.New(apperrors.ErrCodeEmptyCart, "Cannot checkout empty cart.")

	// ErrInvalidPaymentMethod 支付方式不合法
	ErrInvalidPaymentMethod = apperrors.New(apperrors.ErrCodeInvalidParams, "Payment method must be one of WEB, USSD, TRANSFER")

	// ErrCartBookMissing 购物车引用的图书已不存在(数据不一致)
	ErrCartBookMissing = apperrors.New(apperrors.ErrCodeInternal, "Book not found.")
)
