package cart

import (
	apperrors "github.com/xiebiao/bookshop/pkg/errors"
)

var (
	// ErrCartNotFound 购物车不存在
	ErrCartNotFound = apperrors.New(apperrors.ErrCodeCartNotFound, "Cart not found.")

	// ErrInvalidQuantity 数量必须为正
	ErrInvalidQuantity = apperrors.New(apperrors.ErrCodeInvalidParams, "Quantity must be at least 1")

	// ErrInsufficientStock 加入购物车时库存不足
	ErrInsufficientStock = apperrors.New(apperrors.ErrCodeInsufficientStock, "Insufficient stock.")
)

// NotFoundForUser 指定用户的购物车不存在
func NotFoundForUser(userID uint) *apperrors.AppError {
	return apperrors.Newf(apperrors.ErrCodeCartNotFound, "Cart not found for user: %d", userID)
}

// ErrCartExists 并发创建时用户已有购物车
var ErrCartExists = apperrors.New(apperrors.ErrCodeDuplicateEntry, "Cart already exists")
