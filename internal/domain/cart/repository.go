package cart

import (
	"context"
)

// Repository 购物车仓储接口
type Repository interface {
	// FindByUserID 查询用户购物车(含明细,按加入顺序)
	// 不存在返回 NotFoundForUser(userID)
	FindByUserID(ctx context.Context, userID uint) (*Cart, error)

	// LockByUserID 同FindByUserID,事务内锁定购物车行(SELECT ... FOR UPDATE)
	// 同一用户的加购、清空、结账在此串行
	LockByUserID(ctx context.Context, userID uint) (*Cart, error)

	// Create 创建购物车,回填ID
	Create(ctx context.Context, cart *Cart) error

	// Save 保存购物车及明细
	// 新明细插入、已有明细更新数量、不在列表中的明细删除
	Save(ctx context.Context, cart *Cart) error
}
