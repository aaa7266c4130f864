package mysql

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/xiebiao/bookshop/internal/domain/cart"
	"github.com/xiebiao/bookshop/internal/domain/shared"
	apperrors "github.com/xiebiao/bookshop/pkg/errors"
)

// cartRepository 购物车仓储实现(MySQL)
// Cart与CartItem是聚合关系,Save时整体同步明细
type cartRepository struct {
	db *gorm.DB
}

// NewCartRepository 创建购物车仓储
func NewCartRepository(db *gorm.DB) cart.Repository {
	return &cartRepository{db: db}
}

// FindByUserID 查询用户购物车,明细按加入顺序并预加载图书
func (r *cartRepository) FindByUserID(ctx context.Context, userID uint) (*cart.Cart, error) {
	return r.find(getDB(ctx, r.db), userID)
}

// LockByUserID 锁定购物车行(FOR UPDATE),必须在事务内调用
// 明细预加载不加锁,明细只经由已锁定的购物车修改
func (r *cartRepository) LockByUserID(ctx context.Context, userID uint) (*cart.Cart, error) {
	return r.find(getDB(ctx, r.db).Clauses(clause.Locking{Strength: "UPDATE"}), userID)
}

func (r *cartRepository) find(db *gorm.DB, userID uint) (*cart.Cart, error) {
	var model CartModel
	err := db.
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("cart_items.id ASC")
		}).
		Preload("Items.Book").
		Where("user_id = ?", userID).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, cart.NotFoundForUser(userID)
		}
		return nil, apperrors.WrapCode(err, apperrors.ErrCodeDatabaseError, "查询购物车失败")
	}
	return toCartEntity(&model), nil
}

// Create 创建购物车
func (r *cartRepository) Create(ctx context.Context, c *cart.Cart) error {
	model := &CartModel{
		UserID:    c.UserID,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
	if err := getDB(ctx, r.db).Omit("Items").Create(model).Error; err != nil {
		if isDuplicateError(err) {
			return cart.ErrCartExists
		}
		return apperrors.WrapCode(err, apperrors.ErrCodeDatabaseError, "创建购物车失败")
	}

	c.ID = model.ID
	c.CreatedAt = model.CreatedAt
	c.UpdatedAt = model.UpdatedAt
	for i := range c.Items {
		c.Items[i].CartID = c.ID
	}
	return nil
}

// Save 同步购物车明细
// 1. 新明细(ID=0)插入并回填ID
// 2. 已有明细更新数量
// 3. 不在列表中的明细删除
func (r *cartRepository) Save(ctx context.Context, c *cart.Cart) error {
	if c.ID == 0 {
		return r.Create(ctx, c)
	}

	err := getDB(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		now := time.Now()
		result := tx.Model(&CartModel{}).Where("id = ?", c.ID).Update("updated_at", now)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return cart.NotFoundForUser(c.UserID)
		}

		kept := make([]uint, 0, len(c.Items))
		for i := range c.Items {
			item := &c.Items[i]
			item.CartID = c.ID

			if item.ID == 0 {
				model := &CartItemModel{
					CartID:    c.ID,
					BookID:    item.BookID,
					Quantity:  item.Quantity,
					CreatedAt: item.CreatedAt,
					UpdatedAt: item.UpdatedAt,
				}
				if err := tx.Create(model).Error; err != nil {
					return err
				}
				item.ID = model.ID
			} else {
				err := tx.Model(&CartItemModel{}).
					Where("id = ? AND cart_id = ?", item.ID, c.ID).
					Updates(map[string]any{"quantity": item.Quantity, "updated_at": now}).Error
				if err != nil {
					return err
				}
			}
			kept = append(kept, item.ID)
		}

		del := tx.Where("cart_id = ?", c.ID)
		if len(kept) > 0 {
			del = del.Where("id NOT IN ?", kept)
		}
		return del.Delete(&CartItemModel{}).Error
	})
	if err != nil {
		if apperrors.IsAppError(err) {
			return err
		}
		return apperrors.WrapCode(err, apperrors.ErrCodeDatabaseError, "保存购物车失败")
	}
	return nil
}

func toCartEntity(model *CartModel) *cart.Cart {
	c := &cart.Cart{
		Base: shared.Base{
			ID:        model.ID,
			CreatedAt: model.CreatedAt,
			UpdatedAt: model.UpdatedAt,
		},
		UserID: model.UserID,
		Items:  make([]cart.CartItem, len(model.Items)),
	}
	for i, item := range model.Items {
		c.Items[i] = cart.CartItem{
			Base: shared.Base{
				ID:        item.ID,
				CreatedAt: item.CreatedAt,
				UpdatedAt: item.UpdatedAt,
			},
			CartID:   item.CartID,
			BookID:   item.BookID,
			Quantity: item.Quantity,
		}
		if item.Book != nil {
			c.Items[i].Book = toBookEntity(item.Book)
		}
	}
	return c
}
