package mysql

import (
	"context"

	"gorm.io/gorm"

	"github.com/xiebiao/bookshop/internal/domain/purchase"
	"github.com/xiebiao/bookshop/internal/domain/shared"
	apperrors "github.com/xiebiao/bookshop/pkg/errors"
)

var purchaseSortColumns = map[string]string{
	"id":            "id",
	"purchaseDate":  "purchase_date",
	"paymentMethod": "payment_method",
	"createdAt":     "created_at",
}

// purchaseRepository 购买记录仓储实现(MySQL)
// 查询时Preload明细与图书,避免N+1
type purchaseRepository struct {
	db *gorm.DB
}

// NewPurchaseRepository 创建购买记录仓储
func NewPurchaseRepository(db *gorm.DB) purchase.Repository {
	return &purchaseRepository{db: db}
}

// Create 创建购买记录(含明细)
// 必须在结账事务中调用
func (r *purchaseRepository) Create(ctx context.Context, p *purchase.Purchase) error {
	model := toPurchaseModel(p)

	if err := getDB(ctx, r.db).Create(model).Error; err != nil {
		return apperrors.WrapCode(err, apperrors.ErrCodeDatabaseError, "创建购买记录失败")
	}

	p.ID = model.ID
	p.CreatedAt = model.CreatedAt
	p.UpdatedAt = model.UpdatedAt
	for i := range p.Items {
		p.Items[i].ID = model.Items[i].ID
		p.Items[i].PurchaseID = model.ID
	}
	return nil
}

// ListByUserID 分页查询用户购买历史
func (r *purchaseRepository) ListByUserID(ctx context.Context, userID uint, q shared.PageQuery) ([]*purchase.Purchase, int64, error) {
	q = q.Normalize()
	query := getDB(ctx, r.db).Model(&PurchaseModel{}).Where("user_id = ?", userID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apperrors.WrapCode(err, apperrors.ErrCodeDatabaseError, "查询购买记录总数失败")
	}

	var models []PurchaseModel
	err := query.
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("purchase_items.id ASC")
		}).
		Preload("Items.Book").
		Order(orderClause(purchaseSortColumns, q.SortBy, q.Ascending)).
		Limit(q.Size).
		Offset(q.Offset()).
		Find(&models).Error
	if err != nil {
		return nil, 0, apperrors.WrapCode(err, apperrors.ErrCodeDatabaseError, "查询购买记录失败")
	}

	purchases := make([]*purchase.Purchase, len(models))
	for i := range models {
		purchases[i] = toPurchaseEntity(&models[i])
	}
	return purchases, total, nil
}

func toPurchaseModel(p *purchase.Purchase) *PurchaseModel {
	model := &PurchaseModel{
		UserID:        p.UserID,
		PurchaseDate:  p.PurchaseDate,
		PaymentMethod: string(p.PaymentMethod),
		Items:         make([]PurchaseItemModel, len(p.Items)),
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
	for i, item := range p.Items {
		model.Items[i] = PurchaseItemModel{
			BookID:    item.BookID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			CreatedAt: item.CreatedAt,
			UpdatedAt: item.UpdatedAt,
		}
	}
	return model
}

func toPurchaseEntity(model *PurchaseModel) *purchase.Purchase {
	p := &purchase.Purchase{
		Base: shared.Base{
			ID:        model.ID,
			CreatedAt: model.CreatedAt,
			UpdatedAt: model.UpdatedAt,
		},
		UserID:        model.UserID,
		PurchaseDate:  model.PurchaseDate,
		PaymentMethod: purchase.PaymentMethod(model.PaymentMethod),
		Items:         make([]purchase.PurchaseItem, len(model.Items)),
	}
	for i, item := range model.Items {
		p.Items[i] = purchase.PurchaseItem{
			Base: shared.Base{
				ID:        item.ID,
				CreatedAt: item.CreatedAt,
				UpdatedAt: item.UpdatedAt,
			},
			PurchaseID: item.PurchaseID,
			BookID:     item.BookID,
			Quantity:   item.Quantity,
			UnitPrice:  item.UnitPrice,
		}
		if item.Book != nil {
			p.Items[i].Book = toBookEntity(item.Book)
		}
	}
	return p
}
