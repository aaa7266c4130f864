package purchase

import (
	"context"
	"time"

	"github.com/xiebiao/bookshop/internal/domain/shared"
)

// Repository 购买记录仓储接口
// 只提供创建与查询,购买记录不可修改
type Repository interface {
	// Create 创建购买记录(含明细),回填ID
	Create(ctx context.Context, p *Purchase) error

	// ListByUserID 分页查询用户购买历史
	ListByUserID(ctx context.Context, userID uint, q shared.PageQuery) ([]*Purchase, int64, error)
}

// CompletedEvent 结账完成事件
type CompletedEvent struct {
	EventID       string          `json:"event_id"`
	PurchaseID    uint            `json:"purchase_id"`
	UserID        uint            `json:"user_id"`
	PaymentMethod PaymentMethod   `json:"payment_method"`
	Total         string          `json:"total"`
	Items         []CompletedItem `json:"items"`
	OccurredAt    time.Time       `json:"occurred_at"`
}

// CompletedItem 事件中的明细
type CompletedItem struct {
	BookID    uint   `json:"book_id"`
	Quantity  int    `json:"quantity"`
	UnitPrice string `json:"unit_price"`
}

// RoutingKeyCompleted 结账完成事件的路由键/主题
const RoutingKeyCompleted = "purchase.completed"

// NewCompletedEvent 由购买记录构建事件
func NewCompletedEvent(eventID string, p *Purchase, occurredAt time.Time) CompletedEvent {
	items := make([]CompletedItem, len(p.Items))
	for i, item := range p.Items {
		items[i] = CompletedItem{
			BookID:    item.BookID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice.StringFixed(2),
		}
	}
	return CompletedEvent{
		EventID:       eventID,
		PurchaseID:    p.ID,
		UserID:        p.UserID,
		PaymentMethod: p.PaymentMethod,
		Total:         p.Total().StringFixed(2),
		Items:         items,
		OccurredAt:    occurredAt,
	}
}

// EventPublisher 购买事件发布者
type EventPublisher interface {
	PublishCompleted(ctx context.Context, evt CompletedEvent) error
}

// NopPublisher 不发布事件
type NopPublisher struct{}

func (NopPublisher) PublishCompleted(context.Context, CompletedEvent) error { return nil }
