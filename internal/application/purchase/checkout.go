package purchase

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/xiebiao/bookshop/internal/domain/book"
	"github.com/xiebiao/bookshop/internal/domain/cart"
	"github.com/xiebiao/bookshop/internal/domain/payment"
	"github.com/xiebiao/bookshop/internal/domain/purchase"
	"github.com/xiebiao/bookshop/internal/domain/shared"
	apperrors "github.com/xiebiao/bookshop/pkg/errors"
	"github.com/xiebiao/bookshop/pkg/logger"
	"github.com/xiebiao/bookshop/pkg/metrics"
	"github.com/xiebiao/bookshop/pkg/tracing"
)

// CheckoutUseCase 结账用例
// 购物车 → 购买记录,同时扣减库存并清空购物车
//
// 整个流程在一个事务中执行:
//  1. 读取购物车(不存在/为空直接失败)
//  2. 按加入顺序逐行锁定图书、检查并扣减库存
//  3. 生成购买记录快照(单价取锁定时的价格)
//  4. 同步调用支付渠道
//  5. 保存购买记录,清空购物车
//
// 任一步失败整体回滚,不会出现部分扣减。
// 提交后再失效缓存、发布事件,这些失败只记日志。
type CheckoutUseCase struct {
	tx           shared.Transactor
	cartRepo     cart.Repository
	bookRepo     book.Repository
	purchaseRepo purchase.Repository
	payments     payment.Processor
	bookCache    book.Cache
	publisher    purchase.EventPublisher
}

// NewCheckoutUseCase 创建结账用例
// bookCache、publisher可为nil
func NewCheckoutUseCase(
	tx shared.Transactor,
	cartRepo cart.Repository,
	bookRepo book.Repository,
	purchaseRepo purchase.Repository,
	payments payment.Processor,
	bookCache book.Cache,
	publisher purchase.EventPublisher,
) *CheckoutUseCase {
	if bookCache == nil {
		bookCache = book.NopCache{}
	}
	if publisher == nil {
		publisher = purchase.NopPublisher{}
	}
	return &CheckoutUseCase{
		tx:           tx,
		cartRepo:     cartRepo,
		bookRepo:     bookRepo,
		purchaseRepo: purchaseRepo,
		payments:     payments,
		bookCache:    bookCache,
		publisher:    publisher,
	}
}

// CheckoutRequest 结账请求DTO
type CheckoutRequest struct {
	UserID        uint
	PaymentMethod string
}

// Execute 执行结账
func (uc *CheckoutUseCase) Execute(ctx context.Context, req CheckoutRequest) (*PurchaseResponse, error) {
	ctx, span := tracing.StartSpan(ctx, "purchase", "CheckoutUseCase.Execute")
	defer span.End()
	span.SetAttributes(
		attribute.Int64("user.id", int64(req.UserID)),
		attribute.String("payment.method", req.PaymentMethod),
	)

	done := metrics.CheckoutInFlight()
	defer done()
	start := time.Now()

	method, err := purchase.ParsePaymentMethod(req.PaymentMethod)
	if err != nil {
		metrics.ObserveCheckout(metrics.CheckoutError, time.Since(start), 0)
		return nil, err
	}

	var result *purchase.Purchase
	err = uc.tx.Transaction(ctx, func(txCtx context.Context) error {
		// 锁定购物车,同一用户的重复结账在此等待,随后看到已清空的购物车
		c, err := uc.cartRepo.LockByUserID(txCtx, req.UserID)
		if err != nil {
			return err
		}
		if c.IsEmpty() {
			return purchase.ErrEmptyCart
		}

		items := make([]purchase.PurchaseItem, 0, len(c.Items))
		for _, line := range c.Items {
			// SELECT ... FOR UPDATE,其他结账在此等待
			b, err := uc.bookRepo.LockByID(txCtx, line.BookID)
			if err != nil {
				if errors.Is(err, book.ErrBookNotFound) {
					return apperrors.WrapCode(err, purchase.ErrCartBookMissing.Code, purchase.ErrCartBookMissing.Message)
				}
				return err
			}
			if !b.HasStock(line.Quantity) {
				return book.InsufficientStockFor(b.Title)
			}

			updated, err := uc.bookRepo.DecrementStock(txCtx, b.ID, line.Quantity)
			if err != nil {
				if errors.Is(err, book.ErrInsufficientStock) {
					return book.InsufficientStockFor(b.Title)
				}
				return err
			}

			items = append(items, purchase.PurchaseItem{
				BookID:    b.ID,
				Book:      updated,
				Quantity:  line.Quantity,
				UnitPrice: b.Price,
			})
		}

		p := purchase.NewPurchase(req.UserID, method, time.Now(), items)
		if err := uc.payments.Process(txCtx, p); err != nil {
			return err
		}
		if err := uc.purchaseRepo.Create(txCtx, p); err != nil {
			return err
		}

		c.Clear()
		if err := uc.cartRepo.Save(txCtx, c); err != nil {
			return err
		}

		result = p
		return nil
	})
	if err != nil {
		span.RecordError(err)
		metrics.ObserveCheckout(checkoutResult(err), time.Since(start), 0)
		return nil, err
	}

	metrics.ObserveCheckout(metrics.CheckoutSuccess, time.Since(start), result.TotalQuantity())
	span.SetAttributes(attribute.Int64("purchase.id", int64(result.ID)))
	uc.afterCommit(ctx, result)

	return ToPurchaseResponse(result), nil
}

// afterCommit 失效缓存并发布事件,失败只记日志
func (uc *CheckoutUseCase) afterCommit(ctx context.Context, p *purchase.Purchase) {
	ids := make([]uint, len(p.Items))
	for i, item := range p.Items {
		ids[i] = item.BookID
	}
	if err := uc.bookCache.Delete(ctx, ids...); err != nil {
		logger.L().Warn("book cache invalidation failed",
			zap.Uints("book_ids", ids),
			zap.Error(err),
		)
	}

	evt := purchase.NewCompletedEvent(uuid.NewString(), p, time.Now())
	if err := uc.publisher.PublishCompleted(ctx, evt); err != nil {
		logger.L().Error("publish purchase completed event failed",
			zap.String("event_id", evt.EventID),
			zap.Uint("purchase_id", p.ID),
			zap.String("trace_id", tracing.ExtractTraceID(ctx)),
			zap.Error(err),
		)
	}
}

// checkoutResult 错误 → 指标标签
func checkoutResult(err error) string {
	switch apperrors.CodeOf(err) {
	case apperrors.ErrCodeCartNotFound:
		return metrics.CheckoutNotFound
	case apperrors.ErrCodeEmptyCart:
		return metrics.CheckoutEmptyCart
	case apperrors.ErrCodeInsufficientStock:
		return metrics.CheckoutInsufficientStock
	case apperrors.ErrCodePaymentError:
		return metrics.CheckoutPaymentFailed
	default:
		return metrics.CheckoutError
	}
}
