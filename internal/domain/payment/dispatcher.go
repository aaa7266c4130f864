package payment

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/xiebiao/bookshop/internal/domain/purchase"
	"github.com/xiebiao/bookshop/pkg/circuitbreaker"
	apperrors "github.com/xiebiao/bookshop/pkg/errors"
	"github.com/xiebiao/bookshop/pkg/logger"
	"github.com/xiebiao/bookshop/pkg/metrics"
	"github.com/xiebiao/bookshop/pkg/tracing"
)

var (
	// ErrUnsupportedMethod 没有对应渠道
	ErrUnsupportedMethod = apperrors.New(apperrors.ErrCodeInvalidParams, "Unsupported payment method")

	// ErrPaymentUnavailable 支付渠道熔断
	ErrPaymentUnavailable = apperrors.New(apperrors.ErrCodePaymentError, "Payment service is temporarily unavailable")

	// ErrPaymentFailed 支付渠道返回失败
	ErrPaymentFailed = apperrors.New(apperrors.ErrCodePaymentError, "Payment failed")
)

// Processor 支付处理
// 同步调用,返回error时结账中止
type Processor interface {
	Process(ctx context.Context, p *purchase.Purchase) error
}

// Gateway 单个支付渠道
type Gateway interface {
	Charge(ctx context.Context, p *purchase.Purchase) error
}

// GatewayFunc 函数适配为Gateway
type GatewayFunc func(ctx context.Context, p *purchase.Purchase) error

func (f GatewayFunc) Charge(ctx context.Context, p *purchase.Purchase) error {
	return f(ctx, p)
}

// Gateways 每种支付方式对应的渠道
type Gateways struct {
	Web      Gateway
	USSD     Gateway
	Transfer Gateway
}

// Dispatcher 按支付方式分发到渠道
type Dispatcher struct {
	gateways Gateways
	breaker  *circuitbreaker.CircuitBreaker
}

// NewDispatcher 创建分发器,breaker为nil时不熔断
func NewDispatcher(gateways Gateways, breaker *circuitbreaker.CircuitBreaker) *Dispatcher {
	return &Dispatcher{gateways: gateways, breaker: breaker}
}

// Process 处理支付
func (d *Dispatcher) Process(ctx context.Context, p *purchase.Purchase) error {
	ctx, span := tracing.StartSpan(ctx, "payment", "Dispatcher.Process")
	defer span.End()

	gateway, err := d.route(p.PaymentMethod)
	if err != nil {
		span.RecordError(err)
		return err
	}

	start := time.Now()
	charge := func(ctx context.Context) error {
		return gateway.Charge(ctx, p)
	}
	if d.breaker != nil {
		err = d.breaker.Execute(ctx, charge)
	} else {
		err = charge(ctx)
	}
	metrics.ObservePayment(string(p.PaymentMethod), err, time.Since(start))

	switch {
	case err == nil:
		return nil
	case errors.Is(err, circuitbreaker.ErrOpenState), errors.Is(err, circuitbreaker.ErrTooManyRequests):
		span.RecordError(err)
		return apperrors.WrapCode(err, ErrPaymentUnavailable.Code, ErrPaymentUnavailable.Message)
	case apperrors.IsAppError(err):
		span.RecordError(err)
		return err
	default:
		span.RecordError(err)
		return apperrors.WrapCode(err, ErrPaymentFailed.Code, ErrPaymentFailed.Message)
	}
}

// route 支付方式 → 渠道(穷举)
func (d *Dispatcher) route(method purchase.PaymentMethod) (Gateway, error) {
	var g Gateway
	switch method {
	case purchase.PaymentWeb:
		g = d.gateways.Web
	case purchase.PaymentUSSD:
		g = d.gateways.USSD
	case purchase.PaymentTransfer:
		g = d.gateways.Transfer
	default:
		return nil, ErrUnsupportedMethod
	}
	if g == nil {
		return nil, ErrUnsupportedMethod
	}
	return g, nil
}

// SimulatedGateways 模拟渠道,只记录日志
func SimulatedGateways() Gateways {
	return Gateways{
		Web:      simulated("web"),
		USSD:     simulated("ussd"),
		Transfer: simulated("transfer"),
	}
}

func simulated(channel string) Gateway {
	return GatewayFunc(func(ctx context.Context, p *purchase.Purchase) error {
		logger.L().Info("payment processed",
			zap.String("channel", channel),
			zap.Uint("user_id", p.UserID),
			zap.String("amount", p.Total().StringFixed(2)),
			zap.Int("items", len(p.Items)),
			zap.String("trace_id", tracing.ExtractTraceID(ctx)),
		)
		return nil
	})
}

// BreakerConfig 支付熔断配置
type BreakerConfig struct {
	MaxRequests      uint32
	Interval         time.Duration
	Timeout          time.Duration
	FailureThreshold uint32
}

// NewBreaker 创建支付熔断器,状态变化写日志与指标
func NewBreaker(cfg BreakerConfig) *circuitbreaker.CircuitBreaker {
	threshold := cfg.FailureThreshold
	if threshold == 0 {
		threshold = 5
	}
	return circuitbreaker.NewCircuitBreaker("payment", circuitbreaker.Config{
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: circuitbreaker.ConsecutiveFailures(threshold),
		IsSuccessful: func(err error) bool {
			// 参数类错误不算渠道故障
			return err == nil || (apperrors.IsAppError(err) && apperrors.CodeOf(err) < 50000)
		},
		OnStateChange: func(name string, from, to circuitbreaker.State) {
			logger.L().Warn("circuit breaker state changed",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
			metrics.SetBreakerState(name, int(to))
		},
	})
}
