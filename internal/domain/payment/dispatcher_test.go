package payment

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/bookshop/internal/domain/purchase"
	apperrors "github.com/xiebiao/bookshop/pkg/errors"
)

func newPurchase(method purchase.PaymentMethod) *purchase.Purchase {
	return purchase.NewPurchase(1, method, time.Now(), nil)
}

func TestDispatcher_Process(t *testing.T) {
	var charged []string
	record := func(name string) Gateway {
		return GatewayFunc(func(context.Context, *purchase.Purchase) error {
			charged = append(charged, name)
			return nil
		})
	}
	d := NewDispatcher(Gateways{Web: record("web"), USSD: record("ussd"), Transfer: record("transfer")}, nil)

	t.Run("按支付方式路由", func(t *testing.T) {
		charged = nil
		require.NoError(t, d.Process(context.Background(), newPurchase(purchase.PaymentWeb)))
		require.NoError(t, d.Process(context.Background(), newPurchase(purchase.PaymentUSSD)))
		require.NoError(t, d.Process(context.Background(), newPurchase(purchase.PaymentTransfer)))
		assert.Equal(t, []string{"web", "ussd", "transfer"}, charged)
	})

	t.Run("未知支付方式", func(t *testing.T) {
		err := d.Process(context.Background(), newPurchase("CASH"))
		assert.ErrorIs(t, err, ErrUnsupportedMethod)
	})

	t.Run("渠道未配置", func(t *testing.T) {
		partial := NewDispatcher(Gateways{Web: record("web")}, nil)
		err := partial.Process(context.Background(), newPurchase(purchase.PaymentUSSD))
		assert.ErrorIs(t, err, ErrUnsupportedMethod)
	})
}

func TestDispatcher_GatewayFailure(t *testing.T) {
	failing := GatewayFunc(func(context.Context, *purchase.Purchase) error {
		return errors.New("gateway timeout")
	})
	d := NewDispatcher(Gateways{Web: failing}, nil)

	err := d.Process(context.Background(), newPurchase(purchase.PaymentWeb))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrPaymentFailed)
	assert.Equal(t, 500, apperrors.GetAppError(err).HTTPStatus())
}

func TestDispatcher_BreakerOpens(t *testing.T) {
	calls := 0
	failing := GatewayFunc(func(context.Context, *purchase.Purchase) error {
		calls++
		return errors.New("connection refused")
	})
	breaker := NewBreaker(BreakerConfig{
		MaxRequests:      1,
		Interval:         time.Minute,
		Timeout:          time.Minute,
		FailureThreshold: 2,
	})
	d := NewDispatcher(Gateways{Web: failing}, breaker)

	for i := 0; i < 2; i++ {
		err := d.Process(context.Background(), newPurchase(purchase.PaymentWeb))
		assert.ErrorIs(t, err, ErrPaymentFailed)
	}

	err := d.Process(context.Background(), newPurchase(purchase.PaymentWeb))
	assert.ErrorIs(t, err, ErrPaymentUnavailable)
	assert.Equal(t, 2, calls, "熔断后不再调用渠道")
}

func TestNewBreaker_ClientErrorsDoNotTrip(t *testing.T) {
	rejecting := GatewayFunc(func(context.Context, *purchase.Purchase) error {
		return apperrors.New(apperrors.ErrCodeInvalidParams, "card declined")
	})
	d := NewDispatcher(Gateways{Web: rejecting}, NewBreaker(BreakerConfig{
		MaxRequests:      1,
		Interval:         time.Minute,
		Timeout:          time.Minute,
		FailureThreshold: 1,
	}))

	for i := 0; i < 3; i++ {
		err := d.Process(context.Background(), newPurchase(purchase.PaymentWeb))
		assert.Equal(t, apperrors.ErrCodeInvalidParams, apperrors.CodeOf(err))
	}
}

func TestSimulatedGateways(t *testing.T) {
	d := NewDispatcher(SimulatedGateways(), nil)
	for _, m := range purchase.PaymentMethods {
		assert.NoError(t, d.Process(context.Background(), newPurchase(m)), m)
	}
}
