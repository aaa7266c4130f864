package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func histogramCount(t *testing.T, h prometheus.Histogram) uint64 {
	t.Helper()
	m := &dto.Metric{}
	require.NoError(t, h.Write(m))
	return m.GetHistogram().GetSampleCount()
}

func TestInitMetrics(t *testing.T) {
	InitMetrics()
	InitMetrics() // 重复调用不会重复注册

	assert.NotNil(t, HTTPRequestsTotal)
	assert.NotNil(t, CheckoutsTotal)
	assert.NotNil(t, PaymentsTotal)
	assert.NotNil(t, CircuitBreakerState)
}

func TestObserveCheckout(t *testing.T) {
	InitMetrics()

	success := testutil.ToFloat64(CheckoutsTotal.WithLabelValues(CheckoutSuccess))
	sold := testutil.ToFloat64(BooksSoldTotal)
	observed := histogramCount(t, CheckoutDuration)

	ObserveCheckout(CheckoutSuccess, 20*time.Millisecond, 3)
	ObserveCheckout(CheckoutInsufficientStock, 5*time.Millisecond, 2)

	assert.Equal(t, success+1, testutil.ToFloat64(CheckoutsTotal.WithLabelValues(CheckoutSuccess)))
	assert.Equal(t, sold+3, testutil.ToFloat64(BooksSoldTotal), "失败的结账不计入售出件数")
	assert.Equal(t, observed+2, histogramCount(t, CheckoutDuration))
}

func TestObservePayment(t *testing.T) {
	InitMetrics()

	ok := testutil.ToFloat64(PaymentsTotal.WithLabelValues("WEB", "success"))
	failed := testutil.ToFloat64(PaymentsTotal.WithLabelValues("USSD", "failure"))

	ObservePayment("WEB", nil, time.Millisecond)
	ObservePayment("USSD", errors.New("timeout"), time.Millisecond)

	assert.Equal(t, ok+1, testutil.ToFloat64(PaymentsTotal.WithLabelValues("WEB", "success")))
	assert.Equal(t, failed+1, testutil.ToFloat64(PaymentsTotal.WithLabelValues("USSD", "failure")))
}

func TestInFlightGauges(t *testing.T) {
	InitMetrics()

	before := testutil.ToFloat64(HTTPRequestsInProgress)
	done := HTTPInFlight()
	assert.Equal(t, before+1, testutil.ToFloat64(HTTPRequestsInProgress))
	done()
	assert.Equal(t, before, testutil.ToFloat64(HTTPRequestsInProgress))

	before = testutil.ToFloat64(CheckoutsInProgress)
	CheckoutInFlight()()
	assert.Equal(t, before, testutil.ToFloat64(CheckoutsInProgress))
}

func TestSetBreakerState(t *testing.T) {
	InitMetrics()

	SetBreakerState("payment", 1)
	assert.Equal(t, 1.0, testutil.ToFloat64(CircuitBreakerState.WithLabelValues("payment")))
	SetBreakerState("payment", 0)
	assert.Equal(t, 0.0, testutil.ToFloat64(CircuitBreakerState.WithLabelValues("payment")))
}

func TestMessagesAndCache(t *testing.T) {
	InitMetrics()

	pub := testutil.ToFloat64(MessagesPublishedTotal.WithLabelValues("kafka", "purchase.completed", "failure"))
	IncPublished("kafka", "purchase.completed", errors.New("broker down"))
	assert.Equal(t, pub+1, testutil.ToFloat64(MessagesPublishedTotal.WithLabelValues("kafka", "purchase.completed", "failure")))

	con := testutil.ToFloat64(MessagesConsumedTotal.WithLabelValues("rabbitmq", "success"))
	IncConsumed("rabbitmq", nil)
	assert.Equal(t, con+1, testutil.ToFloat64(MessagesConsumedTotal.WithLabelValues("rabbitmq", "success")))

	hit := testutil.ToFloat64(BookCacheRequestsTotal.WithLabelValues("hit"))
	IncBookCache("hit")
	assert.Equal(t, hit+1, testutil.ToFloat64(BookCacheRequestsTotal.WithLabelValues("hit")))
}

func TestObserveHTTPRequest(t *testing.T) {
	InitMetrics()

	before := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("POST", "/api/purchases/checkout", "201"))
	ObserveHTTPRequest("POST", "/api/purchases/checkout", 201, 12*time.Millisecond)
	assert.Equal(t, before+1, testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("POST", "/api/purchases/checkout", "201")))
}
