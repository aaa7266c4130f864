// Package metrics 基于Prometheus的指标收集
//
// 指标在InitMetrics中注册到默认Registry,/metrics端点通过promhttp暴露。
// 所有记录函数在未初始化时为空操作,单元测试无需注册指标。
//
// 命名规范：
//   - Counter以_total结尾
//   - Histogram以单位结尾(_seconds)
package metrics

import (
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// 结账结果标签
const (
	CheckoutSuccess           = "success"
	CheckoutNotFound          = "not_found"
	CheckoutEmptyCart         = "empty_cart"
	CheckoutInsufficientStock = "insufficient_stock"
	CheckoutPaymentFailed     = "payment_failed"
	CheckoutError             = "error"
)

var (
	initOnce sync.Once

	// HTTP请求相关指标

	// HTTPRequestsTotal 标签：method、path(路由模板)、status
	HTTPRequestsTotal *prometheus.CounterVec

	// HTTPRequestDuration 标签：method、path
	HTTPRequestDuration *prometheus.HistogramVec

	// HTTPRequestsInProgress 正在处理的HTTP请求数
	HTTPRequestsInProgress prometheus.Gauge

	// 结账指标

	// CheckoutsTotal 标签：result
	CheckoutsTotal *prometheus.CounterVec

	// CheckoutDuration 结账耗时(含事务)
	CheckoutDuration prometheus.Histogram

	// CheckoutsInProgress 正在处理的结账数
	CheckoutsInProgress prometheus.Gauge

	// BooksSoldTotal 售出图书件数
	BooksSoldTotal prometheus.Counter

	// 支付指标

	// PaymentsTotal 标签：method、result(success/failure)
	PaymentsTotal *prometheus.CounterVec

	// PaymentDuration 标签：method
	PaymentDuration *prometheus.HistogramVec

	// CircuitBreakerState 0=CLOSED, 1=OPEN, 2=HALF_OPEN
	CircuitBreakerState *prometheus.GaugeVec

	// 缓存与消息

	// BookCacheRequestsTotal 标签：result(hit/miss/error)
	BookCacheRequestsTotal *prometheus.CounterVec

	// MessagesPublishedTotal 标签：transport、topic、result
	MessagesPublishedTotal *prometheus.CounterVec

	// MessagesConsumedTotal 标签：transport、result
	MessagesConsumedTotal *prometheus.CounterVec
)

// InitMetrics 注册全部指标,可重复调用
func InitMetrics() {
	initOnce.Do(func() {
		HTTPRequestsTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "HTTP请求总数",
			},
			[]string{"method", "path", "status"},
		)

		HTTPRequestDuration = promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP请求耗时（秒）",
				Buckets: []float64{0.001, 0.01, 0.1, 0.5, 1, 5, 10},
			},
			[]string{"method", "path"},
		)

		HTTPRequestsInProgress = promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "http_requests_in_progress",
				Help: "正在处理的HTTP请求数",
			},
		)

		CheckoutsTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "checkouts_total",
				Help: "结账总数(按结果)",
			},
			[]string{"result"},
		)

		CheckoutDuration = promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "checkout_duration_seconds",
				Help:    "结账耗时（秒）",
				Buckets: []float64{0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
			},
		)

		CheckoutsInProgress = promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "checkouts_in_progress",
				Help: "正在处理的结账数",
			},
		)

		BooksSoldTotal = promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "books_sold_total",
				Help: "售出图书件数",
			},
		)

		PaymentsTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "payments_total",
				Help: "支付请求总数",
			},
			[]string{"method", "result"},
		)

		PaymentDuration = promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "payment_duration_seconds",
				Help:    "支付渠道调用耗时（秒）",
				Buckets: []float64{0.001, 0.01, 0.1, 0.5, 1, 5},
			},
			[]string{"method"},
		)

		CircuitBreakerState = promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "circuit_breaker_state",
				Help: "熔断器状态（0=CLOSED, 1=OPEN, 2=HALF_OPEN）",
			},
			[]string{"name"},
		)

		BookCacheRequestsTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "book_cache_requests_total",
				Help: "图书缓存读取次数",
			},
			[]string{"result"},
		)

		MessagesPublishedTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "messages_published_total",
				Help: "消息发布总数",
			},
			[]string{"transport", "topic", "result"},
		)

		MessagesConsumedTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "messages_consumed_total",
				Help: "消息消费总数",
			},
			[]string{"transport", "result"},
		)
	})
}

// ObserveHTTPRequest 记录一次HTTP请求
func ObserveHTTPRequest(method, path string, status int, d time.Duration) {
	if HTTPRequestsTotal == nil {
		return
	}
	HTTPRequestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	HTTPRequestDuration.WithLabelValues(method, path).Observe(d.Seconds())
}

// HTTPInFlight 正在处理的请求数+1,返回-1函数
func HTTPInFlight() func() {
	if HTTPRequestsInProgress == nil {
		return func() {}
	}
	HTTPRequestsInProgress.Inc()
	return HTTPRequestsInProgress.Dec
}

// CheckoutInFlight 正在处理的结账数+1,返回-1函数
func CheckoutInFlight() func() {
	if CheckoutsInProgress == nil {
		return func() {}
	}
	CheckoutsInProgress.Inc()
	return CheckoutsInProgress.Dec
}

// ObserveCheckout 记录结账结果,booksSold仅成功时累加
func ObserveCheckout(result string, d time.Duration, booksSold int) {
	if CheckoutsTotal == nil {
		return
	}
	CheckoutsTotal.WithLabelValues(result).Inc()
	CheckoutDuration.Observe(d.Seconds())
	if result == CheckoutSuccess && booksSold > 0 {
		BooksSoldTotal.Add(float64(booksSold))
	}
}

// ObservePayment 记录一次支付调用
func ObservePayment(method string, err error, d time.Duration) {
	if PaymentsTotal == nil {
		return
	}
	result := "success"
	if err != nil {
		result = "failure"
	}
	PaymentsTotal.WithLabelValues(method, result).Inc()
	PaymentDuration.WithLabelValues(method).Observe(d.Seconds())
}

// SetBreakerState 记录熔断器状态
func SetBreakerState(name string, state int) {
	if CircuitBreakerState == nil {
		return
	}
	CircuitBreakerState.WithLabelValues(name).Set(float64(state))
}

// IncBookCache 记录缓存命中情况
func IncBookCache(result string) {
	if BookCacheRequestsTotal == nil {
		return
	}
	BookCacheRequestsTotal.WithLabelValues(result).Inc()
}

// IncPublished 记录消息发布
func IncPublished(transport, topic string, err error) {
	if MessagesPublishedTotal == nil {
		return
	}
	MessagesPublishedTotal.WithLabelValues(transport, topic, resultLabel(err)).Inc()
}

// IncConsumed 记录消息消费
func IncConsumed(transport string, err error) {
	if MessagesConsumedTotal == nil {
		return
	}
	MessagesConsumedTotal.WithLabelValues(transport, resultLabel(err)).Inc()
}

func resultLabel(err error) string {
	if err != nil {
		return "failure"
	}
	return "success"
}
