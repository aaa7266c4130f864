// notifier 消费结账完成事件并发送通知
// 事件来源由events.driver决定(rabbitmq/kafka)
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/xiebiao/bookshop/internal/domain/purchase"
	"github.com/xiebiao/bookshop/internal/infrastructure/config"
	"github.com/xiebiao/bookshop/internal/infrastructure/messaging"
	"github.com/xiebiao/bookshop/pkg/kafka"
	"github.com/xiebiao/bookshop/pkg/logger"
	"github.com/xiebiao/bookshop/pkg/metrics"
	"github.com/xiebiao/bookshop/pkg/mq"
)

// metricsAddr notifier自身的/metrics端口
const metricsAddr = ":9091"

func main() {
	if err := run(); err != nil {
		log.Fatalf("notifier退出: %v", err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("加载配置失败: %w", err)
	}

	zl, err := logger.New(logger.Options{
		Level:        cfg.Log.Level,
		Format:       cfg.Log.Format,
		Output:       cfg.Log.Output,
		EnableCaller: cfg.Log.EnableCaller,
	})
	if err != nil {
		return fmt.Errorf("初始化日志失败: %w", err)
	}
	defer logger.ReplaceGlobals(zl)()
	defer func() { _ = zl.Sync() }()

	metrics.InitMetrics()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	consume, closeFn, err := newConsumer(cfg)
	if err != nil {
		return err
	}
	defer closeFn()

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{Addr: metricsAddr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return consume(gctx, messaging.LogNotification)
	})
	g.Go(func() error {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	zl.Info("notifier started", zap.String("driver", cfg.Events.Driver))
	return g.Wait()
}

type consumeFunc func(ctx context.Context, h messaging.CompletedHandler) error

// newConsumer 按配置创建消费循环
func newConsumer(cfg *config.Config) (consumeFunc, func(), error) {
	switch cfg.Events.Driver {
	case config.EventsRabbitMQ:
		rc := cfg.Events.RabbitMQ
		consumer, err := mq.NewConsumer(rc.URL, rc.Exchange, "topic", rc.Queue, []string{purchase.RoutingKeyCompleted})
		if err != nil {
			return nil, nil, err
		}
		return func(ctx context.Context, h messaging.CompletedHandler) error {
			return consumer.Consume(ctx, messaging.RabbitMQHandler(h))
		}, func() { _ = consumer.Close() }, nil

	case config.EventsKafka:
		kc := cfg.Events.Kafka
		reader, err := kafka.NewClient(kc.Brokers).NewReader(kc.Topic, kc.GroupID)
		if err != nil {
			return nil, nil, err
		}
		return func(ctx context.Context, h messaging.CompletedHandler) error {
			return kafka.Consume(ctx, reader, messaging.KafkaHandler(h))
		}, func() { _ = reader.Close() }, nil

	default:
		return nil, nil, fmt.Errorf("events.driver为%q,notifier需要rabbitmq或kafka", cfg.Events.Driver)
	}
}
