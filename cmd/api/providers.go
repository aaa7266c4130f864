package main

import (
	"context"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/xiebiao/bookshop/internal/domain/book"
	"github.com/xiebiao/bookshop/internal/domain/cart"
	"github.com/xiebiao/bookshop/internal/domain/payment"
	"github.com/xiebiao/bookshop/internal/domain/purchase"
	"github.com/xiebiao/bookshop/internal/domain/shared"
	"github.com/xiebiao/bookshop/internal/infrastructure/config"
	"github.com/xiebiao/bookshop/internal/infrastructure/messaging"
	"github.com/xiebiao/bookshop/internal/infrastructure/persistence/memory"
	"github.com/xiebiao/bookshop/internal/infrastructure/persistence/mysql"
	"github.com/xiebiao/bookshop/internal/infrastructure/persistence/redis"
	"github.com/xiebiao/bookshop/internal/interface/http/middleware"
	"github.com/xiebiao/bookshop/internal/interface/http/router"
	"github.com/xiebiao/bookshop/pkg/kafka"
	"github.com/xiebiao/bookshop/pkg/logger"
	"github.com/xiebiao/bookshop/pkg/mq"
)

// storage 按配置选择的存储实现
type storage struct {
	Tx        shared.Transactor
	Books     book.Repository
	Carts     cart.Repository
	Purchases purchase.Repository
}

// provideStorage mysql或memory
func provideStorage(cfg *config.Config) (*storage, func(), error) {
	if cfg.Database.Driver == config.DriverMemory {
		store := memory.NewStore()
		books, carts, purchases := store.Repositories()
		logger.L().Warn("using in-memory storage, data will be lost on restart")
		return &storage{Tx: store, Books: books, Carts: carts, Purchases: purchases}, func() {}, nil
	}

	db, err := mysql.NewDB(cfg)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
	return &storage{
		Tx:        mysql.NewTxManager(db),
		Books:     mysql.NewBookRepository(db),
		Carts:     mysql.NewCartRepository(db),
		Purchases: mysql.NewPurchaseRepository(db),
	}, cleanup, nil
}

// provideBookCache redis未启用时不缓存
func provideBookCache(cfg *config.Config) (book.Cache, func(), error) {
	if !cfg.Redis.Enabled {
		return book.NopCache{}, func() {}, nil
	}

	client, err := redis.NewClient(cfg)
	if err != nil {
		return nil, nil, err
	}
	return redis.NewBookCache(client, cfg.Redis.BookCacheTTL), func() { _ = client.Close() }, nil
}

// provideEventPublisher 结账事件发布(none/rabbitmq/kafka)
func provideEventPublisher(cfg *config.Config) (purchase.EventPublisher, func(), error) {
	switch cfg.Events.Driver {
	case config.EventsRabbitMQ:
		pub, err := mq.NewPublisher(cfg.Events.RabbitMQ.URL, cfg.Events.RabbitMQ.Exchange, "topic")
		if err != nil {
			return nil, nil, err
		}
		logger.L().Info("purchase events enabled", zap.String("driver", "rabbitmq"))
		return messaging.NewRabbitMQPublisher(pub), func() { _ = pub.Close() }, nil

	case config.EventsKafka:
		writer, err := kafka.NewClient(cfg.Events.Kafka.Brokers).NewWriter(cfg.Events.Kafka.Topic)
		if err != nil {
			return nil, nil, err
		}
		pub := messaging.NewKafkaPublisher(writer, cfg.Events.Kafka.Topic)
		logger.L().Info("purchase events enabled", zap.String("driver", "kafka"))
		return pub, func() { _ = pub.Close() }, nil

	default:
		return purchase.NopPublisher{}, func() {}, nil
	}
}

// providePaymentProcessor 模拟渠道 + 熔断
func providePaymentProcessor(cfg *config.Config) payment.Processor {
	b := cfg.Payment.Breaker
	return payment.NewDispatcher(payment.SimulatedGateways(), payment.NewBreaker(payment.BreakerConfig{
		MaxRequests:      b.MaxRequests,
		Interval:         b.Interval,
		Timeout:          b.Timeout,
		FailureThreshold: b.FailureThreshold,
	}))
}

// provideRouterOptions 限流与swagger开关
func provideRouterOptions(ctx context.Context, cfg *config.Config) router.Options {
	opts := router.Options{DisableSwagger: cfg.Server.Mode == gin.ReleaseMode}
	if cfg.Server.RateLimit.RPS > 0 {
		opts.RateLimiter = middleware.NewRateLimiter(ctx, cfg.Server.RateLimit.RPS, cfg.Server.RateLimit.Burst)
	}
	return opts
}
