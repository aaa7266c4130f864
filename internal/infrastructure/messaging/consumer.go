package messaging

import (
	"context"
	"encoding/json"
	"fmt"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/xiebiao/bookshop/internal/domain/purchase"
	"github.com/xiebiao/bookshop/pkg/kafka"
	"github.com/xiebiao/bookshop/pkg/logger"
	"github.com/xiebiao/bookshop/pkg/metrics"
	"github.com/xiebiao/bookshop/pkg/mq"
)

// CompletedHandler 处理结账完成事件
type CompletedHandler func(ctx context.Context, evt purchase.CompletedEvent) error

// RabbitMQHandler 适配为mq.Handler,只处理purchase.completed
func RabbitMQHandler(h CompletedHandler) mq.Handler {
	return func(ctx context.Context, routingKey string, body []byte) error {
		if routingKey != purchase.RoutingKeyCompleted {
			logger.L().Warn("unexpected routing key, message dropped", zap.String("routing_key", routingKey))
			return nil
		}
		err := dispatch(ctx, body, h)
		metrics.IncConsumed("rabbitmq", err)
		return err
	}
}

// KafkaHandler 适配为kafka.Handler
func KafkaHandler(h CompletedHandler) kafka.Handler {
	return func(ctx context.Context, msg kafkago.Message) error {
		err := dispatch(ctx, msg.Value, h)
		metrics.IncConsumed("kafka", err)
		return err
	}
}

func dispatch(ctx context.Context, body []byte, h CompletedHandler) error {
	var evt purchase.CompletedEvent
	if err := json.Unmarshal(body, &evt); err != nil {
		return fmt.Errorf("decode purchase event: %w", err)
	}
	return h(ctx, evt)
}

// LogNotification 以日志形式发送购买通知
func LogNotification(_ context.Context, evt purchase.CompletedEvent) error {
	logger.L().Info("purchase notification",
		zap.String("event_id", evt.EventID),
		zap.Uint("purchase_id", evt.PurchaseID),
		zap.Uint("user_id", evt.UserID),
		zap.String("payment_method", string(evt.PaymentMethod)),
		zap.String("total", evt.Total),
		zap.Int("items", len(evt.Items)),
		zap.Time("occurred_at", evt.OccurredAt),
	)
	return nil
}
