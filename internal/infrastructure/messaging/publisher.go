// Package messaging 购买事件发布(RabbitMQ / Kafka)
package messaging

import (
	"context"
	"strconv"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/xiebiao/bookshop/internal/domain/purchase"
	"github.com/xiebiao/bookshop/pkg/kafka"
	"github.com/xiebiao/bookshop/pkg/metrics"
)

// AMQPPublisher pkg/mq.Publisher的最小接口
type AMQPPublisher interface {
	Publish(ctx context.Context, routingKey string, message any) error
}

// RabbitMQPublisher 通过Topic Exchange发布,routing key为purchase.completed
type RabbitMQPublisher struct {
	pub AMQPPublisher
}

func NewRabbitMQPublisher(pub AMQPPublisher) *RabbitMQPublisher {
	return &RabbitMQPublisher{pub: pub}
}

func (p *RabbitMQPublisher) PublishCompleted(ctx context.Context, evt purchase.CompletedEvent) error {
	err := p.pub.Publish(ctx, purchase.RoutingKeyCompleted, evt)
	metrics.IncPublished("rabbitmq", purchase.RoutingKeyCompleted, err)
	return err
}

// KafkaPublisher 按user_id作为key写入,同一用户的事件落在同一分区
type KafkaPublisher struct {
	writer kafka.MessageWriter
	topic  string
}

func NewKafkaPublisher(writer kafka.MessageWriter, topic string) *KafkaPublisher {
	return &KafkaPublisher{writer: writer, topic: topic}
}

func (p *KafkaPublisher) PublishCompleted(ctx context.Context, evt purchase.CompletedEvent) error {
	err := kafka.PublishJSON(ctx, p.writer, strconv.FormatUint(uint64(evt.UserID), 10), evt)
	metrics.IncPublished("kafka", p.topic, err)
	return err
}

// Close 关闭底层writer
func (p *KafkaPublisher) Close() error {
	if w, ok := p.writer.(*kafkago.Writer); ok {
		return w.Close()
	}
	return nil
}

var (
	_ purchase.EventPublisher = (*RabbitMQPublisher)(nil)
	_ purchase.EventPublisher = (*KafkaPublisher)(nil)
)
