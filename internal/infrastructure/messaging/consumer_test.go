package messaging

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/bookshop/internal/domain/purchase"
)

func TestRabbitMQHandler(t *testing.T) {
	evt := sampleEvent()
	body, err := json.Marshal(evt)
	require.NoError(t, err)

	t.Run("解码并处理", func(t *testing.T) {
		var got purchase.CompletedEvent
		h := RabbitMQHandler(func(_ context.Context, e purchase.CompletedEvent) error {
			got = e
			return nil
		})

		require.NoError(t, h(context.Background(), purchase.RoutingKeyCompleted, body))
		assert.Equal(t, evt.EventID, got.EventID)
		assert.Equal(t, evt.Total, got.Total)
	})

	t.Run("其他routing key忽略", func(t *testing.T) {
		called := false
		h := RabbitMQHandler(func(context.Context, purchase.CompletedEvent) error {
			called = true
			return nil
		})

		require.NoError(t, h(context.Background(), "purchase.refunded", body))
		assert.False(t, called)
	})

	t.Run("消息体损坏", func(t *testing.T) {
		h := RabbitMQHandler(LogNotification)
		assert.Error(t, h(context.Background(), purchase.RoutingKeyCompleted, []byte("{")))
	})
}

func TestKafkaHandler(t *testing.T) {
	evt := sampleEvent()
	body, err := json.Marshal(evt)
	require.NoError(t, err)

	boom := errors.New("smtp down")
	h := KafkaHandler(func(context.Context, purchase.CompletedEvent) error { return boom })
	assert.ErrorIs(t, h(context.Background(), kafkago.Message{Value: body}), boom)

	assert.NoError(t, KafkaHandler(LogNotification)(context.Background(), kafkago.Message{Value: body}))
}
