package kafka

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ariefcatur/go-restaurant-orders/internal/events"
)

func TestProducer_PublishEventBuffers(t *testing.T) {
	p := NewProducer([]string{"localhost:9092"}, events.TopicStockChanged, 1, zap.NewNop())
	env, err := events.New(events.EventStockSet, "api", "dish-9", events.StockChangedPayload{DishID: "dish-9", Stock: 3})
	require.NoError(t, err)

	require.NoError(t, p.PublishEvent(context.Background(), env))

	m := <-p.inbox
	assert.Equal(t, []byte("dish-9"), m.Key)
	require.NotEmpty(t, m.Headers)
	assert.Equal(t, HeaderEventType, m.Headers[0].Key)
	assert.Equal(t, []byte(events.EventStockSet), m.Headers[0].Value)
}

func TestProducer_PublishFullInboxHonoursContext(t *testing.T) {
	p := NewProducer([]string{"localhost:9092"}, events.TopicStockChanged, 0, zap.NewNop())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := p.Publish(ctx, []byte("k"), []byte("v"))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestProducer_PublishAfterClose(t *testing.T) {
	p := NewProducer([]string{"localhost:9092"}, events.TopicStockChanged, 1, zap.NewNop())
	p.Close()
	p.Close()

	err := p.Publish(context.Background(), []byte("k"), []byte("v"))
	assert.ErrorIs(t, err, ErrProducerClosed)
}
