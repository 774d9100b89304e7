package kafka

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ariefcatur/go-restaurant-orders/internal/events"
)

func TestEnvelopeRoundTrip(t *testing.T) {
	env, err := events.New(events.EventStockImported, "api", "dish-1", events.StockChangedPayload{
		DishID: "dish-1", Previous: 25, Stock: 30, Quantity: 5, StockStatus: "SUFFICIENT",
	})
	require.NoError(t, err)

	b, err := Marshal(env)
	require.NoError(t, err)

	got, err := UnmarshalEnvelope(b)
	require.NoError(t, err)
	assert.Equal(t, env.EventID, got.EventID)
	assert.Equal(t, events.EventStockImported, got.EventType)

	p, err := UnwrapPayload[events.StockChangedPayload](got.Payload)
	require.NoError(t, err)
	assert.Equal(t, 30, p.Stock)
	assert.Equal(t, 5, p.Quantity)
}

func TestUnmarshalEnvelope_rejects(t *testing.T) {
	_, err := UnmarshalEnvelope([]byte("{not json"))
	assert.Error(t, err)

	_, err = UnmarshalEnvelope([]byte(`{"event_id":"e1","event_version":2,"payload":{}}`))
	assert.ErrorContains(t, err, "unsupported version 2")
}

func TestUnwrapPayload_badShape(t *testing.T) {
	_, err := UnwrapPayload[events.PaymentSettledPayload]([]byte(`{"order_id":42}`))
	assert.ErrorContains(t, err, "decode payload")
}
