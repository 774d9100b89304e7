package reconcile

import (
	"context"
	"errors"
	"testing"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel/trace"

	"github.com/ariefcatur/go-restaurant-orders/internal/orders"
	"github.com/ariefcatur/go-restaurant-orders/internal/tracing"
)

func recordSpans(t *testing.T) *tracetest.SpanRecorder {
	t.Helper()
	shutdown := tracing.Setup("test")
	t.Cleanup(func() { _ = shutdown(context.Background()) })
	rec := tracetest.NewSpanRecorder()
	otel.SetTracerProvider(sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(rec)))
	return rec
}

func TestHandleSettlement_continuesProducerTrace(t *testing.T) {
	rec := recordSpans(t)
	svc, o, v, _ := newService()
	o.On("UpdatePaymentStatus", mock.Anything, "o1", orders.PaymentPaid).Return(true, nil)
	v.On("Invalidate", mock.Anything, "o1").Return(nil)

	m := settlement(t, "o1", "PAID")
	m.Topic, m.Partition, m.Offset = "payments.settled", 2, 41
	m.Headers = []kafkago.Header{{Key: tracing.TraceparentHeader, Value: []byte("00-4bf92f3577b34da6a3ce929d0e0e4736-00f067aa0ba902b7-01")}}

	// the consumer hands the handler a context rebuilt from the headers
	ctx := tracing.ExtractKafkaHeaders(context.Background(), m.Headers)
	require.NoError(t, svc.HandleSettlement(ctx, m))

	spans := rec.Ended()
	require.Len(t, spans, 1)
	s := spans[0]
	assert.Equal(t, "reconcile.HandleSettlement", s.Name())
	assert.Equal(t, trace.SpanKindConsumer, s.SpanKind())
	assert.Equal(t, "4bf92f3577b34da6a3ce929d0e0e4736", s.SpanContext().TraceID().String())
	assert.Equal(t, "00f067aa0ba902b7", s.Parent().SpanID().String())
	assert.True(t, s.Parent().IsRemote())
}

func TestHandleSettlement_failureMarksSpan(t *testing.T) {
	rec := recordSpans(t)
	svc, o, _, _ := newService()
	o.On("UpdatePaymentStatus", mock.Anything, "o1", orders.PaymentPaid).Return(false, errors.New("db down"))

	require.Error(t, svc.HandleSettlement(context.Background(), settlement(t, "o1", "PAID")))

	spans := rec.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, codes.Error, spans[0].Status().Code)
}
