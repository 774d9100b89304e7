package inventory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/ariefcatur/go-restaurant-orders/internal/events"
	"github.com/ariefcatur/go-restaurant-orders/internal/tracing"
)

func TestImportStock_eventCarriesSpanTraceparent(t *testing.T) {
	shutdown := tracing.Setup("test")
	t.Cleanup(func() { _ = shutdown(context.Background()) })
	rec := tracetest.NewSpanRecorder()
	otel.SetTracerProvider(sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(rec)))

	svc, _, pub := newService(25)
	pub.On("PublishEvent", mock.Anything, mock.Anything).Return(nil)

	ctx, parent := tracing.Start(context.Background(), "POST /dishes/d1/stock/import")
	_, err := svc.ImportStock(ctx, "d1", 5, "req-7")
	parent.End()
	require.NoError(t, err)

	var span sdktrace.ReadOnlySpan
	for _, s := range rec.Ended() {
		if s.Name() == "inventory.ImportStock" {
			span = s
		}
	}
	require.NotNil(t, span)
	assert.Equal(t, parent.SpanContext().TraceID(), span.SpanContext().TraceID())

	env := pub.Calls[0].Arguments.Get(1).(events.Envelope)
	want := "00-" + span.SpanContext().TraceID().String() + "-" + span.SpanContext().SpanID().String() + "-01"
	assert.Equal(t, want, env.TraceID)
}

func TestSetStock_withoutIncomingTraceStartsRoot(t *testing.T) {
	shutdown := tracing.Setup("test")
	t.Cleanup(func() { _ = shutdown(context.Background()) })

	svc, _, pub := newService(25)
	pub.On("PublishEvent", mock.Anything, mock.Anything).Return(nil)

	_, err := svc.SetStock(context.Background(), "d1", 10)
	require.NoError(t, err)

	env := pub.Calls[0].Arguments.Get(1).(events.Envelope)
	assert.Regexp(t, `^00-[0-9a-f]{32}-[0-9a-f]{16}-01$`, env.TraceID)
}
