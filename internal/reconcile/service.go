package reconcile

import (
	"context"
	"fmt"

	kafkago "github.com/segmentio/kafka-go"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/ariefcatur/go-restaurant-orders/internal/events"
	"github.com/ariefcatur/go-restaurant-orders/internal/kafka"
	"github.com/ariefcatur/go-restaurant-orders/internal/orders"
	"github.com/ariefcatur/go-restaurant-orders/internal/redisx"
	"github.com/ariefcatur/go-restaurant-orders/internal/tracing"
)

type OrderStore interface {
	UpdatePaymentStatus(ctx context.Context, id string, to orders.PaymentStatus) (bool, error)
}

type Deduper interface {
	Seen(ctx context.Context, key string) (bool, error)
	Forget(ctx context.Context, key string) error
}

type Invalidator interface {
	Invalidate(ctx context.Context, orderID string) error
}

// Service applies gateway settlements to stored orders. It is the only
// writer of payment status.
type Service struct {
	Orders      OrderStore
	Dedup       Deduper
	Views       Invalidator
	ServiceName string
	Log         *zap.Logger
}

// HandleSettlement is installed as the consumer handler for order.payment.settled.
func (s *Service) HandleSettlement(ctx context.Context, m kafkago.Message) (err error) {
	ctx, span := tracing.Start(ctx, "reconcile.HandleSettlement", trace.WithSpanKind(trace.SpanKindConsumer),
		trace.WithAttributes(
			attribute.String("messaging.destination.name", m.Topic),
			attribute.Int("messaging.kafka.partition", m.Partition),
			attribute.Int64("messaging.kafka.offset", m.Offset),
		))
	defer func() { tracing.End(span, err) }()

	env, err := kafka.UnmarshalEnvelope(m.Value)
	if err != nil {
		// a poison message would block the partition forever
		s.Log.Error("drop undecodable settlement", zap.Int64("offset", m.Offset), zap.Error(err))
		return nil
	}
	if env.EventType != events.EventPaymentSettled {
		return nil
	}

	dkey := fmt.Sprintf(redisx.KeyDedup, s.ServiceName, env.EventID)
	seen, err := s.Dedup.Seen(ctx, dkey)
	if err != nil {
		return err
	}
	if seen {
		return nil
	}

	if err := s.apply(ctx, env); err != nil {
		if ferr := s.Dedup.Forget(ctx, dkey); ferr != nil {
			s.Log.Warn("release settlement claim", zap.String("key", dkey), zap.Error(ferr))
		}
		return err
	}
	return nil
}

func (s *Service) apply(ctx context.Context, env events.Envelope) error {
	p, err := kafka.UnwrapPayload[events.PaymentSettledPayload](env.Payload)
	if err != nil {
		s.Log.Error("drop settlement with bad payload", zap.String("event_id", env.EventID), zap.Error(err))
		return nil
	}
	trace.SpanFromContext(ctx).SetAttributes(attribute.String("order.id", p.OrderID))
	log := s.Log.With(
		zap.String("order_id", p.OrderID),
		zap.String("payment_status", p.PaymentStatus),
		zap.String("trace_id", trace.SpanContextFromContext(ctx).TraceID().String()),
	)

	to := orders.PaymentStatus(p.PaymentStatus)
	if to != orders.PaymentPaid && to != orders.PaymentUnpaid {
		log.Warn("ignore settlement with unsupported status")
		return nil
	}

	changed, err := s.Orders.UpdatePaymentStatus(ctx, p.OrderID, to)
	if err != nil {
		return fmt.Errorf("settle order %s: %w", p.OrderID, err)
	}
	if !changed {
		log.Info("settlement does not advance payment status")
		return nil
	}

	if err := s.Views.Invalidate(ctx, p.OrderID); err != nil {
		log.Warn("invalidate order view", zap.Error(err))
	}
	log.Info("payment status updated", zap.String("reference", p.Reference))
	return nil
}
