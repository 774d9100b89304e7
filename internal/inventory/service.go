package inventory

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/ariefcatur/go-restaurant-orders/internal/events"
	"github.com/ariefcatur/go-restaurant-orders/internal/redisx"
	"github.com/ariefcatur/go-restaurant-orders/internal/stock"
	"github.com/ariefcatur/go-restaurant-orders/internal/tracing"
)

var ErrDuplicateImport = errors.New("duplicate import")

type DishStore interface {
	GetDish(ctx context.Context, id string) (stock.DishStock, error)
	SaveDish(ctx context.Context, d stock.DishStock) (stock.DishStock, error)
}

type Deduper interface {
	Seen(ctx context.Context, key string) (bool, error)
	Forget(ctx context.Context, key string) error
}

type EventPublisher interface {
	PublishEvent(ctx context.Context, env events.Envelope) error
}

// Service loads a dish, applies a ledger operation, persists the result and
// announces it on dish.stock.changed. Dedup and Events are optional.
type Service struct {
	Store       DishStore
	Dedup       Deduper
	Events      EventPublisher
	ServiceName string
	Log         *zap.Logger
}

func (s *Service) SetStock(ctx context.Context, dishID string, newStock int) (_ stock.DishStock, err error) {
	ctx, span := tracing.Start(ctx, "inventory.SetStock", trace.WithAttributes(
		attribute.String("dish.id", dishID),
		attribute.Int("stock.new", newStock),
	))
	defer func() { tracing.End(span, err) }()

	cur, err := s.Store.GetDish(ctx, dishID)
	if err != nil {
		return stock.DishStock{}, err
	}
	next, err := stock.SetStock(cur, newStock)
	if err != nil {
		return stock.DishStock{}, err
	}
	saved, err := s.Store.SaveDish(ctx, next)
	if err != nil {
		return stock.DishStock{}, err
	}

	s.publish(ctx, events.EventStockSet, events.StockChangedPayload{
		DishID:      saved.ID,
		Previous:    cur.Stock,
		Stock:       saved.Stock,
		StockStatus: string(saved.Status()),
	})
	return saved, nil
}

// ImportStock adds quantity to the dish. A non-empty requestID is claimed in
// Redis first; a replay returns ErrDuplicateImport without touching stock.
func (s *Service) ImportStock(ctx context.Context, dishID string, quantity int, requestID string) (_ stock.DishStock, err error) {
	ctx, span := tracing.Start(ctx, "inventory.ImportStock", trace.WithAttributes(
		attribute.String("dish.id", dishID),
		attribute.Int("stock.quantity", quantity),
	))
	defer func() { tracing.End(span, err) }()

	cur, err := s.Store.GetDish(ctx, dishID)
	if err != nil {
		return stock.DishStock{}, err
	}
	next, err := stock.ImportStock(cur, quantity)
	if err != nil {
		return stock.DishStock{}, err
	}

	var claim string
	if requestID != "" && s.Dedup != nil {
		claim = fmt.Sprintf(redisx.KeyIdemStockImport, dishID, requestID)
		seen, err := s.Dedup.Seen(ctx, claim)
		if err != nil {
			return stock.DishStock{}, err
		}
		if seen {
			return stock.DishStock{}, ErrDuplicateImport
		}
	}

	saved, err := s.Store.SaveDish(ctx, next)
	if err != nil {
		if claim != "" {
			if ferr := s.Dedup.Forget(ctx, claim); ferr != nil {
				s.Log.Warn("release import claim", zap.String("key", claim), zap.Error(ferr))
			}
		}
		return stock.DishStock{}, err
	}

	s.publish(ctx, events.EventStockImported, events.StockChangedPayload{
		DishID:      saved.ID,
		Previous:    cur.Stock,
		Stock:       saved.Stock,
		Quantity:    quantity,
		StockStatus: string(saved.Status()),
		RequestID:   requestID,
	})
	return saved, nil
}

// publish is best effort: the mutation is already persisted.
func (s *Service) publish(ctx context.Context, eventType string, p events.StockChangedPayload) {
	if s.Events == nil {
		return
	}
	env, err := events.New(eventType, s.ServiceName, p.DishID, p)
	if err == nil {
		env.TraceID = tracing.Traceparent(ctx)
		err = s.Events.PublishEvent(ctx, env)
	}
	if err != nil {
		s.Log.Warn("publish stock event", zap.String("event_type", eventType), zap.String("dish_id", p.DishID), zap.Error(err))
	}
}
