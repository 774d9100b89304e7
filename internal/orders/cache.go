package orders

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/ariefcatur/go-restaurant-orders/internal/redisx"
)

type Reader interface {
	GetOrder(ctx context.Context, id string) (Order, error)
}

type ViewCache interface {
	Get(ctx context.Context, key string, out any) (bool, error)
	Set(ctx context.Context, key string, v any) error
	Delete(ctx context.Context, key string) error
}

// CachedReader serves GetOrder from the view cache and fills it on a miss.
// Cache failures fall through to the store.
type CachedReader struct {
	next  Reader
	cache ViewCache
	log   *zap.Logger
}

func NewCachedReader(next Reader, cache ViewCache, log *zap.Logger) *CachedReader {
	return &CachedReader{next: next, cache: cache, log: log}
}

func ViewKey(orderID string) string { return fmt.Sprintf(redisx.KeyOrderView, orderID) }

func (c *CachedReader) GetOrder(ctx context.Context, id string) (Order, error) {
	key := ViewKey(id)

	var o Order
	hit, err := c.cache.Get(ctx, key, &o)
	if err != nil {
		c.log.Warn("order view cache read", zap.String("order_id", id), zap.Error(err))
	}
	if hit {
		return o, nil
	}

	o, err = c.next.GetOrder(ctx, id)
	if err != nil {
		return Order{}, err
	}
	if err := c.cache.Set(ctx, key, o); err != nil {
		c.log.Warn("order view cache write", zap.String("order_id", id), zap.Error(err))
	}
	return o, nil
}

func (c *CachedReader) Invalidate(ctx context.Context, id string) error {
	return c.cache.Delete(ctx, ViewKey(id))
}
