package redisx

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Dedup remembers keys for a TTL. Seen reports whether the key was already
// claimed, claiming it atomically when it was not.
type Dedup struct {
	rdb redis.Cmdable
	ttl time.Duration
}

func NewDedup(rdb redis.Cmdable, ttl time.Duration) *Dedup {
	return &Dedup{rdb: rdb, ttl: ttl}
}

func (d *Dedup) Seen(ctx context.Context, key string) (bool, error) {
	ok, err := d.rdb.SetNX(ctx, key, "1", d.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("dedup %s: %w", key, err)
	}
	return !ok, nil
}

// Forget releases a claim so a failed operation can be retried.
func (d *Dedup) Forget(ctx context.Context, key string) error {
	if err := d.rdb.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("dedup forget %s: %w", key, err)
	}
	return nil
}
