package redisx

import "time"

const (
	// Stock import replay guard: idem:stock:import:{dish_id}:{idempotency_key} -> "1"
	KeyIdemStockImport = "idem:stock:import:%s:%s"

	// Dedup event processing: dedup:{service}:{event_id}
	KeyDedup = "dedup:%s:%s"

	// Cached order detail: order_view:{order_id} -> JSON of orders.Order
	KeyOrderView = "order_view:%s"
)

var (
	TTLIdempotency = 24 * time.Hour
	TTLOrderView   = 5 * time.Minute
	TTLDedup       = 48 * time.Hour
)
