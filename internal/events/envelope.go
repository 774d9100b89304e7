package events

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

const (
	EventStockSet             = "StockSet"
	EventStockImported        = "StockImported"
	EventPaymentLinkRequested = "PaymentLinkRequested"
	EventPaymentSettled       = "PaymentSettled"
)

const Version = 1

type Envelope struct {
	EventID       string          `json:"event_id"`
	EventType     string          `json:"event_type"`
	EventVersion  int             `json:"event_version"`
	OccurredAt    time.Time       `json:"occurred_at"`
	Producer      string          `json:"producer"`
	TraceID       string          `json:"trace_id,omitempty"`
	CorrelationID string          `json:"correlation_id,omitempty"` // dish or order id
	Payload       json.RawMessage `json:"payload"`
}

// New wraps payload in a v1 envelope with a fresh event id.
func New(eventType, producer, correlationID string, payload any) (Envelope, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return Envelope{}, err
	}
	return Envelope{
		EventID:       uuid.NewString(),
		EventType:     eventType,
		EventVersion:  Version,
		OccurredAt:    time.Now().UTC(),
		Producer:      producer,
		CorrelationID: correlationID,
		Payload:       b,
	}, nil
}

// ---- payloads ----

type StockChangedPayload struct {
	DishID      string `json:"dish_id"`
	Previous    int    `json:"previous"`
	Stock       int    `json:"stock"`
	Quantity    int    `json:"quantity,omitempty"` // imports only
	StockStatus string `json:"stock_status"`
	RequestID   string `json:"request_id,omitempty"`
}

type PaymentLinkRequestedPayload struct {
	OrderID    string `json:"order_id"`
	PaymentURL string `json:"payment_url"`
}

type PaymentSettledPayload struct {
	OrderID       string `json:"order_id"`
	PaymentStatus string `json:"payment_status"` // PAID | PAYMENT_UNPAID
	Reference     string `json:"reference,omitempty"`
}
