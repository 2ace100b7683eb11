package event

import "time"

// Event is one entry of the dispatch audit trail, published to RabbitMQ
// after every successful lifecycle operation.
type Event struct {
	OrderID    string    `json:"order_id"`
	WorkerID   string    `json:"worker_id,omitempty"`
	Action     string    `json:"action"`
	Status     string    `json:"status"`
	Priority   string    `json:"priority"`
	PriceCents int64     `json:"price_cents"`
	OccurredAt time.Time `json:"occurred_at"`
}
