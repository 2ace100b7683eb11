package outbox

import (
	"time"
)

// OutboxMessage represents a dispatch event that failed to be published to
// RabbitMQ and awaits a retry by the outbox worker.
type OutboxMessage struct {
	ID           int64
	QueueName    string
	ExchangeName string
	RoutingKey   string
	Payload      []byte
	ContentType  string
	RetryCount   int
	MaxRetries   int
	LastError    string
	CreatedAt    time.Time
	UpdatedAt    time.Time
	NextRetryAt  time.Time
}
