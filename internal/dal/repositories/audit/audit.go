package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/abhinav28birajdar/TownTap-sub006/internal/dal/interfaces/ioutboxrepo"
	"github.com/abhinav28birajdar/TownTap-sub006/internal/dal/rabbitmq"
	"github.com/abhinav28birajdar/TownTap-sub006/internal/service/models/event"
	"github.com/abhinav28birajdar/TownTap-sub006/internal/service/models/outbox"
	"github.com/spf13/viper"
	"github.com/streadway/amqp"
)

// AuditRabbitMQRepository publishes dispatch lifecycle events to RabbitMQ.
// When the broker is unreachable the event is parked in the outbox table and
// the outbox worker retries it.
type AuditRabbitMQRepository struct {
	client     *rabbitmq.Client
	outboxRepo ioutboxrepo.IOutboxRepository
	queue      amqp.Queue
	maxRetries int
}

// NewAuditRabbitMQRepository creates a new dispatch audit repository.
func NewAuditRabbitMQRepository(
	client *rabbitmq.Client,
	outboxRepo ioutboxrepo.IOutboxRepository,
) *AuditRabbitMQRepository {
	queueName := viper.GetString("rabbitmq.audit.queue")
	if queueName == "" {
		queueName = "towntap.dispatch.events"
	}

	queue, err := client.DeclareQueue(rabbitmq.DeclareQueueConfig{
		Name:       queueName,
		Durable:    true,
		Exclusive:  false,
		AutoDelete: false,
	})
	if err != nil {
		panic(err)
	}

	maxRetries := viper.GetInt("rabbitmq.audit.max_retries")
	if maxRetries == 0 {
		maxRetries = 5
	}

	return &AuditRabbitMQRepository{
		client:     client,
		outboxRepo: outboxRepo,
		queue:      queue,
		maxRetries: maxRetries,
	}
}

// LogDispatchEvent publishes one lifecycle event, falling back to the outbox
// on broker failure.
func (r *AuditRabbitMQRepository) LogDispatchEvent(ctx context.Context, evt event.Event) error {
	payload, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("failed to marshal dispatch event: %w", err)
	}

	err = r.client.Channel().Publish(
		"",
		r.queue.Name,
		false,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			Body:        payload,
		},
	)
	if err == nil {
		return nil
	}

	slog.Warn("Failed to publish dispatch event, parking in outbox",
		"order_id", evt.OrderID,
		"action", evt.Action,
		"error", err,
	)

	now := time.Now()
	outboxErr := r.outboxRepo.Insert(ctx, outbox.OutboxMessage{
		QueueName:   r.queue.Name,
		RoutingKey:  r.queue.Name,
		Payload:     payload,
		ContentType: "application/json",
		MaxRetries:  r.maxRetries,
		LastError:   err.Error(),
		CreatedAt:   now,
		UpdatedAt:   now,
		NextRetryAt: now,
	})
	if outboxErr != nil {
		return fmt.Errorf("failed to park dispatch event in outbox: %w", outboxErr)
	}

	return nil
}
