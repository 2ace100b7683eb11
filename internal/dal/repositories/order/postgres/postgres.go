package postgresrepo

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/abhinav28birajdar/TownTap-sub006/internal/dal/postgres"
	"github.com/abhinav28birajdar/TownTap-sub006/internal/service/models/currency"
	"github.com/abhinav28birajdar/TownTap-sub006/internal/service/models/order"
)

// OrderDal represents the order data access layer model.
type OrderDal struct {
	ID                       string
	CustomerRef              string
	ServiceRef               string
	Category                 string
	AddOnRefs                []string
	ScheduledTime            time.Time
	EstimatedDurationMinutes int
	Priority                 string
	AssignedWorkerID         *string
	Status                   string
	PriceCents               int64
	PriceCurrency            string
	Notes                    string
	Seq                      int64
	CreatedAt                time.Time
	UpdatedAt                time.Time
}

// ToModel converts OrderDal to the service layer Order model.
func (o *OrderDal) ToModel() (*order.Order, error) {
	cur, err := currency.ParseCurrency(o.PriceCurrency)
	if err != nil {
		return nil, err
	}
	status, err := order.ParseStatus(o.Status)
	if err != nil {
		return nil, err
	}
	priority, err := order.ParsePriority(o.Priority)
	if err != nil {
		return nil, err
	}

	assignedWorker := ""
	if o.AssignedWorkerID != nil {
		assignedWorker = *o.AssignedWorkerID
	}

	return &order.Order{
		ID:                       o.ID,
		CustomerRef:              o.CustomerRef,
		ServiceRef:               o.ServiceRef,
		Category:                 o.Category,
		AddOnRefs:                o.AddOnRefs,
		ScheduledTime:            o.ScheduledTime,
		EstimatedDurationMinutes: o.EstimatedDurationMinutes,
		Priority:                 priority,
		AssignedWorkerID:         assignedWorker,
		Status:                   status,
		PriceCents:               o.PriceCents,
		PriceCurrency:            cur,
		Notes:                    o.Notes,
		Seq:                      uint64(o.Seq),
		CreatedAt:                o.CreatedAt,
		UpdatedAt:                o.UpdatedAt,
	}, nil
}

// OrderDalFromModel converts the service layer Order model to OrderDal.
func OrderDalFromModel(o *order.Order) *OrderDal {
	var assignedWorker *string
	if o.AssignedWorkerID != "" {
		w := o.AssignedWorkerID
		assignedWorker = &w
	}

	return &OrderDal{
		ID:                       o.ID,
		CustomerRef:              o.CustomerRef,
		ServiceRef:               o.ServiceRef,
		Category:                 o.Category,
		AddOnRefs:                o.AddOnRefs,
		ScheduledTime:            o.ScheduledTime,
		EstimatedDurationMinutes: o.EstimatedDurationMinutes,
		Priority:                 o.Priority.String(),
		AssignedWorkerID:         assignedWorker,
		Status:                   o.Status.String(),
		PriceCents:               o.PriceCents,
		PriceCurrency:            o.PriceCurrency.String(),
		Notes:                    o.Notes,
		Seq:                      int64(o.Seq),
		CreatedAt:                o.CreatedAt,
		UpdatedAt:                o.UpdatedAt,
	}
}

// PostgresOrderRepository journals order state into the orders table.
type PostgresOrderRepository struct {
	client *postgres.Client
}

// NewPostgresOrderRepository creates a new order journal repository.
func NewPostgresOrderRepository(client *postgres.Client) *PostgresOrderRepository {
	return &PostgresOrderRepository{
		client: client,
	}
}

// Save upserts the current state of an order.
func (r *PostgresOrderRepository) Save(ctx context.Context, o order.Order) error {
	dal := OrderDalFromModel(&o)

	query, args, err := sq.Insert("orders").
		Columns(
			"id",
			"customer_ref",
			"service_ref",
			"category",
			"add_on_refs",
			"scheduled_time",
			"estimated_duration_minutes",
			"priority",
			"assigned_worker_id",
			"status",
			"price_cents",
			"price_currency",
			"notes",
			"seq",
			"created_at",
			"updated_at",
		).
		Values(
			dal.ID,
			dal.CustomerRef,
			dal.ServiceRef,
			dal.Category,
			dal.AddOnRefs,
			dal.ScheduledTime,
			dal.EstimatedDurationMinutes,
			dal.Priority,
			dal.AssignedWorkerID,
			dal.Status,
			dal.PriceCents,
			dal.PriceCurrency,
			dal.Notes,
			dal.Seq,
			dal.CreatedAt,
			dal.UpdatedAt,
		).
		Suffix(`ON CONFLICT (id) DO UPDATE SET
			assigned_worker_id = EXCLUDED.assigned_worker_id,
			status = EXCLUDED.status,
			updated_at = EXCLUDED.updated_at`).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build order upsert query: %w", err)
	}

	_, err = r.client.Pool().Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to upsert order: %w", err)
	}

	return nil
}

// List returns every journaled order, including terminal ones.
func (r *PostgresOrderRepository) List(ctx context.Context) ([]order.Order, error) {
	query, args, err := sq.Select(
		"id",
		"customer_ref",
		"service_ref",
		"category",
		"add_on_refs",
		"scheduled_time",
		"estimated_duration_minutes",
		"priority",
		"assigned_worker_id",
		"status",
		"price_cents",
		"price_currency",
		"notes",
		"seq",
		"created_at",
		"updated_at",
	).
		From("orders").
		OrderBy("seq ASC").
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build order select query: %w", err)
	}

	rows, err := r.client.Pool().Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}
	defer rows.Close()

	var orders []order.Order
	for rows.Next() {
		var dal OrderDal
		err := rows.Scan(
			&dal.ID,
			&dal.CustomerRef,
			&dal.ServiceRef,
			&dal.Category,
			&dal.AddOnRefs,
			&dal.ScheduledTime,
			&dal.EstimatedDurationMinutes,
			&dal.Priority,
			&dal.AssignedWorkerID,
			&dal.Status,
			&dal.PriceCents,
			&dal.PriceCurrency,
			&dal.Notes,
			&dal.Seq,
			&dal.CreatedAt,
			&dal.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}

		model, err := dal.ToModel()
		if err != nil {
			return nil, fmt.Errorf("failed to convert order %s: %w", dal.ID, err)
		}
		orders = append(orders, *model)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating orders: %w", err)
	}

	return orders, nil
}
