package postgresrepo

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/abhinav28birajdar/TownTap-sub006/internal/dal/postgres"
	"github.com/abhinav28birajdar/TownTap-sub006/internal/service/models/worker"
)

// WorkerDal represents the worker data access layer model.
type WorkerDal struct {
	ID             string
	Name           string
	Skills         []string
	Available      bool
	CurrentOrderID *string
}

// ToModel converts WorkerDal to the service layer Worker model.
func (w *WorkerDal) ToModel() *worker.Worker {
	currentOrder := ""
	if w.CurrentOrderID != nil {
		currentOrder = *w.CurrentOrderID
	}

	return &worker.Worker{
		ID:             w.ID,
		Name:           w.Name,
		Skills:         w.Skills,
		Available:      w.Available,
		CurrentOrderID: currentOrder,
	}
}

// WorkerDalFromModel converts the service layer Worker model to WorkerDal.
func WorkerDalFromModel(w *worker.Worker) *WorkerDal {
	var currentOrder *string
	if w.CurrentOrderID != "" {
		id := w.CurrentOrderID
		currentOrder = &id
	}

	return &WorkerDal{
		ID:             w.ID,
		Name:           w.Name,
		Skills:         w.Skills,
		Available:      w.Available,
		CurrentOrderID: currentOrder,
	}
}

// PostgresWorkerRepository journals worker state into the workers table.
type PostgresWorkerRepository struct {
	client *postgres.Client
}

// NewPostgresWorkerRepository creates a new worker journal repository.
func NewPostgresWorkerRepository(client *postgres.Client) *PostgresWorkerRepository {
	return &PostgresWorkerRepository{
		client: client,
	}
}

// Save upserts the current state of a worker.
func (r *PostgresWorkerRepository) Save(ctx context.Context, w worker.Worker) error {
	dal := WorkerDalFromModel(&w)

	query, args, err := sq.Insert("workers").
		Columns(
			"id",
			"name",
			"skills",
			"available",
			"current_order_id",
		).
		Values(
			dal.ID,
			dal.Name,
			dal.Skills,
			dal.Available,
			dal.CurrentOrderID,
		).
		Suffix(`ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			skills = EXCLUDED.skills,
			available = EXCLUDED.available,
			current_order_id = EXCLUDED.current_order_id`).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build worker upsert query: %w", err)
	}

	_, err = r.client.Pool().Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to upsert worker: %w", err)
	}

	return nil
}

// List returns every journaled worker.
func (r *PostgresWorkerRepository) List(ctx context.Context) ([]worker.Worker, error) {
	query, args, err := sq.Select(
		"id",
		"name",
		"skills",
		"available",
		"current_order_id",
	).
		From("workers").
		OrderBy("name ASC").
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build worker select query: %w", err)
	}

	rows, err := r.client.Pool().Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query workers: %w", err)
	}
	defer rows.Close()

	var workers []worker.Worker
	for rows.Next() {
		var dal WorkerDal
		err := rows.Scan(
			&dal.ID,
			&dal.Name,
			&dal.Skills,
			&dal.Available,
			&dal.CurrentOrderID,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan worker: %w", err)
		}
		workers = append(workers, *dal.ToModel())
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating workers: %w", err)
	}

	return workers, nil
}
