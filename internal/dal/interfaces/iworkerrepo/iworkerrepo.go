package iworkerrepo

import (
	"context"

	"github.com/abhinav28birajdar/TownTap-sub006/internal/service/models/worker"
)

// IWorkerRepository is an interface for the worker journal repository.
type IWorkerRepository interface {
	// Save upserts the current state of a worker.
	Save(ctx context.Context, w worker.Worker) error

	// List returns every journaled worker.
	List(ctx context.Context) ([]worker.Worker, error)
}
