package workerpool

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/abhinav28birajdar/TownTap-sub006/internal/dal/interfaces/iworkerrepo"
	"github.com/abhinav28birajdar/TownTap-sub006/internal/service/models/worker"
	"github.com/google/uuid"
)

// WorkerPool tracks workers and their availability. Reserve is an atomic
// check-and-set under the pool lock, so two concurrent dispatch attempts can
// never both hold the same worker.
type WorkerPool struct {
	mu      sync.Mutex
	workers map[string]*worker.Worker

	journal iworkerrepo.IWorkerRepository
}

// option is a function that configures the WorkerPool.
type option func(*WorkerPool)

// MustNewWorkerPool creates a new WorkerPool.
func MustNewWorkerPool(opts ...option) *WorkerPool {
	p := &WorkerPool{
		workers: make(map[string]*worker.Worker),
	}
	for _, opt := range opts {
		opt(p)
	}

	return p
}

// WithJournal sets the write-through journal repository for the WorkerPool.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithJournal(journal iworkerrepo.IWorkerRepository) option {
	return func(p *WorkerPool) {
		p.journal = journal
	}
}

// Load seeds the pool from the journal. Called once at startup.
func (p *WorkerPool) Load(ctx context.Context) error {
	if p.journal == nil {
		return nil
	}

	workers, err := p.journal.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to load workers from journal: %w", err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	for i := range workers {
		w := workers[i]
		p.workers[w.ID] = &w
	}

	return nil
}

// Register adds a worker to the pool. A missing id is assigned; new workers
// start available.
func (p *WorkerPool) Register(ctx context.Context, w worker.Worker) (worker.Worker, error) {
	if w.ID == "" {
		w.ID = uuid.NewString()
	}
	w.Available = true
	w.CurrentOrderID = ""

	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.persist(ctx, w); err != nil {
		return worker.Worker{}, err
	}
	p.workers[w.ID] = &w

	return w, nil
}

// Get returns the worker with the given id.
func (p *WorkerPool) Get(ctx context.Context, id string) (worker.Worker, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	w, ok := p.workers[id]
	if !ok {
		return worker.Worker{}, fmt.Errorf("worker %s: %w", id, worker.ErrNotFound)
	}

	return *w, nil
}

// List returns every worker, ordered by name for stable output.
func (p *WorkerPool) List(ctx context.Context) ([]worker.Worker, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	result := make([]worker.Worker, 0, len(p.workers))
	for _, w := range p.workers {
		result = append(result, *w)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Name == result[j].Name {
			return result[i].ID < result[j].ID
		}
		return result[i].Name < result[j].Name
	})

	return result, nil
}

// ListAvailable returns available workers, optionally narrowed to a service
// category. An empty category matches every worker.
func (p *WorkerPool) ListAvailable(ctx context.Context, category string) ([]worker.Worker, error) {
	workers, err := p.List(ctx)
	if err != nil {
		return nil, err
	}

	available := make([]worker.Worker, 0, len(workers))
	for _, w := range workers {
		if w.Available && w.HasSkill(category) {
			available = append(available, w)
		}
	}

	return available, nil
}

// Reserve binds a worker to an order. Fails with worker.ErrUnavailable when
// the worker already holds an active order; the check and the flip happen
// under the same lock.
func (p *WorkerPool) Reserve(ctx context.Context, workerID, orderID string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	w, ok := p.workers[workerID]
	if !ok {
		return fmt.Errorf("worker %s: %w", workerID, worker.ErrNotFound)
	}
	if !w.Available {
		return fmt.Errorf(
			"worker %s already holds order %s: %w",
			workerID, w.CurrentOrderID, worker.ErrUnavailable,
		)
	}

	updated := *w
	updated.Available = false
	updated.CurrentOrderID = orderID

	if err := p.persist(ctx, updated); err != nil {
		return err
	}
	*w = updated

	return nil
}

// Release frees a worker after its order reached a terminal status.
// Idempotent: releasing an already-available worker is a no-op.
func (p *WorkerPool) Release(ctx context.Context, workerID string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	w, ok := p.workers[workerID]
	if !ok {
		return fmt.Errorf("worker %s: %w", workerID, worker.ErrNotFound)
	}
	if w.Available {
		return nil
	}

	updated := *w
	updated.Available = true
	updated.CurrentOrderID = ""

	if err := p.persist(ctx, updated); err != nil {
		return err
	}
	*w = updated

	return nil
}

// persist writes through to the journal before the in-memory commit.
// Callers hold p.mu.
func (p *WorkerPool) persist(ctx context.Context, w worker.Worker) error {
	if p.journal == nil {
		return nil
	}
	if err := p.journal.Save(ctx, w); err != nil {
		return fmt.Errorf("failed to journal worker %s: %w", w.ID, err)
	}

	return nil
}
