package dispatchsvc

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/abhinav28birajdar/TownTap-sub006/internal/dal/interfaces/iauditrepo"
	"github.com/abhinav28birajdar/TownTap-sub006/internal/service/models/event"
	"github.com/abhinav28birajdar/TownTap-sub006/internal/service/models/order"
	"github.com/abhinav28birajdar/TownTap-sub006/internal/service/models/worker"
	"github.com/abhinav28birajdar/TownTap-sub006/pkg/metrics"
)

// orderStore is the slice of the order store the engine drives.
type orderStore interface {
	Get(ctx context.Context, id string) (order.Order, error)
	Transition(ctx context.Context, id string, kind order.EventKind, workerID string) (order.Order, error)
	List(ctx context.Context, filter *order.QueryOrdersModel) ([]order.Order, error)
}

// workerPool is the slice of the worker pool the engine drives.
type workerPool interface {
	Get(ctx context.Context, id string) (worker.Worker, error)
	ListAvailable(ctx context.Context, category string) ([]worker.Worker, error)
	Reserve(ctx context.Context, workerID, orderID string) error
	Release(ctx context.Context, workerID string) error
}

// Assignment is one successful order-to-worker binding from an auto-dispatch
// batch.
type Assignment struct {
	OrderID  string `json:"orderId"`
	WorkerID string `json:"workerId"`
}

// DispatchService matches waiting orders to available workers and drives
// order lifecycle transitions. Worker reservation happens before the order
// transition; a failed transition rolls the reservation back so no partial
// state survives an error.
type DispatchService struct {
	orders       orderStore
	workers      workerPool
	auditor      iauditrepo.IAuditorRepository
	metrics      *metrics.DispatchMetrics
	strictSkills bool
}

// option is a function that configures the DispatchService.
type option func(*DispatchService)

// MustNewDispatchService creates a new DispatchService.
func MustNewDispatchService(opts ...option) *DispatchService {
	s := &DispatchService{}
	for _, opt := range opts {
		opt(s)
	}
	if s.orders == nil || s.workers == nil {
		panic("dispatchsvc: order store and worker pool are required")
	}

	return s
}

// WithOrderStore sets the order store for the DispatchService.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithOrderStore(orders orderStore) option {
	return func(s *DispatchService) {
		s.orders = orders
	}
}

// WithWorkerPool sets the worker pool for the DispatchService.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithWorkerPool(workers workerPool) option {
	return func(s *DispatchService) {
		s.workers = workers
	}
}

// WithAuditor sets the dispatch audit repository for the DispatchService.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithAuditor(auditor iauditrepo.IAuditorRepository) option {
	return func(s *DispatchService) {
		s.auditor = auditor
	}
}

// WithMetrics sets the dispatch counters for the DispatchService.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithMetrics(m *metrics.DispatchMetrics) option {
	return func(s *DispatchService) {
		s.metrics = m
	}
}

// WithStrictSkills requires a worker's skills to cover the order's service
// category before assignment. Off by default: an owner may hand any order to
// any available worker.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithStrictSkills(strict bool) option {
	return func(s *DispatchService) {
		s.strictSkills = strict
	}
}

// Assign is the human-directed path: bind one waiting order to one chosen
// worker. The reservation and the transition form a single logical unit;
// when the transition fails the reservation is rolled back and the order is
// left waiting.
func (s *DispatchService) Assign(ctx context.Context, orderID, workerID string) (order.Order, error) {
	o, err := s.orders.Get(ctx, orderID)
	if err != nil {
		return order.Order{}, err
	}
	if o.Status != order.StatusWaiting {
		return order.Order{}, fmt.Errorf(
			"assign on %s order %s: %w",
			o.Status, orderID, order.ErrInvalidTransition,
		)
	}

	if s.strictSkills {
		w, err := s.workers.Get(ctx, workerID)
		if err != nil {
			return order.Order{}, err
		}
		if !w.HasSkill(o.Category) {
			return order.Order{}, fmt.Errorf(
				"worker %s lacks skill %q: %w",
				workerID, o.Category, worker.ErrUnavailable,
			)
		}
	}

	if err := s.workers.Reserve(ctx, workerID, orderID); err != nil {
		return order.Order{}, err
	}

	assigned, err := s.orders.Transition(ctx, orderID, order.EventAssign, workerID)
	if err != nil {
		if relErr := s.workers.Release(ctx, workerID); relErr != nil {
			slog.Error("Failed to roll back reservation", "worker_id", workerID, "error", relErr)
		}
		return order.Order{}, err
	}

	s.metrics.Operation("assign")
	s.audit(ctx, assigned, order.EventAssign)

	return assigned, nil
}

// AutoDispatch walks the waiting queue ordered by priority tier (urgent >
// high > normal) and creation order within a tier, binding each order to the
// first available worker. Best-effort: individual misses never abort the
// batch, unmatched orders stay waiting.
func (s *DispatchService) AutoDispatch(ctx context.Context) ([]Assignment, error) {
	waiting, err := s.orders.List(ctx, &order.QueryOrdersModel{
		Statuses: []order.Status{order.StatusWaiting},
	})
	if err != nil {
		return nil, err
	}

	sort.SliceStable(waiting, func(i, j int) bool {
		if waiting[i].Priority.Rank() != waiting[j].Priority.Rank() {
			return waiting[i].Priority.Rank() > waiting[j].Priority.Rank()
		}
		return waiting[i].Seq < waiting[j].Seq
	})

	assignments := make([]Assignment, 0, len(waiting))
	for _, o := range waiting {
		category := ""
		if s.strictSkills {
			category = o.Category
		}

		candidates, err := s.workers.ListAvailable(ctx, category)
		if err != nil {
			slog.Error("Failed to list available workers", "order_id", o.ID, "error", err)
			continue
		}
		if len(candidates) == 0 {
			s.metrics.Miss()
			if !s.strictSkills {
				// The pool is empty for everyone; no later order can match.
				break
			}
			continue
		}

		matched := false
		for _, w := range candidates {
			if err := s.workers.Reserve(ctx, w.ID, o.ID); err != nil {
				// Lost the race for this worker; try the next one.
				continue
			}

			assigned, err := s.orders.Transition(ctx, o.ID, order.EventAssign, w.ID)
			if err != nil {
				if relErr := s.workers.Release(ctx, w.ID); relErr != nil {
					slog.Error("Failed to roll back reservation", "worker_id", w.ID, "error", relErr)
				}
				slog.Error("Failed to assign order", "order_id", o.ID, "worker_id", w.ID, "error", err)
				break
			}

			s.metrics.Operation("assign")
			s.audit(ctx, assigned, order.EventAssign)
			assignments = append(assignments, Assignment{OrderID: o.ID, WorkerID: w.ID})
			matched = true
			break
		}

		if !matched {
			s.metrics.Miss()
		}
	}

	return assignments, nil
}

// Start moves an assigned order into execution. The worker pool is not
// touched: the worker keeps its reservation.
func (s *DispatchService) Start(ctx context.Context, orderID string) (order.Order, error) {
	o, err := s.orders.Transition(ctx, orderID, order.EventStart, "")
	if err != nil {
		return order.Order{}, err
	}

	s.metrics.Operation("start")
	s.audit(ctx, o, order.EventStart)

	return o, nil
}

// Complete finishes an in-progress order and releases its worker within the
// same logical operation.
func (s *DispatchService) Complete(ctx context.Context, orderID string) (order.Order, error) {
	o, err := s.orders.Transition(ctx, orderID, order.EventComplete, "")
	if err != nil {
		return order.Order{}, err
	}

	if o.AssignedWorkerID != "" {
		if err := s.workers.Release(ctx, o.AssignedWorkerID); err != nil {
			return order.Order{}, fmt.Errorf(
				"order %s completed but worker release failed: %w", orderID, err,
			)
		}
	}

	s.metrics.Operation("complete")
	s.audit(ctx, o, order.EventComplete)

	return o, nil
}

// Cancel aborts a waiting or assigned order; a reserved worker is released.
func (s *DispatchService) Cancel(ctx context.Context, orderID string) (order.Order, error) {
	o, err := s.orders.Transition(ctx, orderID, order.EventCancel, "")
	if err != nil {
		return order.Order{}, err
	}

	if o.AssignedWorkerID != "" {
		if err := s.workers.Release(ctx, o.AssignedWorkerID); err != nil {
			return order.Order{}, fmt.Errorf(
				"order %s cancelled but worker release failed: %w", orderID, err,
			)
		}
	}

	s.metrics.Operation("cancel")
	s.audit(ctx, o, order.EventCancel)

	return o, nil
}

func (s *DispatchService) audit(ctx context.Context, o order.Order, kind order.EventKind) {
	if s.auditor == nil {
		return
	}

	evt := event.Event{
		OrderID:    o.ID,
		WorkerID:   o.AssignedWorkerID,
		Action:     string(kind),
		Status:     o.Status.String(),
		Priority:   o.Priority.String(),
		PriceCents: o.PriceCents,
		OccurredAt: time.Now().UTC(),
	}
	if err := s.auditor.LogDispatchEvent(ctx, evt); err != nil {
		slog.Error("Failed to log dispatch event", "order_id", o.ID, "action", kind, "error", err)
	}
}
