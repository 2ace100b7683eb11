package orderstore

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/abhinav28birajdar/TownTap-sub006/internal/dal/interfaces/iorderrepo"
	"github.com/abhinav28birajdar/TownTap-sub006/internal/service/models/currency"
	"github.com/abhinav28birajdar/TownTap-sub006/internal/service/models/order"
	"github.com/google/uuid"
)

// OrderStore is the authoritative in-memory collection of orders. Every
// mutation goes through the state machine; terminal orders are retained for
// history, never deleted. An optional journal repository receives a
// write-through copy of every accepted mutation.
type OrderStore struct {
	mu      sync.RWMutex
	orders  map[string]*order.Order
	nextSeq uint64

	journal iorderrepo.IOrderRepository
}

// option is a function that configures the OrderStore.
type option func(*OrderStore)

// MustNewOrderStore creates a new OrderStore.
func MustNewOrderStore(opts ...option) *OrderStore {
	s := &OrderStore{
		orders:  make(map[string]*order.Order),
		nextSeq: 1,
	}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// WithJournal sets the write-through journal repository for the OrderStore.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithJournal(journal iorderrepo.IOrderRepository) option {
	return func(s *OrderStore) {
		s.journal = journal
	}
}

// Load seeds the store from the journal. Called once at startup, before the
// store is shared with other goroutines.
func (s *OrderStore) Load(ctx context.Context) error {
	if s.journal == nil {
		return nil
	}

	orders, err := s.journal.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to load orders from journal: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range orders {
		o := orders[i]
		s.orders[o.ID] = &o
		if o.Seq >= s.nextSeq {
			s.nextSeq = o.Seq + 1
		}
	}

	return nil
}

// Create validates the draft and stores a new waiting order. The price on
// the draft was computed once by the pricing calculator and is frozen here.
func (s *OrderStore) Create(ctx context.Context, draft order.Draft) (order.Order, error) {
	if err := draft.Validate(); err != nil {
		return order.Order{}, err
	}

	cur := draft.PriceCurrency
	if cur == "" {
		cur = currency.CurrencyINR
	}

	now := time.Now().UTC()
	o := order.Order{
		ID:                       uuid.NewString(),
		CustomerRef:              draft.CustomerRef,
		ServiceRef:               draft.ServiceRef,
		Category:                 draft.Category,
		AddOnRefs:                draft.AddOnRefs,
		ScheduledTime:            draft.ScheduledTime,
		EstimatedDurationMinutes: draft.EstimatedDurationMinutes,
		Priority:                 draft.Priority,
		Status:                   order.StatusWaiting,
		PriceCents:               draft.PriceCents,
		PriceCurrency:            cur,
		Notes:                    draft.Notes,
		CreatedAt:                now,
		UpdatedAt:                now,
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	o.Seq = s.nextSeq
	if err := s.persist(ctx, o); err != nil {
		return order.Order{}, err
	}
	s.nextSeq++
	s.orders[o.ID] = &o

	return o, nil
}

// Get returns the order with the given id.
func (s *OrderStore) Get(ctx context.Context, id string) (order.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	o, ok := s.orders[id]
	if !ok {
		return order.Order{}, fmt.Errorf("order %s: %w", id, order.ErrNotFound)
	}

	return *o, nil
}

// Transition applies one lifecycle event to the order. The legality check
// and the mutation happen under the same lock, so concurrent callers cannot
// observe or produce a half-applied edge. Illegal edges leave the stored
// order untouched.
func (s *OrderStore) Transition(
	ctx context.Context,
	id string,
	kind order.EventKind,
	workerID string,
) (order.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.orders[id]
	if !ok {
		return order.Order{}, fmt.Errorf("order %s: %w", id, order.ErrNotFound)
	}

	if !order.ValidTransition(kind, stored.Status) {
		return order.Order{}, fmt.Errorf(
			"%s from %s on order %s: %w",
			kind, stored.Status, id, order.ErrInvalidTransition,
		)
	}

	target, ok := order.Target(kind)
	if !ok {
		return order.Order{}, fmt.Errorf("unknown event %q: %w", kind, order.ErrInvalidTransition)
	}

	updated := *stored
	updated.Status = target
	updated.UpdatedAt = time.Now().UTC()

	if kind == order.EventAssign {
		if workerID == "" || stored.AssignedWorkerID != "" {
			return order.Order{}, fmt.Errorf(
				"assign on order %s: %w", id, order.ErrInvalidTransition,
			)
		}
		updated.AssignedWorkerID = workerID
	}

	if err := s.persist(ctx, updated); err != nil {
		return order.Order{}, err
	}
	*stored = updated

	return updated, nil
}

// List returns orders matching the filter, ordered by creation sequence.
func (s *OrderStore) List(ctx context.Context, filter *order.QueryOrdersModel) ([]order.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]order.Order, 0, len(s.orders))
	for _, o := range s.orders {
		if filter.Matches(o) {
			result = append(result, *o)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Seq < result[j].Seq
	})

	return result, nil
}

// persist writes through to the journal before the in-memory commit, so a
// journal failure leaves the store unchanged. Callers hold s.mu.
func (s *OrderStore) persist(ctx context.Context, o order.Order) error {
	if s.journal == nil {
		return nil
	}
	if err := s.journal.Save(ctx, o); err != nil {
		return fmt.Errorf("failed to journal order %s: %w", o.ID, err)
	}

	return nil
}
