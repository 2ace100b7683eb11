package queueview

import (
	"context"
	"testing"
	"time"

	"github.com/abhinav28birajdar/TownTap-sub006/internal/service/models/order"
	"github.com/abhinav28birajdar/TownTap-sub006/internal/service/services/orderstore"
)

func create(t *testing.T, s *orderstore.OrderStore, p order.Priority, scheduled time.Time) order.Order {
	t.Helper()
	o, err := s.Create(context.Background(), order.Draft{
		CustomerRef:              "cust-1",
		ServiceRef:               "svc-repair",
		ScheduledTime:            scheduled,
		EstimatedDurationMinutes: 30,
		Priority:                 p,
		PriceCents:               900,
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	return o
}

func TestSnapshotOrdering(t *testing.T) {
	store := orderstore.MustNewOrderStore()
	view := NewQueueView(store)
	ctx := context.Background()

	base := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	lateNormal := create(t, store, order.PriorityNormal, base.Add(3*time.Hour))
	earlyNormal := create(t, store, order.PriorityNormal, base)
	urgent := create(t, store, order.PriorityUrgent, base.Add(2*time.Hour))
	high := create(t, store, order.PriorityHigh, base.Add(time.Hour))

	snapshot, err := view.Snapshot(ctx, nil)
	if err != nil {
		t.Fatalf("Snapshot returned error: %v", err)
	}

	want := []string{urgent.ID, high.ID, earlyNormal.ID, lateNormal.ID}
	if len(snapshot) != len(want) {
		t.Fatalf("snapshot has %d orders, want %d", len(snapshot), len(want))
	}
	for i, o := range snapshot {
		if o.ID != want[i] {
			t.Fatalf("snapshot[%d] = %s, want %s", i, o.ID, want[i])
		}
	}
}

func TestSnapshotFilter(t *testing.T) {
	store := orderstore.MustNewOrderStore()
	view := NewQueueView(store)
	ctx := context.Background()

	urgent := create(t, store, order.PriorityUrgent, time.Now())
	normal := create(t, store, order.PriorityNormal, time.Now())
	if _, err := store.Transition(ctx, normal.ID, order.EventCancel, ""); err != nil {
		t.Fatalf("cancel returned error: %v", err)
	}

	waiting, err := view.Snapshot(ctx, &order.QueryOrdersModel{
		Statuses: []order.Status{order.StatusWaiting},
	})
	if err != nil {
		t.Fatalf("Snapshot returned error: %v", err)
	}
	if len(waiting) != 1 || waiting[0].ID != urgent.ID {
		t.Fatalf("filtered snapshot = %+v", waiting)
	}

	urgentOnly, err := view.Snapshot(ctx, &order.QueryOrdersModel{
		Priorities: []order.Priority{order.PriorityUrgent},
	})
	if err != nil {
		t.Fatalf("Snapshot returned error: %v", err)
	}
	if len(urgentOnly) != 1 || urgentOnly[0].ID != urgent.ID {
		t.Fatalf("priority filter = %+v", urgentOnly)
	}
}

func TestCounts(t *testing.T) {
	store := orderstore.MustNewOrderStore()
	view := NewQueueView(store)
	ctx := context.Background()

	first := create(t, store, order.PriorityNormal, time.Now())
	create(t, store, order.PriorityHigh, time.Now())
	if _, err := store.Transition(ctx, first.ID, order.EventCancel, ""); err != nil {
		t.Fatalf("cancel returned error: %v", err)
	}

	counts, err := view.Counts(ctx)
	if err != nil {
		t.Fatalf("Counts returned error: %v", err)
	}
	if counts[order.StatusWaiting] != 1 || counts[order.StatusCancelled] != 1 {
		t.Fatalf("counts = %+v", counts)
	}
	if counts[order.StatusCompleted] != 0 {
		t.Fatalf("counts must include zeroed statuses: %+v", counts)
	}
}
