package queueview

import (
	"context"
	"sort"

	"github.com/abhinav28birajdar/TownTap-sub006/internal/service/models/order"
)

// orderStore is the read-only slice of the order store the view projects.
type orderStore interface {
	List(ctx context.Context, filter *order.QueryOrdersModel) ([]order.Order, error)
}

// QueueView is a read-only projection of the order queue for dashboards.
// It never mutates the store.
type QueueView struct {
	orders orderStore
}

// NewQueueView creates a new QueueView over the given order store.
func NewQueueView(orders orderStore) *QueueView {
	return &QueueView{orders: orders}
}

// Snapshot returns orders matching the filter, ordered by priority tier
// (urgent > high > normal) and then by scheduled time ascending.
func (v *QueueView) Snapshot(ctx context.Context, filter *order.QueryOrdersModel) ([]order.Order, error) {
	orders, err := v.orders.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(orders, func(i, j int) bool {
		if orders[i].Priority.Rank() != orders[j].Priority.Rank() {
			return orders[i].Priority.Rank() > orders[j].Priority.Rank()
		}
		return orders[i].ScheduledTime.Before(orders[j].ScheduledTime)
	})

	return orders, nil
}

// Counts returns the number of orders per status for dashboard summaries.
func (v *QueueView) Counts(ctx context.Context) (map[order.Status]int, error) {
	orders, err := v.orders.List(ctx, nil)
	if err != nil {
		return nil, err
	}

	counts := map[order.Status]int{
		order.StatusWaiting:    0,
		order.StatusAssigned:   0,
		order.StatusInProgress: 0,
		order.StatusCompleted:  0,
		order.StatusCancelled:  0,
	}
	for _, o := range orders {
		counts[o.Status]++
	}

	return counts, nil
}
