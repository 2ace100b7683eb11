package iorderrepo

import (
	"context"

	"github.com/abhinav28birajdar/TownTap-sub006/internal/service/models/order"
)

// IOrderRepository is an interface for the order journal repository.
type IOrderRepository interface {
	// Save upserts the current state of an order.
	Save(ctx context.Context, o order.Order) error

	// List returns every journaled order, including terminal ones.
	List(ctx context.Context) ([]order.Order, error)
}
