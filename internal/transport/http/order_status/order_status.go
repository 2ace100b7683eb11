package orderstatus

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/abhinav28birajdar/TownTap-sub006/internal/service/models/order"
	"github.com/abhinav28birajdar/TownTap-sub006/internal/transport/http/httperr"
)

// service is an interface for the dispatch engine lifecycle operations.
type service interface {
	Start(ctx context.Context, orderID string) (order.Order, error)
	Complete(ctx context.Context, orderID string) (order.Order, error)
	Cancel(ctx context.Context, orderID string) (order.Order, error)
}

// getter reads single orders for the detail endpoint.
type getter interface {
	Get(ctx context.Context, id string) (order.Order, error)
}

// GetOrder returns one order by id.
func GetOrder(w http.ResponseWriter, r *http.Request, service getter, orderID string) {
	o, err := service.Get(r.Context(), orderID)
	if err != nil {
		httperr.Write(w, err)

		return
	}

	writeOrder(w, o)
}

// Start moves an assigned order into execution.
func Start(w http.ResponseWriter, r *http.Request, service service, orderID string) {
	o, err := service.Start(r.Context(), orderID)
	if err != nil {
		httperr.Write(w, err)
		slog.Error("Error starting order", "order_id", orderID, "error", err)

		return
	}

	writeOrder(w, o)
}

// Complete finishes an in-progress order and frees its worker.
func Complete(w http.ResponseWriter, r *http.Request, service service, orderID string) {
	o, err := service.Complete(r.Context(), orderID)
	if err != nil {
		httperr.Write(w, err)
		slog.Error("Error completing order", "order_id", orderID, "error", err)

		return
	}

	writeOrder(w, o)
}

// Cancel aborts a waiting or assigned order.
func Cancel(w http.ResponseWriter, r *http.Request, service service, orderID string) {
	o, err := service.Cancel(r.Context(), orderID)
	if err != nil {
		httperr.Write(w, err)
		slog.Error("Error cancelling order", "order_id", orderID, "error", err)

		return
	}

	writeOrder(w, o)
}

func writeOrder(w http.ResponseWriter, o order.Order) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(o); err != nil {
		slog.Error("Error writing order response", "error", err)
	}
}
