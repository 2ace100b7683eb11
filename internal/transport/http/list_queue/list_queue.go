package listqueue

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/abhinav28birajdar/TownTap-sub006/internal/service/models/order"
	"github.com/abhinav28birajdar/TownTap-sub006/internal/transport/http/httperr"
	"github.com/gorilla/schema"
)

// service is an interface for the queue view.
type service interface {
	Snapshot(ctx context.Context, filter *order.QueryOrdersModel) ([]order.Order, error)
	Counts(ctx context.Context) (map[order.Status]int, error)
}

type queueQueryRequest struct {
	Statuses   []string `schema:"status,omitempty"`
	Priorities []string `schema:"priority,omitempty"`
}

func (q *queueQueryRequest) ToModel() (*order.QueryOrdersModel, error) {
	model := &order.QueryOrdersModel{}
	for _, s := range q.Statuses {
		status, err := order.ParseStatus(s)
		if err != nil {
			return nil, err
		}
		model.Statuses = append(model.Statuses, status)
	}
	for _, p := range q.Priorities {
		priority, err := order.ParsePriority(p)
		if err != nil {
			return nil, err
		}
		model.Priorities = append(model.Priorities, priority)
	}

	return model, nil
}

// ListQueue returns the ordered queue snapshot for dashboards.
func ListQueue(w http.ResponseWriter, r *http.Request, service service) {
	decoder := schema.NewDecoder()
	query := &queueQueryRequest{}
	if err := decoder.Decode(query, r.URL.Query()); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		slog.Error("Error decoding request", "error", err)

		return
	}

	filter, err := query.ToModel()
	if err != nil {
		httperr.Write(w, err)

		return
	}

	orders, err := service.Snapshot(r.Context(), filter)
	if err != nil {
		httperr.Write(w, err)
		slog.Error("Error getting queue snapshot", "error", err)

		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(orders); err != nil {
		slog.Error("Error sending response", "error", err)
	}
}

// QueueStats returns per-status order counts.
func QueueStats(w http.ResponseWriter, r *http.Request, service service) {
	counts, err := service.Counts(r.Context())
	if err != nil {
		httperr.Write(w, err)
		slog.Error("Error getting queue counts", "error", err)

		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(counts); err != nil {
		slog.Error("Error sending response", "error", err)
	}
}
