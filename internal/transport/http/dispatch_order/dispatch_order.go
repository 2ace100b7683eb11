package dispatchorder

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/abhinav28birajdar/TownTap-sub006/internal/service/models/order"
	"github.com/abhinav28birajdar/TownTap-sub006/internal/service/services/dispatchsvc"
	"github.com/abhinav28birajdar/TownTap-sub006/internal/transport/http/httperr"
)

// service is an interface for the dispatch engine.
type service interface {
	Assign(ctx context.Context, orderID, workerID string) (order.Order, error)
	AutoDispatch(ctx context.Context) ([]dispatchsvc.Assignment, error)
}

type assignRequest struct {
	WorkerID string `json:"workerId"`
}

// Assign binds one waiting order to a worker chosen by the business owner.
func Assign(w http.ResponseWriter, r *http.Request, service service, orderID string) {
	var req assignRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Failed to decode request body", http.StatusBadRequest)
		slog.Error("Error decoding request body for assign", "error", err)

		return
	}
	if req.WorkerID == "" {
		http.Error(w, "workerId is required", http.StatusBadRequest)

		return
	}

	assigned, err := service.Assign(r.Context(), orderID, req.WorkerID)
	if err != nil {
		httperr.Write(w, err)
		slog.Error("Error assigning order", "order_id", orderID, "worker_id", req.WorkerID, "error", err)

		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(assigned); err != nil {
		slog.Error("Error writing response for assign", "error", err)
	}
}

type autoDispatchResponse struct {
	Assignments []dispatchsvc.Assignment `json:"assignments"`
}

// AutoDispatch runs one best-effort matching batch over the waiting queue.
func AutoDispatch(w http.ResponseWriter, r *http.Request, service service) {
	assignments, err := service.AutoDispatch(r.Context())
	if err != nil {
		httperr.Write(w, err)
		slog.Error("Error running auto-dispatch", "error", err)

		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(autoDispatchResponse{Assignments: assignments}); err != nil {
		slog.Error("Error writing response for auto-dispatch", "error", err)
	}
}
