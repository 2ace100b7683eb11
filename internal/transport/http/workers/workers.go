package workers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/abhinav28birajdar/TownTap-sub006/internal/service/models/worker"
	"github.com/abhinav28birajdar/TownTap-sub006/internal/transport/http/httperr"
	"github.com/gorilla/schema"
)

// service is an interface for the worker pool.
type service interface {
	Register(ctx context.Context, w worker.Worker) (worker.Worker, error)
	List(ctx context.Context) ([]worker.Worker, error)
	ListAvailable(ctx context.Context, category string) ([]worker.Worker, error)
}

type registerWorkerRequest struct {
	Name   string   `json:"name"`
	Skills []string `json:"skills"`
}

// RegisterWorker adds a staff member to the pool.
func RegisterWorker(w http.ResponseWriter, r *http.Request, service service) {
	var req registerWorkerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Failed to decode request body", http.StatusBadRequest)
		slog.Error("Error decoding request body for register worker", "error", err)

		return
	}
	if req.Name == "" {
		http.Error(w, "name is required", http.StatusBadRequest)

		return
	}

	registered, err := service.Register(r.Context(), worker.Worker{
		Name:   req.Name,
		Skills: req.Skills,
	})
	if err != nil {
		httperr.Write(w, err)
		slog.Error("Error registering worker", "error", err)

		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(registered); err != nil {
		slog.Error("Error writing response for register worker", "error", err)
	}
}

type listWorkersRequest struct {
	Available *bool  `schema:"available,omitempty"`
	Skill     string `schema:"skill,omitempty"`
}

// ListWorkers returns workers. The available parameter is tri-state: absent
// lists everyone, true lists free workers, false lists busy ones. A skill
// narrows the result either way.
func ListWorkers(w http.ResponseWriter, r *http.Request, service service) {
	decoder := schema.NewDecoder()
	query := &listWorkersRequest{}
	if err := decoder.Decode(query, r.URL.Query()); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		slog.Error("Error decoding request", "error", err)

		return
	}

	var (
		result []worker.Worker
		err    error
	)
	if query.Available != nil && *query.Available {
		result, err = service.ListAvailable(r.Context(), query.Skill)
	} else {
		result, err = service.List(r.Context())
		if err == nil {
			filtered := make([]worker.Worker, 0, len(result))
			for _, wk := range result {
				if query.Available != nil && wk.Available != *query.Available {
					continue
				}
				if !wk.HasSkill(query.Skill) {
					continue
				}
				filtered = append(filtered, wk)
			}
			result = filtered
		}
	}
	if err != nil {
		httperr.Write(w, err)
		slog.Error("Error listing workers", "error", err)

		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(result); err != nil {
		slog.Error("Error sending response", "error", err)
	}
}
