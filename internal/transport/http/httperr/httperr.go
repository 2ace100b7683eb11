package httperr

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/abhinav28birajdar/TownTap-sub006/internal/service/models/order"
	"github.com/abhinav28birajdar/TownTap-sub006/internal/service/models/pricing"
	"github.com/abhinav28birajdar/TownTap-sub006/internal/service/models/worker"
)

// Status maps core errors to HTTP status codes.
func Status(err error) int {
	switch {
	case errors.Is(err, order.ErrNotFound), errors.Is(err, worker.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, order.ErrValidation),
		errors.Is(err, order.ErrInvalidPriority),
		errors.Is(err, pricing.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, order.ErrInvalidTransition), errors.Is(err, worker.ErrUnavailable):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// Write sends the error as a JSON body with the mapped status code.
func Write(w http.ResponseWriter, err error) {
	code := Status(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if encErr := json.NewEncoder(w).Encode(map[string]string{"error": err.Error()}); encErr != nil {
		slog.Error("Error writing error response", "error", encErr)
	}
}
