package worker

import "errors"

var (
	ErrNotFound    = errors.New("worker not found")
	ErrUnavailable = errors.New("worker unavailable")
)

// Worker is a service-delivery resource that can hold at most one active
// order. Exactly one of (Available=true, CurrentOrderID="") or
// (Available=false, CurrentOrderID=<id>) holds at all times.
type Worker struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	Skills         []string `json:"skills,omitempty"`
	Available      bool     `json:"available"`
	CurrentOrderID string   `json:"currentOrderId,omitempty"`
}

// HasSkill reports whether the worker may serve the given service category.
// An empty category matches any worker.
func (w *Worker) HasSkill(category string) bool {
	if category == "" {
		return true
	}
	for _, s := range w.Skills {
		if s == category {
			return true
		}
	}
	return false
}
