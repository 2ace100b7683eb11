package createorder

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/abhinav28birajdar/TownTap-sub006/internal/service/models/order"
	"github.com/abhinav28birajdar/TownTap-sub006/internal/service/models/pricing"
	"github.com/abhinav28birajdar/TownTap-sub006/internal/transport/http/httperr"
)

// service is an interface for the service layer.
type service interface {
	Create(ctx context.Context, draft order.Draft) (order.Order, error)
}

type createOrderRequest struct {
	CustomerRef              string        `json:"customerRef"`
	ServiceRef               string        `json:"serviceRef"`
	Category                 string        `json:"category"`
	AddOnRefs                []string      `json:"addOnRefs"`
	ScheduledTime            time.Time     `json:"scheduledTime"`
	EstimatedDurationMinutes int           `json:"estimatedDurationMinutes"`
	Priority                 string        `json:"priority"`
	Notes                    string        `json:"notes"`
	Pricing                  pricing.Input `json:"pricing"`
}

type createOrderResponse struct {
	Order   order.Order    `json:"order"`
	Pricing pricing.Result `json:"pricing"`
}

// CreateOrder handles the booking intake: it prices the request once and
// stores the resulting order as waiting.
func CreateOrder(w http.ResponseWriter, r *http.Request, service service) {
	var req createOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Failed to decode request body", http.StatusBadRequest)
		slog.Error("Error decoding request body for create order", "error", err)

		return
	}

	priority, err := order.ParsePriority(req.Priority)
	if err != nil {
		httperr.Write(w, err)

		return
	}

	price, err := pricing.Compute(req.Pricing)
	if err != nil {
		httperr.Write(w, err)
		slog.Error("Error computing price", "error", err)

		return
	}

	created, err := service.Create(r.Context(), order.Draft{
		CustomerRef:              req.CustomerRef,
		ServiceRef:               req.ServiceRef,
		Category:                 req.Category,
		AddOnRefs:                req.AddOnRefs,
		ScheduledTime:            req.ScheduledTime,
		EstimatedDurationMinutes: req.EstimatedDurationMinutes,
		Priority:                 priority,
		PriceCents:               price.TotalCents,
		Notes:                    req.Notes,
	})
	if err != nil {
		httperr.Write(w, err)
		slog.Error("Error creating order", "error", err)

		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(createOrderResponse{Order: created, Pricing: price}); err != nil {
		slog.Error("Error writing response for create order", "error", err)
	}
}
