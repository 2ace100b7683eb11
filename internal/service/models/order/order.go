package order

import (
	"errors"
	"time"

	"github.com/abhinav28birajdar/TownTap-sub006/internal/service/models/currency"
)

var (
	ErrValidation        = errors.New("invalid order draft")
	ErrNotFound          = errors.New("order not found")
	ErrInvalidTransition = errors.New("invalid order transition")
)

// Order is one customer's request for a priced service, tracked through
// its lifecycle to completion or cancellation.
type Order struct {
	ID                       string            `json:"id"`
	CustomerRef              string            `json:"customerRef"`
	ServiceRef               string            `json:"serviceRef"`
	Category                 string            `json:"category,omitempty"`
	AddOnRefs                []string          `json:"addOnRefs,omitempty"`
	ScheduledTime            time.Time         `json:"scheduledTime"`
	EstimatedDurationMinutes int               `json:"estimatedDurationMinutes"`
	Priority                 Priority          `json:"priority"`
	AssignedWorkerID         string            `json:"assignedWorkerId,omitempty"`
	Status                   Status            `json:"status"`
	PriceCents               int64             `json:"priceCents"`
	PriceCurrency            currency.Currency `json:"priceCurrency"`
	Notes                    string            `json:"notes,omitempty"`
	Seq                      uint64            `json:"-"`
	CreatedAt                time.Time         `json:"createdAt"`
	UpdatedAt                time.Time         `json:"updatedAt"`
}

// Draft carries the caller-supplied fields for a new order. The price is
// computed once before creation and frozen on the stored order.
type Draft struct {
	CustomerRef              string
	ServiceRef               string
	Category                 string
	AddOnRefs                []string
	ScheduledTime            time.Time
	EstimatedDurationMinutes int
	Priority                 Priority
	PriceCents               int64
	PriceCurrency            currency.Currency
	Notes                    string
}

// Validate checks the draft against the creation rules.
func (d *Draft) Validate() error {
	if d.CustomerRef == "" || d.ServiceRef == "" {
		return ErrValidation
	}
	if d.ScheduledTime.IsZero() {
		return ErrValidation
	}
	if d.EstimatedDurationMinutes <= 0 {
		return ErrValidation
	}
	if d.PriceCents < 0 {
		return ErrValidation
	}
	if _, err := ParsePriority(string(d.Priority)); err != nil {
		return ErrValidation
	}
	return nil
}
