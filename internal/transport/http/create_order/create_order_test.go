package createorder

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/abhinav28birajdar/TownTap-sub006/internal/service/models/order"
)

type fakeService struct {
	created order.Draft
	err     error
}

func (f *fakeService) Create(_ context.Context, draft order.Draft) (order.Order, error) {
	if f.err != nil {
		return order.Order{}, f.err
	}
	f.created = draft

	return order.Order{
		ID:         "ord-1",
		Status:     order.StatusWaiting,
		Priority:   draft.Priority,
		PriceCents: draft.PriceCents,
	}, nil
}

func TestCreateOrderPricesTheRequest(t *testing.T) {
	body := `{
		"customerRef": "cust-1",
		"serviceRef": "svc-haircut",
		"scheduledTime": "2026-09-01T10:00:00Z",
		"estimatedDurationMinutes": 45,
		"priority": "normal",
		"pricing": {
			"basePrice": 1999,
			"addOnPrices": [299, 199],
			"discountPercent": 10,
			"taxPercent": 18
		}
	}`

	svc := &fakeService{}
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/orders", strings.NewReader(body))

	CreateOrder(rec, req, svc)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want %d, body %s", rec.Code, http.StatusCreated, rec.Body.String())
	}

	var resp createOrderResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Pricing.TotalCents != 2652 {
		t.Fatalf("total = %d, want 2652", resp.Pricing.TotalCents)
	}
	if resp.Order.PriceCents != 2652 {
		t.Fatalf("order price = %d, want 2652", resp.Order.PriceCents)
	}
	if svc.created.CustomerRef != "cust-1" {
		t.Fatalf("customer ref = %q, want cust-1", svc.created.CustomerRef)
	}
}

func TestCreateOrderRejectsBadPriority(t *testing.T) {
	body := `{"customerRef": "cust-1", "serviceRef": "svc-1", "priority": "asap", "pricing": {"basePrice": 100}}`

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/orders", strings.NewReader(body))

	CreateOrder(rec, req, &fakeService{})

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestCreateOrderRejectsNegativeBasePrice(t *testing.T) {
	body := `{"customerRef": "cust-1", "serviceRef": "svc-1", "priority": "normal", "pricing": {"basePrice": -5}}`

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/orders", strings.NewReader(body))

	CreateOrder(rec, req, &fakeService{})

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestCreateOrderRejectsInvalidDraft(t *testing.T) {
	body := `{"serviceRef": "svc-1", "priority": "normal", "pricing": {"basePrice": 100}}`

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/orders", strings.NewReader(body))

	CreateOrder(rec, req, &fakeService{err: order.ErrValidation})

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}
