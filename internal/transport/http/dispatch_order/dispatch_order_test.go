package dispatchorder

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/abhinav28birajdar/TownTap-sub006/internal/service/models/order"
	"github.com/abhinav28birajdar/TownTap-sub006/internal/service/models/worker"
	"github.com/abhinav28birajdar/TownTap-sub006/internal/service/services/dispatchsvc"
)

type fakeService struct {
	assignErr   error
	assignments []dispatchsvc.Assignment

	gotOrderID  string
	gotWorkerID string
}

func (f *fakeService) Assign(_ context.Context, orderID, workerID string) (order.Order, error) {
	f.gotOrderID = orderID
	f.gotWorkerID = workerID
	if f.assignErr != nil {
		return order.Order{}, f.assignErr
	}

	return order.Order{ID: orderID, AssignedWorkerID: workerID, Status: order.StatusAssigned}, nil
}

func (f *fakeService) AutoDispatch(_ context.Context) ([]dispatchsvc.Assignment, error) {
	return f.assignments, nil
}

func TestAssign(t *testing.T) {
	svc := &fakeService{}
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/orders/ord-1/assign", strings.NewReader(`{"workerId": "w-1"}`))

	Assign(rec, req, svc, "ord-1")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d, body %s", rec.Code, http.StatusOK, rec.Body.String())
	}
	if svc.gotOrderID != "ord-1" || svc.gotWorkerID != "w-1" {
		t.Fatalf("service called with (%q, %q)", svc.gotOrderID, svc.gotWorkerID)
	}

	var resp order.Order
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Status != order.StatusAssigned {
		t.Fatalf("status = %q, want assigned", resp.Status)
	}
}

func TestAssignRequiresWorkerID(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/orders/ord-1/assign", strings.NewReader(`{}`))

	Assign(rec, req, &fakeService{}, "ord-1")

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestAssignBusyWorkerConflicts(t *testing.T) {
	svc := &fakeService{assignErr: worker.ErrUnavailable}
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/orders/ord-1/assign", strings.NewReader(`{"workerId": "w-1"}`))

	Assign(rec, req, svc, "ord-1")

	if rec.Code != http.StatusConflict {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusConflict)
	}
}

func TestAssignUnknownOrder(t *testing.T) {
	svc := &fakeService{assignErr: order.ErrNotFound}
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/orders/missing/assign", strings.NewReader(`{"workerId": "w-1"}`))

	Assign(rec, req, svc, "missing")

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}
}

func TestAutoDispatch(t *testing.T) {
	svc := &fakeService{assignments: []dispatchsvc.Assignment{
		{OrderID: "ord-1", WorkerID: "w-1"},
		{OrderID: "ord-2", WorkerID: "w-2"},
	}}
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/dispatch", nil)

	AutoDispatch(rec, req, svc)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}

	var resp autoDispatchResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp.Assignments) != 2 {
		t.Fatalf("assignments = %d, want 2", len(resp.Assignments))
	}
	if resp.Assignments[0].OrderID != "ord-1" {
		t.Fatalf("first assignment order = %q", resp.Assignments[0].OrderID)
	}
}

func TestAutoDispatchEmptyQueue(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/dispatch", nil)

	AutoDispatch(rec, req, &fakeService{})

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
}
