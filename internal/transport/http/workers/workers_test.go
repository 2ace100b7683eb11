package workers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/abhinav28birajdar/TownTap-sub006/internal/service/models/worker"
)

type fakeService struct {
	workers []worker.Worker

	listAvailableCalled bool
	gotCategory         string
}

func (f *fakeService) Register(_ context.Context, w worker.Worker) (worker.Worker, error) {
	w.ID = "w-new"
	w.Available = true

	return w, nil
}

func (f *fakeService) List(_ context.Context) ([]worker.Worker, error) {
	return f.workers, nil
}

func (f *fakeService) ListAvailable(_ context.Context, category string) ([]worker.Worker, error) {
	f.listAvailableCalled = true
	f.gotCategory = category

	available := make([]worker.Worker, 0, len(f.workers))
	for _, w := range f.workers {
		if w.Available && w.HasSkill(category) {
			available = append(available, w)
		}
	}

	return available, nil
}

func poolFixture() []worker.Worker {
	return []worker.Worker{
		{ID: "w-1", Name: "Asha", Skills: []string{"salon"}, Available: true},
		{ID: "w-2", Name: "Binod", Skills: []string{"repair"}, Available: false, CurrentOrderID: "ord-9"},
		{ID: "w-3", Name: "Chitra", Skills: []string{"salon", "repair"}, Available: true},
	}
}

func listWorkers(t *testing.T, svc *fakeService, target string) []worker.Worker {
	t.Helper()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, target, nil)

	ListWorkers(rec, req, svc)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d, body %s", rec.Code, http.StatusOK, rec.Body.String())
	}

	var result []worker.Worker
	if err := json.NewDecoder(rec.Body).Decode(&result); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	return result
}

func TestListWorkersAll(t *testing.T) {
	svc := &fakeService{workers: poolFixture()}

	result := listWorkers(t, svc, "/api/workers")

	if len(result) != 3 {
		t.Fatalf("workers = %d, want 3", len(result))
	}
	if svc.listAvailableCalled {
		t.Fatal("unfiltered listing must not narrow to available workers")
	}
}

func TestListWorkersAvailableTrue(t *testing.T) {
	svc := &fakeService{workers: poolFixture()}

	result := listWorkers(t, svc, "/api/workers?available=true&skill=salon")

	if !svc.listAvailableCalled {
		t.Fatal("available=true must query available workers")
	}
	if svc.gotCategory != "salon" {
		t.Fatalf("category = %q, want salon", svc.gotCategory)
	}
	if len(result) != 2 {
		t.Fatalf("workers = %d, want 2", len(result))
	}
}

func TestListWorkersAvailableFalse(t *testing.T) {
	svc := &fakeService{workers: poolFixture()}

	result := listWorkers(t, svc, "/api/workers?available=false")

	if len(result) != 1 {
		t.Fatalf("workers = %d, want 1", len(result))
	}
	if result[0].ID != "w-2" {
		t.Fatalf("worker = %q, want the busy one", result[0].ID)
	}
	if svc.listAvailableCalled {
		t.Fatal("available=false must not be treated as available=true")
	}
}

func TestListWorkersSkillOnly(t *testing.T) {
	svc := &fakeService{workers: poolFixture()}

	result := listWorkers(t, svc, "/api/workers?skill=repair")

	if len(result) != 2 {
		t.Fatalf("workers = %d, want 2", len(result))
	}
	for _, w := range result {
		if !w.HasSkill("repair") {
			t.Fatalf("worker %q lacks the requested skill", w.ID)
		}
	}
}

func TestRegisterWorker(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/workers", strings.NewReader(`{"name": "Asha", "skills": ["salon"]}`))

	RegisterWorker(rec, req, &fakeService{})

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want %d, body %s", rec.Code, http.StatusCreated, rec.Body.String())
	}

	var registered worker.Worker
	if err := json.NewDecoder(rec.Body).Decode(&registered); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if registered.ID == "" || !registered.Available {
		t.Fatalf("registered = %+v, want an id and availability", registered)
	}
}

func TestRegisterWorkerRequiresName(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/workers", strings.NewReader(`{"skills": ["salon"]}`))

	RegisterWorker(rec, req, &fakeService{})

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}
