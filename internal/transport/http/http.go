package httptransport

import (
	"context"
	"net/http"

	"github.com/abhinav28birajdar/TownTap-sub006/internal/service/models/order"
	"github.com/abhinav28birajdar/TownTap-sub006/internal/service/models/worker"
	"github.com/abhinav28birajdar/TownTap-sub006/internal/service/services/dispatchsvc"
	createorder "github.com/abhinav28birajdar/TownTap-sub006/internal/transport/http/create_order"
	dispatchorder "github.com/abhinav28birajdar/TownTap-sub006/internal/transport/http/dispatch_order"
	listqueue "github.com/abhinav28birajdar/TownTap-sub006/internal/transport/http/list_queue"
	orderstatus "github.com/abhinav28birajdar/TownTap-sub006/internal/transport/http/order_status"
	"github.com/abhinav28birajdar/TownTap-sub006/internal/transport/http/workers"
	"github.com/abhinav28birajdar/TownTap-sub006/pkg/http/middleware/trace"
	"github.com/abhinav28birajdar/TownTap-sub006/pkg/metrics"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/spf13/viper"
)

// orderService is the booking intake and detail slice of the order store.
type orderService interface {
	Create(ctx context.Context, draft order.Draft) (order.Order, error)
	Get(ctx context.Context, id string) (order.Order, error)
}

// dispatchService drives order lifecycle operations.
type dispatchService interface {
	Assign(ctx context.Context, orderID, workerID string) (order.Order, error)
	AutoDispatch(ctx context.Context) ([]dispatchsvc.Assignment, error)
	Start(ctx context.Context, orderID string) (order.Order, error)
	Complete(ctx context.Context, orderID string) (order.Order, error)
	Cancel(ctx context.Context, orderID string) (order.Order, error)
}

// queueService is the read-only queue projection.
type queueService interface {
	Snapshot(ctx context.Context, filter *order.QueryOrdersModel) ([]order.Order, error)
	Counts(ctx context.Context) (map[order.Status]int, error)
}

// workerService manages the staff pool.
type workerService interface {
	Register(ctx context.Context, w worker.Worker) (worker.Worker, error)
	List(ctx context.Context) ([]worker.Worker, error)
	ListAvailable(ctx context.Context, category string) ([]worker.Worker, error)
}

type HTTPTransport struct {
	server   *http.Server
	router   *chi.Mux
	orders   orderService
	dispatch dispatchService
	queue    queueService
	workers  workerService
}

func NewHTTPTransport(
	orders orderService,
	dispatch dispatchService,
	queue queueService,
	workerPool workerService,
	serverMetrics *metrics.ServerMetrics,
) *HTTPTransport {
	router := newRouter(serverMetrics)
	server := newServer(router)
	return &HTTPTransport{
		server:   server,
		router:   router,
		orders:   orders,
		dispatch: dispatch,
		queue:    queue,
		workers:  workerPool,
	}
}

func (h *HTTPTransport) Run() error {
	return h.server.ListenAndServe()
}

func (h *HTTPTransport) Shutdown(ctx context.Context) error {
	return h.server.Shutdown(ctx)
}

// RegisterRoutes registers the routes for the HTTPTransport.
func (h *HTTPTransport) RegisterRoutes() {
	h.router.Route("/api", func(r chi.Router) {
		r.Route("/orders", func(r chi.Router) {
			r.Post("/", h.createOrder)
			r.Get("/", h.listQueue)
			r.Get("/stats", h.queueStats)
			r.Get("/{orderID}", h.getOrder)
			r.Post("/{orderID}/assign", h.assignOrder)
			r.Post("/{orderID}/start", h.startOrder)
			r.Post("/{orderID}/complete", h.completeOrder)
			r.Post("/{orderID}/cancel", h.cancelOrder)
		})
		r.Post("/dispatch", h.autoDispatch)
		r.Route("/workers", func(r chi.Router) {
			r.Post("/", h.registerWorker)
			r.Get("/", h.listWorkers)
		})
	})
	h.router.Handle("/metrics", metrics.Handler())
}

func (h *HTTPTransport) createOrder(w http.ResponseWriter, r *http.Request) {
	createorder.CreateOrder(w, r, h.orders)
}

func (h *HTTPTransport) getOrder(w http.ResponseWriter, r *http.Request) {
	orderstatus.GetOrder(w, r, h.orders, chi.URLParam(r, "orderID"))
}

func (h *HTTPTransport) listQueue(w http.ResponseWriter, r *http.Request) {
	listqueue.ListQueue(w, r, h.queue)
}

func (h *HTTPTransport) queueStats(w http.ResponseWriter, r *http.Request) {
	listqueue.QueueStats(w, r, h.queue)
}

func (h *HTTPTransport) assignOrder(w http.ResponseWriter, r *http.Request) {
	dispatchorder.Assign(w, r, h.dispatch, chi.URLParam(r, "orderID"))
}

func (h *HTTPTransport) autoDispatch(w http.ResponseWriter, r *http.Request) {
	dispatchorder.AutoDispatch(w, r, h.dispatch)
}

func (h *HTTPTransport) startOrder(w http.ResponseWriter, r *http.Request) {
	orderstatus.Start(w, r, h.dispatch, chi.URLParam(r, "orderID"))
}

func (h *HTTPTransport) completeOrder(w http.ResponseWriter, r *http.Request) {
	orderstatus.Complete(w, r, h.dispatch, chi.URLParam(r, "orderID"))
}

func (h *HTTPTransport) cancelOrder(w http.ResponseWriter, r *http.Request) {
	orderstatus.Cancel(w, r, h.dispatch, chi.URLParam(r, "orderID"))
}

func (h *HTTPTransport) registerWorker(w http.ResponseWriter, r *http.Request) {
	workers.RegisterWorker(w, r, h.workers)
}

func (h *HTTPTransport) listWorkers(w http.ResponseWriter, r *http.Request) {
	workers.ListWorkers(w, r, h.workers)
}

func newRouter(serverMetrics *metrics.ServerMetrics) *chi.Mux {
	router := chi.NewMux()
	router.Use(middleware.RequestID)
	router.Use(middleware.Recoverer)
	router.Use(trace.NewTraceMiddleware)
	if serverMetrics != nil {
		router.Use(serverMetrics.Middleware)
	}

	allowedOrigins := viper.GetStringSlice("server.http.cors.allowed_origins")
	allowedMethods := viper.GetStringSlice("server.http.cors.allowed_methods")
	allowedHeaders := viper.GetStringSlice("server.http.cors.allowed_headers")
	exposedHeaders := viper.GetStringSlice("server.http.cors.exposed_headers")
	allowCredentials := viper.GetBool("server.http.cors.allow_credentials")
	maxAge := viper.GetInt("server.http.cors.max_age")

	c := cors.New(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   allowedMethods,
		AllowedHeaders:   allowedHeaders,
		ExposedHeaders:   exposedHeaders,
		AllowCredentials: allowCredentials,
		MaxAge:           maxAge,
	})

	router.Use(c.Handler)

	return router
}

func newServer(router http.Handler) *http.Server {
	return &http.Server{
		Addr:    "0.0.0.0:" + viper.GetString("server.http.port"),
		Handler: router,
	}
}
