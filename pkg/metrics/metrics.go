package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// ServerMetrics instruments the HTTP surface.
type ServerMetrics struct {
	Requests  *prometheus.CounterVec
	LatencyMS *prometheus.HistogramVec
}

// NewServerMetrics registers and returns HTTP request metrics.
func NewServerMetrics(service string) *ServerMetrics {
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "towntap",
		Subsystem: service,
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests.",
	}, []string{"path", "status"})
	latency := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "towntap",
		Subsystem: service,
		Name:      "http_request_duration_ms",
		Help:      "HTTP request latency in milliseconds.",
		Buckets:   []float64{5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000},
	}, []string{"path"})

	prometheus.MustRegister(requests, latency)
	return &ServerMetrics{Requests: requests, LatencyMS: latency}
}

// Middleware records count and latency for every request.
func (m *ServerMetrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		m.Requests.WithLabelValues(r.URL.Path, strconv.Itoa(rec.status)).Inc()
		m.LatencyMS.WithLabelValues(r.URL.Path).Observe(float64(time.Since(start).Milliseconds()))
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// DispatchMetrics counts lifecycle operations of the dispatch engine.
type DispatchMetrics struct {
	Operations *prometheus.CounterVec
	Misses     prometheus.Counter
}

// NewDispatchMetrics registers and returns dispatch counters.
func NewDispatchMetrics(service string) *DispatchMetrics {
	operations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "towntap",
		Subsystem: service,
		Name:      "dispatch_operations_total",
		Help:      "Total lifecycle operations by action.",
	}, []string{"action"})
	misses := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "towntap",
		Subsystem: service,
		Name:      "dispatch_misses_total",
		Help:      "Orders left waiting by auto-dispatch for lack of a worker.",
	})

	prometheus.MustRegister(operations, misses)
	return &DispatchMetrics{Operations: operations, Misses: misses}
}

// Operation increments the counter for one lifecycle action.
func (m *DispatchMetrics) Operation(action string) {
	if m == nil {
		return
	}
	m.Operations.WithLabelValues(action).Inc()
}

// Miss increments the auto-dispatch miss counter.
func (m *DispatchMetrics) Miss() {
	if m == nil {
		return
	}
	m.Misses.Inc()
}

// Handler exposes the prometheus scrape endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}
