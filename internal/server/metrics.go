package server

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the Prometheus instruments for the HTTP surface. Each
// instance owns its registry, so tests can construct as many as they need
// without colliding on the global default registry.
type Metrics struct {
	registry *prometheus.Registry
	handler  http.Handler

	requestsTotal  *prometheus.CounterVec
	activeRequests prometheus.Gauge
	calcDuration   *prometheus.HistogramVec
}

// NewMetrics creates the instrument set on a fresh registry, alongside the
// standard Go runtime and process collectors.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		registry: registry,
		requestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "fibbench_requests_total",
			Help: "HTTP requests processed, by path.",
		}, []string{"path"}),
		activeRequests: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "fibbench_active_requests",
			Help: "Requests currently being served.",
		}),
		calcDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "fibbench_calculation_duration_seconds",
			Help:    "Fibonacci calculation time, by strategy.",
			Buckets: prometheus.DefBuckets,
		}, []string{"strategy"}),
	}

	registry.MustRegister(m.requestsTotal, m.activeRequests, m.calcDuration)
	registry.MustRegister(collectors.NewGoCollector())
	registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	// Prime the known routes so the counter appears in the exposition
	// before the first request arrives.
	for _, path := range []string{"/api/v1/fib", "/healthz", "/metrics"} {
		m.requestsTotal.WithLabelValues(path).Add(0)
	}

	m.handler = promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
	return m
}

// CountRequest increments the request counter for a path.
func (m *Metrics) CountRequest(path string) {
	m.requestsTotal.WithLabelValues(path).Inc()
}

// IncrementActiveRequests marks the start of an in-flight request.
func (m *Metrics) IncrementActiveRequests() {
	m.activeRequests.Inc()
}

// DecrementActiveRequests marks the end of an in-flight request.
func (m *Metrics) DecrementActiveRequests() {
	m.activeRequests.Dec()
}

// ObserveCalculation records the duration of one strategy run.
func (m *Metrics) ObserveCalculation(strategy string, seconds float64) {
	m.calcDuration.WithLabelValues(strategy).Observe(seconds)
}

// WritePrometheus serves the exposition format for this instance's registry.
func (m *Metrics) WritePrometheus(w http.ResponseWriter, r *http.Request) {
	m.handler.ServeHTTP(w, r)
}
