package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/agbru/fibbridge/internal/native"
)

// unknownFunction labels calls to names missing from the export table.
const unknownFunction = "unknown"

// Metrics holds the Prometheus collectors of one Server. Each instance owns
// its registry so several servers (and tests) can coexist in a process.
type Metrics struct {
	registry        *prometheus.Registry
	handler         http.Handler
	activeRequests  prometheus.Gauge
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	calculations    *prometheus.CounterVec
	nativeCalls     *prometheus.CounterVec
}

// NewMetrics creates and registers the server collectors along with the Go
// runtime and process collectors.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		activeRequests: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "fibbridge_active_requests",
			Help: "Number of HTTP requests currently being served.",
		}),
		requestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "fibbridge_requests_total",
			Help: "HTTP requests served, by route and status code.",
		}, []string{"route", "code"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "fibbridge_request_duration_seconds",
			Help:    "HTTP request latency by route.",
			Buckets: prometheus.ExponentialBuckets(0.0005, 4, 10),
		}, []string{"route"}),
		calculations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "fibbridge_calculations_total",
			Help: "Fibonacci calculations run by the HTTP host, by backend and outcome.",
		}, []string{"backend", "outcome"}),
		nativeCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "fibbridge_native_calls_total",
			Help: "Calls forwarded to the native function table, by function and outcome.",
		}, []string{"function", "outcome"}),
	}
	reg.MustRegister(
		m.activeRequests,
		m.requestsTotal,
		m.requestDuration,
		m.calculations,
		m.nativeCalls,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	// Vectors only show up once a label set exists.
	m.requestsTotal.WithLabelValues("/metrics", "200")
	m.handler = promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg})
	return m
}

// IncrementActiveRequests marks the start of a request.
func (m *Metrics) IncrementActiveRequests() { m.activeRequests.Inc() }

// DecrementActiveRequests marks the end of a request.
func (m *Metrics) DecrementActiveRequests() { m.activeRequests.Dec() }

// ObserveRequest records a finished request.
func (m *Metrics) ObserveRequest(route string, code int, d time.Duration) {
	m.requestsTotal.WithLabelValues(route, strconv.Itoa(code)).Inc()
	m.requestDuration.WithLabelValues(route).Observe(d.Seconds())
}

// ObserveCalculation records the outcome of a /fib calculation.
func (m *Metrics) ObserveCalculation(backend, outcome string) {
	m.calculations.WithLabelValues(backend, outcome).Inc()
}

// ObserveNativeCall records the outcome of a /call invocation. Names that are
// not exported share the "unknown" label so callers cannot mint new series.
func (m *Metrics) ObserveNativeCall(function, outcome string) {
	if _, ok := native.Exports[function]; !ok {
		function = unknownFunction
	}
	m.nativeCalls.WithLabelValues(function, outcome).Inc()
}

// WritePrometheus serves the registry in the Prometheus exposition format.
func (m *Metrics) WritePrometheus(w http.ResponseWriter, r *http.Request) {
	m.handler.ServeHTTP(w, r)
}
