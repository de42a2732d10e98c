// Package metrics provides Prometheus instrumentation for the statistics client.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// OutcomeSuccess labels operations that returned without error.
const OutcomeSuccess = "success"

// Manager owns the client's Prometheus collectors. A nil Manager is valid and
// records nothing.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	registry         prometheus.Registerer
	gatherer         prometheus.Gatherer

	operations        *prometheus.CounterVec
	operationDuration *prometheus.HistogramVec

	requests        *prometheus.CounterVec
	requestDuration prometheus.Histogram
}

// NewManager creates a new metrics manager. Collectors are registered on a
// private registry unless WithPrometheusRegistry is given; either way
// Gatherer exposes them for scraping.
func NewManager(opts ...Option) *Manager {
	reg := prometheus.NewRegistry()
	m := &Manager{
		namespace:        "strikers",
		subsystem:        "client",
		histogramBuckets: prometheus.DefBuckets,
		enabled:          true,
		registry:         reg,
		gatherer:         reg,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.operations = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "operations_total",
		Help:      "Total number of client operations by operation and outcome",
	}, []string{"operation", "outcome"})

	m.operationDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "operation_duration_seconds",
		Help:      "Histogram of client operation latency in seconds",
		Buckets:   m.histogramBuckets,
	}, []string{"operation"})

	m.requests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "requests_total",
		Help:      "Total number of HTTP requests sent to the statistics service by status class",
	}, []string{"status"})

	m.requestDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "request_duration_seconds",
		Help:      "Histogram of HTTP request latency in seconds",
		Buckets:   m.histogramBuckets,
	})
}

// Gatherer returns the gatherer holding the manager's collectors, suitable
// for promhttp.HandlerFor. It is nil for a nil Manager or when the registry
// given to WithPrometheusRegistry cannot be gathered.
func (m *Manager) Gatherer() prometheus.Gatherer {
	if m == nil {
		return nil
	}
	return m.gatherer
}

// Enabled reports whether the manager records anything.
func (m *Manager) Enabled() bool {
	return m != nil && m.enabled
}

// ObserveOperation records a facade operation. outcome is OutcomeSuccess or
// an error kind name.
func (m *Manager) ObserveOperation(operation, outcome string, d time.Duration) {
	if !m.Enabled() {
		return
	}
	m.operations.WithLabelValues(operation, outcome).Inc()
	m.operationDuration.WithLabelValues(operation).Observe(d.Seconds())
}

// ObserveRequest records a single HTTP exchange. statusCode is zero when no
// response was received.
func (m *Manager) ObserveRequest(statusCode int, d time.Duration) {
	if !m.Enabled() {
		return
	}
	m.requests.WithLabelValues(StatusClass(statusCode)).Inc()
	m.requestDuration.Observe(d.Seconds())
}

// StatusClass buckets an HTTP status code into 2xx, 4xx, ... or "error" when
// the request failed before a response arrived.
func StatusClass(statusCode int) string {
	if statusCode < 100 || statusCode > 599 {
		return "error"
	}
	return strconv.Itoa(statusCode/100) + "xx"
}
