// Package metrics exposes Prometheus counters for lesson transitions and
// backend latency on a private registry.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcome labels for transitions.
const (
	OutcomeOK        = "ok"
	OutcomeError     = "error"
	OutcomeDiscarded = "discarded"
	OutcomeRejected  = "rejected"
)

type Metrics struct {
	registry *prometheus.Registry

	transitions *prometheus.CounterVec
	backend     *prometheus.HistogramVec
	inFlight    prometheus.Gauge
}

func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		transitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "lessongenie",
			Name:      "transitions_total",
			Help:      "Network-backed screen transitions by kind and outcome.",
		}, []string{"transition", "outcome"}),
		backend: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "lessongenie",
			Name:      "backend_request_duration_seconds",
			Help:      "Latency of calls to the lesson backend.",
			Buckets:   []float64{.1, .25, .5, 1, 2.5, 5, 10, 30, 60},
		}, []string{"endpoint", "status"}),
		inFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "lessongenie",
			Name:      "transitions_in_flight",
			Help:      "Transitions waiting on the backend.",
		}),
	}
	reg.MustRegister(
		m.transitions,
		m.backend,
		m.inFlight,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// ObserveRequest records one backend call. Status 0 means the request never
// got a response.
func (m *Metrics) ObserveRequest(endpoint string, status int, elapsed time.Duration) {
	m.backend.WithLabelValues(endpoint, strconv.Itoa(status)).Observe(elapsed.Seconds())
}

func (m *Metrics) TransitionStarted() {
	m.inFlight.Inc()
}

func (m *Metrics) TransitionFinished(transition, outcome string) {
	m.inFlight.Dec()
	m.transitions.WithLabelValues(transition, outcome).Inc()
}

func (m *Metrics) TransitionRejected(transition string) {
	m.transitions.WithLabelValues(transition, OutcomeRejected).Inc()
}

// Registry returns the underlying registry, mostly for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
