// Package metrics exposes Prometheus counters for the skill.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "clova_home"

// Metrics holds the skill collectors and the registry they are registered in.
type Metrics struct {
	registry *prometheus.Registry
	requests *prometheus.CounterVec   // CEK requests by outcome
	intents  *prometheus.CounterVec   // Dispatched intents by name
	duration *prometheus.HistogramVec // Time spent answering a CEK request
	homes    prometheus.GaugeFunc     // Homes held in memory
}

// NewMetrics registers the skill collectors in a fresh registry.
// Arguments:
//   - homes: returns the number of stored homes, may be nil.
func NewMetrics(homes func() int) *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "requests_total",
			Help:      "CEK requests by outcome.",
		}, []string{"outcome"}),
		intents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "intents_total",
			Help:      "Dispatched intents by name.",
		}, []string{"intent"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "request_duration_seconds",
			Help:      "Time spent answering a CEK request.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"outcome"}),
	}
	m.registry.MustRegister(
		m.requests,
		m.intents,
		m.duration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	if homes != nil {
		m.homes = prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "homes",
			Help:      "Homes held in memory.",
		}, func() float64 { return float64(homes()) })
		m.registry.MustRegister(m.homes)
	}
	return m
}

// ObserveIntent counts a dispatched intent.
func (m *Metrics) ObserveIntent(intent string) {
	m.intents.WithLabelValues(intent).Inc()
}

// ObserveRequest counts a CEK request and its latency.
func (m *Metrics) ObserveRequest(outcome string, elapsed time.Duration) {
	m.requests.WithLabelValues(outcome).Inc()
	m.duration.WithLabelValues(outcome).Observe(elapsed.Seconds())
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
