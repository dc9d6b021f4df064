// ABOUTME: Prometheus metrics for routed requests and intent classification
// ABOUTME: Registered on an injected Registerer; a nil *Metrics records nothing
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the router's collectors
type Metrics struct {
	requests        *prometheus.CounterVec
	duration        *prometheus.HistogramVec
	classifications *prometheus.CounterVec
}

// New registers the router collectors on reg
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		// Labels: target (target label), status (success, error)
		requests: factory.NewCounterVec(prometheus.CounterOpts{
			Subsystem: "router",
			Name:      "requests_total",
			Help:      "Routed requests by target and envelope status",
		}, []string{"target", "status"}),

		duration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Subsystem: "router",
			Name:      "request_duration_seconds",
			Help:      "End-to-end route latency including upstream calls",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 2, 5, 10, 30, 60, 120},
		}, []string{"target"}),

		// Labels: kind (handler, service, composite, unresolved)
		classifications: factory.NewCounterVec(prometheus.CounterOpts{
			Subsystem: "router",
			Name:      "classifications_total",
			Help:      "Intent classifications by outcome kind",
		}, []string{"kind"}),
	}
}

// ObserveRequest records one routed request
func (m *Metrics) ObserveRequest(target, status string, d time.Duration) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(target, status).Inc()
	m.duration.WithLabelValues(target).Observe(d.Seconds())
}

// ObserveClassification records one classifier outcome
func (m *Metrics) ObserveClassification(kind string) {
	if m == nil {
		return
	}
	m.classifications.WithLabelValues(kind).Inc()
}
