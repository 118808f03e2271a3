package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var Observer = &Metrics{
	prometheus: NewPrometheusMetrics(),
}

var registerOnce sync.Once

// Register registers the collectors with the default prometheus registry.
func Register() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			Observer.prometheus.Decisions,
			Observer.prometheus.Rejected,
			Observer.prometheus.Latency,
		)
	})
}

type Metrics struct {
	prometheus Prometheus
}

// Decision counts a scored transaction by decision and risk level.
func (m *Metrics) Decision(labels ...string) {
	m.prometheus.Decisions.WithLabelValues(labels...).Inc()
}

// Reject counts a transaction rejected at validation.
func (m *Metrics) Reject() {
	m.prometheus.Rejected.Inc()
}

// Observe tracks the processing time of a scoring call in milliseconds.
func (m *Metrics) Observe(ms float64) {
	m.prometheus.Latency.Observe(ms)
}
