package metrics

import "github.com/prometheus/client_golang/prometheus"

const namespace = "fraud"

// Prometheus groups the collectors of the scoring pipeline.
type Prometheus struct {
	Decisions *prometheus.CounterVec
	Rejected  prometheus.Counter
	Latency   prometheus.Histogram
}

func NewPrometheusMetrics() Prometheus {
	return Prometheus{
		Decisions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "decisions",
			}, []string{"decision", "risk_level"}),
		Rejected: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "rejected",
				Help:      "transactions rejected at validation",
			}),
		Latency: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "latency_ms",
				Buckets:   []float64{0.1, 0.5, 1, 5, 10, 50, 100},
			}),
	}
}
