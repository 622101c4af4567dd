package publisher

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds Prometheus metrics for audit persistence.
type Metrics struct {
	Emitted         *prometheus.CounterVec
	PersistFailures prometheus.Counter
	PersistDuration prometheus.Histogram
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Emitted: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "onboard_audit_events_emitted_total",
			Help: "Total number of audit events persisted, by category",
		}, []string{"category"}),
		PersistFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "onboard_audit_persist_failures_total",
			Help: "Total number of audit events that could not be persisted",
		}),
		PersistDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "onboard_audit_persist_duration_seconds",
			Help:    "Duration of audit event persistence",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25},
		}),
	}
}
