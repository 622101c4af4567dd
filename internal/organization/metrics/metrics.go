package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics covers the client/branch directory.
type Metrics struct {
	ClientsCreated       prometheus.Counter
	BranchesCreated      prometheus.Counter
	ScopeRejected        *prometheus.CounterVec
	ResolveScopeDuration prometheus.Histogram
}

func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		ClientsCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "onboard_clients_created_total",
			Help: "Total number of clients created",
		}),
		BranchesCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "onboard_branches_created_total",
			Help: "Total number of branches created",
		}),
		ScopeRejected: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "onboard_scope_rejected_total",
			Help: "Invite scopes rejected, by reason",
		}, []string{"reason"}),
		ResolveScopeDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "onboard_resolve_scope_duration_seconds",
			Help:    "Duration of ResolveScope operations",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}),
	}
}

// ObserveResolveScope records the duration of a ResolveScope call started at start.
func (m *Metrics) ObserveResolveScope(start time.Time) {
	m.ResolveScopeDuration.Observe(time.Since(start).Seconds())
}

func (m *Metrics) IncrementScopeRejected(reason string) {
	m.ScopeRejected.WithLabelValues(reason).Inc()
}
