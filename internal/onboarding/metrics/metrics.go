package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the invite and acceptance workflow.
type Metrics struct {
	InvitesCreated       *prometheus.CounterVec
	Acceptances          *prometheus.CounterVec
	NotificationFailures *prometheus.CounterVec
	RiskLabels           *prometheus.CounterVec
	AcceptDuration       prometheus.Histogram
}

// New registers the onboarding metrics with reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		InvitesCreated: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "onboard_invites_created_total",
			Help: "Total number of invites issued, by whether the customer was new",
		}, []string{"customer"}),
		Acceptances: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "onboard_invite_acceptances_total",
			Help: "Total number of invite acceptance calls, by outcome",
		}, []string{"outcome"}),
		NotificationFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "onboard_invite_notification_failures_total",
			Help: "Total number of invite deliveries that could not be handed off",
		}, []string{"channel"}),
		RiskLabels: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "onboard_risk_assessments_total",
			Help: "Total number of risk assessments served, by label",
		}, []string{"label"}),
		AcceptDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "onboard_accept_invite_duration_seconds",
			Help:    "Duration of invite acceptance including KYC upsert",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}),
	}
}

func (m *Metrics) IncrementInviteCreated(newCustomer bool) {
	label := "existing"
	if newCustomer {
		label = "new"
	}
	m.InvitesCreated.WithLabelValues(label).Inc()
}

// IncrementAcceptance records one acceptance outcome: finalized, partial or rejected.
func (m *Metrics) IncrementAcceptance(outcome string) {
	m.Acceptances.WithLabelValues(outcome).Inc()
}

func (m *Metrics) IncrementNotificationFailure(channel string) {
	m.NotificationFailures.WithLabelValues(channel).Inc()
}

func (m *Metrics) IncrementRiskLabel(label string) {
	m.RiskLabels.WithLabelValues(label).Inc()
}

// ObserveAccept records the duration of an acceptance call started at start.
func (m *Metrics) ObserveAccept(start time.Time) {
	m.AcceptDuration.Observe(time.Since(start).Seconds())
}
