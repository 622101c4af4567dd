// Package publisher writes onboarding audit events to an audit.Store.
//
// Writes are synchronous. When the store is the Postgres outbox and the caller
// runs inside a transaction, the event commits or rolls back with the business
// change.
package publisher

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	audit "onboard/pkg/platform/audit"
)

var errMissingAction = errors.New("audit event requires Action")

type Publisher struct {
	store   audit.Store
	logger  *slog.Logger
	metrics *Metrics
	now     func() time.Time
}

type Option func(*Publisher)

func WithLogger(logger *slog.Logger) Option {
	return func(p *Publisher) {
		p.logger = logger
	}
}

func WithMetrics(m *Metrics) Option {
	return func(p *Publisher) {
		p.metrics = m
	}
}

// WithClock overrides the timestamp source for events emitted without one.
func WithClock(now func() time.Time) Option {
	return func(p *Publisher) {
		p.now = now
	}
}

func New(store audit.Store, opts ...Option) *Publisher {
	p := &Publisher{store: store, now: time.Now}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Emit persists event. The category is derived from the action when unset.
func (p *Publisher) Emit(ctx context.Context, event audit.Event) error {
	start := time.Now()
	if event.Action == "" {
		return errMissingAction
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = p.now()
	}
	if event.Category == "" {
		event.Category = audit.AuditEvent(event.Action).Category()
	}

	if err := p.store.Append(ctx, event); err != nil {
		if p.metrics != nil {
			p.metrics.PersistFailures.Inc()
		}
		if p.logger != nil {
			p.logger.ErrorContext(ctx, "audit persistence failed",
				"action", event.Action,
				"subject", event.Subject,
				"error", err,
			)
		}
		return fmt.Errorf("audit persistence failed: %w", err)
	}

	if p.metrics != nil {
		p.metrics.PersistDuration.Observe(time.Since(start).Seconds())
		p.metrics.Emitted.WithLabelValues(string(event.Category)).Inc()
	}
	return nil
}

// List returns the audit trail for a customer.
func (p *Publisher) List(ctx context.Context, subject string) ([]audit.Event, error) {
	return p.store.ListBySubject(ctx, subject)
}
