package notify

import (
	"context"
	"log/slog"

	"onboard/pkg/platform/circuit"
)

// Sender is anything that can deliver an invite.
type Sender interface {
	Notify(ctx context.Context, d InviteDelivery) error
}

// Resilient sends through primary and falls back while the breaker is open or
// when primary fails.
type Resilient struct {
	primary  Sender
	fallback Sender
	breaker  *circuit.Breaker
	logger   *slog.Logger
}

func NewResilient(primary, fallback Sender, breaker *circuit.Breaker, logger *slog.Logger) *Resilient {
	return &Resilient{primary: primary, fallback: fallback, breaker: breaker, logger: logger}
}

func (r *Resilient) Notify(ctx context.Context, d InviteDelivery) error {
	if !r.breaker.Allow() {
		return r.fallback.Notify(ctx, d)
	}

	err := r.primary.Notify(ctx, d)
	if err == nil {
		if _, change := r.breaker.RecordSuccess(); change.Closed && r.logger != nil {
			r.logger.InfoContext(ctx, "invite delivery circuit closed", "breaker", r.breaker.Name())
		}
		return nil
	}

	_, change := r.breaker.RecordFailure()
	if r.logger != nil {
		if change.Opened {
			r.logger.WarnContext(ctx, "invite delivery circuit opened", "breaker", r.breaker.Name(), "error", err)
		}
		r.logger.WarnContext(ctx, "primary invite delivery failed, using fallback",
			"customer_id", d.CustomerID,
			"channel", d.Channel,
			"error", err,
		)
	}
	if fbErr := r.fallback.Notify(ctx, d); fbErr != nil {
		return fbErr
	}
	// the delivery was not handed off; surface the primary failure to the caller
	return err
}
