// Package lock serializes invite acceptance per customer.
package lock

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"time"

	"github.com/cenkalti/backoff/v5"

	dErrors "onboard/pkg/domain-errors"
)

// Release frees a held lock. Releasing a lock that expired or was taken over is a no-op.
type Release func(ctx context.Context) error

// Locker grants exclusive, expiring ownership of a key.
type Locker interface {
	Acquire(ctx context.Context, key string, ttl time.Duration) (Release, error)
}

// CustomerKey is the lock key guarding one customer's acceptance.
func CustomerKey(customerID string) string {
	return "onboard:accept:" + customerID
}

var errBusy = dErrors.New(dErrors.CodeConflict, "Onboarding already in progress for this customer")

// tryFunc attempts one acquisition and reports whether the key was free.
type tryFunc func(ctx context.Context) (bool, error)

// acquireWithin retries try until it succeeds or maxWait elapses. Busy keys end in
// a Conflict error; backend failures are not retried.
func acquireWithin(ctx context.Context, maxWait time.Duration, try tryFunc) error {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 20 * time.Millisecond
	b.MaxInterval = 250 * time.Millisecond

	_, err := backoff.Retry(ctx, func() (struct{}, error) {
		ok, err := try(ctx)
		if err != nil {
			return struct{}{}, backoff.Permanent(err)
		}
		if !ok {
			return struct{}{}, errBusy
		}
		return struct{}{}, nil
	}, backoff.WithBackOff(b), backoff.WithMaxElapsedTime(maxWait))
	if err == nil {
		return nil
	}
	if dErrors.HasCode(err, dErrors.CodeConflict) || ctx.Err() != nil {
		return errBusy
	}
	return dErrors.Wrap(err, dErrors.CodeInternal, "failed to acquire customer lock")
}

func ownerToken() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
