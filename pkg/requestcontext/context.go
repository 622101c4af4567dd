// Package requestcontext carries request-scoped values (acting user, request ID,
// request time) so services can read them without importing net/http.
package requestcontext

import (
	"context"
	"time"

	id "onboard/pkg/domain"
)

type (
	userIDKey      struct{}
	requestIDKey   struct{}
	requestTimeKey struct{}
)

// UserID returns the authenticated user, or the nil ID for anonymous requests.
func UserID(ctx context.Context) id.UserID {
	if userID, ok := ctx.Value(userIDKey{}).(id.UserID); ok {
		return userID
	}
	return id.UserID{}
}

func WithUserID(ctx context.Context, userID id.UserID) context.Context {
	return context.WithValue(ctx, userIDKey{}, userID)
}

func RequestID(ctx context.Context) string {
	if reqID, ok := ctx.Value(requestIDKey{}).(string); ok {
		return reqID
	}
	return ""
}

func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, requestID)
}

// Now returns the time pinned for this request. Invite expiry checks and KYC
// history entries within one request all see the same instant. Outside a
// request (workers, tests) it falls back to time.Now.
func Now(ctx context.Context) time.Time {
	if t, ok := ctx.Value(requestTimeKey{}).(time.Time); ok {
		return t
	}
	return time.Now()
}

func WithTime(ctx context.Context, t time.Time) context.Context {
	return context.WithValue(ctx, requestTimeKey{}, t)
}
