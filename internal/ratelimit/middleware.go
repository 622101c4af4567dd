package ratelimit

import (
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	dErrors "onboard/pkg/domain-errors"
	"onboard/pkg/platform/httputil"
)

// Middleware enforces a Policy per client IP. Store failures fail open: an outage
// of the counter backend must not take the endpoint down with it.
type Middleware struct {
	store    Store
	logger   *slog.Logger
	rejected *prometheus.CounterVec
	disabled bool
}

type Option func(*Middleware)

// WithDisabled turns limiting off (local demos, load tests).
func WithDisabled(disabled bool) Option {
	return func(m *Middleware) {
		m.disabled = disabled
	}
}

// WithRegisterer records rejections as onboard_ratelimit_rejected_total{class}.
func WithRegisterer(reg prometheus.Registerer) Option {
	return func(m *Middleware) {
		m.rejected = promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "onboard_ratelimit_rejected_total",
			Help: "Requests rejected by the per-IP rate limiter",
		}, []string{"class"})
	}
}

func New(store Store, logger *slog.Logger, opts ...Option) *Middleware {
	m := &Middleware{store: store, logger: logger}
	for _, opt := range opts {
		opt(m)
	}
	if m.disabled && logger != nil {
		logger.Info("rate limiting disabled")
	}
	return m
}

// Limit wraps next with the given policy.
func (m *Middleware) Limit(p Policy) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if m.disabled || p.Limit <= 0 {
				next.ServeHTTP(w, r)
				return
			}

			ip := ClientIP(r)
			result, err := m.store.Allow(r.Context(), Key(p.Class, ip), p.Limit, p.Window)
			if err != nil {
				if m.logger != nil {
					m.logger.ErrorContext(r.Context(), "failed to check rate limit", "error", err, "class", p.Class)
				}
				next.ServeHTTP(w, r)
				return
			}

			addRateLimitHeaders(w, result)
			if !result.Allowed {
				if m.rejected != nil {
					m.rejected.WithLabelValues(p.Class).Inc()
				}
				w.Header().Set("Retry-After", strconv.Itoa(result.RetryAfter))
				httputil.WriteError(w, dErrors.New(dErrors.CodeRateLimited, "Too many requests. Please try again later."))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func addRateLimitHeaders(w http.ResponseWriter, result *Result) {
	w.Header().Set("X-RateLimit-Limit", strconv.Itoa(result.Limit))
	w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(result.Remaining))
	w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(result.ResetAt.Unix(), 10))
}

// ClientIP prefers the first X-Forwarded-For hop, then X-Real-IP, then RemoteAddr.
func ClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		return strings.TrimSpace(first)
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return strings.TrimSpace(xri)
	}
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}
