package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	id "onboard/pkg/domain"
	dErrors "onboard/pkg/domain-errors"
	"onboard/pkg/platform/httputil"
	"onboard/pkg/requestcontext"
)

// JWTValidator defines the interface for validating bearer tokens.
type JWTValidator interface {
	ValidateToken(tokenString string) (*JWTClaims, error)
}

// JWTClaims represents the claims the middleware needs from a validated token.
type JWTClaims struct {
	UserID string
}

// RequireAuth rejects requests without a valid bearer token and stores the acting
// user in the request context.
func RequireAuth(validator JWTValidator, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, ok := authenticate(w, r, validator, logger)
			if !ok {
				return
			}
			if userID.IsNil() {
				ctx := r.Context()
				logger.WarnContext(ctx, "unauthorized access - missing token",
					"request_id", requestcontext.RequestID(ctx),
				)
				httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "Missing or invalid Authorization header"))
				return
			}
			next.ServeHTTP(w, r.WithContext(requestcontext.WithUserID(r.Context(), userID)))
		})
	}
}

// OptionalAuth attaches the acting user when a valid token is present. An invalid
// token is still rejected; a missing one is not.
func OptionalAuth(validator JWTValidator, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, ok := authenticate(w, r, validator, logger)
			if !ok {
				return
			}
			ctx := r.Context()
			if !userID.IsNil() {
				ctx = requestcontext.WithUserID(ctx, userID)
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// authenticate returns the nil ID when no bearer token is sent, and false after
// writing a 401 when the token is present but unusable.
func authenticate(w http.ResponseWriter, r *http.Request, validator JWTValidator, logger *slog.Logger) (id.UserID, bool) {
	token, found := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
	if !found || token == "" {
		return id.UserID{}, true
	}

	ctx := r.Context()
	claims, err := validator.ValidateToken(token)
	if err != nil {
		logger.WarnContext(ctx, "unauthorized access - invalid token",
			"error", err,
			"request_id", requestcontext.RequestID(ctx),
		)
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "Invalid or expired token"))
		return id.UserID{}, false
	}

	userID, err := id.ParseUserID(claims.UserID)
	if err != nil {
		logger.WarnContext(ctx, "unauthorized access - malformed subject",
			"request_id", requestcontext.RequestID(ctx),
		)
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "Invalid or expired token"))
		return id.UserID{}, false
	}
	return userID, true
}
