package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"onboard/internal/onboarding/models"
	"onboard/internal/onboarding/service"
	"onboard/internal/platform/metrics"
	"onboard/internal/platform/middleware"
	"onboard/internal/risk"
	id "onboard/pkg/domain"
	dErrors "onboard/pkg/domain-errors"
	"onboard/pkg/platform/httputil"
	"onboard/pkg/requestcontext"
)

// Service defines the onboarding operations exposed over HTTP.
type Service interface {
	CreateInvite(ctx context.Context, req *models.CreateInviteRequest) (*models.InviteResult, error)
	ValidateInvite(ctx context.Context, req *models.ValidateInviteRequest) (*models.InviteStatus, error)
	AcceptInvite(ctx context.Context, req *models.AcceptInviteRequest) (*models.AcceptResult, error)
	GetCustomer(ctx context.Context, customerID id.CustomerID) (*service.CustomerView, error)
	Risk(ctx context.Context, customerID id.CustomerID) (risk.Result, error)
}

// Handler serves the customer onboarding endpoints.
type Handler struct {
	onboarding   Service
	logger       *slog.Logger
	metrics      *metrics.Metrics
	jwtValidator middleware.JWTValidator
	// devMode echoes invite links and tokens back to the inviter.
	devMode bool
	// publicLimit guards the unauthenticated token lookup against probing.
	publicLimit func(http.Handler) http.Handler
}

type Option func(*Handler)

// WithPublicLimiter wraps the public invite validation route.
func WithPublicLimiter(mw func(http.Handler) http.Handler) Option {
	return func(h *Handler) {
		h.publicLimit = mw
	}
}

// New creates a new onboarding Handler.
func New(
	onboarding Service,
	logger *slog.Logger,
	metrics *metrics.Metrics,
	jwtValidator middleware.JWTValidator,
	devMode bool,
	opts ...Option,
) *Handler {
	h := &Handler{
		onboarding:   onboarding,
		logger:       logger,
		metrics:      metrics,
		jwtValidator: jwtValidator,
		devMode:      devMode,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Register registers the onboarding routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	customerRouter := chi.NewRouter()
	customerRouter.Use(middleware.Recovery(h.logger))
	customerRouter.Use(middleware.RequestID)
	customerRouter.Use(middleware.Logger(h.logger, h.metrics))
	customerRouter.Use(chimw.Timeout(30 * time.Second))

	customerRouter.Group(func(r chi.Router) {
		if h.publicLimit != nil {
			r.Use(h.publicLimit)
		}
		r.Get("/invite/validate", h.handleValidateInvite)
	})
	customerRouter.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth(h.jwtValidator, h.logger))
		r.Post("/invite", h.handleCreateInvite)
		r.Post("/register/onboarding", h.handleAcceptInvite)
		r.Get("/{id}", h.handleGetCustomer)
		r.Get("/{id}/risk", h.handleGetRisk)
	})

	r.Mount("/customers", customerRouter)
}

func (h *Handler) handleCreateInvite(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req models.CreateInviteRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		h.fail(ctx, w, "invalid create invite request", err)
		return
	}

	res, err := h.onboarding.CreateInvite(ctx, &req)
	if err != nil {
		h.fail(ctx, w, "failed to create invite", err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, toInviteResponse(res, h.devMode))
}

func (h *Handler) handleValidateInvite(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	q := r.URL.Query()

	status, err := h.onboarding.ValidateInvite(ctx, &models.ValidateInviteRequest{
		Token:      q.Get("token"),
		CustomerID: q.Get("cid"),
	})
	if err != nil {
		h.fail(ctx, w, "invite validation failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, envelope{Success: true, Data: status})
}

func (h *Handler) handleAcceptInvite(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req models.AcceptInviteRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		h.fail(ctx, w, "invalid accept invite request", err)
		return
	}

	res, err := h.onboarding.AcceptInvite(ctx, &req)
	if err != nil {
		h.fail(ctx, w, "failed to accept invite", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toAcceptResponse(res, req.RequestedType))
}

func (h *Handler) handleGetCustomer(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	customerID, err := customerIDParam(r)
	if err != nil {
		h.fail(ctx, w, "invalid customer id", err)
		return
	}

	view, err := h.onboarding.GetCustomer(ctx, customerID)
	if err != nil {
		h.fail(ctx, w, "failed to load customer", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, envelope{Success: true, Data: toCustomerResponse(view)})
}

func (h *Handler) handleGetRisk(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	customerID, err := customerIDParam(r)
	if err != nil {
		h.fail(ctx, w, "invalid customer id", err)
		return
	}

	result, err := h.onboarding.Risk(ctx, customerID)
	if err != nil {
		h.fail(ctx, w, "failed to assess customer risk", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, envelope{Success: true, Data: result})
}

// customerIDParam maps a malformed id to not found, as an unknown id would be.
func customerIDParam(r *http.Request) (id.CustomerID, error) {
	customerID, err := id.ParseCustomerID(chi.URLParam(r, "id"))
	if err != nil {
		return id.CustomerID{}, dErrors.New(dErrors.CodeNotFound, "Customer not found")
	}
	return customerID, nil
}

// fail logs client errors at warn and everything else at error, then writes the envelope.
func (h *Handler) fail(ctx context.Context, w http.ResponseWriter, msg string, err error) {
	args := []any{
		"request_id", requestcontext.RequestID(ctx),
		"code", string(dErrors.CodeOf(err)),
		"error", err.Error(),
	}
	if httputil.StatusFor(dErrors.CodeOf(err)) >= http.StatusInternalServerError {
		h.logger.ErrorContext(ctx, msg, args...)
	} else {
		h.logger.WarnContext(ctx, msg, args...)
	}
	httputil.WriteError(w, err)
}
