// Package service runs the invite workflow: invite creation, the public invite
// check, and acceptance with KYC collection and finalization.
package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"onboard/internal/identity"
	identitymodels "onboard/internal/identity/models"
	"onboard/internal/onboarding/invite"
	"onboard/internal/onboarding/lock"
	"onboard/internal/onboarding/metrics"
	"onboard/internal/onboarding/models"
	"onboard/internal/onboarding/notify"
	orgmodels "onboard/internal/organization/models"
	"onboard/pkg/attrs"
	id "onboard/pkg/domain"
	dErrors "onboard/pkg/domain-errors"
	audit "onboard/pkg/platform/audit"
	"onboard/pkg/platform/sentinel"
	"onboard/pkg/requestcontext"
)

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks

// CustomerStore persists customers. Update must reject a stale Version with
// sentinel.ErrConflict.
type CustomerStore interface {
	FindByID(ctx context.Context, customerID id.CustomerID) (*models.Customer, error)
	FindByUserID(ctx context.Context, userID id.UserID) (*models.Customer, error)
	FindByContactEmail(ctx context.Context, email string) (*models.Customer, error)
	FindByInviteContact(ctx context.Context, email, phone string) (*models.Customer, error)
	FindByInviteTokenHash(ctx context.Context, hash string) (*models.Customer, error)
	Create(ctx context.Context, c *models.Customer) error
	Update(ctx context.Context, c *models.Customer) error
}

type EntityKycEngine interface {
	UpsertEntityKyc(ctx context.Context, entityType models.EntityType, payload models.KycPayload,
		customer id.CustomerID, client id.ClientID, branch id.BranchID) (models.EntityKyc, error)
}

type IdentityResolver interface {
	Resolve(ctx context.Context, contact identity.Contact, acting id.UserID) (*identitymodels.User, error)
	ResolveContact(ctx context.Context, contact identity.Contact) (*identitymodels.User, error)
	FindByID(ctx context.Context, userID id.UserID) (*identitymodels.User, error)
}

type OrgDirectory interface {
	ResolveScope(ctx context.Context, clientID id.ClientID, branchID id.BranchID) (orgmodels.Scope, error)
	ScopeForActor(ctx context.Context, user id.UserID) (orgmodels.Scope, error)
}

type Notifier interface {
	Notify(ctx context.Context, d notify.InviteDelivery) error
}

type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}

type Locker interface {
	Acquire(ctx context.Context, key string, ttl time.Duration) (lock.Release, error)
}

// TxRunner scopes the customer save and its audit record to one transaction.
type TxRunner interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type noTx struct{}

func (noTx) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error { return fn(ctx) }

const (
	defaultInviteBaseURL = "https://app.example.com/accept-invite"
	defaultLockTTL       = 15 * time.Second
)

// Service orchestrates invites and acceptance.
type Service struct {
	customers      CustomerStore
	kyc            EntityKycEngine
	resolver       IdentityResolver
	org            OrgDirectory
	tokens         *invite.Manager
	notifier       Notifier
	auditPublisher AuditPublisher
	locker         Locker
	tx             TxRunner
	logger         *slog.Logger
	metrics        *metrics.Metrics
	tracer         trace.Tracer
	now            func() time.Time
	inviteBaseURL  string
	lockTTL        time.Duration
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func WithAuditPublisher(publisher AuditPublisher) Option {
	return func(s *Service) {
		s.auditPublisher = publisher
	}
}

func WithNotifier(n Notifier) Option {
	return func(s *Service) {
		s.notifier = n
	}
}

func WithLocker(l Locker) Option {
	return func(s *Service) {
		s.locker = l
	}
}

func WithTxRunner(tx TxRunner) Option {
	return func(s *Service) {
		s.tx = tx
	}
}

func WithTokenManager(m *invite.Manager) Option {
	return func(s *Service) {
		s.tokens = m
	}
}

func WithTracer(t trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = t
	}
}

// WithClock pins the service clock. Without it the request time from the context is used.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

func WithInviteBaseURL(url string) Option {
	return func(s *Service) {
		if url != "" {
			s.inviteBaseURL = url
		}
	}
}

func WithLockTTL(ttl time.Duration) Option {
	return func(s *Service) {
		if ttl > 0 {
			s.lockTTL = ttl
		}
	}
}

func New(customers CustomerStore, kyc EntityKycEngine, resolver IdentityResolver, org OrgDirectory, opts ...Option) *Service {
	s := &Service{
		customers:     customers,
		kyc:           kyc,
		resolver:      resolver,
		org:           org,
		tx:            noTx{},
		inviteBaseURL: defaultInviteBaseURL,
		lockTTL:       defaultLockTTL,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.tokens == nil {
		s.tokens = invite.NewManager()
	}
	if s.locker == nil {
		s.locker = lock.NewMemory(s.lockTTL)
	}
	if s.notifier == nil {
		s.notifier = notify.NewLog(s.logger)
	}
	if s.tracer == nil {
		s.tracer = otel.Tracer("onboard/onboarding")
	}
	return s
}

func (s *Service) clock(ctx context.Context) time.Time {
	if s.now != nil {
		return s.now()
	}
	return requestcontext.Now(ctx)
}

func (s *Service) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.tracer.Start(ctx, "onboarding."+name)
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

func (s *Service) loadCustomer(ctx context.Context, customerID id.CustomerID, notFoundMsg string) (*models.Customer, error) {
	c, err := s.customers.FindByID(ctx, customerID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, notFoundMsg)
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load customer")
	}
	return c, nil
}

func translateSaveError(err error) error {
	switch {
	case errors.Is(err, sentinel.ErrConflict):
		return dErrors.New(dErrors.CodeConflict, "Customer was updated concurrently, please retry")
	case errors.Is(err, sentinel.ErrNotFound):
		return dErrors.New(dErrors.CodeNotFound, "Customer not found")
	default:
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to save customer")
	}
}

// logAudit writes the audit log line and emits the audit event. Emit failures are
// logged and do not fail the operation unless the caller checks the returned error.
func (s *Service) logAudit(ctx context.Context, event audit.AuditEvent, c *models.Customer, attributes ...any) error {
	requestID := requestcontext.RequestID(ctx)
	if requestID != "" {
		attributes = append(attributes, "request_id", requestID)
	}
	args := append(attributes, "customer_id", c.ID, "event", string(event), "log_type", "audit")
	if s.logger != nil {
		s.logger.InfoContext(ctx, string(event), args...)
	}
	if s.auditPublisher == nil {
		return nil
	}
	e := audit.Event{
		ActorID:   requestcontext.UserID(ctx),
		Subject:   c.ID.String(),
		Action:    string(event),
		ClientID:  c.Metadata[models.MetaClient],
		BranchID:  c.Metadata[models.MetaBranch],
		Decision:  string(c.KycStatus),
		Reason:    attrs.ExtractString(attributes, "reason"),
		RequestID: requestID,
	}
	if err := s.auditPublisher.Emit(ctx, e); err != nil {
		if s.logger != nil {
			s.logger.ErrorContext(ctx, "failed to emit audit event", "event", string(event), "error", err)
		}
		return err
	}
	return nil
}
