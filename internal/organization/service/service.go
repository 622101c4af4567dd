// Package service manages the client/branch directory and resolves invite scopes.
package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"onboard/internal/organization/metrics"
	"onboard/internal/organization/models"
	id "onboard/pkg/domain"
	dErrors "onboard/pkg/domain-errors"
	"onboard/pkg/platform/sentinel"
)

type ClientStore interface {
	Create(ctx context.Context, client *models.Client) error
	FindByID(ctx context.Context, clientID id.ClientID) (*models.Client, error)
	FindByOwner(ctx context.Context, owner id.UserID) (*models.Client, error)
}

type BranchStore interface {
	Create(ctx context.Context, branch *models.Branch) error
	FindByID(ctx context.Context, branchID id.BranchID) (*models.Branch, error)
	FindByManager(ctx context.Context, manager id.UserID) (*models.Branch, error)
}

// Service orchestrates client and branch lookups.
type Service struct {
	clients  ClientStore
	branches BranchStore
	logger   *slog.Logger
	metrics  *metrics.Metrics
	now      func() time.Time
}

type Option func(s *Service)

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

func New(clients ClientStore, branches BranchStore, opts ...Option) *Service {
	s := &Service{clients: clients, branches: branches, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) CreateClient(ctx context.Context, name, email string, owner id.UserID) (*models.Client, error) {
	c, err := models.NewClient(id.ClientID(uuid.New()), name, email, owner, s.now())
	if err != nil {
		if dErrors.HasCode(err, dErrors.CodeInvariantViolation) {
			return nil, dErrors.New(dErrors.CodeValidation, err.Error())
		}
		return nil, err
	}
	if err := s.clients.Create(ctx, c); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create client")
	}
	if s.metrics != nil {
		s.metrics.ClientsCreated.Inc()
	}
	s.log(ctx, "client_created", "client_id", c.ID)
	return c, nil
}

func (s *Service) CreateBranch(ctx context.Context, clientID id.ClientID, name, code string, manager id.UserID) (*models.Branch, error) {
	if _, err := s.GetClient(ctx, clientID); err != nil {
		return nil, err
	}
	b, err := models.NewBranch(id.BranchID(uuid.New()), clientID, name, code, manager, s.now())
	if err != nil {
		if dErrors.HasCode(err, dErrors.CodeInvariantViolation) {
			return nil, dErrors.New(dErrors.CodeValidation, err.Error())
		}
		return nil, err
	}
	if err := s.branches.Create(ctx, b); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create branch")
	}
	if s.metrics != nil {
		s.metrics.BranchesCreated.Inc()
	}
	s.log(ctx, "branch_created", "client_id", clientID, "branch_id", b.ID)
	return b, nil
}

func (s *Service) GetClient(ctx context.Context, clientID id.ClientID) (*models.Client, error) {
	c, err := s.clients.FindByID(ctx, clientID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "Client not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load client")
	}
	return c, nil
}

// ResolveScope checks that the client exists and, when given, that the branch exists
// and belongs to it.
func (s *Service) ResolveScope(ctx context.Context, clientID id.ClientID, branchID id.BranchID) (models.Scope, error) {
	if s.metrics != nil {
		defer s.metrics.ObserveResolveScope(time.Now())
	}
	c, err := s.GetClient(ctx, clientID)
	if err != nil {
		if dErrors.HasCode(err, dErrors.CodeNotFound) {
			s.rejected("client_not_found")
		}
		return models.Scope{}, err
	}
	scope := models.Scope{Client: c}
	if branchID.IsNil() {
		return scope, nil
	}

	b, err := s.branches.FindByID(ctx, branchID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			s.rejected("branch_not_found")
			return models.Scope{}, dErrors.New(dErrors.CodeNotFound, "Branch not found")
		}
		return models.Scope{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load branch")
	}
	if !b.BelongsTo(c.ID) {
		s.rejected("branch_mismatch")
		return models.Scope{}, dErrors.New(dErrors.CodeValidation, "Branch does not belong to the client")
	}
	scope.Branch = b
	return scope, nil
}

// ScopeForActor derives the scope a user operates in: a branch manager acts for their
// branch and its client, a client owner for the whole client. Anyone else gets an
// empty scope.
func (s *Service) ScopeForActor(ctx context.Context, user id.UserID) (models.Scope, error) {
	if user.IsNil() {
		return models.Scope{}, nil
	}
	b, err := s.branches.FindByManager(ctx, user)
	switch {
	case err == nil:
		c, err := s.GetClient(ctx, b.ClientID)
		if err != nil {
			return models.Scope{}, err
		}
		return models.Scope{Client: c, Branch: b}, nil
	case !errors.Is(err, sentinel.ErrNotFound):
		return models.Scope{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load branch for user")
	}

	c, err := s.clients.FindByOwner(ctx, user)
	switch {
	case err == nil:
		return models.Scope{Client: c}, nil
	case errors.Is(err, sentinel.ErrNotFound):
		return models.Scope{}, nil
	default:
		return models.Scope{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load client for user")
	}
}

func (s *Service) rejected(reason string) {
	if s.metrics != nil {
		s.metrics.IncrementScopeRejected(reason)
	}
}

func (s *Service) log(ctx context.Context, event string, attributes ...any) {
	if s.logger == nil {
		return
	}
	s.logger.InfoContext(ctx, event, append(attributes, "event", event)...)
}
