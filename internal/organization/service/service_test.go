package service

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/suite"

	"onboard/internal/organization/metrics"
	"onboard/internal/organization/store/branch"
	"onboard/internal/organization/store/client"
	id "onboard/pkg/domain"
	dErrors "onboard/pkg/domain-errors"
)

type ServiceSuite struct {
	suite.Suite
	ctx     context.Context
	service *Service
	metrics *metrics.Metrics
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.ctx = context.Background()
	s.metrics = metrics.New(prometheus.NewRegistry())
	s.service = New(client.NewInMemory(), branch.NewInMemory(),
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
		WithMetrics(s.metrics),
	)
}

func (s *ServiceSuite) TestResolveScope() {
	owner := id.UserID(uuid.New())
	c, b, err := s.service.SeedBootstrap(s.ctx, owner, id.UserID(uuid.New()))
	s.Require().NoError(err)

	s.Run("client only", func() {
		scope, err := s.service.ResolveScope(s.ctx, c.ID, id.BranchID{})
		s.Require().NoError(err)
		s.Equal(c.ID, scope.Client.ID)
		s.Nil(scope.Branch)
	})

	s.Run("client and branch", func() {
		scope, err := s.service.ResolveScope(s.ctx, c.ID, b.ID)
		s.Require().NoError(err)
		s.Equal(b.ID, scope.BranchID())
	})

	s.Run("unknown client", func() {
		_, err := s.service.ResolveScope(s.ctx, id.ClientID(uuid.New()), id.BranchID{})
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
		s.Equal("Client not found", err.Error())
	})

	s.Run("unknown branch", func() {
		_, err := s.service.ResolveScope(s.ctx, c.ID, id.BranchID(uuid.New()))
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
		s.Equal("Branch not found", err.Error())
	})

	s.Run("branch of another client", func() {
		other, err := s.service.CreateClient(s.ctx, "Other", "", id.UserID{})
		s.Require().NoError(err)

		_, err = s.service.ResolveScope(s.ctx, other.ID, b.ID)
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
		s.Equal(float64(1), testutil.ToFloat64(s.metrics.ScopeRejected.WithLabelValues("branch_mismatch")))
	})
}

func (s *ServiceSuite) TestScopeForActor() {
	owner := id.UserID(uuid.New())
	manager := id.UserID(uuid.New())
	c, b, err := s.service.SeedBootstrap(s.ctx, owner, manager)
	s.Require().NoError(err)

	s.Run("branch manager acts for branch and client", func() {
		scope, err := s.service.ScopeForActor(s.ctx, manager)
		s.Require().NoError(err)
		s.Equal(c.ID, scope.Client.ID)
		s.Equal(b.ID, scope.BranchID())
	})

	s.Run("client owner acts client-wide", func() {
		scope, err := s.service.ScopeForActor(s.ctx, owner)
		s.Require().NoError(err)
		s.Equal(c.ID, scope.Client.ID)
		s.Nil(scope.Branch)
	})

	s.Run("anyone else has no scope", func() {
		scope, err := s.service.ScopeForActor(s.ctx, id.UserID(uuid.New()))
		s.Require().NoError(err)
		s.True(scope.IsEmpty())
	})
}

func (s *ServiceSuite) TestCreateValidation() {
	_, err := s.service.CreateClient(s.ctx, "", "", id.UserID{})
	s.True(dErrors.HasCode(err, dErrors.CodeValidation))

	_, err = s.service.CreateBranch(s.ctx, id.ClientID(uuid.New()), "Branch", "", id.UserID{})
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
}
