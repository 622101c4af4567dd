package branch

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"onboard/internal/organization/models"
	id "onboard/pkg/domain"
	"onboard/pkg/platform/sentinel"
)

type BranchStoreSuite struct {
	suite.Suite
	store *InMemory
	ctx   context.Context
}

func (s *BranchStoreSuite) SetupTest() {
	s.store = NewInMemory()
	s.ctx = context.Background()
}

func TestBranchStoreSuite(t *testing.T) {
	suite.Run(t, new(BranchStoreSuite))
}

func (s *BranchStoreSuite) TestLookups() {
	manager := id.UserID(uuid.New())
	b, err := models.NewBranch(id.BranchID(uuid.New()), id.ClientID(uuid.New()), "Chittagong", "CTG", manager, time.Now())
	s.Require().NoError(err)
	s.Require().NoError(s.store.Create(s.ctx, b))

	s.Run("finds by ID", func() {
		found, err := s.store.FindByID(s.ctx, b.ID)
		s.Require().NoError(err)
		s.Equal(b.ClientID, found.ClientID)
	})

	s.Run("finds by manager", func() {
		found, err := s.store.FindByManager(s.ctx, manager)
		s.Require().NoError(err)
		s.Equal(b.ID, found.ID)
	})

	s.Run("returned branch is a copy", func() {
		found, err := s.store.FindByID(s.ctx, b.ID)
		s.Require().NoError(err)
		found.Name = "changed"

		again, err := s.store.FindByID(s.ctx, b.ID)
		s.Require().NoError(err)
		s.Equal("Chittagong", again.Name)
	})

	s.Run("unknown manager is not found", func() {
		_, err := s.store.FindByManager(s.ctx, id.UserID(uuid.New()))
		s.ErrorIs(err, sentinel.ErrNotFound)
	})
}
