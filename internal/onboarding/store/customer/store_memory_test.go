package customer

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"onboard/internal/onboarding/models"
	id "onboard/pkg/domain"
	"onboard/pkg/platform/sentinel"
)

type InMemorySuite struct {
	suite.Suite
	store *InMemory
	ctx   context.Context
	now   time.Time
}

func TestInMemorySuite(t *testing.T) {
	suite.Run(t, new(InMemorySuite))
}

func (s *InMemorySuite) SetupTest() {
	s.store = NewInMemory()
	s.ctx = context.Background()
	s.now = time.Date(2026, 4, 1, 8, 0, 0, 0, time.UTC)
}

func (s *InMemorySuite) newCustomer() *models.Customer {
	c, err := models.NewCustomer(id.CustomerID(uuid.New()), id.UserID(uuid.New()), s.now)
	s.Require().NoError(err)
	return c
}

func (s *InMemorySuite) TestLookups() {
	c := s.newCustomer()
	c.UserID = id.UserID(uuid.New())
	c.InviteTokenHash = "hash-1"
	expires := s.now.Add(time.Hour)
	c.InviteTokenExpiresAt = &expires
	c.PersonalKyc.PersonalForm = &models.PersonalForm{
		ContactDetails: models.ContactDetails{Email: "Ana@Example.com"},
	}
	s.Require().NoError(s.store.Create(s.ctx, c))

	s.Run("by id keeps token fields", func() {
		found, err := s.store.FindByID(s.ctx, c.ID)
		s.Require().NoError(err)
		s.Equal("hash-1", found.InviteTokenHash)
		s.Equal(expires, *found.InviteTokenExpiresAt)
		s.EqualValues(1, found.Version)
	})

	s.Run("by user", func() {
		found, err := s.store.FindByUserID(s.ctx, c.UserID)
		s.Require().NoError(err)
		s.Equal(c.ID, found.ID)
	})

	s.Run("by normalized contact email", func() {
		found, err := s.store.FindByContactEmail(s.ctx, "ana@example.com")
		s.Require().NoError(err)
		s.Equal(c.ID, found.ID)
	})

	s.Run("by token hash", func() {
		found, err := s.store.FindByInviteTokenHash(s.ctx, "hash-1")
		s.Require().NoError(err)
		s.Equal(c.ID, found.ID)
	})

	s.Run("unknown values are not found", func() {
		_, err := s.store.FindByID(s.ctx, id.CustomerID(uuid.New()))
		s.ErrorIs(err, sentinel.ErrNotFound)
		_, err = s.store.FindByInviteTokenHash(s.ctx, "")
		s.ErrorIs(err, sentinel.ErrNotFound)
		_, err = s.store.FindByUserID(s.ctx, id.UserID{})
		s.ErrorIs(err, sentinel.ErrNotFound)
	})
}

func (s *InMemorySuite) TestFindByInviteContact() {
	pending := s.newCustomer()
	pending.Metadata.SetMeta(models.MetaEmail, "ana@example.com")
	pending.Metadata.SetMeta(models.MetaPhone, "+61400000002")
	s.Require().NoError(s.store.Create(s.ctx, pending))

	accepted := s.newCustomer()
	accepted.UserID = id.UserID(uuid.New())
	accepted.Metadata.SetMeta(models.MetaEmail, "bo@example.com")
	s.Require().NoError(s.store.Create(s.ctx, accepted))

	s.Run("email", func() {
		found, err := s.store.FindByInviteContact(s.ctx, "ana@example.com", "")
		s.Require().NoError(err)
		s.Equal(pending.ID, found.ID)
	})

	s.Run("phone when the email misses", func() {
		found, err := s.store.FindByInviteContact(s.ctx, "other@example.com", "+61400000002")
		s.Require().NoError(err)
		s.Equal(pending.ID, found.ID)
	})

	s.Run("customers linked to a user are skipped", func() {
		_, err := s.store.FindByInviteContact(s.ctx, "bo@example.com", "")
		s.ErrorIs(err, sentinel.ErrNotFound)
	})

	s.Run("empty contact", func() {
		_, err := s.store.FindByInviteContact(s.ctx, "", "")
		s.ErrorIs(err, sentinel.ErrNotFound)
	})
}

func (s *InMemorySuite) TestOptimisticVersion() {
	c := s.newCustomer()
	s.Require().NoError(s.store.Create(s.ctx, c))

	first, err := s.store.FindByID(s.ctx, c.ID)
	s.Require().NoError(err)
	second, err := s.store.FindByID(s.ctx, c.ID)
	s.Require().NoError(err)

	first.KycNotes = "first"
	s.Require().NoError(s.store.Update(s.ctx, first))
	s.EqualValues(2, first.Version)

	second.KycNotes = "second"
	s.ErrorIs(s.store.Update(s.ctx, second), sentinel.ErrConflict)

	stored, err := s.store.FindByID(s.ctx, c.ID)
	s.Require().NoError(err)
	s.Equal("first", stored.KycNotes)
}

func (s *InMemorySuite) TestIsolation() {
	c := s.newCustomer()
	s.Require().NoError(s.store.Create(s.ctx, c))

	c.Metadata["email"] = "changed@example.com"
	found, err := s.store.FindByID(s.ctx, c.ID)
	s.Require().NoError(err)
	s.Empty(found.Metadata["email"])
}

func (s *InMemorySuite) TestTokenHashUnique() {
	a := s.newCustomer()
	a.InviteTokenHash = "dup"
	s.Require().NoError(s.store.Create(s.ctx, a))

	b := s.newCustomer()
	b.InviteTokenHash = "dup"
	s.ErrorIs(s.store.Create(s.ctx, b), sentinel.ErrConflict)
}
