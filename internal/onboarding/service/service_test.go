package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"onboard/internal/identity"
	identitymodels "onboard/internal/identity/models"
	userstore "onboard/internal/identity/store/user"
	"onboard/internal/onboarding/kyc"
	"onboard/internal/onboarding/lock"
	"onboard/internal/onboarding/metrics"
	"onboard/internal/onboarding/models"
	"onboard/internal/onboarding/notify"
	"onboard/internal/onboarding/service/mocks"
	customerstore "onboard/internal/onboarding/store/customer"
	"onboard/internal/onboarding/store/entitykyc"
	orgmodels "onboard/internal/organization/models"
	orgservice "onboard/internal/organization/service"
	"onboard/internal/organization/store/branch"
	"onboard/internal/organization/store/client"
	id "onboard/pkg/domain"
	dErrors "onboard/pkg/domain-errors"
	audit "onboard/pkg/platform/audit"
	"onboard/pkg/platform/sentinel"
	"onboard/pkg/requestcontext"
)

const (
	inviteeEmail = "jane@example.com"
	inviteePhone = "+61400000001"
	baseURL      = "https://onboard.test/accept"
)

type ServiceSuite struct {
	suite.Suite
	ctx          context.Context
	mockNotifier *mocks.MockNotifier
	mockAudit    *mocks.MockAuditPublisher
	customers    *customerstore.InMemory
	locker       *lock.Memory
	metrics      *metrics.Metrics
	service      *Service
	now          time.Time

	admin    id.UserID
	owner    id.UserID
	manager  id.UserID
	stranger id.UserID
	invitee  *identitymodels.User
	client   *orgmodels.Client
	branch   *orgmodels.Branch

	deliveries []notify.InviteDelivery
	notifyErr  error
	events     []audit.Event
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.ctx = context.Background()
	s.now = time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)
	s.deliveries, s.events, s.notifyErr = nil, nil, nil

	ctrl := gomock.NewController(s.T())
	s.mockNotifier = mocks.NewMockNotifier(ctrl)
	s.mockAudit = mocks.NewMockAuditPublisher(ctrl)
	s.mockNotifier.EXPECT().Notify(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, d notify.InviteDelivery) error {
			s.deliveries = append(s.deliveries, d)
			return s.notifyErr
		}).AnyTimes()
	s.mockAudit.EXPECT().Emit(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, e audit.Event) error {
			s.events = append(s.events, e)
			return nil
		}).AnyTimes()

	users := userstore.NewInMemory()
	s.admin = s.createUser(users, "admin@onboard.test", "", identitymodels.UserTypeAdmin).ID
	s.owner = s.createUser(users, "owner@acme.test", "", identitymodels.UserTypeClient).ID
	s.manager = s.createUser(users, "manager@acme.test", "", identitymodels.UserTypeBranch).ID
	s.invitee = s.createUser(users, inviteeEmail, inviteePhone, identitymodels.UserTypeCustomer)
	s.stranger = s.createUser(users, "stranger@example.com", "", identitymodels.UserTypeCustomer).ID

	org := orgservice.New(client.NewInMemory(), branch.NewInMemory())
	var err error
	s.client, s.branch, err = org.SeedBootstrap(s.ctx, s.owner, s.manager)
	s.Require().NoError(err)

	s.customers = customerstore.NewInMemory()
	s.locker = lock.NewMemory(20 * time.Millisecond)
	s.metrics = metrics.New(prometheus.NewRegistry())
	clock := func() time.Time { return s.now }
	s.service = New(
		s.customers,
		kyc.NewEngine(entitykyc.NewInMemory(), kyc.WithClock(clock)),
		identity.NewResolver(users),
		org,
		WithNotifier(s.mockNotifier),
		WithAuditPublisher(s.mockAudit),
		WithLocker(s.locker),
		WithMetrics(s.metrics),
		WithClock(clock),
		WithInviteBaseURL(baseURL),
	)
}

func (s *ServiceSuite) createUser(users *userstore.InMemory, mail, phone string, typ identitymodels.UserType) *identitymodels.User {
	u, err := identitymodels.NewUser(id.UserID(uuid.New()), mail, phone, "", typ, s.now)
	s.Require().NoError(err)
	s.Require().NoError(users.Create(s.ctx, u))
	return u
}

func (s *ServiceSuite) as(user id.UserID) context.Context {
	return requestcontext.WithUserID(s.ctx, user)
}

func (s *ServiceSuite) invite(relationType string) *models.InviteResult {
	res, err := s.service.CreateInvite(s.as(s.owner), &models.CreateInviteRequest{
		Contact:      models.ContactInput{Email: inviteeEmail},
		RelationType: relationType,
	})
	s.Require().NoError(err)
	return res
}

func (s *ServiceSuite) stored(customerID id.CustomerID) *models.Customer {
	c, err := s.customers.FindByID(s.ctx, customerID)
	s.Require().NoError(err)
	return c
}

func (s *ServiceSuite) eventActions() []string {
	var out []string
	for _, e := range s.events {
		out = append(out, e.Action)
	}
	return out
}

func personalKyc() *models.PersonalKyc {
	return &models.PersonalKyc{PersonalForm: &models.PersonalForm{
		CustomerDetails:    models.CustomerDetails{GivenName: "Jane", Surname: "Doe"},
		ContactDetails:     models.ContactDetails{Email: inviteeEmail},
		EmploymentDetails:  models.EmploymentDetails{Occupation: "Engineer", Industry: "Technology"},
		ResidentialAddress: models.Address{Country: "Australia"},
	}}
}

func companyKyc() models.KycPayload {
	return models.KycPayload{
		"general_information": json.RawMessage(`{"legal_name":"Acme Pty Ltd"}`),
	}
}

func (s *ServiceSuite) TestCreateInvite() {
	s.Run("new contact creates a customer scoped to the inviter's client", func() {
		res := s.invite("")

		s.True(res.Created)
		s.Equal(baseURL+"?token="+res.Token+"&cid="+res.CustomerID.String(), res.URL)

		c := s.stored(res.CustomerID)
		s.Require().Len(c.Relations, 1)
		s.Equal(s.client.ID, c.Relations[0].Client)
		s.True(c.Relations[0].Branch.IsNil())
		s.Equal(models.EntityIndividual, c.Relations[0].Type)
		s.Equal(inviteeEmail, c.Metadata[models.MetaEmail])
		s.Equal(s.client.ID.String(), c.Metadata[models.MetaClient])
		s.Equal(s.owner, c.InvitedBy)
		s.True(c.IsInviteActive(s.now))
		s.Equal(models.StateInvited, c.State())

		s.Require().NotEmpty(s.deliveries)
		s.Equal(notify.ChannelEmail, s.deliveries[0].Channel)
		s.Equal("Default Client invited you to register", s.deliveries[0].Subject)
		s.Equal(res.URL, s.deliveries[0].URL)
		s.Contains(s.eventActions(), string(audit.EventInviteCreated))
	})

	s.Run("re-inviting reuses the customer and invalidates the old token", func() {
		first := s.invite("")
		second := s.invite("")

		s.Equal(first.CustomerID, second.CustomerID)
		s.False(second.Created)

		_, err := s.service.ValidateInvite(s.ctx, &models.ValidateInviteRequest{Token: first.Token, CustomerID: first.CustomerID.String()})
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidToken))

		_, err = s.service.ValidateInvite(s.ctx, &models.ValidateInviteRequest{Token: second.Token, CustomerID: second.CustomerID.String()})
		s.Require().NoError(err)
		s.Len(s.stored(second.CustomerID).Relations, 1, "relation upsert is idempotent")
	})

	s.Run("branch manager invites under their branch", func() {
		res, err := s.service.CreateInvite(s.as(s.manager), &models.CreateInviteRequest{
			Contact:           models.ContactInput{Email: "bob@example.com"},
			OnboardingChannel: "online",
		})
		s.Require().NoError(err)

		c := s.stored(res.CustomerID)
		s.Require().Len(c.Relations, 1)
		s.Equal(s.branch.ID, c.Relations[0].Branch)
		s.Equal(s.branch.ID.String(), c.Metadata[models.MetaBranch])
		s.Equal("online", c.Metadata[models.MetaChannel])
	})

	s.Run("explicit client and branch are checked against the directory", func() {
		_, err := s.service.CreateInvite(s.as(s.owner), &models.CreateInviteRequest{
			Contact: models.ContactInput{Email: "x@example.com"},
			Client:  s.client.ID.String(),
			Branch:  uuid.NewString(),
		})
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})

	s.Run("actor without scope must name a client", func() {
		_, err := s.service.CreateInvite(s.as(s.admin), &models.CreateInviteRequest{
			Contact: models.ContactInput{Email: "x@example.com"},
		})
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
	})

	s.Run("admin may name any client", func() {
		res, err := s.service.CreateInvite(s.as(s.admin), &models.CreateInviteRequest{
			Contact: models.ContactInput{Email: "x@example.com"},
			Client:  s.client.ID.String(),
			Branch:  s.branch.ID.String(),
		})
		s.Require().NoError(err)
		s.Equal(s.branch.ID, s.stored(res.CustomerID).Relations[0].Branch)
	})

	s.Run("contact is required", func() {
		_, err := s.service.CreateInvite(s.as(s.owner), &models.CreateInviteRequest{})
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
	})

	s.Run("unauthenticated", func() {
		_, err := s.service.CreateInvite(s.ctx, &models.CreateInviteRequest{Contact: models.ContactInput{Email: inviteeEmail}})
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeUnauthorized))
	})
}

func (s *ServiceSuite) TestCreateInvite_ReusesPendingCustomerByPhone() {
	req := func() *models.CreateInviteRequest {
		return &models.CreateInviteRequest{Contact: models.ContactInput{Phone: "+61400000077"}}
	}
	first, err := s.service.CreateInvite(s.as(s.owner), req())
	s.Require().NoError(err)
	s.True(first.Created)

	second, err := s.service.CreateInvite(s.as(s.owner), req())
	s.Require().NoError(err)
	s.False(second.Created)
	s.Equal(first.CustomerID, second.CustomerID)

	_, err = s.service.ValidateInvite(s.ctx, &models.ValidateInviteRequest{Token: first.Token, CustomerID: first.CustomerID.String()})
	s.True(dErrors.HasCode(err, dErrors.CodeInvalidToken))
}

func (s *ServiceSuite) TestCreateInvite_Authorization() {
	contact := models.ContactInput{Email: "eve@example.com"}
	otherClient := uuid.NewString()

	cases := []struct {
		name  string
		actor id.UserID
		req   *models.CreateInviteRequest
	}{
		{"customers cannot invite", s.invitee.ID, &models.CreateInviteRequest{Contact: contact, Client: s.client.ID.String()}},
		{"unknown subject", id.UserID(uuid.New()), &models.CreateInviteRequest{Contact: contact}},
		{"owner naming another client", s.owner, &models.CreateInviteRequest{Contact: contact, Client: otherClient}},
		{"branch manager inviting client-wide", s.manager, &models.CreateInviteRequest{Contact: contact, Client: s.client.ID.String()}},
	}
	for _, tc := range cases {
		s.Run(tc.name, func() {
			_, err := s.service.CreateInvite(s.as(tc.actor), tc.req)
			s.Require().Error(err)
			s.True(dErrors.HasCode(err, dErrors.CodeForbidden), err.Error())
		})
	}

	_, err := s.customers.FindByInviteContact(s.ctx, contact.Email, "")
	s.ErrorIs(err, sentinel.ErrNotFound, "no customer is created on denial")
}

func (s *ServiceSuite) TestCreateInvite_DeliveryFailuresAreSwallowed() {
	s.notifyErr = errors.New("broker down")

	res, err := s.service.CreateInvite(s.as(s.owner), &models.CreateInviteRequest{
		Contact: models.ContactInput{Email: "carol@example.com", Phone: "+61400000009"},
	})
	s.Require().NoError(err)
	s.NotEmpty(res.Token)

	s.Len(s.deliveries, 2)
	s.Equal(float64(1), testutil.ToFloat64(s.metrics.NotificationFailures.WithLabelValues("email")))
	s.Equal(float64(1), testutil.ToFloat64(s.metrics.NotificationFailures.WithLabelValues("sms")))
	s.Contains(s.eventActions(), string(audit.EventInviteDeliveryFailed))
}

func (s *ServiceSuite) TestCreateInvite_FallsBackToUserContact() {
	// invited by email only; the registered user also has a phone
	s.invite("")

	s.Require().Len(s.deliveries, 2)
	s.Equal(notify.ChannelSMS, s.deliveries[1].Channel)
	s.Equal(inviteePhone, s.deliveries[1].Recipient)
	s.True(strings.HasPrefix(s.deliveries[1].Body, "You are invited to register: "))
}

func (s *ServiceSuite) TestValidateInvite() {
	res := s.invite("")

	s.Run("active invite reports the registered user", func() {
		status, err := s.service.ValidateInvite(s.ctx, &models.ValidateInviteRequest{Token: res.Token, CustomerID: res.CustomerID.String()})
		s.Require().NoError(err)
		s.Equal(inviteeEmail, status.Email)
		s.True(status.UserExists)
		s.Equal(s.invitee.ID, status.UserID)
		s.False(status.LinkedToCustomer)
		s.True(status.IsInviteActive)
	})

	s.Run("validation does not consume the token", func() {
		s.True(s.stored(res.CustomerID).HasInviteToken())
	})

	s.Run("missing parameters", func() {
		_, err := s.service.ValidateInvite(s.ctx, &models.ValidateInviteRequest{Token: res.Token})
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeBadRequest))
	})

	s.Run("unknown customer", func() {
		_, err := s.service.ValidateInvite(s.ctx, &models.ValidateInviteRequest{Token: res.Token, CustomerID: uuid.NewString()})
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})

	s.Run("expiry boundary", func() {
		expires := *s.stored(res.CustomerID).InviteTokenExpiresAt

		s.now = expires.Add(-time.Minute)
		_, err := s.service.ValidateInvite(s.ctx, &models.ValidateInviteRequest{Token: res.Token, CustomerID: res.CustomerID.String()})
		s.Require().NoError(err)

		s.now = expires
		status, err := s.service.ValidateInvite(s.ctx, &models.ValidateInviteRequest{Token: res.Token, CustomerID: res.CustomerID.String()})
		s.Require().NoError(err)
		s.True(status.IsInviteActive, "validation and the activity flag agree at the expiry instant")

		s.now = expires.Add(time.Minute)
		_, err = s.service.ValidateInvite(s.ctx, &models.ValidateInviteRequest{Token: res.Token, CustomerID: res.CustomerID.String()})
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeInviteExpired))
	})
}

func (s *ServiceSuite) TestAcceptInvite_Individual() {
	res := s.invite("")

	out, err := s.service.AcceptInvite(s.as(s.invitee.ID), &models.AcceptInviteRequest{
		Token:       res.Token,
		CustomerID:  res.CustomerID.String(),
		PersonalKyc: personalKyc(),
	})
	s.Require().NoError(err)
	s.True(out.Finalized())
	s.Equal(models.KycStatusInReview, out.KycStatus)
	s.Equal(s.invitee.ID, out.UserID)
	s.Empty(out.Required)

	c := s.stored(res.CustomerID)
	s.True(c.IsActive)
	s.False(c.HasInviteToken())
	s.Equal(s.invitee.ID, c.UserID)
	s.Require().Len(c.KycHistory, 1)
	s.Equal(notePersonalProvided, c.KycHistory[0].Note)
	s.Equal(s.invitee.ID, c.KycHistory[0].ChangedBy)
	s.Contains(s.eventActions(), string(audit.EventOnboardingFinalized))
	s.Equal(float64(1), testutil.ToFloat64(s.metrics.Acceptances.WithLabelValues("finalized")))

	s.Run("a consumed token cannot be reused", func() {
		_, err := s.service.AcceptInvite(s.as(s.invitee.ID), &models.AcceptInviteRequest{
			Token:       res.Token,
			CustomerID:  res.CustomerID.String(),
			PersonalKyc: personalKyc(),
		})
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidToken))
		s.Len(s.stored(res.CustomerID).KycHistory, 1)
	})
}

func (s *ServiceSuite) TestAcceptInvite_IndividualRequiresPersonalKyc() {
	res := s.invite("")

	_, err := s.service.AcceptInvite(s.as(s.invitee.ID), &models.AcceptInviteRequest{
		Token:      res.Token,
		CustomerID: res.CustomerID.String(),
	})
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeValidation))

	c := s.stored(res.CustomerID)
	s.Empty(c.KycHistory)
	s.True(c.HasInviteToken())
	s.True(c.UserID.IsNil(), "nothing is written on a rejected acceptance")
}

func (s *ServiceSuite) TestAcceptInvite_LooksUpByTokenWithoutCid() {
	res := s.invite("")

	out, err := s.service.AcceptInvite(s.as(s.invitee.ID), &models.AcceptInviteRequest{
		Token:       res.Token,
		PersonalKyc: personalKyc(),
	})
	s.Require().NoError(err)
	s.Equal(res.CustomerID, out.CustomerID)

	_, err = s.service.AcceptInvite(s.as(s.invitee.ID), &models.AcceptInviteRequest{Token: "unknown"})
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
}

func (s *ServiceSuite) TestAcceptInvite_CompanyInTwoSteps() {
	res := s.invite("company")

	first, err := s.service.AcceptInvite(s.as(s.invitee.ID), &models.AcceptInviteRequest{
		Token:         res.Token,
		CustomerID:    res.CustomerID.String(),
		RequestedType: "company",
		Kyc:           companyKyc(),
	})
	s.Require().NoError(err)
	s.Equal([]string{"personalKyc"}, first.Required)
	s.Equal(models.KycStatusPending, first.KycStatus)
	s.Equal(models.StateKycPartial, first.State)
	s.False(first.EntityKycID.IsNil())

	c := s.stored(res.CustomerID)
	s.True(c.HasInviteToken(), "token is kept until everything is on file")
	s.False(c.IsActive)
	s.Require().Len(c.KycHistory, 1)
	firstEntry := c.KycHistory[0]
	s.Equal("Processed entity KYC input for type company; missing: personalKyc", firstEntry.Note)

	second, err := s.service.AcceptInvite(s.as(s.invitee.ID), &models.AcceptInviteRequest{
		Token:         res.Token,
		CustomerID:    res.CustomerID.String(),
		RequestedType: "company",
		PersonalKyc:   personalKyc(),
	})
	s.Require().NoError(err)
	s.True(second.Finalized())
	s.Empty(second.Required)
	s.Equal(first.EntityKycID, second.EntityKycID)

	c = s.stored(res.CustomerID)
	s.False(c.HasInviteToken())
	s.True(c.IsActive)
	s.Require().Len(c.KycHistory, 2)
	s.Equal(firstEntry, c.KycHistory[0], "earlier history entries are never rewritten")
	s.Equal("Entity (company) KYC provided & representative personal KYC present", c.KycHistory[1].Note)
	s.Equal(models.KycStatusInReview, c.KycHistory[1].Status)
}

func (s *ServiceSuite) TestAcceptInvite_EntityMissingDocument() {
	res := s.invite("trust")

	out, err := s.service.AcceptInvite(s.as(s.invitee.ID), &models.AcceptInviteRequest{
		Token:         res.Token,
		CustomerID:    res.CustomerID.String(),
		RequestedType: "trust",
		PersonalKyc:   personalKyc(),
	})
	s.Require().NoError(err)
	s.Equal([]string{"trustKyc"}, out.Required)
	s.True(out.EntityKycID.IsNil())
	s.Equal(float64(1), testutil.ToFloat64(s.metrics.Acceptances.WithLabelValues("partial")))
}

func (s *ServiceSuite) TestAcceptInvite_UnsupportedType() {
	res := s.invite("")

	_, err := s.service.AcceptInvite(s.as(s.invitee.ID), &models.AcceptInviteRequest{
		Token:         res.Token,
		CustomerID:    res.CustomerID.String(),
		RequestedType: "sole_proprietor",
		Kyc:           companyKyc(),
	})
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeUnsupportedEntityType))
	s.Empty(s.stored(res.CustomerID).KycHistory)
}

func (s *ServiceSuite) TestAcceptInvite_FailureOrdering() {
	res := s.invite("")
	accept := func(ctx context.Context, req *models.AcceptInviteRequest) error {
		_, err := s.service.AcceptInvite(ctx, req)
		return err
	}

	s.Run("authentication before request shape", func() {
		err := accept(s.ctx, &models.AcceptInviteRequest{})
		s.True(dErrors.HasCode(err, dErrors.CodeUnauthorized))
	})

	s.Run("only customers accept", func() {
		err := accept(s.as(s.owner), &models.AcceptInviteRequest{Token: res.Token, CustomerID: res.CustomerID.String()})
		s.True(dErrors.HasCode(err, dErrors.CodeForbidden))
	})

	s.Run("request shape before lookup", func() {
		err := accept(s.as(s.invitee.ID), &models.AcceptInviteRequest{CustomerID: uuid.NewString()})
		s.True(dErrors.HasCode(err, dErrors.CodeBadRequest))
	})

	s.Run("lookup before token", func() {
		err := accept(s.as(s.invitee.ID), &models.AcceptInviteRequest{Token: "wrong", CustomerID: uuid.NewString()})
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})

	s.Run("token before KYC", func() {
		err := accept(s.as(s.invitee.ID), &models.AcceptInviteRequest{Token: "wrong", CustomerID: res.CustomerID.String()})
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidToken))
		s.Contains(s.eventActions(), string(audit.EventInviteRejected))
	})

	s.Run("expired token", func() {
		saved := s.now
		s.now = s.now.Add(8 * 24 * time.Hour)
		defer func() { s.now = saved }()
		err := accept(s.as(s.invitee.ID), &models.AcceptInviteRequest{Token: res.Token, CustomerID: res.CustomerID.String()})
		s.True(dErrors.HasCode(err, dErrors.CodeInviteExpired))
	})

	s.Run("client context before KYC", func() {
		orphan, err := models.NewCustomer(id.CustomerID(uuid.New()), s.owner, s.now)
		s.Require().NoError(err)
		plain, err := s.service.tokens.Issue(orphan, 0, s.now)
		s.Require().NoError(err)
		s.Require().NoError(s.customers.Create(s.ctx, orphan))

		err = accept(s.as(s.invitee.ID), &models.AcceptInviteRequest{Token: plain, CustomerID: orphan.ID.String(), PersonalKyc: personalKyc()})
		s.True(dErrors.HasCode(err, dErrors.CodeMissingClientContext))
	})
}

func (s *ServiceSuite) TestAcceptInvite_SerializedPerCustomer() {
	res := s.invite("")

	release, err := s.locker.Acquire(s.ctx, lock.CustomerKey(res.CustomerID.String()), time.Minute)
	s.Require().NoError(err)

	_, err = s.service.AcceptInvite(s.as(s.invitee.ID), &models.AcceptInviteRequest{
		Token:       res.Token,
		CustomerID:  res.CustomerID.String(),
		PersonalKyc: personalKyc(),
	})
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeConflict))

	s.Require().NoError(release(s.ctx))
	_, err = s.service.AcceptInvite(s.as(s.invitee.ID), &models.AcceptInviteRequest{
		Token:       res.Token,
		CustomerID:  res.CustomerID.String(),
		PersonalKyc: personalKyc(),
	})
	s.Require().NoError(err)
}

func (s *ServiceSuite) TestReinviteFindsCustomerByLinkedUser() {
	res := s.invite("")
	_, err := s.service.AcceptInvite(s.as(s.invitee.ID), &models.AcceptInviteRequest{
		Token:       res.Token,
		CustomerID:  res.CustomerID.String(),
		PersonalKyc: personalKyc(),
	})
	s.Require().NoError(err)

	again, err := s.service.CreateInvite(s.as(s.manager), &models.CreateInviteRequest{
		Contact: models.ContactInput{Phone: inviteePhone},
	})
	s.Require().NoError(err)
	s.Equal(res.CustomerID, again.CustomerID)
	s.Len(s.stored(res.CustomerID).Relations, 2, "the branch relation is added next to the client one")
}

func (s *ServiceSuite) TestGetCustomer() {
	res := s.invite("")
	_, err := s.service.AcceptInvite(s.as(s.invitee.ID), &models.AcceptInviteRequest{
		Token:       res.Token,
		CustomerID:  res.CustomerID.String(),
		PersonalKyc: personalKyc(),
	})
	s.Require().NoError(err)

	view, err := s.service.GetCustomer(s.as(s.owner), res.CustomerID)
	s.Require().NoError(err)
	s.Equal(models.StateFinalized, view.State)
	s.False(view.IsInviteActive)
	s.NotEmpty(view.Risk.Label)

	r, err := s.service.Risk(s.as(s.owner), res.CustomerID)
	s.Require().NoError(err)
	s.Equal(view.Risk.Score, r.Score)
	s.Equal(float64(2), testutil.ToFloat64(s.metrics.RiskLabels.WithLabelValues(string(r.Label))))

	_, err = s.service.GetCustomer(s.as(s.owner), id.CustomerID(uuid.New()))
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
}

func (s *ServiceSuite) TestGetCustomer_Authorization() {
	res := s.invite("")
	_, err := s.service.AcceptInvite(s.as(s.invitee.ID), &models.AcceptInviteRequest{
		Token:       res.Token,
		CustomerID:  res.CustomerID.String(),
		PersonalKyc: personalKyc(),
	})
	s.Require().NoError(err)

	s.Run("allowed", func() {
		for _, actor := range []id.UserID{s.admin, s.owner, s.invitee.ID} {
			_, err := s.service.GetCustomer(s.as(actor), res.CustomerID)
			s.Require().NoError(err)
		}
	})

	s.Run("unauthenticated", func() {
		_, err := s.service.GetCustomer(s.ctx, res.CustomerID)
		s.True(dErrors.HasCode(err, dErrors.CodeUnauthorized))
	})

	s.Run("unknown subject", func() {
		_, err := s.service.GetCustomer(s.as(id.UserID(uuid.New())), res.CustomerID)
		s.True(dErrors.HasCode(err, dErrors.CodeForbidden))
	})

	s.Run("another customer", func() {
		_, err := s.service.Risk(s.as(s.stranger), res.CustomerID)
		s.True(dErrors.HasCode(err, dErrors.CodeForbidden))
	})

	s.Run("branch operator of a client-wide relation", func() {
		_, err := s.service.GetCustomer(s.as(s.manager), res.CustomerID)
		s.True(dErrors.HasCode(err, dErrors.CodeForbidden))
	})
}

func (s *ServiceSuite) TestAcceptInvite_AuditFailureFailsTheSave() {
	res := s.invite("")

	ctrl := gomock.NewController(s.T())
	failingAudit := mocks.NewMockAuditPublisher(ctrl)
	failingAudit.EXPECT().Emit(gomock.Any(), gomock.Any()).Return(errors.New("outbox unavailable")).AnyTimes()
	tx := mocks.NewMockTxRunner(ctrl)
	tx.EXPECT().RunInTx(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, fn func(context.Context) error) error {
			return fn(ctx)
		}).Times(1)

	svc := New(s.service.customers, s.service.kyc, s.service.resolver, s.service.org,
		WithAuditPublisher(failingAudit),
		WithTxRunner(tx),
		WithClock(func() time.Time { return s.now }),
	)

	_, err := svc.AcceptInvite(s.as(s.invitee.ID), &models.AcceptInviteRequest{
		Token:       res.Token,
		CustomerID:  res.CustomerID.String(),
		PersonalKyc: personalKyc(),
	})
	s.Require().Error(err)
}
