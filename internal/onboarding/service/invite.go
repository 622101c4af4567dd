package service

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/google/uuid"

	"onboard/internal/identity"
	identitymodels "onboard/internal/identity/models"
	"onboard/internal/onboarding/invite"
	"onboard/internal/onboarding/models"
	"onboard/internal/onboarding/notify"
	"onboard/internal/onboarding/relation"
	orgmodels "onboard/internal/organization/models"
	id "onboard/pkg/domain"
	dErrors "onboard/pkg/domain-errors"
	audit "onboard/pkg/platform/audit"
	"onboard/pkg/platform/sentinel"
)

// CreateInvite finds or creates the customer for the contact, records the relation to
// the inviting client/branch, issues a fresh token and hands the invite to the notifier.
// Delivery failures never fail the call.
func (s *Service) CreateInvite(ctx context.Context, req *models.CreateInviteRequest) (res *models.InviteResult, err error) {
	ctx, span := s.startSpan(ctx, "CreateInvite")
	defer func() { endSpan(span, err) }()

	inviter, err := s.actingUser(ctx)
	if err != nil {
		return nil, err
	}
	if !isOperator(inviter) {
		return nil, dErrors.New(dErrors.CodeForbidden, "Only client or branch operators can invite customers")
	}
	actor := inviter.ID
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	scope, err := s.inviteScope(ctx, req, inviter)
	if err != nil {
		return nil, err
	}

	contact := identity.Contact{Email: req.Contact.Email, Phone: req.Contact.Phone}
	user, err := s.resolver.ResolveContact(ctx, contact)
	if err != nil {
		return nil, err
	}

	now := s.clock(ctx)
	customer, err := s.findInviteTarget(ctx, user, req.Contact)
	if err != nil {
		return nil, err
	}
	created := customer == nil
	if created {
		customer, err = models.NewCustomer(id.CustomerID(uuid.New()), actor, now)
		if err != nil {
			return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create customer")
		}
	}

	relation.Upsert(customer, relation.Input{
		Client:    scope.Client.ID,
		Branch:    scope.BranchID(),
		Type:      models.EntityType(req.RelationType),
		Channel:   req.OnboardingChannel,
		Source:    req.Source,
		Notes:     req.Notes,
		Email:     req.Contact.Email,
		Phone:     req.Contact.Phone,
		InvitedBy: actor,
		Product:   req.Product,
		Country:   req.Country,
	}, now)

	plain, err := s.tokens.Issue(customer, time.Duration(req.ExpiresInMinutes)*time.Minute, now)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to issue invite token")
	}

	event := audit.EventInviteReissued
	if created {
		event = audit.EventInviteCreated
	}
	err = s.tx.RunInTx(ctx, func(ctx context.Context) error {
		if created {
			if err := s.customers.Create(ctx, customer); err != nil {
				return translateSaveError(err)
			}
		} else if err := s.customers.Update(ctx, customer); err != nil {
			return translateSaveError(err)
		}
		_ = s.logAudit(ctx, event, customer, "user_id", actor.String())
		return nil
	})
	if err != nil {
		return nil, err
	}
	if s.metrics != nil {
		s.metrics.IncrementInviteCreated(created)
	}

	link := s.inviteURL(plain, customer.ID)
	s.deliver(ctx, customer, scope.Client, user, req.Contact, link)

	return &models.InviteResult{
		CustomerID: customer.ID,
		Created:    created,
		URL:        link,
		Token:      plain,
	}, nil
}

// inviteScope uses the request's client/branch when given, otherwise the scope the
// inviting operator belongs to. Operators other than admins may only name a client or
// branch inside their own scope.
func (s *Service) inviteScope(ctx context.Context, req *models.CreateInviteRequest, inviter *identitymodels.User) (orgmodels.Scope, error) {
	var own orgmodels.Scope
	if inviter.UserType != identitymodels.UserTypeAdmin || req.Client == "" {
		var err error
		own, err = s.org.ScopeForActor(ctx, inviter.ID)
		if err != nil {
			return orgmodels.Scope{}, err
		}
	}
	if req.Client == "" {
		if own.IsEmpty() {
			return orgmodels.Scope{}, dErrors.New(dErrors.CodeValidation, "client is required")
		}
		return own, nil
	}

	clientID, err := id.ParseClientID(req.Client)
	if err != nil {
		return orgmodels.Scope{}, dErrors.New(dErrors.CodeValidation, "invalid client")
	}
	branchID, err := id.ParseOptionalBranchID(req.Branch)
	if err != nil {
		return orgmodels.Scope{}, dErrors.New(dErrors.CodeValidation, "invalid branch")
	}
	if inviter.UserType != identitymodels.UserTypeAdmin && !own.Covers(clientID, branchID) {
		return orgmodels.Scope{}, dErrors.New(dErrors.CodeForbidden, "Client or branch is outside your scope")
	}
	return s.org.ResolveScope(ctx, clientID, branchID)
}

// findInviteTarget returns, in order, the customer linked to user, the customer whose
// personal KYC carries the email, or the not yet accepted customer an earlier invite
// went to at the same email or phone. Nil means a new customer is needed.
func (s *Service) findInviteTarget(ctx context.Context, user *identitymodels.User, contact models.ContactInput) (*models.Customer, error) {
	if user != nil {
		c, err := s.customers.FindByUserID(ctx, user.ID)
		if err == nil {
			return c, nil
		}
		if !errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to look up customer by user")
		}
	}
	if contact.Email != "" {
		c, err := s.customers.FindByContactEmail(ctx, contact.Email)
		if err == nil {
			return c, nil
		}
		if !errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to look up customer by email")
		}
	}
	c, err := s.customers.FindByInviteContact(ctx, contact.Email, contact.Phone)
	if errors.Is(err, sentinel.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to look up customer by invite contact")
	}
	return c, nil
}

func (s *Service) inviteURL(plain string, customerID id.CustomerID) string {
	return fmt.Sprintf("%s?token=%s&cid=%s", s.inviteBaseURL, url.QueryEscape(plain), customerID)
}

// deliver prefers the invited contact and falls back to the resolved user's contact.
func (s *Service) deliver(ctx context.Context, c *models.Customer, client *orgmodels.Client,
	user *identitymodels.User, contact models.ContactInput, link string) {
	targetEmail, targetPhone := contact.Email, contact.Phone
	if user != nil {
		if targetEmail == "" {
			targetEmail = user.Email
		}
		if targetPhone == "" {
			targetPhone = user.Phone
		}
	}

	if targetEmail != "" {
		s.send(ctx, c, notify.InviteDelivery{
			CustomerID: c.ID.String(),
			Channel:    notify.ChannelEmail,
			Recipient:  targetEmail,
			Subject:    client.Name + " invited you to register",
			Body:       fmt.Sprintf("%s has invited you to register. Open the link below to continue.\n\n%s", client.Name, link),
			URL:        link,
		})
	}
	if targetPhone != "" {
		s.send(ctx, c, notify.InviteDelivery{
			CustomerID: c.ID.String(),
			Channel:    notify.ChannelSMS,
			Recipient:  targetPhone,
			Body:       "You are invited to register: " + link,
			URL:        link,
		})
	}
}

func (s *Service) send(ctx context.Context, c *models.Customer, d notify.InviteDelivery) {
	err := s.notifier.Notify(ctx, d)
	if err == nil {
		return
	}
	if s.logger != nil {
		s.logger.WarnContext(ctx, "invite delivery failed",
			"customer_id", c.ID,
			"channel", d.Channel,
			"error", err,
		)
	}
	if s.metrics != nil {
		s.metrics.IncrementNotificationFailure(string(d.Channel))
	}
	_ = s.logAudit(ctx, audit.EventInviteDeliveryFailed, c, "reason", string(d.Channel)+" delivery failed")
}

// ValidateInvite checks a token without consuming it and reports whether the invited
// contact already has a platform account.
func (s *Service) ValidateInvite(ctx context.Context, req *models.ValidateInviteRequest) (status *models.InviteStatus, err error) {
	ctx, span := s.startSpan(ctx, "ValidateInvite")
	defer func() { endSpan(span, err) }()

	if err := req.Validate(); err != nil {
		return nil, err
	}
	customerID, err := id.ParseCustomerID(req.CustomerID)
	if err != nil {
		return nil, dErrors.New(dErrors.CodeNotFound, "Invite/customer not found")
	}
	customer, err := s.loadCustomer(ctx, customerID, "Invite/customer not found")
	if err != nil {
		return nil, err
	}

	now := s.clock(ctx)
	if err := invite.Validate(customer, req.Token, now); err != nil {
		_ = s.logAudit(ctx, audit.EventInviteRejected, customer, "reason", err.Error())
		return nil, err
	}

	status = &models.InviteStatus{
		CustomerID:     customer.ID,
		Email:          customer.Metadata[models.MetaEmail],
		Phone:          customer.Metadata[models.MetaPhone],
		IsInviteActive: customer.IsInviteActive(now),
	}

	var user *identitymodels.User
	if !customer.UserID.IsNil() {
		user, err = s.resolver.FindByID(ctx, customer.UserID)
		if err != nil {
			return nil, err
		}
		status.LinkedToCustomer = user != nil
	} else {
		user, err = s.resolver.ResolveContact(ctx, identity.Contact{Email: status.Email, Phone: status.Phone})
		if err != nil {
			return nil, err
		}
	}
	if user != nil {
		status.UserExists = true
		status.UserID = user.ID
	}

	_ = s.logAudit(ctx, audit.EventInviteValidated, customer)
	return status, nil
}
