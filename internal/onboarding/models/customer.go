package models

import (
	"time"

	id "onboard/pkg/domain"
	dErrors "onboard/pkg/domain-errors"
)

// DefaultCountry is assigned to new customers until KYC says otherwise.
const DefaultCountry = "Bangladesh"

type KycStatus string

const (
	KycStatusPending  KycStatus = "pending"
	KycStatusInReview KycStatus = "in_review"
	KycStatusVerified KycStatus = "verified"
	KycStatusRejected KycStatus = "rejected"
)

func (s KycStatus) IsValid() bool {
	switch s {
	case KycStatusPending, KycStatusInReview, KycStatusVerified, KycStatusRejected:
		return true
	}
	return false
}

// KycHistoryEntry is one append-only audit row of the KYC status.
type KycHistoryEntry struct {
	Status    KycStatus `json:"status"`
	Note      string    `json:"note"`
	ChangedBy id.UserID `json:"changedBy"`
	ChangedAt time.Time `json:"changedAt"`
}

// OnboardingState is derived, never stored.
type OnboardingState string

const (
	StateInvited    OnboardingState = "invited"
	StateKycPartial OnboardingState = "kyc_partial"
	StateFinalized  OnboardingState = "finalized"
)

// Metadata keys written by invites and read by risk scoring.
const (
	MetaEmail     = "email"
	MetaPhone     = "phone"
	MetaClient    = "client"
	MetaBranch    = "branch"
	MetaInvitedBy = "invitedBy"
	MetaCountry   = "country"
	MetaChannel   = "channel"
	MetaProduct   = "product"
	MetaIndustry  = "industry"
	MetaType      = "type"
)

// Metadata is the flat invite context attached to a customer.
type Metadata map[string]string

type Declaration struct {
	DeclarationsAccepted bool   `json:"declarations_accepted"`
	SignatoryName        string `json:"signatory_name"`
	Signature            string `json:"signature"`
	Date                 string `json:"date"`
}

type Authorization struct {
	CompanyName       string `json:"company_name"`
	AgentName         string `json:"agent_name"`
	TitleRelationship string `json:"title_relationship"`
	AgentSignature    string `json:"agent_signature"`
	AgentDate         string `json:"agent_date"`
	DocumentsAttested bool   `json:"documents_attested"`
}

type Document struct {
	Name       string    `json:"name"`
	URL        string    `json:"url"`
	MimeType   string    `json:"mimeType"`
	Type       string    `json:"type"`
	UploadedAt time.Time `json:"uploadedAt"`
}

// Customer is the aggregate root of the onboarding workflow.
//
// Invariants:
//   - invite token fields are never serialized
//   - at most one relation per (client, branch)
//   - KycHistory only grows; existing entries are never rewritten
//   - a finalized customer has no invite token and IsActive == true
//   - Version increases by one on every successful save
type Customer struct {
	ID              id.CustomerID     `json:"id"`
	UserID          id.UserID         `json:"user"`
	InvitedBy       id.UserID         `json:"invitedBy"`
	Relations       []Relation        `json:"relations"`
	PersonalKyc     PersonalKyc       `json:"personalKyc"`
	Documents       []Document        `json:"documents,omitempty"`
	Country         string            `json:"country"`
	KycStatus       KycStatus         `json:"kycStatus"`
	KycNotes        string            `json:"kycNotes,omitempty"`
	KycHistory      []KycHistoryEntry `json:"kycHistory"`
	ConsentToScreen bool              `json:"consentToScreen"`
	IsActive        bool              `json:"isActive"`
	Metadata        Metadata          `json:"metadata"`
	Declaration     *Declaration      `json:"declaration,omitempty"`
	Authorized      *Authorization    `json:"authorized,omitempty"`

	InviteTokenHash      string     `json:"-"`
	InviteTokenExpiresAt *time.Time `json:"-"`
	// InviteTokenPlain is kept only when the service runs in development mode.
	InviteTokenPlain string `json:"-"`

	Version   int64     `json:"version"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NewCustomer creates a pending, inactive customer.
func NewCustomer(customerID id.CustomerID, invitedBy id.UserID, now time.Time) (*Customer, error) {
	if customerID.IsNil() {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "customer ID cannot be nil")
	}
	return &Customer{
		ID:         customerID,
		InvitedBy:  invitedBy,
		Relations:  []Relation{},
		Country:    DefaultCountry,
		KycStatus:  KycStatusPending,
		KycHistory: []KycHistoryEntry{},
		Metadata:   Metadata{},
		CreatedAt:  now,
		UpdatedAt:  now,
	}, nil
}

// HasInviteToken reports whether a token hash is on file, regardless of expiry.
func (c *Customer) HasInviteToken() bool {
	return c.InviteTokenHash != ""
}

// IsInviteActive reports whether a token is on file and unexpired at now. The expiry
// instant itself still counts as active.
func (c *Customer) IsInviteActive(now time.Time) bool {
	return c.InviteTokenHash != "" && c.InviteTokenExpiresAt != nil && !now.After(*c.InviteTokenExpiresAt)
}

func (c *Customer) HasPersonalKyc() bool {
	return !c.PersonalKyc.IsEmpty()
}

// LinkUser attaches the resolved platform user. Relinking to another user is allowed.
func (c *Customer) LinkUser(userID id.UserID) {
	if !userID.IsNil() {
		c.UserID = userID
	}
}

// RecordKycStatus sets the status and appends exactly one history entry.
func (c *Customer) RecordKycStatus(status KycStatus, note string, changedBy id.UserID, at time.Time) {
	c.KycStatus = status
	c.KycHistory = append(c.KycHistory, KycHistoryEntry{
		Status:    status,
		Note:      note,
		ChangedBy: changedBy,
		ChangedAt: at,
	})
	c.UpdatedAt = at
}

// ApplyFinalization activates the customer. The caller clears the invite token.
func (c *Customer) ApplyFinalization(now time.Time) {
	c.IsActive = true
	c.UpdatedAt = now
}

// ClientContext returns the client and branch recorded by the invite.
func (c *Customer) ClientContext() (id.ClientID, id.BranchID, error) {
	raw := c.Metadata[MetaClient]
	if raw == "" {
		return id.ClientID{}, id.BranchID{}, dErrors.New(dErrors.CodeMissingClientContext, "Invite missing client info")
	}
	clientID, err := id.ParseClientID(raw)
	if err != nil {
		return id.ClientID{}, id.BranchID{}, dErrors.New(dErrors.CodeMissingClientContext, "Invite missing client info")
	}
	branchID, err := id.ParseOptionalBranchID(c.Metadata[MetaBranch])
	if err != nil {
		return id.ClientID{}, id.BranchID{}, dErrors.New(dErrors.CodeMissingClientContext, "Invite has malformed branch info")
	}
	return clientID, branchID, nil
}

// State derives the onboarding state.
func (c *Customer) State() OnboardingState {
	if c.IsActive && !c.HasInviteToken() {
		return StateFinalized
	}
	if c.HasPersonalKyc() || len(c.KycHistory) > 0 {
		return StateKycPartial
	}
	return StateInvited
}

// PrimaryRelation is the first relation, which risk scoring uses.
func (c *Customer) PrimaryRelation() (Relation, bool) {
	if len(c.Relations) == 0 {
		return Relation{}, false
	}
	return c.Relations[0], true
}

// SetMeta writes key, deleting it when value is empty.
func (m Metadata) SetMeta(key, value string) {
	if value == "" {
		delete(m, key)
		return
	}
	m[key] = value
}
