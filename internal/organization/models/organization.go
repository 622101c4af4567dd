package models

import (
	"strings"
	"time"

	id "onboard/pkg/domain"
	dErrors "onboard/pkg/domain-errors"
)

type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

func (s Status) IsValid() bool {
	return s == StatusActive || s == StatusInactive
}

// Client is an organization that invites customers.
//
// Invariants:
//   - Name is non-empty and at most 128 characters
//   - Status is either active or inactive
type Client struct {
	ID          id.ClientID `json:"id"`
	Name        string      `json:"name"`
	Email       string      `json:"email"`
	OwnerUserID id.UserID   `json:"ownerUserId"`
	Status      Status      `json:"status"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
}

func NewClient(clientID id.ClientID, name, email string, owner id.UserID, now time.Time) (*Client, error) {
	name = strings.TrimSpace(name)
	if err := validateName("client", name); err != nil {
		return nil, err
	}
	return &Client{
		ID:          clientID,
		Name:        name,
		Email:       strings.ToLower(strings.TrimSpace(email)),
		OwnerUserID: owner,
		Status:      StatusActive,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

func (c *Client) IsActive() bool {
	return c.Status == StatusActive
}

// CanDeactivate checks the transition without applying it.
func (c *Client) CanDeactivate() error {
	if c.Status == StatusInactive {
		return dErrors.New(dErrors.CodeInvariantViolation, "client is already inactive")
	}
	return nil
}

func (c *Client) ApplyDeactivation(now time.Time) {
	c.Status = StatusInactive
	c.UpdatedAt = now
}

// Branch is an operating unit of a client.
//
// Invariants:
//   - ClientID is set and immutable
//   - Name is non-empty and at most 128 characters
type Branch struct {
	ID            id.BranchID `json:"id"`
	ClientID      id.ClientID `json:"clientId"`
	Name          string      `json:"name"`
	Code          string      `json:"code"`
	ManagerUserID id.UserID   `json:"managerUserId"`
	Status        Status      `json:"status"`
	CreatedAt     time.Time   `json:"createdAt"`
	UpdatedAt     time.Time   `json:"updatedAt"`
}

func NewBranch(branchID id.BranchID, clientID id.ClientID, name, code string, manager id.UserID, now time.Time) (*Branch, error) {
	if clientID.IsNil() {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "branch client cannot be nil")
	}
	name = strings.TrimSpace(name)
	if err := validateName("branch", name); err != nil {
		return nil, err
	}
	return &Branch{
		ID:            branchID,
		ClientID:      clientID,
		Name:          name,
		Code:          strings.TrimSpace(code),
		ManagerUserID: manager,
		Status:        StatusActive,
		CreatedAt:     now,
		UpdatedAt:     now,
	}, nil
}

func (b *Branch) IsActive() bool {
	return b.Status == StatusActive
}

// BelongsTo reports whether the branch is part of client.
func (b *Branch) BelongsTo(client id.ClientID) bool {
	return b.ClientID == client
}

// Scope is the client (and optional branch) an invite is issued for.
type Scope struct {
	Client *Client
	Branch *Branch
}

func (s Scope) IsEmpty() bool {
	return s.Client == nil
}

// BranchID is nil when the scope is client-wide.
func (s Scope) BranchID() id.BranchID {
	if s.Branch == nil {
		return id.BranchID{}
	}
	return s.Branch.ID
}

// Covers reports whether an operator holding s may act for client and branch. A
// client-wide scope covers every branch of the client; a branch scope covers only itself.
func (s Scope) Covers(client id.ClientID, branch id.BranchID) bool {
	if s.Client == nil || s.Client.ID != client {
		return false
	}
	return s.Branch == nil || s.Branch.ID == branch
}

func validateName(kind, name string) error {
	if name == "" {
		return dErrors.New(dErrors.CodeInvariantViolation, kind+" name cannot be empty")
	}
	if len(name) > 128 {
		return dErrors.New(dErrors.CodeInvariantViolation, kind+" name must be 128 characters or less")
	}
	return nil
}
