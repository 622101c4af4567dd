package models

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"

	dErrors "onboard/pkg/domain-errors"
	"onboard/pkg/email"
)

var validate = validator.New()

type ContactInput struct {
	Email string `json:"email" validate:"omitempty,email,max=254"`
	Phone string `json:"phone" validate:"omitempty,min=6,max=20"`
}

// CreateInviteRequest invites a customer on behalf of a client or branch. Client and
// Branch may be omitted when the inviter operates exactly one client or branch.
type CreateInviteRequest struct {
	Contact           ContactInput `json:"contact"`
	Client            string       `json:"client" validate:"omitempty,uuid"`
	Branch            string       `json:"branch" validate:"omitempty,uuid"`
	RelationType      string       `json:"relationType"`
	OnboardingChannel string       `json:"onboardingChannel" validate:"max=64"`
	Source            string       `json:"source" validate:"max=64"`
	Notes             string       `json:"notes" validate:"max=2000"`
	Product           string       `json:"product" validate:"max=64"`
	Country           string       `json:"country" validate:"max=64"`
	ExpiresInMinutes  int          `json:"expiresInMinutes" validate:"gte=0,lte=525600"`
}

func (r *CreateInviteRequest) Normalize() {
	r.Contact.Email = email.Normalize(r.Contact.Email)
	r.Contact.Phone = email.NormalizePhone(r.Contact.Phone)
	r.Client = strings.TrimSpace(r.Client)
	r.Branch = strings.TrimSpace(r.Branch)
	r.RelationType = strings.ToLower(strings.TrimSpace(r.RelationType))
	r.OnboardingChannel = strings.TrimSpace(r.OnboardingChannel)
	r.Source = strings.TrimSpace(r.Source)
	r.Notes = strings.TrimSpace(r.Notes)
	r.Product = strings.TrimSpace(r.Product)
	r.Country = strings.TrimSpace(r.Country)
}

func (r *CreateInviteRequest) Validate() error {
	if r.Contact.Email == "" && r.Contact.Phone == "" {
		return dErrors.New(dErrors.CodeValidation, "Provide email or phone to invite")
	}
	if err := validate.Struct(r); err != nil {
		return validationError(err)
	}
	if r.RelationType != "" && !EntityType(r.RelationType).IsValid() {
		return dErrors.New(dErrors.CodeValidation, "invalid relationType")
	}
	return nil
}

// ValidateInviteRequest carries the query of the public invite check.
type ValidateInviteRequest struct {
	Token      string
	CustomerID string
}

func (r *ValidateInviteRequest) Validate() error {
	if strings.TrimSpace(r.Token) == "" || strings.TrimSpace(r.CustomerID) == "" {
		return dErrors.New(dErrors.CodeBadRequest, "token and cid required")
	}
	return nil
}

// KycPayload is a partial entity KYC document keyed by top-level section.
type KycPayload map[string]json.RawMessage

func (p KycPayload) IsEmpty() bool { return len(p) == 0 }

// AcceptInviteRequest completes (or advances) an invite. Kyc is only read for
// entity types.
type AcceptInviteRequest struct {
	Token         string       `json:"token"`
	CustomerID    string       `json:"cid"`
	RequestedType string       `json:"requestedType"`
	PersonalKyc   *PersonalKyc `json:"personalKyc,omitempty"`
	Kyc           KycPayload   `json:"kyc,omitempty"`
}

func (r *AcceptInviteRequest) Normalize() {
	r.Token = strings.TrimSpace(r.Token)
	r.CustomerID = strings.TrimSpace(r.CustomerID)
	r.RequestedType = strings.ToLower(strings.TrimSpace(r.RequestedType))
}

func (r *AcceptInviteRequest) Validate() error {
	if r.Token == "" {
		return dErrors.New(dErrors.CodeBadRequest, "token is required")
	}
	return nil
}

func validationError(err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return dErrors.New(dErrors.CodeValidation, "invalid "+fieldName(fe.Namespace()))
	}
	return dErrors.Wrap(err, dErrors.CodeValidation, "invalid request")
}

// fieldName turns "CreateInviteRequest.Contact.Email" into "contact.email".
func fieldName(namespace string) string {
	parts := strings.Split(namespace, ".")
	if len(parts) > 1 {
		parts = parts[1:]
	}
	for i, p := range parts {
		if p != "" {
			parts[i] = strings.ToLower(p[:1]) + p[1:]
		}
	}
	return strings.Join(parts, ".")
}
