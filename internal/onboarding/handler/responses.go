package handler

import (
	"onboard/internal/onboarding/models"
	"onboard/internal/onboarding/service"
	"onboard/internal/risk"
	id "onboard/pkg/domain"
)

type envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

type inviteData struct {
	CustomerID id.CustomerID `json:"customerId"`
}

type inviteLink struct {
	URL   string `json:"url"`
	Token string `json:"token"`
}

type inviteResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    inviteData  `json:"data"`
	Invite  *inviteLink `json:"invite,omitempty"`
}

func toInviteResponse(res *models.InviteResult, devMode bool) inviteResponse {
	out := inviteResponse{
		Success: true,
		Message: "Invite created and sent",
		Data:    inviteData{CustomerID: res.CustomerID},
	}
	if devMode {
		out.Invite = &inviteLink{URL: res.URL, Token: res.Token}
	}
	return out
}

type acceptData struct {
	CustomerID      id.CustomerID    `json:"customerId"`
	UserID          id.UserID        `json:"userId"`
	KycStatus       models.KycStatus `json:"kycStatus"`
	CreatedKycDocID *id.EntityKycID  `json:"createdKycDocId,omitempty"`
}

type acceptResponse struct {
	Success  bool       `json:"success"`
	Message  string     `json:"message"`
	Required []string   `json:"required,omitempty"`
	Data     acceptData `json:"data"`
}

func toAcceptResponse(res *models.AcceptResult, requestedType string) acceptResponse {
	out := acceptResponse{
		Success: true,
		Data: acceptData{
			CustomerID: res.CustomerID,
			UserID:     res.UserID,
			KycStatus:  res.KycStatus,
		},
	}
	if models.EntityType(requestedType).IsIndividual() {
		out.Message = "Personal KYC accepted and invite finalised"
		return out
	}
	if !res.EntityKycID.IsNil() {
		docID := res.EntityKycID
		out.Data.CreatedKycDocID = &docID
	}
	if !res.Finalized() {
		out.Message = "Entity KYC processed but additional steps required"
		out.Required = res.Required
		return out
	}
	out.Message = "Entity KYC accepted and invite finalised"
	return out
}

type customerResponse struct {
	Customer       *models.Customer       `json:"customer"`
	State          models.OnboardingState `json:"state"`
	IsInviteActive bool                   `json:"isInviteActive"`
	Risk           risk.Result            `json:"risk"`
}

func toCustomerResponse(view *service.CustomerView) customerResponse {
	return customerResponse{
		Customer:       view.Customer,
		State:          view.State,
		IsInviteActive: view.IsInviteActive,
		Risk:           view.Risk,
	}
}
