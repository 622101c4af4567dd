package models

import (
	"onboard/pkg/email"
)

// PersonalKyc is the individual's (or representative's) KYC record. Each top-level
// block is replaced wholesale on merge.
type PersonalKyc struct {
	PersonalForm *PersonalForm `json:"personal_form,omitempty"`
	FundsWealth  *FundsWealth  `json:"funds_wealth,omitempty"`
	SoleTrader   *SoleTrader   `json:"sole_trader,omitempty"`
}

type PersonalForm struct {
	CustomerDetails    CustomerDetails   `json:"customer_details"`
	ContactDetails     ContactDetails    `json:"contact_details"`
	EmploymentDetails  EmploymentDetails `json:"employment_details"`
	ResidentialAddress Address           `json:"residential_address"`
	MailingAddress     Address           `json:"mailing_address"`
}

type CustomerDetails struct {
	GivenName   string `json:"given_name"`
	MiddleName  string `json:"middle_name,omitempty"`
	Surname     string `json:"surname"`
	DateOfBirth string `json:"date_of_birth"`
	OtherNames  string `json:"other_names,omitempty"`
	Referral    string `json:"referral,omitempty"`
}

type ContactDetails struct {
	Email string `json:"email"`
	Phone string `json:"phone"`
}

type EmploymentDetails struct {
	Occupation   string `json:"occupation"`
	Industry     string `json:"industry"`
	EmployerName string `json:"employer_name,omitempty"`
}

type Address struct {
	Address  string `json:"address"`
	Suburb   string `json:"suburb,omitempty"`
	State    string `json:"state,omitempty"`
	Postcode string `json:"postcode,omitempty"`
	Country  string `json:"country"`
}

type FundsWealth struct {
	SourceOfFunds          string `json:"source_of_funds"`
	SourceOfWealth         string `json:"source_of_wealth"`
	AccountPurpose         string `json:"account_purpose"`
	EstimatedTradingVolume string `json:"estimated_trading_volume"`
}

type SoleTrader struct {
	IsSoleTrader    bool            `json:"is_sole_trader"`
	BusinessDetails BusinessDetails `json:"business_details"`
}

type BusinessDetails struct {
	BusinessName    string `json:"business_name"`
	ABN             string `json:"abn"`
	BusinessAddress string `json:"business_address"`
}

// IsEmpty is true when no block carries a value. A block sent as an empty object
// counts as absent.
func (p PersonalKyc) IsEmpty() bool {
	return isZero(p.PersonalForm) && isZero(p.FundsWealth) && isZero(p.SoleTrader)
}

// Merge copies every non-empty block in incoming over p.
func (p *PersonalKyc) Merge(incoming PersonalKyc) {
	if !isZero(incoming.PersonalForm) {
		p.PersonalForm = incoming.PersonalForm
	}
	if !isZero(incoming.FundsWealth) {
		p.FundsWealth = incoming.FundsWealth
	}
	if !isZero(incoming.SoleTrader) {
		p.SoleTrader = incoming.SoleTrader
	}
}

func isZero[T comparable](block *T) bool {
	var zero T
	return block == nil || *block == zero
}

// ContactEmail is the normalized email the customer declared in their KYC.
func (p PersonalKyc) ContactEmail() string {
	if p.PersonalForm == nil {
		return ""
	}
	return email.Normalize(p.PersonalForm.ContactDetails.Email)
}

func (p PersonalKyc) ResidentialCountry() string {
	if p.PersonalForm == nil {
		return ""
	}
	return p.PersonalForm.ResidentialAddress.Country
}

func (p PersonalKyc) Employment() EmploymentDetails {
	if p.PersonalForm == nil {
		return EmploymentDetails{}
	}
	return p.PersonalForm.EmploymentDetails
}
