package models

import (
	"time"

	id "onboard/pkg/domain"
)

// EntityKyc is the closed set of entity KYC document shapes. Only types in this
// package implement it; switch on Kind() or a type switch to dispatch.
type EntityKyc interface {
	Kind() EntityKind
	Header() *EntityKycHeader
	// Normalize restores derived fields before persistence.
	Normalize()
	sealed()
}

// EntityKycHeader identifies the document and its scope.
//
// Invariants:
//   - at most one document per (kind, Customer, Client, Branch)
//   - scope fields are stamped by the service, never taken from payloads
type EntityKycHeader struct {
	ID         id.EntityKycID `json:"id"`
	Customer   id.CustomerID  `json:"customer"`
	Client     id.ClientID    `json:"client"`
	Branch     id.BranchID    `json:"branch"`
	EntityType EntityType     `json:"entity_type"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
}

// HeaderKeys are the JSON keys owned by the header; payload values for them are ignored.
var HeaderKeys = []string{"id", "customer", "client", "branch", "entity_type", "created_at", "updated_at"}

func (h *EntityKycHeader) Header() *EntityKycHeader { return h }

// NewEntityKyc returns an empty document of the given kind, or nil for an unknown kind.
func NewEntityKyc(kind EntityKind) EntityKyc {
	switch kind {
	case KindCompany:
		return &CompanyKyc{}
	case KindTrust:
		return &TrustKyc{}
	case KindNonIndividual:
		return &NonIndividualKyc{}
	default:
		return nil
	}
}

// -----------------------------------------------------------------------------
// Company
// -----------------------------------------------------------------------------

type CompanyKyc struct {
	EntityKycHeader
	GeneralInformation       *CompanyGeneralInformation `json:"general_information,omitempty"`
	DirectorsBeneficialOwner *DirectorsBeneficialOwner  `json:"directors_beneficial_owner,omitempty"`
}

type CompanyGeneralInformation struct {
	LegalName              string `json:"legal_name,omitempty"`
	TradingNames           string `json:"trading_names,omitempty"`
	PhoneNumber            string `json:"phone_number,omitempty"`
	RegistrationNumber     string `json:"registration_number,omitempty"`
	CountryOfIncorporation string `json:"country_of_incorporation,omitempty"`
	ContactEmail           string `json:"contact_email,omitempty"`
	Industry               string `json:"industry,omitempty"`
	NatureOfBusiness       string `json:"nature_of_business,omitempty"`
	AnnualIncome           string `json:"annual_income,omitempty"`
	LocalAgent             string `json:"local_agent,omitempty"`
	RegisteredAddress      string `json:"registered_address,omitempty"`
	BusinessAddress        string `json:"business_address,omitempty"`
	CompanyType            string `json:"company_type,omitempty"`
	AccountPurpose         string `json:"account_purpose,omitempty"`
	EstimatedTradingVolume string `json:"estimated_trading_volume,omitempty"`
}

type DirectorsBeneficialOwner struct {
	NumberOfDirectors int               `json:"number_of_directors"`
	Directors         []Director        `json:"directors"`
	BeneficialOwners  []BeneficialOwner `json:"beneficial_owners"`
}

type Director struct {
	GivenName string `json:"given_name"`
	Surname   string `json:"surname"`
}

type BeneficialOwner struct {
	FullName           string `json:"full_name"`
	DateOfBirth        string `json:"date_of_birth,omitempty"`
	ResidentialAddress string `json:"residential_address,omitempty"`
}

func (*CompanyKyc) Kind() EntityKind { return KindCompany }
func (*CompanyKyc) sealed()          {}

// Normalize keeps the declared director count equal to the director list.
func (c *CompanyKyc) Normalize() {
	if c.DirectorsBeneficialOwner != nil {
		c.DirectorsBeneficialOwner.NumberOfDirectors = len(c.DirectorsBeneficialOwner.Directors)
	}
}

// -----------------------------------------------------------------------------
// Trust
// -----------------------------------------------------------------------------

type TrustKyc struct {
	EntityKycHeader
	TrustDetails       *TrustDetails       `json:"trust_details,omitempty"`
	Beneficiaries      []BeneficialOwner   `json:"beneficiaries,omitempty"`
	CompanyTrustees    []CompanyTrustee    `json:"company_trustees,omitempty"`
	IndividualTrustees []IndividualTrustee `json:"individual_trustees,omitempty"`
}

type TrustDetails struct {
	FullTrustName          string `json:"full_trust_name,omitempty"`
	CountryOfEstablishment string `json:"country_of_establishment,omitempty"`
	SettlorName            string `json:"settlor_name,omitempty"`
	Industry               string `json:"industry,omitempty"`
	NatureOfBusiness       string `json:"nature_of_business,omitempty"`
	AnnualIncome           string `json:"annual_income,omitempty"`
	PrincipalAddress       string `json:"principal_address,omitempty"`
	PostalAddress          string `json:"postal_address,omitempty"`
	ContactInformation     string `json:"contact_information,omitempty"`
	TrustType              string `json:"trust_type,omitempty"`
	AccountPurpose         string `json:"account_purpose,omitempty"`
	EstimatedTradingVolume string `json:"estimated_trading_volume,omitempty"`
}

type CompanyTrustee struct {
	CompanyName        string `json:"company_name"`
	RegistrationNumber string `json:"registration_number,omitempty"`
	RegisteredAddress  string `json:"registered_address,omitempty"`
}

type IndividualTrustee struct {
	FullName           string `json:"full_name"`
	DateOfBirth        string `json:"date_of_birth,omitempty"`
	ResidentialAddress string `json:"residential_address,omitempty"`
}

func (*TrustKyc) Kind() EntityKind { return KindTrust }
func (*TrustKyc) Normalize()       {}
func (*TrustKyc) sealed()          {}

// -----------------------------------------------------------------------------
// Partnership, government body, association, cooperative
// -----------------------------------------------------------------------------

type NonIndividualKyc struct {
	EntityKycHeader
	GeneralInformation     *NonIndividualGeneralInformation `json:"general_information,omitempty"`
	Partnership            *Partnership                     `json:"partnership,omitempty"`
	GovernmentBody         *GovernmentBody                  `json:"government_body,omitempty"`
	AssociationCooperative *AssociationCooperative          `json:"association_cooperative,omitempty"`
}

type NonIndividualGeneralInformation struct {
	EntityName             string `json:"entity_name,omitempty"`
	CountryOfFormation     string `json:"country_of_formation,omitempty"`
	RegisteredBusinessName string `json:"registered_business_name,omitempty"`
	Industry               string `json:"industry,omitempty"`
	ASICRegistration       string `json:"asic_registration,omitempty"`
	ContactInformation     string `json:"contact_information,omitempty"`
	Addresses              string `json:"addresses,omitempty"`
	AccountPurpose         string `json:"account_purpose,omitempty"`
}

type Partnership struct {
	PartnershipType    string              `json:"partnership_type,omitempty"`
	IsRegulated        bool                `json:"is_regulated"`
	RegulatorName      string              `json:"regulator_name,omitempty"`
	MembershipNumber   string              `json:"membership_number,omitempty"`
	CompanyPartners    []CompanyTrustee    `json:"company_partners,omitempty"`
	IndividualPartners []IndividualTrustee `json:"individual_partners,omitempty"`
}

type GovernmentBody struct {
	GovernmentBodyType string `json:"government_body_type,omitempty"`
	GovernmentName     string `json:"government_name,omitempty"`
	LegislationName    string `json:"legislation_name,omitempty"`
}

type AssociationCooperative struct {
	EntityType       string            `json:"entity_type,omitempty"`
	Officeholders    Officeholders     `json:"officeholders"`
	BeneficialOwners []BeneficialOwner `json:"beneficial_owners,omitempty"`
}

type Officeholders struct {
	PresidentChair string `json:"president_chair,omitempty"`
	Secretary      string `json:"secretary,omitempty"`
	Treasurer      string `json:"treasurer,omitempty"`
	PublicOfficer  string `json:"public_officer,omitempty"`
}

func (*NonIndividualKyc) Kind() EntityKind { return KindNonIndividual }
func (*NonIndividualKyc) Normalize()       {}
func (*NonIndividualKyc) sealed()          {}
