package kyc

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"onboard/internal/onboarding/models"
	"onboard/internal/onboarding/store/entitykyc"
	id "onboard/pkg/domain"
	dErrors "onboard/pkg/domain-errors"
)

type EngineSuite struct {
	suite.Suite
	ctx      context.Context
	store    *entitykyc.InMemory
	engine   *Engine
	now      time.Time
	customer id.CustomerID
	client   id.ClientID
}

func TestEngineSuite(t *testing.T) {
	suite.Run(t, new(EngineSuite))
}

func (s *EngineSuite) SetupTest() {
	s.ctx = context.Background()
	s.store = entitykyc.NewInMemory()
	s.now = time.Date(2026, 2, 2, 10, 0, 0, 0, time.UTC)
	s.engine = NewEngine(s.store, WithClock(func() time.Time { return s.now }))
	s.customer = id.CustomerID(uuid.New())
	s.client = id.ClientID(uuid.New())
}

func payload(s *EngineSuite, sections map[string]any) models.KycPayload {
	out := models.KycPayload{}
	for k, v := range sections {
		raw, err := json.Marshal(v)
		s.Require().NoError(err)
		out[k] = raw
	}
	return out
}

func (s *EngineSuite) TestDispatch() {
	s.Run("company", func() {
		doc, err := s.engine.UpsertEntityKyc(s.ctx, models.EntityCompany,
			payload(s, map[string]any{"general_information": map[string]string{"legal_name": "Acme"}}),
			s.customer, s.client, id.BranchID{})
		s.Require().NoError(err)
		s.IsType(&models.CompanyKyc{}, doc)
	})

	s.Run("trust", func() {
		doc, err := s.engine.UpsertEntityKyc(s.ctx, models.EntityTrust,
			payload(s, map[string]any{"trust_details": map[string]string{"full_trust_name": "Family"}}),
			s.customer, s.client, id.BranchID{})
		s.Require().NoError(err)
		s.IsType(&models.TrustKyc{}, doc)
	})

	s.Run("partnership uses the non-individual shape", func() {
		doc, err := s.engine.UpsertEntityKyc(s.ctx, models.EntityPartnership,
			payload(s, map[string]any{"partnership": map[string]any{"partnership_type": "general"}}),
			s.customer, s.client, id.BranchID{})
		s.Require().NoError(err)
		s.IsType(&models.NonIndividualKyc{}, doc)
		s.Equal(models.EntityPartnership, doc.Header().EntityType)
	})

	s.Run("individual is not an entity", func() {
		_, err := s.engine.UpsertEntityKyc(s.ctx, models.EntityIndividual,
			payload(s, map[string]any{"general_information": map[string]string{}}),
			s.customer, s.client, id.BranchID{})
		s.True(dErrors.HasCode(err, dErrors.CodeUnsupportedEntityType))
	})
}

func (s *EngineSuite) TestEmptyPayloadDoesNotWrite() {
	doc, err := s.engine.UpsertEntityKyc(s.ctx, models.EntityCompany, nil, s.customer, s.client, id.BranchID{})
	s.Require().NoError(err)
	s.Nil(doc)

	created, err := s.engine.UpsertEntityKyc(s.ctx, models.EntityCompany,
		payload(s, map[string]any{"general_information": map[string]string{"legal_name": "Acme"}}),
		s.customer, s.client, id.BranchID(uuid.New()))
	s.Require().NoError(err)

	found, err := s.engine.UpsertEntityKyc(s.ctx, models.EntityCompany, models.KycPayload{}, s.customer, s.client, id.BranchID{})
	s.Require().NoError(err)
	s.Require().NotNil(found)
	s.Equal(created.Header().ID, found.Header().ID)
}

func (s *EngineSuite) TestMerge() {
	first, err := s.engine.UpsertEntityKyc(s.ctx, models.EntityCompany, payload(s, map[string]any{
		"general_information": map[string]string{"legal_name": "Acme", "industry": "Mining"},
		"directors_beneficial_owner": map[string]any{
			"directors": []map[string]string{{"given_name": "A"}, {"given_name": "B"}},
		},
	}), s.customer, s.client, id.BranchID{})
	s.Require().NoError(err)

	s.now = s.now.Add(time.Hour)
	second, err := s.engine.UpsertEntityKyc(s.ctx, models.EntityCompany, payload(s, map[string]any{
		"general_information": map[string]string{"industry": "Construction"},
		"directors_beneficial_owner": map[string]any{
			"number_of_directors": 9,
			"directors":           []map[string]string{{"given_name": "C"}},
		},
		"customer": uuid.NewString(),
		"id":       uuid.NewString(),
	}), s.customer, s.client, id.BranchID{})
	s.Require().NoError(err)

	company := second.(*models.CompanyKyc)
	s.Equal(first.Header().ID, company.ID, "same document is updated")
	s.Equal(s.customer, company.Customer, "header keys in payload are ignored")
	s.Equal("Acme", company.GeneralInformation.LegalName, "general_information merges key by key")
	s.Equal("Construction", company.GeneralInformation.Industry)
	s.Len(company.DirectorsBeneficialOwner.Directors, 1, "other sections are replaced")
	s.Equal(1, company.DirectorsBeneficialOwner.NumberOfDirectors, "director count follows the list")
	s.Equal(first.Header().CreatedAt, company.CreatedAt)
	s.Equal(s.now, company.UpdatedAt)
}

func (s *EngineSuite) TestUpsertPersonalKyc() {
	c, err := models.NewCustomer(s.customer, id.UserID{}, s.now)
	s.Require().NoError(err)

	s.False(UpsertPersonalKyc(c, nil))
	s.False(UpsertPersonalKyc(c, &models.PersonalKyc{}))
	s.False(UpsertPersonalKyc(c, &models.PersonalKyc{PersonalForm: &models.PersonalForm{}}), "an empty block is not KYC")

	s.True(UpsertPersonalKyc(c, &models.PersonalKyc{FundsWealth: &models.FundsWealth{SourceOfFunds: "salary"}}))
	s.True(UpsertPersonalKyc(c, &models.PersonalKyc{SoleTrader: &models.SoleTrader{IsSoleTrader: true}}))
	s.Equal("salary", c.PersonalKyc.FundsWealth.SourceOfFunds, "blocks not supplied are kept")

	s.True(UpsertPersonalKyc(c, &models.PersonalKyc{FundsWealth: &models.FundsWealth{}}))
	s.Equal("salary", c.PersonalKyc.FundsWealth.SourceOfFunds, "an empty block does not wipe the stored one")
}
