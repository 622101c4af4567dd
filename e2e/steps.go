package e2e

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/cucumber/godog"
)

// RegisterSteps binds every step definition to the scenario.
func RegisterSteps(ctx *godog.ScenarioContext, tc *TestContext) {
	ctx.Before(func(c context.Context, _ *godog.Scenario) (context.Context, error) {
		return c, tc.start(c)
	})
	ctx.After(func(c context.Context, _ *godog.Scenario, err error) (context.Context, error) {
		tc.close()
		return c, err
	})

	registerCommonSteps(ctx, tc)
	registerOnboardingSteps(ctx, tc)
}

func registerCommonSteps(ctx *godog.ScenarioContext, tc *TestContext) {
	ctx.Step(`^the onboarding service is running$`, func() error {
		if tc.server == nil {
			return fmt.Errorf("server not started")
		}
		return nil
	})
	ctx.Step(`^I am signed in as "([^"]*)"$`, func(email string) error {
		token, ok := tc.tokens[email]
		if !ok {
			return fmt.Errorf("no seeded user %q", email)
		}
		tc.bearer = token
		return nil
	})
	ctx.Step(`^I am signed out$`, func() error {
		tc.bearer = ""
		return nil
	})
	ctx.Step(`^the response status should be (\d+)$`, func(want int) error {
		if tc.lastStatus != want {
			return fmt.Errorf("expected status %d, got %d: %v", want, tc.lastStatus, tc.lastBody)
		}
		return nil
	})
	ctx.Step(`^the response field "([^"]*)" should be "([^"]*)"$`, func(path, want string) error {
		got, ok := tc.field(path)
		if !ok {
			return fmt.Errorf("field %q missing from %v", path, tc.lastBody)
		}
		if fmt.Sprint(got) != want {
			return fmt.Errorf("field %q: expected %q, got %q", path, want, fmt.Sprint(got))
		}
		return nil
	})
	ctx.Step(`^the response should have field "([^"]*)"$`, func(path string) error {
		if _, ok := tc.field(path); !ok {
			return fmt.Errorf("field %q missing from %v", path, tc.lastBody)
		}
		return nil
	})
	ctx.Step(`^the response error code should be "([^"]*)"$`, func(want string) error {
		got, _ := tc.field("code")
		if fmt.Sprint(got) != want {
			return fmt.Errorf("expected error code %q, got %v", want, got)
		}
		if success, _ := tc.field("success"); success != false {
			return fmt.Errorf("expected success=false, got %v", success)
		}
		return nil
	})
}

func registerOnboardingSteps(ctx *godog.ScenarioContext, tc *TestContext) {
	ctx.Step(`^I invite "([^"]*)" as an? "([^"]*)" customer$`, func(email, relationType string) error {
		err := tc.request(http.MethodPost, "/customers/invite", map[string]any{
			"contact":      map[string]any{"email": email},
			"relationType": relationType,
		})
		if err != nil || tc.lastStatus != http.StatusCreated {
			return err
		}
		if v, ok := tc.field("data.customerId"); ok {
			tc.customerID = fmt.Sprint(v)
		}
		if v, ok := tc.field("invite.token"); ok {
			tc.inviteToken = fmt.Sprint(v)
		}
		return nil
	})
	ctx.Step(`^I remember the invite token$`, func() error {
		if tc.inviteToken == "" {
			return fmt.Errorf("no invite token issued yet")
		}
		tc.rememberedToken = tc.inviteToken
		return nil
	})
	ctx.Step(`^I validate the invite$`, func() error {
		return tc.validate(tc.inviteToken)
	})
	ctx.Step(`^I validate the invite with the remembered token$`, func() error {
		return tc.validate(tc.rememberedToken)
	})
	ctx.Step(`^I accept the invite with personal KYC$`, func() error {
		return tc.accept("", false, true)
	})
	ctx.Step(`^I accept the invite as an? "([^"]*)" with entity KYC only$`, func(requestedType string) error {
		return tc.accept(requestedType, true, false)
	})
	ctx.Step(`^I accept the invite as an? "([^"]*)" with entity and personal KYC$`, func(requestedType string) error {
		return tc.accept(requestedType, true, true)
	})
	ctx.Step(`^the required steps should be "([^"]*)"$`, func(want string) error {
		raw, ok := tc.field("required")
		if !ok {
			return fmt.Errorf("no required steps in %v", tc.lastBody)
		}
		items, _ := raw.([]any)
		got := make([]string, 0, len(items))
		for _, item := range items {
			got = append(got, fmt.Sprint(item))
		}
		if strings.Join(got, ",") != want {
			return fmt.Errorf("expected required %q, got %q", want, strings.Join(got, ","))
		}
		return nil
	})
	ctx.Step(`^I fetch the customer$`, func() error {
		return tc.request(http.MethodGet, "/customers/"+tc.customerID, nil)
	})
	ctx.Step(`^I fetch the customer risk$`, func() error {
		return tc.request(http.MethodGet, "/customers/"+tc.customerID+"/risk", nil)
	})
}

func (tc *TestContext) validate(token string) error {
	q := url.Values{}
	q.Set("token", token)
	q.Set("cid", tc.customerID)
	return tc.request(http.MethodGet, "/customers/invite/validate?"+q.Encode(), nil)
}

func (tc *TestContext) accept(requestedType string, withEntity, withPersonal bool) error {
	body := map[string]any{"token": tc.inviteToken, "cid": tc.customerID}
	if requestedType != "" {
		body["requestedType"] = requestedType
	}
	if withEntity {
		body["kyc"] = map[string]any{
			"general_information": map[string]any{"legal_name": "Acme Pty Ltd"},
		}
	}
	if withPersonal {
		body["personalKyc"] = map[string]any{
			"personal_form": map[string]any{
				"customer_details":   map[string]any{"given_name": "Jane", "surname": "Citizen"},
				"employment_details": map[string]any{"occupation": "Engineer", "industry": "Technology"},
				"residential_address": map[string]any{
					"address": "1 George St", "suburb": "Sydney", "state": "NSW", "postcode": "2000", "country": "Australia",
				},
			},
		}
	}
	return tc.request(http.MethodPost, "/customers/register/onboarding", body)
}
