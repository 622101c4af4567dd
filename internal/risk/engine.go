// Package risk scores customers from their assembled KYC record. Scoring is a pure
// function of a Snapshot and a reference time; nothing here is persisted.
package risk

import (
	"time"

	"onboard/internal/onboarding/models"
)

type Label string

const (
	LabelLow          Label = "Low"
	LabelMedium       Label = "Medium"
	LabelHigh         Label = "High"
	LabelUnacceptable Label = "Unacceptable"
)

const (
	unacceptableThreshold = 1000
	highThreshold         = 21
	mediumThreshold       = 18
)

// LabelFor bands a total score.
func LabelFor(score int) Label {
	switch {
	case score >= unacceptableThreshold:
		return LabelUnacceptable
	case score >= highThreshold:
		return LabelHigh
	case score >= mediumThreshold:
		return LabelMedium
	default:
		return LabelLow
	}
}

// Snapshot is the subset of a customer that scoring reads.
type Snapshot struct {
	CustomerType string
	Country      string
	RegisteredAt time.Time
	Channel      string
	Product      string
	Occupation   string
	Industry     string
}

// Assessment holds one scored factor per dimension.
type Assessment struct {
	CustomerType      Factor `json:"customerType"`
	Jurisdiction      Factor `json:"jurisdiction"`
	CustomerRetention Factor `json:"customerRetention"`
	Product           Factor `json:"product"`
	Channel           Factor `json:"channel"`
	Occupation        Factor `json:"occupation"`
	Industry          Factor `json:"industry"`
}

func (a Assessment) factors() []Factor {
	return []Factor{a.CustomerType, a.Jurisdiction, a.CustomerRetention, a.Product, a.Channel, a.Occupation, a.Industry}
}

// Result is the full derived risk view.
type Result struct {
	Assessment  Assessment   `json:"riskAssessment"`
	Country     Jurisdiction `json:"country"`
	Score       int          `json:"riskScore"`
	Label       Label        `json:"riskLabel"`
	EvaluatedAt time.Time    `json:"evaluatedAt"`
}

// Evaluate scores a snapshot at now.
func Evaluate(s Snapshot, now time.Time) Result {
	country := ClassifyCountry(s.Country)
	jurisdiction := Factor{Value: country.Label, Score: jurisdictionTable.Lookup(string(country.Tier)).Score}

	a := Assessment{
		CustomerType:      customerTypeTable.Lookup(s.CustomerType),
		Jurisdiction:      jurisdiction,
		CustomerRetention: retentionFor(s.RegisteredAt, now),
		Product:           productTable.Lookup(s.Product),
		Channel:           channelTable.Lookup(s.Channel),
		Occupation:        occupationTable.Lookup(s.Occupation),
		Industry:          industryTable.Lookup(s.Industry),
	}

	total := 0
	for _, f := range a.factors() {
		total += f.Score
	}
	return Result{Assessment: a, Country: country, Score: total, Label: LabelFor(total), EvaluatedAt: now}
}

const daysPerYear = 365.25

func retentionFor(since, now time.Time) Factor {
	if since.IsZero() {
		since = now
	}
	years := now.Sub(since).Hours() / 24 / daysPerYear
	switch {
	case years >= 3:
		return retentionTable.entries[0]
	case years >= 1:
		return retentionTable.entries[1]
	default:
		return retentionTable.entries[2]
	}
}

const (
	defaultCustomerType = "individual"
	defaultChannel      = models.DefaultSource
	unknownCountry      = "Unknown"
)

// SnapshotFromCustomer selects scoring inputs with the documented fallbacks.
func SnapshotFromCustomer(c *models.Customer) Snapshot {
	rel, _ := c.PrimaryRelation()
	meta := c.Metadata
	employment := c.PersonalKyc.Employment()

	return Snapshot{
		CustomerType: firstNonEmpty(string(rel.Type), meta[models.MetaType], defaultCustomerType),
		Country:      firstNonEmpty(c.PersonalKyc.ResidentialCountry(), meta[models.MetaCountry], unknownCountry),
		RegisteredAt: firstTime(rel.RegisteredAt, c.CreatedAt),
		Channel:      firstNonEmpty(rel.Source, rel.OnboardingChannel, meta[models.MetaChannel], defaultChannel),
		Product:      meta[models.MetaProduct],
		Occupation:   employment.Occupation,
		Industry:     firstNonEmpty(employment.Industry, meta[models.MetaIndustry]),
	}
}

// Assess scores a customer at now.
func Assess(c *models.Customer, now time.Time) Result {
	return Evaluate(SnapshotFromCustomer(c), now)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func firstTime(values ...time.Time) time.Time {
	for _, v := range values {
		if !v.IsZero() {
			return v
		}
	}
	return time.Time{}
}
