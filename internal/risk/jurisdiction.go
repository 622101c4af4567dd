package risk

import "strings"

// Tier is a jurisdiction risk class.
type Tier string

const (
	TierUnknown Tier = "Unknown"
	TierLow     Tier = "LRC"
	TierMedium  Tier = "MRC"
	TierHigh    Tier = "HRC"
	TierUltra   Tier = "UHRC"
)

// Jurisdiction is the classification of one country name.
type Jurisdiction struct {
	Tier        Tier   `json:"tier"`
	Label       string `json:"label"`
	Score       int    `json:"score"`
	Description string `json:"description"`
}

type tierInfo struct {
	label       string
	score       int
	description string
	countries   []string
}

var (
	ultraHighRisk = tierInfo{
		label:       "UHRC - Ultra High Risk Country",
		score:       100,
		description: "Sanctioned countries (Unacceptable)",
		countries: []string{
			"north korea", "iran", "sudan", "south sudan", "syria", "venezuela",
			"russia", "belarus", "myanmar", "cuba", "afghanistan",
		},
	}
	highRisk = tierInfo{
		label:       "HRC - High Risk Country",
		score:       5,
		description: "Tax havens, Basel > 6, FATF grey list",
		countries: []string{
			"yemen", "nicaragua", "pakistan", "haiti", "libya", "somalia",
			"lebanon", "zimbabwe", "burkina faso", "tanzania", "turkey",
		},
	}
	mediumRisk = tierInfo{
		label:       "MRC - Medium Risk Country",
		score:       3,
		description: "Remaining countries with moderate AML risk",
		countries: []string{
			"malaysia", "jamaica", "philippines", "vietnam", "namibia",
			"uganda", "albania", "senegal",
		},
	}
	// Listed for reference; unlisted countries fall back to the same tier.
	lowRisk = tierInfo{
		label:       "LRC - Low Risk Country",
		score:       1,
		description: "Basel AML Index < 4.71",
		countries: []string{
			"bangladesh", "singapore", "japan", "canada", "australia", "new zealand",
			"sweden", "norway", "denmark", "switzerland", "finland", "germany",
		},
	}
)

// countryTiers is built once; lookups never mutate it.
var countryTiers = buildCountryTiers()

func buildCountryTiers() map[string]Tier {
	m := make(map[string]Tier)
	for tier, info := range map[Tier]tierInfo{
		TierLow:    lowRisk,
		TierMedium: mediumRisk,
		TierHigh:   highRisk,
		TierUltra:  ultraHighRisk,
	} {
		for _, c := range info.countries {
			m[c] = tier
		}
	}
	return m
}

func infoFor(tier Tier) tierInfo {
	switch tier {
	case TierUltra:
		return ultraHighRisk
	case TierHigh:
		return highRisk
	case TierMedium:
		return mediumRisk
	default:
		return lowRisk
	}
}

// ClassifyCountry maps a country name to its tier. Matching is case-insensitive on the
// trimmed name; an empty name is Unknown and scores zero, any other unlisted name is
// low risk.
func ClassifyCountry(country string) Jurisdiction {
	key := strings.ToLower(strings.TrimSpace(country))
	if key == "" {
		return Jurisdiction{Tier: TierUnknown, Label: "Unknown", Score: 0, Description: "No country specified"}
	}
	tier, ok := countryTiers[key]
	if !ok {
		tier = TierLow
	}
	info := infoFor(tier)
	return Jurisdiction{Tier: tier, Label: info.label, Score: info.score, Description: info.description}
}
