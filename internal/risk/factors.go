package risk

import (
	"slices"
	"strings"
	"unicode"
)

// Factor is one scored input. Unmatched inputs keep their raw value with score 0.
type Factor struct {
	Value string `json:"value"`
	Score int    `json:"score"`
}

// Table is an immutable weighted lookup table.
type Table struct {
	name    string
	entries []Factor
}

func newTable(name string, entries ...Factor) Table {
	return Table{name: name, entries: entries}
}

func (t Table) Name() string { return t.name }

// Entries returns a copy of the table rows in declaration order.
func (t Table) Entries() []Factor {
	return append([]Factor(nil), t.entries...)
}

// Lookup resolves raw against the table: exact case-insensitive match first, then
// whole-string containment in either direction, then a word stage where every word of
// at least four letters in the row must share a stem with some word of the input. The
// first matching row in declaration order wins.
func (t Table) Lookup(raw string) Factor {
	needle := strings.ToLower(strings.TrimSpace(raw))
	if needle == "" {
		return Factor{Value: "", Score: 0}
	}

	for _, e := range t.entries {
		if strings.ToLower(e.Value) == needle {
			return e
		}
	}
	for _, e := range t.entries {
		v := strings.ToLower(e.Value)
		if strings.Contains(needle, v) || strings.Contains(v, needle) {
			return e
		}
	}
	needleWords := words(needle)
	for _, e := range t.entries {
		if coveredBy(words(strings.ToLower(e.Value)), needleWords) {
			return e
		}
	}
	return Factor{Value: raw, Score: 0}
}

// coveredBy reports whether each row word is a prefix of, or prefixed by, an input word.
// A row made only of short words never matches here.
func coveredBy(rowWords, inputWords []string) bool {
	if len(rowWords) == 0 {
		return false
	}
	for _, rw := range rowWords {
		if !slices.ContainsFunc(inputWords, func(iw string) bool {
			return strings.HasPrefix(iw, rw) || strings.HasPrefix(rw, iw)
		}) {
			return false
		}
	}
	return true
}

const minWordLen = 4

func words(s string) []string {
	fields := strings.FieldsFunc(s, func(r rune) bool { return !unicode.IsLetter(r) })
	out := fields[:0]
	for _, f := range fields {
		if len(f) >= minWordLen {
			out = append(out, f)
		}
	}
	return out
}

var (
	customerTypeTable = newTable("customerType",
		Factor{"government", 1},
		Factor{"individual", 2},
		Factor{"association/cooperative", 3},
		Factor{"company", 4},
		Factor{"trust", 5},
	)

	jurisdictionTable = newTable("jurisdiction",
		Factor{string(TierLow), 1},
		Factor{string(TierMedium), 3},
		Factor{string(TierHigh), 5},
		Factor{string(TierUltra), 100},
	)

	retentionTable = newTable("customerRetention",
		Factor{"3+ Years", 1},
		Factor{"1-3 Years", 2},
		Factor{"New", 3},
	)

	productTable = newTable("product",
		Factor{"Custody", 2},
		Factor{"Stable coin", 3},
		Factor{"Affiliate", 3},
		Factor{"Bullion", 4},
		Factor{"Remittance/FX", 4},
		Factor{"DCE", 5},
	)

	channelTable = newTable("channel",
		Factor{"Face to Face", 1},
		Factor{"Direct mobile App", 3},
		Factor{"Agent", 3},
		Factor{"Messaging/Email", 4},
		Factor{"Broker", 5},
		Factor{"in-branch", 1},
		Factor{"web", 3},
		Factor{"api", 3},
	)

	occupationTable = newTable("occupation",
		Factor{"Managers", 1},
		Factor{"Professionals", 1},
		Factor{"Clerical", 2},
		Factor{"Technician", 3},
		Factor{"Sales", 3},
		Factor{"Machinery", 3},
		Factor{"Service", 4},
		Factor{"Labourer", 4},
		Factor{"Business Owner", 4},
		Factor{"Unemployed", 5},
		Factor{"Student", 5},
	)

	industryTable = newTable("industry",
		Factor{"Electricity", 1},
		Factor{"Information Technology", 1},
		Factor{"Public Administration", 1},
		Factor{"Education", 2},
		Factor{"Health Care", 2},
		Factor{"Agriculture", 3},
		Factor{"Mining", 3},
		Factor{"Manufacturing", 3},
		Factor{"Wholesale", 3},
		Factor{"Accommodation", 3},
		Factor{"Transport", 3},
		Factor{"Professional Services", 3},
		Factor{"Retail", 4},
		Factor{"Arts", 4},
		Factor{"Construction", 5},
		Factor{"Financial Services", 5},
		Factor{"Real Estate", 5},
	)
)

func CustomerTypes() Table { return customerTypeTable }
func Jurisdictions() Table { return jurisdictionTable }
func Retention() Table     { return retentionTable }
func Products() Table      { return productTable }
func Channels() Table      { return channelTable }
func Occupations() Table   { return occupationTable }
func Industries() Table    { return industryTable }
