package domain

import (
	"testing"
	"unicode/utf8"
)

func FuzzParseCustomerID(f *testing.F) {
	f.Add("")
	f.Add("550e8400-e29b-41d4-a716-446655440000")
	f.Add("00000000-0000-0000-0000-000000000000")
	f.Add("{550e8400-e29b-41d4-a716-446655440000}")
	f.Add("urn:uuid:550e8400-e29b-41d4-a716-446655440000")
	f.Add(string([]byte{0xff, 0xfe}))

	f.Fuzz(func(t *testing.T, input string) {
		id, err := ParseCustomerID(input)
		if err != nil {
			return
		}
		if id.IsNil() {
			t.Fatal("nil customer ID accepted")
		}
		if !utf8.ValidString(input) {
			t.Fatalf("non-UTF8 input %q accepted", input)
		}
		again, err := ParseCustomerID(id.String())
		if err != nil || again != id {
			t.Fatalf("canonical form %q did not round-trip: %v", id, err)
		}

		// every kind shares the same rules
		if _, err := ParseBranchID(input); err != nil {
			t.Fatalf("branch parser rejected %q accepted as customer: %v", input, err)
		}
	})
}
