package domain

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "onboard/pkg/domain-errors"
)

// parsers exposes every typed parser behind one signature so the rules can be
// checked once for all identifier kinds.
var parsers = map[string]func(string) (uuid.UUID, error){
	"user": func(s string) (uuid.UUID, error) {
		v, err := ParseUserID(s)
		return uuid.UUID(v), err
	},
	"customer": func(s string) (uuid.UUID, error) {
		v, err := ParseCustomerID(s)
		return uuid.UUID(v), err
	},
	"client": func(s string) (uuid.UUID, error) {
		v, err := ParseClientID(s)
		return uuid.UUID(v), err
	},
	"branch": func(s string) (uuid.UUID, error) {
		v, err := ParseBranchID(s)
		return uuid.UUID(v), err
	},
	"entity kyc": func(s string) (uuid.UUID, error) {
		v, err := ParseEntityKycID(s)
		return uuid.UUID(v), err
	},
}

func TestParse(t *testing.T) {
	valid := uuid.New()
	inputs := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"lowercase", valid.String(), false},
		{"uppercase", strings.ToUpper(valid.String()), false},
		{"empty", "", true},
		{"nil uuid", uuid.Nil.String(), true},
		{"whitespace", "   ", true},
		{"not a uuid", "cust-42", true},
		{"sql fragment", "'; DROP TABLE customers;--", true},
		{"embedded null byte", "550e8400\x00-e29b-41d4-a716-446655440000", true},
		{"oversized", strings.Repeat("f", 512), true},
	}

	for kind, parse := range parsers {
		for _, tt := range inputs {
			t.Run(kind+"/"+tt.name, func(t *testing.T) {
				got, err := parse(tt.input)
				if tt.wantErr {
					require.Error(t, err)
					assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
					return
				}
				require.NoError(t, err)
				assert.Equal(t, valid, got)
			})
		}
	}
}

func TestParse_ErrorMessagesNameTheKind(t *testing.T) {
	_, err := ParseCustomerID("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "customer ID is required")

	_, err = ParseBranchID("x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid branch ID")
}

func TestParseOptionalBranchID(t *testing.T) {
	branch, err := ParseOptionalBranchID("")
	require.NoError(t, err)
	assert.True(t, branch.IsNil(), "empty means the client's own bucket")

	_, err = ParseOptionalBranchID("head-office")
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
}

func TestJSON(t *testing.T) {
	type header struct {
		Customer CustomerID `json:"customer"`
		Branch   BranchID   `json:"branch"`
	}

	t.Run("absent branch encodes as empty string", func(t *testing.T) {
		h := header{Customer: CustomerID(uuid.New())}
		raw, err := json.Marshal(h)
		require.NoError(t, err)
		assert.Contains(t, string(raw), `"branch":""`)

		var decoded header
		require.NoError(t, json.Unmarshal(raw, &decoded))
		assert.Equal(t, h, decoded)
		assert.True(t, decoded.Branch.IsNil())
	})

	t.Run("malformed id is rejected", func(t *testing.T) {
		var decoded header
		require.Error(t, json.Unmarshal([]byte(`{"customer":"nope"}`), &decoded))
	})
}

func TestNullableUUID(t *testing.T) {
	assert.Nil(t, NullableUUID(uuid.Nil))
	assert.Equal(t, uuid.Nil, FromNullable(nil))

	u := uuid.New()
	assert.Equal(t, u, FromNullable(NullableUUID(u)))
}
