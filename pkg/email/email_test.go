package email

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	assert.Equal(t, "jane.doe@example.com", Normalize("  Jane.Doe@Example.COM "))
	assert.Equal(t, "", Normalize("   "))
}

func TestNormalizePhone(t *testing.T) {
	assert.Equal(t, "+61400111222", NormalizePhone(" +61 400-111 (222) "))
	assert.Equal(t, "0400111222", NormalizePhone("0400 111 222"))
	assert.Equal(t, "", NormalizePhone(""))
}

func TestDeriveNameFromEmail(t *testing.T) {
	assert.Equal(t, "Jane Doe", DeriveNameFromEmail("jane.doe@example.com"))
	assert.Equal(t, "Customer", DeriveNameFromEmail(""))
}
