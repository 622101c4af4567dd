package email

import (
	"strings"
	"unicode"
)

// Normalize trims and lowercases an email address so lookups are case-insensitive.
func Normalize(address string) string {
	return strings.ToLower(strings.TrimSpace(address))
}

// NormalizePhone strips formatting characters, keeping a leading plus sign.
func NormalizePhone(phone string) string {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return ""
	}
	var b strings.Builder
	for i, r := range phone {
		if r == '+' && i == 0 {
			b.WriteRune(r)
			continue
		}
		if unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// DeriveNameFromEmail guesses a display name from the local part of an address.
func DeriveNameFromEmail(address string) string {
	localPart := address
	if at := strings.IndexByte(address, '@'); at > 0 {
		localPart = address[:at]
	}

	parts := strings.FieldsFunc(localPart, func(r rune) bool {
		return r == '.' || r == '_' || r == '-' || r == '+'
	})
	if len(parts) == 0 {
		return "Customer"
	}
	for i, p := range parts {
		parts[i] = capitalize(p)
	}
	return strings.Join(parts, " ")
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	runes := []rune(s)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
