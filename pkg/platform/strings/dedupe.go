// Package strings holds small slice helpers for configuration values.
package strings

import (
	"strings"
)

// DedupeAndTrim trims each element and drops empty and repeated ones, keeping the
// first occurrence order.
func DedupeAndTrim(values []string) []string {
	if len(values) == 0 {
		return nil
	}

	seen := make(map[string]struct{}, len(values))
	result := make([]string, 0, len(values))
	for _, v := range values {
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			continue
		}
		if _, ok := seen[trimmed]; ok {
			continue
		}
		seen[trimmed] = struct{}{}
		result = append(result, trimmed)
	}
	if len(result) == 0 {
		return nil
	}
	return result
}

// SplitList splits a comma separated value such as a broker list.
func SplitList(raw string) []string {
	return DedupeAndTrim(strings.Split(raw, ","))
}
