package parse

import (
	"slices"
	"strings"
)

// List splits a comma-separated list, trims every element and drops empty
// and duplicate elements while keeping the input order.
func List(input string) []string {
	if strings.TrimSpace(input) == "" {
		return []string{}
	}

	parts := strings.Split(input, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" || slices.Contains(result, p) {
			continue
		}
		result = append(result, p)
	}
	return result
}
