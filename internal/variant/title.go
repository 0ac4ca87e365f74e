package variant

import "strings"

// Known size tokens for compact display, compared case-insensitively.
var sizeTokens = map[string]bool{
	"XS": true, "S": true, "M": true, "L": true,
	"XL": true, "XXL": true, "2XL": true, "3XL": true,
}

// CompactTitle reduces a "/"-separated variant title to something that fits a
// quick-add button. It prefers a component that reads as a size (a known size
// token or an all-digit string) and otherwise truncates the first component.
// Display only: it never influences which variant gets added.
func CompactTitle(title string) string {
	parts := strings.Split(title, "/")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}

	for _, part := range parts {
		if sizeTokens[strings.ToUpper(part)] || isAllDigits(part) {
			return part
		}
	}

	first := []rune(parts[0])
	if len(first) > 4 {
		return string(first[:3])
	}
	return string(first)
}

func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
