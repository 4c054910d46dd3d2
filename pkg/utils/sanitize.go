package utils

import (
	"strings"
	"unicode"
)

// SanitizeText trims whitespace and removes control characters from
// free-text input such as notes and addresses.
func SanitizeText(input string) string {
	cleaned := strings.Map(func(r rune) rune {
		if unicode.IsControl(r) && r != '\n' && r != '\t' {
			return -1
		}
		return r
	}, input)
	return strings.TrimSpace(cleaned)
}
