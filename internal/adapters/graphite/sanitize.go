package graphite

import (
	"strings"
	"unicode"
)

func unsafeRune(r rune) bool {
	return r == '.' || unicode.IsSpace(r) || unicode.IsControl(r)
}

// Sanitize replaces every character with special meaning in the wire
// format (dots, whitespace, control characters) with '-'. Clean inputs
// are returned as-is without allocating.
func Sanitize(s string) string {
	if strings.IndexFunc(s, unsafeRune) < 0 {
		return s
	}
	return strings.Map(func(r rune) rune {
		if unsafeRune(r) {
			return '-'
		}
		return r
	}, s)
}
