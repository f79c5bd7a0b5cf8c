package domain

import (
	"strings"
)

// NormalizeWord prepares a lookup word for submission:
//   - lowercases it
//   - trims leading/trailing whitespace
//   - collapses inner whitespace runs (spaces, tabs, newlines) into one space
//
// Hyphens and apostrophes are preserved, so "Well-Known" and "don't" survive.
// A word made only of whitespace normalizes to "".
func NormalizeWord(word string) string {
	fields := strings.Fields(strings.ToLower(word))
	switch len(fields) {
	case 0:
		return ""
	case 1:
		return fields[0]
	}
	return strings.Join(fields, " ")
}
