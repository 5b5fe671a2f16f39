package utils

import "strings"

// CollapseSpace trims a string and collapses internal runs of whitespace
// into single spaces.
func CollapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Fold normalizes a string for loose comparison: trimmed, internal
// whitespace collapsed, lowercased. Header matching, key building and
// value equivalence all use this form.
func Fold(s string) string {
	return strings.ToLower(CollapseSpace(s))
}

// IsBlank reports whether a string contains nothing but whitespace.
func IsBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// AllBlank reports whether every cell in a row is blank.
func AllBlank(cells []string) bool {
	for _, c := range cells {
		if !IsBlank(c) {
			return false
		}
	}
	return true
}
