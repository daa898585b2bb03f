package utils

import "strings"

// Normalize lowercases and trims an utterance for keyword matching.
func Normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// FilterPhone keeps only digits and '+' from a raw utterance, preserving
// their order. The result is a dialable candidate, not a validated number.
func FilterPhone(s string) string {
	var b strings.Builder
	for _, r := range s {
		if (r >= '0' && r <= '9') || r == '+' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// DigitCount returns the number of decimal digits in s.
func DigitCount(s string) int {
	n := 0
	for _, r := range s {
		if r >= '0' && r <= '9' {
			n++
		}
	}
	return n
}

// ContainsAny reports whether text contains at least one of the needles.
func ContainsAny(text string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(text, n) {
			return true
		}
	}
	return false
}
