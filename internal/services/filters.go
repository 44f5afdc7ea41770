package services

import "strings"

// Per-field input filters, applied on every keystroke before the value is
// stored. Filtering is idempotent: running a filter over already-filtered
// text is a no-op.

// FilterName strips any character outside letters, spaces, hyphen,
// apostrophe and period. Used for bank and recipient names.
func FilterName(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if isNameRune(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func isNameRune(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z':
		return true
	case r >= 'A' && r <= 'Z':
		return true
	case r == ' ' || r == '\t' || r == '-' || r == '\'' || r == '.':
		return true
	}
	return false
}

// FilterDigits strips any non-digit. Used for routing, institution, transit
// and account numbers, and for the PIN buffer.
func FilterDigits(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// FilterAmount strips anything but digits and a single decimal point. Input
// past a second decimal point is dropped, and the fractional part is
// truncated to two digits.
func FilterAmount(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	seenPoint := false
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.':
			if seenPoint {
				return truncateCents(b.String())
			}
			seenPoint = true
			b.WriteRune(r)
		}
	}
	return truncateCents(b.String())
}

func truncateCents(s string) string {
	if i := strings.IndexByte(s, '.'); i >= 0 && len(s) > i+3 {
		return s[:i+3]
	}
	return s
}

// ValidName reports whether a trimmed name is non-empty and made only of the
// allowed character class.
func ValidName(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !isNameRune(r) {
			return false
		}
	}
	return true
}

// AllDigits reports whether s is all digits with a length in [min, max]
func AllDigits(s string, min, max int) bool {
	if len(s) < min || len(s) > max {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// ValidABARoutingNumber runs the full ABA checksum over a 9-digit routing
// number: weights 3, 7, 1 repeating across the digits, weighted sum must be
// divisible by 10.
func ValidABARoutingNumber(s string) bool {
	if !AllDigits(s, 9, 9) {
		return false
	}
	weights := [3]int{3, 7, 1}
	sum := 0
	for i, r := range s {
		sum += int(r-'0') * weights[i%3]
	}
	return sum%10 == 0
}
