package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ParseAmount converts user-entered text into a non-negative amount.
// Blank, malformed, negative or out-of-range input yields 0 instead of an
// error. A single comma followed by one or two digits is a decimal separator
// ("5,50" is 5.5); commas between groups of three digits are thousands
// separators ("1,500" and "1,234.50"). Any other comma makes the input
// malformed.
func ParseAmount(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	s, ok := normalizeCommas(s)
	if !ok {
		return 0
	}
	d, err := decimal.NewFromString(s)
	if err != nil || d.IsNegative() {
		return 0
	}
	f, _ := d.Float64()
	if !finite(f) {
		return 0
	}
	return f
}

func normalizeCommas(s string) (string, bool) {
	if !strings.Contains(s, ",") {
		return s, true
	}
	whole, frac, hasDot := strings.Cut(s, ".")
	if !hasDot && strings.Count(s, ",") == 1 {
		i := strings.IndexByte(s, ',')
		if after := s[i+1:]; len(after) <= 2 && allDigits(after) {
			return s[:i] + "." + after, true
		}
	}
	if strings.Contains(frac, ",") {
		return "", false
	}
	groups := strings.Split(whole, ",")
	if first := strings.TrimLeft(groups[0], "+-"); len(first) == 0 || len(first) > 3 || !allDigits(first) {
		return "", false
	}
	for _, g := range groups[1:] {
		if len(g) != 3 || !allDigits(g) {
			return "", false
		}
	}
	out := strings.Join(groups, "")
	if hasDot {
		out += "." + frac
	}
	return out, true
}

func allDigits(s string) bool {
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
