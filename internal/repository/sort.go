package repository

import "strings"

// compareIDs orders IDs by the integer following prefix. IDs with a numeric
// suffix come first, in numeric order; the rest follow in lexicographic order.
// Equal numbers with different spellings (H01, H1) fall back to the full ID.
func compareIDs(prefix, a, b string) int {
	na, aok := numericSuffix(prefix, a)
	nb, bok := numericSuffix(prefix, b)
	switch {
	case aok && bok:
		if c := compareDigits(na, nb); c != 0 {
			return c
		}
		return strings.Compare(a, b)
	case aok:
		return -1
	case bok:
		return 1
	default:
		return strings.Compare(a, b)
	}
}

// numericSuffix strips prefix and returns the remaining digits without
// leading zeros.
func numericSuffix(prefix, id string) (string, bool) {
	rest, ok := strings.CutPrefix(id, prefix)
	if !ok || rest == "" {
		return "", false
	}
	for i := 0; i < len(rest); i++ {
		if rest[i] < '0' || rest[i] > '9' {
			return "", false
		}
	}
	return strings.TrimLeft(rest, "0"), true
}

// compareDigits compares two unsigned decimal strings of any length
func compareDigits(a, b string) int {
	if len(a) != len(b) {
		if len(a) < len(b) {
			return -1
		}
		return 1
	}
	return strings.Compare(a, b)
}
