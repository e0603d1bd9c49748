// Package numeric converts locale-variant numeric text into canonical
// float64 values. Seller reports mix decimal commas, grouping dots,
// non-breaking spaces and currency noise; everything here is tolerant
// by construction and never returns an error for junk input.
package numeric

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

// tokenPattern matches the first signed decimal token in a cell,
// including grouped forms like 1.234.567,89.
var tokenPattern = regexp.MustCompile(`[-+]?\d[\d.,]*`)

// Normalize parses a cell value into a number. The second return value
// is false when the cell holds no usable numeric token; callers decide
// the fallback (zero or row exclusion). Normalize is idempotent:
// feeding a formatted result back in yields the same number.
func Normalize(raw string) (float64, bool) {
	compact := stripSpaces(raw)
	if compact == "" {
		return 0, false
	}

	token := tokenPattern.FindString(compact)
	if token == "" {
		return 0, false
	}
	token = strings.TrimRight(token, ".,")

	v, err := strconv.ParseFloat(canonical(token), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// canonical rewrites a token so that its decimal separator, if any, is
// a dot and grouping separators are gone.
func canonical(token string) string {
	lastDot := strings.LastIndexByte(token, '.')
	lastComma := strings.LastIndexByte(token, ',')

	switch {
	case lastDot >= 0 && lastComma >= 0:
		// Both present: the rightmost one is the decimal separator,
		// the other is grouping.
		if lastComma > lastDot {
			token = strings.ReplaceAll(token, ".", "")
			token = strings.Replace(token, ",", ".", 1)
		} else {
			token = strings.ReplaceAll(token, ",", "")
		}
	case lastComma >= 0:
		if strings.Count(token, ",") > 1 {
			// Repeated commas can only be grouping.
			token = strings.ReplaceAll(token, ",", "")
		} else {
			// A lone comma with no decimal point is the decimal
			// separator (1234,56).
			token = strings.Replace(token, ",", ".", 1)
		}
	case lastDot >= 0 && strings.Count(token, ".") > 1:
		token = strings.ReplaceAll(token, ".", "")
	}
	return token
}

// stripSpaces removes ordinary and non-breaking whitespace.
func stripSpaces(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) || r == ' ' || r == ' ' {
			return -1
		}
		return r
	}, s)
}
