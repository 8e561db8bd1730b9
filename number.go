package discodex

import (
	"regexp"
	"strings"
)

var (
	nonNumericRE = regexp.MustCompile(`[^\d.,]`)
	decimalRE    = regexp.MustCompile(`\d+[.,]\d+`)
)

// currencyStripper removes the currency symbols the source site renders
// prices in.
var currencyStripper = strings.NewReplacer("€", "", "$", "", "£", "")

// NormalizePrice converts a displayed price like "12,50 €" into a
// spreadsheet-friendly number string ("12.50"): currency symbols and all
// whitespace (including non-breaking spaces) are removed and every comma
// becomes a period.
//
// The comma rewrite assumes comma is only ever a decimal separator. If
// the source were to use comma as a thousands separator the result would
// be wrong; the site has not been observed to do so, and this is carried
// as a known limitation.
func NormalizePrice(raw string) string {
	if raw == "" {
		return ""
	}
	s := Sanitize(raw)
	s = strings.ReplaceAll(s, " ", " ")
	s = currencyStripper.Replace(s)
	s = whitespaceRE.ReplaceAllString(s, "")
	s = strings.ReplaceAll(s, ",", ".")
	return strings.TrimSpace(s)
}

// NormalizeCount strips everything but digits and separators from a
// displayed count, so "76 309" becomes "76309". Separators are left as
// found; the result is a display string, not necessarily a machine
// number.
func NormalizeCount(raw string) string {
	if raw == "" {
		return ""
	}
	return nonNumericRE.ReplaceAllString(strings.TrimSpace(raw), "")
}

// NormalizeRating extracts the decimal rating from a blob like
// "4,46 / 5" and unifies the decimal separator to a period. Returns ""
// when no decimal number is present.
func NormalizeRating(raw string) string {
	if raw == "" {
		return ""
	}
	m := decimalRE.FindString(Sanitize(raw))
	if m == "" {
		return ""
	}
	return strings.ReplaceAll(m, ",", ".")
}
