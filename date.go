package discodex

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// canonicalDateFormat is the output layout for every date this package
// renders: DD/MM/YYYY, the form spreadsheets ingest directly.
const canonicalDateFormat = "02/01/2006"

// months maps French and English month names, full and abbreviated, to
// their zero-padded number. The source site mixes both locales.
var months = map[string]string{
	// French
	"janv": "01", "janvier": "01",
	"févr": "02", "février": "02", "fevrier": "02",
	"mars": "03",
	"avr": "04", "avril": "04",
	"mai":  "05",
	"juin": "06",
	"juil": "07", "juillet": "07",
	"août": "08", "aout": "08",
	"sept": "09", "septembre": "09",
	"oct": "10", "octobre": "10",
	"nov": "11", "novembre": "11",
	"déc": "12", "décembre": "12", "decembre": "12",

	// English
	"jan": "01", "january": "01",
	"feb": "02", "february": "02",
	"mar": "03", "march": "03",
	"apr": "04", "april": "04",
	"may": "05",
	"jun": "06", "june": "06",
	"jul": "07", "july": "07",
	"aug": "08", "august": "08",
	"sep": "09", "september": "09",
	"october":  "10",
	"november": "11",
	"dec": "12", "december": "12",
}

var (
	bareYearRE      = regexp.MustCompile(`^\d{4}$`)
	canonicalRE     = regexp.MustCompile(`^\d{2}/\d{2}/\d{4}$`)
	dayMonthYearRE  = regexp.MustCompile(`(\d{1,2})\s+(\p{L}+)\.?\s+(\d{4})`)
	monthYearRE     = regexp.MustCompile(`(\p{L}+)\.?\s+(\d{4})`)
	isoDateRE       = regexp.MustCompile(`(\d{4})-(\d{2})-(\d{2})`)
	relativeDaysRE  = regexp.MustCompile(`(\d+)\s*(jours?|days?)`)
	relativeMonthRE = regexp.MustCompile(`(\d+)\s*(mois|months?)`)
)

// ParseDate converts a source date string to the canonical DD/MM/YYYY
// form. Patterns are tried in fixed precedence: bare 4-digit year,
// already-canonical, "<day> <month-name> <year>", "<month-name> <year>",
// ISO YYYY-MM-DD. Month names match the combined French/English lexicon
// case-insensitively, with or without a trailing abbreviation dot.
//
// A string matching no pattern is returned unchanged. That is the
// documented fallback, not an error: callers surface the original text
// rather than failing the record.
func ParseDate(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ""
	}

	if bareYearRE.MatchString(s) {
		return "01/01/" + s
	}

	if canonicalRE.MatchString(s) {
		return s
	}

	if m := dayMonthYearRE.FindStringSubmatch(s); m != nil {
		if num, ok := monthNumber(m[2]); ok {
			return fmt.Sprintf("%s/%s/%s", padDay(m[1]), num, m[3])
		}
	}

	if m := monthYearRE.FindStringSubmatch(s); m != nil {
		if num, ok := monthNumber(m[1]); ok {
			return fmt.Sprintf("01/%s/%s", num, m[2])
		}
	}

	if m := isoDateRE.FindStringSubmatch(s); m != nil {
		return fmt.Sprintf("%s/%s/%s", m[3], m[2], m[1])
	}

	return s
}

// ParseSaleDate resolves the "last sale" value, which may be a relative
// expression such as "il y a 3 jours" or "2 months ago". Relative
// expressions are resolved against the supplied reference time (a month
// approximated as 30 days) and rendered as DD/MM/YYYY; anything else is
// delegated to ParseDate. now is an explicit parameter so resolution is
// deterministic.
func ParseSaleDate(raw string, now time.Time) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ""
	}

	lower := strings.ToLower(s)
	if strings.Contains(lower, "il y a") || strings.Contains(lower, "ago") {
		if m := relativeDaysRE.FindStringSubmatch(lower); m != nil {
			days := atoiDigits(m[1])
			return now.AddDate(0, 0, -days).Format(canonicalDateFormat)
		}
		if m := relativeMonthRE.FindStringSubmatch(lower); m != nil {
			n := atoiDigits(m[1])
			return now.AddDate(0, 0, -n*30).Format(canonicalDateFormat)
		}
	}

	return ParseDate(s)
}

// padDay zero-pads a 1-digit day to two digits.
func padDay(day string) string {
	if len(day) == 1 {
		return "0" + day
	}
	return day
}

// monthNumber looks up a month token, lowercased and with any trailing
// abbreviation dot removed.
func monthNumber(token string) (string, bool) {
	num, ok := months[strings.TrimSuffix(strings.ToLower(token), ".")]
	return num, ok
}

// atoiDigits parses a string known to contain only digits. The regexp
// capture guarantees the input, so conversion cannot fail.
func atoiDigits(s string) int {
	n := 0
	for _, r := range s {
		n = n*10 + int(r-'0')
	}
	return n
}
