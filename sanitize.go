package discodex

import (
	"html"
	"regexp"
	"strings"
)

var (
	whitespaceRE   = regexp.MustCompile(`\s+`)
	suffixNumberRE = regexp.MustCompile(`\s*\(\d+\)$`)
)

// quoteStripper removes the ASCII double quote and its curly variants.
// Apostrophes are kept so titles like "She's So Unusual" survive.
var quoteStripper = strings.NewReplacer(`"`, "", "“", "", "”", "")

// Sanitize converts a raw, possibly entity-encoded source string into
// clean text: HTML entities are decoded, double quotes (straight and
// curly) are stripped, and whitespace runs collapse to a single space.
// Empty input returns empty. Sanitize is idempotent.
func Sanitize(s string) string {
	if s == "" {
		return ""
	}
	s = html.UnescapeString(s)
	s = quoteStripper.Replace(s)
	s = whitespaceRE.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// StripSuffixNumber removes a trailing parenthesized disambiguation
// number, as used by Discogs to distinguish same-named entities.
// Example: "Justice (3)" becomes "Justice".
func StripSuffixNumber(s string) string {
	return strings.TrimSpace(suffixNumberRE.ReplaceAllString(s, ""))
}

// CleanArtist normalizes an artist name from a catalog card: sanitized
// and with any trailing disambiguation number removed.
func CleanArtist(s string) string {
	return StripSuffixNumber(Sanitize(s))
}

// CleanTitle normalizes an album title from a catalog card.
func CleanTitle(s string) string {
	return Sanitize(s)
}
