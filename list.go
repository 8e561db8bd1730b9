package discodex

import "strings"

// ListOptions configures NormalizeList per field.
type ListOptions struct {
	// StripSuffixNumber removes a trailing (N) disambiguation suffix
	// from each entry. Used for labels.
	StripSuffixNumber bool

	// Exclude drops entries matching these values verbatim,
	// case-sensitively. Used to drop the "Tout format" placeholder.
	Exclude []string

	// MaxEntries caps the number of entries kept. Zero means unbounded.
	MaxEntries int

	// RewriteAmpersand rewrites " & " and stray "&" into comma
	// separators before splitting. Used for genres and countries.
	RewriteAmpersand bool

	// Protect lists phrases that must survive the ampersand rewrite
	// intact, e.g. the genre "Stage & Screen".
	Protect []string
}

// Canonical per-field options, matching the source site's quirks.
var (
	// LabelOptions: labels carry (N) disambiguation suffixes and only
	// the first three are of interest.
	LabelOptions = ListOptions{StripSuffixNumber: true, MaxEntries: 3}

	// FormatOptions: the format list includes an "all formats"
	// placeholder on the French site.
	FormatOptions = ListOptions{Exclude: []string{"Tout format"}}

	// GenreOptions: the site renders the final genre with an ampersand
	// ("Pop, Folk, World, & Country") which is a separator, except in
	// the genre literally named "Stage & Screen".
	GenreOptions = ListOptions{RewriteAmpersand: true, Protect: []string{"Stage & Screen"}}

	// CountryOptions: multi-region strings like "UK, Europe & US".
	CountryOptions = ListOptions{RewriteAmpersand: true}
)

// NormalizeList converts a comma-joined sequence of candidate entries
// into a canonical ", "-joined list: each entry is sanitized, optionally
// stripped of its trailing disambiguation number, and dropped when empty,
// excluded, or already seen. First occurrence wins and order is
// preserved. With RewriteAmpersand set, ampersand separators become
// commas before splitting, leaving protected phrases untouched.
func NormalizeList(raw string, opts ListOptions) string {
	s := Sanitize(raw)
	if s == "" {
		return ""
	}

	if opts.RewriteAmpersand {
		s = rewriteAmpersands(s, opts.Protect)
	}

	var entries []string
	seen := make(map[string]bool)
	for _, entry := range strings.Split(s, ",") {
		entry = strings.TrimSpace(entry)
		if opts.StripSuffixNumber {
			entry = StripSuffixNumber(entry)
		}
		if entry == "" || seen[entry] || excluded(entry, opts.Exclude) {
			continue
		}
		seen[entry] = true
		entries = append(entries, entry)
		if opts.MaxEntries > 0 && len(entries) == opts.MaxEntries {
			break
		}
	}
	return strings.Join(entries, ", ")
}

func excluded(entry string, exclude []string) bool {
	for _, e := range exclude {
		if entry == e {
			return true
		}
	}
	return false
}

// rewriteAmpersands turns ampersand separators into commas. Protected
// phrases are treated as indivisible tokens: the string is cut at each
// occurrence, only the segments in between are rewritten, and the
// phrase is reassembled verbatim.
func rewriteAmpersands(s string, protect []string) string {
	var b strings.Builder
	for s != "" {
		idx, phrase := earliestPhrase(s, protect)
		if idx < 0 {
			b.WriteString(rewriteAmp(s))
			break
		}
		b.WriteString(rewriteAmp(s[:idx]))
		b.WriteString(phrase)
		s = s[idx+len(phrase):]
	}
	return b.String()
}

// earliestPhrase returns the position and text of the first protected
// phrase occurring in s, or (-1, "") if none occurs.
func earliestPhrase(s string, protect []string) (int, string) {
	best, text := -1, ""
	for _, p := range protect {
		if p == "" {
			continue
		}
		if idx := strings.Index(s, p); idx >= 0 && (best < 0 || idx < best) {
			best, text = idx, p
		}
	}
	return best, text
}

func rewriteAmp(s string) string {
	s = strings.ReplaceAll(s, " & ", ", ")
	return strings.ReplaceAll(s, "&", ",")
}
