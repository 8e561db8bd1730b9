package discodex

import (
	"regexp"
	"strings"
	"time"
)

var yearRE = regexp.MustCompile(`\d{4}`)

// statRoute routes one statistics entry to a record field. Routes are
// evaluated in order against the lowercased item label; the first route
// whose keyword matches wins. Order matters: "moyenne" (average rating)
// must be tested before "moyen" (median price), since the former
// contains the latter.
type statRoute struct {
	keywords []string
	assign   func(r *AlbumRecord, value string, now time.Time)
}

var statRoutes = []statRoute{
	{
		keywords: []string{"collection"},
		assign:   func(r *AlbumRecord, v string, _ time.Time) { r.InCollection = NormalizeCount(v) },
	},
	{
		keywords: []string{"wantlist"},
		assign:   func(r *AlbumRecord, v string, _ time.Time) { r.InWantlist = NormalizeCount(v) },
	},
	{
		keywords: []string{"moyenne", "average"},
		assign:   func(r *AlbumRecord, v string, _ time.Time) { r.AvgRating = NormalizeRating(v) },
	},
	{
		keywords: []string{"notes", "ratings"},
		assign:   func(r *AlbumRecord, v string, _ time.Time) { r.RatingCount = NormalizeCount(v) },
	},
	{
		keywords: []string{"vente", "sold"},
		assign:   func(r *AlbumRecord, v string, now time.Time) { r.LastSale = ParseSaleDate(v, now) },
	},
	{
		keywords: []string{"faible", "low"},
		assign:   func(r *AlbumRecord, v string, _ time.Time) { r.PriceLow = NormalizePrice(v) },
	},
	{
		keywords: []string{"moyen", "median"},
		assign:   func(r *AlbumRecord, v string, _ time.Time) { r.PriceMid = NormalizePrice(v) },
	},
	{
		keywords: []string{"élevé", "elevee", "high"},
		assign:   func(r *AlbumRecord, v string, _ time.Time) { r.PriceHigh = NormalizePrice(v) },
	},
}

// ExtractRecord assembles a canonical album record from the raw field
// values located in a release page. Absent fields stay empty strings. A
// failure in any single field is contained to that field: its value
// stays at the default and extraction continues, so one malformed value
// never aborts the record. now anchors relative "last sale" dates.
func ExtractRecord(raw *RawFieldMap, url string, now time.Time) *AlbumRecord {
	rec := &AlbumRecord{AlbumStub: AlbumStub{URL: url}}
	if raw == nil {
		return rec
	}

	capture(func() { rec.Label = NormalizeList(joinRaw(raw.Get(FieldLabel)), LabelOptions) })
	capture(func() { rec.Format = NormalizeList(joinRaw(raw.Get(FieldFormat)), FormatOptions) })
	capture(func() { rec.Country = NormalizeList(joinRaw(raw.Get(FieldCountry)), CountryOptions) })
	capture(func() { rec.Genres = NormalizeList(joinRaw(raw.Get(FieldGenre)), GenreOptions) })
	capture(func() { rec.ReleaseDate = ParseDate(Sanitize(raw.First(FieldReleased))) })
	capture(func() { rec.Year = deriveYear(rec.ReleaseDate, raw.First(FieldYear)) })

	for _, stat := range raw.Stats {
		label := strings.ToLower(Sanitize(stat.Label))
		if label == "" {
			continue
		}
		route, ok := matchRoute(label)
		if !ok {
			continue
		}
		value := stat.Value
		capture(func() { route.assign(rec, value, now) })
	}

	return rec
}

// matchRoute returns the first route with a keyword contained in the
// lowercased stat label. Unmatched labels are ignored by the caller.
func matchRoute(label string) (statRoute, bool) {
	for _, route := range statRoutes {
		for _, kw := range route.keywords {
			if strings.Contains(label, kw) {
				return route, true
			}
		}
	}
	return statRoute{}, false
}

// deriveYear returns the release year. When the release date resolved to
// the canonical form the year comes from it, keeping the two consistent;
// otherwise the first 4-digit run of the raw year value is used.
func deriveYear(releaseDate, rawYear string) string {
	if canonicalRE.MatchString(releaseDate) {
		return releaseDate[len(releaseDate)-4:]
	}
	return yearRE.FindString(Sanitize(rawYear))
}

// joinRaw joins multi-valued raw fields into the comma-joined form the
// list normalizer consumes.
func joinRaw(values []string) string {
	return strings.Join(values, ", ")
}

// capture runs fn and swallows any panic, implementing the per-field
// partial-result policy: a fault in one field's extraction leaves that
// field at its default value and the rest of the record intact.
func capture(fn func()) {
	defer func() {
		_ = recover()
	}()
	fn()
}
