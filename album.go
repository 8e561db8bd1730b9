package discodex

import (
	"context"
	"time"
)

// AlbumStub represents a single catalog search result: the minimal
// identity of a release before its page has been visited.
type AlbumStub struct {
	Artist string `json:"artist"`
	Album  string `json:"album"`
	URL    string `json:"url"`
}

// Validate returns an error if the stub contains invalid fields.
func (s *AlbumStub) Validate() error {
	if s.URL == "" {
		return Errorf(EINVALID, "album URL required")
	}
	return nil
}

// AlbumRecord is a fully extracted release. It embeds the identifying
// stub plus the canonical fields extracted from the release page. Every
// field is a normalized string; absent values are empty strings, never
// an error.
type AlbumRecord struct {
	AlbumStub

	Label        string `json:"label"`
	Format       string `json:"format"`
	Country      string `json:"country"`
	ReleaseDate  string `json:"releaseDate"`
	Year         string `json:"year"`
	Genres       string `json:"genres"`
	InCollection string `json:"inCollection"`
	InWantlist   string `json:"inWantlist"`
	AvgRating    string `json:"avgRating"`
	RatingCount  string `json:"ratingCount"`
	LastSale     string `json:"lastSale"`
	PriceLow     string `json:"priceLow"`
	PriceMid     string `json:"priceMid"`
	PriceHigh    string `json:"priceHigh"`

	// Enriched reports whether the release page has been visited and the
	// fields above extracted. Set by the store, not by extraction.
	Enriched bool `json:"enriched"`
}

// Validate returns an error if the record contains invalid fields.
func (r *AlbumRecord) Validate() error {
	return r.AlbumStub.Validate()
}

// Raw field map keys as produced by the page parser.
const (
	FieldLabel    = "label"
	FieldFormat   = "format"
	FieldCountry  = "country"
	FieldReleased = "released"
	FieldYear     = "year"
	FieldGenre    = "genre"
)

// RawStat is a single statistics entry from a release page: a free-text
// item label (e.g. "En Wantlist:") paired with its raw value. The label
// is matched by keyword to decide which record field the value feeds.
type RawStat struct {
	Label string
	Value string
}

// RawFieldMap holds the raw, entity-encoded text located in a release
// page by the DOM query layer, keyed by field name. It is ephemeral:
// produced per page and consumed immediately by ExtractRecord.
type RawFieldMap struct {
	Fields map[string][]string
	Stats  []RawStat
}

// Get returns the raw values for a field, or nil if absent.
func (m *RawFieldMap) Get(field string) []string {
	if m == nil || m.Fields == nil {
		return nil
	}
	return m.Fields[field]
}

// First returns the first raw value for a field, or "" if absent.
func (m *RawFieldMap) First(field string) string {
	vals := m.Get(field)
	if len(vals) == 0 {
		return ""
	}
	return vals[0]
}

// AlbumService represents a service for storing and retrieving albums.
type AlbumService interface {
	// CreateAlbum stores a new album stub. Stubs are keyed by URL;
	// returns ECONFLICT if the URL is already stored.
	CreateAlbum(ctx context.Context, stub *AlbumStub) error

	// FindAlbumByURL retrieves an album by its release page URL.
	// Returns ENOTFOUND if the album does not exist.
	FindAlbumByURL(ctx context.Context, url string) (*AlbumRecord, error)

	// FindAlbums retrieves albums matching the filter, in insertion order.
	FindAlbums(ctx context.Context, filter AlbumFilter) ([]*AlbumRecord, error)

	// UpdateRecord stores the enriched fields for an album identified by
	// its URL, along with a hash of the page the fields came from.
	// Returns ENOTFOUND if the album does not exist.
	UpdateRecord(ctx context.Context, record *AlbumRecord, pageHash string) error
}

// AlbumFilter represents a filter for FindAlbums.
type AlbumFilter struct {
	URL      *string `json:"url"`
	Artist   *string `json:"artist"`
	Enriched *bool   `json:"enriched"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// Fetcher retrieves rendered HTML from URLs.
// Implementations may use browser automation to handle JavaScript-rendered
// content and bot detection.
type Fetcher interface {
	// Fetch navigates to the URL, waits for the page to render, and
	// returns the HTML. The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (html string, err error)

	// Close releases any underlying resources.
	// Must be called when the Fetcher is no longer needed.
	Close() error
}

// Limiter paces outgoing requests per host, keeping the scraper polite
// and under the radar of rate-based bot detection.
type Limiter interface {
	// Wait blocks until the next request to the host is allowed, or the
	// context is canceled.
	Wait(ctx context.Context, host string) error
}

// CatalogParser locates album stubs in a catalog search results page.
type CatalogParser interface {
	// ParseCatalog extracts one stub per result card. Cards missing a
	// release link are skipped, not errors.
	ParseCatalog(html string) ([]*AlbumStub, error)
}

// AlbumParser locates raw field values in a release page. It performs
// DOM traversal only; all text normalization happens downstream in
// ExtractRecord.
type AlbumParser interface {
	ParseAlbum(html string) (*RawFieldMap, error)
}

// RecordWriter persists album records, e.g. as CSV.
type RecordWriter interface {
	// WriteStubs writes catalog-stage rows (artiste, album, url).
	WriteStubs(ctx context.Context, stubs []*AlbumStub) error

	// WriteRecords writes fully enriched rows.
	WriteRecords(ctx context.Context, records []*AlbumRecord) error
}

// Clock supplies the current time. The relative-date resolver takes time
// as a parameter so extraction stays deterministic; Clock is how the
// shell injects it.
type Clock func() time.Time
