package crawl

import "fmt"

// searchURLFormat is the paginated catalog listing, sorted by collection
// count so the most-owned releases come first. The French site is used
// deliberately: the statistics labels the extractor understands are the
// French ones (with English fallbacks).
const searchURLFormat = "https://www.discogs.com/fr/search/?sort=have%%2Cdesc&type=release&page=%d"

// CatalogHost is the host all catalog and release requests go to, used
// as the rate limiter key.
const CatalogHost = "www.discogs.com"

// SearchPageURL returns the catalog listing URL for a 1-based page number.
func SearchPageURL(page int) string {
	return fmt.Sprintf(searchURLFormat, page)
}
