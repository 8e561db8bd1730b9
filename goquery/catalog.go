// Package goquery implements the DOM query layer: it locates raw field
// values in catalog and release pages using CSS selectors. All text
// normalization happens downstream in the discodex package.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/discodex"
)

// baseURL prefixes the relative hrefs found on catalog cards.
const baseURL = "https://www.discogs.com"

// Ensure CatalogParser implements discodex.CatalogParser at compile time.
var _ discodex.CatalogParser = (*CatalogParser)(nil)

// CatalogParser extracts album stubs from a catalog search results page.
type CatalogParser struct{}

// NewCatalogParser creates a new CatalogParser.
func NewCatalogParser() *CatalogParser {
	return &CatalogParser{}
}

// ParseCatalog walks the result cards of a search page and returns one
// stub per card. Cards without a release link are skipped. Artist and
// title are cleaned here since stubs go straight to storage; every other
// field stays raw until ExtractRecord.
func (p *CatalogParser) ParseCatalog(html string) ([]*discodex.AlbumStub, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, discodex.Errorf(discodex.EINVALID, "failed to parse HTML: %v", err)
	}

	var stubs []*discodex.AlbumStub
	doc.Find("div.card-release-title").Each(func(_ int, card *goquery.Selection) {
		link := card.Find("a.search_result_title").First()
		if link.Length() == 0 {
			return
		}

		href, ok := link.Attr("href")
		if !ok || href == "" {
			return
		}

		stubs = append(stubs, &discodex.AlbumStub{
			Artist: discodex.CleanArtist(artistText(card)),
			Album:  discodex.CleanTitle(attrOrText(link, "title")),
			URL:    resolveHref(href),
		})
	})

	return stubs, nil
}

// artistText locates the artist name in the card's sibling element.
// The artist is usually a link; some cards carry a bare span instead.
func artistText(card *goquery.Selection) string {
	artistDiv := card.NextFiltered("div.card-artist-name")
	if artistDiv.Length() == 0 {
		return ""
	}
	if link := artistDiv.Find("a").First(); link.Length() > 0 {
		return attrOrText(link, "title")
	}
	if span := artistDiv.Find("span").First(); span.Length() > 0 {
		return attrOrText(span, "title")
	}
	return strings.TrimSpace(artistDiv.Text())
}

// attrOrText prefers the named attribute over the element text. The
// title attribute carries the untruncated value on catalog cards.
func attrOrText(sel *goquery.Selection, attr string) string {
	if v, ok := sel.Attr(attr); ok && strings.TrimSpace(v) != "" {
		return v
	}
	return strings.TrimSpace(sel.Text())
}

func resolveHref(href string) string {
	if strings.HasPrefix(href, "http://") || strings.HasPrefix(href, "https://") {
		return href
	}
	return baseURL + href
}
