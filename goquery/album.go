package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/discodex"
)

// Ensure AlbumParser implements discodex.AlbumParser at compile time.
var _ discodex.AlbumParser = (*AlbumParser)(nil)

// AlbumParser locates raw field values in a release page.
type AlbumParser struct{}

// NewAlbumParser creates a new AlbumParser.
func NewAlbumParser() *AlbumParser {
	return &AlbumParser{}
}

// ParseAlbum collects the raw text for every field of interest. Values
// are located by href shape (label links contain /label/, format links
// carry format_exact=, and so on) rather than by the page's generated
// class names, which change between deployments. Statistics entries are
// returned as (label, value) pairs in document order; the keyword
// routing happens in ExtractRecord.
func (p *AlbumParser) ParseAlbum(html string) (*discodex.RawFieldMap, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, discodex.Errorf(discodex.EINVALID, "failed to parse HTML: %v", err)
	}

	raw := &discodex.RawFieldMap{Fields: make(map[string][]string)}

	collect := func(field, selector string) {
		seen := make(map[string]bool)
		doc.Find(selector).Each(func(_ int, sel *goquery.Selection) {
			text := strings.TrimSpace(sel.Text())
			if text == "" || seen[text] {
				return
			}
			seen[text] = true
			raw.Fields[field] = append(raw.Fields[field], text)
		})
	}

	collect(discodex.FieldLabel, `a[href*="/label/"]`)
	collect(discodex.FieldFormat, `a[href*="format_exact="]`)

	if country := doc.Find(`a[href*="country="]`).First(); country.Length() > 0 {
		raw.Fields[discodex.FieldCountry] = []string{strings.TrimSpace(country.Text())}
	}

	if timeTag := doc.Find("time[datetime]").First(); timeTag.Length() > 0 {
		raw.Fields[discodex.FieldReleased] = []string{strings.TrimSpace(timeTag.Text())}
		if dt, ok := timeTag.Attr("datetime"); ok && dt != "" {
			raw.Fields[discodex.FieldYear] = []string{dt}
		}
	}

	collect(discodex.FieldGenre, `a[href*="/genre/"]`)

	doc.Find("section#release-stats li").Each(func(_ int, item *goquery.Selection) {
		name := item.Find(`span[class^="name_"]`).First()
		if name.Length() == 0 {
			return
		}
		label := strings.TrimSpace(name.Text())
		if label == "" {
			return
		}
		if value := statValue(item, name); value != "" {
			raw.Stats = append(raw.Stats, discodex.RawStat{Label: label, Value: value})
		}
	})

	return raw, nil
}

// statValue picks the raw value element of a statistics item. Counts are
// rendered as links, sale dates as time elements, ratings and prices as
// plain spans next to the name span.
func statValue(item, name *goquery.Selection) string {
	if link := item.Find(`a[class^="link_"]`).First(); link.Length() > 0 {
		return strings.TrimSpace(link.Text())
	}
	if timeTag := item.Find("time").First(); timeTag.Length() > 0 {
		return strings.TrimSpace(timeTag.Text())
	}

	var value string
	nameNode := name.Get(0)
	item.Find("span").EachWithBreak(func(_ int, span *goquery.Selection) bool {
		if span.Get(0) == nameNode {
			return true
		}
		text := strings.TrimSpace(span.Text())
		if text == "" {
			return true
		}
		// Ratings carry a slash, prices a currency symbol. Anything
		// else next to the name span is decoration.
		if strings.ContainsAny(text, "/€$£") {
			value = text
			return false
		}
		return true
	})
	return value
}
