package http

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/beevik/etree"
	"github.com/fwojciec/discodex"
)

// Ensure SitemapService implements discodex.SitemapService.
var _ discodex.SitemapService = (*SitemapService)(nil)

// SitemapService discovers release URLs from a site's sitemaps via HTTP.
// It is the alternative to catalog pagination: release pages found here
// can feed the enrichment stage directly.
type SitemapService struct {
	client *http.Client
}

// NewSitemapService creates a new SitemapService with the given HTTP
// client. If client is nil, http.DefaultClient is used.
func NewSitemapService(client *http.Client) *SitemapService {
	if client == nil {
		client = http.DefaultClient
	}
	return &SitemapService{client: client}
}

// DiscoverURLs finds all URLs from the site's sitemap. robots.txt
// Sitemap directives are tried first, then /sitemap.xml; sitemap
// indexes are resolved recursively and URLs are deduplicated. The
// filter, if non-nil, selects which URLs are kept (e.g. only /release/
// paths). Returns an empty slice, not nil, when no sitemaps exist.
func (s *SitemapService) DiscoverURLs(ctx context.Context, baseURL string, filter *discodex.URLFilter) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, discodex.Errorf(discodex.EINVALID, "invalid base URL: %v", err)
	}
	base.Path = ""

	sitemaps, err := s.findSitemaps(ctx, base)
	if err != nil {
		return nil, err
	}

	urls := []string{}
	seenSitemaps := make(map[string]bool)
	seenURLs := make(map[string]bool)
	for _, sm := range sitemaps {
		found, err := s.walkSitemap(ctx, sm, seenSitemaps)
		if err != nil {
			return nil, err
		}
		for _, u := range found {
			if seenURLs[u] || !filter.Match(u) {
				continue
			}
			seenURLs[u] = true
			urls = append(urls, u)
		}
	}

	return urls, nil
}

// findSitemaps returns the site's sitemap URLs: robots.txt directives
// when present, otherwise /sitemap.xml if it exists.
func (s *SitemapService) findSitemaps(ctx context.Context, base *url.URL) ([]string, error) {
	robots := base.ResolveReference(&url.URL{Path: "/robots.txt"})
	if sitemaps, err := s.sitemapsFromRobots(ctx, robots.String()); err == nil && len(sitemaps) > 0 {
		return sitemaps, nil
	} else if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	fallback := base.ResolveReference(&url.URL{Path: "/sitemap.xml"}).String()
	ok, err := s.exists(ctx, fallback)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, nil
	}
	if ok {
		return []string{fallback}, nil
	}
	return nil, nil
}

// sitemapsFromRobots extracts Sitemap: directives from robots.txt.
func (s *SitemapService) sitemapsFromRobots(ctx context.Context, robotsURL string) ([]string, error) {
	body, err := s.get(ctx, robotsURL)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	var sitemaps []string
	scanner := bufio.NewScanner(body)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		const directive = "sitemap:"
		if len(line) > len(directive) && strings.EqualFold(line[:len(directive)], directive) {
			if target := strings.TrimSpace(line[len(directive):]); target != "" {
				sitemaps = append(sitemaps, target)
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading robots.txt: %w", err)
	}

	return sitemaps, nil
}

// walkSitemap fetches and parses one sitemap document, recursing into
// sitemap indexes. Each sitemap is visited at most once.
func (s *SitemapService) walkSitemap(ctx context.Context, sitemapURL string, seen map[string]bool) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if seen[sitemapURL] {
		return nil, nil
	}
	seen[sitemapURL] = true

	body, err := s.get(ctx, sitemapURL)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	doc := etree.NewDocument()
	if _, err := doc.ReadFrom(body); err != nil {
		return nil, fmt.Errorf("parsing sitemap XML: %w", err)
	}
	root := doc.Root()
	if root == nil {
		return nil, fmt.Errorf("empty sitemap XML at %s", sitemapURL)
	}

	if root.Tag == "sitemapindex" {
		var urls []string
		for _, child := range locTexts(root, "sitemap") {
			found, err := s.walkSitemap(ctx, child, seen)
			if err != nil {
				return nil, err
			}
			urls = append(urls, found...)
		}
		return urls, nil
	}

	return locTexts(root, "url"), nil
}

// locTexts collects the <loc> values of the named child elements.
func locTexts(root *etree.Element, tag string) []string {
	var texts []string
	for _, el := range root.SelectElements(tag) {
		loc := el.SelectElement("loc")
		if loc == nil {
			continue
		}
		if text := strings.TrimSpace(loc.Text()); text != "" {
			texts = append(texts, text)
		}
	}
	return texts
}

func (s *SitemapService) get(ctx context.Context, target string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	decorate(req, browserUserAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("HTTP %d for %s", resp.StatusCode, target)
	}
	return resp.Body, nil
}

func (s *SitemapService) exists(ctx context.Context, target string) (bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, target, nil)
	if err != nil {
		return false, fmt.Errorf("creating request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return false, err
	}
	resp.Body.Close()

	return resp.StatusCode == http.StatusOK, nil
}
