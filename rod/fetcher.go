// Package rod provides a browser-based implementation of discodex.Fetcher.
// Discogs serves its catalog through a JavaScript-rendered frontend behind
// bot detection, so pages are fetched through a real headless Chrome with a
// realistic user agent and request headers.
package rod

import (
	"context"
	"time"

	"github.com/fwojciec/discodex"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"
)

// DefaultUserAgent mimics a desktop Chrome on macOS. Headless Chrome's
// default UA advertises itself as headless, which trips bot detection.
const DefaultUserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// DefaultAcceptLanguage requests the French site, where the catalog and
// statistics labels this scraper understands are rendered.
const DefaultAcceptLanguage = "fr-FR,fr;q=0.9,en-US;q=0.8,en;q=0.7"

// DefaultSettleDelay is how long to wait after load before reading the
// HTML, giving async content time to render.
const DefaultSettleDelay = 5 * time.Second

// extraHeaders are sent with every request to look like a regular
// browser session.
var extraHeaders = []string{
	"Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8",
	"DNT", "1",
	"Upgrade-Insecure-Requests", "1",
}

// Ensure Fetcher implements discodex.Fetcher at compile time.
var _ discodex.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves rendered HTML from URLs using Chrome browser
// automation. Fetcher is safe for concurrent use by multiple goroutines.
type Fetcher struct {
	manager      *BrowserManager
	userAgent    string
	waitSelector string
	settleDelay  time.Duration
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithUserAgent overrides the user agent string.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		f.userAgent = ua
	}
}

// WithWaitSelector makes Fetch block until an element matching the CSS
// selector is present, so pages that render results asynchronously are
// read only once the results exist.
func WithWaitSelector(selector string) Option {
	return func(f *Fetcher) {
		f.waitSelector = selector
	}
}

// WithSettleDelay sets the post-load delay before the HTML is read.
// Defaults to DefaultSettleDelay.
func WithSettleDelay(d time.Duration) Option {
	return func(f *Fetcher) {
		f.settleDelay = d
	}
}

// NewFetcher creates a new Fetcher that launches a headless Chrome
// browser. Close must be called when the Fetcher is no longer needed.
//
// Returns an error if Chrome/Chromium cannot be found or launched.
func NewFetcher(opts ...Option) (*Fetcher, error) {
	f := &Fetcher{
		userAgent:   DefaultUserAgent,
		settleDelay: DefaultSettleDelay,
	}
	for _, opt := range opts {
		opt(f)
	}

	manager, err := NewBrowserManager()
	if err != nil {
		return nil, err
	}
	f.manager = manager

	return f, nil
}

// Fetch navigates to the URL and returns the rendered HTML.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	page, err := f.manager.Browser().Page(proto.TargetCreateTarget{})
	if err != nil {
		return "", err
	}
	defer page.Close()

	page = page.Context(ctx)

	if err := f.disguise(page); err != nil {
		return "", err
	}

	if err := page.Navigate(url); err != nil {
		return "", err
	}
	if err := page.WaitLoad(); err != nil {
		return "", err
	}

	if f.waitSelector != "" {
		if _, err := page.Element(f.waitSelector); err != nil {
			return "", err
		}
	}

	if f.settleDelay > 0 {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(f.settleDelay):
		}
	}

	html, err := page.HTML()
	if err != nil {
		return "", err
	}

	f.manager.IncrementPageCount()
	return html, nil
}

// disguise applies the user agent and header overrides before navigation.
func (f *Fetcher) disguise(page *rod.Page) error {
	err := page.SetUserAgent(&proto.NetworkSetUserAgentOverride{
		UserAgent:      f.userAgent,
		AcceptLanguage: DefaultAcceptLanguage,
	})
	if err != nil {
		return err
	}
	_, err = page.SetExtraHeaders(extraHeaders)
	return err
}

// Close releases browser resources.
func (f *Fetcher) Close() error {
	return f.manager.Close()
}
