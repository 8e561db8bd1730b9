// Package crawl provides scraping orchestration: walking the paginated
// catalog listing to collect album stubs, and enriching stored albums
// by visiting their release pages. It coordinates fetching, parsing,
// rate limiting, retries, and storage; all text normalization lives in
// the discodex package.
package crawl

import (
	"context"
	"net/url"
	"sync/atomic"
	"time"

	"github.com/fwojciec/discodex"
	"github.com/fwojciec/discodex/bloom"
	"golang.org/x/sync/errgroup"
)

// Scraper orchestrates the two scraping stages against the catalog site.
type Scraper struct {
	Fetcher discodex.Fetcher
	Catalog discodex.CatalogParser
	Albums  discodex.AlbumParser
	Store   discodex.AlbumService
	Limiter discodex.Limiter

	// Seen, if set, drops release URLs already collected on earlier
	// pages. The listing is sorted by a live metric, so cards drift
	// between pages while walking.
	Seen *bloom.Filter

	// Concurrency bounds the enrichment fan-out. Defaults to 1: the
	// polite cadence matters more than throughput here.
	Concurrency int

	// RetryDelays overrides DefaultRetryDelays (useful in tests).
	RetryDelays []time.Duration

	// Logf, if set, receives retry diagnostics.
	Logf LogFunc

	// Now anchors relative "last sale" dates. Defaults to time.Now.
	Now discodex.Clock
}

// CatalogResult holds the outcome of a catalog walk.
type CatalogResult struct {
	Pages  int // pages successfully parsed
	Failed int // pages that failed after retries
	Found  int // stubs located, including duplicates
	New    int // stubs actually stored
}

// EnrichResult holds the outcome of an enrichment run.
type EnrichResult struct {
	Enriched int
	Failed   int
}

// ProgressType indicates the type of progress event.
type ProgressType int

// Progress event types.
const (
	ProgressStarted ProgressType = iota
	ProgressCompleted
	ProgressFailed
	ProgressFinished
)

// ProgressEvent reports progress during a scraping stage.
type ProgressEvent struct {
	Type      ProgressType
	Completed int
	Total     int
	URL       string
	Error     error
}

// ProgressFunc is a callback for reporting progress.
type ProgressFunc func(event ProgressEvent)

// ScrapeCatalog walks catalog pages first through last (1-based,
// inclusive) and stores one stub per newly seen release. A page that
// fails after retries is counted and skipped, not fatal; only context
// cancellation or a storage fault aborts the walk.
func (s *Scraper) ScrapeCatalog(ctx context.Context, first, last int, progress ProgressFunc) (*CatalogResult, error) {
	if first < 1 || last < first {
		return nil, discodex.Errorf(discodex.EINVALID, "invalid page range %d..%d", first, last)
	}

	total := last - first + 1
	emit(progress, ProgressEvent{Type: ProgressStarted, Total: total})

	res := &CatalogResult{}
	for page := first; page <= last; page++ {
		pageURL := SearchPageURL(page)

		stubs, err := s.fetchAndParseCatalog(ctx, pageURL)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			res.Failed++
			emit(progress, ProgressEvent{Type: ProgressFailed, Completed: page - first + 1, Total: total, URL: pageURL, Error: err})
			continue
		}

		for _, stub := range stubs {
			res.Found++
			if s.Seen != nil && !s.Seen.AddIfNew(stub.URL) {
				continue
			}
			if err := s.Store.CreateAlbum(ctx, stub); err != nil {
				if discodex.ErrorCode(err) == discodex.ECONFLICT {
					continue
				}
				return nil, err
			}
			res.New++
		}

		res.Pages++
		emit(progress, ProgressEvent{Type: ProgressCompleted, Completed: page - first + 1, Total: total, URL: pageURL})
	}

	emit(progress, ProgressEvent{Type: ProgressFinished, Completed: total, Total: total})
	return res, nil
}

func (s *Scraper) fetchAndParseCatalog(ctx context.Context, pageURL string) ([]*discodex.AlbumStub, error) {
	if err := s.wait(ctx, pageURL); err != nil {
		return nil, err
	}
	html, err := FetchWithRetry(ctx, pageURL, s.Fetcher.Fetch, s.Logf, s.retryDelays())
	if err != nil {
		return nil, err
	}
	return s.Catalog.ParseCatalog(html)
}

// Enrich visits each stub's release page, extracts the canonical
// record, and stores it. A failure on one album is counted and skipped;
// the rest still enrich. Only context cancellation aborts the run.
func (s *Scraper) Enrich(ctx context.Context, stubs []*discodex.AlbumStub, progress ProgressFunc) (*EnrichResult, error) {
	total := len(stubs)
	emit(progress, ProgressEvent{Type: ProgressStarted, Total: total})

	concurrency := s.Concurrency
	if concurrency <= 0 {
		concurrency = 1
	}

	var enriched, failed, completed atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for _, stub := range stubs {
		g.Go(func() error {
			err := s.enrichOne(gctx, stub)
			done := int(completed.Add(1))
			if err != nil {
				if gctx.Err() != nil {
					return gctx.Err()
				}
				failed.Add(1)
				emit(progress, ProgressEvent{Type: ProgressFailed, Completed: done, Total: total, URL: stub.URL, Error: err})
				return nil
			}
			enriched.Add(1)
			emit(progress, ProgressEvent{Type: ProgressCompleted, Completed: done, Total: total, URL: stub.URL})
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	emit(progress, ProgressEvent{Type: ProgressFinished, Completed: total, Total: total})
	return &EnrichResult{Enriched: int(enriched.Load()), Failed: int(failed.Load())}, nil
}

func (s *Scraper) enrichOne(ctx context.Context, stub *discodex.AlbumStub) error {
	if err := s.wait(ctx, stub.URL); err != nil {
		return err
	}

	html, err := FetchWithRetry(ctx, stub.URL, s.Fetcher.Fetch, s.Logf, s.retryDelays())
	if err != nil {
		return err
	}

	raw, err := s.Albums.ParseAlbum(html)
	if err != nil {
		return err
	}

	rec := discodex.ExtractRecord(raw, stub.URL, s.now())
	rec.Artist = stub.Artist
	rec.Album = stub.Album

	return s.Store.UpdateRecord(ctx, rec, ComputeHash(html))
}

// wait applies the per-host rate limit, if one is configured.
func (s *Scraper) wait(ctx context.Context, rawURL string) error {
	if s.Limiter == nil {
		return ctx.Err()
	}
	return s.Limiter.Wait(ctx, hostOf(rawURL))
}

func (s *Scraper) retryDelays() []time.Duration {
	if s.RetryDelays != nil {
		return s.RetryDelays
	}
	return DefaultRetryDelays()
}

func (s *Scraper) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func hostOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return CatalogHost
	}
	return u.Host
}

func emit(progress ProgressFunc, event ProgressEvent) {
	if progress != nil {
		progress(event)
	}
}
