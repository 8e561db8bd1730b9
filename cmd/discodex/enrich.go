package main

import (
	"fmt"
	"sync"

	"github.com/fwojciec/discodex"
	"github.com/fwojciec/discodex/crawl"
	"github.com/fwojciec/discodex/fs"
)

// Run executes the enrich command.
func (c *EnrichCmd) Run(deps *Dependencies) error {
	pending := false
	records, err := deps.Albums.FindAlbums(deps.Ctx, discodex.AlbumFilter{
		Enriched: &pending,
		Limit:    c.Limit,
	})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", discodex.ErrorMessage(err))
		return err
	}

	if len(records) == 0 {
		fmt.Fprintln(deps.Stdout, "Nothing to enrich. Run 'discodex catalog' first.")
		return nil
	}

	stubs := make([]*discodex.AlbumStub, 0, len(records))
	for _, rec := range records {
		stubs = append(stubs, &rec.AlbumStub)
	}

	writer := fs.NewWriter(c.Out)

	// Progress callbacks arrive from concurrent workers.
	var mu sync.Mutex
	var sinceBackup int
	progress := func(event crawl.ProgressEvent) {
		mu.Lock()
		defer mu.Unlock()
		switch event.Type {
		case crawl.ProgressStarted:
			fmt.Fprintf(deps.Stdout, "Enriching %d albums\n", event.Total)
		case crawl.ProgressCompleted:
			fmt.Fprintf(deps.Stdout, "  %d/%d %s\n", event.Completed, event.Total, crawl.TruncateURL(event.URL, 60))
			sinceBackup++
			if c.BackupEvery > 0 && sinceBackup >= c.BackupEvery {
				sinceBackup = 0
				if err := c.backup(deps, writer); err != nil {
					fmt.Fprintf(deps.Stderr, "  backup failed: %v\n", err)
				}
			}
		case crawl.ProgressFailed:
			fmt.Fprintf(deps.Stderr, "  skip %s: %v\n", crawl.TruncateURL(event.URL, 60), event.Error)
		}
	}

	if c.Concurrency > 0 {
		deps.Scraper.Concurrency = c.Concurrency
	}

	result, err := deps.Scraper.Enrich(deps.Ctx, stubs, progress)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", discodex.ErrorMessage(err))
		return err
	}

	if err := c.backup(deps, writer); err != nil {
		fmt.Fprintf(deps.Stderr, "error writing CSV: %v\n", err)
		return err
	}

	fmt.Fprintf(deps.Stdout, "Enriched %d albums (%d failed)\n", result.Enriched, result.Failed)
	return nil
}

// backup exports all enriched albums stored so far.
func (c *EnrichCmd) backup(deps *Dependencies, writer *fs.Writer) error {
	enriched := true
	records, err := deps.Albums.FindAlbums(deps.Ctx, discodex.AlbumFilter{Enriched: &enriched})
	if err != nil {
		return err
	}
	return writer.WriteRecords(deps.Ctx, records)
}
