package main

import (
	"fmt"

	"github.com/fwojciec/discodex"
	"github.com/fwojciec/discodex/crawl"
	"github.com/fwojciec/discodex/fs"
)

// Run executes the catalog command.
func (c *CatalogCmd) Run(deps *Dependencies) error {
	progress := func(event crawl.ProgressEvent) {
		switch event.Type {
		case crawl.ProgressStarted:
			fmt.Fprintf(deps.Stdout, "Walking %d catalog pages\n", event.Total)
		case crawl.ProgressCompleted:
			fmt.Fprintf(deps.Stdout, "  page %d/%d\n", event.Completed, event.Total)
		case crawl.ProgressFailed:
			fmt.Fprintf(deps.Stderr, "  skip page %d/%d: %v\n", event.Completed, event.Total, event.Error)
		}
	}

	result, err := deps.Scraper.ScrapeCatalog(deps.Ctx, c.First, c.Last, progress)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", discodex.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Stored %d new albums (%d found, %d pages, %d failed)\n",
		result.New, result.Found, result.Pages, result.Failed)

	// Export everything stored so far, not just this run's pages.
	records, err := deps.Albums.FindAlbums(deps.Ctx, discodex.AlbumFilter{})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", discodex.ErrorMessage(err))
		return err
	}

	stubs := make([]*discodex.AlbumStub, 0, len(records))
	for _, rec := range records {
		stubs = append(stubs, &rec.AlbumStub)
	}

	writer := fs.NewWriter(c.Out)
	if err := writer.WriteStubs(deps.Ctx, stubs); err != nil {
		fmt.Fprintf(deps.Stderr, "error writing CSV: %v\n", err)
		return err
	}
	if err := writer.WriteURLList(deps.Ctx, stubs); err != nil {
		fmt.Fprintf(deps.Stderr, "error writing URL list: %v\n", err)
		return err
	}

	fmt.Fprintf(deps.Stdout, "Wrote %d albums to %s\n", len(stubs), c.Out)
	return nil
}
