package main

import (
	"fmt"
	"path/filepath"

	"github.com/fwojciec/discodex"
	"github.com/fwojciec/discodex/fs"
)

// Run executes the export command.
func (c *ExportCmd) Run(deps *Dependencies) error {
	filter := discodex.AlbumFilter{}
	if !c.All {
		enriched := true
		filter.Enriched = &enriched
	}

	records, err := deps.Albums.FindAlbums(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", discodex.ErrorMessage(err))
		return err
	}

	writer := fs.NewWriter(c.Out)
	if err := writer.WriteRecords(deps.Ctx, records); err != nil {
		fmt.Fprintf(deps.Stderr, "error writing CSV: %v\n", err)
		return err
	}

	fmt.Fprintf(deps.Stdout, "Wrote %d albums to %s\n", len(records), filepath.Join(c.Out, fs.RecordsFileName))
	return nil
}
