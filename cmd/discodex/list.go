package main

import (
	"fmt"

	"github.com/fwojciec/discodex"
)

// Run executes the list command.
func (c *ListCmd) Run(deps *Dependencies) error {
	filter := discodex.AlbumFilter{}
	if c.Pending {
		enriched := false
		filter.Enriched = &enriched
	}

	records, err := deps.Albums.FindAlbums(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", discodex.ErrorMessage(err))
		return err
	}

	if len(records) == 0 {
		fmt.Fprintln(deps.Stdout, "No albums stored. Use 'discodex catalog' to collect some.")
		return nil
	}

	for _, rec := range records {
		state := " "
		if rec.Enriched {
			state = "*"
		}
		fmt.Fprintf(deps.Stdout, "%s %s - %s  %s\n", state, rec.Artist, rec.Album, rec.URL)
	}

	return nil
}
