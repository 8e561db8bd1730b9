package main

import (
	"fmt"
	"regexp"

	"github.com/fwojciec/discodex"
)

// Run executes the urls command.
func (c *URLsCmd) Run(deps *Dependencies) error {
	// Compile filters early so a bad pattern fails before any requests.
	var urlFilter *discodex.URLFilter
	if len(c.Filter) > 0 {
		urlFilter = &discodex.URLFilter{}
		for _, pattern := range c.Filter {
			re, err := regexp.Compile(pattern)
			if err != nil {
				fmt.Fprintf(deps.Stderr, "error: invalid filter pattern %q: %v\n", pattern, err)
				return err
			}
			urlFilter.Include = append(urlFilter.Include, re)
		}
	}

	urls, err := deps.Sitemaps.DiscoverURLs(deps.Ctx, c.Base, urlFilter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", discodex.ErrorMessage(err))
		return err
	}

	for _, u := range urls {
		fmt.Fprintln(deps.Stdout, u)
	}

	return nil
}
