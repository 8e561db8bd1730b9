package main

import (
	"context"
	"io"

	"github.com/fwojciec/discodex"
	"github.com/fwojciec/discodex/crawl"
	"github.com/fwojciec/discodex/sqlite"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx      context.Context
	Stdout   io.Writer
	Stderr   io.Writer
	DB       *sqlite.DB
	Albums   discodex.AlbumService
	Sitemaps discodex.SitemapService
	Scraper  *crawl.Scraper
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Catalog CatalogCmd `cmd:"" help:"Walk catalog pages and store album stubs"`
	Enrich  EnrichCmd  `cmd:"" help:"Visit release pages and extract album fields"`
	Export  ExportCmd  `cmd:"" help:"Write stored albums to CSV"`
	List    ListCmd    `cmd:"" help:"List stored albums"`
	URLs    URLsCmd    `cmd:"" name:"urls" help:"Discover release URLs from the site's sitemap"`
}

// CatalogCmd is the "catalog" subcommand.
type CatalogCmd struct {
	First int    `arg:"" help:"First catalog page (1-based)"`
	Last  int    `arg:"" help:"Last catalog page (inclusive)"`
	Out   string `short:"o" default:"exports" help:"Export directory"`
}

// EnrichCmd is the "enrich" subcommand.
type EnrichCmd struct {
	Limit       int    `short:"l" help:"Maximum albums to enrich (0 = all pending)"`
	Concurrency int    `short:"c" default:"1" help:"Concurrent fetch limit"`
	BackupEvery int    `default:"50" help:"Write a backup CSV after every N albums"`
	Out         string `short:"o" default:"exports" help:"Export directory"`
}

// ExportCmd is the "export" subcommand.
type ExportCmd struct {
	All bool   `help:"Include albums that have not been enriched yet"`
	Out string `short:"o" default:"exports" help:"Export directory"`
}

// ListCmd is the "list" subcommand.
type ListCmd struct {
	Pending bool `help:"Show only albums not yet enriched"`
}

// URLsCmd is the "urls" subcommand.
type URLsCmd struct {
	Base   string   `arg:"" optional:"" default:"https://www.discogs.com" help:"Site base URL"`
	Filter []string `short:"F" name:"filter" help:"Filter URLs by regex (repeatable)"`
}
