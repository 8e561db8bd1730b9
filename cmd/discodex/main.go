package main

import (
	"context"
	"fmt"
	"io"
	stdslog "log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/discodex"
	"github.com/fwojciec/discodex/bloom"
	"github.com/fwojciec/discodex/crawl"
	"github.com/fwojciec/discodex/goquery"
	dischttp "github.com/fwojciec/discodex/http"
	"github.com/fwojciec/discodex/rod"
	discslog "github.com/fwojciec/discodex/slog"
	"github.com/fwojciec/discodex/sqlite"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path. Set before calling Run().
	DBPath string

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB

	// Services for end-to-end testing.
	AlbumService discodex.AlbumService
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: defaultDBPath(),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	// Initialize dependencies struct for Kong binding
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	// Create Kong parser with dependency binding
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("discodex"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	// Handle help flags using Kong
	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'discodex --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	// Parse arguments first to know which command and its flags
	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	// Open database
	m.DB = sqlite.NewDB(m.DBPath)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set DISCODEX_DB to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
	}
	defer m.Close()

	// Wire core services into dependencies
	m.AlbumService = sqlite.NewAlbumService(m.DB)
	deps.DB = m.DB
	deps.Albums = m.AlbumService
	deps.Sitemaps = dischttp.NewSitemapService(nil)

	// The scraping commands need a browser; the rest stay lightweight.
	if cmd == "catalog" || cmd == "enrich" {
		fetcher, err := rod.NewFetcher()
		if err != nil {
			fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed")
			return fmt.Errorf("failed to start browser: %w", err)
		}
		defer fetcher.Close()

		logger := stdslog.New(stdslog.NewTextHandler(stderr, nil))

		deps.Scraper = &crawl.Scraper{
			Fetcher: discslog.NewLoggingFetcher(fetcher, logger),
			Catalog: goquery.NewCatalogParser(),
			Albums:  goquery.NewAlbumParser(),
			Store:   m.AlbumService,
			Limiter: crawl.NewHostLimiter(requestsPerSecond, requestJitter),
			Seen:    bloom.NewFilter(expectedReleases, 0.01),
			Logf: func(format string, args ...any) {
				fmt.Fprintf(stderr, format+"\n", args...)
			},
		}
	}

	return kongCtx.Run(deps)
}

// requestsPerSecond and requestJitter set the polite request cadence:
// roughly one request every three seconds, plus up to two seconds of
// random delay so the spacing is never uniform.
const (
	requestsPerSecond = 1.0 / 3.0
	requestJitter     = 2 * time.Second
)

// expectedReleases sizes the seen-URL filter for a full catalog walk.
const expectedReleases = 200_000

func defaultDBPath() string {
	if path := os.Getenv("DISCODEX_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "discodex.db"
	}
	dir := filepath.Join(home, ".discodex")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "discodex.db")
}
