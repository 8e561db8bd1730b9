package main_test

import (
	"bytes"
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fwojciec/discodex"
	main "github.com/fwojciec/discodex/cmd/discodex"
	"github.com/fwojciec/discodex/crawl"
	"github.com/fwojciec/discodex/fs"
	"github.com/fwojciec/discodex/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("walks pages, stores stubs, and writes the CSV", func(t *testing.T) {
		t.Parallel()

		stub := &discodex.AlbumStub{
			Artist: "Pink Floyd",
			Album:  "The Dark Side Of The Moon",
			URL:    "https://www.discogs.com/fr/release/1873013",
		}

		var created []*discodex.AlbumStub
		albums := &mock.AlbumService{
			CreateAlbumFn: func(_ context.Context, s *discodex.AlbumStub) error {
				created = append(created, s)
				return nil
			},
			FindAlbumsFn: func(_ context.Context, _ discodex.AlbumFilter) ([]*discodex.AlbumRecord, error) {
				return []*discodex.AlbumRecord{{AlbumStub: *stub}}, nil
			},
		}

		scraper := &crawl.Scraper{
			Fetcher: &mock.Fetcher{
				FetchFn: func(_ context.Context, _ string) (string, error) { return "page", nil },
			},
			Catalog: &mock.CatalogParser{
				ParseCatalogFn: func(_ string) ([]*discodex.AlbumStub, error) {
					return []*discodex.AlbumStub{stub}, nil
				},
			},
			Store:       albums,
			RetryDelays: []time.Duration{},
		}

		dir := t.TempDir()
		stdout := &bytes.Buffer{}

		deps := &main.Dependencies{
			Ctx:     context.Background(),
			Stdout:  stdout,
			Stderr:  &bytes.Buffer{},
			Albums:  albums,
			Scraper: scraper,
		}

		cmd := &main.CatalogCmd{First: 1, Last: 1, Out: dir}

		require.NoError(t, cmd.Run(deps))

		assert.Len(t, created, 1)
		assert.Contains(t, stdout.String(), "Stored 1 new albums")

		f, err := os.Open(filepath.Join(dir, fs.StubsFileName))
		require.NoError(t, err)
		defer f.Close()

		rows, err := csv.NewReader(f).ReadAll()
		require.NoError(t, err)
		require.Len(t, rows, 2)
		assert.Equal(t, []string{"artiste", "album", "url"}, rows[0])

		urls, err := os.ReadFile(filepath.Join(dir, fs.URLsFileName))
		require.NoError(t, err)
		assert.Contains(t, string(urls), stub.URL)
	})

	t.Run("rejects an invalid page range", func(t *testing.T) {
		t.Parallel()

		deps := &main.Dependencies{
			Ctx:     context.Background(),
			Stdout:  &bytes.Buffer{},
			Stderr:  &bytes.Buffer{},
			Scraper: &crawl.Scraper{},
		}

		cmd := &main.CatalogCmd{First: 5, Last: 1, Out: t.TempDir()}

		err := cmd.Run(deps)
		require.Error(t, err)
		assert.Equal(t, discodex.EINVALID, discodex.ErrorCode(err))
	})
}
