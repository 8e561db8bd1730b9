package main_test

import (
	"bytes"
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/fwojciec/discodex"
	main "github.com/fwojciec/discodex/cmd/discodex"
	"github.com/fwojciec/discodex/fs"
	"github.com/fwojciec/discodex/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExportCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("writes enriched albums to CSV", func(t *testing.T) {
		t.Parallel()

		albums := &mock.AlbumService{
			FindAlbumsFn: func(_ context.Context, filter discodex.AlbumFilter) ([]*discodex.AlbumRecord, error) {
				require.NotNil(t, filter.Enriched)
				assert.True(t, *filter.Enriched)
				return []*discodex.AlbumRecord{
					{
						AlbumStub: discodex.AlbumStub{
							Artist: "Pink Floyd",
							Album:  "The Dark Side Of The Moon",
							URL:    "https://www.discogs.com/fr/release/1873013",
						},
						Label:    "Harvest",
						Year:     "1973",
						Enriched: true,
					},
				}, nil
			},
		}

		dir := t.TempDir()
		stdout := &bytes.Buffer{}

		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: stdout,
			Stderr: &bytes.Buffer{},
			Albums: albums,
		}

		cmd := &main.ExportCmd{Out: dir}

		require.NoError(t, cmd.Run(deps))
		assert.Contains(t, stdout.String(), "Wrote 1 albums")

		f, err := os.Open(filepath.Join(dir, fs.RecordsFileName))
		require.NoError(t, err)
		defer f.Close()

		rows, err := csv.NewReader(f).ReadAll()
		require.NoError(t, err)
		require.Len(t, rows, 2)
		assert.Equal(t, "Pink Floyd", rows[1][0])
		assert.Equal(t, "Harvest", rows[1][3])
	})

	t.Run("includes pending albums with --all", func(t *testing.T) {
		t.Parallel()

		var gotFilter discodex.AlbumFilter
		albums := &mock.AlbumService{
			FindAlbumsFn: func(_ context.Context, filter discodex.AlbumFilter) ([]*discodex.AlbumRecord, error) {
				gotFilter = filter
				return nil, nil
			},
		}

		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: &bytes.Buffer{},
			Stderr: &bytes.Buffer{},
			Albums: albums,
		}

		cmd := &main.ExportCmd{All: true, Out: t.TempDir()}

		require.NoError(t, cmd.Run(deps))
		assert.Nil(t, gotFilter.Enriched)
	})
}
