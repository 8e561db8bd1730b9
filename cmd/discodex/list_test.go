package main_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/fwojciec/discodex"
	main "github.com/fwojciec/discodex/cmd/discodex"
	"github.com/fwojciec/discodex/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("lists albums with artist, title, and URL", func(t *testing.T) {
		t.Parallel()

		albums := &mock.AlbumService{
			FindAlbumsFn: func(_ context.Context, _ discodex.AlbumFilter) ([]*discodex.AlbumRecord, error) {
				return []*discodex.AlbumRecord{
					{
						AlbumStub: discodex.AlbumStub{
							Artist: "Pink Floyd",
							Album:  "The Dark Side Of The Moon",
							URL:    "https://www.discogs.com/fr/release/1873013",
						},
						Enriched: true,
					},
					{
						AlbumStub: discodex.AlbumStub{
							Artist: "Daft Punk",
							Album:  "Discovery",
							URL:    "https://www.discogs.com/fr/release/23155",
						},
					},
				}, nil
			},
		}

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: stdout,
			Stderr: stderr,
			Albums: albums,
		}

		cmd := &main.ListCmd{}

		err := cmd.Run(deps)

		require.NoError(t, err)

		output := stdout.String()
		assert.Contains(t, output, "Pink Floyd")
		assert.Contains(t, output, "Discovery")
		assert.Contains(t, output, "https://www.discogs.com/fr/release/1873013")
		// Enriched albums are marked
		assert.Contains(t, output, "* Pink Floyd")
	})

	t.Run("filters to pending albums", func(t *testing.T) {
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

		cmd := &main.ListCmd{Pending: true}

		require.NoError(t, cmd.Run(deps))
		require.NotNil(t, gotFilter.Enriched)
		assert.False(t, *gotFilter.Enriched)
	})

	t.Run("shows helpful message when no albums exist", func(t *testing.T) {
		t.Parallel()

		albums := &mock.AlbumService{
			FindAlbumsFn: func(_ context.Context, _ discodex.AlbumFilter) ([]*discodex.AlbumRecord, error) {
				return nil, nil
			},
		}

		stdout := &bytes.Buffer{}

		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: stdout,
			Stderr: &bytes.Buffer{},
			Albums: albums,
		}

		cmd := &main.ListCmd{}

		require.NoError(t, cmd.Run(deps))
		assert.Contains(t, stdout.String(), "No albums")
	})

	t.Run("returns error when FindAlbums fails", func(t *testing.T) {
		t.Parallel()

		dbErr := errors.New("database connection failed")

		albums := &mock.AlbumService{
			FindAlbumsFn: func(_ context.Context, _ discodex.AlbumFilter) ([]*discodex.AlbumRecord, error) {
				return nil, dbErr
			},
		}

		stderr := &bytes.Buffer{}

		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: &bytes.Buffer{},
			Stderr: stderr,
			Albums: albums,
		}

		cmd := &main.ListCmd{}

		err := cmd.Run(deps)

		require.Error(t, err)
		assert.Equal(t, dbErr, err)
		assert.Contains(t, stderr.String(), "error:")
	})
}
