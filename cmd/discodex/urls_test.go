package main_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/fwojciec/discodex"
	main "github.com/fwojciec/discodex/cmd/discodex"
	"github.com/fwojciec/discodex/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestURLsCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("prints discovered URLs", func(t *testing.T) {
		t.Parallel()

		sitemaps := &mock.SitemapService{
			DiscoverURLsFn: func(_ context.Context, baseURL string, _ *discodex.URLFilter) ([]string, error) {
				assert.Equal(t, "https://www.discogs.com", baseURL)
				return []string{
					"https://www.discogs.com/fr/release/1",
					"https://www.discogs.com/fr/release/2",
				}, nil
			},
		}

		stdout := &bytes.Buffer{}

		deps := &main.Dependencies{
			Ctx:      context.Background(),
			Stdout:   stdout,
			Stderr:   &bytes.Buffer{},
			Sitemaps: sitemaps,
		}

		cmd := &main.URLsCmd{Base: "https://www.discogs.com"}

		require.NoError(t, cmd.Run(deps))
		assert.Contains(t, stdout.String(), "/fr/release/1\n")
		assert.Contains(t, stdout.String(), "/fr/release/2\n")
	})

	t.Run("compiles filter patterns", func(t *testing.T) {
		t.Parallel()

		var gotFilter *discodex.URLFilter
		sitemaps := &mock.SitemapService{
			DiscoverURLsFn: func(_ context.Context, _ string, filter *discodex.URLFilter) ([]string, error) {
				gotFilter = filter
				return nil, nil
			},
		}

		deps := &main.Dependencies{
			Ctx:      context.Background(),
			Stdout:   &bytes.Buffer{},
			Stderr:   &bytes.Buffer{},
			Sitemaps: sitemaps,
		}

		cmd := &main.URLsCmd{Base: "https://www.discogs.com", Filter: []string{`/release/`}}

		require.NoError(t, cmd.Run(deps))
		require.NotNil(t, gotFilter)
		require.Len(t, gotFilter.Include, 1)
		assert.True(t, gotFilter.Include[0].MatchString("https://www.discogs.com/fr/release/1"))
	})

	t.Run("rejects an invalid filter pattern", func(t *testing.T) {
		t.Parallel()

		stderr := &bytes.Buffer{}

		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: &bytes.Buffer{},
			Stderr: stderr,
		}

		cmd := &main.URLsCmd{Base: "https://www.discogs.com", Filter: []string{`[invalid`}}

		err := cmd.Run(deps)
		require.Error(t, err)
		assert.Contains(t, stderr.String(), "invalid filter pattern")
	})
}
