package mock

import (
	"context"

	"github.com/fwojciec/discodex"
)

var _ discodex.SitemapService = (*SitemapService)(nil)

// SitemapService is a mock implementation of discodex.SitemapService.
type SitemapService struct {
	DiscoverURLsFn func(ctx context.Context, baseURL string, filter *discodex.URLFilter) ([]string, error)
}

func (s *SitemapService) DiscoverURLs(ctx context.Context, baseURL string, filter *discodex.URLFilter) ([]string, error) {
	return s.DiscoverURLsFn(ctx, baseURL, filter)
}
