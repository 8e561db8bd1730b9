package mock

import "github.com/fwojciec/discodex"

var _ discodex.CatalogParser = (*CatalogParser)(nil)

// CatalogParser is a mock implementation of discodex.CatalogParser.
type CatalogParser struct {
	ParseCatalogFn func(html string) ([]*discodex.AlbumStub, error)
}

func (p *CatalogParser) ParseCatalog(html string) ([]*discodex.AlbumStub, error) {
	return p.ParseCatalogFn(html)
}

var _ discodex.AlbumParser = (*AlbumParser)(nil)

// AlbumParser is a mock implementation of discodex.AlbumParser.
type AlbumParser struct {
	ParseAlbumFn func(html string) (*discodex.RawFieldMap, error)
}

func (p *AlbumParser) ParseAlbum(html string) (*discodex.RawFieldMap, error) {
	return p.ParseAlbumFn(html)
}
