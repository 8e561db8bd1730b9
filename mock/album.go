package mock

import (
	"context"

	"github.com/fwojciec/discodex"
)

var _ discodex.AlbumService = (*AlbumService)(nil)

// AlbumService is a mock implementation of discodex.AlbumService.
type AlbumService struct {
	CreateAlbumFn    func(ctx context.Context, stub *discodex.AlbumStub) error
	FindAlbumByURLFn func(ctx context.Context, url string) (*discodex.AlbumRecord, error)
	FindAlbumsFn     func(ctx context.Context, filter discodex.AlbumFilter) ([]*discodex.AlbumRecord, error)
	UpdateRecordFn   func(ctx context.Context, record *discodex.AlbumRecord, pageHash string) error
}

func (s *AlbumService) CreateAlbum(ctx context.Context, stub *discodex.AlbumStub) error {
	return s.CreateAlbumFn(ctx, stub)
}

func (s *AlbumService) FindAlbumByURL(ctx context.Context, url string) (*discodex.AlbumRecord, error) {
	return s.FindAlbumByURLFn(ctx, url)
}

func (s *AlbumService) FindAlbums(ctx context.Context, filter discodex.AlbumFilter) ([]*discodex.AlbumRecord, error) {
	return s.FindAlbumsFn(ctx, filter)
}

func (s *AlbumService) UpdateRecord(ctx context.Context, record *discodex.AlbumRecord, pageHash string) error {
	return s.UpdateRecordFn(ctx, record, pageHash)
}
