package mock

import (
	"context"

	"github.com/fwojciec/discodex"
)

var _ discodex.RecordWriter = (*RecordWriter)(nil)

// RecordWriter is a mock implementation of discodex.RecordWriter.
type RecordWriter struct {
	WriteStubsFn   func(ctx context.Context, stubs []*discodex.AlbumStub) error
	WriteRecordsFn func(ctx context.Context, records []*discodex.AlbumRecord) error
}

func (w *RecordWriter) WriteStubs(ctx context.Context, stubs []*discodex.AlbumStub) error {
	return w.WriteStubsFn(ctx, stubs)
}

func (w *RecordWriter) WriteRecords(ctx context.Context, records []*discodex.AlbumRecord) error {
	return w.WriteRecordsFn(ctx, records)
}
