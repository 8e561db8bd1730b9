package sqlite_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/fwojciec/discodex"
	"github.com/fwojciec/discodex/sqlite"
	"github.com/stretchr/testify/require"
)

// BenchmarkWALMode compares write performance between WAL and rollback
// journal modes. This simulates a catalog walk: inserting many album
// stubs one at a time.
func BenchmarkWALMode(b *testing.B) {
	b.Run("rollback_journal", func(b *testing.B) {
		benchmarkAlbumInserts(b, false)
	})

	b.Run("wal_mode", func(b *testing.B) {
		benchmarkAlbumInserts(b, true)
	})
}

func benchmarkAlbumInserts(b *testing.B, useWAL bool) {
	b.Helper()

	tmpDir := b.TempDir()
	dbPath := filepath.Join(tmpDir, "bench.db")

	db := sqlite.NewDB(dbPath)
	require.NoError(b, db.Open())

	// Open enables WAL for file databases; switch back for the baseline.
	if !useWAL {
		_, err := db.ExecContext(context.Background(), "PRAGMA journal_mode = DELETE")
		require.NoError(b, err)
	}

	defer func() {
		db.Close()
		os.Remove(dbPath + "-wal")
		os.Remove(dbPath + "-shm")
	}()

	ctx := context.Background()
	svc := sqlite.NewAlbumService(db)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		stub := &discodex.AlbumStub{
			Artist: "Benchmark Artist",
			Album:  fmt.Sprintf("Album %d", i),
			URL:    fmt.Sprintf("https://www.discogs.com/fr/release/%d", i),
		}
		require.NoError(b, svc.CreateAlbum(ctx, stub))
	}
}
