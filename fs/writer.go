// Package fs provides file-based export of scraped albums as CSV.
package fs

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fwojciec/discodex"
)

// Output file names within the export directory.
const (
	StubsFileName   = "albums.csv"
	RecordsFileName = "albums_enrichis.csv"
	URLsFileName    = "urls_albums.txt"
)

// stubHeader and recordHeader are the CSV column names. They are French
// because the scraped site and the downstream consumers of the export are.
var (
	stubHeader = []string{"artiste", "album", "url"}

	recordHeader = []string{
		"artiste", "album", "url",
		"label", "format", "pays", "date_sortie", "annee", "genres",
		"en_collection", "en_wantlist", "note_moyenne", "nombre_notes",
		"derniere_vente", "prix_faible", "prix_moyen", "prix_eleve",
	}
)

// Ensure Writer implements discodex.RecordWriter at compile time.
var _ discodex.RecordWriter = (*Writer)(nil)

// Writer writes album exports as CSV files to a directory.
type Writer struct {
	dir string
}

// NewWriter creates a new Writer that writes to the given directory.
func NewWriter(dir string) *Writer {
	return &Writer{dir: dir}
}

// WriteStubs writes the catalog-stage export: one row per stub with the
// identity columns only.
func (w *Writer) WriteStubs(ctx context.Context, stubs []*discodex.AlbumStub) error {
	rows := make([][]string, 0, len(stubs))
	for _, stub := range stubs {
		rows = append(rows, []string{stub.Artist, stub.Album, stub.URL})
	}
	return w.writeCSV(ctx, StubsFileName, stubHeader, rows)
}

// WriteRecords writes the enriched export with all extracted columns.
func (w *Writer) WriteRecords(ctx context.Context, records []*discodex.AlbumRecord) error {
	rows := make([][]string, 0, len(records))
	for _, rec := range records {
		rows = append(rows, []string{
			rec.Artist, rec.Album, rec.URL,
			rec.Label, rec.Format, rec.Country, rec.ReleaseDate, rec.Year, rec.Genres,
			rec.InCollection, rec.InWantlist, rec.AvgRating, rec.RatingCount,
			rec.LastSale, rec.PriceLow, rec.PriceMid, rec.PriceHigh,
		})
	}
	return w.writeCSV(ctx, RecordsFileName, recordHeader, rows)
}

// WriteURLList writes the release URLs one per line, a lightweight
// checkpoint that survives even if the CSV write fails mid-run.
func (w *Writer) WriteURLList(ctx context.Context, stubs []*discodex.AlbumStub) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return fmt.Errorf("failed to create export directory: %w", err)
	}

	var b strings.Builder
	for _, stub := range stubs {
		b.WriteString(stub.URL)
		b.WriteByte('\n')
	}

	path := filepath.Join(w.dir, URLsFileName)
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("failed to write URL list: %w", err)
	}
	return nil
}

func (w *Writer) writeCSV(ctx context.Context, name string, header []string, rows [][]string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return fmt.Errorf("failed to create export directory: %w", err)
	}

	path := filepath.Join(w.dir, name)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", name, err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, row := range rows {
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return err
	}

	return f.Close()
}
