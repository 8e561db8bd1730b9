package sqlite

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/fwojciec/discodex"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ discodex.AlbumService = (*AlbumService)(nil)

// AlbumService implements discodex.AlbumService using SQLite.
type AlbumService struct {
	db *DB
}

// NewAlbumService creates a new AlbumService.
func NewAlbumService(db *DB) *AlbumService {
	return &AlbumService{db: db}
}

const albumColumns = `artist, album, url, label, format, country, release_date, year, genres,
	in_collection, in_wantlist, avg_rating, rating_count, last_sale, price_low, price_mid, price_high,
	enriched_at IS NOT NULL`

// CreateAlbum creates a new album stub keyed by its release URL.
func (s *AlbumService) CreateAlbum(ctx context.Context, stub *discodex.AlbumStub) error {
	if err := stub.Validate(); err != nil {
		return err
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO albums (id, artist, album, url, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, uuid.New().String(), stub.Artist, stub.Album, stub.URL, time.Now().UTC().Format(time.RFC3339))

	if err != nil && strings.Contains(err.Error(), "UNIQUE constraint") {
		return discodex.Errorf(discodex.ECONFLICT, "album already exists: %s", stub.URL)
	}
	return err
}

// FindAlbumByURL retrieves an album by its release page URL.
func (s *AlbumService) FindAlbumByURL(ctx context.Context, url string) (*discodex.AlbumRecord, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+albumColumns+`
		FROM albums
		WHERE url = ?
	`, url)

	rec, err := scanAlbum(row.Scan)
	if err == sql.ErrNoRows {
		return nil, discodex.Errorf(discodex.ENOTFOUND, "album not found")
	}
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// FindAlbums retrieves albums matching the filter, in insertion order.
func (s *AlbumService) FindAlbums(ctx context.Context, filter discodex.AlbumFilter) ([]*discodex.AlbumRecord, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT " + albumColumns + " FROM albums WHERE 1=1")

	if filter.URL != nil {
		query.WriteString(" AND url = ?")
		args = append(args, *filter.URL)
	}
	if filter.Artist != nil {
		query.WriteString(" AND artist = ?")
		args = append(args, *filter.Artist)
	}
	if filter.Enriched != nil {
		if *filter.Enriched {
			query.WriteString(" AND enriched_at IS NOT NULL")
		} else {
			query.WriteString(" AND enriched_at IS NULL")
		}
	}

	query.WriteString(" ORDER BY rowid ASC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []*discodex.AlbumRecord
	for rows.Next() {
		rec, err := scanAlbum(rows.Scan)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}

	return records, rows.Err()
}

// UpdateRecord stores the enriched fields for the album identified by
// record.URL, stamping the page hash and enrichment time.
func (s *AlbumService) UpdateRecord(ctx context.Context, record *discodex.AlbumRecord, pageHash string) error {
	if err := record.Validate(); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `
		UPDATE albums
		SET label = ?, format = ?, country = ?, release_date = ?, year = ?, genres = ?,
			in_collection = ?, in_wantlist = ?, avg_rating = ?, rating_count = ?,
			last_sale = ?, price_low = ?, price_mid = ?, price_high = ?,
			page_hash = ?, enriched_at = ?
		WHERE url = ?
	`, record.Label, record.Format, record.Country, record.ReleaseDate, record.Year, record.Genres,
		record.InCollection, record.InWantlist, record.AvgRating, record.RatingCount,
		record.LastSale, record.PriceLow, record.PriceMid, record.PriceHigh,
		pageHash, time.Now().UTC().Format(time.RFC3339), record.URL)

	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return discodex.Errorf(discodex.ENOTFOUND, "album not found: %s", record.URL)
	}

	return nil
}

// scanAlbum reads one row of albumColumns into a record.
func scanAlbum(scan func(dest ...any) error) (*discodex.AlbumRecord, error) {
	var rec discodex.AlbumRecord
	err := scan(&rec.Artist, &rec.Album, &rec.URL, &rec.Label, &rec.Format, &rec.Country,
		&rec.ReleaseDate, &rec.Year, &rec.Genres, &rec.InCollection, &rec.InWantlist,
		&rec.AvgRating, &rec.RatingCount, &rec.LastSale, &rec.PriceLow, &rec.PriceMid, &rec.PriceHigh,
		&rec.Enriched)
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// appendPagination appends LIMIT and OFFSET clauses if values are > 0.
func appendPagination(query *strings.Builder, args *[]any, limit, offset int) {
	if limit > 0 {
		query.WriteString(" LIMIT ?")
		*args = append(*args, limit)
	}
	if offset > 0 {
		query.WriteString(" OFFSET ?")
		*args = append(*args, offset)
	}
}
