package repositories

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/mattn/go-sqlite3"
	"github.com/sandro63/musicdb/internal/shared"
)

// constraint maps a driver constraint fault to the matching taxonomy
// sentinel, or returns nil when err is not a constraint violation.
//
// A foreign-key violation means different things depending on the statement:
// on insert/update the referenced row is missing, on delete dependents still
// point at the row. Callers pass the sentinel that fits their operation.
func constraint(err, fkViolation error) error {
	var se sqlite3.Error
	if !errors.As(err, &se) || se.Code != sqlite3.ErrConstraint {
		return nil
	}
	switch se.ExtendedCode {
	case sqlite3.ErrConstraintUnique, sqlite3.ErrConstraintPrimaryKey:
		return shared.ErrDuplicate
	case sqlite3.ErrConstraintForeignKey:
		return fkViolation
	case sqlite3.ErrConstraintNotNull, sqlite3.ErrConstraintCheck:
		return shared.ErrValidation
	default:
		return nil
	}
}

// Counts holds per-table row counts for the dashboard and the stats command.
type Counts struct {
	Artists     int
	Albums      int
	Songs       int
	Genres      int
	AlbumSongs  int
	SongGenres  int
	AlbumGenres int
}

// CountAll returns the row count of every catalogue table.
func CountAll(db *sql.DB) (Counts, error) {
	var c Counts
	for _, t := range []struct {
		table string
		dest  *int
	}{
		{"artists", &c.Artists},
		{"albums", &c.Albums},
		{"songs", &c.Songs},
		{"genres", &c.Genres},
		{"album_songs", &c.AlbumSongs},
		{"song_genres", &c.SongGenres},
		{"album_genres", &c.AlbumGenres},
	} {
		query := fmt.Sprintf("SELECT COUNT(*) FROM %s", t.table)
		if err := db.QueryRow(query).Scan(t.dest); err != nil {
			return Counts{}, fmt.Errorf("failed to count %s: %w", t.table, err)
		}
	}
	return c, nil
}
