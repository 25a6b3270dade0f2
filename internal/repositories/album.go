package repositories

import (
	"database/sql"
	"fmt"

	"github.com/sandro63/musicdb/internal/models"
	"github.com/sandro63/musicdb/internal/shared"
)

// AlbumRepository persists [models.Album] records.
type AlbumRepository struct {
	db *sql.DB
}

// NewAlbumRepository creates a new [AlbumRepository] with the given database connection
func NewAlbumRepository(db *sql.DB) *AlbumRepository {
	return &AlbumRepository{db: db}
}

// List retrieves all albums joined with their artist's name, ordered by
// artist then release year.
func (r *AlbumRepository) List() ([]models.AlbumRow, error) {
	query := `
		SELECT al.id, al.title, al.artist_id, al.release_year, ar.name
		FROM albums al
		JOIN artists ar ON ar.id = al.artist_id
		ORDER BY ar.name, al.release_year
	`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query albums: %w", err)
	}
	defer rows.Close()

	var albums []models.AlbumRow
	for rows.Next() {
		var row models.AlbumRow
		var year sql.NullInt64
		if err := rows.Scan(&row.ID, &row.Title, &row.ArtistID, &year, &row.ArtistName); err != nil {
			return nil, fmt.Errorf("failed to scan album: %w", err)
		}
		if year.Valid {
			y := int(year.Int64)
			row.ReleaseYear = &y
		}
		albums = append(albums, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return albums, nil
}

// Refs retrieves (id, title) pairs for form select options, ordered by title.
func (r *AlbumRepository) Refs() ([]models.Ref, error) {
	return queryRefs(r.db, "SELECT id, title FROM albums ORDER BY title")
}

// Get retrieves an album by ID.
func (r *AlbumRepository) Get(id int64) (*models.Album, error) {
	var a models.Album
	var year sql.NullInt64
	err := r.db.QueryRow("SELECT id, title, artist_id, release_year FROM albums WHERE id = ?", id).
		Scan(&a.ID, &a.Title, &a.ArtistID, &year)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("album %d: %w", id, shared.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query album: %w", err)
	}
	if year.Valid {
		y := int(year.Int64)
		a.ReleaseYear = &y
	}
	return &a, nil
}

// Create validates and inserts a new album, setting its generated ID. An
// artist_id that resolves to no artist is an integrity violation, not a
// driver fault.
func (r *AlbumRepository) Create(a *models.Album) error {
	if err := a.Validate(); err != nil {
		return err
	}

	result, err := r.db.Exec(
		"INSERT INTO albums (title, artist_id, release_year) VALUES (?, ?, ?)",
		a.Title, a.ArtistID, nullableInt(a.ReleaseYear),
	)
	if err != nil {
		if cerr := constraint(err, shared.ErrMissingReference); cerr != nil {
			return fmt.Errorf("artist %d does not exist: %w", a.ArtistID, cerr)
		}
		return fmt.Errorf("failed to insert album: %w", err)
	}

	a.ID, err = result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read inserted album id: %w", err)
	}
	return nil
}

// Update replaces an album's row keyed by its ID.
func (r *AlbumRepository) Update(a *models.Album) error {
	if err := a.Validate(); err != nil {
		return err
	}

	result, err := r.db.Exec(
		"UPDATE albums SET title = ?, artist_id = ?, release_year = ? WHERE id = ?",
		a.Title, a.ArtistID, nullableInt(a.ReleaseYear), a.ID,
	)
	if err != nil {
		if cerr := constraint(err, shared.ErrMissingReference); cerr != nil {
			return fmt.Errorf("artist %d does not exist: %w", a.ArtistID, cerr)
		}
		return fmt.Errorf("failed to update album: %w", err)
	}

	return requireRow(result, fmt.Sprintf("album %d", a.ID))
}

// Delete removes an album by ID; albums still referenced by associations
// cannot be deleted.
func (r *AlbumRepository) Delete(id int64) error {
	result, err := r.db.Exec("DELETE FROM albums WHERE id = ?", id)
	if err != nil {
		if cerr := constraint(err, shared.ErrHasDependents); cerr != nil {
			return fmt.Errorf("album still has song or genre associations: %w", cerr)
		}
		return fmt.Errorf("failed to delete album: %w", err)
	}

	return requireRow(result, fmt.Sprintf("album %d", id))
}

// nullableInt stores nil as NULL for optional integer columns.
func nullableInt(v *int) any {
	if v == nil {
		return nil
	}
	return *v
}
