package repositories

import (
	"database/sql"
	"fmt"

	"github.com/sandro63/musicdb/internal/models"
	"github.com/sandro63/musicdb/internal/shared"
)

// ArtistRepository persists [models.Artist] records.
type ArtistRepository struct {
	db *sql.DB
}

// NewArtistRepository creates a new [ArtistRepository] with the given database connection
func NewArtistRepository(db *sql.DB) *ArtistRepository {
	return &ArtistRepository{db: db}
}

// List retrieves all artists ordered by name.
func (r *ArtistRepository) List() ([]models.Artist, error) {
	rows, err := r.db.Query("SELECT id, name, COALESCE(bio, '') FROM artists ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("failed to query artists: %w", err)
	}
	defer rows.Close()

	var artists []models.Artist
	for rows.Next() {
		var a models.Artist
		if err := rows.Scan(&a.ID, &a.Name, &a.Bio); err != nil {
			return nil, fmt.Errorf("failed to scan artist: %w", err)
		}
		artists = append(artists, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return artists, nil
}

// Refs retrieves (id, name) pairs for form select options, ordered by name.
func (r *ArtistRepository) Refs() ([]models.Ref, error) {
	return queryRefs(r.db, "SELECT id, name FROM artists ORDER BY name")
}

// Get retrieves an artist by ID.
func (r *ArtistRepository) Get(id int64) (*models.Artist, error) {
	var a models.Artist
	err := r.db.QueryRow("SELECT id, name, COALESCE(bio, '') FROM artists WHERE id = ?", id).
		Scan(&a.ID, &a.Name, &a.Bio)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("artist %d: %w", id, shared.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query artist: %w", err)
	}
	return &a, nil
}

// Create validates and inserts a new artist, setting its generated ID.
func (r *ArtistRepository) Create(a *models.Artist) error {
	if err := a.Validate(); err != nil {
		return err
	}

	result, err := r.db.Exec("INSERT INTO artists (name, bio) VALUES (?, ?)", a.Name, nullable(a.Bio))
	if err != nil {
		if cerr := constraint(err, shared.ErrMissingReference); cerr != nil {
			return fmt.Errorf("an artist named %q already exists: %w", a.Name, cerr)
		}
		return fmt.Errorf("failed to insert artist: %w", err)
	}

	a.ID, err = result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read inserted artist id: %w", err)
	}
	return nil
}

// Update replaces an artist's row keyed by its ID.
func (r *ArtistRepository) Update(a *models.Artist) error {
	if err := a.Validate(); err != nil {
		return err
	}

	result, err := r.db.Exec("UPDATE artists SET name = ?, bio = ? WHERE id = ?", a.Name, nullable(a.Bio), a.ID)
	if err != nil {
		if cerr := constraint(err, shared.ErrMissingReference); cerr != nil {
			return fmt.Errorf("an artist named %q already exists: %w", a.Name, cerr)
		}
		return fmt.Errorf("failed to update artist: %w", err)
	}

	return requireRow(result, fmt.Sprintf("artist %d", a.ID))
}

// Delete removes an artist by ID. Artists that still own albums cannot be
// deleted; the foreign-key constraint rejects the statement and the row is
// left untouched.
func (r *ArtistRepository) Delete(id int64) error {
	result, err := r.db.Exec("DELETE FROM artists WHERE id = ?", id)
	if err != nil {
		if cerr := constraint(err, shared.ErrHasDependents); cerr != nil {
			return fmt.Errorf("artist still has albums: %w", cerr)
		}
		return fmt.Errorf("failed to delete artist: %w", err)
	}

	return requireRow(result, fmt.Sprintf("artist %d", id))
}

// requireRow converts a zero-rows-affected result into a not-found error.
func requireRow(result sql.Result, what string) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%s: %w", what, shared.ErrNotFound)
	}
	return nil
}

// nullable stores empty strings as NULL so optional text columns stay NULL.
func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// queryRefs runs a two-column (id, name) query used by the Refs methods.
func queryRefs(db *sql.DB, query string) ([]models.Ref, error) {
	rows, err := db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query refs: %w", err)
	}
	defer rows.Close()

	var refs []models.Ref
	for rows.Next() {
		var ref models.Ref
		if err := rows.Scan(&ref.ID, &ref.Name); err != nil {
			return nil, fmt.Errorf("failed to scan ref: %w", err)
		}
		refs = append(refs, ref)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return refs, nil
}
