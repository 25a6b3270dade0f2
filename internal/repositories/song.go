package repositories

import (
	"database/sql"
	"fmt"

	"github.com/sandro63/musicdb/internal/models"
	"github.com/sandro63/musicdb/internal/shared"
)

// SongRepository persists [models.Song] records.
type SongRepository struct {
	db *sql.DB
}

// NewSongRepository creates a new [SongRepository] with the given database connection
func NewSongRepository(db *sql.DB) *SongRepository {
	return &SongRepository{db: db}
}

// List retrieves all songs ordered by title.
func (r *SongRepository) List() ([]models.Song, error) {
	rows, err := r.db.Query("SELECT id, title, duration FROM songs ORDER BY title")
	if err != nil {
		return nil, fmt.Errorf("failed to query songs: %w", err)
	}
	defer rows.Close()

	var songs []models.Song
	for rows.Next() {
		var s models.Song
		var duration sql.NullInt64
		if err := rows.Scan(&s.ID, &s.Title, &duration); err != nil {
			return nil, fmt.Errorf("failed to scan song: %w", err)
		}
		if duration.Valid {
			d := int(duration.Int64)
			s.Duration = &d
		}
		songs = append(songs, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return songs, nil
}

// Refs retrieves (id, title) pairs for form select options, ordered by title.
func (r *SongRepository) Refs() ([]models.Ref, error) {
	return queryRefs(r.db, "SELECT id, title FROM songs ORDER BY title")
}

// Get retrieves a song by ID.
func (r *SongRepository) Get(id int64) (*models.Song, error) {
	var s models.Song
	var duration sql.NullInt64
	err := r.db.QueryRow("SELECT id, title, duration FROM songs WHERE id = ?", id).
		Scan(&s.ID, &s.Title, &duration)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("song %d: %w", id, shared.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query song: %w", err)
	}
	if duration.Valid {
		d := int(duration.Int64)
		s.Duration = &d
	}
	return &s, nil
}

// Create validates and inserts a new song, setting its generated ID.
func (r *SongRepository) Create(s *models.Song) error {
	if err := s.Validate(); err != nil {
		return err
	}

	result, err := r.db.Exec("INSERT INTO songs (title, duration) VALUES (?, ?)", s.Title, nullableInt(s.Duration))
	if err != nil {
		if cerr := constraint(err, shared.ErrMissingReference); cerr != nil {
			return fmt.Errorf("failed to insert song: %w", cerr)
		}
		return fmt.Errorf("failed to insert song: %w", err)
	}

	s.ID, err = result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read inserted song id: %w", err)
	}
	return nil
}

// Update replaces a song's row keyed by its ID.
func (r *SongRepository) Update(s *models.Song) error {
	if err := s.Validate(); err != nil {
		return err
	}

	result, err := r.db.Exec("UPDATE songs SET title = ?, duration = ? WHERE id = ?", s.Title, nullableInt(s.Duration), s.ID)
	if err != nil {
		return fmt.Errorf("failed to update song: %w", err)
	}

	return requireRow(result, fmt.Sprintf("song %d", s.ID))
}

// Delete removes a song by ID; songs still referenced by associations cannot
// be deleted.
func (r *SongRepository) Delete(id int64) error {
	result, err := r.db.Exec("DELETE FROM songs WHERE id = ?", id)
	if err != nil {
		if cerr := constraint(err, shared.ErrHasDependents); cerr != nil {
			return fmt.Errorf("song still has album or genre associations: %w", cerr)
		}
		return fmt.Errorf("failed to delete song: %w", err)
	}

	return requireRow(result, fmt.Sprintf("song %d", id))
}
