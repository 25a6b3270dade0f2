package repositories

import (
	"database/sql"
	"fmt"

	"github.com/sandro63/musicdb/internal/models"
	"github.com/sandro63/musicdb/internal/shared"
)

// GenreRepository persists [models.Genre] records.
type GenreRepository struct {
	db *sql.DB
}

// NewGenreRepository creates a new [GenreRepository] with the given database connection
func NewGenreRepository(db *sql.DB) *GenreRepository {
	return &GenreRepository{db: db}
}

// List retrieves all genres ordered by name.
func (r *GenreRepository) List() ([]models.Genre, error) {
	rows, err := r.db.Query("SELECT id, name FROM genres ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("failed to query genres: %w", err)
	}
	defer rows.Close()

	var genres []models.Genre
	for rows.Next() {
		var g models.Genre
		if err := rows.Scan(&g.ID, &g.Name); err != nil {
			return nil, fmt.Errorf("failed to scan genre: %w", err)
		}
		genres = append(genres, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return genres, nil
}

// Refs retrieves (id, name) pairs for form select options, ordered by name.
func (r *GenreRepository) Refs() ([]models.Ref, error) {
	return queryRefs(r.db, "SELECT id, name FROM genres ORDER BY name")
}

// Get retrieves a genre by ID.
func (r *GenreRepository) Get(id int64) (*models.Genre, error) {
	var g models.Genre
	err := r.db.QueryRow("SELECT id, name FROM genres WHERE id = ?", id).Scan(&g.ID, &g.Name)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("genre %d: %w", id, shared.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query genre: %w", err)
	}
	return &g, nil
}

// Create validates and inserts a new genre, setting its generated ID.
func (r *GenreRepository) Create(g *models.Genre) error {
	if err := g.Validate(); err != nil {
		return err
	}

	result, err := r.db.Exec("INSERT INTO genres (name) VALUES (?)", g.Name)
	if err != nil {
		if cerr := constraint(err, shared.ErrMissingReference); cerr != nil {
			return fmt.Errorf("a genre named %q already exists: %w", g.Name, cerr)
		}
		return fmt.Errorf("failed to insert genre: %w", err)
	}

	g.ID, err = result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read inserted genre id: %w", err)
	}
	return nil
}

// Update replaces a genre's row keyed by its ID.
func (r *GenreRepository) Update(g *models.Genre) error {
	if err := g.Validate(); err != nil {
		return err
	}

	result, err := r.db.Exec("UPDATE genres SET name = ? WHERE id = ?", g.Name, g.ID)
	if err != nil {
		if cerr := constraint(err, shared.ErrMissingReference); cerr != nil {
			return fmt.Errorf("a genre named %q already exists: %w", g.Name, cerr)
		}
		return fmt.Errorf("failed to update genre: %w", err)
	}

	return requireRow(result, fmt.Sprintf("genre %d", g.ID))
}

// Delete removes a genre by ID; genres still referenced by associations
// cannot be deleted.
func (r *GenreRepository) Delete(id int64) error {
	result, err := r.db.Exec("DELETE FROM genres WHERE id = ?", id)
	if err != nil {
		if cerr := constraint(err, shared.ErrHasDependents); cerr != nil {
			return fmt.Errorf("genre still has song or album associations: %w", cerr)
		}
		return fmt.Errorf("failed to delete genre: %w", err)
	}

	return requireRow(result, fmt.Sprintf("genre %d", id))
}
