package repositories

import (
	"database/sql"
	"fmt"

	"github.com/sandro63/musicdb/internal/models"
	"github.com/sandro63/musicdb/internal/shared"
)

// side describes one end of a junction table: the column in the junction,
// the referenced table and the column holding its display name.
type side struct {
	column  string
	table   string
	display string
	label   string
}

// AssociationRepository manages one of the three many-to-many junction
// tables. The same implementation serves album_songs, song_genres and
// album_genres; only the table/column metadata differs.
//
// Association rows are never updated in place, only added and removed.
type AssociationRepository struct {
	db     *sql.DB
	table  string
	parent side
	child  side
}

// NewAlbumSongRepository manages the album_songs junction table.
func NewAlbumSongRepository(db *sql.DB) *AssociationRepository {
	return &AssociationRepository{
		db:     db,
		table:  "album_songs",
		parent: side{column: "album_id", table: "albums", display: "title", label: "album"},
		child:  side{column: "song_id", table: "songs", display: "title", label: "song"},
	}
}

// NewSongGenreRepository manages the song_genres junction table.
func NewSongGenreRepository(db *sql.DB) *AssociationRepository {
	return &AssociationRepository{
		db:     db,
		table:  "song_genres",
		parent: side{column: "song_id", table: "songs", display: "title", label: "song"},
		child:  side{column: "genre_id", table: "genres", display: "name", label: "genre"},
	}
}

// NewAlbumGenreRepository manages the album_genres junction table.
func NewAlbumGenreRepository(db *sql.DB) *AssociationRepository {
	return &AssociationRepository{
		db:     db,
		table:  "album_genres",
		parent: side{column: "album_id", table: "albums", display: "title", label: "album"},
		child:  side{column: "genre_id", table: "genres", display: "name", label: "genre"},
	}
}

// Labels returns the human names of the two sides, e.g. ("album", "song").
func (r *AssociationRepository) Labels() (string, string) {
	return r.parent.label, r.child.label
}

// List retrieves all association rows with both sides resolved to their
// display names, ordered by parent then child name.
func (r *AssociationRepository) List() ([]models.AssociationRow, error) {
	// Table and column names come from the fixed constructors above, never
	// from user input.
	query := fmt.Sprintf(`
		SELECT p.id, p.%s, c.id, c.%s
		FROM %s j
		JOIN %s p ON p.id = j.%s
		JOIN %s c ON c.id = j.%s
		ORDER BY p.%s, c.%s
	`, r.parent.display, r.child.display,
		r.table,
		r.parent.table, r.parent.column,
		r.child.table, r.child.column,
		r.parent.display, r.child.display)

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", r.table, err)
	}
	defer rows.Close()

	var result []models.AssociationRow
	for rows.Next() {
		var row models.AssociationRow
		if err := rows.Scan(&row.ParentID, &row.ParentName, &row.ChildID, &row.ChildName); err != nil {
			return nil, fmt.Errorf("failed to scan %s row: %w", r.table, err)
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return result, nil
}

// Add inserts the (parent, child) pair. A pair that already exists is a
// duplicate integrity violation; a key that resolves to no row is a
// missing-reference violation.
func (r *AssociationRepository) Add(parentID, childID int64) error {
	if parentID <= 0 || childID <= 0 {
		return fmt.Errorf("both %s and %s are required: %w", r.parent.label, r.child.label, shared.ErrValidation)
	}

	query := fmt.Sprintf("INSERT INTO %s (%s, %s) VALUES (?, ?)", r.table, r.parent.column, r.child.column)
	if _, err := r.db.Exec(query, parentID, childID); err != nil {
		if cerr := constraint(err, shared.ErrMissingReference); cerr != nil {
			switch cerr {
			case shared.ErrDuplicate:
				return fmt.Errorf("this %s/%s association already exists: %w", r.parent.label, r.child.label, cerr)
			default:
				return fmt.Errorf("the selected %s or %s does not exist: %w", r.parent.label, r.child.label, cerr)
			}
		}
		return fmt.Errorf("failed to insert %s row: %w", r.table, err)
	}

	return nil
}

// Remove deletes the exact (parent, child) pair. Removing a pair that does
// not exist is a no-op; the boolean reports whether a row was deleted.
func (r *AssociationRepository) Remove(parentID, childID int64) (bool, error) {
	query := fmt.Sprintf("DELETE FROM %s WHERE %s = ? AND %s = ?", r.table, r.parent.column, r.child.column)
	result, err := r.db.Exec(query, parentID, childID)
	if err != nil {
		return false, fmt.Errorf("failed to delete %s row: %w", r.table, err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get affected rows: %w", err)
	}
	return rows > 0, nil
}
