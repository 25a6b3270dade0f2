package repositories

import (
	"database/sql"
	"errors"
	"testing"

	"github.com/sandro63/musicdb/internal/models"
	"github.com/sandro63/musicdb/internal/shared"
)

// setupTestDB creates an in-memory SQLite database with migrations applied
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := shared.NewDatabase(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := shared.RunMigrations(db); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	return db
}

func mustCreateArtist(t *testing.T, db *sql.DB, name string) *models.Artist {
	t.Helper()
	a := &models.Artist{Name: name}
	if err := NewArtistRepository(db).Create(a); err != nil {
		t.Fatalf("failed to create artist %q: %v", name, err)
	}
	return a
}

func TestArtistRepository(t *testing.T) {
	t.Run("Create and Get", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewArtistRepository(db)

		a := &models.Artist{Name: "Selene Vega", Bio: "Mexico City singer-songwriter."}
		if err := repo.Create(a); err != nil {
			t.Fatalf("failed to create artist: %v", err)
		}
		if a.ID == 0 {
			t.Error("artist ID should be set after creation")
		}

		got, err := repo.Get(a.ID)
		if err != nil {
			t.Fatalf("failed to get artist: %v", err)
		}
		if got.Name != "Selene Vega" || got.Bio != "Mexico City singer-songwriter." {
			t.Errorf("unexpected artist: %+v", got)
		}
	})

	t.Run("Create rejects blank name", func(t *testing.T) {
		db := setupTestDB(t)
		err := NewArtistRepository(db).Create(&models.Artist{Name: "   "})
		if !errors.Is(err, shared.ErrValidation) {
			t.Errorf("expected ErrValidation, got %v", err)
		}
	})

	t.Run("Create rejects duplicate name", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewArtistRepository(db)
		mustCreateArtist(t, db, "Copper & Pine")

		err := repo.Create(&models.Artist{Name: "Copper & Pine"})
		if !errors.Is(err, shared.ErrDuplicate) {
			t.Errorf("expected ErrDuplicate, got %v", err)
		}

		// Rejection left exactly one row behind.
		var count int
		if err := db.QueryRow("SELECT COUNT(*) FROM artists").Scan(&count); err != nil {
			t.Fatalf("failed to count artists: %v", err)
		}
		if count != 1 {
			t.Errorf("expected 1 artist, got %d", count)
		}
	})

	t.Run("Get missing artist", func(t *testing.T) {
		db := setupTestDB(t)
		_, err := NewArtistRepository(db).Get(42)
		if !errors.Is(err, shared.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("Update", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewArtistRepository(db)
		a := mustCreateArtist(t, db, "Old Name")

		a.Name = "New Name"
		a.Bio = "Updated bio."
		if err := repo.Update(a); err != nil {
			t.Fatalf("failed to update artist: %v", err)
		}

		got, err := repo.Get(a.ID)
		if err != nil {
			t.Fatalf("failed to get artist: %v", err)
		}
		if got.Name != "New Name" || got.Bio != "Updated bio." {
			t.Errorf("unexpected artist after update: %+v", got)
		}
	})

	t.Run("Update missing artist", func(t *testing.T) {
		db := setupTestDB(t)
		err := NewArtistRepository(db).Update(&models.Artist{ID: 42, Name: "Ghost"})
		if !errors.Is(err, shared.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("Delete", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewArtistRepository(db)
		a := mustCreateArtist(t, db, "Short Lived")

		if err := repo.Delete(a.ID); err != nil {
			t.Fatalf("failed to delete artist: %v", err)
		}
		if _, err := repo.Get(a.ID); !errors.Is(err, shared.ErrNotFound) {
			t.Errorf("expected artist to be gone, got %v", err)
		}
	})

	t.Run("Delete artist with albums is rejected", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewArtistRepository(db)
		a := mustCreateArtist(t, db, "The Midnight Harbor")

		album := &models.Album{Title: "Harbor Lights", ArtistID: a.ID}
		if err := NewAlbumRepository(db).Create(album); err != nil {
			t.Fatalf("failed to create album: %v", err)
		}

		err := repo.Delete(a.ID)
		if !errors.Is(err, shared.ErrHasDependents) {
			t.Errorf("expected ErrHasDependents, got %v", err)
		}

		// The artist row survives the rejected delete.
		if _, err := repo.Get(a.ID); err != nil {
			t.Errorf("artist should still exist: %v", err)
		}
	})

	t.Run("List orders by name", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewArtistRepository(db)
		mustCreateArtist(t, db, "Zeta")
		mustCreateArtist(t, db, "Alpha")

		artists, err := repo.List()
		if err != nil {
			t.Fatalf("failed to list artists: %v", err)
		}
		if len(artists) != 2 || artists[0].Name != "Alpha" || artists[1].Name != "Zeta" {
			t.Errorf("unexpected artist order: %+v", artists)
		}
	})
}

func TestAlbumRepository(t *testing.T) {
	t.Run("Create with missing artist", func(t *testing.T) {
		db := setupTestDB(t)
		err := NewAlbumRepository(db).Create(&models.Album{Title: "Orphan", ArtistID: 42})
		if !errors.Is(err, shared.ErrMissingReference) {
			t.Errorf("expected ErrMissingReference, got %v", err)
		}
	})

	t.Run("Create and List resolves artist name", func(t *testing.T) {
		db := setupTestDB(t)
		a := mustCreateArtist(t, db, "Selene Vega")

		year := 2020
		album := &models.Album{Title: "Luz y Sombra", ArtistID: a.ID, ReleaseYear: &year}
		repo := NewAlbumRepository(db)
		if err := repo.Create(album); err != nil {
			t.Fatalf("failed to create album: %v", err)
		}

		rows, err := repo.List()
		if err != nil {
			t.Fatalf("failed to list albums: %v", err)
		}
		if len(rows) != 1 {
			t.Fatalf("expected 1 album, got %d", len(rows))
		}
		if rows[0].ArtistName != "Selene Vega" {
			t.Errorf("expected artist name resolved, got %q", rows[0].ArtistName)
		}
		if rows[0].ReleaseYear == nil || *rows[0].ReleaseYear != 2020 {
			t.Errorf("expected release year 2020, got %v", rows[0].ReleaseYear)
		}
	})

	t.Run("Create without release year", func(t *testing.T) {
		db := setupTestDB(t)
		a := mustCreateArtist(t, db, "Copper & Pine")

		repo := NewAlbumRepository(db)
		album := &models.Album{Title: "Untitled", ArtistID: a.ID}
		if err := repo.Create(album); err != nil {
			t.Fatalf("failed to create album: %v", err)
		}

		got, err := repo.Get(album.ID)
		if err != nil {
			t.Fatalf("failed to get album: %v", err)
		}
		if got.ReleaseYear != nil {
			t.Errorf("expected nil release year, got %v", got.ReleaseYear)
		}
	})

	t.Run("Update to missing artist", func(t *testing.T) {
		db := setupTestDB(t)
		a := mustCreateArtist(t, db, "Selene Vega")

		repo := NewAlbumRepository(db)
		album := &models.Album{Title: "Luz y Sombra", ArtistID: a.ID}
		if err := repo.Create(album); err != nil {
			t.Fatalf("failed to create album: %v", err)
		}

		album.ArtistID = 42
		if err := repo.Update(album); !errors.Is(err, shared.ErrMissingReference) {
			t.Errorf("expected ErrMissingReference, got %v", err)
		}
	})

	t.Run("Delete album with songs is rejected", func(t *testing.T) {
		db := setupTestDB(t)
		a := mustCreateArtist(t, db, "Selene Vega")

		albums := NewAlbumRepository(db)
		album := &models.Album{Title: "Luz y Sombra", ArtistID: a.ID}
		if err := albums.Create(album); err != nil {
			t.Fatalf("failed to create album: %v", err)
		}

		song := &models.Song{Title: "Amanecer"}
		if err := NewSongRepository(db).Create(song); err != nil {
			t.Fatalf("failed to create song: %v", err)
		}
		if err := NewAlbumSongRepository(db).Add(album.ID, song.ID); err != nil {
			t.Fatalf("failed to associate song: %v", err)
		}

		if err := albums.Delete(album.ID); !errors.Is(err, shared.ErrHasDependents) {
			t.Errorf("expected ErrHasDependents, got %v", err)
		}
	})
}

func TestSongRepository(t *testing.T) {
	t.Run("Create with duration", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewSongRepository(db)

		d := 215
		song := &models.Song{Title: "Saltwater", Duration: &d}
		if err := repo.Create(song); err != nil {
			t.Fatalf("failed to create song: %v", err)
		}

		got, err := repo.Get(song.ID)
		if err != nil {
			t.Fatalf("failed to get song: %v", err)
		}
		if got.Duration == nil || *got.Duration != 215 {
			t.Errorf("expected duration 215, got %v", got.Duration)
		}
	})

	t.Run("Delete song with genre links is rejected", func(t *testing.T) {
		db := setupTestDB(t)
		songs := NewSongRepository(db)

		song := &models.Song{Title: "Saltwater"}
		if err := songs.Create(song); err != nil {
			t.Fatalf("failed to create song: %v", err)
		}

		genre := &models.Genre{Name: "Indie Rock"}
		if err := NewGenreRepository(db).Create(genre); err != nil {
			t.Fatalf("failed to create genre: %v", err)
		}
		if err := NewSongGenreRepository(db).Add(song.ID, genre.ID); err != nil {
			t.Fatalf("failed to associate genre: %v", err)
		}

		if err := songs.Delete(song.ID); !errors.Is(err, shared.ErrHasDependents) {
			t.Errorf("expected ErrHasDependents, got %v", err)
		}
	})
}

func TestGenreRepository(t *testing.T) {
	t.Run("Create rejects duplicate name", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewGenreRepository(db)

		if err := repo.Create(&models.Genre{Name: "Folk"}); err != nil {
			t.Fatalf("failed to create genre: %v", err)
		}
		if err := repo.Create(&models.Genre{Name: "Folk"}); !errors.Is(err, shared.ErrDuplicate) {
			t.Errorf("expected ErrDuplicate, got %v", err)
		}
	})

	t.Run("Update missing genre", func(t *testing.T) {
		db := setupTestDB(t)
		err := NewGenreRepository(db).Update(&models.Genre{ID: 42, Name: "Ghost"})
		if !errors.Is(err, shared.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})
}

func TestCountAll(t *testing.T) {
	db := setupTestDB(t)

	counts, err := CountAll(db)
	if err != nil {
		t.Fatalf("failed to count tables: %v", err)
	}
	if counts != (Counts{}) {
		t.Errorf("expected all-zero counts on a fresh database, got %+v", counts)
	}

	mustCreateArtist(t, db, "Selene Vega")
	counts, err = CountAll(db)
	if err != nil {
		t.Fatalf("failed to count tables: %v", err)
	}
	if counts.Artists != 1 {
		t.Errorf("expected 1 artist, got %d", counts.Artists)
	}
}
