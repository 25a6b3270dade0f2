package repositories

import (
	"database/sql"
	"fmt"
)

// The seed dataset: 3 artists, 4 albums, 48 songs, 4 genres, plus the
// album/song, song/genre and album/genre associations. Inserts are keyed on
// natural uniqueness (artist and genre names, album title per artist, song
// title), so reseeding an already-seeded database changes nothing.

type seedSong struct {
	title    string
	duration int
}

type seedAlbum struct {
	title string
	year  int
	genre string
	songs []seedSong
}

type seedArtist struct {
	name   string
	bio    string
	albums []seedAlbum
}

var seedGenres = []string{"Folk", "Indie Rock", "Latin Alternative", "Synthpop"}

var seedCatalogue = []seedArtist{
	{
		name: "The Midnight Harbor",
		bio:  "Four-piece from Porto trading in reverb-heavy coastal indie rock.",
		albums: []seedAlbum{
			{
				title: "Harbor Lights", year: 2019, genre: "Indie Rock",
				songs: []seedSong{
					{"Saltwater", 214}, {"Pier Nine", 187}, {"Undertow", 243},
					{"Lighthouse Keeper", 198}, {"North Atlantic", 276}, {"Driftwood", 165},
					{"Ferry Crossing", 221}, {"Tide Charts", 189}, {"Harbor Lights", 252},
					{"Gull's Cry", 173}, {"Anchor Rope", 208}, {"Last Boat Home", 296},
				},
			},
			{
				title: "Night Signals", year: 2021, genre: "Synthpop",
				songs: []seedSong{
					{"Neon Static", 201}, {"Radio Tower", 184}, {"Midnight Frequency", 237},
					{"Signal Fade", 172}, {"Citylight Drift", 226}, {"Analog Heart", 193},
					{"Transmission One", 158}, {"Wavelength", 212}, {"Night Signals", 248},
					{"Afterglow Circuit", 179}, {"Phosphor", 203}, {"Dial Tone Dreams", 267},
				},
			},
		},
	},
	{
		name: "Selene Vega",
		bio:  "Mexico City singer-songwriter blending bolero phrasing with alternative rock.",
		albums: []seedAlbum{
			{
				title: "Luz y Sombra", year: 2020, genre: "Latin Alternative",
				songs: []seedSong{
					{"Amanecer", 195}, {"Calle Norte", 178}, {"Sombra Mía", 232},
					{"Río Abajo", 207}, {"La Espera", 186}, {"Cenizas", 244},
					{"Vuelo Nocturno", 219}, {"Espejos", 171}, {"Luz y Sombra", 258},
					{"Danza del Viento", 196}, {"Palomas", 183}, {"Última Estación", 289},
				},
			},
		},
	},
	{
		name: "Copper & Pine",
		bio:  "Oregon folk duo recording live to tape in a converted barn.",
		albums: []seedAlbum{
			{
				title: "Evergreen Sessions", year: 2018, genre: "Folk",
				songs: []seedSong{
					{"Timberline", 188}, {"Cold Creek", 205}, {"Juniper", 176},
					{"Old Growth", 249}, {"Moss and Stone", 192}, {"Cascade Rain", 227},
					{"Lantern Song", 164}, {"Fiddleback", 181}, {"Evergreen", 236},
					{"Railroad Clover", 199}, {"Hearthside", 215}, {"Winter Wren", 262},
				},
			},
		},
	},
}

// Seed populates the catalogue with the fixed initial dataset inside one
// transaction. Safe to run any number of times.
func Seed(db *sql.DB) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin seed transaction: %w", err)
	}
	defer tx.Rollback()

	for _, name := range seedGenres {
		if _, err := tx.Exec("INSERT OR IGNORE INTO genres (name) VALUES (?)", name); err != nil {
			return fmt.Errorf("failed to seed genre %q: %w", name, err)
		}
	}

	for _, artist := range seedCatalogue {
		if _, err := tx.Exec("INSERT OR IGNORE INTO artists (name, bio) VALUES (?, ?)", artist.name, artist.bio); err != nil {
			return fmt.Errorf("failed to seed artist %q: %w", artist.name, err)
		}

		var artistID int64
		if err := tx.QueryRow("SELECT id FROM artists WHERE name = ?", artist.name).Scan(&artistID); err != nil {
			return fmt.Errorf("failed to resolve seeded artist %q: %w", artist.name, err)
		}

		for _, album := range artist.albums {
			if err := seedAlbumRows(tx, artistID, album); err != nil {
				return err
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit seed transaction: %w", err)
	}
	return nil
}

func seedAlbumRows(tx *sql.Tx, artistID int64, album seedAlbum) error {
	_, err := tx.Exec(`
		INSERT INTO albums (title, artist_id, release_year)
		SELECT ?, ?, ?
		WHERE NOT EXISTS (SELECT 1 FROM albums WHERE title = ? AND artist_id = ?)
	`, album.title, artistID, album.year, album.title, artistID)
	if err != nil {
		return fmt.Errorf("failed to seed album %q: %w", album.title, err)
	}

	var albumID int64
	if err := tx.QueryRow("SELECT id FROM albums WHERE title = ? AND artist_id = ?", album.title, artistID).Scan(&albumID); err != nil {
		return fmt.Errorf("failed to resolve seeded album %q: %w", album.title, err)
	}

	var genreID int64
	if err := tx.QueryRow("SELECT id FROM genres WHERE name = ?", album.genre).Scan(&genreID); err != nil {
		return fmt.Errorf("failed to resolve seeded genre %q: %w", album.genre, err)
	}

	if _, err := tx.Exec("INSERT OR IGNORE INTO album_genres (album_id, genre_id) VALUES (?, ?)", albumID, genreID); err != nil {
		return fmt.Errorf("failed to seed album genre for %q: %w", album.title, err)
	}

	for _, song := range album.songs {
		_, err := tx.Exec(`
			INSERT INTO songs (title, duration)
			SELECT ?, ?
			WHERE NOT EXISTS (SELECT 1 FROM songs WHERE title = ?)
		`, song.title, song.duration, song.title)
		if err != nil {
			return fmt.Errorf("failed to seed song %q: %w", song.title, err)
		}

		var songID int64
		if err := tx.QueryRow("SELECT id FROM songs WHERE title = ?", song.title).Scan(&songID); err != nil {
			return fmt.Errorf("failed to resolve seeded song %q: %w", song.title, err)
		}

		if _, err := tx.Exec("INSERT OR IGNORE INTO album_songs (album_id, song_id) VALUES (?, ?)", albumID, songID); err != nil {
			return fmt.Errorf("failed to seed album song %q: %w", song.title, err)
		}
		if _, err := tx.Exec("INSERT OR IGNORE INTO song_genres (song_id, genre_id) VALUES (?, ?)", songID, genreID); err != nil {
			return fmt.Errorf("failed to seed song genre %q: %w", song.title, err)
		}
	}

	return nil
}
