package models

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/sandro63/musicdb/internal/shared"
)

// Artist is a recording artist. Name is unique across the catalogue; Bio is
// free text and optional.
type Artist struct {
	ID   int64
	Name string
	Bio  string
}

// Validate normalizes text fields and checks required ones.
func (a *Artist) Validate() error {
	a.Name = strings.TrimSpace(a.Name)
	a.Bio = strings.TrimSpace(a.Bio)
	if a.Name == "" {
		return fmt.Errorf("artist name is required: %w", shared.ErrValidation)
	}
	return nil
}

// Album belongs to exactly one artist. ReleaseYear is optional.
type Album struct {
	ID          int64
	Title       string
	ArtistID    int64
	ReleaseYear *int
}

func (a *Album) Validate() error {
	a.Title = strings.TrimSpace(a.Title)
	if a.Title == "" {
		return fmt.Errorf("album title is required: %w", shared.ErrValidation)
	}
	if a.ArtistID <= 0 {
		return fmt.Errorf("album artist is required: %w", shared.ErrValidation)
	}
	if a.ReleaseYear != nil && *a.ReleaseYear < 0 {
		return fmt.Errorf("release year must not be negative: %w", shared.ErrValidation)
	}
	return nil
}

// AlbumRow is an album enriched with its artist's display name for list views.
type AlbumRow struct {
	Album
	ArtistName string
}

// Song stores its duration in whole seconds; duration is optional.
type Song struct {
	ID       int64
	Title    string
	Duration *int
}

func (s *Song) Validate() error {
	s.Title = strings.TrimSpace(s.Title)
	if s.Title == "" {
		return fmt.Errorf("song title is required: %w", shared.ErrValidation)
	}
	if s.Duration != nil && *s.Duration < 0 {
		return fmt.Errorf("duration must not be negative: %w", shared.ErrValidation)
	}
	return nil
}

// Genre names are unique across the catalogue.
type Genre struct {
	ID   int64
	Name string
}

func (g *Genre) Validate() error {
	g.Name = strings.TrimSpace(g.Name)
	if g.Name == "" {
		return fmt.Errorf("genre name is required: %w", shared.ErrValidation)
	}
	return nil
}

// AlbumSong links a song to an album it appears on.
type AlbumSong struct {
	AlbumID int64
	SongID  int64
}

// SongGenre links a song to a genre.
type SongGenre struct {
	SongID  int64
	GenreID int64
}

// AlbumGenre links an album to a genre.
type AlbumGenre struct {
	AlbumID int64
	GenreID int64
}

// AssociationRow is a junction record resolved to both sides' display names.
type AssociationRow struct {
	ParentID   int64
	ParentName string
	ChildID    int64
	ChildName  string
}

// Ref is an (id, display name) pair used to populate form select options.
type Ref struct {
	ID   int64
	Name string
}

// ParseDuration parses a song duration given either as plain seconds ("215")
// or in m:ss form ("3:35"). Empty input means no duration.
func ParseDuration(input string) (*int, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil, nil
	}

	if m, s, ok := strings.Cut(input, ":"); ok {
		minutes, err := strconv.Atoi(strings.TrimSpace(m))
		if err != nil {
			return nil, fmt.Errorf("duration %q is not a number or m:ss value: %w", input, shared.ErrValidation)
		}
		seconds, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil || seconds < 0 || minutes < 0 {
			return nil, fmt.Errorf("duration %q is not a number or m:ss value: %w", input, shared.ErrValidation)
		}
		total := minutes*60 + seconds
		return &total, nil
	}

	seconds, err := strconv.Atoi(input)
	if err != nil || seconds < 0 {
		return nil, fmt.Errorf("duration %q is not a number or m:ss value: %w", input, shared.ErrValidation)
	}
	return &seconds, nil
}

// FormatDuration renders seconds in m:ss form for display; nil renders empty.
func FormatDuration(seconds *int) string {
	if seconds == nil {
		return ""
	}
	return fmt.Sprintf("%d:%02d", *seconds/60, *seconds%60)
}

// ParseYear parses an optional non-negative year field. Empty input means no year.
func ParseYear(input string) (*int, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil, nil
	}
	year, err := strconv.Atoi(input)
	if err != nil || year < 0 {
		return nil, fmt.Errorf("release year %q is not a valid year: %w", input, shared.ErrValidation)
	}
	return &year, nil
}
