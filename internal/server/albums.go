package server

import (
	"fmt"
	"net/http"

	"github.com/sandro63/musicdb/internal/auth"
	"github.com/sandro63/musicdb/internal/models"
)

func (s *Server) albumIndex(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.guard(w, r, auth.TierMember); !ok {
		return
	}

	albums, err := s.albums.List()
	if err != nil {
		s.logger.Error("failed to list albums", "error", err)
		s.redirectOutcome(w, r, models.OutcomeOf(err), "/")
		return
	}

	s.render(w, r, "albums_index.html", "Albums", map[string]any{"Albums": albums})
}

// renderAlbumForm loads the artist options every album form needs.
func (s *Server) renderAlbumForm(w http.ResponseWriter, r *http.Request, action string, album *models.Album) {
	artists, err := s.artists.Refs()
	if err != nil {
		s.logger.Error("failed to load artist options", "error", err)
		s.redirectOutcome(w, r, models.OutcomeOf(err), "/albums/")
		return
	}

	s.render(w, r, "albums_form.html", action+" Album", map[string]any{
		"Action":  action,
		"Album":   album,
		"Artists": artists,
	})
}

func (s *Server) albumForm(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.guard(w, r, auth.TierMember); !ok {
		return
	}

	album := &models.Album{}
	action := "Create"

	if r.PathValue("id") != "" {
		id, err := pathID(r)
		if err == nil {
			album, err = s.albums.Get(id)
		}
		if err != nil {
			s.redirectOutcome(w, r, models.OutcomeOf(err), "/albums/")
			return
		}
		action = "Update"
	}

	s.renderAlbumForm(w, r, action, album)
}

// parseAlbumForm builds an album from form fields; a malformed year is a
// validation failure before storage is touched.
func parseAlbumForm(r *http.Request, id int64) (*models.Album, error) {
	year, err := models.ParseYear(r.FormValue("release_year"))
	if err != nil {
		return &models.Album{ID: id, Title: r.FormValue("title"), ArtistID: formID(r, "artist_id")}, err
	}
	return &models.Album{
		ID:          id,
		Title:       r.FormValue("title"),
		ArtistID:    formID(r, "artist_id"),
		ReleaseYear: year,
	}, nil
}

func (s *Server) albumCreate(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.guard(w, r, auth.TierMember); !ok {
		return
	}

	album, err := parseAlbumForm(r, 0)
	if err == nil {
		err = s.albums.Create(album)
	}
	if err != nil {
		out := models.OutcomeOf(err)
		s.sessions.Flash(w, r, flashCategory(out.Kind), out.Message)
		s.renderAlbumForm(w, r, "Create", album)
		return
	}

	s.redirectOutcome(w, r, models.Succeeded(album.ID, fmt.Sprintf("Album %q created.", album.Title)), "/albums/")
}

func (s *Server) albumUpdate(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.guard(w, r, auth.TierMember); !ok {
		return
	}

	id, err := pathID(r)
	if err != nil {
		s.redirectOutcome(w, r, models.OutcomeOf(err), "/albums/")
		return
	}

	album, err := parseAlbumForm(r, id)
	if err == nil {
		err = s.albums.Update(album)
	}
	if err != nil {
		out := models.OutcomeOf(err)
		if out.Kind == models.NotFound {
			s.redirectOutcome(w, r, out, "/albums/")
			return
		}
		s.sessions.Flash(w, r, flashCategory(out.Kind), out.Message)
		s.renderAlbumForm(w, r, "Update", album)
		return
	}

	s.redirectOutcome(w, r, models.Succeeded(id, fmt.Sprintf("Album %q updated.", album.Title)), "/albums/")
}

func (s *Server) albumDelete(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.guard(w, r, auth.TierOwner); !ok {
		return
	}

	id, err := pathID(r)
	if err == nil {
		err = s.albums.Delete(id)
	}
	if err != nil {
		s.redirectOutcome(w, r, models.OutcomeOf(err), "/albums/")
		return
	}

	s.redirectOutcome(w, r, models.Succeeded(id, "Album deleted."), "/albums/")
}
