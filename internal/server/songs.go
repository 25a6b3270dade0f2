package server

import (
	"fmt"
	"net/http"

	"github.com/sandro63/musicdb/internal/auth"
	"github.com/sandro63/musicdb/internal/models"
)

func (s *Server) songIndex(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.guard(w, r, auth.TierMember); !ok {
		return
	}

	songs, err := s.songs.List()
	if err != nil {
		s.logger.Error("failed to list songs", "error", err)
		s.redirectOutcome(w, r, models.OutcomeOf(err), "/")
		return
	}

	s.render(w, r, "songs_index.html", "Songs", map[string]any{"Songs": songs})
}

func (s *Server) songForm(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.guard(w, r, auth.TierMember); !ok {
		return
	}

	song := &models.Song{}
	action := "Create"

	if r.PathValue("id") != "" {
		id, err := pathID(r)
		if err == nil {
			song, err = s.songs.Get(id)
		}
		if err != nil {
			s.redirectOutcome(w, r, models.OutcomeOf(err), "/songs/")
			return
		}
		action = "Update"
	}

	s.render(w, r, "songs_form.html", action+" Song", map[string]any{"Action": action, "Song": song})
}

// parseSongForm accepts durations either as seconds or in m:ss form.
func parseSongForm(r *http.Request, id int64) (*models.Song, error) {
	duration, err := models.ParseDuration(r.FormValue("duration"))
	if err != nil {
		return &models.Song{ID: id, Title: r.FormValue("title")}, err
	}
	return &models.Song{ID: id, Title: r.FormValue("title"), Duration: duration}, nil
}

func (s *Server) songCreate(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.guard(w, r, auth.TierMember); !ok {
		return
	}

	song, err := parseSongForm(r, 0)
	if err == nil {
		err = s.songs.Create(song)
	}
	if err != nil {
		out := models.OutcomeOf(err)
		s.sessions.Flash(w, r, flashCategory(out.Kind), out.Message)
		s.render(w, r, "songs_form.html", "Create Song", map[string]any{"Action": "Create", "Song": song})
		return
	}

	s.redirectOutcome(w, r, models.Succeeded(song.ID, fmt.Sprintf("Song %q created.", song.Title)), "/songs/")
}

func (s *Server) songUpdate(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.guard(w, r, auth.TierMember); !ok {
		return
	}

	id, err := pathID(r)
	if err != nil {
		s.redirectOutcome(w, r, models.OutcomeOf(err), "/songs/")
		return
	}

	song, err := parseSongForm(r, id)
	if err == nil {
		err = s.songs.Update(song)
	}
	if err != nil {
		out := models.OutcomeOf(err)
		if out.Kind == models.NotFound {
			s.redirectOutcome(w, r, out, "/songs/")
			return
		}
		s.sessions.Flash(w, r, flashCategory(out.Kind), out.Message)
		s.render(w, r, "songs_form.html", "Update Song", map[string]any{"Action": "Update", "Song": song})
		return
	}

	s.redirectOutcome(w, r, models.Succeeded(id, fmt.Sprintf("Song %q updated.", song.Title)), "/songs/")
}

func (s *Server) songDelete(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.guard(w, r, auth.TierOwner); !ok {
		return
	}

	id, err := pathID(r)
	if err == nil {
		err = s.songs.Delete(id)
	}
	if err != nil {
		s.redirectOutcome(w, r, models.OutcomeOf(err), "/songs/")
		return
	}

	s.redirectOutcome(w, r, models.Succeeded(id, "Song deleted."), "/songs/")
}
