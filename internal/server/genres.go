package server

import (
	"fmt"
	"net/http"

	"github.com/sandro63/musicdb/internal/auth"
	"github.com/sandro63/musicdb/internal/models"
)

func (s *Server) genreIndex(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.guard(w, r, auth.TierMember); !ok {
		return
	}

	genres, err := s.genres.List()
	if err != nil {
		s.logger.Error("failed to list genres", "error", err)
		s.redirectOutcome(w, r, models.OutcomeOf(err), "/")
		return
	}

	s.render(w, r, "genres_index.html", "Genres", map[string]any{"Genres": genres})
}

func (s *Server) genreForm(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.guard(w, r, auth.TierMember); !ok {
		return
	}

	genre := &models.Genre{}
	action := "Create"

	if r.PathValue("id") != "" {
		id, err := pathID(r)
		if err == nil {
			genre, err = s.genres.Get(id)
		}
		if err != nil {
			s.redirectOutcome(w, r, models.OutcomeOf(err), "/genres/")
			return
		}
		action = "Update"
	}

	s.render(w, r, "genres_form.html", action+" Genre", map[string]any{"Action": action, "Genre": genre})
}

func (s *Server) genreCreate(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.guard(w, r, auth.TierMember); !ok {
		return
	}

	genre := &models.Genre{Name: r.FormValue("name")}

	if err := s.genres.Create(genre); err != nil {
		out := models.OutcomeOf(err)
		s.sessions.Flash(w, r, flashCategory(out.Kind), out.Message)
		s.render(w, r, "genres_form.html", "Create Genre", map[string]any{"Action": "Create", "Genre": genre})
		return
	}

	s.redirectOutcome(w, r, models.Succeeded(genre.ID, fmt.Sprintf("Genre %q created.", genre.Name)), "/genres/")
}

func (s *Server) genreUpdate(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.guard(w, r, auth.TierMember); !ok {
		return
	}

	id, err := pathID(r)
	if err != nil {
		s.redirectOutcome(w, r, models.OutcomeOf(err), "/genres/")
		return
	}

	genre := &models.Genre{ID: id, Name: r.FormValue("name")}

	if err := s.genres.Update(genre); err != nil {
		out := models.OutcomeOf(err)
		if out.Kind == models.NotFound {
			s.redirectOutcome(w, r, out, "/genres/")
			return
		}
		s.sessions.Flash(w, r, flashCategory(out.Kind), out.Message)
		s.render(w, r, "genres_form.html", "Update Genre", map[string]any{"Action": "Update", "Genre": genre})
		return
	}

	s.redirectOutcome(w, r, models.Succeeded(id, fmt.Sprintf("Genre %q updated.", genre.Name)), "/genres/")
}

func (s *Server) genreDelete(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.guard(w, r, auth.TierOwner); !ok {
		return
	}

	id, err := pathID(r)
	if err == nil {
		err = s.genres.Delete(id)
	}
	if err != nil {
		s.redirectOutcome(w, r, models.OutcomeOf(err), "/genres/")
		return
	}

	s.redirectOutcome(w, r, models.Succeeded(id, "Genre deleted."), "/genres/")
}
