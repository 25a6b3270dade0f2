package server

import (
	"fmt"
	"net/http"

	"github.com/sandro63/musicdb/internal/auth"
	"github.com/sandro63/musicdb/internal/models"
)

func (s *Server) artistIndex(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.guard(w, r, auth.TierMember); !ok {
		return
	}

	artists, err := s.artists.List()
	if err != nil {
		s.logger.Error("failed to list artists", "error", err)
		s.redirectOutcome(w, r, models.OutcomeOf(err), "/")
		return
	}

	s.render(w, r, "artists_index.html", "Artists", map[string]any{"Artists": artists})
}

// artistForm renders the create form, or the edit form when the path carries
// an id.
func (s *Server) artistForm(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.guard(w, r, auth.TierMember); !ok {
		return
	}

	artist := &models.Artist{}
	action := "Create"

	if r.PathValue("id") != "" {
		id, err := pathID(r)
		if err == nil {
			artist, err = s.artists.Get(id)
		}
		if err != nil {
			s.redirectOutcome(w, r, models.OutcomeOf(err), "/artists/")
			return
		}
		action = "Update"
	}

	s.render(w, r, "artists_form.html", action+" Artist", map[string]any{"Action": action, "Artist": artist})
}

func (s *Server) artistCreate(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.guard(w, r, auth.TierMember); !ok {
		return
	}

	artist := &models.Artist{Name: r.FormValue("name"), Bio: r.FormValue("bio")}

	if err := s.artists.Create(artist); err != nil {
		out := models.OutcomeOf(err)
		s.sessions.Flash(w, r, flashCategory(out.Kind), out.Message)
		s.render(w, r, "artists_form.html", "Create Artist", map[string]any{"Action": "Create", "Artist": artist})
		return
	}

	s.redirectOutcome(w, r, models.Succeeded(artist.ID, fmt.Sprintf("Artist %q created.", artist.Name)), "/artists/")
}

func (s *Server) artistUpdate(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.guard(w, r, auth.TierMember); !ok {
		return
	}

	id, err := pathID(r)
	if err != nil {
		s.redirectOutcome(w, r, models.OutcomeOf(err), "/artists/")
		return
	}

	artist := &models.Artist{ID: id, Name: r.FormValue("name"), Bio: r.FormValue("bio")}

	if err := s.artists.Update(artist); err != nil {
		out := models.OutcomeOf(err)
		if out.Kind == models.NotFound {
			s.redirectOutcome(w, r, out, "/artists/")
			return
		}
		s.sessions.Flash(w, r, flashCategory(out.Kind), out.Message)
		s.render(w, r, "artists_form.html", "Update Artist", map[string]any{"Action": "Update", "Artist": artist})
		return
	}

	s.redirectOutcome(w, r, models.Succeeded(id, fmt.Sprintf("Artist %q updated.", artist.Name)), "/artists/")
}

func (s *Server) artistDelete(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.guard(w, r, auth.TierOwner); !ok {
		return
	}

	id, err := pathID(r)
	if err == nil {
		err = s.artists.Delete(id)
	}
	if err != nil {
		s.redirectOutcome(w, r, models.OutcomeOf(err), "/artists/")
		return
	}

	s.redirectOutcome(w, r, models.Succeeded(id, "Artist deleted."), "/artists/")
}
