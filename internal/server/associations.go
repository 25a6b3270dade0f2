package server

import (
	"fmt"
	"net/http"

	"github.com/sandro63/musicdb/internal/auth"
	"github.com/sandro63/musicdb/internal/models"
	"github.com/sandro63/musicdb/internal/repositories"
)

// associationPage serves one junction table's list/add/remove routes. The
// three junctions share handlers; only the repository, labels and option
// loaders differ.
type associationPage struct {
	s           *Server
	repo        *repositories.AssociationRepository
	base        string
	title       string
	parentField string
	childField  string
	parentRefs  func() ([]models.Ref, error)
	childRefs   func() ([]models.Ref, error)
}

func (s *Server) associationPages() []*associationPage {
	return []*associationPage{
		{
			s: s, repo: s.albumSongs,
			base: "/album-songs/", title: "Album Songs",
			parentField: "album_id", childField: "song_id",
			parentRefs: s.albums.Refs, childRefs: s.songs.Refs,
		},
		{
			s: s, repo: s.songGenres,
			base: "/song-genres/", title: "Song Genres",
			parentField: "song_id", childField: "genre_id",
			parentRefs: s.songs.Refs, childRefs: s.genres.Refs,
		},
		{
			s: s, repo: s.albumGenres,
			base: "/album-genres/", title: "Album Genres",
			parentField: "album_id", childField: "genre_id",
			parentRefs: s.albums.Refs, childRefs: s.genres.Refs,
		},
	}
}

func (p *associationPage) index(w http.ResponseWriter, r *http.Request) {
	if _, ok := p.s.guard(w, r, auth.TierMember); !ok {
		return
	}

	rows, err := p.repo.List()
	if err == nil {
		var parents, children []models.Ref
		if parents, err = p.parentRefs(); err == nil {
			if children, err = p.childRefs(); err == nil {
				parentLabel, childLabel := p.repo.Labels()
				p.s.render(w, r, "associations_index.html", p.title, map[string]any{
					"Rows":        rows,
					"Base":        p.base,
					"ParentField": p.parentField,
					"ChildField":  p.childField,
					"ParentLabel": parentLabel,
					"ChildLabel":  childLabel,
					"Parents":     parents,
					"Children":    children,
				})
				return
			}
		}
	}

	p.s.logger.Error("failed to load association page", "page", p.title, "error", err)
	p.s.redirectOutcome(w, r, models.OutcomeOf(err), "/")
}

func (p *associationPage) add(w http.ResponseWriter, r *http.Request) {
	if _, ok := p.s.guard(w, r, auth.TierMember); !ok {
		return
	}

	parentID := formID(r, p.parentField)
	childID := formID(r, p.childField)

	if err := p.repo.Add(parentID, childID); err != nil {
		p.s.redirectOutcome(w, r, models.OutcomeOf(err), p.base)
		return
	}

	p.s.redirectOutcome(w, r, models.Succeeded(parentID, "Association added."), p.base)
}

func (p *associationPage) remove(w http.ResponseWriter, r *http.Request) {
	if _, ok := p.s.guard(w, r, auth.TierOwner); !ok {
		return
	}

	parentID := formID(r, p.parentField)
	childID := formID(r, p.childField)

	removed, err := p.repo.Remove(parentID, childID)
	if err != nil {
		p.s.redirectOutcome(w, r, models.OutcomeOf(err), p.base)
		return
	}

	if !removed {
		parentLabel, childLabel := p.repo.Labels()
		p.s.sessions.Flash(w, r, "info", fmt.Sprintf("No such %s/%s association; nothing removed.", parentLabel, childLabel))
		http.Redirect(w, r, p.base, http.StatusSeeOther)
		return
	}

	p.s.redirectOutcome(w, r, models.Succeeded(parentID, "Association removed."), p.base)
}
