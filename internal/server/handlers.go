package server

import (
	"database/sql"
	"fmt"
	"net/http"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/sandro63/musicdb/internal/auth"
	"github.com/sandro63/musicdb/internal/models"
	"github.com/sandro63/musicdb/internal/repositories"
	"github.com/sandro63/musicdb/internal/shared"
)

// Server wires the repositories, session manager and renderer behind the
// admin interface's routes.
type Server struct {
	logger   *log.Logger
	renderer *Renderer
	sessions *auth.Sessions
	authn    *auth.Authenticator

	db      *sql.DB
	artists *repositories.ArtistRepository
	albums  *repositories.AlbumRepository
	songs   *repositories.SongRepository
	genres  *repositories.GenreRepository

	albumSongs  *repositories.AssociationRepository
	songGenres  *repositories.AssociationRepository
	albumGenres *repositories.AssociationRepository
}

// New builds a Server over an open database connection.
func New(cfg *shared.Config, db *sql.DB, logger *log.Logger) (*Server, error) {
	renderer, err := NewRenderer()
	if err != nil {
		return nil, fmt.Errorf("failed to build renderer: %w", err)
	}

	creds := auth.NewStaticCredentials(cfg.Auth)

	return &Server{
		logger:      logger,
		renderer:    renderer,
		sessions:    auth.NewSessions([]byte(cfg.Auth.Secret), creds),
		authn:       auth.NewAuthenticator(creds),
		db:          db,
		artists:     repositories.NewArtistRepository(db),
		albums:      repositories.NewAlbumRepository(db),
		songs:       repositories.NewSongRepository(db),
		genres:      repositories.NewGenreRepository(db),
		albumSongs:  repositories.NewAlbumSongRepository(db),
		songGenres:  repositories.NewSongGenreRepository(db),
		albumGenres: repositories.NewAlbumGenreRepository(db),
	}, nil
}

// Handler assembles the full route table behind the middleware stack.
func (s *Server) Handler() http.Handler {
	router := NewBasicRouter()
	router.Use(Recoverer(s.logger), RequestLogger(s.logger))

	router.HandleFunc("GET", "/{$}", s.home)
	router.Handle("GET", "/static/", http.FileServerFS(assets))

	router.HandleFunc("GET", "/auth/login", s.loginForm)
	router.HandleFunc("POST", "/auth/login", s.login)
	router.HandleFunc("GET", "/auth/logout", s.logout)

	router.HandleFunc("GET", "/artists/{$}", s.artistIndex)
	router.HandleFunc("GET", "/artists/new", s.artistForm)
	router.HandleFunc("POST", "/artists/new", s.artistCreate)
	router.HandleFunc("GET", "/artists/{id}/edit", s.artistForm)
	router.HandleFunc("POST", "/artists/{id}/edit", s.artistUpdate)
	router.HandleFunc("POST", "/artists/{id}/delete", s.artistDelete)

	router.HandleFunc("GET", "/albums/{$}", s.albumIndex)
	router.HandleFunc("GET", "/albums/new", s.albumForm)
	router.HandleFunc("POST", "/albums/new", s.albumCreate)
	router.HandleFunc("GET", "/albums/{id}/edit", s.albumForm)
	router.HandleFunc("POST", "/albums/{id}/edit", s.albumUpdate)
	router.HandleFunc("POST", "/albums/{id}/delete", s.albumDelete)

	router.HandleFunc("GET", "/songs/{$}", s.songIndex)
	router.HandleFunc("GET", "/songs/new", s.songForm)
	router.HandleFunc("POST", "/songs/new", s.songCreate)
	router.HandleFunc("GET", "/songs/{id}/edit", s.songForm)
	router.HandleFunc("POST", "/songs/{id}/edit", s.songUpdate)
	router.HandleFunc("POST", "/songs/{id}/delete", s.songDelete)

	router.HandleFunc("GET", "/genres/{$}", s.genreIndex)
	router.HandleFunc("GET", "/genres/new", s.genreForm)
	router.HandleFunc("POST", "/genres/new", s.genreCreate)
	router.HandleFunc("GET", "/genres/{id}/edit", s.genreForm)
	router.HandleFunc("POST", "/genres/{id}/edit", s.genreUpdate)
	router.HandleFunc("POST", "/genres/{id}/delete", s.genreDelete)

	for _, p := range s.associationPages() {
		router.HandleFunc("GET", p.base+"{$}", p.index)
		router.HandleFunc("POST", p.base+"add", p.add)
		router.HandleFunc("POST", p.base+"remove", p.remove)
	}

	return router
}

// pageData is the payload every template receives.
type pageData struct {
	Title    string
	Identity auth.Identity
	Flashes  []auth.Flash
	Data     map[string]any
}

// render draws a page with the caller's identity and any queued flashes.
func (s *Server) render(w http.ResponseWriter, r *http.Request, page, title string, data map[string]any) {
	pd := pageData{
		Title:    title,
		Identity: s.sessions.Identify(r),
		Flashes:  s.sessions.Flashes(w, r),
		Data:     data,
	}
	if err := s.renderer.Render(w, page, pd); err != nil {
		s.logger.Error("failed to render page", "page", page, "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}

// guard resolves the caller and enforces the operation's minimum tier. When
// the check fails it writes the redirect and reports false; handlers return
// immediately.
func (s *Server) guard(w http.ResponseWriter, r *http.Request, min auth.Tier) (auth.Identity, bool) {
	ident := s.sessions.Identify(r)
	out := auth.Guard(ident, min)
	switch out.Kind {
	case models.Success:
		return ident, true
	case models.AuthenticationRequired:
		s.sessions.Flash(w, r, "warning", out.Message)
		http.Redirect(w, r, "/auth/login", http.StatusSeeOther)
		return ident, false
	default:
		s.sessions.Flash(w, r, "danger", out.Message)
		http.Redirect(w, r, refererOr(r, "/"), http.StatusSeeOther)
		return ident, false
	}
}

// flashCategory maps an outcome kind to one of the four flash categories.
func flashCategory(kind models.OutcomeKind) string {
	switch kind {
	case models.Success:
		return "success"
	case models.AuthenticationRequired:
		return "warning"
	default:
		return "danger"
	}
}

// redirectOutcome flashes the outcome's message and redirects to target.
func (s *Server) redirectOutcome(w http.ResponseWriter, r *http.Request, out models.Outcome, target string) {
	if out.Message != "" {
		s.sessions.Flash(w, r, flashCategory(out.Kind), out.Message)
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// pathID parses the {id} path segment. A malformed id resolves to a
// not-found outcome, never a storage fault.
func pathID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("no such record: %w", shared.ErrNotFound)
	}
	return id, nil
}

// formID parses an id form field; blank or malformed means unset (0).
func formID(r *http.Request, field string) int64 {
	id, err := strconv.ParseInt(r.FormValue(field), 10, 64)
	if err != nil {
		return 0
	}
	return id
}

func (s *Server) counts() (repositories.Counts, error) {
	return repositories.CountAll(s.db)
}

func refererOr(r *http.Request, fallback string) string {
	if ref := r.Referer(); ref != "" {
		return ref
	}
	return fallback
}
