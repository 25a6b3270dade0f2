package server

import (
	"net/http"

	"github.com/sandro63/musicdb/internal/auth"
)

// loginForm shows the sign-in page; an already-authenticated caller is sent home.
func (s *Server) loginForm(w http.ResponseWriter, r *http.Request) {
	if s.sessions.Identify(r).Tier != auth.TierAnonymous {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	s.render(w, r, "login.html", "Sign In", nil)
}

// login processes credentials. Any failure, unknown username or wrong
// password alike, re-renders the form with one generic message.
func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	if s.sessions.Identify(r).Tier != auth.TierAnonymous {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	ident, err := s.authn.Login(r.RemoteAddr, r.FormValue("username"), r.FormValue("password"))
	if err != nil {
		s.sessions.Flash(w, r, "danger", "Invalid username or password.")
		s.render(w, r, "login.html", "Sign In", nil)
		return
	}

	if err := s.sessions.SignIn(w, r, ident.Username); err != nil {
		s.logger.Error("failed to establish session", "error", err)
		s.sessions.Flash(w, r, "danger", "Could not sign you in; please try again.")
		s.render(w, r, "login.html", "Sign In", nil)
		return
	}

	next := r.URL.Query().Get("next")
	if next == "" || next[0] != '/' {
		next = "/"
	}
	http.Redirect(w, r, next, http.StatusSeeOther)
}

// logout clears the session unconditionally.
func (s *Server) logout(w http.ResponseWriter, r *http.Request) {
	if err := s.sessions.SignOut(w, r); err != nil {
		s.logger.Error("failed to clear session", "error", err)
	}
	s.sessions.Flash(w, r, "info", "You have been signed out.")
	http.Redirect(w, r, "/auth/login", http.StatusSeeOther)
}

// home renders the dashboard with per-table row counts.
func (s *Server) home(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.guard(w, r, auth.TierMember); !ok {
		return
	}

	counts, err := s.counts()
	if err != nil {
		s.logger.Error("failed to count tables", "error", err)
		s.sessions.Flash(w, r, "danger", "Could not load the dashboard.")
	}

	s.render(w, r, "home.html", "Dashboard", map[string]any{"Counts": counts})
}
