package auth

import (
	"encoding/gob"
	"fmt"
	"net/http"

	"github.com/gorilla/sessions"
)

const sessionName = "musicdb_session"

// Flash is a categorized message queued in the session for the next page
// render. Category is one of success, danger, warning, info.
type Flash struct {
	Category string
	Message  string
}

func init() {
	gob.Register(Flash{})
}

// Sessions binds identities to signed cookies. The cookie only carries the
// username; the tier is re-resolved from the credential store on every
// request, so removing an account invalidates its sessions immediately.
type Sessions struct {
	store *sessions.CookieStore
	creds CredentialStore
}

// NewSessions creates a session manager signing cookies with the given secret.
func NewSessions(secret []byte, creds CredentialStore) *Sessions {
	store := sessions.NewCookieStore(secret)
	store.Options = &sessions.Options{
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   86400 * 7,
	}
	return &Sessions{store: store, creds: creds}
}

// Identify resolves the request's session cookie to an identity. An absent,
// malformed or tampered cookie, or a username no longer in the credential
// store, resolves to [Anonymous].
func (s *Sessions) Identify(r *http.Request) Identity {
	sess, err := s.store.Get(r, sessionName)
	if err != nil {
		return Anonymous
	}

	username, ok := sess.Values["username"].(string)
	if !ok || username == "" {
		return Anonymous
	}

	cred, ok := s.creds.Resolve(username)
	if !ok {
		return Anonymous
	}

	return Identity{Username: username, Tier: cred.Tier}
}

// SignIn binds the session to the given username.
func (s *Sessions) SignIn(w http.ResponseWriter, r *http.Request, username string) error {
	sess, _ := s.store.Get(r, sessionName)
	sess.Values["username"] = username
	if err := sess.Save(r, w); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

// SignOut clears the session binding unconditionally.
func (s *Sessions) SignOut(w http.ResponseWriter, r *http.Request) error {
	// The cookie itself stays so a sign-out flash can still be delivered;
	// with no username bound it identifies as Anonymous.
	sess, _ := s.store.Get(r, sessionName)
	delete(sess.Values, "username")
	if err := sess.Save(r, w); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}

// Flash queues a categorized message for the next rendered page.
func (s *Sessions) Flash(w http.ResponseWriter, r *http.Request, category, message string) {
	sess, _ := s.store.Get(r, sessionName)
	sess.AddFlash(Flash{Category: category, Message: message})
	// Save errors here would only drop a notification, not corrupt state.
	_ = sess.Save(r, w)
}

// Flashes drains and returns all queued messages.
func (s *Sessions) Flashes(w http.ResponseWriter, r *http.Request) []Flash {
	sess, _ := s.store.Get(r, sessionName)
	raw := sess.Flashes()
	if len(raw) == 0 {
		return nil
	}
	_ = sess.Save(r, w)

	flashes := make([]Flash, 0, len(raw))
	for _, f := range raw {
		if flash, ok := f.(Flash); ok {
			flashes = append(flashes, flash)
		}
	}
	return flashes
}
