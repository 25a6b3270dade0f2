package server

import (
	"database/sql"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/sandro63/musicdb/internal/shared"
	tu "github.com/sandro63/musicdb/internal/testing"
)

// newTestServer starts the full handler stack over a seeded in-memory
// database. The accounts come from [tu.NewTestConfig]: admin (superuser) and
// guest (member).
func newTestServer(t *testing.T) (*httptest.Server, *sql.DB) {
	t.Helper()

	db := tu.NewSeededTestDB(t)
	logger := shared.NewLogger(io.Discard)

	srv, err := New(tu.NewTestConfig(), db, logger)
	if err != nil {
		t.Fatalf("failed to build server: %v", err)
	}

	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts, db
}

// newClient returns a client with a cookie jar so sessions and flashes
// survive across requests, following redirects like a browser would.
func newClient(t *testing.T) *http.Client {
	t.Helper()

	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("failed to create cookie jar: %v", err)
	}
	return &http.Client{Jar: jar}
}

func get(t *testing.T, client *http.Client, url string) (string, *http.Response) {
	t.Helper()

	resp, err := client.Get(url)
	if err != nil {
		t.Fatalf("GET %s failed: %v", url, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("failed to read body: %v", err)
	}
	return string(body), resp
}

func postForm(t *testing.T, client *http.Client, target string, form url.Values) (string, *http.Response) {
	t.Helper()

	resp, err := client.PostForm(target, form)
	if err != nil {
		t.Fatalf("POST %s failed: %v", target, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("failed to read body: %v", err)
	}
	return string(body), resp
}

func login(t *testing.T, client *http.Client, ts *httptest.Server, username, password string) {
	t.Helper()

	body, resp := postForm(t, client, ts.URL+"/auth/login", url.Values{
		"username": {username},
		"password": {password},
	})
	if resp.Request.URL.Path != "/" {
		t.Fatalf("expected login to land on /, got %s (body: %.200s)", resp.Request.URL.Path, body)
	}
}

func TestAuthFlow(t *testing.T) {
	t.Run("anonymous caller is sent to the login page", func(t *testing.T) {
		ts, _ := newTestServer(t)
		client := newClient(t)

		body, resp := get(t, client, ts.URL+"/")
		if resp.Request.URL.Path != "/auth/login" {
			t.Errorf("expected to land on /auth/login, got %s", resp.Request.URL.Path)
		}
		if !strings.Contains(body, "Please sign in") {
			t.Errorf("expected sign-in prompt, got %.300s", body)
		}
	})

	t.Run("wrong password re-renders the form with a generic message", func(t *testing.T) {
		ts, _ := newTestServer(t)
		client := newClient(t)

		body, _ := postForm(t, client, ts.URL+"/auth/login", url.Values{
			"username": {"guest"},
			"password": {"wrong"},
		})
		if !strings.Contains(body, "Invalid username or password.") {
			t.Errorf("expected generic failure message, got %.300s", body)
		}
	})

	t.Run("member sees the dashboard after login", func(t *testing.T) {
		ts, _ := newTestServer(t)
		client := newClient(t)

		login(t, client, ts, "guest", "guest-pass")

		body, _ := get(t, client, ts.URL+"/")
		if !strings.Contains(body, "Dashboard") {
			t.Errorf("expected dashboard, got %.300s", body)
		}
		if !strings.Contains(body, "48") {
			t.Error("expected song count on dashboard")
		}
	})

	t.Run("logout clears the session", func(t *testing.T) {
		ts, _ := newTestServer(t)
		client := newClient(t)

		login(t, client, ts, "guest", "guest-pass")

		body, resp := get(t, client, ts.URL+"/auth/logout")
		if resp.Request.URL.Path != "/auth/login" {
			t.Errorf("expected to land on /auth/login, got %s", resp.Request.URL.Path)
		}
		if !strings.Contains(body, "You have been signed out.") {
			t.Errorf("expected sign-out message, got %.300s", body)
		}

		if _, resp := get(t, client, ts.URL+"/artists/"); resp.Request.URL.Path != "/auth/login" {
			t.Errorf("expected protected page to redirect after logout, got %s", resp.Request.URL.Path)
		}
	})
}

func TestEntityPages(t *testing.T) {
	ts, _ := newTestServer(t)
	client := newClient(t)
	login(t, client, ts, "guest", "guest-pass")

	cases := []struct {
		path     string
		contains []string
	}{
		{"/artists/", []string{"Selene Vega", "The Midnight Harbor"}},
		{"/albums/", []string{"Harbor Lights", "Luz y Sombra", "2019"}},
		{"/songs/", []string{"Saltwater", "3:34"}},
		{"/genres/", []string{"Synthpop", "Folk"}},
		{"/album-songs/", []string{"Evergreen Sessions", "Timberline"}},
	}

	for _, tc := range cases {
		t.Run(tc.path, func(t *testing.T) {
			body, resp := get(t, client, ts.URL+tc.path)
			if resp.StatusCode != http.StatusOK {
				t.Fatalf("expected 200, got %d", resp.StatusCode)
			}
			for _, want := range tc.contains {
				if !strings.Contains(body, want) {
					t.Errorf("expected page to contain %q", want)
				}
			}
		})
	}
}

func TestGenreLifecycle(t *testing.T) {
	ts, db := newTestServer(t)
	guest := newClient(t)
	login(t, guest, ts, "guest", "guest-pass")

	t.Run("member creates a genre", func(t *testing.T) {
		body, resp := postForm(t, guest, ts.URL+"/genres/new", url.Values{"name": {"Ambient"}})
		if resp.Request.URL.Path != "/genres/" {
			t.Errorf("expected redirect to index, got %s", resp.Request.URL.Path)
		}
		if !strings.Contains(body, "Ambient") || !strings.Contains(body, "created") {
			t.Errorf("expected creation flash and listing, got %.300s", body)
		}
	})

	t.Run("duplicate name is rejected", func(t *testing.T) {
		body, _ := postForm(t, guest, ts.URL+"/genres/new", url.Values{"name": {"Ambient"}})
		if !strings.Contains(body, "already exists") {
			t.Errorf("expected duplicate message, got %.300s", body)
		}
	})

	t.Run("blank name is rejected with prior input kept", func(t *testing.T) {
		body, _ := postForm(t, guest, ts.URL+"/genres/new", url.Values{"name": {"   "}})
		if !strings.Contains(body, "required") {
			t.Errorf("expected validation message, got %.300s", body)
		}
	})

	var genreID string
	if err := db.QueryRow("SELECT id FROM genres WHERE name = 'Ambient'").Scan(&genreID); err != nil {
		t.Fatalf("failed to find created genre: %v", err)
	}

	t.Run("member cannot delete", func(t *testing.T) {
		body, _ := postForm(t, guest, ts.URL+"/genres/"+genreID+"/delete", nil)
		if !strings.Contains(body, "Only the superuser can delete records.") {
			t.Errorf("expected forbidden message, got %.300s", body)
		}

		var count int
		if err := db.QueryRow("SELECT COUNT(*) FROM genres WHERE name = 'Ambient'").Scan(&count); err != nil {
			t.Fatalf("failed to count genres: %v", err)
		}
		if count != 1 {
			t.Error("expected genre to survive the forbidden delete")
		}
	})

	t.Run("superuser deletes", func(t *testing.T) {
		admin := newClient(t)
		login(t, admin, ts, "admin", "admin-pass")

		body, resp := postForm(t, admin, ts.URL+"/genres/"+genreID+"/delete", nil)
		if resp.Request.URL.Path != "/genres/" {
			t.Errorf("expected redirect to index, got %s", resp.Request.URL.Path)
		}
		if !strings.Contains(body, "Genre deleted.") {
			t.Errorf("expected deletion flash, got %.300s", body)
		}

		var count int
		if err := db.QueryRow("SELECT COUNT(*) FROM genres WHERE name = 'Ambient'").Scan(&count); err != nil {
			t.Fatalf("failed to count genres: %v", err)
		}
		if count != 0 {
			t.Error("expected genre to be gone")
		}
	})

	t.Run("deleting a referenced genre is rejected", func(t *testing.T) {
		admin := newClient(t)
		login(t, admin, ts, "admin", "admin-pass")

		var folkID string
		if err := db.QueryRow("SELECT id FROM genres WHERE name = 'Folk'").Scan(&folkID); err != nil {
			t.Fatalf("failed to find seeded genre: %v", err)
		}

		body, _ := postForm(t, admin, ts.URL+"/genres/"+folkID+"/delete", nil)
		if !strings.Contains(body, "still has") {
			t.Errorf("expected dependents message, got %.300s", body)
		}

		var count int
		if err := db.QueryRow("SELECT COUNT(*) FROM genres WHERE name = 'Folk'").Scan(&count); err != nil {
			t.Fatalf("failed to count genres: %v", err)
		}
		if count != 1 {
			t.Error("expected genre to survive the rejected delete")
		}
	})
}

func TestAssociationRoutes(t *testing.T) {
	ts, db := newTestServer(t)
	admin := newClient(t)
	login(t, admin, ts, "admin", "admin-pass")

	var albumID, songID string
	if err := db.QueryRow("SELECT id FROM albums WHERE title = 'Harbor Lights'").Scan(&albumID); err != nil {
		t.Fatalf("failed to find seeded album: %v", err)
	}
	if err := db.QueryRow("SELECT id FROM songs WHERE title = 'Amanecer'").Scan(&songID); err != nil {
		t.Fatalf("failed to find seeded song: %v", err)
	}

	t.Run("add", func(t *testing.T) {
		body, resp := postForm(t, admin, ts.URL+"/album-songs/add", url.Values{
			"album_id": {albumID},
			"song_id":  {songID},
		})
		if resp.Request.URL.Path != "/album-songs/" {
			t.Errorf("expected redirect to index, got %s", resp.Request.URL.Path)
		}
		if !strings.Contains(body, "Association added.") {
			t.Errorf("expected success flash, got %.300s", body)
		}
	})

	t.Run("add duplicate", func(t *testing.T) {
		body, _ := postForm(t, admin, ts.URL+"/album-songs/add", url.Values{
			"album_id": {albumID},
			"song_id":  {songID},
		})
		if !strings.Contains(body, "already exists") {
			t.Errorf("expected duplicate message, got %.300s", body)
		}
	})

	t.Run("add with nothing selected", func(t *testing.T) {
		body, _ := postForm(t, admin, ts.URL+"/album-songs/add", nil)
		if !strings.Contains(body, "required") {
			t.Errorf("expected validation message, got %.300s", body)
		}
	})

	t.Run("remove", func(t *testing.T) {
		body, _ := postForm(t, admin, ts.URL+"/album-songs/remove", url.Values{
			"album_id": {albumID},
			"song_id":  {songID},
		})
		if !strings.Contains(body, "Association removed.") {
			t.Errorf("expected success flash, got %.300s", body)
		}
	})

	t.Run("remove again is a polite no-op", func(t *testing.T) {
		body, _ := postForm(t, admin, ts.URL+"/album-songs/remove", url.Values{
			"album_id": {albumID},
			"song_id":  {songID},
		})
		if !strings.Contains(body, "nothing removed") {
			t.Errorf("expected no-op message, got %.300s", body)
		}
	})
}
