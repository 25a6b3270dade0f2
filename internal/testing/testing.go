// package testing contains shared testing utilities
package testing

import (
	"database/sql"
	"errors"
	"io"
	"testing"

	"github.com/sandro63/musicdb/internal/repositories"
	"github.com/sandro63/musicdb/internal/shared"
)

// NewTestDB opens an in-memory database with the full schema applied.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := shared.NewDatabase(":memory:")
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := shared.RunMigrations(db); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	return db
}

// NewSeededTestDB opens an in-memory database with the schema applied and the
// sample catalogue loaded.
func NewSeededTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db := NewTestDB(t)
	if err := repositories.Seed(db); err != nil {
		t.Fatalf("failed to seed test database: %v", err)
	}

	return db
}

// NewTestConfig returns a config with an in-memory database and a fixed
// account table: one superuser (admin) and one regular member (guest).
func NewTestConfig() *shared.Config {
	return &shared.Config{
		Database: shared.DatabaseConfig{Path: ":memory:"},
		Server:   shared.ServerConfig{Host: "127.0.0.1", Port: 8000},
		Auth: shared.AuthConfig{
			Secret:    "test-secret",
			Superuser: "admin",
			Users: []shared.AccountConfig{
				{Username: "admin", Password: "admin-pass"},
				{Username: "guest", Password: "guest-pass"},
			},
		},
	}
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// LimitedWriter fails after a certain number of writes
type LimitedWriter struct {
	maxWrites int
	written   int
	target    io.Writer
}

// NewLimitedWriter wraps target so it fails after maxWrites writes.
func NewLimitedWriter(target io.Writer, maxWrites int) *LimitedWriter {
	return &LimitedWriter{maxWrites: maxWrites, target: target}
}

func (l *LimitedWriter) Write(p []byte) (n int, err error) {
	if l.written >= l.maxWrites {
		return 0, errors.New("write limit exceeded")
	}
	l.written++
	return l.target.Write(p)
}
