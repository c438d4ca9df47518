// Package testutil provides shared helpers for integration tests.
// The store under test is an in-memory SQLite database, so no external
// service or environment variable is needed — repo tests always run.
package testutil

import (
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3" // registers "sqlite3" for database/sql

	"github.com/Harishumapathy08/tripdata/internal/sqlitedb"
)

// NewDB opens a fresh in-memory SQLite database with the authoritative
// schema applied via the embedded goose migrations. Using the real
// migrations here (rather than a hand-copied CREATE TABLE) keeps test and
// production schemas from drifting.
//
// Each call returns an isolated database; it is closed automatically when
// the test (and all its subtests) finish.
func NewDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("testutil.NewDB: open: %v", err)
	}
	// An in-memory database evaporates when its last connection closes.
	// Pin the pool to one connection so every query sees the same store.
	db.SetMaxOpenConns(1)

	if err := sqlitedb.Migrate(db); err != nil {
		db.Close()
		t.Fatalf("testutil.NewDB: migrate: %v", err)
	}

	t.Cleanup(func() { db.Close() })
	return db
}
