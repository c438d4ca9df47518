// Package sqlitedb opens and prepares the embedded SQLite store.
// It owns the open → ping → migrate bootstrap sequence and the self-healing
// path for a missing or corrupt database file.
package sqlitedb

import (
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3" // registers the "sqlite3" driver
	"github.com/pressly/goose/v3"

	"github.com/Harishumapathy08/tripdata/migrations"
)

// Open opens (creating if necessary) the SQLite database at path, verifies
// it, and brings the schema up to date with the embedded goose migrations.
//
// If the file exists but cannot be opened or migrated — a truncated or
// corrupt database — it is moved aside with a ".corrupt-<timestamp>" suffix
// and the open is retried once against a fresh, empty file. A store that is
// merely missing is never an error; it is created correctly shaped.
//
// The returned handle is constructed once at process start and passed
// explicitly into the repos; nothing holds it as package state.
func Open(path string) (*sql.DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("sqlitedb.Open: create data directory: %w", err)
	}

	db, err := open(path)
	if err == nil {
		return db, nil
	}

	// Self-healing: only retry when there is an existing file to move aside.
	if _, statErr := os.Stat(path); statErr != nil {
		return nil, fmt.Errorf("sqlitedb.Open: %w", err)
	}
	quarantined := path + ".corrupt-" + time.Now().UTC().Format("20060102T150405")
	if renameErr := os.Rename(path, quarantined); renameErr != nil {
		return nil, fmt.Errorf("sqlitedb.Open: quarantine corrupt store: %w", renameErr)
	}
	slog.Warn("store unreadable, recreating empty",
		"path", path, "quarantined", quarantined, "error", err)

	db, err = open(path)
	if err != nil {
		return nil, fmt.Errorf("sqlitedb.Open: retry after quarantine: %w", err)
	}
	return db, nil
}

// open performs one open/ping/migrate attempt.
func open(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping: %w", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}
	if err := Migrate(db); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// Migrate applies all pending embedded migrations to db.
// Exposed so the test helper can prepare in-memory databases
// against the authoritative schema instead of a hand-copied one.
func Migrate(db *sql.DB) error {
	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("migrate: set dialect: %w", err)
	}
	if err := goose.Up(db, "."); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}
