// Package config loads and validates application configuration from environment variables.
package config

import (
	"fmt"
	"os"
	"strings"
)

// Storage backend selectors for Config.Storage.
const (
	StorageSQLite   = "sqlite"
	StorageWorkbook = "workbook"
)

// Config holds all configuration values for the API server.
// Values are populated by Load from environment variables; every value has
// a default, so the server starts with an empty environment.
type Config struct {
	// Port is the TCP port the HTTP server listens on. Defaults to "8080".
	Port string

	// LogLevel controls the minimum log level. Defaults to "info".
	// Valid values: debug, info, warn, error.
	LogLevel string

	// Storage selects the persistence backend: "sqlite" (default) or
	// "workbook" (one CSV section per driver).
	Storage string

	// DataPath is the SQLite database file. Defaults to "data/trips.db".
	// The parent directory is created on startup if missing.
	DataPath string

	// WorkbookDir is the section directory for the workbook backend.
	// Defaults to "data/workbook".
	WorkbookDir string

	// Drivers is the fixed set of drivers trips may be logged for.
	// Set DRIVERS to a comma-separated list to override the default
	// "Prem,Ajith,Wilson".
	Drivers []string

	// CORSOrigins is the list of allowed cross-origin request origins.
	// Defaults to ["http://localhost:5173"] (Vite dev server).
	// Set CORS_ORIGINS to a comma-separated list to override.
	CORSOrigins []string
}

// Load reads configuration from environment variables and returns a Config.
func Load() (Config, error) {
	cfg := Config{
		Port:        getEnv("PORT", "8080"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		Storage:     getEnv("STORAGE", StorageSQLite),
		DataPath:    getEnv("DATA_PATH", "data/trips.db"),
		WorkbookDir: getEnv("WORKBOOK_DIR", "data/workbook"),
		Drivers:     splitCSV(getEnv("DRIVERS", "Prem,Ajith,Wilson")),
		CORSOrigins: splitCSV(getEnv("CORS_ORIGINS", "http://localhost:5173")),
	}

	if cfg.Storage != StorageSQLite && cfg.Storage != StorageWorkbook {
		return Config{}, fmt.Errorf("STORAGE must be %q or %q, got %q",
			StorageSQLite, StorageWorkbook, cfg.Storage)
	}
	if len(cfg.Drivers) == 0 {
		return Config{}, fmt.Errorf("DRIVERS must name at least one driver")
	}

	return cfg, nil
}

// getEnv returns the value of the environment variable named by key,
// or fallback if the variable is not set or is empty.
func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// splitCSV splits a comma-separated string into a trimmed slice, ignoring empty entries.
func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}
