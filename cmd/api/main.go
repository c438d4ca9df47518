// Package main is the entry point for the trip ledger API server.
// Its sole responsibility is wiring dependencies together and starting the server.
// No business logic belongs here.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"

	"github.com/Harishumapathy08/tripdata/internal/config"
	"github.com/Harishumapathy08/tripdata/internal/domain"
	"github.com/Harishumapathy08/tripdata/internal/handler"
	"github.com/Harishumapathy08/tripdata/internal/middleware"
	"github.com/Harishumapathy08/tripdata/internal/repo"
	"github.com/Harishumapathy08/tripdata/internal/service"
	"github.com/Harishumapathy08/tripdata/internal/sqlitedb"
)

// maxBodySize caps submission bodies; a trip record is a few hundred bytes.
const maxBodySize = 1 << 20 // 1 MiB

func main() {
	// --- Config -----------------------------------------------------------
	// .env is a local-development convenience; absence is not an error.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("configuration error", "error", err)
		os.Exit(1)
	}

	// --- Logger -----------------------------------------------------------
	// log/slog is the stdlib structured logger. The JSON handler writes
	// machine-readable output suitable for log aggregators.
	var logLevel slog.Level
	if err := logLevel.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		logLevel = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	// --- Storage ----------------------------------------------------------
	// The store handle is constructed once here and passed explicitly into
	// the repo; nothing downstream holds storage as package state.
	var trips repo.TripRepo
	switch cfg.Storage {
	case config.StorageWorkbook:
		trips, err = repo.NewWorkbookTripRepo(cfg.WorkbookDir)
		if err != nil {
			slog.Error("failed to open workbook store", "dir", cfg.WorkbookDir, "error", err)
			os.Exit(1)
		}
		slog.Info("workbook store ready", "dir", cfg.WorkbookDir)
	default:
		db, err := sqlitedb.Open(cfg.DataPath)
		if err != nil {
			slog.Error("failed to open database", "path", cfg.DataPath, "error", err)
			os.Exit(1)
		}
		defer db.Close()
		trips = repo.NewSQLiteTripRepo(db)
		slog.Info("database ready", "path", cfg.DataPath)
	}

	// --- Services ---------------------------------------------------------
	drivers := domain.NewDriverSet(cfg.Drivers)
	ledger := service.NewLedgerService(trips, drivers)
	export := service.NewExportService(trips, drivers)

	// --- Router -----------------------------------------------------------
	// Middleware is applied in order: RequestID → RealIP → Logger → Recoverer
	// → CORS → MaxBodySize.
	// RequestID generates a unique trace ID per request.
	// RealIP sets r.RemoteAddr from X-Forwarded-For / X-Real-IP (safe behind a proxy).
	// SlogLogger writes one structured JSON log line per request.
	// Recoverer catches panics and returns HTTP 500 instead of crashing.
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewSlogLogger(logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.NewCORSHandler(cfg.CORSOrigins))
	r.Use(middleware.NewMaxBodySizeHandler(maxBodySize))

	r.Mount("/", handler.NewServer(ledger, export).Routes())

	// --- HTTP Server ------------------------------------------------------
	// Explicit timeouts prevent slowloris and resource exhaustion attacks.
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown: wait for OS signal, then give in-flight requests
	// up to 15 seconds to complete before forcefully closing.
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "addr", srv.Addr, "storage", cfg.Storage)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-stop
	slog.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("shutdown error", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}
