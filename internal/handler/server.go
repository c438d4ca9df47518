// Package handler implements the HTTP handlers for the trip ledger API.
// All handlers are methods on Server; they are split into domain-specific
// files (health.go, trip.go, export.go) but share the same struct so they
// can access its dependencies.
package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Harishumapathy08/tripdata/internal/domain"
)

// LedgerServicer defines the business operations the trip handlers depend on.
// Defining the interface here (in the consumer package) follows the Go
// convention: "accept interfaces, return concrete types". It lets handler
// tests inject a mock without touching the store or service layer.
type LedgerServicer interface {
	Add(ctx context.Context, trip domain.Trip) (domain.NumberedTrip, error)
	List(ctx context.Context, scope domain.Scope) ([]domain.NumberedTrip, error)
	DeleteBySequence(ctx context.Context, scope domain.Scope, seq int) error
	Drivers() []string
}

// ExportServicer defines the export operation the export handler depends on.
type ExportServicer interface {
	Export(ctx context.Context, scope domain.Scope) ([]domain.ExportSection, error)
}

// Server holds the handler dependencies for all API endpoints.
type Server struct {
	ledger LedgerServicer
	export ExportServicer
}

// NewServer constructs the Server with all its dependencies.
func NewServer(ledger LedgerServicer, export ExportServicer) *Server {
	return &Server{ledger: ledger, export: export}
}

// Routes returns the API router. Mount it under "/" in main.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/healthz", s.GetHealth)
	r.Get("/drivers", s.ListDrivers)
	r.Route("/trips", func(r chi.Router) {
		r.Post("/", s.CreateTrip)
		r.Get("/", s.ListTrips)
		r.Get("/options/times", s.ListTimeOptions)
		r.Delete("/{seq}", s.DeleteTrip)
	})
	r.Get("/export", s.GetExport)
	return r
}

// writeJSON encodes v as the response body with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v) // header already sent; nothing left to signal
}
