// Package repo contains all storage access logic for the trip ledger.
// The store is modelled as a single capability — insert, scoped list,
// delete by identity — with two interchangeable implementations: an embedded
// SQLite table and a per-driver CSV workbook. No business logic lives here,
// only persistence and type mapping.
package repo

import (
	"context"

	"github.com/Harishumapathy08/tripdata/internal/domain"
)

// TripRepo defines the persistence operations for trip records.
// The service layer depends on this interface, not a concrete backend,
// which keeps sequence-number projection and identity resolution
// backend-agnostic and lets unit tests substitute an in-memory fake.
type TripRepo interface {
	// Insert appends a new trip to durable storage and returns the persisted
	// record with its storage identity populated. The write is committed
	// before Insert returns; a later List observes the record.
	Insert(ctx context.Context, trip domain.Trip) (domain.Trip, error)

	// List returns the records in the given scope in insertion order within
	// the backing store. An empty scope yields an empty (possibly nil) slice,
	// never an error.
	List(ctx context.Context, scope domain.Scope) ([]domain.Trip, error)

	// Delete removes exactly one record by its storage identity.
	// Returns domain.ErrNotFound if no record with that identity exists.
	Delete(ctx context.Context, id int64) error
}
