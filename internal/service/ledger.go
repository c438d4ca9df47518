// Package service contains the business logic for the trip ledger.
// Services validate inputs, enforce the record invariants, and orchestrate
// repo calls. No SQL or file handling lives here — services depend on the
// repo interface, not an implementation.
package service

import (
	"context"
	"fmt"

	"github.com/Harishumapathy08/tripdata/internal/domain"
	"github.com/Harishumapathy08/tripdata/internal/repo"
)

// LedgerService owns the trip record lifecycle: validated atomic adds,
// scoped listings with projected sequence numbers, and deletes addressed by
// sequence number.
type LedgerService struct {
	repo    repo.TripRepo
	drivers domain.DriverSet
}

// NewLedgerService constructs a LedgerService over the given store and the
// fixed driver set.
func NewLedgerService(r repo.TripRepo, drivers domain.DriverSet) *LedgerService {
	return &LedgerService{repo: r, drivers: drivers}
}

// Add validates and persists a new trip record. The distance delta is
// computed here — whatever the caller put in DiffKM is overwritten — and
// the record's sequence number within its driver's scope is returned.
// Submission is atomic: on any validation failure nothing is persisted.
func (s *LedgerService) Add(ctx context.Context, trip domain.Trip) (domain.NumberedTrip, error) {
	if err := s.validate(trip); err != nil {
		return domain.NumberedTrip{}, err
	}
	trip.DiffKM = domain.DistanceDelta(trip.OutKM, trip.InKM)

	// next sequence number in the driver's scope: max existing + 1.
	existing, err := s.repo.List(ctx, domain.DriverScope(trip.Driver))
	if err != nil {
		return domain.NumberedTrip{}, fmt.Errorf("service.LedgerService.Add: %w", err)
	}

	created, err := s.repo.Insert(ctx, trip)
	if err != nil {
		return domain.NumberedTrip{}, fmt.Errorf("service.LedgerService.Add: %w", err)
	}
	return domain.NumberedTrip{Seq: len(existing) + 1, Trip: created}, nil
}

// List returns the records in scope in insertion order, with sequence
// numbers 1..N projected relative to that scope. Always returns a non-nil
// slice; an empty scope is an empty listing, not an error.
func (s *LedgerService) List(ctx context.Context, scope domain.Scope) ([]domain.NumberedTrip, error) {
	trips, err := s.repo.List(ctx, scope)
	if err != nil {
		return nil, fmt.Errorf("service.LedgerService.List: %w", err)
	}
	numbered := make([]domain.NumberedTrip, len(trips))
	for i, t := range trips {
		numbered[i] = domain.NumberedTrip{Seq: i + 1, Trip: t}
	}
	return numbered, nil
}

// DeleteBySequence removes the record the given 1-based sequence number
// refers to within scope. The sequence number is re-resolved against a
// fresh listing taken inside this call, so the number cannot go stale
// between resolution and deletion. It can still be stale relative to the
// listing the caller saw if another mutation landed in between; see the
// note on the DELETE handler.
// Returns domain.ErrNotFound when seq is outside [1, count] for the scope.
func (s *LedgerService) DeleteBySequence(ctx context.Context, scope domain.Scope, seq int) error {
	trips, err := s.repo.List(ctx, scope)
	if err != nil {
		return fmt.Errorf("service.LedgerService.DeleteBySequence: %w", err)
	}
	if seq < 1 || seq > len(trips) {
		return fmt.Errorf("service.LedgerService.DeleteBySequence: sequence %d: %w", seq, domain.ErrNotFound)
	}
	if err := s.repo.Delete(ctx, trips[seq-1].ID); err != nil {
		return fmt.Errorf("service.LedgerService.DeleteBySequence: %w", err)
	}
	return nil
}

// Drivers returns the configured driver set in display order.
func (s *LedgerService) Drivers() []string {
	return s.drivers.Names()
}

// validate enforces the add-time invariants:
//   - driver must be one of the fixed known set
//   - both times must be inside the canonical domain
//   - odometer readings must be non-negative (no upper bound)
func (s *LedgerService) validate(trip domain.Trip) error {
	if !s.drivers.Contains(trip.Driver) {
		return fmt.Errorf("%w: unknown driver %q", domain.ErrValidation, trip.Driver)
	}
	if !trip.OutTime.Valid() {
		return fmt.Errorf("%w: out_time: %w", domain.ErrValidation, domain.ErrInvalidTime)
	}
	if !trip.InTime.Valid() {
		return fmt.Errorf("%w: in_time: %w", domain.ErrValidation, domain.ErrInvalidTime)
	}
	if trip.OutKM < 0 {
		return fmt.Errorf("%w: out_km must not be negative", domain.ErrValidation)
	}
	if trip.InKM < 0 {
		return fmt.Errorf("%w: in_km must not be negative", domain.ErrValidation)
	}
	return nil
}
