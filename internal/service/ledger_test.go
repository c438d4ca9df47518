package service_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Harishumapathy08/tripdata/internal/domain"
	"github.com/Harishumapathy08/tripdata/internal/repo"
	"github.com/Harishumapathy08/tripdata/internal/service"
)

// mockTripRepo is a hand-written test double for repo.TripRepo.
// Each method is a function field — set only the ones your test needs.
type mockTripRepo struct {
	insert func(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	list   func(ctx context.Context, scope domain.Scope) ([]domain.Trip, error)
	delete func(ctx context.Context, id int64) error
}

func (m *mockTripRepo) Insert(ctx context.Context, t domain.Trip) (domain.Trip, error) {
	return m.insert(ctx, t)
}
func (m *mockTripRepo) List(ctx context.Context, scope domain.Scope) ([]domain.Trip, error) {
	return m.list(ctx, scope)
}
func (m *mockTripRepo) Delete(ctx context.Context, id int64) error {
	return m.delete(ctx, id)
}

// compile-time check: mockTripRepo must satisfy repo.TripRepo.
var _ repo.TripRepo = (*mockTripRepo)(nil)

// fakeTripRepo is a stateful in-memory store for lifecycle tests that need
// real insert/list/delete semantics rather than canned responses.
type fakeTripRepo struct {
	trips  []domain.Trip
	nextID int64
}

func (f *fakeTripRepo) Insert(_ context.Context, t domain.Trip) (domain.Trip, error) {
	f.nextID++
	t.ID = f.nextID
	f.trips = append(f.trips, t)
	return t, nil
}

func (f *fakeTripRepo) List(_ context.Context, scope domain.Scope) ([]domain.Trip, error) {
	var out []domain.Trip
	for _, t := range f.trips {
		if scope.All() || t.Driver == scope.Driver() {
			out = append(out, t)
		}
	}
	return out, nil
}

func (f *fakeTripRepo) Delete(_ context.Context, id int64) error {
	for i, t := range f.trips {
		if t.ID == id {
			f.trips = append(f.trips[:i], f.trips[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

var _ repo.TripRepo = (*fakeTripRepo)(nil)

// ---- helpers ---------------------------------------------------------------

func testDrivers() domain.DriverSet {
	return domain.NewDriverSet([]string{"Prem", "Ajith", "Wilson"})
}

func validTrip(driver string) domain.Trip {
	return domain.Trip{
		Driver:       driver,
		DispatchDate: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		InvoiceNo:    "INV-1042",
		Customer:     "Sri Lakshmi Traders",
		Destination:  "Salem",
		InvoiceDate:  time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		Vehicle:      "TN 29 AQ 1311",
		OutTime:      domain.TimeOfDay{Hour: 6, Minute: 15},
		InTime:       domain.TimeOfDay{Hour: 18, Minute: 30},
		OutKM:        45210,
		InKM:         45390,
	}
}

// ---- Add tests -------------------------------------------------------------

func TestLedgerService_Add_ComputesDelta(t *testing.T) {
	svc := service.NewLedgerService(&fakeTripRepo{}, testDrivers())

	got, err := svc.Add(context.Background(), validTrip("Prem"))

	require.NoError(t, err)
	assert.Equal(t, 180, got.DiffKM)
	assert.Equal(t, 1, got.Seq)
}

func TestLedgerService_Add_ClampsNegativeDelta(t *testing.T) {
	svc := service.NewLedgerService(&fakeTripRepo{}, testDrivers())

	trip := validTrip("Ajith")
	trip.OutKM = 120
	trip.InKM = 95

	got, err := svc.Add(context.Background(), trip)

	require.NoError(t, err)
	// In below out clamps to zero and the record is still persisted.
	assert.Equal(t, 0, got.DiffKM)

	listed, err := svc.List(context.Background(), domain.DriverScope("Ajith"))
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, 1, listed[0].Seq)
	assert.Equal(t, 0, listed[0].DiffKM)
}

func TestLedgerService_Add_OverwritesCallerDelta(t *testing.T) {
	svc := service.NewLedgerService(&fakeTripRepo{}, testDrivers())

	trip := validTrip("Prem")
	trip.DiffKM = 9999 // whatever the caller claims is ignored

	got, err := svc.Add(context.Background(), trip)

	require.NoError(t, err)
	assert.Equal(t, 180, got.DiffKM)
}

func TestLedgerService_Add_UnknownDriver(t *testing.T) {
	svc := service.NewLedgerService(&fakeTripRepo{}, testDrivers())

	_, err := svc.Add(context.Background(), validTrip("Kumar"))

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestLedgerService_Add_NegativeOdometer(t *testing.T) {
	svc := service.NewLedgerService(&fakeTripRepo{}, testDrivers())

	trip := validTrip("Prem")
	trip.OutKM = -1

	_, err := svc.Add(context.Background(), trip)
	assert.ErrorIs(t, err, domain.ErrValidation)

	trip = validTrip("Prem")
	trip.InKM = -5

	_, err = svc.Add(context.Background(), trip)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestLedgerService_Add_InvalidTime(t *testing.T) {
	svc := service.NewLedgerService(&fakeTripRepo{}, testDrivers())

	trip := validTrip("Prem")
	trip.InTime = domain.TimeOfDay{Hour: 24, Minute: 0}

	_, err := svc.Add(context.Background(), trip)

	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.ErrorIs(t, err, domain.ErrInvalidTime)
}

func TestLedgerService_Add_SequencePerDriver(t *testing.T) {
	svc := service.NewLedgerService(&fakeTripRepo{}, testDrivers())

	for want := 1; want <= 3; want++ {
		got, err := svc.Add(context.Background(), validTrip("Prem"))
		require.NoError(t, err)
		assert.Equal(t, want, got.Seq)
	}

	// Another driver's scope starts back at 1.
	got, err := svc.Add(context.Background(), validTrip("Wilson"))
	require.NoError(t, err)
	assert.Equal(t, 1, got.Seq)
}

func TestLedgerService_Add_DuplicatesAllowed(t *testing.T) {
	svc := service.NewLedgerService(&fakeTripRepo{}, testDrivers())

	first, err := svc.Add(context.Background(), validTrip("Prem"))
	require.NoError(t, err)
	second, err := svc.Add(context.Background(), validTrip("Prem"))
	require.NoError(t, err)

	// Identical submissions create separate records.
	assert.NotEqual(t, first.ID, second.ID)
	listed, err := svc.List(context.Background(), domain.DriverScope("Prem"))
	require.NoError(t, err)
	assert.Len(t, listed, 2)
}

func TestLedgerService_Add_RepoError(t *testing.T) {
	repoErr := errors.New("disk full")
	r := &mockTripRepo{
		list: func(context.Context, domain.Scope) ([]domain.Trip, error) { return nil, nil },
		insert: func(context.Context, domain.Trip) (domain.Trip, error) {
			return domain.Trip{}, repoErr
		},
	}
	svc := service.NewLedgerService(r, testDrivers())

	_, err := svc.Add(context.Background(), validTrip("Prem"))

	assert.ErrorIs(t, err, repoErr)
}

// ---- List tests ------------------------------------------------------------

func TestLedgerService_List_SequencesPerScope(t *testing.T) {
	svc := service.NewLedgerService(&fakeTripRepo{}, testDrivers())

	for i := 0; i < 4; i++ {
		_, err := svc.Add(context.Background(), validTrip("Prem"))
		require.NoError(t, err)
	}
	for i := 0; i < 2; i++ {
		_, err := svc.Add(context.Background(), validTrip("Ajith"))
		require.NoError(t, err)
	}

	prem, err := svc.List(context.Background(), domain.DriverScope("Prem"))
	require.NoError(t, err)
	require.Len(t, prem, 4)
	for i, nt := range prem {
		assert.Equal(t, i+1, nt.Seq)
		assert.Equal(t, "Prem", nt.Driver)
	}

	// The all scope renumbers across drivers, still 1..N.
	all, err := svc.List(context.Background(), domain.ScopeAll)
	require.NoError(t, err)
	require.Len(t, all, 6)
	for i, nt := range all {
		assert.Equal(t, i+1, nt.Seq)
	}
}

func TestLedgerService_List_EmptyScope(t *testing.T) {
	svc := service.NewLedgerService(&fakeTripRepo{}, testDrivers())

	got, err := svc.List(context.Background(), domain.DriverScope("Wilson"))

	require.NoError(t, err)
	// Empty listing, not an error — and non-nil so callers can range over it.
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

// ---- DeleteBySequence tests ------------------------------------------------

func TestLedgerService_DeleteBySequence_Renumbers(t *testing.T) {
	svc := service.NewLedgerService(&fakeTripRepo{}, testDrivers())

	var invoices []string
	for i := 1; i <= 5; i++ {
		trip := validTrip("Prem")
		trip.InvoiceNo = fmt.Sprintf("INV-%d", i)
		invoices = append(invoices, trip.InvoiceNo)
		_, err := svc.Add(context.Background(), trip)
		require.NoError(t, err)
	}

	err := svc.DeleteBySequence(context.Background(), domain.DriverScope("Prem"), 3)
	require.NoError(t, err)

	got, err := svc.List(context.Background(), domain.DriverScope("Prem"))
	require.NoError(t, err)
	require.Len(t, got, 4)
	want := []string{invoices[0], invoices[1], invoices[3], invoices[4]}
	for i, nt := range got {
		assert.Equal(t, i+1, nt.Seq, "sequence must stay contiguous from 1")
		assert.Equal(t, want[i], nt.InvoiceNo)
	}
}

func TestLedgerService_DeleteBySequence_OutOfRange(t *testing.T) {
	svc := service.NewLedgerService(&fakeTripRepo{}, testDrivers())

	for i := 0; i < 3; i++ {
		_, err := svc.Add(context.Background(), validTrip("Ajith"))
		require.NoError(t, err)
	}
	before, err := svc.List(context.Background(), domain.DriverScope("Ajith"))
	require.NoError(t, err)

	for _, seq := range []int{0, -1, 4, 100} {
		err := svc.DeleteBySequence(context.Background(), domain.DriverScope("Ajith"), seq)
		assert.ErrorIs(t, err, domain.ErrNotFound, "seq %d", seq)
	}

	after, err := svc.List(context.Background(), domain.DriverScope("Ajith"))
	require.NoError(t, err)
	// Failed deletes leave the record set unchanged.
	assert.Equal(t, before, after)
}

func TestLedgerService_DeleteBySequence_ScopedToDriver(t *testing.T) {
	svc := service.NewLedgerService(&fakeTripRepo{}, testDrivers())

	_, err := svc.Add(context.Background(), validTrip("Prem"))
	require.NoError(t, err)
	_, err = svc.Add(context.Background(), validTrip("Ajith"))
	require.NoError(t, err)

	// Seq 1 in Ajith's scope must delete Ajith's record, not Prem's.
	require.NoError(t, svc.DeleteBySequence(context.Background(), domain.DriverScope("Ajith"), 1))

	prem, err := svc.List(context.Background(), domain.DriverScope("Prem"))
	require.NoError(t, err)
	assert.Len(t, prem, 1)

	ajith, err := svc.List(context.Background(), domain.DriverScope("Ajith"))
	require.NoError(t, err)
	assert.Empty(t, ajith)
}

func TestLedgerService_DeleteBySequence_RepoError(t *testing.T) {
	repoErr := errors.New("write failed")
	r := &mockTripRepo{
		list: func(context.Context, domain.Scope) ([]domain.Trip, error) {
			return []domain.Trip{{ID: 7, Driver: "Prem"}}, nil
		},
		delete: func(context.Context, int64) error { return repoErr },
	}
	svc := service.NewLedgerService(r, testDrivers())

	err := svc.DeleteBySequence(context.Background(), domain.DriverScope("Prem"), 1)

	assert.ErrorIs(t, err, repoErr)
}

// ---- end-to-end scenario ---------------------------------------------------

func TestLedgerService_EndToEnd_ClampedTripPersists(t *testing.T) {
	svc := service.NewLedgerService(&fakeTripRepo{}, testDrivers())

	trip := validTrip("Ajith")
	trip.OutKM = 120
	trip.InKM = 95

	added, err := svc.Add(context.Background(), trip)
	require.NoError(t, err)
	assert.Equal(t, 0, added.DiffKM)

	got, err := svc.List(context.Background(), domain.DriverScope("Ajith"))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, 1, got[0].Seq)
	assert.Equal(t, 0, got[0].DiffKM)
}
