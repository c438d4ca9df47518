package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Harishumapathy08/tripdata/internal/domain"
)

// db is the minimal interface satisfied by *sql.DB and *sql.Tx.
// Accepting this interface instead of *sql.DB directly allows tests to pass
// a transaction that is rolled back afterwards when they want isolation.
type db interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// sqliteTripRepo is the SQLite implementation of TripRepo. The integer
// primary key is the durable surrogate identity; sequence numbers are never
// stored, only derived at listing time.
type sqliteTripRepo struct {
	db db
}

// NewSQLiteTripRepo constructs a TripRepo backed by the provided database
// handle. In production pass the *sql.DB opened by sqlitedb.Open; in tests
// pass the in-memory database from testutil.NewDB.
func NewSQLiteTripRepo(db db) TripRepo {
	return &sqliteTripRepo{db: db}
}

const tripColumns = `id, driver, disp_date, invoice_no, customer, destination,
		invoice_date, vehicle, out_time, in_time, out_km, in_km, diff_km, created_at`

// Insert appends a new trip row and returns it with the generated id.
func (r *sqliteTripRepo) Insert(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	const q = `
		INSERT INTO trips (driver, disp_date, invoice_no, customer, destination,
			invoice_date, vehicle, out_time, in_time, out_km, in_km, diff_km, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	if trip.CreatedAt.IsZero() {
		trip.CreatedAt = time.Now().UTC()
	}

	res, err := r.db.ExecContext(ctx, q,
		trip.Driver,
		trip.DispatchDate.Format(domain.DateFormat),
		trip.InvoiceNo,
		trip.Customer,
		trip.Destination,
		trip.InvoiceDate.Format(domain.DateFormat),
		trip.Vehicle,
		trip.OutTime.String(),
		trip.InTime.String(),
		trip.OutKM,
		trip.InKM,
		trip.DiffKM,
		trip.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.Insert: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.Insert: last insert id: %w", err)
	}
	trip.ID = id
	return trip, nil
}

// List returns trips in insertion order (by id). A driver scope filters to
// that driver's rows; the all scope returns every row.
func (r *sqliteTripRepo) List(ctx context.Context, scope domain.Scope) ([]domain.Trip, error) {
	var (
		rows *sql.Rows
		err  error
	)
	if scope.All() {
		rows, err = r.db.QueryContext(ctx,
			`SELECT `+tripColumns+` FROM trips ORDER BY id`)
	} else {
		rows, err = r.db.QueryContext(ctx,
			`SELECT `+tripColumns+` FROM trips WHERE driver = ? ORDER BY id`, scope.Driver())
	}
	if err != nil {
		return nil, fmt.Errorf("repo.TripRepo.List: %w", err)
	}
	defer rows.Close()

	var trips []domain.Trip
	for rows.Next() {
		t, err := scanTrip(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.TripRepo.List: scan: %w", err)
		}
		trips = append(trips, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.TripRepo.List: rows: %w", err)
	}

	return trips, nil
}

// Delete removes a trip by primary key.
func (r *sqliteTripRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM trips WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("repo.TripRepo.Delete: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("repo.TripRepo.Delete: rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("repo.TripRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

// scanner is satisfied by both *sql.Row and *sql.Rows, allowing scanTrip to
// be reused for QueryRow and Query calls.
type scanner interface {
	Scan(dest ...any) error
}

// scanTrip maps one database row into a domain.Trip, parsing the stored
// date, time-of-day, and timestamp text back into their in-memory forms.
func scanTrip(s scanner) (domain.Trip, error) {
	var (
		t                 domain.Trip
		dispDate, invDate string
		outTime, inTime   string
		createdAt         string
	)

	err := s.Scan(&t.ID, &t.Driver, &dispDate, &t.InvoiceNo, &t.Customer,
		&t.Destination, &invDate, &t.Vehicle, &outTime, &inTime,
		&t.OutKM, &t.InKM, &t.DiffKM, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Trip{}, domain.ErrNotFound
		}
		return domain.Trip{}, err
	}

	if t.DispatchDate, err = time.Parse(domain.DateFormat, dispDate); err != nil {
		return domain.Trip{}, fmt.Errorf("disp_date: %w", err)
	}
	if t.InvoiceDate, err = time.Parse(domain.DateFormat, invDate); err != nil {
		return domain.Trip{}, fmt.Errorf("invoice_date: %w", err)
	}
	if t.OutTime, err = domain.ParseTimeOfDay(outTime); err != nil {
		return domain.Trip{}, fmt.Errorf("out_time: %w", err)
	}
	if t.InTime, err = domain.ParseTimeOfDay(inTime); err != nil {
		return domain.Trip{}, fmt.Errorf("in_time: %w", err)
	}
	if t.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
		return domain.Trip{}, fmt.Errorf("created_at: %w", err)
	}

	return t, nil
}
