package repo

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/Harishumapathy08/tripdata/internal/domain"
)

// workbookHeader is the fixed column order of every section file. It matches
// the sheet layout of the original workbook export.
var workbookHeader = []string{
	"s_no", "driver", "disp_date", "invoice_no", "customer", "destination",
	"invoice_date", "vehicle", "out_time", "in_time", "out_km", "in_km", "diff_km",
}

// workbookTripRepo persists trips as a workbook directory: one CSV section
// file per driver, rows numbered contiguously from 1 within each section.
//
// This backend has no durable surrogate key — identity is positional. IDs
// are synthesized by a deterministic walk (sections in filename order, rows
// top to bottom) and are only stable between mutations, which is why the
// service resolves a sequence number and deletes it within a single call.
// Deleting a row rewrites its section with the remaining rows renumbered
// from 1, because the row number is the only handle the caller has.
type workbookTripRepo struct {
	dir string
}

// NewWorkbookTripRepo constructs a TripRepo storing one CSV section per
// driver under dir. A missing directory is created empty rather than
// reported as an error.
func NewWorkbookTripRepo(dir string) (TripRepo, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("repo.NewWorkbookTripRepo: %w: %w", domain.ErrStorage, err)
	}
	return &workbookTripRepo{dir: dir}, nil
}

// Insert appends the trip to its driver's section file and returns it with
// a synthesized identity.
func (r *workbookTripRepo) Insert(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	if trip.CreatedAt.IsZero() {
		trip.CreatedAt = time.Now().UTC()
	}

	rows, err := r.readSection(trip.Driver)
	if err != nil {
		if errors.Is(err, domain.ErrStorage) {
			return domain.Trip{}, fmt.Errorf("repo.TripRepo.Insert: %w", err)
		}
		// Parse failure: move the damaged section aside and start it fresh.
		if qErr := r.quarantine(trip.Driver + ".csv"); qErr != nil {
			return domain.Trip{}, fmt.Errorf("repo.TripRepo.Insert: %w", qErr)
		}
		rows = nil
	}
	rows = append(rows, trip)
	if err := r.writeSection(trip.Driver, rows); err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.Insert: %w", err)
	}

	// Re-walk to learn the id the appended row landed on; it is the last
	// row of its driver's section.
	all, err := r.loadAll()
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.Insert: %w", err)
	}
	for i := len(all) - 1; i >= 0; i-- {
		if all[i].Driver == trip.Driver {
			return all[i], nil
		}
	}
	return domain.Trip{}, fmt.Errorf("repo.TripRepo.Insert: %w: appended row not visible", domain.ErrStorage)
}

// List walks the workbook and returns the rows in the given scope in
// section-file order, rows top to bottom.
func (r *workbookTripRepo) List(ctx context.Context, scope domain.Scope) ([]domain.Trip, error) {
	all, err := r.loadAll()
	if err != nil {
		return nil, fmt.Errorf("repo.TripRepo.List: %w", err)
	}
	if scope.All() {
		return all, nil
	}
	var trips []domain.Trip
	for _, t := range all {
		if t.Driver == scope.Driver() {
			trips = append(trips, t)
		}
	}
	return trips, nil
}

// Delete removes the row with the given synthesized id and rewrites its
// section with the remaining rows renumbered from 1.
func (r *workbookTripRepo) Delete(ctx context.Context, id int64) error {
	all, err := r.loadAll()
	if err != nil {
		return fmt.Errorf("repo.TripRepo.Delete: %w", err)
	}

	var victim *domain.Trip
	for i := range all {
		if all[i].ID == id {
			victim = &all[i]
			break
		}
	}
	if victim == nil {
		return fmt.Errorf("repo.TripRepo.Delete: %w", domain.ErrNotFound)
	}

	var remaining []domain.Trip
	for _, t := range all {
		if t.Driver == victim.Driver && t.ID != id {
			remaining = append(remaining, t)
		}
	}
	if err := r.writeSection(victim.Driver, remaining); err != nil {
		return fmt.Errorf("repo.TripRepo.Delete: %w", err)
	}
	return nil
}

// loadAll reads every section file in filename order and synthesizes ids
// 1..N across the walk. A section that fails to parse is moved aside with a
// ".corrupt-<timestamp>" suffix and treated as empty, so one damaged file
// never wedges the whole store.
func (r *workbookTripRepo) loadAll() ([]domain.Trip, error) {
	entries, err := os.ReadDir(r.dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			if err := os.MkdirAll(r.dir, 0o755); err != nil {
				return nil, fmt.Errorf("%w: %w", domain.ErrStorage, err)
			}
			return nil, nil
		}
		return nil, fmt.Errorf("%w: %w", domain.ErrStorage, err)
	}

	var all []domain.Trip
	var nextID int64 = 1
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".csv") {
			continue
		}
		driver := strings.TrimSuffix(entry.Name(), ".csv")
		rows, err := r.readSection(driver)
		if err != nil {
			if errors.Is(err, domain.ErrStorage) {
				return nil, err
			}
			if err := r.quarantine(entry.Name()); err != nil {
				return nil, err
			}
			continue
		}
		for _, t := range rows {
			t.ID = nextID
			nextID++
			all = append(all, t)
		}
	}
	return all, nil
}

// readSection parses one driver's CSV file. A missing file is an empty
// section, not an error.
func (r *workbookTripRepo) readSection(driver string) ([]domain.Trip, error) {
	f, err := os.Open(r.sectionPath(driver))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: %w", domain.ErrStorage, err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("section %s: %w", driver, err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	var trips []domain.Trip
	for _, rec := range records[1:] { // skip header
		t, err := recordToTrip(rec)
		if err != nil {
			return nil, fmt.Errorf("section %s: %w", driver, err)
		}
		trips = append(trips, t)
	}
	return trips, nil
}

// writeSection rewrites one driver's CSV file in full, numbering rows 1..N.
// The file is written to a temp name and renamed into place so a failed
// write never leaves a half-written section behind.
func (r *workbookTripRepo) writeSection(driver string, trips []domain.Trip) error {
	path := r.sectionPath(driver)
	tmp, err := os.CreateTemp(r.dir, driver+".csv.tmp-*")
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrStorage, err)
	}
	defer os.Remove(tmp.Name())

	w := csv.NewWriter(tmp)
	if err := w.Write(workbookHeader); err != nil {
		tmp.Close()
		return fmt.Errorf("%w: %w", domain.ErrStorage, err)
	}
	for i, t := range trips {
		if err := w.Write(tripToRecord(i+1, t)); err != nil {
			tmp.Close()
			return fmt.Errorf("%w: %w", domain.ErrStorage, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		tmp.Close()
		return fmt.Errorf("%w: %w", domain.ErrStorage, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrStorage, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrStorage, err)
	}
	return nil
}

// quarantine moves a damaged section file aside so the next write can
// recreate it empty and correctly shaped.
func (r *workbookTripRepo) quarantine(name string) error {
	from := filepath.Join(r.dir, name)
	to := from + ".corrupt-" + time.Now().UTC().Format("20060102T150405")
	if err := os.Rename(from, to); err != nil {
		return fmt.Errorf("%w: quarantine %s: %w", domain.ErrStorage, name, err)
	}
	return nil
}

func (r *workbookTripRepo) sectionPath(driver string) string {
	return filepath.Join(r.dir, driver+".csv")
}

// tripToRecord flattens a trip into a CSV record in workbookHeader order.
// The s_no column holds the row's position within its section.
func tripToRecord(seq int, t domain.Trip) []string {
	return []string{
		strconv.Itoa(seq),
		t.Driver,
		t.DispatchDate.Format(domain.DateFormat),
		t.InvoiceNo,
		t.Customer,
		t.Destination,
		t.InvoiceDate.Format(domain.DateFormat),
		t.Vehicle,
		t.OutTime.String(),
		t.InTime.String(),
		strconv.Itoa(t.OutKM),
		strconv.Itoa(t.InKM),
		strconv.Itoa(t.DiffKM),
	}
}

// recordToTrip parses one CSV record back into a domain.Trip.
// CreatedAt is not part of the sheet layout; rows read back carry a zero
// CreatedAt, which the handlers omit from responses when unset.
func recordToTrip(rec []string) (domain.Trip, error) {
	if len(rec) != len(workbookHeader) {
		return domain.Trip{}, fmt.Errorf("row has %d columns, want %d", len(rec), len(workbookHeader))
	}

	var (
		t   domain.Trip
		err error
	)
	t.Driver = rec[1]
	if t.DispatchDate, err = time.Parse(domain.DateFormat, rec[2]); err != nil {
		return domain.Trip{}, fmt.Errorf("disp_date: %w", err)
	}
	t.InvoiceNo = rec[3]
	t.Customer = rec[4]
	t.Destination = rec[5]
	if t.InvoiceDate, err = time.Parse(domain.DateFormat, rec[6]); err != nil {
		return domain.Trip{}, fmt.Errorf("invoice_date: %w", err)
	}
	t.Vehicle = rec[7]
	if t.OutTime, err = domain.ParseTimeOfDay(rec[8]); err != nil {
		return domain.Trip{}, fmt.Errorf("out_time: %w", err)
	}
	if t.InTime, err = domain.ParseTimeOfDay(rec[9]); err != nil {
		return domain.Trip{}, fmt.Errorf("in_time: %w", err)
	}
	if t.OutKM, err = strconv.Atoi(rec[10]); err != nil {
		return domain.Trip{}, fmt.Errorf("out_km: %w", err)
	}
	if t.InKM, err = strconv.Atoi(rec[11]); err != nil {
		return domain.Trip{}, fmt.Errorf("in_km: %w", err)
	}
	if t.DiffKM, err = strconv.Atoi(rec[12]); err != nil {
		return domain.Trip{}, fmt.Errorf("diff_km: %w", err)
	}
	return t, nil
}
