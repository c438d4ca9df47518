package service

import (
	"context"
	"fmt"

	"github.com/Harishumapathy08/tripdata/internal/domain"
	"github.com/Harishumapathy08/tripdata/internal/repo"
)

// ExportService assembles the bulk-extraction snapshot: one section per
// driver, grouped the way the downloadable workbook lays out its sheets.
type ExportService struct {
	repo    repo.TripRepo
	drivers domain.DriverSet
}

// NewExportService constructs an ExportService over the given store and
// driver set.
func NewExportService(r repo.TripRepo, drivers domain.DriverSet) *ExportService {
	return &ExportService{repo: r, drivers: drivers}
}

// Export returns one section per driver that has records, in configured
// driver order. Rows carry this driver's records only, numbered 1..N within
// the section, with times rendered in the 12-hour display convention.
// A driver scope narrows the snapshot to that driver's single section.
// Read-only; the store is not touched beyond listing.
func (s *ExportService) Export(ctx context.Context, scope domain.Scope) ([]domain.ExportSection, error) {
	sections := []domain.ExportSection{}
	for _, driver := range s.drivers.Names() {
		if !scope.All() && driver != scope.Driver() {
			continue
		}
		trips, err := s.repo.List(ctx, domain.DriverScope(driver))
		if err != nil {
			return nil, fmt.Errorf("service.ExportService.Export: %w", err)
		}
		if len(trips) == 0 {
			continue
		}
		rows := make([]domain.ExportRow, len(trips))
		for i, t := range trips {
			rows[i] = domain.NewExportRow(domain.NumberedTrip{Seq: i + 1, Trip: t})
		}
		sections = append(sections, domain.ExportSection{Driver: driver, Rows: rows})
	}
	return sections, nil
}
