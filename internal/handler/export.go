// Package handler — export.go implements GET /export.
// Returns the full ledger grouped into one section per driver, the shape of
// the original downloadable workbook. Supports content negotiation via
// ?format=csv (CSV download) or default (JSON).
package handler

import (
	"bytes"
	"encoding/csv"
	"net/http"
	"strconv"

	"github.com/Harishumapathy08/tripdata/internal/domain"
)

// csvHeaders defines the column names written as the first row of every
// CSV section — exactly the persisted field set, in sheet order.
var csvHeaders = []string{
	"s_no", "driver", "disp_date", "invoice_no", "customer", "destination",
	"invoice_date", "vehicle", "out_time", "in_time", "out_km", "in_km", "diff_km",
}

// GetExport handles GET /export.
// An optional ?driver= query parameter narrows the artifact to one section.
// Read-only: the snapshot reflects the store at the time of the call.
func (s *Server) GetExport(w http.ResponseWriter, r *http.Request) {
	scope := domain.Scope(r.URL.Query().Get("driver"))
	sections, err := s.export.Export(r.Context(), scope)
	if err != nil {
		writeInternal(w)
		return
	}

	if r.URL.Query().Get("format") == "csv" {
		writeCSVExport(w, sections)
		return
	}
	writeJSON(w, http.StatusOK, struct {
		Sections []domain.ExportSection `json:"sections"`
	}{Sections: sections})
}

// writeCSVExport renders the sections as a downloadable CSV document:
// a "# <driver>" line introduces each section, followed by the header and
// that driver's rows, with a blank line between sections.
func writeCSVExport(w http.ResponseWriter, sections []domain.ExportSection) {
	var buf bytes.Buffer
	for i, section := range sections {
		if i > 0 {
			buf.WriteByte('\n')
		}
		buf.WriteString("# " + section.Driver + "\n")

		cw := csv.NewWriter(&buf)
		//nolint:errcheck — bytes.Buffer writes never fail.
		cw.Write(csvHeaders)
		for _, row := range section.Rows {
			//nolint:errcheck
			cw.Write(exportRowToRecord(row))
		}
		cw.Flush()
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="trip_data.csv"`)
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}

// exportRowToRecord encodes one export row as a flat string slice in
// csvHeaders order.
func exportRowToRecord(r domain.ExportRow) []string {
	return []string{
		strconv.Itoa(r.Seq),
		r.Driver,
		r.DispDate,
		r.InvoiceNo,
		r.Customer,
		r.Destination,
		r.InvoiceDate,
		r.Vehicle,
		r.OutTime,
		r.InTime,
		strconv.Itoa(r.OutKM),
		strconv.Itoa(r.InKM),
		strconv.Itoa(r.DiffKM),
	}
}
