package domain

// ExportRow is a single trip flattened to strings for the bulk export.
// It carries exactly the persisted field set, but with times rendered in the
// human display convention ("H:MM AM/PM") instead of the canonical form.
type ExportRow struct {
	Seq         int    `json:"s_no"`
	Driver      string `json:"driver"`
	DispDate    string `json:"disp_date"` // "2006-01-02" formatted date
	InvoiceNo   string `json:"invoice_no"`
	Customer    string `json:"customer"`
	Destination string `json:"destination"`
	InvoiceDate string `json:"invoice_date"`
	Vehicle     string `json:"vehicle"`
	OutTime     string `json:"out_time"` // "H:MM AM/PM" display form
	InTime      string `json:"in_time"`
	OutKM       int    `json:"out_km"`
	InKM        int    `json:"in_km"`
	DiffKM      int    `json:"diff_km"`
}

// ExportSection is one driver's table in the export artifact — the
// equivalent of one named sheet in the original workbook download.
// Drivers with no records contribute no section.
type ExportSection struct {
	Driver string      `json:"driver"`
	Rows   []ExportRow `json:"rows"`
}

// NewExportRow flattens a numbered trip into its export representation.
func NewExportRow(t NumberedTrip) ExportRow {
	return ExportRow{
		Seq:         t.Seq,
		Driver:      t.Driver,
		DispDate:    t.DispatchDate.Format(DateFormat),
		InvoiceNo:   t.InvoiceNo,
		Customer:    t.Customer,
		Destination: t.Destination,
		InvoiceDate: t.InvoiceDate.Format(DateFormat),
		Vehicle:     t.Vehicle,
		OutTime:     t.OutTime.Format12Hour(),
		InTime:      t.InTime.Format12Hour(),
		OutKM:       t.OutKM,
		InKM:        t.InKM,
		DiffKM:      t.DiffKM,
	}
}
