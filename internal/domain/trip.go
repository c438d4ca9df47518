// Package domain contains the core data types for the trip ledger service.
// This package has zero external dependencies and is imported by every other
// internal package (repo, service, handler).
package domain

import "time"

// Trip represents one logged trip: a driver goes out with an invoice and
// comes back, and the odometer difference is the distance driven.
//
// ID is the durable surrogate identity assigned by the store. It is never
// shown to users — the user-facing handle is a sequence number computed per
// listing (see NumberedTrip). Workbook-backed rows have no durable key, so
// their IDs are positional and only stable between mutations.
type Trip struct {
	ID           int64     `json:"-"`
	Driver       string    `json:"driver"`
	DispatchDate time.Time `json:"disp_date"`
	InvoiceNo    string    `json:"invoice_no"`
	Customer     string    `json:"customer"`
	Destination  string    `json:"destination"`
	InvoiceDate  time.Time `json:"invoice_date"`
	Vehicle      string    `json:"vehicle"`
	OutTime      TimeOfDay `json:"out_time"`
	InTime       TimeOfDay `json:"in_time"`
	OutKM        int       `json:"out_km"`
	InKM         int       `json:"in_km"`
	DiffKM       int       `json:"diff_km"`
	CreatedAt    time.Time `json:"created_at,omitzero"`
}

// NumberedTrip pairs a trip with its 1-based sequence number relative to the
// scope it was listed under. The sequence number is a pure projection over
// storage order — it is recomputed on every listing and never persisted.
type NumberedTrip struct {
	Seq int `json:"s_no"`
	Trip
}

// DistanceDelta computes the distance driven from the two odometer readings.
// An in reading below the out reading clamps to zero rather than going
// negative, matching how the entry form has always treated it.
func DistanceDelta(outKM, inKM int) int {
	if inKM < outKM {
		return 0
	}
	return inKM - outKM
}

// DateFormat is the serialization layout for dispatch and invoice dates,
// both on the wire and in the store.
const DateFormat = "2006-01-02"
