package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/Harishumapathy08/tripdata/internal/domain"
)

// tripRequest is the submission body for POST /trips — one atomic batch of
// form field values. Dates are "2006-01-02"; times may use any accepted
// encoding (the dropdown's "HH:MM", "H:MM AM/PM", or compact "HHMM").
type tripRequest struct {
	Driver      string             `json:"driver"`
	DispDate    openapi_types.Date `json:"disp_date"`
	InvoiceNo   string             `json:"invoice_no"`
	Customer    string             `json:"customer"`
	Destination string             `json:"destination"`
	InvoiceDate openapi_types.Date `json:"invoice_date"`
	Vehicle     string             `json:"vehicle"`
	OutTime     string             `json:"out_time"`
	InTime      string             `json:"in_time"`
	OutKM       int                `json:"out_km"`
	InKM        int                `json:"in_km"`
}

// tripResponse is one listed record. Times are the canonical "HH:MM" form;
// the human display convention is used only by the export artifact.
type tripResponse struct {
	Seq         int                `json:"s_no"`
	Driver      string             `json:"driver"`
	DispDate    openapi_types.Date `json:"disp_date"`
	InvoiceNo   string             `json:"invoice_no"`
	Customer    string             `json:"customer"`
	Destination string             `json:"destination"`
	InvoiceDate openapi_types.Date `json:"invoice_date"`
	Vehicle     string             `json:"vehicle"`
	OutTime     string             `json:"out_time"`
	InTime      string             `json:"in_time"`
	OutKM       int                `json:"out_km"`
	InKM        int                `json:"in_km"`
	DiffKM      int                `json:"diff_km"`
	CreatedAt   *time.Time         `json:"created_at,omitempty"`
}

// CreateTrip handles POST /trips.
// Submission is atomic accept-or-reject: a failed validation creates nothing.
func (s *Server) CreateTrip(w http.ResponseWriter, r *http.Request) {
	var req tripRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "request body is not valid JSON: "+err.Error())
		return
	}

	trip, err := requestToTrip(req)
	if err != nil {
		writeBadRequest(w, err.Error())
		return
	}

	created, err := s.ledger.Add(r.Context(), trip)
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			writeValidation(w, err)
			return
		}
		writeInternal(w)
		return
	}

	writeJSON(w, http.StatusCreated, tripToResponse(created))
}

// ListTrips handles GET /trips. An optional ?driver= query parameter scopes
// the listing to one driver; without it every record is returned. Sequence
// numbers are 1..N relative to the requested scope.
func (s *Server) ListTrips(w http.ResponseWriter, r *http.Request) {
	scope := domain.Scope(r.URL.Query().Get("driver"))

	trips, err := s.ledger.List(r.Context(), scope)
	if err != nil {
		writeInternal(w)
		return
	}

	data := make([]tripResponse, len(trips))
	for i, t := range trips {
		data[i] = tripToResponse(t)
	}
	writeJSON(w, http.StatusOK, struct {
		Data []tripResponse `json:"data"`
	}{Data: data})
}

// DeleteTrip handles DELETE /trips/{seq}?driver=X.
// The sequence number is understood relative to the same scope as the
// listing the client displayed. It is re-resolved against a fresh listing
// inside the service, but if another mutation landed between the client's
// GET and this DELETE the number may name a different row than the one the
// user saw — a known staleness window inherent to sequence-number handles.
func (s *Server) DeleteTrip(w http.ResponseWriter, r *http.Request) {
	seq, err := strconv.Atoi(chi.URLParam(r, "seq"))
	if err != nil {
		writeBadRequest(w, "sequence number must be an integer")
		return
	}
	scope := domain.Scope(r.URL.Query().Get("driver"))

	if err := s.ledger.DeleteBySequence(r.Context(), scope, seq); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeNotFound(w, "trip not found")
			return
		}
		writeInternal(w)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ListDrivers handles GET /drivers: the fixed set the form's driver
// selector is populated from.
func (s *Server) ListDrivers(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, struct {
		Drivers []string `json:"drivers"`
	}{Drivers: s.ledger.Drivers()})
}

// ListTimeOptions handles GET /trips/options/times: the 96-value
// quarter-hour lattice the form's time dropdowns are populated from.
func (s *Server) ListTimeOptions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, struct {
		Times []string `json:"times"`
	}{Times: domain.TimeOptions()})
}

// --- mapping helpers --------------------------------------------------------

// requestToTrip converts a submission body into a domain.Trip, normalizing
// both time fields. A time that parses under none of the accepted encodings
// rejects the whole submission with a field-specific message.
func requestToTrip(req tripRequest) (domain.Trip, error) {
	outTime, err := domain.ParseTimeOfDay(req.OutTime)
	if err != nil {
		return domain.Trip{}, errors.New("out_time: " + err.Error())
	}
	inTime, err := domain.ParseTimeOfDay(req.InTime)
	if err != nil {
		return domain.Trip{}, errors.New("in_time: " + err.Error())
	}

	return domain.Trip{
		Driver:       req.Driver,
		DispatchDate: req.DispDate.Time,
		InvoiceNo:    req.InvoiceNo,
		Customer:     req.Customer,
		Destination:  req.Destination,
		InvoiceDate:  req.InvoiceDate.Time,
		Vehicle:      req.Vehicle,
		OutTime:      outTime,
		InTime:       inTime,
		OutKM:        req.OutKM,
		InKM:         req.InKM,
	}, nil
}

// tripToResponse converts a numbered trip into its wire representation.
func tripToResponse(t domain.NumberedTrip) tripResponse {
	resp := tripResponse{
		Seq:         t.Seq,
		Driver:      t.Driver,
		DispDate:    openapi_types.Date{Time: t.DispatchDate},
		InvoiceNo:   t.InvoiceNo,
		Customer:    t.Customer,
		Destination: t.Destination,
		InvoiceDate: openapi_types.Date{Time: t.InvoiceDate},
		Vehicle:     t.Vehicle,
		OutTime:     t.OutTime.String(),
		InTime:      t.InTime.String(),
		OutKM:       t.OutKM,
		InKM:        t.InKM,
		DiffKM:      t.DiffKM,
	}
	if !t.CreatedAt.IsZero() {
		ca := t.CreatedAt
		resp.CreatedAt = &ca
	}
	return resp
}
