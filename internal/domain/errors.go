package domain

import "errors"

// ErrNotFound is returned by repo and service functions when the requested
// record does not exist in the store (e.g. a sequence number outside the
// current listing). Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned by service functions when input fails business
// rule validation (e.g. unknown driver, negative odometer reading).
// Handlers should map this to HTTP 422 Unprocessable Entity.
var ErrValidation = errors.New("validation error")

// ErrInvalidTime is returned by ParseTimeOfDay when the input matches none of
// the accepted time encodings. Submissions carrying an invalid time are
// rejected in full; no partial record is ever created.
var ErrInvalidTime = errors.New("invalid time format")

// ErrStorage is returned when the backing store cannot be opened or written,
// even after the self-healing re-initialization attempt.
var ErrStorage = errors.New("storage unavailable")
