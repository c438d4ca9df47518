package handler

import (
	"net/http"
	"strings"
)

// errorResponse is the JSON body for every error the API returns.
type errorResponse struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// writeNotFound writes a 404 body. The caller supplies the human-readable
// message (e.g. "trip not found") because the handler is the layer that
// knows what was being looked up.
func writeNotFound(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusNotFound,
		errorResponse{Error: errorDetail{Code: "not_found", Message: message}})
}

// writeValidation writes a 422 body with the message extracted from a
// wrapped domain.ErrValidation error.
func writeValidation(w http.ResponseWriter, err error) {
	writeJSON(w, http.StatusUnprocessableEntity,
		errorResponse{Error: errorDetail{Code: "validation_error", Message: unwrapMessage(err)}})
}

// writeBadRequest writes a 422 body for a request rejected before reaching
// the service layer (e.g. missing or malformed body).
func writeBadRequest(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusUnprocessableEntity,
		errorResponse{Error: errorDetail{Code: "validation_error", Message: message}})
}

// writeInternal writes a 500 body without leaking the underlying error.
func writeInternal(w http.ResponseWriter) {
	writeJSON(w, http.StatusInternalServerError,
		errorResponse{Error: errorDetail{Code: "internal_error", Message: "internal server error"}})
}

// unwrapMessage extracts the human-readable part from a wrapped sentinel
// error, e.g. "validation error: unknown driver \"Kumar\"" → "unknown driver \"Kumar\"".
func unwrapMessage(err error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	for _, prefix := range []string{
		"service.LedgerService.Add: validation error: ",
		"validation error: ",
	} {
		if strings.HasPrefix(msg, prefix) {
			return msg[len(prefix):]
		}
	}
	return msg
}
