package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/charmin006/fintrack/internal/core"
)

type errorResponse struct {
	Error string `json:"error"`
}

// writeJSON serializes v with the given status. Encoding failures are
// logged; headers are already gone by then.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

// writeError maps an error to a JSON error body. Validation errors from
// the domain become 400s; everything else is reported as given.
func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

// writeDomainError picks the status from the error kind: domain
// validation failures are the client's fault, the rest are 500s.
func writeDomainError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	if isValidationError(err) {
		status = http.StatusBadRequest
	}
	writeError(w, status, err)
}

func isValidationError(err error) bool {
	return errors.Is(err, core.ErrInvalidDate) ||
		errors.Is(err, core.ErrInvalidAmount) ||
		errors.Is(err, core.ErrEmptyTitle) ||
		errors.Is(err, core.ErrEmptyCategory) ||
		errors.Is(err, core.ErrInvalidType)
}

// emptyList substitutes an empty slice for nil so list endpoints never
// serialize to JSON null.
func emptyList[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
