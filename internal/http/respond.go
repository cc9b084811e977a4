package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"autocare/internal/core"
	"autocare/internal/records"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// writeDomainError maps error classes to status codes: validation failures
// are 422, dangling references 404, everything else a generic 500 so storage
// details never leak to the client.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case isValidationError(err):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, records.ErrVehicleNotFound):
		writeError(w, http.StatusNotFound, "vehicle not found")
	default:
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func isValidationError(err error) bool {
	for _, sentinel := range []error{
		core.ErrEmptyID, core.ErrEmptyVehicleID, core.ErrEmptyBrand,
		core.ErrEmptyModel, core.ErrInvalidYear, core.ErrInvalidKilometers,
		core.ErrInvalidAmount, core.ErrInvalidCost, core.ErrInvalidType,
		core.ErrEmptyTitle, core.ErrEmptyDescription, core.ErrZeroDate,
	} {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return false
	}
	return true
}

// emptyList substitutes an empty slice so list endpoints never encode null.
func emptyList[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
