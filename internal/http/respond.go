package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"inventory/internal/core"
	"inventory/internal/log"
	"inventory/internal/storage"
)

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if payload != nil {
		_ = json.NewEncoder(w).Encode(payload)
	}
}

type errorBody struct {
	Error string `json:"error"`
}

func respondError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, errorBody{Error: msg})
}

// respondServiceError maps service errors onto HTTP statuses: validation
// sentinels become 422, missing records 404, everything else 500.
func (s *Server) respondServiceError(w http.ResponseWriter, r *http.Request, err error, domain string) {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		respondError(w, http.StatusNotFound, "record not found")
	case isValidationError(err):
		respondError(w, http.StatusUnprocessableEntity, err.Error())
	default:
		s.slog.LogError(r.Context(), "Request failed", err, log.ComponentRecord, "",
			log.NewFields().WithRecord(domain, ""))
		respondError(w, http.StatusInternalServerError, "internal error")
	}
}

func isValidationError(err error) bool {
	for _, sentinel := range []error{
		core.ErrEmptyName,
		core.ErrEmptyCategory,
		core.ErrEmptyEmail,
		core.ErrInvalidAmount,
		core.ErrInvalidPrice,
		core.ErrInvalidQuantity,
	} {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}

// decodeBody decodes a JSON request body into dst. Unknown fields are
// tolerated; malformed scalars degrade per the lenient codec in core.
func decodeBody(r *http.Request, dst any) error {
	defer r.Body.Close()
	return json.NewDecoder(http.MaxBytesReader(nil, r.Body, 1<<20)).Decode(dst)
}
