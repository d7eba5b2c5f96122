package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"arenda/internal/database"
)

// errorResponse is the envelope every failed request gets.
type errorResponse struct {
	Error       string `json:"error"`
	Description string `json:"description"`
}

func writeJSON(w http.ResponseWriter, statusCode int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, statusCode int, category, description string) {
	writeJSON(w, statusCode, errorResponse{Error: category, Description: description})
}

// writeServiceError maps a service error onto the HTTP taxonomy.
// Unrecognized errors become an opaque 500.
func (s *Server) writeServiceError(w http.ResponseWriter, err error) {
	status, category := classifyError(err)
	if status == http.StatusInternalServerError {
		s.logger.Error().Err(err).Msg("unhandled service error")
		writeError(w, status, category, "internal server error")
		return
	}
	writeError(w, status, category, err.Error())
}

func classifyError(err error) (int, string) {
	switch {
	case errors.Is(err, database.ErrUserNotFound),
		errors.Is(err, database.ErrItemNotFound),
		errors.Is(err, database.ErrRequestNotFound),
		errors.Is(err, database.ErrBookingNotFound):
		return http.StatusNotFound, "not found"

	case errors.Is(err, database.ErrNotOwner),
		errors.Is(err, database.ErrNotBooker),
		errors.Is(err, database.ErrNotApproved):
		return http.StatusForbidden, "forbidden"

	case errors.Is(err, database.ErrEmailTaken),
		errors.Is(err, database.ErrUserHasData):
		return http.StatusConflict, "conflict"

	case errors.Is(err, database.ErrNotAvailable):
		return http.StatusBadRequest, "unavailable"

	case errors.Is(err, database.ErrBlankField),
		errors.Is(err, database.ErrInvalidDateRange),
		errors.Is(err, database.ErrUnknownState),
		errors.Is(err, database.ErrNegativePage),
		errors.Is(err, database.ErrNoItems),
		errors.Is(err, database.ErrNoBookings),
		errors.Is(err, database.ErrBookingNotOver):
		return http.StatusBadRequest, "validation"
	}

	return http.StatusInternalServerError, "internal"
}
