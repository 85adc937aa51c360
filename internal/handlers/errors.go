package handlers

import (
	"errors"
	"net/http"

	"github.com/hroffice/hroffice_backend/internal/apperrors"
)

// ErrorResponse is a generic error response structure for handlers.
type ErrorResponse struct {
	Error string `json:"error"`
}

// statusForError maps the service error taxonomy to HTTP status codes.
// Unknown errors are treated as internal.
func statusForError(err error) int {
	switch {
	case errors.Is(err, apperrors.ErrValidation),
		errors.Is(err, apperrors.ErrInvalidBinding):
		return http.StatusBadRequest
	case errors.Is(err, apperrors.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperrors.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, apperrors.ErrDuplicate),
		errors.Is(err, apperrors.ErrConflict),
		errors.Is(err, apperrors.ErrInvalidState),
		errors.Is(err, apperrors.ErrIllegalTransition),
		errors.Is(err, apperrors.ErrAlreadyDecided),
		errors.Is(err, apperrors.ErrAlreadyLiquidated),
		errors.Is(err, apperrors.ErrDanglingAttachment):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes the mapped status. Internal errors are not echoed to
// the client; everything else carries the service's message.
func respondError(err error) (int, ErrorResponse) {
	status := statusForError(err)
	if status == http.StatusInternalServerError {
		return status, ErrorResponse{Error: "internal server error"}
	}
	return status, ErrorResponse{Error: err.Error()}
}
