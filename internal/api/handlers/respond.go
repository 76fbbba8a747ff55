package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/KNehe/swimmy/internal/api/httpx"
	"github.com/KNehe/swimmy/internal/api/validate"
	"github.com/KNehe/swimmy/internal/domain"
	"github.com/KNehe/swimmy/internal/services"
)

// writeDomainError translates service errors to the wire. Anything not in
// the taxonomy becomes an opaque 500.
func writeDomainError(w http.ResponseWriter, err error) {
	var errs validate.Errs
	if errors.As(err, &errs) {
		httpx.WriteError(w, http.StatusBadRequest, "validation_failed", "validation failed", errs)
		return
	}

	switch {
	case errors.Is(err, domain.ErrNotFound):
		httpx.WriteError(w, http.StatusNotFound, "not_found", err.Error(), nil)
	case errors.Is(err, domain.ErrUnauthenticated):
		httpx.WriteError(w, http.StatusUnauthorized, "not_authenticated", err.Error(), nil)
	case errors.Is(err, domain.ErrPermissionDenied):
		httpx.WriteError(w, http.StatusForbidden, "permission_denied", err.Error(), nil)
	case errors.Is(err, domain.ErrDuplicateBooking),
		errors.Is(err, domain.ErrDuplicateRating):
		httpx.WriteError(w, http.StatusBadRequest, "integrity_error", err.Error(), nil)
	case errors.Is(err, domain.ErrUserNotFound):
		httpx.WriteError(w, http.StatusBadRequest, "validation_failed", "validation failed",
			validate.Errs{{Field: "email", Msg: err.Error()}})
	case errors.Is(err, domain.ErrUnknownUser),
		errors.Is(err, domain.ErrInvalidResetLink):
		httpx.WriteError(w, http.StatusUnauthorized, "invalid_request", err.Error(), nil)
	case errors.Is(err, domain.ErrInvalidRequest):
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", err.Error(), nil)
	case errors.Is(err, domain.ErrMailDispatch):
		httpx.WriteError(w, http.StatusInternalServerError, "mail_dispatch_failed", err.Error(), nil)
	case errors.Is(err, services.ErrAuthFailed):
		httpx.WriteJSON(w, http.StatusUnauthorized, map[string]string{"detail": err.Error()})
	default:
		httpx.WriteError(w, http.StatusInternalServerError, "internal_error", "internal error", nil)
	}
}

const defaultPageSize = 10

func pageParams(r *http.Request) (limit, offset int) {
	limit = defaultPageSize
	offset = 0
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}
	if v := r.URL.Query().Get("offset"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			offset = n
		}
	}
	return limit, offset
}
