package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/KNehe/swimmy/internal/api/httpx"
	"github.com/KNehe/swimmy/internal/api/validate"
	"github.com/KNehe/swimmy/internal/middleware"
	"github.com/KNehe/swimmy/internal/services"
	"github.com/go-chi/chi/v5"
)

type BookingHandler struct {
	bookings *services.BookingService
}

func NewBookingHandler(bookings *services.BookingService) *BookingHandler {
	return &BookingHandler{bookings: bookings}
}

type bookingReq struct {
	Pool          string     `json:"pool"`
	StartDatetime *time.Time `json:"start_datetime"`
	EndDatetime   *time.Time `json:"end_datetime"`
}

func (h *BookingHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req bookingReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.StartDatetime == nil || req.EndDatetime == nil {
		httpx.WriteError(w, http.StatusBadRequest, "bad_request", "pool, start_datetime and end_datetime required", nil)
		return
	}
	b, err := h.bookings.Create(middleware.CallerFrom(r.Context()), req.Pool, *req.StartDatetime, *req.EndDatetime)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, b)
}

func (h *BookingHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, offset := pageParams(r)
	out, err := h.bookings.List(middleware.CallerFrom(r.Context()), limit, offset)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

// Recent is the caller-scoped listing: own bookings only, newest first.
func (h *BookingHandler) Recent(w http.ResponseWriter, r *http.Request) {
	limit, offset := pageParams(r)
	out, err := h.bookings.RecentForCaller(middleware.CallerFrom(r.Context()), limit, offset)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

func (h *BookingHandler) Get(w http.ResponseWriter, r *http.Request) {
	b, err := h.bookings.Get(middleware.CallerFrom(r.Context()), chi.URLParam(r, "slug"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, b)
}

func (h *BookingHandler) Update(w http.ResponseWriter, r *http.Request) {
	slugKey := chi.URLParam(r, "slug")
	caller := middleware.CallerFrom(r.Context())

	existing, err := h.bookings.Get(caller, slugKey)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	req := bookingReq{
		Pool:          existing.PoolSlug,
		StartDatetime: &existing.StartDatetime,
		EndDatetime:   &existing.EndDatetime,
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "bad_request", "malformed body", nil)
		return
	}
	// an explicit JSON null resets a prefilled pointer
	var errs validate.Errs
	if req.StartDatetime == nil {
		errs = append(errs, validate.ErrField{Field: "start_datetime", Msg: "may not be null"})
	}
	if req.EndDatetime == nil {
		errs = append(errs, validate.ErrField{Field: "end_datetime", Msg: "may not be null"})
	}
	if errs != nil {
		writeDomainError(w, errs)
		return
	}

	b, err := h.bookings.Update(caller, slugKey, req.Pool, *req.StartDatetime, *req.EndDatetime)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, b)
}

func (h *BookingHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.bookings.Delete(middleware.CallerFrom(r.Context()), chi.URLParam(r, "slug")); err != nil {
		writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
