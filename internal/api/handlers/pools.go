package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/KNehe/swimmy/internal/api/httpx"
	"github.com/KNehe/swimmy/internal/middleware"
	"github.com/KNehe/swimmy/internal/services"
	"github.com/go-chi/chi/v5"
)

type PoolHandler struct {
	pools *services.PoolService
}

func NewPoolHandler(pools *services.PoolService) *PoolHandler {
	return &PoolHandler{pools: pools}
}

func (h *PoolHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, offset := pageParams(r)
	out, err := h.pools.List(limit, offset)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

func (h *PoolHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in services.PoolInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "bad_request", "malformed body", nil)
		return
	}
	p, err := h.pools.Create(middleware.CallerFrom(r.Context()), in)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, p)
}

func (h *PoolHandler) Get(w http.ResponseWriter, r *http.Request) {
	p, err := h.pools.Get(chi.URLParam(r, "slug"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, p)
}

// Update serves PUT and PATCH: a PATCH body may omit fields, which keep
// their stored values.
func (h *PoolHandler) Update(w http.ResponseWriter, r *http.Request) {
	slugKey := chi.URLParam(r, "slug")

	existing, err := h.pools.Get(slugKey)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	in := services.PoolInput{
		Name:            existing.Name,
		Location:        existing.Location,
		DayPrice:        existing.DayPrice,
		ThumbnailURL:    existing.ThumbnailURL,
		ImageURL:        existing.ImageURL,
		Width:           existing.Width,
		Length:          existing.Length,
		DepthShallowEnd: existing.DepthShallowEnd,
		DepthDeepEnd:    existing.DepthDeepEnd,
		MaximumPeople:   existing.MaximumPeople,
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "bad_request", "malformed body", nil)
		return
	}

	p, err := h.pools.Update(middleware.CallerFrom(r.Context()), slugKey, in)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, p)
}

func (h *PoolHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.pools.Delete(middleware.CallerFrom(r.Context()), chi.URLParam(r, "slug")); err != nil {
		writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
