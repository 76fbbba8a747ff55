package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/KNehe/swimmy/internal/api/httpx"
	"github.com/KNehe/swimmy/internal/middleware"
	"github.com/KNehe/swimmy/internal/services"
	"github.com/go-chi/chi/v5"
)

type RatingHandler struct {
	ratings *services.RatingService
}

func NewRatingHandler(ratings *services.RatingService) *RatingHandler {
	return &RatingHandler{ratings: ratings}
}

type ratingReq struct {
	Pool  string   `json:"pool"`
	Value *float64 `json:"value"`
}

func (h *RatingHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req ratingReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Value == nil {
		httpx.WriteError(w, http.StatusBadRequest, "bad_request", "pool and value required", nil)
		return
	}
	rt, err := h.ratings.Create(middleware.CallerFrom(r.Context()), req.Pool, *req.Value)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, rt)
}

func (h *RatingHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, offset := pageParams(r)
	out, err := h.ratings.List(middleware.CallerFrom(r.Context()), limit, offset)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

// UserRatings is the caller-scoped listing: own ratings only, newest first.
func (h *RatingHandler) UserRatings(w http.ResponseWriter, r *http.Request) {
	limit, offset := pageParams(r)
	out, err := h.ratings.ForCaller(middleware.CallerFrom(r.Context()), limit, offset)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

func (h *RatingHandler) Get(w http.ResponseWriter, r *http.Request) {
	rt, err := h.ratings.Get(middleware.CallerFrom(r.Context()), chi.URLParam(r, "slug"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, rt)
}

func (h *RatingHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req ratingReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Value == nil {
		httpx.WriteError(w, http.StatusBadRequest, "bad_request", "value required", nil)
		return
	}
	rt, err := h.ratings.Update(middleware.CallerFrom(r.Context()), chi.URLParam(r, "slug"), *req.Value)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, rt)
}

func (h *RatingHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.ratings.Delete(middleware.CallerFrom(r.Context()), chi.URLParam(r, "slug")); err != nil {
		writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
