package handlers

import (
	"net/http"

	"github.com/KNehe/swimmy/internal/api/httpx"
	"github.com/KNehe/swimmy/internal/middleware"
	"github.com/KNehe/swimmy/internal/models"
	"github.com/KNehe/swimmy/internal/services"
	"github.com/go-chi/chi/v5"
)

type UserHandler struct {
	users *services.UserService
}

func NewUserHandler(users *services.UserService) *UserHandler {
	return &UserHandler{users: users}
}

func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, offset := pageParams(r)
	us, err := h.users.List(middleware.CallerFrom(r.Context()), limit, offset)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	out := make([]models.PublicUser, 0, len(us))
	for _, u := range us {
		out = append(out, u.Public())
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	u, err := h.users.Get(chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, u.Public())
}
