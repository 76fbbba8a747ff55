package handlers

import (
	"net/http"

	"github.com/KNehe/swimmy/internal/api/httpx"
	"github.com/KNehe/swimmy/internal/middleware"
	"github.com/KNehe/swimmy/internal/services"
	"github.com/go-chi/chi/v5"
)

const maxUploadBytes = 32 << 20

type UploadHandler struct {
	uploads *services.UploadService
}

func NewUploadHandler(uploads *services.UploadService) *UploadHandler {
	return &UploadHandler{uploads: uploads}
}

func (h *UploadHandler) Create(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "bad_request", "multipart form required", nil)
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "bad_request", "file field required", nil)
		return
	}
	defer file.Close()

	name := r.FormValue("file_name")
	if name == "" {
		name = header.Filename
	}

	f, err := h.uploads.Save(middleware.CallerFrom(r.Context()), name, file)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, f)
}

func (h *UploadHandler) Get(w http.ResponseWriter, r *http.Request) {
	f, err := h.uploads.Get(middleware.CallerFrom(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, f)
}

func (h *UploadHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, offset := pageParams(r)
	out, err := h.uploads.List(middleware.CallerFrom(r.Context()), limit, offset)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}
