package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/KNehe/swimmy/internal/api/httpx"
	"github.com/KNehe/swimmy/internal/domain"
	"github.com/KNehe/swimmy/internal/models"
	"github.com/KNehe/swimmy/internal/services"
	"github.com/go-chi/chi/v5"
)

type AuthHandler struct {
	users *services.UserService
}

func NewAuthHandler(users *services.UserService) *AuthHandler {
	return &AuthHandler{users: users}
}

type registerReq struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authEnvelope struct {
	Status  int               `json:"status"`
	Message string            `json:"message"`
	User    models.PublicUser `json:"user"`
	Refresh string            `json:"refresh"`
	Access  string            `json:"access"`
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "bad_request", "malformed body", nil)
		return
	}
	u, pair, err := h.users.Register(req.Username, req.Email, req.Password)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, authEnvelope{
		Status:  http.StatusCreated,
		Message: domain.UserRegistrationMessage,
		User:    u.Public(),
		Refresh: pair.Refresh,
		Access:  pair.Access,
	})
}

type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "bad_request", "malformed body", nil)
		return
	}
	u, pair, err := h.users.Login(req.Email, req.Password)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, authEnvelope{
		Status:  http.StatusOK,
		Message: domain.RequestSuccessfulMessage,
		User:    u.Public(),
		Refresh: pair.Refresh,
		Access:  pair.Access,
	})
}

type refreshReq struct {
	Refresh string `json:"refresh"`
}

func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req refreshReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Refresh == "" {
		httpx.WriteError(w, http.StatusBadRequest, "bad_request", "refresh token required", nil)
		return
	}
	access, err := h.users.Refresh(req.Refresh)
	if err != nil {
		httpx.WriteError(w, http.StatusUnauthorized, "invalid_token", "invalid refresh token", nil)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]string{"access": access})
}

type resetRequestReq struct {
	Email string `json:"email"`
}

func (h *AuthHandler) ResetPasswordRequest(w http.ResponseWriter, r *http.Request) {
	var req resetRequestReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "bad_request", "malformed body", nil)
		return
	}
	if err := h.users.RequestPasswordReset(req.Email); err != nil {
		writeDomainError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]string{"message": domain.RequestPasswordResetMessage})
}

type resetConfirmReq struct {
	NewPassword string `json:"new_password"`
}

func (h *AuthHandler) ResetPasswordConfirm(w http.ResponseWriter, r *http.Request) {
	var req resetConfirmReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "bad_request", "malformed body", nil)
		return
	}
	uidb64 := chi.URLParam(r, "uidb64")
	token := chi.URLParam(r, "token")
	if err := h.users.ConfirmPasswordReset(uidb64, token, req.NewPassword); err != nil {
		writeDomainError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]string{"message": domain.PasswordChangedMessage})
}
