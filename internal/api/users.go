package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/nkhare/divvy/internal/service"
)

type createUserRequest struct {
	Name      string `json:"name"`
	AvatarURL string `json:"avatarUrl,omitempty"`
}

type updateUserRequest struct {
	Name           *string `json:"name,omitempty"`
	AvatarURL      *string `json:"avatarUrl,omitempty"`
	PaymentMessage *string `json:"paymentMessage,omitempty"`
}

func (h *Handler) createUser(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if !decode(w, r, &req) {
		return
	}
	user, err := h.users.CreateUser(r.Context(), req.Name, req.AvatarURL)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, user)
}

func (h *Handler) listUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.ListUsers(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, users)
}

func (h *Handler) getUser(w http.ResponseWriter, r *http.Request) {
	user, err := h.users.GetUser(r.Context(), chi.URLParam(r, "userID"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (h *Handler) updateUser(w http.ResponseWriter, r *http.Request) {
	var req updateUserRequest
	if !decode(w, r, &req) {
		return
	}
	user, err := h.users.UpdateProfile(r.Context(), chi.URLParam(r, "userID"), service.ProfileUpdate{
		Name:           req.Name,
		AvatarURL:      req.AvatarURL,
		PaymentMessage: req.PaymentMessage,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}
