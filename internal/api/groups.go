package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

type createGroupRequest struct {
	CreatorID string   `json:"creatorId"`
	Name      string   `json:"name"`
	MemberIDs []string `json:"memberIds"`
}

func (h *Handler) createGroup(w http.ResponseWriter, r *http.Request) {
	var req createGroupRequest
	if !decode(w, r, &req) {
		return
	}
	group, err := h.groups.CreateGroup(r.Context(), req.CreatorID, req.Name, req.MemberIDs)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, group)
}

func (h *Handler) listGroups(w http.ResponseWriter, r *http.Request) {
	groups, err := h.groups.ListGroups(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, groups)
}

func (h *Handler) getGroup(w http.ResponseWriter, r *http.Request) {
	group, err := h.groups.GetGroup(r.Context(), chi.URLParam(r, "groupID"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, group)
}

func (h *Handler) groupDebts(w http.ResponseWriter, r *http.Request) {
	debts, err := h.groups.SimplifiedDebts(r.Context(), chi.URLParam(r, "groupID"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, debts)
}
