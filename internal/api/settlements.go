package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/nkhare/divvy/internal/service"
)

type recordSettlementRequest struct {
	PayerID string                    `json:"payerId"`
	PayeeID string                    `json:"payeeId"`
	Entries []service.SettlementEntry `json:"entries"`
}

type netBalanceResponse struct {
	UserID      string  `json:"userId"`
	OtherUserID string  `json:"otherUserId"`
	NetBalance  float64 `json:"netBalance"`
}

func (h *Handler) balances(w http.ResponseWriter, r *http.Request) {
	summary, err := h.settlements.Balances(r.Context(), chi.URLParam(r, "userID"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

func (h *Handler) netBalance(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	otherID := chi.URLParam(r, "otherID")
	balance, err := h.settlements.NetBalance(r.Context(), userID, otherID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, netBalanceResponse{
		UserID:      userID,
		OtherUserID: otherID,
		NetBalance:  balance,
	})
}

func (h *Handler) settlementPlan(w http.ResponseWriter, r *http.Request) {
	payer := r.URL.Query().Get("payer")
	payee := r.URL.Query().Get("payee")
	if payer == "" || payee == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Code:    http.StatusBadRequest,
			Message: "payer and payee query parameters are required",
		})
		return
	}
	plan, err := h.settlements.Plan(r.Context(), payer, payee)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, plan)
}

func (h *Handler) recordSettlement(w http.ResponseWriter, r *http.Request) {
	var req recordSettlementRequest
	if !decode(w, r, &req) {
		return
	}
	recorded, err := h.settlements.Record(r.Context(), req.PayerID, req.PayeeID, req.Entries)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, recorded)
}
