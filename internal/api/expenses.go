package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/nkhare/divvy/internal/service"
)

type expenseRequest struct {
	ActorID string `json:"actorId"`
	service.ExpenseInput
}

func (h *Handler) createExpense(w http.ResponseWriter, r *http.Request) {
	var req expenseRequest
	if !decode(w, r, &req) {
		return
	}
	expense, err := h.expenses.AddExpense(r.Context(), req.ActorID, req.ExpenseInput)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, expense)
}

func (h *Handler) listExpenses(w http.ResponseWriter, r *http.Request) {
	expenses, err := h.expenses.ListExpenses(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, expenses)
}

func (h *Handler) getExpense(w http.ResponseWriter, r *http.Request) {
	expense, err := h.expenses.GetExpense(r.Context(), chi.URLParam(r, "expenseID"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, expense)
}

func (h *Handler) updateExpense(w http.ResponseWriter, r *http.Request) {
	var req expenseRequest
	if !decode(w, r, &req) {
		return
	}
	expense, err := h.expenses.UpdateExpense(r.Context(), req.ActorID, chi.URLParam(r, "expenseID"), req.ExpenseInput)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, expense)
}

func (h *Handler) expenseHistory(w http.ResponseWriter, r *http.Request) {
	history, err := h.expenses.History(r.Context(), chi.URLParam(r, "expenseID"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, history)
}
