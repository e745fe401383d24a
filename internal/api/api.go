// Package api exposes the expense ledger over a JSON REST interface.
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/nkhare/divvy/internal/middleware"
	"github.com/nkhare/divvy/internal/service"
)

// Handler holds the services the REST layer dispatches to.
type Handler struct {
	users       *service.UserService
	groups      *service.GroupService
	expenses    *service.ExpenseService
	settlements *service.SettlementService
}

// NewHandler creates a Handler backed by the given services.
func NewHandler(
	users *service.UserService,
	groups *service.GroupService,
	expenses *service.ExpenseService,
	settlements *service.SettlementService,
) *Handler {
	return &Handler{
		users:       users,
		groups:      groups,
		expenses:    expenses,
		settlements: settlements,
	}
}

// Router builds the full route tree, including health and metrics endpoints.
func (h *Handler) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Logging)
	r.Use(middleware.Metrics)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/v1", func(r chi.Router) {
		r.Route("/users", func(r chi.Router) {
			r.Post("/", h.createUser)
			r.Get("/", h.listUsers)
			r.Get("/{userID}", h.getUser)
			r.Patch("/{userID}", h.updateUser)
		})

		r.Route("/groups", func(r chi.Router) {
			r.Post("/", h.createGroup)
			r.Get("/", h.listGroups)
			r.Get("/{groupID}", h.getGroup)
			r.Get("/{groupID}/debts", h.groupDebts)
		})

		r.Route("/expenses", func(r chi.Router) {
			r.Post("/", h.createExpense)
			r.Get("/", h.listExpenses)
			r.Get("/{expenseID}", h.getExpense)
			r.Put("/{expenseID}", h.updateExpense)
			r.Get("/{expenseID}/history", h.expenseHistory)
		})

		r.Route("/balances", func(r chi.Router) {
			r.Get("/{userID}", h.balances)
			r.Get("/{userID}/{otherID}", h.netBalance)
		})

		r.Route("/settlements", func(r chi.Router) {
			r.Get("/plan", h.settlementPlan)
			r.Post("/", h.recordSettlement)
		})
	})

	return r
}
