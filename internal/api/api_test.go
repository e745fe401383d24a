package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nkhare/divvy/internal/models"
	"github.com/nkhare/divvy/internal/service"
	"github.com/nkhare/divvy/internal/storage/memory"
)

func newTestRouter(t *testing.T) chi.Router {
	t.Helper()
	store := memory.New()
	handler := NewHandler(
		service.NewUserService(store),
		service.NewGroupService(store),
		service.NewExpenseService(store),
		service.NewSettlementService(store),
	)
	return handler.Router()
}

func doJSON(t *testing.T, router http.Handler, method, path string, body interface{}, out interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if out != nil && rec.Code < 300 {
		require.NoError(t, json.NewDecoder(rec.Body).Decode(out))
	}
	return rec
}

func createUser(t *testing.T, router http.Handler, name string) models.User {
	t.Helper()
	var user models.User
	rec := doJSON(t, router, http.MethodPost, "/v1/users", map[string]string{"name": name}, &user)
	require.Equal(t, http.StatusCreated, rec.Code)
	return user
}

func TestHealthz(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/healthz", nil, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestUserLifecycle(t *testing.T) {
	router := newTestRouter(t)

	user := createUser(t, router, "Alice")
	assert.NotEmpty(t, user.ID)
	assert.Equal(t, "Alice", user.Name)

	var fetched models.User
	rec := doJSON(t, router, http.MethodGet, "/v1/users/"+user.ID, nil, &fetched)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, user, fetched)

	var updated models.User
	rec = doJSON(t, router, http.MethodPatch, "/v1/users/"+user.ID,
		map[string]string{"paymentMessage": "Venmo @alice"}, &updated)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Venmo @alice", updated.PaymentMessage)

	var users []models.User
	rec = doJSON(t, router, http.MethodGet, "/v1/users", nil, &users)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, users, 1)
}

func TestCreateUserValidationError(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/v1/users", map[string]string{"name": "  "}, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetUserNotFound(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/v1/users/user-missing", nil, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	var resp errorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestGroupEndpoints(t *testing.T) {
	router := newTestRouter(t)

	you := createUser(t, router, "You")
	alice := createUser(t, router, "Alice")

	var group models.Group
	rec := doJSON(t, router, http.MethodPost, "/v1/groups", map[string]interface{}{
		"creatorId": you.ID,
		"name":      "Trip",
		"memberIds": []string{alice.ID},
	}, &group)
	require.Equal(t, http.StatusCreated, rec.Code)
	require.Len(t, group.Members, 2)
	assert.Equal(t, you.ID, group.Members[0].ID)

	var fetched models.Group
	rec = doJSON(t, router, http.MethodGet, "/v1/groups/"+group.ID, nil, &fetched)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Trip", fetched.Name)

	var debts []models.SimplifiedDebt
	rec = doJSON(t, router, http.MethodGet, "/v1/groups/"+group.ID+"/debts", nil, &debts)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, debts)
}

func TestExpenseEndpoints(t *testing.T) {
	router := newTestRouter(t)

	you := createUser(t, router, "You")
	alice := createUser(t, router, "Alice")

	body := map[string]interface{}{
		"actorId":     you.ID,
		"description": "Dinner",
		"amount":      50,
		"paidById":    you.ID,
		"participants": []map[string]interface{}{
			{"userId": you.ID, "share": 25},
			{"userId": alice.ID, "share": 25},
		},
	}
	var expense models.Expense
	rec := doJSON(t, router, http.MethodPost, "/v1/expenses", body, &expense)
	require.Equal(t, http.StatusCreated, rec.Code)
	require.Len(t, expense.History, 1)
	assert.Equal(t, "created this expense", expense.History[0].Action)

	body["amount"] = 60
	body["participants"] = []map[string]interface{}{
		{"userId": you.ID, "share": 30},
		{"userId": alice.ID, "share": 30},
	}
	body["actorId"] = alice.ID
	var updated models.Expense
	rec = doJSON(t, router, http.MethodPut, "/v1/expenses/"+expense.ID, body, &updated)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 60.0, updated.Amount)
	require.Len(t, updated.History, 2)
	assert.Equal(t, "updated the amount", updated.History[1].Action)

	var history []models.AuditEntry
	rec = doJSON(t, router, http.MethodGet, "/v1/expenses/"+expense.ID+"/history", nil, &history)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, history, 2)

	var expenses []models.Expense
	rec = doJSON(t, router, http.MethodGet, "/v1/expenses", nil, &expenses)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, expenses, 1)
}

func TestExpenseInvalidBody(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/v1/expenses", bytes.NewBufferString("{not json"))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestBalanceAndSettlementFlow(t *testing.T) {
	router := newTestRouter(t)

	you := createUser(t, router, "You")
	alice := createUser(t, router, "Alice")

	rec := doJSON(t, router, http.MethodPost, "/v1/expenses", map[string]interface{}{
		"actorId":     alice.ID,
		"description": "Groceries",
		"amount":      40,
		"paidById":    alice.ID,
		"participants": []map[string]interface{}{
			{"userId": you.ID, "share": 20},
			{"userId": alice.ID, "share": 20},
		},
	}, nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	var balance netBalanceResponse
	rec = doJSON(t, router, http.MethodGet, fmt.Sprintf("/v1/balances/%s/%s", you.ID, alice.ID), nil, &balance)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.InDelta(t, -20, balance.NetBalance, 0.01)

	var summary service.BalanceSummary
	rec = doJSON(t, router, http.MethodGet, "/v1/balances/"+you.ID, nil, &summary)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.InDelta(t, -20, summary.Overall[alice.ID], 0.01)

	var plan struct {
		NetAmount float64 `json:"netAmount"`
		Direction string  `json:"direction"`
	}
	rec = doJSON(t, router, http.MethodGet,
		fmt.Sprintf("/v1/settlements/plan?payer=%s&payee=%s", you.ID, alice.ID), nil, &plan)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "current_user_pays", plan.Direction)
	assert.InDelta(t, 20, plan.NetAmount, 0.01)

	var recorded []models.Expense
	rec = doJSON(t, router, http.MethodPost, "/v1/settlements", map[string]interface{}{
		"payerId": you.ID,
		"payeeId": alice.ID,
		"entries": []map[string]interface{}{{"amount": 20}},
	}, &recorded)
	require.Equal(t, http.StatusCreated, rec.Code)
	require.Len(t, recorded, 1)
	assert.True(t, recorded[0].IsSettlement)

	rec = doJSON(t, router, http.MethodGet, fmt.Sprintf("/v1/balances/%s/%s", you.ID, alice.ID), nil, &balance)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.InDelta(t, 0, balance.NetBalance, 0.01)
}

func TestSettlementPlanRequiresParams(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/v1/settlements/plan", nil, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
