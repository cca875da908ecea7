package handler

import (
	"net/http"

	"github.com/eventiq/eventiq/internal/model"
	"github.com/eventiq/eventiq/internal/service"
)

// ExpenseHandler holds HTTP handlers for the budget dashboard.
type ExpenseHandler struct {
	svc *service.ExpenseService
}

// NewExpenseHandler constructs an ExpenseHandler.
func NewExpenseHandler(svc *service.ExpenseService) *ExpenseHandler {
	return &ExpenseHandler{svc: svc}
}

// AddExpense handles POST /api/expenses.
func (h *ExpenseHandler) AddExpense(w http.ResponseWriter, r *http.Request) {
	claims, _ := ClaimsFromContext(r.Context())

	var req model.CreateExpenseRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	expense, err := h.svc.AddExpense(r.Context(), claims.Subject, req)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, expense)
}

// ListExpenses handles GET /api/expenses.
func (h *ExpenseHandler) ListExpenses(w http.ResponseWriter, r *http.Request) {
	claims, _ := ClaimsFromContext(r.Context())

	expenses, err := h.svc.RecentExpenses(r.Context(), claims.Subject)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list expenses")
		return
	}
	if expenses == nil {
		expenses = []model.Expense{}
	}
	writeJSON(w, http.StatusOK, expenses)
}

// ExpenseSummary handles GET /api/expenses/summary.
func (h *ExpenseHandler) ExpenseSummary(w http.ResponseWriter, r *http.Request) {
	claims, _ := ClaimsFromContext(r.Context())

	summary, err := h.svc.Summary(r.Context(), claims.Subject)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to compute summary")
		return
	}
	writeJSON(w, http.StatusOK, summary)
}
