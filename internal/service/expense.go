package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/eventiq/eventiq/internal/model"
)

// recentExpenseLimit caps the dashboard's recent-expense list.
const recentExpenseLimit = 5

// ExpenseStore is the persistence surface the expense service needs.
type ExpenseStore interface {
	Create(ctx context.Context, e model.Expense) (*model.Expense, error)
	ListRecent(ctx context.Context, userID string, limit int) ([]model.Expense, error)
	SumSince(ctx context.Context, userID string, since time.Time) (float64, error)
}

// ExpenseService backs the budget dashboard.
type ExpenseService struct {
	expenses ExpenseStore
	now      func() time.Time
}

// NewExpenseService constructs an ExpenseService.
func NewExpenseService(expenses ExpenseStore) *ExpenseService {
	return &ExpenseService{expenses: expenses, now: time.Now}
}

// AddExpense records a spending entry for a user.
func (s *ExpenseService) AddExpense(ctx context.Context, userID string, req model.CreateExpenseRequest) (*model.Expense, error) {
	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" {
		return nil, fmt.Errorf("%w: title", ErrMissingField)
	}
	if req.Amount < 0 {
		return nil, fmt.Errorf("amount must not be negative")
	}
	return s.expenses.Create(ctx, model.Expense{
		UserID:   userID,
		Title:    req.Title,
		Amount:   req.Amount,
		Category: strings.TrimSpace(req.Category),
	})
}

// RecentExpenses returns the user's latest entries for the dashboard.
func (s *ExpenseService) RecentExpenses(ctx context.Context, userID string) ([]model.Expense, error) {
	return s.expenses.ListRecent(ctx, userID, recentExpenseLimit)
}

// Summary aggregates month-to-date and year-to-date totals.
func (s *ExpenseService) Summary(ctx context.Context, userID string) (*model.ExpenseSummary, error) {
	now := s.now().UTC()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	yearStart := time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)

	monthly, err := s.expenses.SumSince(ctx, userID, monthStart)
	if err != nil {
		return nil, err
	}
	yearly, err := s.expenses.SumSince(ctx, userID, yearStart)
	if err != nil {
		return nil, err
	}
	return &model.ExpenseSummary{MonthlyTotal: monthly, YearlyTotal: yearly}, nil
}
