package service

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/eventiq/eventiq/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeExpenseStore struct {
	entries []model.Expense
	next    int
}

func (f *fakeExpenseStore) Create(ctx context.Context, e model.Expense) (*model.Expense, error) {
	f.next++
	e.ID = "exp-" + strconv.Itoa(f.next)
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}
	f.entries = append(f.entries, e)
	copied := e
	return &copied, nil
}

func (f *fakeExpenseStore) ListRecent(ctx context.Context, userID string, limit int) ([]model.Expense, error) {
	var out []model.Expense
	for i := len(f.entries) - 1; i >= 0 && len(out) < limit; i-- {
		if f.entries[i].UserID == userID {
			out = append(out, f.entries[i])
		}
	}
	return out, nil
}

func (f *fakeExpenseStore) SumSince(ctx context.Context, userID string, since time.Time) (float64, error) {
	var total float64
	for _, e := range f.entries {
		if e.UserID == userID && !e.CreatedAt.Before(since) {
			total += e.Amount
		}
	}
	return total, nil
}

func TestAddExpense(t *testing.T) {
	svc := NewExpenseService(&fakeExpenseStore{})

	exp, err := svc.AddExpense(context.Background(), "user-1", model.CreateExpenseRequest{
		Title:    "  Venue deposit  ",
		Amount:   250.50,
		Category: "venue",
	})
	require.NoError(t, err)
	assert.Equal(t, "Venue deposit", exp.Title)
	assert.Equal(t, 250.50, exp.Amount)
	assert.Equal(t, "user-1", exp.UserID)

	_, err = svc.AddExpense(context.Background(), "user-1", model.CreateExpenseRequest{Amount: 10})
	assert.ErrorIs(t, err, ErrMissingField)

	_, err = svc.AddExpense(context.Background(), "user-1", model.CreateExpenseRequest{Title: "x", Amount: -1})
	assert.Error(t, err)
}

func TestRecentExpenses_LimitAndOwnership(t *testing.T) {
	store := &fakeExpenseStore{}
	svc := NewExpenseService(store)

	for i := 0; i < 7; i++ {
		_, err := svc.AddExpense(context.Background(), "user-1", model.CreateExpenseRequest{
			Title:  "entry " + strconv.Itoa(i),
			Amount: 1,
		})
		require.NoError(t, err)
	}
	_, err := svc.AddExpense(context.Background(), "user-2", model.CreateExpenseRequest{Title: "other", Amount: 1})
	require.NoError(t, err)

	recent, err := svc.RecentExpenses(context.Background(), "user-1")
	require.NoError(t, err)
	require.Len(t, recent, 5)
	assert.Equal(t, "entry 6", recent[0].Title)
	for _, e := range recent {
		assert.Equal(t, "user-1", e.UserID)
	}
}

func TestExpenseSummary(t *testing.T) {
	store := &fakeExpenseStore{}
	svc := NewExpenseService(store)
	svc.now = func() time.Time {
		return time.Date(2026, time.March, 15, 12, 0, 0, 0, time.UTC)
	}

	seed := func(amount float64, at time.Time) {
		store.entries = append(store.entries, model.Expense{
			UserID:    "user-1",
			Title:     "seeded",
			Amount:    amount,
			CreatedAt: at,
		})
	}
	seed(100, time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC))   // this month
	seed(40, time.Date(2026, time.February, 10, 0, 0, 0, 0, time.UTC)) // this year, last month
	seed(999, time.Date(2025, time.December, 31, 0, 0, 0, 0, time.UTC)) // last year

	summary, err := svc.Summary(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, 100.0, summary.MonthlyTotal)
	assert.Equal(t, 140.0, summary.YearlyTotal)
}
