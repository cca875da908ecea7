package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/eventiq/eventiq/internal/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ExpenseRepository handles persistence for the budget dashboard.
type ExpenseRepository struct {
	db *pgxpool.Pool
}

// NewExpenseRepository constructs an ExpenseRepository.
func NewExpenseRepository(db *pgxpool.Pool) *ExpenseRepository {
	return &ExpenseRepository{db: db}
}

// Create inserts a new expense record.
func (r *ExpenseRepository) Create(ctx context.Context, e model.Expense) (*model.Expense, error) {
	e.ID = uuid.New().String()
	e.CreatedAt = time.Now().UTC()

	_, err := r.db.Exec(ctx,
		`INSERT INTO expenses (id, user_id, title, amount, category, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		e.ID, e.UserID, e.Title, e.Amount, e.Category, e.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("insert expense: %w", err)
	}
	return &e, nil
}

// ListRecent returns a user's most recent expenses.
func (r *ExpenseRepository) ListRecent(ctx context.Context, userID string, limit int) ([]model.Expense, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, user_id, title, amount, category, created_at
		 FROM expenses
		 WHERE user_id = $1
		 ORDER BY created_at DESC
		 LIMIT $2`,
		userID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	defer rows.Close()

	var expenses []model.Expense
	for rows.Next() {
		var e model.Expense
		if err := rows.Scan(&e.ID, &e.UserID, &e.Title, &e.Amount, &e.Category, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan expense: %w", err)
		}
		expenses = append(expenses, e)
	}
	return expenses, rows.Err()
}

// SumSince totals a user's spending on or after the given instant.
func (r *ExpenseRepository) SumSince(ctx context.Context, userID string, since time.Time) (float64, error) {
	var total float64
	err := r.db.QueryRow(ctx,
		`SELECT COALESCE(SUM(amount), 0)
		 FROM expenses
		 WHERE user_id = $1 AND created_at >= $2`,
		userID, since,
	).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("sum expenses: %w", err)
	}
	return total, nil
}
