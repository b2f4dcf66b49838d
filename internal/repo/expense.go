package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/mittalpriyanshi/globaltrotter/internal/domain"
)

// ExpenseRepo defines the persistence operations for Expenses.
// Expenses have no uniqueness constraint — many may share a category.
type ExpenseRepo interface {
	// Create inserts a new expense and returns the persisted record.
	Create(ctx context.Context, expense domain.Expense) (domain.Expense, error)

	// GetByID retrieves one of the user's expenses by primary key.
	// Returns domain.ErrNotFound if absent or owned by another user.
	GetByID(ctx context.Context, userID, id uuid.UUID) (domain.Expense, error)

	// ListByTrip returns all of the user's expenses for a trip,
	// ordered by spent_at descending, newest first.
	ListByTrip(ctx context.Context, userID, tripID uuid.UUID) ([]domain.Expense, error)

	// ListByCategory returns the user's expenses for a trip restricted to
	// one category (case-insensitive), ordered by spent_at descending.
	// An empty result is a normal outcome, not an error.
	ListByCategory(ctx context.Context, userID, tripID uuid.UUID, category string) ([]domain.Expense, error)

	// Update overwrites the mutable fields of one of the user's expenses.
	Update(ctx context.Context, expense domain.Expense) (domain.Expense, error)

	// Delete removes one of the user's expenses.
	Delete(ctx context.Context, userID, id uuid.UUID) error
}

// pgExpenseRepo is the Postgres implementation of ExpenseRepo.
type pgExpenseRepo struct {
	db db
}

// NewExpenseRepo constructs an ExpenseRepo backed by the provided db connection.
func NewExpenseRepo(db db) ExpenseRepo {
	return &pgExpenseRepo{db: db}
}

const expenseColumns = `id, user_id, trip_id, category, description, amount, currency,
		spent_at, created_at, updated_at`

func (r *pgExpenseRepo) Create(ctx context.Context, expense domain.Expense) (domain.Expense, error) {
	const q = `
		INSERT INTO expenses (user_id, trip_id, category, description, amount, currency, spent_at)
		VALUES (@user_id, @trip_id, @category, @description, @amount, @currency, @spent_at)
		RETURNING ` + expenseColumns

	args := pgx.NamedArgs{
		"user_id":     expense.UserID,
		"trip_id":     expense.TripID,
		"category":    expense.Category,
		"description": expense.Description,
		"amount":      expense.Amount,
		"currency":    expense.Currency,
		"spent_at":    expense.SpentAt,
	}

	result, err := scanExpense(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Expense{}, fmt.Errorf("repo.ExpenseRepo.Create: %w", err)
	}
	return result, nil
}

func (r *pgExpenseRepo) GetByID(ctx context.Context, userID, id uuid.UUID) (domain.Expense, error) {
	const q = `SELECT ` + expenseColumns + ` FROM expenses WHERE id = @id AND user_id = @user_id`

	result, err := scanExpense(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id, "user_id": userID}))
	if err != nil {
		return domain.Expense{}, fmt.Errorf("repo.ExpenseRepo.GetByID: %w", err)
	}
	return result, nil
}

func (r *pgExpenseRepo) ListByTrip(ctx context.Context, userID, tripID uuid.UUID) ([]domain.Expense, error) {
	const q = `
		SELECT ` + expenseColumns + `
		FROM expenses
		WHERE user_id = @user_id AND trip_id = @trip_id
		ORDER BY spent_at DESC, created_at DESC`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"user_id": userID, "trip_id": tripID})
	if err != nil {
		return nil, fmt.Errorf("repo.ExpenseRepo.ListByTrip: %w", err)
	}
	defer rows.Close()

	return collectExpenses(rows, "repo.ExpenseRepo.ListByTrip")
}

func (r *pgExpenseRepo) ListByCategory(ctx context.Context, userID, tripID uuid.UUID, category string) ([]domain.Expense, error) {
	const q = `
		SELECT ` + expenseColumns + `
		FROM expenses
		WHERE user_id = @user_id AND trip_id = @trip_id AND lower(category) = lower(@category)
		ORDER BY spent_at DESC, created_at DESC`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{
		"user_id": userID, "trip_id": tripID, "category": category,
	})
	if err != nil {
		return nil, fmt.Errorf("repo.ExpenseRepo.ListByCategory: %w", err)
	}
	defer rows.Close()

	return collectExpenses(rows, "repo.ExpenseRepo.ListByCategory")
}

func (r *pgExpenseRepo) Update(ctx context.Context, expense domain.Expense) (domain.Expense, error) {
	const q = `
		UPDATE expenses
		SET category    = @category,
		    description = @description,
		    amount      = @amount,
		    currency    = @currency,
		    spent_at    = @spent_at,
		    updated_at  = now()
		WHERE id = @id AND user_id = @user_id
		RETURNING ` + expenseColumns

	args := pgx.NamedArgs{
		"id":          expense.ID,
		"user_id":     expense.UserID,
		"category":    expense.Category,
		"description": expense.Description,
		"amount":      expense.Amount,
		"currency":    expense.Currency,
		"spent_at":    expense.SpentAt,
	}

	result, err := scanExpense(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Expense{}, fmt.Errorf("repo.ExpenseRepo.Update: %w", err)
	}
	return result, nil
}

func (r *pgExpenseRepo) Delete(ctx context.Context, userID, id uuid.UUID) error {
	const q = `DELETE FROM expenses WHERE id = @id AND user_id = @user_id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id, "user_id": userID})
	if err != nil {
		return fmt.Errorf("repo.ExpenseRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.ExpenseRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

// collectExpenses drains rows into a slice, wrapping errors with op.
func collectExpenses(rows pgx.Rows, op string) ([]domain.Expense, error) {
	expenses := []domain.Expense{}
	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: scan: %w", op, err)
		}
		expenses = append(expenses, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: rows: %w", op, err)
	}
	return expenses, nil
}

// scanExpense maps a single database row into a domain.Expense.
func scanExpense(s scanner) (domain.Expense, error) {
	var e domain.Expense
	err := s.Scan(&e.ID, &e.UserID, &e.TripID, &e.Category, &e.Description, &e.Amount,
		&e.Currency, &e.SpentAt, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Expense{}, domain.ErrNotFound
		}
		return domain.Expense{}, err
	}
	return e, nil
}
