package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/mittalpriyanshi/globaltrotter/internal/domain"
)

// BudgetRepo defines the persistence operations for Budgets.
//
// The (user, trip, category) uniqueness of active budgets is guaranteed by
// the budgets_active_category_key partial unique index, not by callers:
// the service-level existence pre-check is a courtesy for friendlier errors,
// and the check-then-insert race it leaves open is closed here by mapping
// the index violation to domain.ErrDuplicateBudget.
type BudgetRepo interface {
	// Create inserts a new budget and returns the persisted record.
	// Returns domain.ErrDuplicateBudget if an active budget already exists
	// for the same (user, trip, category).
	Create(ctx context.Context, budget domain.Budget) (domain.Budget, error)

	// GetByID retrieves one of the user's budgets by primary key.
	// Returns domain.ErrNotFound if absent or owned by another user.
	GetByID(ctx context.Context, userID, id uuid.UUID) (domain.Budget, error)

	// ListActive returns the user's active budgets for a trip, ordered by
	// category name ascending. This ordering is the contract the trip
	// summary relies on for determinism.
	ListActive(ctx context.Context, userID, tripID uuid.UUID) ([]domain.Budget, error)

	// ActiveExists reports whether an active budget exists for the tuple.
	// Category comparison is case-insensitive, matching the unique index.
	ActiveExists(ctx context.Context, userID, tripID uuid.UUID, category string) (bool, error)

	// Update overwrites the mutable fields of one of the user's budgets.
	// Returns domain.ErrNotFound if absent, domain.ErrDuplicateBudget if
	// the change would collide with another active budget.
	Update(ctx context.Context, budget domain.Budget) (domain.Budget, error)

	// Deactivate soft-disables a budget (is_active = false), removing it
	// from uniqueness checks and aggregation while keeping the row.
	Deactivate(ctx context.Context, userID, id uuid.UUID) error

	// Delete hard-removes one of the user's budgets.
	Delete(ctx context.Context, userID, id uuid.UUID) error
}

// pgBudgetRepo is the Postgres implementation of BudgetRepo.
type pgBudgetRepo struct {
	db db
}

// NewBudgetRepo constructs a BudgetRepo backed by the provided db connection.
func NewBudgetRepo(db db) BudgetRepo {
	return &pgBudgetRepo{db: db}
}

// budgetActiveConstraint is the partial unique index enforcing one active
// budget per (user, trip, category). Kept in sync with the migration.
const budgetActiveConstraint = "budgets_active_category_key"

const budgetColumns = `id, user_id, trip_id, category, amount, currency,
		alert_threshold, alerts_enabled, is_active, created_at, updated_at`

func (r *pgBudgetRepo) Create(ctx context.Context, budget domain.Budget) (domain.Budget, error) {
	const q = `
		INSERT INTO budgets (user_id, trip_id, category, amount, currency, alert_threshold, alerts_enabled, is_active)
		VALUES (@user_id, @trip_id, @category, @amount, @currency, @alert_threshold, @alerts_enabled, @is_active)
		RETURNING ` + budgetColumns

	args := pgx.NamedArgs{
		"user_id":         budget.UserID,
		"trip_id":         budget.TripID,
		"category":        budget.Category,
		"amount":          budget.Amount,
		"currency":        budget.Currency,
		"alert_threshold": budget.AlertThreshold,
		"alerts_enabled":  budget.AlertsEnabled,
		"is_active":       budget.IsActive,
	}

	result, err := scanBudget(r.db.QueryRow(ctx, q, args))
	if err != nil {
		if isUniqueViolation(err, budgetActiveConstraint) {
			return domain.Budget{}, fmt.Errorf("repo.BudgetRepo.Create: %w", domain.ErrDuplicateBudget)
		}
		return domain.Budget{}, fmt.Errorf("repo.BudgetRepo.Create: %w", err)
	}
	return result, nil
}

func (r *pgBudgetRepo) GetByID(ctx context.Context, userID, id uuid.UUID) (domain.Budget, error) {
	const q = `SELECT ` + budgetColumns + ` FROM budgets WHERE id = @id AND user_id = @user_id`

	result, err := scanBudget(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id, "user_id": userID}))
	if err != nil {
		return domain.Budget{}, fmt.Errorf("repo.BudgetRepo.GetByID: %w", err)
	}
	return result, nil
}

func (r *pgBudgetRepo) ListActive(ctx context.Context, userID, tripID uuid.UUID) ([]domain.Budget, error) {
	const q = `
		SELECT ` + budgetColumns + `
		FROM budgets
		WHERE user_id = @user_id AND trip_id = @trip_id AND is_active
		ORDER BY lower(category), category`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"user_id": userID, "trip_id": tripID})
	if err != nil {
		return nil, fmt.Errorf("repo.BudgetRepo.ListActive: %w", err)
	}
	defer rows.Close()

	budgets := []domain.Budget{}
	for rows.Next() {
		b, err := scanBudget(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.BudgetRepo.ListActive: scan: %w", err)
		}
		budgets = append(budgets, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.BudgetRepo.ListActive: rows: %w", err)
	}
	return budgets, nil
}

func (r *pgBudgetRepo) ActiveExists(ctx context.Context, userID, tripID uuid.UUID, category string) (bool, error) {
	const q = `
		SELECT EXISTS (
			SELECT 1 FROM budgets
			WHERE user_id = @user_id AND trip_id = @trip_id
			  AND lower(category) = lower(@category) AND is_active
		)`

	var exists bool
	err := r.db.QueryRow(ctx, q, pgx.NamedArgs{
		"user_id": userID, "trip_id": tripID, "category": category,
	}).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("repo.BudgetRepo.ActiveExists: %w", err)
	}
	return exists, nil
}

func (r *pgBudgetRepo) Update(ctx context.Context, budget domain.Budget) (domain.Budget, error) {
	const q = `
		UPDATE budgets
		SET category        = @category,
		    amount          = @amount,
		    currency        = @currency,
		    alert_threshold = @alert_threshold,
		    alerts_enabled  = @alerts_enabled,
		    is_active       = @is_active,
		    updated_at      = now()
		WHERE id = @id AND user_id = @user_id
		RETURNING ` + budgetColumns

	args := pgx.NamedArgs{
		"id":              budget.ID,
		"user_id":         budget.UserID,
		"category":        budget.Category,
		"amount":          budget.Amount,
		"currency":        budget.Currency,
		"alert_threshold": budget.AlertThreshold,
		"alerts_enabled":  budget.AlertsEnabled,
		"is_active":       budget.IsActive,
	}

	result, err := scanBudget(r.db.QueryRow(ctx, q, args))
	if err != nil {
		if isUniqueViolation(err, budgetActiveConstraint) {
			return domain.Budget{}, fmt.Errorf("repo.BudgetRepo.Update: %w", domain.ErrDuplicateBudget)
		}
		return domain.Budget{}, fmt.Errorf("repo.BudgetRepo.Update: %w", err)
	}
	return result, nil
}

func (r *pgBudgetRepo) Deactivate(ctx context.Context, userID, id uuid.UUID) error {
	const q = `
		UPDATE budgets
		SET is_active = false, updated_at = now()
		WHERE id = @id AND user_id = @user_id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id, "user_id": userID})
	if err != nil {
		return fmt.Errorf("repo.BudgetRepo.Deactivate: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.BudgetRepo.Deactivate: %w", domain.ErrNotFound)
	}
	return nil
}

func (r *pgBudgetRepo) Delete(ctx context.Context, userID, id uuid.UUID) error {
	const q = `DELETE FROM budgets WHERE id = @id AND user_id = @user_id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id, "user_id": userID})
	if err != nil {
		return fmt.Errorf("repo.BudgetRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.BudgetRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

// scanBudget maps a single database row into a domain.Budget.
func scanBudget(s scanner) (domain.Budget, error) {
	var b domain.Budget
	err := s.Scan(&b.ID, &b.UserID, &b.TripID, &b.Category, &b.Amount, &b.Currency,
		&b.AlertThreshold, &b.AlertsEnabled, &b.IsActive, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Budget{}, domain.ErrNotFound
		}
		return domain.Budget{}, err
	}
	return b, nil
}
