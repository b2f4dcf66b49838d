// Package service contains the business logic for the GlobalTrotter API.
// Services validate inputs, enforce access control via the access package,
// and orchestrate repo calls. No SQL lives here — services depend on repo
// interfaces, not implementations.
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mittalpriyanshi/globaltrotter/internal/access"
	"github.com/mittalpriyanshi/globaltrotter/internal/domain"
	"github.com/mittalpriyanshi/globaltrotter/internal/repo"
)

// BudgetService implements budget CRUD and the spend aggregation that turns
// raw expenses into per-category statuses and trip-level summaries.
// Aggregation never mutates budgets or expenses — it reads snapshots from
// the repos and computes.
type BudgetService struct {
	trips    repo.TripRepo
	budgets  repo.BudgetRepo
	expenses repo.ExpenseRepo
}

// NewBudgetService constructs a BudgetService backed by the provided repos.
func NewBudgetService(trips repo.TripRepo, budgets repo.BudgetRepo, expenses repo.ExpenseRepo) *BudgetService {
	return &BudgetService{trips: trips, budgets: budgets, expenses: expenses}
}

// Create validates and persists a new active budget.
// Returns domain.ErrInvalidAmount when amount is not strictly positive,
// domain.ErrValidation for a missing category or out-of-range threshold,
// and domain.ErrDuplicateBudget when an active budget already exists for
// the same (user, trip, category).
//
// The existence pre-check here gives a friendly error on the common path;
// the authoritative duplicate guarantee is the storage-level unique index,
// which closes the race the pre-check cannot.
func (s *BudgetService) Create(ctx context.Context, budget domain.Budget) (domain.Budget, error) {
	if err := s.checkTripReadable(ctx, budget.UserID, budget.TripID); err != nil {
		return domain.Budget{}, fmt.Errorf("service.BudgetService.Create: %w", err)
	}
	if err := validateBudget(budget); err != nil {
		return domain.Budget{}, err
	}

	exists, err := s.budgets.ActiveExists(ctx, budget.UserID, budget.TripID, budget.Category)
	if err != nil {
		return domain.Budget{}, fmt.Errorf("service.BudgetService.Create: %w", err)
	}
	if exists {
		return domain.Budget{}, fmt.Errorf("service.BudgetService.Create: %w", domain.ErrDuplicateBudget)
	}

	budget.IsActive = true
	result, err := s.budgets.Create(ctx, budget)
	if err != nil {
		return domain.Budget{}, fmt.Errorf("service.BudgetService.Create: %w", err)
	}
	return result, nil
}

// Update validates and persists changes to one of the user's budgets.
// Lifecycle state is not an updatable field: the stored IsActive is carried
// over, so deactivation happens only through Deactivate.
func (s *BudgetService) Update(ctx context.Context, budget domain.Budget) (domain.Budget, error) {
	if err := validateBudget(budget); err != nil {
		return domain.Budget{}, err
	}
	current, err := s.budgets.GetByID(ctx, budget.UserID, budget.ID)
	if err != nil {
		return domain.Budget{}, fmt.Errorf("service.BudgetService.Update: %w", err)
	}

	budget.IsActive = current.IsActive
	result, err := s.budgets.Update(ctx, budget)
	if err != nil {
		return domain.Budget{}, fmt.Errorf("service.BudgetService.Update: %w", err)
	}
	return result, nil
}

// Deactivate soft-disables a budget, freeing its category for a new active
// budget while keeping the row for history.
func (s *BudgetService) Deactivate(ctx context.Context, userID, budgetID uuid.UUID) error {
	if err := s.budgets.Deactivate(ctx, userID, budgetID); err != nil {
		return fmt.Errorf("service.BudgetService.Deactivate: %w", err)
	}
	return nil
}

// Delete hard-removes one of the user's budgets.
func (s *BudgetService) Delete(ctx context.Context, userID, budgetID uuid.UUID) error {
	if err := s.budgets.Delete(ctx, userID, budgetID); err != nil {
		return fmt.Errorf("service.BudgetService.Delete: %w", err)
	}
	return nil
}

// List returns the user's active budgets for a trip, ordered by category.
// Always returns a non-nil slice so callers can safely range over it.
func (s *BudgetService) List(ctx context.Context, userID, tripID uuid.UUID) ([]domain.Budget, error) {
	budgets, err := s.budgets.ListActive(ctx, userID, tripID)
	if err != nil {
		return nil, fmt.Errorf("service.BudgetService.List: %w", err)
	}
	if budgets == nil {
		budgets = []domain.Budget{}
	}
	return budgets, nil
}

// SpentAmount returns the sum of the user's expenses matching the budget's
// (trip, category). No matching expenses is zero, not an error.
func (s *BudgetService) SpentAmount(ctx context.Context, budget domain.Budget) (decimal.Decimal, error) {
	expenses, err := s.expenses.ListByCategory(ctx, budget.UserID, budget.TripID, budget.Category)
	if err != nil {
		return decimal.Zero, fmt.Errorf("service.BudgetService.SpentAmount: %w", err)
	}
	return sumExpenses(expenses), nil
}

// Evaluate computes the derived status for one of the user's budgets.
func (s *BudgetService) Evaluate(ctx context.Context, userID, budgetID uuid.UUID) (domain.BudgetStatus, error) {
	budget, err := s.budgets.GetByID(ctx, userID, budgetID)
	if err != nil {
		return domain.BudgetStatus{}, fmt.Errorf("service.BudgetService.Evaluate: %w", err)
	}
	expenses, err := s.expenses.ListByCategory(ctx, budget.UserID, budget.TripID, budget.Category)
	if err != nil {
		return domain.BudgetStatus{}, fmt.Errorf("service.BudgetService.Evaluate: %w", err)
	}
	return evaluateBudget(budget, expenses), nil
}

// SummarizeTrip evaluates every active budget for (user, trip) and rolls the
// results into totals. Categories follow the repo's category-name ordering.
// A trip with no budgets yields a zeroed summary, not an error.
func (s *BudgetService) SummarizeTrip(ctx context.Context, userID, tripID uuid.UUID) (domain.TripBudgetSummary, error) {
	budgets, err := s.budgets.ListActive(ctx, userID, tripID)
	if err != nil {
		return domain.TripBudgetSummary{}, fmt.Errorf("service.BudgetService.SummarizeTrip: %w", err)
	}

	summary := domain.TripBudgetSummary{
		TripID:               tripID,
		Categories:           []domain.BudgetStatus{},
		TotalBudget:          decimal.Zero,
		TotalSpent:           decimal.Zero,
		TotalRemaining:       decimal.Zero,
		OverBudgetCategories: []string{},
		AlertCategories:      []string{},
	}

	for _, budget := range budgets {
		expenses, err := s.expenses.ListByCategory(ctx, budget.UserID, budget.TripID, budget.Category)
		if err != nil {
			return domain.TripBudgetSummary{}, fmt.Errorf("service.BudgetService.SummarizeTrip: %w", err)
		}
		status := evaluateBudget(budget, expenses)

		summary.Categories = append(summary.Categories, status)
		summary.TotalBudget = summary.TotalBudget.Add(budget.Amount)
		summary.TotalSpent = summary.TotalSpent.Add(status.SpentAmount)
		summary.TotalRemaining = summary.TotalRemaining.Add(status.RemainingAmount)
		if status.IsOverBudget {
			summary.OverBudgetCategories = append(summary.OverBudgetCategories, budget.Category)
		}
		if status.ShouldAlert {
			summary.AlertCategories = append(summary.AlertCategories, budget.Category)
		}
	}

	return summary, nil
}

// CloneBudgets copies every active budget under sourceTripID to targetTripID
// with the same category, amount, currency, threshold, and alert flag.
// Categories already active in the target are skipped silently — neither
// overwritten nor reported. That silent skip is deliberate, documented
// policy: callers of repeated clones depend on it being idempotent.
// The returned slice holds only the budgets actually created.
func (s *BudgetService) CloneBudgets(ctx context.Context, userID, sourceTripID, targetTripID uuid.UUID) ([]domain.Budget, error) {
	if err := s.checkTripReadable(ctx, userID, targetTripID); err != nil {
		return nil, fmt.Errorf("service.BudgetService.CloneBudgets: %w", err)
	}

	source, err := s.budgets.ListActive(ctx, userID, sourceTripID)
	if err != nil {
		return nil, fmt.Errorf("service.BudgetService.CloneBudgets: %w", err)
	}

	created := []domain.Budget{}
	for _, budget := range source {
		exists, err := s.budgets.ActiveExists(ctx, userID, targetTripID, budget.Category)
		if err != nil {
			return nil, fmt.Errorf("service.BudgetService.CloneBudgets: %w", err)
		}
		if exists {
			continue
		}

		clone := domain.Budget{
			UserID:         userID,
			TripID:         targetTripID,
			Category:       budget.Category,
			Amount:         budget.Amount,
			Currency:       budget.Currency,
			AlertThreshold: budget.AlertThreshold,
			AlertsEnabled:  budget.AlertsEnabled,
			IsActive:       true,
		}
		result, err := s.budgets.Create(ctx, clone)
		if err != nil {
			// A concurrent create can slip between the check and the
			// insert; the unique index reports it and the category is
			// skipped like any other pre-existing one.
			if errors.Is(err, domain.ErrDuplicateBudget) {
				continue
			}
			return nil, fmt.Errorf("service.BudgetService.CloneBudgets: %w", err)
		}
		created = append(created, result)
	}

	return created, nil
}

// checkTripReadable verifies the trip exists and the user may read it.
func (s *BudgetService) checkTripReadable(ctx context.Context, userID, tripID uuid.UUID) error {
	trip, err := s.trips.GetByID(ctx, tripID)
	if err != nil {
		return err
	}
	if !access.CanRead(trip.Sharing, userID) {
		return domain.ErrAccessDenied
	}
	return nil
}

// validateBudget enforces the rules common to Create and Update.
func validateBudget(b domain.Budget) error {
	if strings.TrimSpace(b.Category) == "" {
		return fmt.Errorf("%w: category is required", domain.ErrValidation)
	}
	if !b.Amount.IsPositive() {
		return fmt.Errorf("%w: amount must be greater than zero", domain.ErrInvalidAmount)
	}
	if b.AlertThreshold < 0 || b.AlertThreshold > 100 {
		return fmt.Errorf("%w: alert threshold must be between 0 and 100", domain.ErrValidation)
	}
	return nil
}

// sumExpenses totals the amounts of a set of expenses.
func sumExpenses(expenses []domain.Expense) decimal.Decimal {
	total := decimal.Zero
	for _, e := range expenses {
		total = total.Add(e.Amount)
	}
	return total
}

// evaluateBudget derives the status of a budget from its matching expenses.
// The displayed percentage is rounded to 2 decimal places, but IsOverBudget
// and ShouldAlert compare unrounded values so a spend of 79.996% of budget
// never alerts at a threshold of 80 just because it displays as 80.00.
func evaluateBudget(budget domain.Budget, expenses []domain.Expense) domain.BudgetStatus {
	spent := sumExpenses(expenses)

	// Percentage is 0 when the budget amount is 0 — never divide by zero.
	pct := decimal.Zero
	if budget.Amount.IsPositive() {
		pct = spent.Div(budget.Amount).Mul(decimal.NewFromInt(100))
	}

	displayPct, _ := pct.Round(2).Float64()

	return domain.BudgetStatus{
		BudgetID:        budget.ID,
		Category:        budget.Category,
		Amount:          budget.Amount,
		Currency:        budget.Currency,
		SpentAmount:     spent,
		Percentage:      displayPct,
		RemainingAmount: decimal.Max(decimal.Zero, budget.Amount.Sub(spent)),
		IsOverBudget:    spent.GreaterThan(budget.Amount),
		ShouldAlert:     budget.AlertsEnabled && pct.GreaterThanOrEqual(decimal.NewFromInt(int64(budget.AlertThreshold))),
	}
}
