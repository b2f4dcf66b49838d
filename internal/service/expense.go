package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/mittalpriyanshi/globaltrotter/internal/access"
	"github.com/mittalpriyanshi/globaltrotter/internal/domain"
	"github.com/mittalpriyanshi/globaltrotter/internal/repo"
)

// ExpenseService implements business logic for Expense operations.
// It holds budgets and notifications repos because recording an expense is
// what pushes a budget over its alert threshold — the threshold check
// happens here, at the write site, never inside the read-only aggregation.
type ExpenseService struct {
	trips    repo.TripRepo
	expenses repo.ExpenseRepo
	budgets  repo.BudgetRepo
	notifs   repo.NotificationRepo
}

// NewExpenseService constructs an ExpenseService backed by the provided repos.
func NewExpenseService(trips repo.TripRepo, expenses repo.ExpenseRepo, budgets repo.BudgetRepo, notifs repo.NotificationRepo) *ExpenseService {
	return &ExpenseService{trips: trips, expenses: expenses, budgets: budgets, notifs: notifs}
}

// Create validates and persists a new expense, then re-evaluates the
// matching active budget and notifies the user on threshold crossing.
func (s *ExpenseService) Create(ctx context.Context, expense domain.Expense) (domain.Expense, error) {
	if err := s.checkTripReadable(ctx, expense.UserID, expense.TripID); err != nil {
		return domain.Expense{}, fmt.Errorf("service.ExpenseService.Create: %w", err)
	}
	if err := validateExpense(expense); err != nil {
		return domain.Expense{}, err
	}

	result, err := s.expenses.Create(ctx, expense)
	if err != nil {
		return domain.Expense{}, fmt.Errorf("service.ExpenseService.Create: %w", err)
	}

	s.notifyBudgetAlert(ctx, result)
	return result, nil
}

// GetByID returns a single expense owned by the user.
func (s *ExpenseService) GetByID(ctx context.Context, userID, expenseID uuid.UUID) (domain.Expense, error) {
	result, err := s.expenses.GetByID(ctx, userID, expenseID)
	if err != nil {
		return domain.Expense{}, fmt.Errorf("service.ExpenseService.GetByID: %w", err)
	}
	return result, nil
}

// ListByTrip returns all of the user's expenses for a trip, newest first.
// Always returns a non-nil slice so callers can safely range over it.
func (s *ExpenseService) ListByTrip(ctx context.Context, userID, tripID uuid.UUID) ([]domain.Expense, error) {
	expenses, err := s.expenses.ListByTrip(ctx, userID, tripID)
	if err != nil {
		return nil, fmt.Errorf("service.ExpenseService.ListByTrip: %w", err)
	}
	if expenses == nil {
		expenses = []domain.Expense{}
	}
	return expenses, nil
}

// Update validates and persists changes to an expense, then re-evaluates
// the budget of the (possibly changed) category.
func (s *ExpenseService) Update(ctx context.Context, expense domain.Expense) (domain.Expense, error) {
	if err := validateExpense(expense); err != nil {
		return domain.Expense{}, err
	}

	result, err := s.expenses.Update(ctx, expense)
	if err != nil {
		return domain.Expense{}, fmt.Errorf("service.ExpenseService.Update: %w", err)
	}

	s.notifyBudgetAlert(ctx, result)
	return result, nil
}

// Delete removes one of the user's expenses. Deleting shrinks the spent
// amount, so no alert evaluation is needed.
func (s *ExpenseService) Delete(ctx context.Context, userID, expenseID uuid.UUID) error {
	if err := s.expenses.Delete(ctx, userID, expenseID); err != nil {
		return fmt.Errorf("service.ExpenseService.Delete: %w", err)
	}
	return nil
}

// notifyBudgetAlert evaluates the active budget matching the expense's
// category and records a notification when the spend has crossed the alert
// threshold or exceeded the budget. Delivery is best effort: an expense
// write never fails because the follow-up notification could not be stored.
func (s *ExpenseService) notifyBudgetAlert(ctx context.Context, expense domain.Expense) {
	budgets, err := s.budgets.ListActive(ctx, expense.UserID, expense.TripID)
	if err != nil {
		return
	}

	for _, budget := range budgets {
		if !strings.EqualFold(budget.Category, expense.Category) {
			continue
		}

		expenses, err := s.expenses.ListByCategory(ctx, budget.UserID, budget.TripID, budget.Category)
		if err != nil {
			return
		}
		status := evaluateBudget(budget, expenses)

		switch {
		case status.IsOverBudget:
			_, _ = s.notifs.Create(ctx, domain.Notification{
				UserID: budget.UserID,
				Type:   domain.NotificationBudgetExceeded,
				Title:  fmt.Sprintf("%s budget exceeded", budget.Category),
				Message: fmt.Sprintf("You have spent %s of your %s %s budget.",
					status.SpentAmount, budget.Amount, budget.Category),
			})
		case status.ShouldAlert:
			_, _ = s.notifs.Create(ctx, domain.Notification{
				UserID: budget.UserID,
				Type:   domain.NotificationBudgetAlert,
				Title:  fmt.Sprintf("%s budget at %.2f%%", budget.Category, status.Percentage),
				Message: fmt.Sprintf("Spending on %s has reached %.2f%% of its budget.",
					budget.Category, status.Percentage),
			})
		}
		return
	}
}

// checkTripReadable verifies the trip exists and the user may read it.
func (s *ExpenseService) checkTripReadable(ctx context.Context, userID, tripID uuid.UUID) error {
	trip, err := s.trips.GetByID(ctx, tripID)
	if err != nil {
		return err
	}
	if !access.CanRead(trip.Sharing, userID) {
		return domain.ErrAccessDenied
	}
	return nil
}

// validateExpense enforces the rules common to Create and Update.
func validateExpense(e domain.Expense) error {
	if strings.TrimSpace(e.Category) == "" {
		return fmt.Errorf("%w: category is required", domain.ErrValidation)
	}
	if !e.Amount.IsPositive() {
		return fmt.Errorf("%w: amount must be greater than zero", domain.ErrInvalidAmount)
	}
	if e.SpentAt.IsZero() {
		return fmt.Errorf("%w: spent_at is required", domain.ErrValidation)
	}
	return nil
}
