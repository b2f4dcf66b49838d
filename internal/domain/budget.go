package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DefaultAlertThreshold is the percentage-of-budget-spent level applied to
// new budgets when no explicit threshold is supplied.
const DefaultAlertThreshold = 80

// Budget is a per-category spending limit for one trip.
// At most one *active* budget may exist per (user, trip, category); the
// uniqueness is enforced by a partial unique index at the storage layer,
// not just by the service-level pre-check.
type Budget struct {
	ID             uuid.UUID       `json:"id"`
	UserID         uuid.UUID       `json:"user_id"`
	TripID         uuid.UUID       `json:"trip_id"`
	Category       string          `json:"category"`
	Amount         decimal.Decimal `json:"amount"`
	Currency       string          `json:"currency"`
	AlertThreshold int             `json:"alert_threshold"`
	AlertsEnabled  bool            `json:"alerts_enabled"`
	IsActive       bool            `json:"is_active"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// BudgetStatus is the derived, never-stored spend analysis for one budget.
// Percentage is rounded to 2 decimal places for display; IsOverBudget and
// ShouldAlert are computed from unrounded values so they never flicker at
// rounding boundaries. Field names are part of the client JSON contract.
type BudgetStatus struct {
	BudgetID        uuid.UUID       `json:"budget_id"`
	Category        string          `json:"category"`
	Amount          decimal.Decimal `json:"amount"`
	Currency        string          `json:"currency"`
	SpentAmount     decimal.Decimal `json:"spentAmount"`
	Percentage      float64         `json:"percentage"`
	RemainingAmount decimal.Decimal `json:"remainingAmount"`
	IsOverBudget    bool            `json:"isOverBudget"`
	ShouldAlert     bool            `json:"shouldAlert"`
}

// TripBudgetSummary rolls the per-category statuses of one trip into totals.
// Categories are ordered by category name ascending — a fixed ordering chosen
// for determinism rather than whatever the storage layer happens to return.
// A category may appear in both OverBudgetCategories and AlertCategories.
type TripBudgetSummary struct {
	TripID               uuid.UUID       `json:"trip_id"`
	Categories           []BudgetStatus  `json:"categories"`
	TotalBudget          decimal.Decimal `json:"totalBudget"`
	TotalSpent           decimal.Decimal `json:"totalSpent"`
	TotalRemaining       decimal.Decimal `json:"totalRemaining"`
	OverBudgetCategories []string        `json:"overBudgetCategories"`
	AlertCategories      []string        `json:"alertCategories"`
}
