package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mittalpriyanshi/globaltrotter/internal/domain"
	"github.com/mittalpriyanshi/globaltrotter/internal/service"
)

var (
	testUser = uuid.MustParse("11111111-1111-1111-1111-111111111111")
	testTrip = uuid.MustParse("22222222-2222-2222-2222-222222222222")
)

func validBudget() domain.Budget {
	return domain.Budget{
		UserID:         testUser,
		TripID:         testTrip,
		Category:       "Food",
		Amount:         dec("200"),
		Currency:       "EUR",
		AlertThreshold: 80,
		AlertsEnabled:  true,
	}
}

func expensesOf(amounts ...string) []domain.Expense {
	out := make([]domain.Expense, 0, len(amounts))
	for _, a := range amounts {
		out = append(out, domain.Expense{
			UserID:   testUser,
			TripID:   testTrip,
			Category: "Food",
			Amount:   dec(a),
			SpentAt:  time.Date(2026, 6, 2, 12, 0, 0, 0, time.UTC),
		})
	}
	return out
}

func TestBudgetService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("persists with IsActive forced on", func(t *testing.T) {
		budgets := &mockBudgetRepo{}
		svc := service.NewBudgetService(ownedTripRepo(testUser), budgets, &mockExpenseRepo{})

		b := validBudget()
		b.IsActive = false
		created, err := svc.Create(ctx, b)

		require.NoError(t, err)
		assert.True(t, created.IsActive)
		assert.Equal(t, "Food", created.Category)
	})

	t.Run("rejects missing category", func(t *testing.T) {
		svc := service.NewBudgetService(ownedTripRepo(testUser), &mockBudgetRepo{}, &mockExpenseRepo{})

		b := validBudget()
		b.Category = "   "
		_, err := svc.Create(ctx, b)

		require.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("rejects non-positive amount", func(t *testing.T) {
		svc := service.NewBudgetService(ownedTripRepo(testUser), &mockBudgetRepo{}, &mockExpenseRepo{})

		for _, amount := range []string{"0", "-5"} {
			b := validBudget()
			b.Amount = dec(amount)
			_, err := svc.Create(ctx, b)
			require.ErrorIs(t, err, domain.ErrInvalidAmount, "amount %s", amount)
		}
	})

	t.Run("rejects out-of-range threshold", func(t *testing.T) {
		svc := service.NewBudgetService(ownedTripRepo(testUser), &mockBudgetRepo{}, &mockExpenseRepo{})

		b := validBudget()
		b.AlertThreshold = 101
		_, err := svc.Create(ctx, b)

		require.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("rejects duplicate active category", func(t *testing.T) {
		budgets := &mockBudgetRepo{
			ActiveExistsFn: func(context.Context, uuid.UUID, uuid.UUID, string) (bool, error) {
				return true, nil
			},
		}
		svc := service.NewBudgetService(ownedTripRepo(testUser), budgets, &mockExpenseRepo{})

		_, err := svc.Create(ctx, validBudget())

		require.ErrorIs(t, err, domain.ErrDuplicateBudget)
	})

	t.Run("denies user without trip access", func(t *testing.T) {
		stranger := uuid.MustParse("99999999-9999-9999-9999-999999999999")
		svc := service.NewBudgetService(ownedTripRepo(stranger), &mockBudgetRepo{}, &mockExpenseRepo{})

		_, err := svc.Create(ctx, validBudget())

		require.ErrorIs(t, err, domain.ErrAccessDenied)
	})
}

func TestBudgetService_Evaluate(t *testing.T) {
	ctx := context.Background()
	budgetID := uuid.New()

	evaluate := func(t *testing.T, budget domain.Budget, expenses []domain.Expense) domain.BudgetStatus {
		t.Helper()
		budget.ID = budgetID
		budgets := &mockBudgetRepo{
			GetByIDFn: func(context.Context, uuid.UUID, uuid.UUID) (domain.Budget, error) {
				return budget, nil
			},
		}
		expensesRepo := &mockExpenseRepo{
			ListByCategoryFn: func(context.Context, uuid.UUID, uuid.UUID, string) ([]domain.Expense, error) {
				return expenses, nil
			},
		}
		svc := service.NewBudgetService(ownedTripRepo(testUser), budgets, expensesRepo)
		status, err := svc.Evaluate(ctx, testUser, budgetID)
		require.NoError(t, err)
		return status
	}

	t.Run("no expenses is a zero status, not an error", func(t *testing.T) {
		status := evaluate(t, validBudget(), nil)

		assert.True(t, status.SpentAmount.IsZero())
		assert.Equal(t, 0.0, status.Percentage)
		assert.True(t, status.RemainingAmount.Equal(dec("200")))
		assert.False(t, status.IsOverBudget)
		assert.False(t, status.ShouldAlert)
	})

	t.Run("alert fires at threshold without being over budget", func(t *testing.T) {
		b := validBudget()
		b.Amount = dec("100")
		status := evaluate(t, b, expensesOf("50", "35"))

		assert.True(t, status.SpentAmount.Equal(dec("85")))
		assert.Equal(t, 85.0, status.Percentage)
		assert.True(t, status.RemainingAmount.Equal(dec("15")))
		assert.False(t, status.IsOverBudget)
		assert.True(t, status.ShouldAlert)
	})

	t.Run("over budget clamps remaining to zero", func(t *testing.T) {
		b := validBudget()
		b.Amount = dec("100")
		status := evaluate(t, b, expensesOf("120"))

		assert.Equal(t, 120.0, status.Percentage)
		assert.True(t, status.RemainingAmount.IsZero())
		assert.True(t, status.IsOverBudget)
		assert.True(t, status.ShouldAlert)
	})

	t.Run("spending exactly the budget is not over budget", func(t *testing.T) {
		b := validBudget()
		b.Amount = dec("100")
		status := evaluate(t, b, expensesOf("100"))

		assert.Equal(t, 100.0, status.Percentage)
		assert.False(t, status.IsOverBudget)
		assert.True(t, status.ShouldAlert)
	})

	t.Run("disabled alerts never fire", func(t *testing.T) {
		b := validBudget()
		b.Amount = dec("100")
		b.AlertsEnabled = false
		status := evaluate(t, b, expensesOf("120"))

		assert.True(t, status.IsOverBudget)
		assert.False(t, status.ShouldAlert)
	})

	t.Run("percentage is rounded to two decimals for display", func(t *testing.T) {
		b := validBudget()
		b.Amount = dec("3")
		status := evaluate(t, b, expensesOf("1"))

		assert.Equal(t, 33.33, status.Percentage)
	})

	t.Run("display rounding never triggers the alert", func(t *testing.T) {
		// 79.996 of 100 displays as 80.00 but must not alert at threshold 80.
		b := validBudget()
		b.Amount = dec("100")
		status := evaluate(t, b, expensesOf("79.996"))

		assert.Equal(t, 80.0, status.Percentage)
		assert.False(t, status.ShouldAlert)
	})
}

func TestBudgetService_SummarizeTrip(t *testing.T) {
	ctx := context.Background()

	t.Run("rolls categories into totals", func(t *testing.T) {
		food := validBudget()
		food.ID = uuid.New()

		transport := validBudget()
		transport.ID = uuid.New()
		transport.Category = "Transportation"
		transport.Amount = dec("150")

		budgets := &mockBudgetRepo{
			ListActiveFn: func(context.Context, uuid.UUID, uuid.UUID) ([]domain.Budget, error) {
				return []domain.Budget{food, transport}, nil
			},
		}
		expensesRepo := &mockExpenseRepo{
			ListByCategoryFn: func(_ context.Context, _ uuid.UUID, _ uuid.UUID, category string) ([]domain.Expense, error) {
				if category == "Food" {
					return expensesOf("110", "100"), nil // 210 of 200: over
				}
				return expensesOf("100"), nil // 100 of 150: 66.67%
			},
		}
		svc := service.NewBudgetService(ownedTripRepo(testUser), budgets, expensesRepo)

		summary, err := svc.SummarizeTrip(ctx, testUser, testTrip)

		require.NoError(t, err)
		require.Len(t, summary.Categories, 2)
		assert.True(t, summary.TotalBudget.Equal(dec("350")))
		assert.True(t, summary.TotalSpent.Equal(dec("310")))
		// Remaining sums per-category clamped remainders: 0 + 50.
		assert.True(t, summary.TotalRemaining.Equal(dec("50")))
		assert.Equal(t, []string{"Food"}, summary.OverBudgetCategories)
		assert.Equal(t, []string{"Food"}, summary.AlertCategories)
	})

	t.Run("no budgets yields an empty summary", func(t *testing.T) {
		svc := service.NewBudgetService(ownedTripRepo(testUser), &mockBudgetRepo{}, &mockExpenseRepo{})

		summary, err := svc.SummarizeTrip(ctx, testUser, testTrip)

		require.NoError(t, err)
		assert.NotNil(t, summary.Categories)
		assert.Empty(t, summary.Categories)
		assert.True(t, summary.TotalBudget.IsZero())
		assert.NotNil(t, summary.OverBudgetCategories)
		assert.NotNil(t, summary.AlertCategories)
	})
}

func TestBudgetService_CloneBudgets(t *testing.T) {
	ctx := context.Background()
	targetTrip := uuid.MustParse("33333333-3333-3333-3333-333333333333")

	t.Run("copies budgets and skips existing target categories", func(t *testing.T) {
		food := validBudget()
		food.ID = uuid.New()
		hotel := validBudget()
		hotel.ID = uuid.New()
		hotel.Category = "Lodging"
		hotel.Amount = dec("500")

		var createdCategories []string
		budgets := &mockBudgetRepo{
			ListActiveFn: func(_ context.Context, _ uuid.UUID, tripID uuid.UUID) ([]domain.Budget, error) {
				require.Equal(t, testTrip, tripID)
				return []domain.Budget{food, hotel}, nil
			},
			ActiveExistsFn: func(_ context.Context, _ uuid.UUID, _ uuid.UUID, category string) (bool, error) {
				return category == "Food", nil // target already budgets Food
			},
			CreateFn: func(_ context.Context, b domain.Budget) (domain.Budget, error) {
				createdCategories = append(createdCategories, b.Category)
				require.Equal(t, targetTrip, b.TripID)
				require.True(t, b.IsActive)
				b.ID = uuid.New()
				return b, nil
			},
		}
		svc := service.NewBudgetService(ownedTripRepo(testUser), budgets, &mockExpenseRepo{})

		created, err := svc.CloneBudgets(ctx, testUser, testTrip, targetTrip)

		require.NoError(t, err)
		require.Len(t, created, 1)
		assert.Equal(t, []string{"Lodging"}, createdCategories)
		assert.True(t, created[0].Amount.Equal(dec("500")))
	})

	t.Run("a race-lost duplicate is skipped, not an error", func(t *testing.T) {
		food := validBudget()
		budgets := &mockBudgetRepo{
			ListActiveFn: func(context.Context, uuid.UUID, uuid.UUID) ([]domain.Budget, error) {
				return []domain.Budget{food}, nil
			},
			CreateFn: func(context.Context, domain.Budget) (domain.Budget, error) {
				return domain.Budget{}, domain.ErrDuplicateBudget
			},
		}
		svc := service.NewBudgetService(ownedTripRepo(testUser), budgets, &mockExpenseRepo{})

		created, err := svc.CloneBudgets(ctx, testUser, testTrip, targetTrip)

		require.NoError(t, err)
		assert.Empty(t, created)
	})

	t.Run("requires read access to the target trip", func(t *testing.T) {
		stranger := uuid.MustParse("99999999-9999-9999-9999-999999999999")
		svc := service.NewBudgetService(ownedTripRepo(stranger), &mockBudgetRepo{}, &mockExpenseRepo{})

		_, err := svc.CloneBudgets(ctx, testUser, testTrip, targetTrip)

		require.ErrorIs(t, err, domain.ErrAccessDenied)
	})
}

func TestBudgetService_Update(t *testing.T) {
	ctx := context.Background()

	storedBudget := func(active bool) domain.Budget {
		b := validBudget()
		b.ID = uuid.MustParse("33333333-3333-3333-3333-333333333333")
		b.IsActive = active
		return b
	}

	t.Run("an edit keeps the budget active", func(t *testing.T) {
		stored := storedBudget(true)

		var persisted domain.Budget
		budgets := &mockBudgetRepo{
			GetByIDFn: func(context.Context, uuid.UUID, uuid.UUID) (domain.Budget, error) {
				return stored, nil
			},
			UpdateFn: func(_ context.Context, b domain.Budget) (domain.Budget, error) {
				persisted = b
				return b, nil
			},
		}
		svc := service.NewBudgetService(ownedTripRepo(testUser), budgets, &mockExpenseRepo{})

		// The incoming value carries the zero IsActive a decoded request
		// body would have; only Deactivate may flip the stored state.
		update := stored
		update.Amount = dec("250")
		update.IsActive = false

		updated, err := svc.Update(ctx, update)

		require.NoError(t, err)
		assert.True(t, persisted.IsActive, "updating a budget must keep it active")
		assert.True(t, updated.IsActive)
		assert.True(t, persisted.Amount.Equal(dec("250")))
	})

	t.Run("an edit does not resurrect a deactivated budget", func(t *testing.T) {
		stored := storedBudget(false)

		var persisted domain.Budget
		budgets := &mockBudgetRepo{
			GetByIDFn: func(context.Context, uuid.UUID, uuid.UUID) (domain.Budget, error) {
				return stored, nil
			},
			UpdateFn: func(_ context.Context, b domain.Budget) (domain.Budget, error) {
				persisted = b
				return b, nil
			},
		}
		svc := service.NewBudgetService(ownedTripRepo(testUser), budgets, &mockExpenseRepo{})

		update := stored
		update.IsActive = true

		_, err := svc.Update(ctx, update)

		require.NoError(t, err)
		assert.False(t, persisted.IsActive)
	})

	t.Run("missing budget", func(t *testing.T) {
		svc := service.NewBudgetService(ownedTripRepo(testUser), &mockBudgetRepo{}, &mockExpenseRepo{})

		_, err := svc.Update(ctx, storedBudget(true))

		require.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestBudgetService_List_neverNil(t *testing.T) {
	svc := service.NewBudgetService(ownedTripRepo(testUser), &mockBudgetRepo{}, &mockExpenseRepo{})

	budgets, err := svc.List(context.Background(), testUser, testTrip)

	require.NoError(t, err)
	assert.NotNil(t, budgets)
	assert.Empty(t, budgets)
}

func TestBudgetService_SpentAmount(t *testing.T) {
	expensesRepo := &mockExpenseRepo{
		ListByCategoryFn: func(context.Context, uuid.UUID, uuid.UUID, string) ([]domain.Expense, error) {
			return expensesOf("10", "5.50"), nil
		},
	}
	svc := service.NewBudgetService(ownedTripRepo(testUser), &mockBudgetRepo{}, expensesRepo)

	spent, err := svc.SpentAmount(context.Background(), validBudget())

	require.NoError(t, err)
	assert.True(t, spent.Equal(decimal.RequireFromString("15.50")))
}
