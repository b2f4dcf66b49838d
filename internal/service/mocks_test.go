package service_test

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mittalpriyanshi/globaltrotter/internal/domain"
)

// The mocks below implement the repo interfaces with overridable function
// fields. A test sets only the fields it cares about; unset fields return
// zero values so unrelated calls stay harmless.

type mockTripRepo struct {
	CreateFn      func(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	GetByIDFn     func(ctx context.Context, id uuid.UUID) (domain.Trip, error)
	ListForUserFn func(ctx context.Context, userID uuid.UUID) ([]domain.Trip, error)
	UpdateFn      func(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	DeleteFn      func(ctx context.Context, id uuid.UUID) error
	SearchFn      func(ctx context.Context, userID uuid.UUID, q string, limit int) ([]domain.Trip, error)
}

func (m *mockTripRepo) Create(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	if m.CreateFn == nil {
		return trip, nil
	}
	return m.CreateFn(ctx, trip)
}

func (m *mockTripRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	if m.GetByIDFn == nil {
		return domain.Trip{}, domain.ErrNotFound
	}
	return m.GetByIDFn(ctx, id)
}

func (m *mockTripRepo) ListForUser(ctx context.Context, userID uuid.UUID) ([]domain.Trip, error) {
	if m.ListForUserFn == nil {
		return nil, nil
	}
	return m.ListForUserFn(ctx, userID)
}

func (m *mockTripRepo) Update(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	if m.UpdateFn == nil {
		return trip, nil
	}
	return m.UpdateFn(ctx, trip)
}

func (m *mockTripRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFn == nil {
		return nil
	}
	return m.DeleteFn(ctx, id)
}

func (m *mockTripRepo) Search(ctx context.Context, userID uuid.UUID, q string, limit int) ([]domain.Trip, error) {
	if m.SearchFn == nil {
		return nil, nil
	}
	return m.SearchFn(ctx, userID, q, limit)
}

type mockBudgetRepo struct {
	CreateFn       func(ctx context.Context, budget domain.Budget) (domain.Budget, error)
	GetByIDFn      func(ctx context.Context, userID, id uuid.UUID) (domain.Budget, error)
	ListActiveFn   func(ctx context.Context, userID, tripID uuid.UUID) ([]domain.Budget, error)
	ActiveExistsFn func(ctx context.Context, userID, tripID uuid.UUID, category string) (bool, error)
	UpdateFn       func(ctx context.Context, budget domain.Budget) (domain.Budget, error)
	DeactivateFn   func(ctx context.Context, userID, id uuid.UUID) error
	DeleteFn       func(ctx context.Context, userID, id uuid.UUID) error
}

func (m *mockBudgetRepo) Create(ctx context.Context, budget domain.Budget) (domain.Budget, error) {
	if m.CreateFn == nil {
		budget.ID = uuid.New()
		return budget, nil
	}
	return m.CreateFn(ctx, budget)
}

func (m *mockBudgetRepo) GetByID(ctx context.Context, userID, id uuid.UUID) (domain.Budget, error) {
	if m.GetByIDFn == nil {
		return domain.Budget{}, domain.ErrNotFound
	}
	return m.GetByIDFn(ctx, userID, id)
}

func (m *mockBudgetRepo) ListActive(ctx context.Context, userID, tripID uuid.UUID) ([]domain.Budget, error) {
	if m.ListActiveFn == nil {
		return nil, nil
	}
	return m.ListActiveFn(ctx, userID, tripID)
}

func (m *mockBudgetRepo) ActiveExists(ctx context.Context, userID, tripID uuid.UUID, category string) (bool, error) {
	if m.ActiveExistsFn == nil {
		return false, nil
	}
	return m.ActiveExistsFn(ctx, userID, tripID, category)
}

func (m *mockBudgetRepo) Update(ctx context.Context, budget domain.Budget) (domain.Budget, error) {
	if m.UpdateFn == nil {
		return budget, nil
	}
	return m.UpdateFn(ctx, budget)
}

func (m *mockBudgetRepo) Deactivate(ctx context.Context, userID, id uuid.UUID) error {
	if m.DeactivateFn == nil {
		return nil
	}
	return m.DeactivateFn(ctx, userID, id)
}

func (m *mockBudgetRepo) Delete(ctx context.Context, userID, id uuid.UUID) error {
	if m.DeleteFn == nil {
		return nil
	}
	return m.DeleteFn(ctx, userID, id)
}

type mockExpenseRepo struct {
	CreateFn         func(ctx context.Context, expense domain.Expense) (domain.Expense, error)
	GetByIDFn        func(ctx context.Context, userID, id uuid.UUID) (domain.Expense, error)
	ListByTripFn     func(ctx context.Context, userID, tripID uuid.UUID) ([]domain.Expense, error)
	ListByCategoryFn func(ctx context.Context, userID, tripID uuid.UUID, category string) ([]domain.Expense, error)
	UpdateFn         func(ctx context.Context, expense domain.Expense) (domain.Expense, error)
	DeleteFn         func(ctx context.Context, userID, id uuid.UUID) error
}

func (m *mockExpenseRepo) Create(ctx context.Context, expense domain.Expense) (domain.Expense, error) {
	if m.CreateFn == nil {
		expense.ID = uuid.New()
		return expense, nil
	}
	return m.CreateFn(ctx, expense)
}

func (m *mockExpenseRepo) GetByID(ctx context.Context, userID, id uuid.UUID) (domain.Expense, error) {
	if m.GetByIDFn == nil {
		return domain.Expense{}, domain.ErrNotFound
	}
	return m.GetByIDFn(ctx, userID, id)
}

func (m *mockExpenseRepo) ListByTrip(ctx context.Context, userID, tripID uuid.UUID) ([]domain.Expense, error) {
	if m.ListByTripFn == nil {
		return nil, nil
	}
	return m.ListByTripFn(ctx, userID, tripID)
}

func (m *mockExpenseRepo) ListByCategory(ctx context.Context, userID, tripID uuid.UUID, category string) ([]domain.Expense, error) {
	if m.ListByCategoryFn == nil {
		return nil, nil
	}
	return m.ListByCategoryFn(ctx, userID, tripID, category)
}

func (m *mockExpenseRepo) Update(ctx context.Context, expense domain.Expense) (domain.Expense, error) {
	if m.UpdateFn == nil {
		return expense, nil
	}
	return m.UpdateFn(ctx, expense)
}

func (m *mockExpenseRepo) Delete(ctx context.Context, userID, id uuid.UUID) error {
	if m.DeleteFn == nil {
		return nil
	}
	return m.DeleteFn(ctx, userID, id)
}

type mockNotificationRepo struct {
	CreateFn      func(ctx context.Context, n domain.Notification) (domain.Notification, error)
	ListByUserFn  func(ctx context.Context, userID uuid.UUID, p domain.PaginationParams) ([]domain.Notification, int64, error)
	UnreadCountFn func(ctx context.Context, userID uuid.UUID) (int64, error)
	MarkReadFn    func(ctx context.Context, userID, id uuid.UUID) error
	MarkAllReadFn func(ctx context.Context, userID uuid.UUID) error
	DeleteFn      func(ctx context.Context, userID, id uuid.UUID) error

	// created records every notification passed to Create, for assertions.
	created []domain.Notification
}

func (m *mockNotificationRepo) Create(ctx context.Context, n domain.Notification) (domain.Notification, error) {
	m.created = append(m.created, n)
	if m.CreateFn == nil {
		n.ID = uuid.New()
		return n, nil
	}
	return m.CreateFn(ctx, n)
}

func (m *mockNotificationRepo) ListByUser(ctx context.Context, userID uuid.UUID, p domain.PaginationParams) ([]domain.Notification, int64, error) {
	if m.ListByUserFn == nil {
		return nil, 0, nil
	}
	return m.ListByUserFn(ctx, userID, p)
}

func (m *mockNotificationRepo) UnreadCount(ctx context.Context, userID uuid.UUID) (int64, error) {
	if m.UnreadCountFn == nil {
		return 0, nil
	}
	return m.UnreadCountFn(ctx, userID)
}

func (m *mockNotificationRepo) MarkRead(ctx context.Context, userID, id uuid.UUID) error {
	if m.MarkReadFn == nil {
		return nil
	}
	return m.MarkReadFn(ctx, userID, id)
}

func (m *mockNotificationRepo) MarkAllRead(ctx context.Context, userID uuid.UUID) error {
	if m.MarkAllReadFn == nil {
		return nil
	}
	return m.MarkAllReadFn(ctx, userID)
}

func (m *mockNotificationRepo) Delete(ctx context.Context, userID, id uuid.UUID) error {
	if m.DeleteFn == nil {
		return nil
	}
	return m.DeleteFn(ctx, userID, id)
}

type mockItineraryRepo struct {
	CreateFn     func(ctx context.Context, it domain.Itinerary) (domain.Itinerary, error)
	GetByIDFn    func(ctx context.Context, id uuid.UUID) (domain.Itinerary, error)
	ListByTripFn func(ctx context.Context, tripID uuid.UUID) ([]domain.Itinerary, error)
	UpdateFn     func(ctx context.Context, it domain.Itinerary) (domain.Itinerary, error)
	DeleteFn     func(ctx context.Context, id uuid.UUID) error
	CreateItemFn func(ctx context.Context, item domain.ItineraryItem) (domain.ItineraryItem, error)
	ListItemsFn  func(ctx context.Context, itineraryID uuid.UUID) ([]domain.ItineraryItem, error)
	UpdateItemFn func(ctx context.Context, item domain.ItineraryItem) (domain.ItineraryItem, error)
	DeleteItemFn func(ctx context.Context, itineraryID, itemID uuid.UUID) error
	SearchFn     func(ctx context.Context, userID uuid.UUID, q string, limit int) ([]domain.Itinerary, error)
}

func (m *mockItineraryRepo) Create(ctx context.Context, it domain.Itinerary) (domain.Itinerary, error) {
	if m.CreateFn == nil {
		it.ID = uuid.New()
		return it, nil
	}
	return m.CreateFn(ctx, it)
}

func (m *mockItineraryRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Itinerary, error) {
	if m.GetByIDFn == nil {
		return domain.Itinerary{}, domain.ErrNotFound
	}
	return m.GetByIDFn(ctx, id)
}

func (m *mockItineraryRepo) ListByTrip(ctx context.Context, tripID uuid.UUID) ([]domain.Itinerary, error) {
	if m.ListByTripFn == nil {
		return nil, nil
	}
	return m.ListByTripFn(ctx, tripID)
}

func (m *mockItineraryRepo) Update(ctx context.Context, it domain.Itinerary) (domain.Itinerary, error) {
	if m.UpdateFn == nil {
		return it, nil
	}
	return m.UpdateFn(ctx, it)
}

func (m *mockItineraryRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFn == nil {
		return nil
	}
	return m.DeleteFn(ctx, id)
}

func (m *mockItineraryRepo) CreateItem(ctx context.Context, item domain.ItineraryItem) (domain.ItineraryItem, error) {
	if m.CreateItemFn == nil {
		item.ID = uuid.New()
		return item, nil
	}
	return m.CreateItemFn(ctx, item)
}

func (m *mockItineraryRepo) ListItems(ctx context.Context, itineraryID uuid.UUID) ([]domain.ItineraryItem, error) {
	if m.ListItemsFn == nil {
		return nil, nil
	}
	return m.ListItemsFn(ctx, itineraryID)
}

func (m *mockItineraryRepo) UpdateItem(ctx context.Context, item domain.ItineraryItem) (domain.ItineraryItem, error) {
	if m.UpdateItemFn == nil {
		return item, nil
	}
	return m.UpdateItemFn(ctx, item)
}

func (m *mockItineraryRepo) DeleteItem(ctx context.Context, itineraryID, itemID uuid.UUID) error {
	if m.DeleteItemFn == nil {
		return nil
	}
	return m.DeleteItemFn(ctx, itineraryID, itemID)
}

func (m *mockItineraryRepo) Search(ctx context.Context, userID uuid.UUID, q string, limit int) ([]domain.Itinerary, error) {
	if m.SearchFn == nil {
		return nil, nil
	}
	return m.SearchFn(ctx, userID, q, limit)
}

type mockEventRepo struct {
	CreateFn          func(ctx context.Context, ev domain.CalendarEvent) (domain.CalendarEvent, error)
	GetByIDFn         func(ctx context.Context, id uuid.UUID) (domain.CalendarEvent, error)
	ListForUserFn     func(ctx context.Context, userID uuid.UUID) ([]domain.CalendarEvent, error)
	ListOverlappingFn func(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]domain.CalendarEvent, error)
	UpdateFn          func(ctx context.Context, ev domain.CalendarEvent) (domain.CalendarEvent, error)
	DeleteFn          func(ctx context.Context, id uuid.UUID) error
	SearchFn          func(ctx context.Context, userID uuid.UUID, q string, limit int) ([]domain.CalendarEvent, error)
}

func (m *mockEventRepo) Create(ctx context.Context, ev domain.CalendarEvent) (domain.CalendarEvent, error) {
	if m.CreateFn == nil {
		ev.ID = uuid.New()
		return ev, nil
	}
	return m.CreateFn(ctx, ev)
}

func (m *mockEventRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.CalendarEvent, error) {
	if m.GetByIDFn == nil {
		return domain.CalendarEvent{}, domain.ErrNotFound
	}
	return m.GetByIDFn(ctx, id)
}

func (m *mockEventRepo) ListForUser(ctx context.Context, userID uuid.UUID) ([]domain.CalendarEvent, error) {
	if m.ListForUserFn == nil {
		return nil, nil
	}
	return m.ListForUserFn(ctx, userID)
}

func (m *mockEventRepo) ListOverlapping(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]domain.CalendarEvent, error) {
	if m.ListOverlappingFn == nil {
		return nil, nil
	}
	return m.ListOverlappingFn(ctx, userID, from, to)
}

func (m *mockEventRepo) Update(ctx context.Context, ev domain.CalendarEvent) (domain.CalendarEvent, error) {
	if m.UpdateFn == nil {
		return ev, nil
	}
	return m.UpdateFn(ctx, ev)
}

func (m *mockEventRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFn == nil {
		return nil
	}
	return m.DeleteFn(ctx, id)
}

func (m *mockEventRepo) Search(ctx context.Context, userID uuid.UUID, q string, limit int) ([]domain.CalendarEvent, error) {
	if m.SearchFn == nil {
		return nil, nil
	}
	return m.SearchFn(ctx, userID, q, limit)
}

type mockJournalRepo struct {
	CreateFn      func(ctx context.Context, entry domain.JournalEntry) (domain.JournalEntry, error)
	GetByIDFn     func(ctx context.Context, id uuid.UUID) (domain.JournalEntry, error)
	ListForUserFn func(ctx context.Context, userID uuid.UUID) ([]domain.JournalEntry, error)
	UpdateFn      func(ctx context.Context, entry domain.JournalEntry) (domain.JournalEntry, error)
	DeleteFn      func(ctx context.Context, id uuid.UUID) error
	SearchFn      func(ctx context.Context, userID uuid.UUID, q string, limit int) ([]domain.JournalEntry, error)
}

func (m *mockJournalRepo) Create(ctx context.Context, entry domain.JournalEntry) (domain.JournalEntry, error) {
	if m.CreateFn == nil {
		entry.ID = uuid.New()
		return entry, nil
	}
	return m.CreateFn(ctx, entry)
}

func (m *mockJournalRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.JournalEntry, error) {
	if m.GetByIDFn == nil {
		return domain.JournalEntry{}, domain.ErrNotFound
	}
	return m.GetByIDFn(ctx, id)
}

func (m *mockJournalRepo) ListForUser(ctx context.Context, userID uuid.UUID) ([]domain.JournalEntry, error) {
	if m.ListForUserFn == nil {
		return nil, nil
	}
	return m.ListForUserFn(ctx, userID)
}

func (m *mockJournalRepo) Update(ctx context.Context, entry domain.JournalEntry) (domain.JournalEntry, error) {
	if m.UpdateFn == nil {
		return entry, nil
	}
	return m.UpdateFn(ctx, entry)
}

func (m *mockJournalRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFn == nil {
		return nil
	}
	return m.DeleteFn(ctx, id)
}

func (m *mockJournalRepo) Search(ctx context.Context, userID uuid.UUID, q string, limit int) ([]domain.JournalEntry, error) {
	if m.SearchFn == nil {
		return nil, nil
	}
	return m.SearchFn(ctx, userID, q, limit)
}

type mockUserRepo struct {
	CreateFn     func(ctx context.Context, user domain.User) (domain.User, error)
	GetByIDFn    func(ctx context.Context, id uuid.UUID) (domain.User, error)
	GetByEmailFn func(ctx context.Context, email string) (domain.User, error)
}

func (m *mockUserRepo) Create(ctx context.Context, user domain.User) (domain.User, error) {
	if m.CreateFn == nil {
		user.ID = uuid.New()
		return user, nil
	}
	return m.CreateFn(ctx, user)
}

func (m *mockUserRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.User, error) {
	if m.GetByIDFn == nil {
		return domain.User{}, domain.ErrNotFound
	}
	return m.GetByIDFn(ctx, id)
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	if m.GetByEmailFn == nil {
		return domain.User{}, domain.ErrNotFound
	}
	return m.GetByEmailFn(ctx, email)
}

// ownedTripRepo returns a mockTripRepo whose GetByID always yields a trip
// owned by owner, so access checks pass for that user.
func ownedTripRepo(owner uuid.UUID) *mockTripRepo {
	return &mockTripRepo{
		GetByIDFn: func(_ context.Context, id uuid.UUID) (domain.Trip, error) {
			return domain.Trip{
				ID:        id,
				Name:      "Test Trip",
				StartDate: time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC),
				EndDate:   time.Date(2026, 6, 14, 0, 0, 0, 0, time.UTC),
				Sharing:   domain.Sharing{OwnerID: owner},
			}, nil
		},
	}
}

// dec builds a decimal from a string literal, panicking on typos in tests.
func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}
