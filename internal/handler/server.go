package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/mittalpriyanshi/globaltrotter/internal/domain"
	"github.com/mittalpriyanshi/globaltrotter/internal/middleware"
)

// AuthServicer is the slice of the auth service the handlers consume.
type AuthServicer interface {
	Register(ctx context.Context, email, name, password string) (domain.User, string, error)
	Login(ctx context.Context, email, password string) (domain.User, string, error)
	GetUser(ctx context.Context, id uuid.UUID) (domain.User, error)
}

// TripServicer is the slice of the trip service the handlers consume.
type TripServicer interface {
	Create(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	GetByID(ctx context.Context, requester, tripID uuid.UUID) (domain.Trip, error)
	List(ctx context.Context, requester uuid.UUID) ([]domain.Trip, error)
	Update(ctx context.Context, requester uuid.UUID, trip domain.Trip) (domain.Trip, error)
	Delete(ctx context.Context, requester, tripID uuid.UUID) error
	Share(ctx context.Context, requester, tripID, target uuid.UUID, role domain.Role) (domain.Trip, error)
	Unshare(ctx context.Context, requester, tripID, target uuid.UUID) (domain.Trip, error)
	SetVisibility(ctx context.Context, requester, tripID uuid.UUID, isPublic bool) (domain.Trip, error)
}

// ItineraryServicer is the slice of the itinerary service the handlers consume.
type ItineraryServicer interface {
	Create(ctx context.Context, requester uuid.UUID, it domain.Itinerary) (domain.Itinerary, error)
	GetByID(ctx context.Context, requester, itineraryID uuid.UUID) (domain.Itinerary, error)
	ListByTrip(ctx context.Context, requester, tripID uuid.UUID) ([]domain.Itinerary, error)
	Update(ctx context.Context, requester uuid.UUID, it domain.Itinerary) (domain.Itinerary, error)
	Delete(ctx context.Context, requester, itineraryID uuid.UUID) error
	Share(ctx context.Context, requester, itineraryID, target uuid.UUID, role domain.Role) (domain.Itinerary, error)
	Unshare(ctx context.Context, requester, itineraryID, target uuid.UUID) (domain.Itinerary, error)
	SetVisibility(ctx context.Context, requester, itineraryID uuid.UUID, isPublic bool) (domain.Itinerary, error)
	CreateItem(ctx context.Context, requester uuid.UUID, item domain.ItineraryItem) (domain.ItineraryItem, error)
	ListItems(ctx context.Context, requester, itineraryID uuid.UUID) ([]domain.ItineraryItem, error)
	UpdateItem(ctx context.Context, requester uuid.UUID, item domain.ItineraryItem) (domain.ItineraryItem, error)
	DeleteItem(ctx context.Context, requester, itineraryID, itemID uuid.UUID) error
}

// EventServicer is the slice of the event service the handlers consume.
type EventServicer interface {
	Create(ctx context.Context, requester uuid.UUID, ev domain.CalendarEvent) (domain.CalendarEvent, error)
	GetByID(ctx context.Context, requester, eventID uuid.UUID) (domain.CalendarEvent, error)
	List(ctx context.Context, requester uuid.UUID, from, to *time.Time) ([]domain.CalendarEvent, error)
	Update(ctx context.Context, requester uuid.UUID, ev domain.CalendarEvent) (domain.CalendarEvent, error)
	Delete(ctx context.Context, requester, eventID uuid.UUID) error
	Share(ctx context.Context, requester, eventID, target uuid.UUID, role domain.Role) (domain.CalendarEvent, error)
	Unshare(ctx context.Context, requester, eventID, target uuid.UUID) (domain.CalendarEvent, error)
	SetVisibility(ctx context.Context, requester, eventID uuid.UUID, isPublic bool) (domain.CalendarEvent, error)
}

// JournalServicer is the slice of the journal service the handlers consume.
type JournalServicer interface {
	Create(ctx context.Context, requester uuid.UUID, entry domain.JournalEntry) (domain.JournalEntry, error)
	GetByID(ctx context.Context, requester, entryID uuid.UUID) (domain.JournalEntry, error)
	List(ctx context.Context, requester uuid.UUID) ([]domain.JournalEntry, error)
	Update(ctx context.Context, requester uuid.UUID, entry domain.JournalEntry) (domain.JournalEntry, error)
	Delete(ctx context.Context, requester, entryID uuid.UUID) error
	Share(ctx context.Context, requester, entryID, target uuid.UUID, role domain.Role) (domain.JournalEntry, error)
	Unshare(ctx context.Context, requester, entryID, target uuid.UUID) (domain.JournalEntry, error)
	SetVisibility(ctx context.Context, requester, entryID uuid.UUID, isPublic bool) (domain.JournalEntry, error)
}

// BudgetServicer is the slice of the budget service the handlers consume.
type BudgetServicer interface {
	Create(ctx context.Context, budget domain.Budget) (domain.Budget, error)
	Update(ctx context.Context, budget domain.Budget) (domain.Budget, error)
	Deactivate(ctx context.Context, userID, budgetID uuid.UUID) error
	Delete(ctx context.Context, userID, budgetID uuid.UUID) error
	List(ctx context.Context, userID, tripID uuid.UUID) ([]domain.Budget, error)
	Evaluate(ctx context.Context, userID, budgetID uuid.UUID) (domain.BudgetStatus, error)
	SummarizeTrip(ctx context.Context, userID, tripID uuid.UUID) (domain.TripBudgetSummary, error)
	CloneBudgets(ctx context.Context, userID, sourceTripID, targetTripID uuid.UUID) ([]domain.Budget, error)
}

// ExpenseServicer is the slice of the expense service the handlers consume.
type ExpenseServicer interface {
	Create(ctx context.Context, expense domain.Expense) (domain.Expense, error)
	GetByID(ctx context.Context, userID, expenseID uuid.UUID) (domain.Expense, error)
	ListByTrip(ctx context.Context, userID, tripID uuid.UUID) ([]domain.Expense, error)
	Update(ctx context.Context, expense domain.Expense) (domain.Expense, error)
	Delete(ctx context.Context, userID, expenseID uuid.UUID) error
}

// NotificationServicer is the slice of the notification service the handlers consume.
type NotificationServicer interface {
	List(ctx context.Context, requester uuid.UUID, p domain.PaginationParams) ([]domain.Notification, int64, error)
	UnreadCount(ctx context.Context, requester uuid.UUID) (int64, error)
	MarkRead(ctx context.Context, requester, id uuid.UUID) error
	MarkAllRead(ctx context.Context, requester uuid.UUID) error
	Delete(ctx context.Context, requester, id uuid.UUID) error
}

// SearchServicer is the slice of the search service the handlers consume.
type SearchServicer interface {
	Search(ctx context.Context, requester uuid.UUID, query string) (domain.SearchResults, error)
}

// Pinger reports storage liveness; satisfied by *pgxpool.Pool.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Server bundles the services behind the HTTP surface.
type Server struct {
	auth          AuthServicer
	trips         TripServicer
	itineraries   ItineraryServicer
	events        EventServicer
	journals      JournalServicer
	budgets       BudgetServicer
	expenses      ExpenseServicer
	notifications NotificationServicer
	search        SearchServicer
	db            Pinger
	verifier      middleware.TokenVerifier
	validate      *validator.Validate
	log           *slog.Logger
}

// ServerDeps carries the dependencies for NewServer. All fields are required.
type ServerDeps struct {
	Auth          AuthServicer
	Trips         TripServicer
	Itineraries   ItineraryServicer
	Events        EventServicer
	Journals      JournalServicer
	Budgets       BudgetServicer
	Expenses      ExpenseServicer
	Notifications NotificationServicer
	Search        SearchServicer
	DB            Pinger
	Verifier      middleware.TokenVerifier
	Log           *slog.Logger
}

// NewServer constructs a Server from its dependencies.
func NewServer(deps ServerDeps) *Server {
	return &Server{
		auth:          deps.Auth,
		trips:         deps.Trips,
		itineraries:   deps.Itineraries,
		events:        deps.Events,
		journals:      deps.Journals,
		budgets:       deps.Budgets,
		expenses:      deps.Expenses,
		notifications: deps.Notifications,
		search:        deps.Search,
		db:            deps.DB,
		verifier:      deps.Verifier,
		validate:      validator.New(validator.WithRequiredStructEnabled()),
		log:           deps.Log,
	}
}

// Routes builds the router. Health and auth endpoints are public; everything
// else requires a bearer token.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/healthz", s.handleHealth)
	r.Post("/auth/register", s.handleRegister)
	r.Post("/auth/login", s.handleLogin)

	r.Group(func(r chi.Router) {
		r.Use(middleware.NewAuthenticator(s.verifier))

		r.Get("/me", s.handleMe)

		r.Route("/trips", func(r chi.Router) {
			r.Get("/", s.handleListTrips)
			r.Post("/", s.handleCreateTrip)
			r.Route("/{tripID}", func(r chi.Router) {
				r.Get("/", s.handleGetTrip)
				r.Put("/", s.handleUpdateTrip)
				r.Delete("/", s.handleDeleteTrip)
				r.Post("/share", s.handleShareTrip)
				r.Delete("/share/{userID}", s.handleUnshareTrip)
				r.Put("/visibility", s.handleTripVisibility)

				r.Get("/itineraries", s.handleListItineraries)
				r.Post("/itineraries", s.handleCreateItinerary)

				r.Route("/budgets", func(r chi.Router) {
					r.Get("/", s.handleListBudgets)
					r.Post("/", s.handleCreateBudget)
					r.Get("/summary", s.handleBudgetSummary)
					r.Post("/clone", s.handleCloneBudgets)
					r.Get("/{budgetID}/status", s.handleBudgetStatus)
					r.Put("/{budgetID}", s.handleUpdateBudget)
					r.Post("/{budgetID}/deactivate", s.handleDeactivateBudget)
					r.Delete("/{budgetID}", s.handleDeleteBudget)
				})

				r.Route("/expenses", func(r chi.Router) {
					r.Get("/", s.handleListExpenses)
					r.Post("/", s.handleCreateExpense)
					r.Get("/{expenseID}", s.handleGetExpense)
					r.Put("/{expenseID}", s.handleUpdateExpense)
					r.Delete("/{expenseID}", s.handleDeleteExpense)
				})
			})
		})

		r.Route("/itineraries/{itineraryID}", func(r chi.Router) {
			r.Get("/", s.handleGetItinerary)
			r.Put("/", s.handleUpdateItinerary)
			r.Delete("/", s.handleDeleteItinerary)
			r.Post("/share", s.handleShareItinerary)
			r.Delete("/share/{userID}", s.handleUnshareItinerary)
			r.Put("/visibility", s.handleItineraryVisibility)

			r.Get("/items", s.handleListItineraryItems)
			r.Post("/items", s.handleCreateItineraryItem)
			r.Put("/items/{itemID}", s.handleUpdateItineraryItem)
			r.Delete("/items/{itemID}", s.handleDeleteItineraryItem)
		})

		r.Route("/events", func(r chi.Router) {
			r.Get("/", s.handleListEvents)
			r.Post("/", s.handleCreateEvent)
			r.Route("/{eventID}", func(r chi.Router) {
				r.Get("/", s.handleGetEvent)
				r.Put("/", s.handleUpdateEvent)
				r.Delete("/", s.handleDeleteEvent)
				r.Post("/share", s.handleShareEvent)
				r.Delete("/share/{userID}", s.handleUnshareEvent)
				r.Put("/visibility", s.handleEventVisibility)
			})
		})

		r.Route("/journals", func(r chi.Router) {
			r.Get("/", s.handleListJournals)
			r.Post("/", s.handleCreateJournal)
			r.Route("/{entryID}", func(r chi.Router) {
				r.Get("/", s.handleGetJournal)
				r.Put("/", s.handleUpdateJournal)
				r.Delete("/", s.handleDeleteJournal)
				r.Post("/share", s.handleShareJournal)
				r.Delete("/share/{userID}", s.handleUnshareJournal)
				r.Put("/visibility", s.handleJournalVisibility)
			})
		})

		r.Route("/notifications", func(r chi.Router) {
			r.Get("/", s.handleListNotifications)
			r.Get("/unread-count", s.handleUnreadCount)
			r.Post("/read-all", s.handleMarkAllRead)
			r.Post("/{notificationID}/read", s.handleMarkRead)
			r.Delete("/{notificationID}", s.handleDeleteNotification)
		})

		r.Get("/search", s.handleSearch)
	})

	return r
}

// requester resolves the authenticated user from the request context.
// The auth middleware guarantees presence on protected routes; the false
// return only happens when a handler is wired outside that middleware.
func (s *Server) requester(r *http.Request) (uuid.UUID, bool) {
	return middleware.UserIDFromContext(r.Context())
}

// pathUUID parses the named chi URL parameter as a UUID.
func pathUUID(r *http.Request, name string) (uuid.UUID, error) {
	return uuid.Parse(chi.URLParam(r, name))
}

// decode reads the request body into v and runs struct validation.
func (s *Server) decode(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("invalid JSON body: %w", err)
	}
	if err := s.validate.Struct(v); err != nil {
		return fmt.Errorf("invalid request: %w", err)
	}
	return nil
}
