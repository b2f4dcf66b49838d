package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/mittalpriyanshi/globaltrotter/internal/domain"
	"github.com/mittalpriyanshi/globaltrotter/internal/repo"
)

// searchGroupLimit caps the number of hits returned per resource group.
const searchGroupLimit = 20

// SearchService implements cross-resource text search. Each repo applies
// the requester's visibility rules in SQL, so results never leak resources
// the requester could not fetch directly.
type SearchService struct {
	trips    repo.TripRepo
	itins    repo.ItineraryRepo
	events   repo.EventRepo
	journals repo.JournalRepo
}

// NewSearchService constructs a SearchService backed by the provided repos.
func NewSearchService(trips repo.TripRepo, itins repo.ItineraryRepo, events repo.EventRepo, journals repo.JournalRepo) *SearchService {
	return &SearchService{trips: trips, itins: itins, events: events, journals: journals}
}

// Search runs a case-insensitive substring search across trips, itineraries,
// events, and journal entries visible to the requester. Queries shorter than
// two characters after trimming are rejected.
func (s *SearchService) Search(ctx context.Context, requester uuid.UUID, query string) (domain.SearchResults, error) {
	q := strings.TrimSpace(query)
	if len(q) < 2 {
		return domain.SearchResults{}, fmt.Errorf("%w: query must be at least 2 characters", domain.ErrValidation)
	}

	results := domain.SearchResults{
		Trips:       []domain.Trip{},
		Itineraries: []domain.Itinerary{},
		Events:      []domain.CalendarEvent{},
		Journals:    []domain.JournalEntry{},
	}

	trips, err := s.trips.Search(ctx, requester, q, searchGroupLimit)
	if err != nil {
		return domain.SearchResults{}, fmt.Errorf("service.SearchService.Search: %w", err)
	}
	if trips != nil {
		results.Trips = trips
	}

	itins, err := s.itins.Search(ctx, requester, q, searchGroupLimit)
	if err != nil {
		return domain.SearchResults{}, fmt.Errorf("service.SearchService.Search: %w", err)
	}
	if itins != nil {
		results.Itineraries = itins
	}

	events, err := s.events.Search(ctx, requester, q, searchGroupLimit)
	if err != nil {
		return domain.SearchResults{}, fmt.Errorf("service.SearchService.Search: %w", err)
	}
	if events != nil {
		results.Events = events
	}

	journals, err := s.journals.Search(ctx, requester, q, searchGroupLimit)
	if err != nil {
		return domain.SearchResults{}, fmt.Errorf("service.SearchService.Search: %w", err)
	}
	if journals != nil {
		results.Journals = journals
	}

	return results, nil
}
