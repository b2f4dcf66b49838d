package handler_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mittalpriyanshi/globaltrotter/internal/domain"
	"github.com/mittalpriyanshi/globaltrotter/internal/handler"
)

// mockSearchServicer is a test double for handler.SearchServicer.
type mockSearchServicer struct {
	search func(ctx context.Context, requester uuid.UUID, query string) (domain.SearchResults, error)
}

func (m *mockSearchServicer) Search(ctx context.Context, requester uuid.UUID, query string) (domain.SearchResults, error) {
	return m.search(ctx, requester, query)
}

var _ handler.SearchServicer = (*mockSearchServicer)(nil)

func TestSearch_200(t *testing.T) {
	svc := &mockSearchServicer{
		search: func(_ context.Context, requester uuid.UUID, query string) (domain.SearchResults, error) {
			assert.Equal(t, testUserID, requester)
			assert.Equal(t, "lisbon", query)
			return domain.SearchResults{
				Trips:       []domain.Trip{tripFixture()},
				Itineraries: []domain.Itinerary{},
				Events:      []domain.CalendarEvent{},
				Journals:    []domain.JournalEntry{},
			}, nil
		},
	}
	h := newTestRouter(t, handler.ServerDeps{Search: svc})

	rec := doRequest(t, h, http.MethodGet, "/search?q=lisbon", nil)

	require.Equal(t, http.StatusOK, rec.Code)

	// All four groups are present in the body even when empty.
	var body map[string]json.RawMessage
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	for _, group := range []string{"trips", "itineraries", "events", "journals"} {
		assert.Contains(t, body, group)
		assert.NotEqual(t, "null", string(body[group]), "group %s must encode as an array", group)
	}
}

func TestSearch_422_queryTooShort(t *testing.T) {
	svc := &mockSearchServicer{
		search: func(context.Context, uuid.UUID, string) (domain.SearchResults, error) {
			return domain.SearchResults{}, fmt.Errorf("service.SearchService.Search: %w: query must be at least 2 characters", domain.ErrValidation)
		},
	}
	h := newTestRouter(t, handler.ServerDeps{Search: svc})

	rec := doRequest(t, h, http.MethodGet, "/search?q=a", nil)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "validation_failed", decodeError(t, rec).Error.Code)
}
