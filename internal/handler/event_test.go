package handler_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mittalpriyanshi/globaltrotter/internal/domain"
	"github.com/mittalpriyanshi/globaltrotter/internal/handler"
)

// mockEventServicer is a test double for handler.EventServicer.
// Set only the method fields your test needs.
type mockEventServicer struct {
	create        func(ctx context.Context, requester uuid.UUID, ev domain.CalendarEvent) (domain.CalendarEvent, error)
	getByID       func(ctx context.Context, requester, eventID uuid.UUID) (domain.CalendarEvent, error)
	list          func(ctx context.Context, requester uuid.UUID, from, to *time.Time) ([]domain.CalendarEvent, error)
	update        func(ctx context.Context, requester uuid.UUID, ev domain.CalendarEvent) (domain.CalendarEvent, error)
	delete        func(ctx context.Context, requester, eventID uuid.UUID) error
	share         func(ctx context.Context, requester, eventID, target uuid.UUID, role domain.Role) (domain.CalendarEvent, error)
	unshare       func(ctx context.Context, requester, eventID, target uuid.UUID) (domain.CalendarEvent, error)
	setVisibility func(ctx context.Context, requester, eventID uuid.UUID, isPublic bool) (domain.CalendarEvent, error)
}

func (m *mockEventServicer) Create(ctx context.Context, requester uuid.UUID, ev domain.CalendarEvent) (domain.CalendarEvent, error) {
	return m.create(ctx, requester, ev)
}
func (m *mockEventServicer) GetByID(ctx context.Context, requester, eventID uuid.UUID) (domain.CalendarEvent, error) {
	return m.getByID(ctx, requester, eventID)
}
func (m *mockEventServicer) List(ctx context.Context, requester uuid.UUID, from, to *time.Time) ([]domain.CalendarEvent, error) {
	return m.list(ctx, requester, from, to)
}
func (m *mockEventServicer) Update(ctx context.Context, requester uuid.UUID, ev domain.CalendarEvent) (domain.CalendarEvent, error) {
	return m.update(ctx, requester, ev)
}
func (m *mockEventServicer) Delete(ctx context.Context, requester, eventID uuid.UUID) error {
	return m.delete(ctx, requester, eventID)
}
func (m *mockEventServicer) Share(ctx context.Context, requester, eventID, target uuid.UUID, role domain.Role) (domain.CalendarEvent, error) {
	return m.share(ctx, requester, eventID, target, role)
}
func (m *mockEventServicer) Unshare(ctx context.Context, requester, eventID, target uuid.UUID) (domain.CalendarEvent, error) {
	return m.unshare(ctx, requester, eventID, target)
}
func (m *mockEventServicer) SetVisibility(ctx context.Context, requester, eventID uuid.UUID, isPublic bool) (domain.CalendarEvent, error) {
	return m.setVisibility(ctx, requester, eventID, isPublic)
}

var _ handler.EventServicer = (*mockEventServicer)(nil)

func TestCreateEvent_201(t *testing.T) {
	svc := &mockEventServicer{
		create: func(_ context.Context, requester uuid.UUID, ev domain.CalendarEvent) (domain.CalendarEvent, error) {
			assert.Equal(t, testUserID, requester)
			assert.Equal(t, "Flight to Lisbon", ev.Title)
			assert.Nil(t, ev.TripID)
			ev.ID = uuid.New()
			ev.OwnerID = requester
			return ev, nil
		},
	}
	h := newTestRouter(t, handler.ServerDeps{Events: svc})

	rec := doRequest(t, h, http.MethodPost, "/events", map[string]any{
		"title":      "Flight to Lisbon",
		"start_time": "2026-06-01T08:00:00Z",
		"end_time":   "2026-06-01T11:30:00Z",
	})

	require.Equal(t, http.StatusCreated, rec.Code)
}

func TestListEvents_200_withWindow(t *testing.T) {
	svc := &mockEventServicer{
		list: func(_ context.Context, _ uuid.UUID, from, to *time.Time) ([]domain.CalendarEvent, error) {
			require.NotNil(t, from)
			require.NotNil(t, to)
			assert.Equal(t, time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC), from.UTC())
			assert.Equal(t, time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC), to.UTC())
			return []domain.CalendarEvent{}, nil
		},
	}
	h := newTestRouter(t, handler.ServerDeps{Events: svc})

	rec := doRequest(t, h, http.MethodGet,
		"/events?from=2026-06-01T00:00:00Z&to=2026-07-01T00:00:00Z", nil)

	require.Equal(t, http.StatusOK, rec.Code)
}

func TestListEvents_400_badTimestamp(t *testing.T) {
	h := newTestRouter(t, handler.ServerDeps{Events: &mockEventServicer{}})

	rec := doRequest(t, h, http.MethodGet, "/events?from=june-1st", nil)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListEvents_200_noWindow(t *testing.T) {
	svc := &mockEventServicer{
		list: func(_ context.Context, _ uuid.UUID, from, to *time.Time) ([]domain.CalendarEvent, error) {
			assert.Nil(t, from)
			assert.Nil(t, to)
			return []domain.CalendarEvent{}, nil
		},
	}
	h := newTestRouter(t, handler.ServerDeps{Events: svc})

	rec := doRequest(t, h, http.MethodGet, "/events", nil)

	require.Equal(t, http.StatusOK, rec.Code)
}
