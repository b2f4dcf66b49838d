package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mittalpriyanshi/globaltrotter/internal/access"
	"github.com/mittalpriyanshi/globaltrotter/internal/domain"
	"github.com/mittalpriyanshi/globaltrotter/internal/repo"
)

// EventService implements business logic for CalendarEvent operations.
type EventService struct {
	trips  repo.TripRepo
	events repo.EventRepo
	notifs repo.NotificationRepo
}

// NewEventService constructs an EventService backed by the provided repos.
func NewEventService(trips repo.TripRepo, events repo.EventRepo, notifs repo.NotificationRepo) *EventService {
	return &EventService{trips: trips, events: events, notifs: notifs}
}

// Create validates the event and persists it with the requester as owner.
// When the event links to a trip, the requester must be able to read that trip.
func (s *EventService) Create(ctx context.Context, requester uuid.UUID, ev domain.CalendarEvent) (domain.CalendarEvent, error) {
	if err := validateEvent(ev); err != nil {
		return domain.CalendarEvent{}, err
	}
	if ev.TripID != nil {
		trip, err := s.trips.GetByID(ctx, *ev.TripID)
		if err != nil {
			return domain.CalendarEvent{}, fmt.Errorf("service.EventService.Create: %w", err)
		}
		if !access.CanRead(trip.Sharing, requester) {
			return domain.CalendarEvent{}, fmt.Errorf("service.EventService.Create: %w", domain.ErrAccessDenied)
		}
	}

	ev.OwnerID = requester
	ev.SharedWith = nil
	result, err := s.events.Create(ctx, ev)
	if err != nil {
		return domain.CalendarEvent{}, fmt.Errorf("service.EventService.Create: %w", err)
	}
	return result, nil
}

// GetByID returns a single event if the requester may read it.
func (s *EventService) GetByID(ctx context.Context, requester, eventID uuid.UUID) (domain.CalendarEvent, error) {
	ev, err := s.events.GetByID(ctx, eventID)
	if err != nil {
		return domain.CalendarEvent{}, fmt.Errorf("service.EventService.GetByID: %w", err)
	}
	if !access.CanRead(ev.Sharing, requester) {
		return domain.CalendarEvent{}, fmt.Errorf("service.EventService.GetByID: %w", domain.ErrAccessDenied)
	}
	return ev, nil
}

// List returns the requester's visible events. With both from and to set it
// returns only events overlapping the half-open window [from, to); an event
// ending exactly at from, or starting exactly at to, is excluded.
func (s *EventService) List(ctx context.Context, requester uuid.UUID, from, to *time.Time) ([]domain.CalendarEvent, error) {
	var (
		events []domain.CalendarEvent
		err    error
	)
	switch {
	case from != nil && to != nil:
		if !to.After(*from) {
			return nil, fmt.Errorf("%w: to must be after from", domain.ErrValidation)
		}
		events, err = s.events.ListOverlapping(ctx, requester, *from, *to)
	case from != nil || to != nil:
		return nil, fmt.Errorf("%w: from and to must be provided together", domain.ErrValidation)
	default:
		events, err = s.events.ListForUser(ctx, requester)
	}
	if err != nil {
		return nil, fmt.Errorf("service.EventService.List: %w", err)
	}
	if events == nil {
		events = []domain.CalendarEvent{}
	}
	return events, nil
}

// Update validates and persists content changes to an event. Sharing fields
// change only through Share, Unshare, and SetVisibility.
func (s *EventService) Update(ctx context.Context, requester uuid.UUID, ev domain.CalendarEvent) (domain.CalendarEvent, error) {
	current, err := s.events.GetByID(ctx, ev.ID)
	if err != nil {
		return domain.CalendarEvent{}, fmt.Errorf("service.EventService.Update: %w", err)
	}
	if !access.CanWrite(current.Sharing, requester, domain.EventWriteRoles) {
		return domain.CalendarEvent{}, fmt.Errorf("service.EventService.Update: %w", domain.ErrAccessDenied)
	}
	if err := validateEvent(ev); err != nil {
		return domain.CalendarEvent{}, err
	}

	ev.Sharing = current.Sharing
	result, err := s.events.Update(ctx, ev)
	if err != nil {
		return domain.CalendarEvent{}, fmt.Errorf("service.EventService.Update: %w", err)
	}
	return result, nil
}

// Delete removes an event. Owner-exclusive.
func (s *EventService) Delete(ctx context.Context, requester, eventID uuid.UUID) error {
	ev, err := s.events.GetByID(ctx, eventID)
	if err != nil {
		return fmt.Errorf("service.EventService.Delete: %w", err)
	}
	if !access.CanManageSharing(ev.Sharing, requester) {
		return fmt.Errorf("service.EventService.Delete: %w", domain.ErrAccessDenied)
	}
	if err := s.events.Delete(ctx, eventID); err != nil {
		return fmt.Errorf("service.EventService.Delete: %w", err)
	}
	return nil
}

// Share grants target a role on the event, or updates their existing role.
// Owner-exclusive. Events use the view/edit vocabulary.
func (s *EventService) Share(ctx context.Context, requester, eventID, target uuid.UUID, role domain.Role) (domain.CalendarEvent, error) {
	ev, err := s.events.GetByID(ctx, eventID)
	if err != nil {
		return domain.CalendarEvent{}, fmt.Errorf("service.EventService.Share: %w", err)
	}
	if !access.CanManageSharing(ev.Sharing, requester) {
		return domain.CalendarEvent{}, fmt.Errorf("service.EventService.Share: %w", domain.ErrAccessDenied)
	}
	if !domain.RoleIn(role, domain.EventRoles) {
		return domain.CalendarEvent{}, fmt.Errorf("%w: role %q is not valid for events", domain.ErrValidation, role)
	}

	grants, err := access.Grant(ev.Sharing, target, role)
	if err != nil {
		return domain.CalendarEvent{}, fmt.Errorf("service.EventService.Share: %w", err)
	}
	ev.SharedWith = grants

	result, err := s.events.Update(ctx, ev)
	if err != nil {
		return domain.CalendarEvent{}, fmt.Errorf("service.EventService.Share: %w", err)
	}

	_, _ = s.notifs.Create(ctx, domain.Notification{
		UserID:  target,
		Type:    domain.NotificationShareGranted,
		Title:   "Event shared with you",
		Message: fmt.Sprintf("%q was shared with you as %s.", result.Title, role),
	})
	return result, nil
}

// Unshare removes target's grant on the event. Owner-exclusive.
func (s *EventService) Unshare(ctx context.Context, requester, eventID, target uuid.UUID) (domain.CalendarEvent, error) {
	ev, err := s.events.GetByID(ctx, eventID)
	if err != nil {
		return domain.CalendarEvent{}, fmt.Errorf("service.EventService.Unshare: %w", err)
	}
	if !access.CanManageSharing(ev.Sharing, requester) {
		return domain.CalendarEvent{}, fmt.Errorf("service.EventService.Unshare: %w", domain.ErrAccessDenied)
	}

	ev.SharedWith = access.Revoke(ev.Sharing, target)
	result, err := s.events.Update(ctx, ev)
	if err != nil {
		return domain.CalendarEvent{}, fmt.Errorf("service.EventService.Unshare: %w", err)
	}
	return result, nil
}

// SetVisibility toggles the event's public flag. Owner-exclusive.
func (s *EventService) SetVisibility(ctx context.Context, requester, eventID uuid.UUID, isPublic bool) (domain.CalendarEvent, error) {
	ev, err := s.events.GetByID(ctx, eventID)
	if err != nil {
		return domain.CalendarEvent{}, fmt.Errorf("service.EventService.SetVisibility: %w", err)
	}
	if !access.CanManageSharing(ev.Sharing, requester) {
		return domain.CalendarEvent{}, fmt.Errorf("service.EventService.SetVisibility: %w", domain.ErrAccessDenied)
	}

	ev.IsPublic = isPublic
	result, err := s.events.Update(ctx, ev)
	if err != nil {
		return domain.CalendarEvent{}, fmt.Errorf("service.EventService.SetVisibility: %w", err)
	}
	return result, nil
}

// validateEvent enforces the rules common to Create and Update.
func validateEvent(ev domain.CalendarEvent) error {
	if strings.TrimSpace(ev.Title) == "" {
		return fmt.Errorf("%w: title is required", domain.ErrValidation)
	}
	if ev.StartTime.IsZero() || ev.EndTime.IsZero() {
		return fmt.Errorf("%w: start_time and end_time are required", domain.ErrValidation)
	}
	if !ev.EndTime.After(ev.StartTime) {
		return fmt.Errorf("%w: end_time must be after start_time", domain.ErrValidation)
	}
	return nil
}
