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

// TripService implements business logic for Trip operations, including the
// owner-exclusive sharing management.
type TripService struct {
	trips  repo.TripRepo
	notifs repo.NotificationRepo
}

// NewTripService constructs a TripService backed by the provided repos.
func NewTripService(trips repo.TripRepo, notifs repo.NotificationRepo) *TripService {
	return &TripService{trips: trips, notifs: notifs}
}

// Create validates and persists a new trip owned by the requester.
func (s *TripService) Create(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	if err := validateTrip(trip); err != nil {
		return domain.Trip{}, err
	}
	trip.SharedWith = nil // grants are added through Share, never at creation
	result, err := s.trips.Create(ctx, trip)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Create: %w", err)
	}
	return result, nil
}

// GetByID returns a single trip if the requester may read it.
func (s *TripService) GetByID(ctx context.Context, requester, tripID uuid.UUID) (domain.Trip, error) {
	trip, err := s.trips.GetByID(ctx, tripID)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.GetByID: %w", err)
	}
	if !access.CanRead(trip.Sharing, requester) {
		return domain.Trip{}, fmt.Errorf("service.TripService.GetByID: %w", domain.ErrAccessDenied)
	}
	return trip, nil
}

// List returns all trips the requester owns or collaborates on.
// Always returns a non-nil slice so callers can safely range over it.
func (s *TripService) List(ctx context.Context, requester uuid.UUID) ([]domain.Trip, error) {
	trips, err := s.trips.ListForUser(ctx, requester)
	if err != nil {
		return nil, fmt.Errorf("service.TripService.List: %w", err)
	}
	if trips == nil {
		trips = []domain.Trip{}
	}
	return trips, nil
}

// Update validates and persists content changes to a trip. The requester
// must be the owner or hold an edit-capable role. Sharing fields are not
// touched here — they change only through Share, Unshare, and SetVisibility.
func (s *TripService) Update(ctx context.Context, requester uuid.UUID, trip domain.Trip) (domain.Trip, error) {
	current, err := s.trips.GetByID(ctx, trip.ID)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Update: %w", err)
	}
	if !access.CanWrite(current.Sharing, requester, domain.TripWriteRoles) {
		return domain.Trip{}, fmt.Errorf("service.TripService.Update: %w", domain.ErrAccessDenied)
	}
	if err := validateTrip(trip); err != nil {
		return domain.Trip{}, err
	}

	trip.Sharing = current.Sharing
	result, err := s.trips.Update(ctx, trip)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Update: %w", err)
	}
	return result, nil
}

// Delete removes a trip. Owner-exclusive, like sharing management:
// an editor may change a trip but not destroy it.
func (s *TripService) Delete(ctx context.Context, requester, tripID uuid.UUID) error {
	trip, err := s.trips.GetByID(ctx, tripID)
	if err != nil {
		return fmt.Errorf("service.TripService.Delete: %w", err)
	}
	if !access.CanManageSharing(trip.Sharing, requester) {
		return fmt.Errorf("service.TripService.Delete: %w", domain.ErrAccessDenied)
	}
	if err := s.trips.Delete(ctx, tripID); err != nil {
		return fmt.Errorf("service.TripService.Delete: %w", err)
	}
	return nil
}

// Share grants target a role on the trip, or updates their existing role.
// Owner-exclusive. The role must belong to the trip vocabulary.
// The target is notified on success.
func (s *TripService) Share(ctx context.Context, requester, tripID, target uuid.UUID, role domain.Role) (domain.Trip, error) {
	trip, err := s.trips.GetByID(ctx, tripID)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Share: %w", err)
	}
	if !access.CanManageSharing(trip.Sharing, requester) {
		return domain.Trip{}, fmt.Errorf("service.TripService.Share: %w", domain.ErrAccessDenied)
	}
	if !domain.RoleIn(role, domain.TripRoles) {
		return domain.Trip{}, fmt.Errorf("%w: role %q is not valid for trips", domain.ErrValidation, role)
	}

	grants, err := access.Grant(trip.Sharing, target, role)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Share: %w", err)
	}
	trip.SharedWith = grants

	result, err := s.trips.Update(ctx, trip)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Share: %w", err)
	}

	// Best effort — sharing never fails because the notification insert did.
	_, _ = s.notifs.Create(ctx, domain.Notification{
		UserID:  target,
		Type:    domain.NotificationShareGranted,
		Title:   "Trip shared with you",
		Message: fmt.Sprintf("%q was shared with you as %s.", result.Name, role),
	})
	return result, nil
}

// Unshare removes target's grant on the trip. Owner-exclusive.
// Revoking a user who was never granted is a no-op, not an error.
func (s *TripService) Unshare(ctx context.Context, requester, tripID, target uuid.UUID) (domain.Trip, error) {
	trip, err := s.trips.GetByID(ctx, tripID)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Unshare: %w", err)
	}
	if !access.CanManageSharing(trip.Sharing, requester) {
		return domain.Trip{}, fmt.Errorf("service.TripService.Unshare: %w", domain.ErrAccessDenied)
	}

	trip.SharedWith = access.Revoke(trip.Sharing, target)
	result, err := s.trips.Update(ctx, trip)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Unshare: %w", err)
	}
	return result, nil
}

// SetVisibility toggles the trip's public flag. Owner-exclusive.
func (s *TripService) SetVisibility(ctx context.Context, requester, tripID uuid.UUID, isPublic bool) (domain.Trip, error) {
	trip, err := s.trips.GetByID(ctx, tripID)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.SetVisibility: %w", err)
	}
	if !access.CanManageSharing(trip.Sharing, requester) {
		return domain.Trip{}, fmt.Errorf("service.TripService.SetVisibility: %w", domain.ErrAccessDenied)
	}

	trip.IsPublic = isPublic
	result, err := s.trips.Update(ctx, trip)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.SetVisibility: %w", err)
	}
	return result, nil
}

// validateTrip enforces business rules common to both Create and Update.
//   - Name must be non-empty (whitespace-only names are rejected).
//   - EndDate must not be before StartDate; a same-day trip is valid.
func validateTrip(trip domain.Trip) error {
	if strings.TrimSpace(trip.Name) == "" {
		return fmt.Errorf("%w: name is required", domain.ErrValidation)
	}
	if trip.StartDate.IsZero() {
		return fmt.Errorf("%w: start_date is required", domain.ErrValidation)
	}
	if trip.EndDate.Before(trip.StartDate) {
		return fmt.Errorf("%w: end_date must not be before start_date", domain.ErrValidation)
	}
	return nil
}
