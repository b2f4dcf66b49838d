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

// ItineraryService implements business logic for Itinerary operations.
// It holds the trips repo because creating an itinerary requires write
// access to the parent trip; after creation the itinerary carries its own
// independent sharing list with the three-level viewer/editor/admin
// vocabulary.
type ItineraryService struct {
	trips  repo.TripRepo
	itins  repo.ItineraryRepo
	notifs repo.NotificationRepo
}

// NewItineraryService constructs an ItineraryService backed by the provided repos.
func NewItineraryService(trips repo.TripRepo, itins repo.ItineraryRepo, notifs repo.NotificationRepo) *ItineraryService {
	return &ItineraryService{trips: trips, itins: itins, notifs: notifs}
}

// Create validates the itinerary, verifies the requester may write the
// parent trip, then persists with the requester as owner.
func (s *ItineraryService) Create(ctx context.Context, requester uuid.UUID, it domain.Itinerary) (domain.Itinerary, error) {
	trip, err := s.trips.GetByID(ctx, it.TripID)
	if err != nil {
		return domain.Itinerary{}, fmt.Errorf("service.ItineraryService.Create: %w", err)
	}
	if !access.CanWrite(trip.Sharing, requester, domain.TripWriteRoles) {
		return domain.Itinerary{}, fmt.Errorf("service.ItineraryService.Create: %w", domain.ErrAccessDenied)
	}
	if strings.TrimSpace(it.Title) == "" {
		return domain.Itinerary{}, fmt.Errorf("%w: title is required", domain.ErrValidation)
	}

	it.OwnerID = requester
	it.SharedWith = nil
	result, err := s.itins.Create(ctx, it)
	if err != nil {
		return domain.Itinerary{}, fmt.Errorf("service.ItineraryService.Create: %w", err)
	}
	return result, nil
}

// GetByID returns a single itinerary if the requester may read it.
func (s *ItineraryService) GetByID(ctx context.Context, requester, itineraryID uuid.UUID) (domain.Itinerary, error) {
	it, err := s.itins.GetByID(ctx, itineraryID)
	if err != nil {
		return domain.Itinerary{}, fmt.Errorf("service.ItineraryService.GetByID: %w", err)
	}
	if !access.CanRead(it.Sharing, requester) {
		return domain.Itinerary{}, fmt.Errorf("service.ItineraryService.GetByID: %w", domain.ErrAccessDenied)
	}
	return it, nil
}

// ListByTrip returns the itineraries of a trip readable by the requester.
// The parent trip must itself be readable; individual itineraries the
// requester cannot read are filtered out rather than failing the call.
func (s *ItineraryService) ListByTrip(ctx context.Context, requester, tripID uuid.UUID) ([]domain.Itinerary, error) {
	trip, err := s.trips.GetByID(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("service.ItineraryService.ListByTrip: %w", err)
	}
	if !access.CanRead(trip.Sharing, requester) {
		return nil, fmt.Errorf("service.ItineraryService.ListByTrip: %w", domain.ErrAccessDenied)
	}

	all, err := s.itins.ListByTrip(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("service.ItineraryService.ListByTrip: %w", err)
	}

	readable := []domain.Itinerary{}
	for _, it := range all {
		if access.CanRead(it.Sharing, requester) {
			readable = append(readable, it)
		}
	}
	return readable, nil
}

// Update validates and persists content changes to an itinerary.
// Editors and admins may write; sharing fields change only through
// Share, Unshare, and SetVisibility.
func (s *ItineraryService) Update(ctx context.Context, requester uuid.UUID, it domain.Itinerary) (domain.Itinerary, error) {
	current, err := s.itins.GetByID(ctx, it.ID)
	if err != nil {
		return domain.Itinerary{}, fmt.Errorf("service.ItineraryService.Update: %w", err)
	}
	if !access.CanWrite(current.Sharing, requester, domain.ItineraryWriteRoles) {
		return domain.Itinerary{}, fmt.Errorf("service.ItineraryService.Update: %w", domain.ErrAccessDenied)
	}
	if strings.TrimSpace(it.Title) == "" {
		return domain.Itinerary{}, fmt.Errorf("%w: title is required", domain.ErrValidation)
	}

	it.Sharing = current.Sharing
	result, err := s.itins.Update(ctx, it)
	if err != nil {
		return domain.Itinerary{}, fmt.Errorf("service.ItineraryService.Update: %w", err)
	}
	return result, nil
}

// Delete removes an itinerary. Owner-exclusive.
func (s *ItineraryService) Delete(ctx context.Context, requester, itineraryID uuid.UUID) error {
	it, err := s.itins.GetByID(ctx, itineraryID)
	if err != nil {
		return fmt.Errorf("service.ItineraryService.Delete: %w", err)
	}
	if !access.CanManageSharing(it.Sharing, requester) {
		return fmt.Errorf("service.ItineraryService.Delete: %w", domain.ErrAccessDenied)
	}
	if err := s.itins.Delete(ctx, itineraryID); err != nil {
		return fmt.Errorf("service.ItineraryService.Delete: %w", err)
	}
	return nil
}

// Share grants target a role on the itinerary, or updates their existing
// role. Owner-exclusive. The role must belong to the itinerary vocabulary,
// which includes admin on top of viewer and editor.
func (s *ItineraryService) Share(ctx context.Context, requester, itineraryID, target uuid.UUID, role domain.Role) (domain.Itinerary, error) {
	it, err := s.itins.GetByID(ctx, itineraryID)
	if err != nil {
		return domain.Itinerary{}, fmt.Errorf("service.ItineraryService.Share: %w", err)
	}
	if !access.CanManageSharing(it.Sharing, requester) {
		return domain.Itinerary{}, fmt.Errorf("service.ItineraryService.Share: %w", domain.ErrAccessDenied)
	}
	if !domain.RoleIn(role, domain.ItineraryRoles) {
		return domain.Itinerary{}, fmt.Errorf("%w: role %q is not valid for itineraries", domain.ErrValidation, role)
	}

	grants, err := access.Grant(it.Sharing, target, role)
	if err != nil {
		return domain.Itinerary{}, fmt.Errorf("service.ItineraryService.Share: %w", err)
	}
	it.SharedWith = grants

	result, err := s.itins.Update(ctx, it)
	if err != nil {
		return domain.Itinerary{}, fmt.Errorf("service.ItineraryService.Share: %w", err)
	}

	_, _ = s.notifs.Create(ctx, domain.Notification{
		UserID:  target,
		Type:    domain.NotificationShareGranted,
		Title:   "Itinerary shared with you",
		Message: fmt.Sprintf("%q was shared with you as %s.", result.Title, role),
	})
	return result, nil
}

// Unshare removes target's grant on the itinerary. Owner-exclusive.
func (s *ItineraryService) Unshare(ctx context.Context, requester, itineraryID, target uuid.UUID) (domain.Itinerary, error) {
	it, err := s.itins.GetByID(ctx, itineraryID)
	if err != nil {
		return domain.Itinerary{}, fmt.Errorf("service.ItineraryService.Unshare: %w", err)
	}
	if !access.CanManageSharing(it.Sharing, requester) {
		return domain.Itinerary{}, fmt.Errorf("service.ItineraryService.Unshare: %w", domain.ErrAccessDenied)
	}

	it.SharedWith = access.Revoke(it.Sharing, target)
	result, err := s.itins.Update(ctx, it)
	if err != nil {
		return domain.Itinerary{}, fmt.Errorf("service.ItineraryService.Unshare: %w", err)
	}
	return result, nil
}

// SetVisibility toggles the itinerary's public flag. Owner-exclusive.
func (s *ItineraryService) SetVisibility(ctx context.Context, requester, itineraryID uuid.UUID, isPublic bool) (domain.Itinerary, error) {
	it, err := s.itins.GetByID(ctx, itineraryID)
	if err != nil {
		return domain.Itinerary{}, fmt.Errorf("service.ItineraryService.SetVisibility: %w", err)
	}
	if !access.CanManageSharing(it.Sharing, requester) {
		return domain.Itinerary{}, fmt.Errorf("service.ItineraryService.SetVisibility: %w", domain.ErrAccessDenied)
	}

	it.IsPublic = isPublic
	result, err := s.itins.Update(ctx, it)
	if err != nil {
		return domain.Itinerary{}, fmt.Errorf("service.ItineraryService.SetVisibility: %w", err)
	}
	return result, nil
}

// CreateItem appends a planned activity to an itinerary the requester may write.
func (s *ItineraryService) CreateItem(ctx context.Context, requester uuid.UUID, item domain.ItineraryItem) (domain.ItineraryItem, error) {
	it, err := s.itins.GetByID(ctx, item.ItineraryID)
	if err != nil {
		return domain.ItineraryItem{}, fmt.Errorf("service.ItineraryService.CreateItem: %w", err)
	}
	if !access.CanWrite(it.Sharing, requester, domain.ItineraryWriteRoles) {
		return domain.ItineraryItem{}, fmt.Errorf("service.ItineraryService.CreateItem: %w", domain.ErrAccessDenied)
	}
	if err := validateItineraryItem(item); err != nil {
		return domain.ItineraryItem{}, err
	}

	result, err := s.itins.CreateItem(ctx, item)
	if err != nil {
		return domain.ItineraryItem{}, fmt.Errorf("service.ItineraryService.CreateItem: %w", err)
	}
	return result, nil
}

// ListItems returns an itinerary's items if the requester may read it.
// Always returns a non-nil slice so callers can safely range over it.
func (s *ItineraryService) ListItems(ctx context.Context, requester, itineraryID uuid.UUID) ([]domain.ItineraryItem, error) {
	it, err := s.itins.GetByID(ctx, itineraryID)
	if err != nil {
		return nil, fmt.Errorf("service.ItineraryService.ListItems: %w", err)
	}
	if !access.CanRead(it.Sharing, requester) {
		return nil, fmt.Errorf("service.ItineraryService.ListItems: %w", domain.ErrAccessDenied)
	}

	items, err := s.itins.ListItems(ctx, itineraryID)
	if err != nil {
		return nil, fmt.Errorf("service.ItineraryService.ListItems: %w", err)
	}
	if items == nil {
		items = []domain.ItineraryItem{}
	}
	return items, nil
}

// UpdateItem persists changes to an item of an itinerary the requester may write.
func (s *ItineraryService) UpdateItem(ctx context.Context, requester uuid.UUID, item domain.ItineraryItem) (domain.ItineraryItem, error) {
	it, err := s.itins.GetByID(ctx, item.ItineraryID)
	if err != nil {
		return domain.ItineraryItem{}, fmt.Errorf("service.ItineraryService.UpdateItem: %w", err)
	}
	if !access.CanWrite(it.Sharing, requester, domain.ItineraryWriteRoles) {
		return domain.ItineraryItem{}, fmt.Errorf("service.ItineraryService.UpdateItem: %w", domain.ErrAccessDenied)
	}
	if err := validateItineraryItem(item); err != nil {
		return domain.ItineraryItem{}, err
	}

	result, err := s.itins.UpdateItem(ctx, item)
	if err != nil {
		return domain.ItineraryItem{}, fmt.Errorf("service.ItineraryService.UpdateItem: %w", err)
	}
	return result, nil
}

// DeleteItem removes an item of an itinerary the requester may write.
func (s *ItineraryService) DeleteItem(ctx context.Context, requester, itineraryID, itemID uuid.UUID) error {
	it, err := s.itins.GetByID(ctx, itineraryID)
	if err != nil {
		return fmt.Errorf("service.ItineraryService.DeleteItem: %w", err)
	}
	if !access.CanWrite(it.Sharing, requester, domain.ItineraryWriteRoles) {
		return fmt.Errorf("service.ItineraryService.DeleteItem: %w", domain.ErrAccessDenied)
	}
	if err := s.itins.DeleteItem(ctx, itineraryID, itemID); err != nil {
		return fmt.Errorf("service.ItineraryService.DeleteItem: %w", err)
	}
	return nil
}

// validateItineraryItem enforces the rules common to item Create and Update.
func validateItineraryItem(item domain.ItineraryItem) error {
	if strings.TrimSpace(item.Activity) == "" {
		return fmt.Errorf("%w: activity is required", domain.ErrValidation)
	}
	if item.Day.IsZero() {
		return fmt.Errorf("%w: day is required", domain.ErrValidation)
	}
	return nil
}
