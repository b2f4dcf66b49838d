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

// JournalService implements business logic for JournalEntry operations.
type JournalService struct {
	trips    repo.TripRepo
	journals repo.JournalRepo
	notifs   repo.NotificationRepo
}

// NewJournalService constructs a JournalService backed by the provided repos.
func NewJournalService(trips repo.TripRepo, journals repo.JournalRepo, notifs repo.NotificationRepo) *JournalService {
	return &JournalService{trips: trips, journals: journals, notifs: notifs}
}

// Create validates the entry and persists it with the requester as owner.
// When the entry links to a trip, the requester must be able to read that trip.
func (s *JournalService) Create(ctx context.Context, requester uuid.UUID, entry domain.JournalEntry) (domain.JournalEntry, error) {
	if err := validateJournalEntry(entry); err != nil {
		return domain.JournalEntry{}, err
	}
	if entry.TripID != nil {
		trip, err := s.trips.GetByID(ctx, *entry.TripID)
		if err != nil {
			return domain.JournalEntry{}, fmt.Errorf("service.JournalService.Create: %w", err)
		}
		if !access.CanRead(trip.Sharing, requester) {
			return domain.JournalEntry{}, fmt.Errorf("service.JournalService.Create: %w", domain.ErrAccessDenied)
		}
	}

	entry.OwnerID = requester
	entry.SharedWith = nil
	result, err := s.journals.Create(ctx, entry)
	if err != nil {
		return domain.JournalEntry{}, fmt.Errorf("service.JournalService.Create: %w", err)
	}
	return result, nil
}

// GetByID returns a single entry if the requester may read it.
func (s *JournalService) GetByID(ctx context.Context, requester, entryID uuid.UUID) (domain.JournalEntry, error) {
	entry, err := s.journals.GetByID(ctx, entryID)
	if err != nil {
		return domain.JournalEntry{}, fmt.Errorf("service.JournalService.GetByID: %w", err)
	}
	if !access.CanRead(entry.Sharing, requester) {
		return domain.JournalEntry{}, fmt.Errorf("service.JournalService.GetByID: %w", domain.ErrAccessDenied)
	}
	return entry, nil
}

// List returns the requester's visible journal entries, newest first.
// Always returns a non-nil slice so callers can safely range over it.
func (s *JournalService) List(ctx context.Context, requester uuid.UUID) ([]domain.JournalEntry, error) {
	entries, err := s.journals.ListForUser(ctx, requester)
	if err != nil {
		return nil, fmt.Errorf("service.JournalService.List: %w", err)
	}
	if entries == nil {
		entries = []domain.JournalEntry{}
	}
	return entries, nil
}

// Update validates and persists content changes to an entry. Sharing fields
// change only through Share, Unshare, and SetVisibility.
func (s *JournalService) Update(ctx context.Context, requester uuid.UUID, entry domain.JournalEntry) (domain.JournalEntry, error) {
	current, err := s.journals.GetByID(ctx, entry.ID)
	if err != nil {
		return domain.JournalEntry{}, fmt.Errorf("service.JournalService.Update: %w", err)
	}
	if !access.CanWrite(current.Sharing, requester, domain.JournalWriteRoles) {
		return domain.JournalEntry{}, fmt.Errorf("service.JournalService.Update: %w", domain.ErrAccessDenied)
	}
	if err := validateJournalEntry(entry); err != nil {
		return domain.JournalEntry{}, err
	}

	entry.Sharing = current.Sharing
	result, err := s.journals.Update(ctx, entry)
	if err != nil {
		return domain.JournalEntry{}, fmt.Errorf("service.JournalService.Update: %w", err)
	}
	return result, nil
}

// Delete removes an entry. Owner-exclusive.
func (s *JournalService) Delete(ctx context.Context, requester, entryID uuid.UUID) error {
	entry, err := s.journals.GetByID(ctx, entryID)
	if err != nil {
		return fmt.Errorf("service.JournalService.Delete: %w", err)
	}
	if !access.CanManageSharing(entry.Sharing, requester) {
		return fmt.Errorf("service.JournalService.Delete: %w", domain.ErrAccessDenied)
	}
	if err := s.journals.Delete(ctx, entryID); err != nil {
		return fmt.Errorf("service.JournalService.Delete: %w", err)
	}
	return nil
}

// Share grants target a role on the entry, or updates their existing role.
// Owner-exclusive. Journals use the viewer/editor vocabulary.
func (s *JournalService) Share(ctx context.Context, requester, entryID, target uuid.UUID, role domain.Role) (domain.JournalEntry, error) {
	entry, err := s.journals.GetByID(ctx, entryID)
	if err != nil {
		return domain.JournalEntry{}, fmt.Errorf("service.JournalService.Share: %w", err)
	}
	if !access.CanManageSharing(entry.Sharing, requester) {
		return domain.JournalEntry{}, fmt.Errorf("service.JournalService.Share: %w", domain.ErrAccessDenied)
	}
	if !domain.RoleIn(role, domain.JournalRoles) {
		return domain.JournalEntry{}, fmt.Errorf("%w: role %q is not valid for journal entries", domain.ErrValidation, role)
	}

	grants, err := access.Grant(entry.Sharing, target, role)
	if err != nil {
		return domain.JournalEntry{}, fmt.Errorf("service.JournalService.Share: %w", err)
	}
	entry.SharedWith = grants

	result, err := s.journals.Update(ctx, entry)
	if err != nil {
		return domain.JournalEntry{}, fmt.Errorf("service.JournalService.Share: %w", err)
	}

	_, _ = s.notifs.Create(ctx, domain.Notification{
		UserID:  target,
		Type:    domain.NotificationShareGranted,
		Title:   "Journal entry shared with you",
		Message: fmt.Sprintf("%q was shared with you as %s.", result.Title, role),
	})
	return result, nil
}

// Unshare removes target's grant on the entry. Owner-exclusive.
func (s *JournalService) Unshare(ctx context.Context, requester, entryID, target uuid.UUID) (domain.JournalEntry, error) {
	entry, err := s.journals.GetByID(ctx, entryID)
	if err != nil {
		return domain.JournalEntry{}, fmt.Errorf("service.JournalService.Unshare: %w", err)
	}
	if !access.CanManageSharing(entry.Sharing, requester) {
		return domain.JournalEntry{}, fmt.Errorf("service.JournalService.Unshare: %w", domain.ErrAccessDenied)
	}

	entry.SharedWith = access.Revoke(entry.Sharing, target)
	result, err := s.journals.Update(ctx, entry)
	if err != nil {
		return domain.JournalEntry{}, fmt.Errorf("service.JournalService.Unshare: %w", err)
	}
	return result, nil
}

// SetVisibility toggles the entry's public flag. Owner-exclusive.
func (s *JournalService) SetVisibility(ctx context.Context, requester, entryID uuid.UUID, isPublic bool) (domain.JournalEntry, error) {
	entry, err := s.journals.GetByID(ctx, entryID)
	if err != nil {
		return domain.JournalEntry{}, fmt.Errorf("service.JournalService.SetVisibility: %w", err)
	}
	if !access.CanManageSharing(entry.Sharing, requester) {
		return domain.JournalEntry{}, fmt.Errorf("service.JournalService.SetVisibility: %w", domain.ErrAccessDenied)
	}

	entry.IsPublic = isPublic
	result, err := s.journals.Update(ctx, entry)
	if err != nil {
		return domain.JournalEntry{}, fmt.Errorf("service.JournalService.SetVisibility: %w", err)
	}
	return result, nil
}

// validateJournalEntry enforces the rules common to Create and Update.
func validateJournalEntry(entry domain.JournalEntry) error {
	if strings.TrimSpace(entry.Title) == "" {
		return fmt.Errorf("%w: title is required", domain.ErrValidation)
	}
	if strings.TrimSpace(entry.Content) == "" {
		return fmt.Errorf("%w: content is required", domain.ErrValidation)
	}
	if entry.EntryDate.IsZero() {
		return fmt.Errorf("%w: entry_date is required", domain.ErrValidation)
	}
	return nil
}
