package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/mittalpriyanshi/globaltrotter/internal/domain"
	"github.com/mittalpriyanshi/globaltrotter/internal/repo"
)

// NotificationService implements business logic for Notification operations.
// Notifications are strictly per-user; every method scopes by the requester,
// so there is no sharing model to enforce here.
type NotificationService struct {
	notifs repo.NotificationRepo
}

// NewNotificationService constructs a NotificationService backed by the provided repo.
func NewNotificationService(notifs repo.NotificationRepo) *NotificationService {
	return &NotificationService{notifs: notifs}
}

// List returns a page of the requester's notifications, newest first,
// with the total count across all pages.
func (s *NotificationService) List(ctx context.Context, requester uuid.UUID, p domain.PaginationParams) ([]domain.Notification, int64, error) {
	items, total, err := s.notifs.ListByUser(ctx, requester, p)
	if err != nil {
		return nil, 0, fmt.Errorf("service.NotificationService.List: %w", err)
	}
	if items == nil {
		items = []domain.Notification{}
	}
	return items, total, nil
}

// UnreadCount returns how many of the requester's notifications are unread.
func (s *NotificationService) UnreadCount(ctx context.Context, requester uuid.UUID) (int64, error) {
	count, err := s.notifs.UnreadCount(ctx, requester)
	if err != nil {
		return 0, fmt.Errorf("service.NotificationService.UnreadCount: %w", err)
	}
	return count, nil
}

// MarkRead marks a single notification of the requester as read.
func (s *NotificationService) MarkRead(ctx context.Context, requester, id uuid.UUID) error {
	if err := s.notifs.MarkRead(ctx, requester, id); err != nil {
		return fmt.Errorf("service.NotificationService.MarkRead: %w", err)
	}
	return nil
}

// MarkAllRead marks every unread notification of the requester as read.
func (s *NotificationService) MarkAllRead(ctx context.Context, requester uuid.UUID) error {
	if err := s.notifs.MarkAllRead(ctx, requester); err != nil {
		return fmt.Errorf("service.NotificationService.MarkAllRead: %w", err)
	}
	return nil
}

// Delete removes a single notification of the requester.
func (s *NotificationService) Delete(ctx context.Context, requester, id uuid.UUID) error {
	if err := s.notifs.Delete(ctx, requester, id); err != nil {
		return fmt.Errorf("service.NotificationService.Delete: %w", err)
	}
	return nil
}
