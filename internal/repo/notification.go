package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/mittalpriyanshi/globaltrotter/internal/domain"
)

// NotificationRepo defines the persistence operations for Notifications.
type NotificationRepo interface {
	// Create inserts a new notification for its recipient.
	Create(ctx context.Context, n domain.Notification) (domain.Notification, error)

	// ListByUser returns one page of the user's notifications, newest first,
	// together with the total count for pagination.
	ListByUser(ctx context.Context, userID uuid.UUID, p domain.PaginationParams) ([]domain.Notification, int64, error)

	// UnreadCount returns the number of unread notifications for the user.
	UnreadCount(ctx context.Context, userID uuid.UUID) (int64, error)

	// MarkRead marks a single notification read, scoped to its recipient.
	MarkRead(ctx context.Context, userID, id uuid.UUID) error

	// MarkAllRead marks all of the user's notifications read.
	// Marking zero rows is not an error.
	MarkAllRead(ctx context.Context, userID uuid.UUID) error

	// Delete removes a single notification, scoped to its recipient.
	Delete(ctx context.Context, userID, id uuid.UUID) error
}

// pgNotificationRepo is the Postgres implementation of NotificationRepo.
type pgNotificationRepo struct {
	db db
}

// NewNotificationRepo constructs a NotificationRepo backed by the provided db connection.
func NewNotificationRepo(db db) NotificationRepo {
	return &pgNotificationRepo{db: db}
}

const notificationColumns = `id, user_id, type, title, message, read, created_at`

func (r *pgNotificationRepo) Create(ctx context.Context, n domain.Notification) (domain.Notification, error) {
	const q = `
		INSERT INTO notifications (user_id, type, title, message)
		VALUES (@user_id, @type, @title, @message)
		RETURNING ` + notificationColumns

	args := pgx.NamedArgs{
		"user_id": n.UserID,
		"type":    n.Type,
		"title":   n.Title,
		"message": n.Message,
	}

	result, err := scanNotification(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Notification{}, fmt.Errorf("repo.NotificationRepo.Create: %w", err)
	}
	return result, nil
}

func (r *pgNotificationRepo) ListByUser(ctx context.Context, userID uuid.UUID, p domain.PaginationParams) ([]domain.Notification, int64, error) {
	const countQ = `SELECT count(*) FROM notifications WHERE user_id = @user_id`

	var total int64
	if err := r.db.QueryRow(ctx, countQ, pgx.NamedArgs{"user_id": userID}).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("repo.NotificationRepo.ListByUser: count: %w", err)
	}

	const q = `
		SELECT ` + notificationColumns + `
		FROM notifications
		WHERE user_id = @user_id
		ORDER BY created_at DESC
		LIMIT @limit OFFSET @offset`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{
		"user_id": userID, "limit": p.Limit, "offset": p.Offset(),
	})
	if err != nil {
		return nil, 0, fmt.Errorf("repo.NotificationRepo.ListByUser: %w", err)
	}
	defer rows.Close()

	notifications := []domain.Notification{}
	for rows.Next() {
		n, err := scanNotification(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("repo.NotificationRepo.ListByUser: scan: %w", err)
		}
		notifications = append(notifications, n)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("repo.NotificationRepo.ListByUser: rows: %w", err)
	}
	return notifications, total, nil
}

func (r *pgNotificationRepo) UnreadCount(ctx context.Context, userID uuid.UUID) (int64, error) {
	const q = `SELECT count(*) FROM notifications WHERE user_id = @user_id AND NOT read`

	var count int64
	if err := r.db.QueryRow(ctx, q, pgx.NamedArgs{"user_id": userID}).Scan(&count); err != nil {
		return 0, fmt.Errorf("repo.NotificationRepo.UnreadCount: %w", err)
	}
	return count, nil
}

func (r *pgNotificationRepo) MarkRead(ctx context.Context, userID, id uuid.UUID) error {
	const q = `UPDATE notifications SET read = true WHERE id = @id AND user_id = @user_id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id, "user_id": userID})
	if err != nil {
		return fmt.Errorf("repo.NotificationRepo.MarkRead: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.NotificationRepo.MarkRead: %w", domain.ErrNotFound)
	}
	return nil
}

func (r *pgNotificationRepo) MarkAllRead(ctx context.Context, userID uuid.UUID) error {
	const q = `UPDATE notifications SET read = true WHERE user_id = @user_id AND NOT read`

	if _, err := r.db.Exec(ctx, q, pgx.NamedArgs{"user_id": userID}); err != nil {
		return fmt.Errorf("repo.NotificationRepo.MarkAllRead: %w", err)
	}
	return nil
}

func (r *pgNotificationRepo) Delete(ctx context.Context, userID, id uuid.UUID) error {
	const q = `DELETE FROM notifications WHERE id = @id AND user_id = @user_id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id, "user_id": userID})
	if err != nil {
		return fmt.Errorf("repo.NotificationRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.NotificationRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

// scanNotification maps a single database row into a domain.Notification.
func scanNotification(s scanner) (domain.Notification, error) {
	var n domain.Notification
	err := s.Scan(&n.ID, &n.UserID, &n.Type, &n.Title, &n.Message, &n.Read, &n.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Notification{}, domain.ErrNotFound
		}
		return domain.Notification{}, err
	}
	return n, nil
}
