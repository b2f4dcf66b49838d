package domain

import (
	"time"

	"github.com/google/uuid"
)

// NotificationType identifies what triggered a notification.
type NotificationType string

const (
	// NotificationShareGranted is sent to a user when a resource is shared
	// with them or their role on it changes.
	NotificationShareGranted NotificationType = "share_granted"

	// NotificationBudgetAlert is sent when spending crosses a budget's
	// alert threshold without exceeding the budget.
	NotificationBudgetAlert NotificationType = "budget_alert"

	// NotificationBudgetExceeded is sent when spending exceeds the budget.
	NotificationBudgetExceeded NotificationType = "budget_exceeded"
)

// Notification is a message delivered to a single user.
type Notification struct {
	ID        uuid.UUID        `json:"id"`
	UserID    uuid.UUID        `json:"user_id"`
	Type      NotificationType `json:"type"`
	Title     string           `json:"title"`
	Message   string           `json:"message"`
	Read      bool             `json:"read"`
	CreatedAt time.Time        `json:"created_at"`
}
