package domain

import (
	"time"

	"github.com/google/uuid"
)

// CalendarEvent is a scheduled item on a user's travel calendar.
// TripID is nil for events not linked to any trip.
type CalendarEvent struct {
	ID          uuid.UUID  `json:"id"`
	TripID      *uuid.UUID `json:"trip_id,omitempty"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	StartTime   time.Time  `json:"start_time"`
	EndTime     time.Time  `json:"end_time"`
	AllDay      bool       `json:"all_day"`
	Color       string     `json:"color,omitempty"`
	Sharing
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// EventRoles is the full role vocabulary for calendar event sharing.
// Events use the short view/edit labels rather than viewer/editor.
var EventRoles = []Role{RoleView, RoleEdit}

// EventWriteRoles is the subset of event roles allowed to modify an event.
var EventWriteRoles = []Role{RoleEdit}
