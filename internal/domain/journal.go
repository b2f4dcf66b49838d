package domain

import (
	"time"

	"github.com/google/uuid"
)

// JournalEntry is a dated travel diary entry, optionally linked to a trip.
type JournalEntry struct {
	ID      uuid.UUID  `json:"id"`
	TripID  *uuid.UUID `json:"trip_id,omitempty"`
	Title   string     `json:"title"`
	Content string     `json:"content"`
	Mood    string     `json:"mood,omitempty"`
	Sharing
	EntryDate time.Time `json:"entry_date"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// JournalRoles is the full role vocabulary for journal entry sharing.
var JournalRoles = []Role{RoleViewer, RoleEditor}

// JournalWriteRoles is the subset of journal roles allowed to modify an entry.
var JournalWriteRoles = []Role{RoleEditor}
