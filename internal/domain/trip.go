// Package domain contains the core data types for the GlobalTrotter API.
// This package has no dependencies on other internal packages and is
// imported by every other internal package (access, repo, service, handler).
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Trip represents a single planned journey.
// A trip is the top-level aggregate; itineraries, budgets, and expenses
// belong to a trip.
type Trip struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Destination string    `json:"destination"`
	Description string    `json:"description,omitempty"`
	StartDate   time.Time `json:"start_date"`
	EndDate     time.Time `json:"end_date"`
	Sharing
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TripRoles is the full role vocabulary for trip sharing.
var TripRoles = []Role{RoleViewer, RoleEditor}

// TripWriteRoles is the subset of trip roles allowed to modify trip content.
var TripWriteRoles = []Role{RoleEditor}
