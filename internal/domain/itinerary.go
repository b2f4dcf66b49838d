package domain

import (
	"time"

	"github.com/google/uuid"
)

// Itinerary is a day-by-day plan attached to a trip. An itinerary has its
// own sharing list, independent of the parent trip's.
type Itinerary struct {
	ID     uuid.UUID `json:"id"`
	TripID uuid.UUID `json:"trip_id"`
	Title  string    `json:"title"`
	Notes  string    `json:"notes,omitempty"`
	Sharing
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ItineraryItem is one planned activity within an itinerary.
// Items are ordered by Position within their itinerary.
type ItineraryItem struct {
	ID          uuid.UUID `json:"id"`
	ItineraryID uuid.UUID `json:"itinerary_id"`
	Day         time.Time `json:"day"`
	Location    string    `json:"location"`
	Activity    string    `json:"activity"`
	Notes       string    `json:"notes,omitempty"`
	Position    int       `json:"position"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ItineraryRoles is the full role vocabulary for itinerary sharing.
// Itineraries are the only resource with a third admin level.
var ItineraryRoles = []Role{RoleViewer, RoleEditor, RoleAdmin}

// ItineraryWriteRoles is the subset of itinerary roles allowed to modify
// itinerary content. Admin adds nothing over editor for content writes;
// sharing management stays owner-exclusive regardless of role.
var ItineraryWriteRoles = []Role{RoleEditor, RoleAdmin}
