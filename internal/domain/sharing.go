package domain

import "github.com/google/uuid"

// Role is a resource-type-specific capability label granted to a collaborator.
// Trips and journal entries use viewer/editor, itineraries add admin, and
// calendar events use the shorter view/edit vocabulary. The access package
// treats roles as opaque — which roles carry write permission is decided by
// the per-resource *WriteRoles sets defined next to each resource type.
type Role string

const (
	RoleViewer Role = "viewer"
	RoleEditor Role = "editor"
	RoleAdmin  Role = "admin"
	RoleView   Role = "view"
	RoleEdit   Role = "edit"
)

// ShareGrant is a single explicit grant on a sharable resource.
type ShareGrant struct {
	UserID uuid.UUID `json:"user_id"`
	Role   Role      `json:"role"`
}

// Sharing holds the ownership and visibility fields common to every sharable
// resource (Trip, Itinerary, CalendarEvent, JournalEntry). It is embedded in
// the resource structs and persisted alongside them.
//
// Invariants:
//   - OwnerID is immutable after creation and never appears in SharedWith.
//   - SharedWith holds at most one grant per user; re-sharing overwrites the
//     existing grant's role in place, preserving its position.
type Sharing struct {
	OwnerID    uuid.UUID    `json:"owner_id"`
	IsPublic   bool         `json:"is_public"`
	SharedWith []ShareGrant `json:"shared_with"`
}

// RoleIn reports whether role is a member of roles.
func RoleIn(role Role, roles []Role) bool {
	for _, r := range roles {
		if r == role {
			return true
		}
	}
	return false
}
