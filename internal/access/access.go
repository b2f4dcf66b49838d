// Package access implements the per-resource authorization and sharing model.
//
// Every sharable resource (trip, itinerary, calendar event, journal entry)
// carries the same three fields — owner, public flag, and an ordered grant
// list — but uses its own role vocabulary. Rather than re-deriving the same
// three-branch check per resource type, the decision functions here take the
// resource's domain.Sharing value and, for writes, the caller-supplied set of
// edit-capable roles for that resource type.
//
// All functions are pure: no I/O, no stored state, decisions recomputed from
// the supplied fields on every call. Absence of access is a normal boolean
// outcome, not an error.
package access

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/mittalpriyanshi/globaltrotter/internal/domain"
)

// CanRead reports whether requester may read the resource.
// The owner always may; otherwise a public resource is readable by anyone,
// and any grant — regardless of role — is enough.
func CanRead(s domain.Sharing, requester uuid.UUID) bool {
	if s.OwnerID == requester {
		return true
	}
	if s.IsPublic {
		return true
	}
	for _, g := range s.SharedWith {
		if g.UserID == requester {
			return true
		}
	}
	return false
}

// CanWrite reports whether requester may modify the resource's content.
// The owner always may, regardless of role vocabulary. A collaborator may
// only when their granted role is one of writeRoles — the set of roles the
// resource type considers edit-capable (e.g. editor for trips, editor or
// admin for itineraries, edit for calendar events).
func CanWrite(s domain.Sharing, requester uuid.UUID, writeRoles []domain.Role) bool {
	if s.OwnerID == requester {
		return true
	}
	for _, g := range s.SharedWith {
		if g.UserID == requester {
			return domain.RoleIn(g.Role, writeRoles)
		}
	}
	return false
}

// CanManageSharing reports whether requester may mutate the sharing list,
// toggle visibility, or change collaborator roles. Owner-exclusive: an
// editor can change content but never redistribute access.
func CanManageSharing(s domain.Sharing, requester uuid.UUID) bool {
	return s.OwnerID == requester
}

// Grant returns the sharing list with a grant for target at role.
// If target is already present its role is overwritten in place, preserving
// the entry's original position; otherwise a new entry is appended. The
// input slice is never modified.
//
// Granting to the owner fails with domain.ErrInvalidOperation — the owner's
// rights are implicit and superior to any granted role.
func Grant(s domain.Sharing, target uuid.UUID, role domain.Role) ([]domain.ShareGrant, error) {
	if target == s.OwnerID {
		return nil, fmt.Errorf("%w: cannot share a resource with its owner", domain.ErrInvalidOperation)
	}

	out := make([]domain.ShareGrant, len(s.SharedWith))
	copy(out, s.SharedWith)

	for i, g := range out {
		if g.UserID == target {
			out[i].Role = role
			return out, nil
		}
	}
	return append(out, domain.ShareGrant{UserID: target, Role: role}), nil
}

// Revoke returns the sharing list without any grant for target.
// Revoking a user who was never granted is a no-op, not an error.
// The input slice is never modified.
func Revoke(s domain.Sharing, target uuid.UUID) []domain.ShareGrant {
	out := make([]domain.ShareGrant, 0, len(s.SharedWith))
	for _, g := range s.SharedWith {
		if g.UserID != target {
			out = append(out, g)
		}
	}
	return out
}
