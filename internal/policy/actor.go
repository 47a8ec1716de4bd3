// Package policy decides which records an actor may read or mutate,
// independent of the explicit query filters. Every rule takes the acting
// identity as an argument; nothing is read from ambient state.
package policy

import "github.com/google/uuid"

// Role is an actor's position in the system.
type Role string

const (
	RoleSeeker Role = "seeker"
	RolePoster Role = "poster"
	RoleAdmin  Role = "admin"
)

// ParseRole converts a raw string to a Role.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleSeeker, RolePoster, RoleAdmin:
		return Role(s), true
	}
	return "", false
}

// Actor is the authenticated identity performing an operation.
type Actor struct {
	ID   uuid.UUID
	Role Role
}
