package entity

import (
	"time"

	"github.com/google/uuid"
)

// User is an account in the system. Email is the globally unique login
// identifier. A user belongs to at most one Company, which is the tenant
// every user-facing query is scoped to.
type User struct {
	ID           uuid.UUID  // The Global Unique Identifier (GUID) for the user.
	FirstName    string     // Given name, up to 150 characters.
	LastName     string     // Family name, up to 150 characters.
	Email        string     // Globally unique login identifier.
	Username     string     // Display username, up to 150 characters.
	PasswordHash string     // bcrypt hash. Must never appear in any response body.
	Groups       []*Group   // Role groups this user is a member of.
	CompanyID    *uuid.UUID // The tenant. Nil when the company was deleted or never assigned.
	IsActive     bool       // Whether the account may authenticate.
	LastLogin    *time.Time // Timestamp of the last successful login. Nil until first login.
	DateJoined   time.Time  // Timestamp of account creation.
	UpdatedAt    time.Time  // Timestamp of the last modification.
}

// Group is a named role a user can be a member of, resolved by name on user
// creation.
type Group struct {
	ID   uuid.UUID // The Global Unique Identifier (GUID) for the group.
	Name string    // Unique group name, up to 150 characters.
}
