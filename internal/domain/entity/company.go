package entity

import (
	"time"

	"github.com/google/uuid"
)

// Company is the tenant boundary of the system. Users and Products belong to
// exactly one Company, and data isolation for Users is enforced per Company.
type Company struct {
	ID           uuid.UUID  // The Global Unique Identifier (GUID) for the company.
	Name         string     // Legal name, up to 255 characters.
	Email        string     // Contact email address.
	Address      *Address   // The owned address. Nil after the address row was deleted.
	PhoneNumber1 string     // Primary phone number, up to 20 characters.
	PhoneNumber2 string     // Secondary phone number, up to 20 characters.
	PhoneNumber3 string     // Tertiary phone number, up to 20 characters.
	VatID        string     // VAT identifier, up to 10 characters.
	RegonID      string     // REGON identifier, up to 14 characters.
	IsActive     bool       // Whether the company is active.
	Timezone     string     // IANA timezone name, up to 32 characters.
	CreatedByID  *uuid.UUID // The user that created this company. Never accepted from client input.
	CreatedAt    time.Time  // Immutable creation timestamp.
	UpdatedAt    time.Time  // Timestamp of the last modification.
}
