// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// Address is the physical location owned by exactly one Company.
// All fields except ApartmentNumber are required at creation time.
type Address struct {
	ID              uuid.UUID // The Global Unique Identifier (GUID) for the address.
	Street          string    // Street name, up to 255 characters.
	BuildingNumber  string    // Building number, up to 10 characters.
	ApartmentNumber *string   // Optional apartment number, up to 10 characters. Nil when not supplied.
	PostalCode      string    // Postal code, up to 10 characters.
	City            string    // City name, up to 100 characters.
	State           string    // State or voivodeship, up to 100 characters.
	Country         string    // Country name, up to 100 characters.
	CreatedAt       time.Time // Timestamp of when this address was created.
	UpdatedAt       time.Time // Timestamp of the last modification.
}
