// Package model holds the GORM-specific persistence structs. They mirror the
// database tables and are mapped to and from pure domain entities by the
// repository implementations.
package model

import (
	"time"

	"github.com/google/uuid"
)

// AddressModel mirrors the 'addresses' table.
type AddressModel struct {
	ID              uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	Street          string    `gorm:"type:varchar(255);not null"`
	BuildingNumber  string    `gorm:"type:varchar(10);not null"`
	ApartmentNumber *string   `gorm:"type:varchar(10)"`
	PostalCode      string    `gorm:"type:varchar(10);not null"`
	City            string    `gorm:"type:varchar(100);not null"`
	State           string    `gorm:"type:varchar(100);not null"`
	Country         string    `gorm:"type:varchar(100);not null"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// TableName explicitly sets the table name for GORM.
func (AddressModel) TableName() string {
	return "addresses"
}
