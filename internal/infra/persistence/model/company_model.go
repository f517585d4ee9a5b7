package model

import (
	"time"

	"github.com/google/uuid"
)

// CompanyModel mirrors the 'companies' table. Deleting the owned address row
// nulls the reference; the creator reference is protected.
type CompanyModel struct {
	ID           uuid.UUID     `gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	Name         string        `gorm:"type:varchar(255);not null"`
	Email        string        `gorm:"type:varchar(255);not null"`
	AddressID    *uuid.UUID    `gorm:"type:uuid"`
	Address      *AddressModel `gorm:"foreignKey:AddressID;constraint:OnDelete:SET NULL"`
	PhoneNumber1 string        `gorm:"type:varchar(20);not null"`
	PhoneNumber2 string        `gorm:"type:varchar(20);not null"`
	PhoneNumber3 string        `gorm:"type:varchar(20);not null"`
	VatID        string        `gorm:"type:varchar(10);not null"`
	RegonID      string        `gorm:"type:varchar(14);not null"`
	IsActive     bool          `gorm:"not null"`
	Timezone     string        `gorm:"type:varchar(32);not null"`
	CreatedByID  *uuid.UUID    `gorm:"type:uuid"`
	CreatedBy    *UserModel    `gorm:"foreignKey:CreatedByID;constraint:OnDelete:RESTRICT"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName explicitly sets the table name for GORM.
func (CompanyModel) TableName() string {
	return "companies"
}
