package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductModel mirrors the 'products' table. The company reference is
// protected: a company with products cannot be deleted.
type ProductModel struct {
	ID                     uuid.UUID       `gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	Name                   string          `gorm:"type:varchar(255);not null"`
	Description            string          `gorm:"type:text"`
	PriceNet               decimal.Decimal `gorm:"type:numeric(12,2)"`
	PriceGross             decimal.Decimal `gorm:"type:numeric(12,2)"`
	EstimatedDurationWeeks int             `gorm:"not null;default:0"`
	UsableAreaM2           float64         `gorm:"type:numeric(10,2)"`
	NetAreaM2              float64         `gorm:"type:numeric(10,2)"`
	GrossVolumeM3          float64         `gorm:"type:numeric(10,2)"`
	IsActive               bool            `gorm:"not null"`
	CompanyID              uuid.UUID       `gorm:"type:uuid;not null"`
	Company                *CompanyModel   `gorm:"foreignKey:CompanyID;constraint:OnDelete:RESTRICT"`
	CreatedByID            *uuid.UUID      `gorm:"type:uuid"`
	CreatedBy              *UserModel      `gorm:"foreignKey:CreatedByID;constraint:OnDelete:RESTRICT"`
	CreatedAt              time.Time
	UpdatedAt              time.Time
}

// TableName explicitly sets the table name for GORM.
func (ProductModel) TableName() string {
	return "products"
}
