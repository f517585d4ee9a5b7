package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product is a construction product or service offered by a Company.
// Numeric fields carry no non-negativity constraint on purpose; the storage
// schema accepts whatever the client submits.
type Product struct {
	ID                     uuid.UUID       // The Global Unique Identifier (GUID) for the product.
	Name                   string          // Product name, up to 255 characters.
	Description            string          // Free-form description.
	PriceNet               decimal.Decimal // Net price.
	PriceGross             decimal.Decimal // Gross price.
	EstimatedDurationWeeks int             // Estimated construction duration in weeks.
	UsableAreaM2           float64         // Usable area in square meters.
	NetAreaM2              float64         // Net area in square meters.
	GrossVolumeM3          float64         // Gross volume in cubic meters.
	IsActive               bool            // Whether the product is offered.
	CompanyID              uuid.UUID       // The owning company. Blocks company deletion while present.
	CreatedByID            *uuid.UUID      // The user that created this product.
	CreatedAt              time.Time       // Immutable creation timestamp.
	UpdatedAt              time.Time       // Timestamp of the last modification.
}
