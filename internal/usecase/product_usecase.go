package usecase

import (
	"context"

	"buildops/internal/domain/auth"
	"buildops/internal/domain/entity"
	"buildops/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductInput defines the writable fields of a product. Numeric fields are
// deliberately unconstrained; the storage accepts whatever the client submits.
type ProductInput struct {
	Name                   string          `json:"name" validate:"required,max=255"`
	Description            string          `json:"description"`
	PriceNet               decimal.Decimal `json:"price_net"`
	PriceGross             decimal.Decimal `json:"price_gross"`
	EstimatedDurationWeeks int             `json:"estimated_duration_weeks"`
	UsableAreaM2           float64         `json:"usable_area_m2"`
	NetAreaM2              float64         `json:"net_area_m2"`
	GrossVolumeM3          float64         `json:"gross_volume_m3"`
	IsActive               bool            `json:"is_active"`
	CompanyID              uuid.UUID       `json:"company" validate:"required"`
}

// ProductPatch carries the fields of a partial product update. Absent fields
// keep their stored values.
type ProductPatch struct {
	Name                   *string          `json:"name" validate:"omitempty,max=255"`
	Description            *string          `json:"description"`
	PriceNet               *decimal.Decimal `json:"price_net"`
	PriceGross             *decimal.Decimal `json:"price_gross"`
	EstimatedDurationWeeks *int             `json:"estimated_duration_weeks"`
	UsableAreaM2           *float64         `json:"usable_area_m2"`
	NetAreaM2              *float64         `json:"net_area_m2"`
	GrossVolumeM3          *float64         `json:"gross_volume_m3"`
	IsActive               *bool            `json:"is_active"`
	CompanyID              *uuid.UUID       `json:"company"`
}

// ListProductsOutput returns one page of products with the total match count.
type ListProductsOutput struct {
	Products []*entity.Product
	Total    int64
	Page     int
	PageSize int
}

// ProductUsecase defines the interface for product-related business operations.
type ProductUsecase interface {
	CreateProduct(ctx context.Context, principal auth.Principal, input ProductInput) (*entity.Product, error)
	GetProduct(ctx context.Context, id uuid.UUID) (*entity.Product, error)
	ListProducts(ctx context.Context, query repository.ProductListQuery) (*ListProductsOutput, error)
	UpdateProduct(ctx context.Context, id uuid.UUID, input ProductInput) (*entity.Product, error)
	PatchProduct(ctx context.Context, id uuid.UUID, patch ProductPatch) (*entity.Product, error)
	DeleteProduct(ctx context.Context, id uuid.UUID) error
}
