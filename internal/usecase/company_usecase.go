// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"buildops/internal/domain/auth"
	"buildops/internal/domain/entity"
	"buildops/internal/domain/repository"

	"github.com/google/uuid"
)

// --- Input DTOs ---

// AddressInput carries the nested address payload of a company write.
type AddressInput struct {
	Street          string  `json:"street" validate:"required,max=255"`
	BuildingNumber  string  `json:"building_number" validate:"required,max=10"`
	ApartmentNumber *string `json:"apartment_number" validate:"omitempty,max=10"`
	PostalCode      string  `json:"postal_code" validate:"required,max=10"`
	City            string  `json:"city" validate:"required,max=100"`
	State           string  `json:"state" validate:"required,max=100"`
	Country         string  `json:"country" validate:"required,max=100"`
}

// CompanyInput defines the writable fields of a company. The creator reference
// is never part of the payload; it always comes from the principal.
type CompanyInput struct {
	Name         string       `json:"name" validate:"required,max=255"`
	Email        string       `json:"email" validate:"required,email,max=255"`
	Address      AddressInput `json:"address" validate:"required"`
	PhoneNumber1 string       `json:"phone_number_1" validate:"omitempty,max=20"`
	PhoneNumber2 string       `json:"phone_number_2" validate:"omitempty,max=20"`
	PhoneNumber3 string       `json:"phone_number_3" validate:"omitempty,max=20"`
	VatID        string       `json:"vat_id" validate:"omitempty,max=10"`
	RegonID      string       `json:"regon_id" validate:"omitempty,max=14"`
	IsActive     bool         `json:"is_active"`
	Timezone     string       `json:"timezone" validate:"omitempty,max=32"`
}

// AddressPatch carries the address fields of a partial update. Nil means the
// field was absent from the payload and keeps its stored value.
type AddressPatch struct {
	Street          *string `json:"street" validate:"omitempty,max=255"`
	BuildingNumber  *string `json:"building_number" validate:"omitempty,max=10"`
	ApartmentNumber *string `json:"apartment_number" validate:"omitempty,max=10"`
	PostalCode      *string `json:"postal_code" validate:"omitempty,max=10"`
	City            *string `json:"city" validate:"omitempty,max=100"`
	State           *string `json:"state" validate:"omitempty,max=100"`
	Country         *string `json:"country" validate:"omitempty,max=100"`
}

// CompanyPatch carries the fields of a partial company update. Absent fields
// keep their stored values; supplied fields still obey the write constraints.
type CompanyPatch struct {
	Name         *string       `json:"name" validate:"omitempty,max=255"`
	Email        *string       `json:"email" validate:"omitempty,email,max=255"`
	Address      *AddressPatch `json:"address"`
	PhoneNumber1 *string       `json:"phone_number_1" validate:"omitempty,max=20"`
	PhoneNumber2 *string       `json:"phone_number_2" validate:"omitempty,max=20"`
	PhoneNumber3 *string       `json:"phone_number_3" validate:"omitempty,max=20"`
	VatID        *string       `json:"vat_id" validate:"omitempty,max=10"`
	RegonID      *string       `json:"regon_id" validate:"omitempty,max=14"`
	IsActive     *bool         `json:"is_active"`
	Timezone     *string       `json:"timezone" validate:"omitempty,max=32"`
}

// --- Output DTOs ---

// ListCompaniesOutput returns one page of companies with the total match count.
type ListCompaniesOutput struct {
	Companies []*entity.Company
	Total     int64
	Page      int
	PageSize  int
}

// CompanyUsecase defines the interface for company-related business operations.
// This is the contract that the delivery layer (e.g., API handlers) will depend on.
type CompanyUsecase interface {
	CreateCompany(ctx context.Context, principal auth.Principal, input CompanyInput) (*entity.Company, error)
	GetCompany(ctx context.Context, id uuid.UUID) (*entity.Company, error)
	ListCompanies(ctx context.Context, query repository.CompanyListQuery) (*ListCompaniesOutput, error)
	UpdateCompany(ctx context.Context, id uuid.UUID, input CompanyInput) (*entity.Company, error)
	PatchCompany(ctx context.Context, id uuid.UUID, patch CompanyPatch) (*entity.Company, error)
	DeleteCompany(ctx context.Context, id uuid.UUID) error
}
