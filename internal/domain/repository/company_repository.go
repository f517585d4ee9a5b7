// Package repository defines the persistence ports of the domain. Interfaces
// here are implemented by the infra layer; the usecase layer depends only on
// these contracts.
package repository

import (
	"context"

	"buildops/internal/domain/entity"
	"buildops/internal/errors"

	"github.com/google/uuid"
)

// ErrCompanyNotFound is returned when no company row matches the lookup.
var ErrCompanyNotFound = errors.New("company not found")

// CompanyListQuery carries the raw list parameters for companies. Filter
// values are kept as raw strings on purpose: the predicate layer owns the
// parse-or-fail-closed decision, not the transport.
type CompanyListQuery struct {
	IDs               []string // repeatable id filter
	Name              string   // case-insensitive substring
	Email             string   // case-insensitive substring
	Phone             string   // case-insensitive substring over all three phone columns
	VatID             string   // case-insensitive substring
	RegonID           string   // case-insensitive substring
	AddressStreet     string   // case-insensitive substring on the joined address
	AddressCity       string   // case-insensitive substring on the joined address
	AddressPostalCode string   // case-insensitive substring on the joined address
	IsActive          []string // raw boolean-in values
	CreatedAt         []string // raw date-range values (start, end)
	Search            string   // OR substring over the declared search columns
	Ordering          string   // comma-separated ordering keys, "-" prefix for DESC
	Page              int
	PageSize          int
}

// CompanyRepository is the persistence port for companies and their owned
// addresses (reads; address writes go through AddressRepository).
type CompanyRepository interface {
	Create(ctx context.Context, company *entity.Company) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Company, error)
	List(ctx context.Context, query CompanyListQuery) ([]*entity.Company, int64, error)
	Update(ctx context.Context, company *entity.Company) error
	Delete(ctx context.Context, id uuid.UUID) error
}
