package repository

import (
	"context"

	"buildops/internal/domain/entity"
	"buildops/internal/errors"
)

// ErrAddressNotFound is returned when no address row matches the lookup.
var ErrAddressNotFound = errors.New("address not found")

// AddressRepository is the persistence port for company addresses. It exists
// separately from CompanyRepository so the nested create/update of a company
// with its address is an explicit two-step operation inside one transaction.
type AddressRepository interface {
	Create(ctx context.Context, address *entity.Address) error
	// Update overwrites the mutable fields of an existing address row in
	// place. The row is never replaced on company update.
	Update(ctx context.Context, address *entity.Address) error
}
