package repository

import (
	"context"

	"buildops/internal/domain/entity"
	"buildops/internal/errors"

	"github.com/google/uuid"
)

// ErrProductNotFound is returned when no product row matches the lookup.
var ErrProductNotFound = errors.New("product not found")

// ProductListQuery carries the raw list parameters for products.
type ProductListQuery struct {
	Name          string   // case-insensitive substring
	UsableAreaMin string   // raw lower bound for usable_area_m2
	UsableAreaMax string   // raw upper bound for usable_area_m2
	IsActive      []string // raw boolean-in values
	CreatedAt     []string // raw date-range values (start, end)
	Search        string
	Ordering      string
	Page          int
	PageSize      int
}

// ProductRepository is the persistence port for products.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Product, error)
	List(ctx context.Context, query ProductListQuery) ([]*entity.Product, int64, error)
	Update(ctx context.Context, product *entity.Product) error
	Delete(ctx context.Context, id uuid.UUID) error
	// CountByCompany reports how many products reference the company. A
	// non-zero count blocks company deletion.
	CountByCompany(ctx context.Context, companyID uuid.UUID) (int64, error)
}
