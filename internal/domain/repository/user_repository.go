package repository

import (
	"context"
	"time"

	"buildops/internal/domain/entity"
	"buildops/internal/errors"

	"github.com/google/uuid"
)

// ErrUserNotFound is returned when no user row matches the lookup, including
// lookups that fall outside the caller's tenant scope.
var ErrUserNotFound = errors.New("user not found")

// UserListQuery carries the raw list parameters for users. Tenant scoping is
// not part of the query; it is a separate, non-optional argument on every
// scoped method.
type UserListQuery struct {
	FirstName  string   // case-insensitive substring
	LastName   string   // case-insensitive substring
	Email      string   // case-insensitive substring
	Groups     []string // repeatable substrings matched against group names
	IsActive   []string // raw boolean-in values
	LastLogin  []string // raw date-range values (start, end)
	DateJoined []string // raw date-range values (start, end)
	Search     string
	Ordering   string
	Page       int
	PageSize   int
}

// UserRepository is the persistence port for users. Methods taking a
// companyID restrict both visibility and mutation to that tenant; a nil
// companyID scopes to users without a company.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	FindByIDInCompany(ctx context.Context, id uuid.UUID, companyID *uuid.UUID) (*entity.User, error)
	List(ctx context.Context, companyID *uuid.UUID, query UserListQuery) ([]*entity.User, int64, error)
	Update(ctx context.Context, user *entity.User) error
	DeleteInCompany(ctx context.Context, id uuid.UUID, companyID *uuid.UUID) error
	UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error
	// ClearCompany detaches every user of the company (sets their company
	// reference to NULL). Used when the company itself is deleted.
	ClearCompany(ctx context.Context, companyID uuid.UUID) error
}

// GroupRepository resolves role groups by name.
type GroupRepository interface {
	// FindByNames returns the groups whose names match exactly. Names with
	// no matching group are simply absent from the result.
	FindByNames(ctx context.Context, names []string) ([]*entity.Group, error)
}
