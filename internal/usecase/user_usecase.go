package usecase

import (
	"context"

	"buildops/internal/domain/auth"
	"buildops/internal/domain/entity"
	"buildops/internal/domain/repository"

	"github.com/google/uuid"
)

// UserInput defines the writable fields of a user managed through the
// tenant-scoped user resource. The tenant itself is never part of the payload;
// it is always forced to the principal's company.
type UserInput struct {
	FirstName string   `json:"first_name" validate:"omitempty,max=150"`
	LastName  string   `json:"last_name" validate:"omitempty,max=150"`
	Email     string   `json:"email" validate:"required,email,max=255"`
	Username  string   `json:"username" validate:"omitempty,max=150"`
	Password  string   `json:"password" validate:"omitempty,max=128"`
	Groups    []string `json:"groups"`
	IsActive  bool     `json:"is_active"`
}

// UserPatch carries the fields of a partial user update. Absent fields keep
// their stored values. A nil Groups slice keeps the memberships; an empty one
// clears them.
type UserPatch struct {
	FirstName *string  `json:"first_name" validate:"omitempty,max=150"`
	LastName  *string  `json:"last_name" validate:"omitempty,max=150"`
	Email     *string  `json:"email" validate:"omitempty,email,max=255"`
	Username  *string  `json:"username" validate:"omitempty,max=150"`
	Password  *string  `json:"password" validate:"omitempty,max=128"`
	Groups    []string `json:"groups"`
	IsActive  *bool    `json:"is_active"`
}

// ListUsersOutput returns one page of the tenant's users with the total match
// count.
type ListUsersOutput struct {
	Users    []*entity.User
	Total    int64
	Page     int
	PageSize int
}

// UserUsecase defines the interface for the tenant-scoped user resource. Every
// operation takes the principal; visibility never leaves the principal's
// company.
type UserUsecase interface {
	CreateUser(ctx context.Context, principal auth.Principal, input UserInput) (*entity.User, error)
	GetUser(ctx context.Context, principal auth.Principal, id uuid.UUID) (*entity.User, error)
	ListUsers(ctx context.Context, principal auth.Principal, query repository.UserListQuery) (*ListUsersOutput, error)
	UpdateUser(ctx context.Context, principal auth.Principal, id uuid.UUID, input UserInput) (*entity.User, error)
	PatchUser(ctx context.Context, principal auth.Principal, id uuid.UUID, patch UserPatch) (*entity.User, error)
	DeleteUser(ctx context.Context, principal auth.Principal, id uuid.UUID) error
}
