package usecase

import (
	"context"

	"buildops/internal/domain/auth"
	"buildops/internal/domain/entity"
)

// LoginInput defines the data required to obtain a token pair.
type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RefreshInput defines the data required to refresh an access token.
type RefreshInput struct {
	RefreshToken string `json:"refresh" validate:"required"`
}

// RegisterInput defines the data required for open registration.
type RegisterInput struct {
	FirstName string `json:"first_name" validate:"omitempty,max=150"`
	LastName  string `json:"last_name" validate:"omitempty,max=150"`
	Email     string `json:"email" validate:"required,email,max=255"`
	Username  string `json:"username" validate:"omitempty,max=150"`
	Password  string `json:"password" validate:"required,min=8,max=128"`
}

// TokenOutput returns the generated tokens after a successful login.
type TokenOutput struct {
	AccessToken  string
	RefreshToken string
}

// AuthUsecase defines the interface for authentication operations.
type AuthUsecase interface {
	Login(ctx context.Context, input LoginInput) (*TokenOutput, error)
	Refresh(ctx context.Context, input RefreshInput) (string, error)
	Register(ctx context.Context, input RegisterInput) (*entity.User, error)
	CurrentUser(ctx context.Context, principal auth.Principal) (*entity.User, error)
}
