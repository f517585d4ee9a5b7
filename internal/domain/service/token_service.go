// Package service defines domain service ports implemented by the infra layer.
package service

import (
	"time"

	"buildops/internal/domain/auth"

	"github.com/golang-jwt/jwt/v5"
)

// TokenService issues and validates the access/refresh token pair.
type TokenService interface {
	// GenerateTokens creates a new access and refresh token for a principal.
	GenerateTokens(principal auth.Principal) (accessToken string, refreshToken string, err error)
	// GenerateAccessToken creates only an access token, used by the refresh flow.
	GenerateAccessToken(principal auth.Principal) (string, error)
	// ValidateToken checks a token string against a secret and returns the parsed token.
	ValidateToken(tokenString string, secret string) (*jwt.Token, error)
	// GetRefreshTokenDuration returns the configured refresh token lifetime.
	GetRefreshTokenDuration() time.Duration
}
