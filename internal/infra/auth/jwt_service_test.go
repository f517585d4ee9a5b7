package auth

import (
	"testing"
	"time"

	"buildops/config"
	domainauth "buildops/internal/domain/auth"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testJWTConfig() *config.Config {
	cfg := &config.Config{}
	cfg.SecretKey.Access = "test-access-secret"
	cfg.SecretKey.Refresh = "test-refresh-secret"
	cfg.Auth = &config.AuthConfig{
		AccessTokenTTL:  15 * time.Minute,
		RefreshTokenTTL: 7 * 24 * time.Hour,
	}

	return cfg
}

func TestNewJWTService_RequiresSecrets(t *testing.T) {
	cfg := testJWTConfig()
	cfg.SecretKey.Access = ""

	service, err := NewJWTService(cfg)

	assert.Nil(t, service)
	assert.Error(t, err)
}

func TestJWTService_GenerateTokens_RoundTrip(t *testing.T) {
	cfg := testJWTConfig()
	service, err := NewJWTService(cfg)
	require.NoError(t, err)

	companyID := uuid.New()
	principal := domainauth.Principal{
		ID:        uuid.New(),
		Email:     "anna@budmax.example",
		CompanyID: &companyID,
	}

	accessToken, refreshToken, err := service.GenerateTokens(principal)
	require.NoError(t, err)
	require.NotEmpty(t, accessToken)
	require.NotEmpty(t, refreshToken)
	assert.NotEqual(t, accessToken, refreshToken)

	parsed, err := service.ValidateToken(accessToken, cfg.SecretKey.Access)
	require.NoError(t, err)
	require.True(t, parsed.Valid)

	claims, ok := parsed.Claims.(jwt.MapClaims)
	require.True(t, ok)
	assert.Equal(t, principal.ID.String(), claims["sub"])
	assert.Equal(t, principal.Email, claims["email"])
	assert.Equal(t, companyID.String(), claims["company"])
	assert.Equal(t, "access", claims["type"])

	parsed, err = service.ValidateToken(refreshToken, cfg.SecretKey.Refresh)
	require.NoError(t, err)
	require.True(t, parsed.Valid)

	claims, ok = parsed.Claims.(jwt.MapClaims)
	require.True(t, ok)
	assert.Equal(t, "refresh", claims["type"])
}

func TestJWTService_GenerateTokens_OmitsCompanyForUnassignedUser(t *testing.T) {
	cfg := testJWTConfig()
	service, err := NewJWTService(cfg)
	require.NoError(t, err)

	principal := domainauth.Principal{ID: uuid.New(), Email: "solo@budmax.example"}

	accessToken, err := service.GenerateAccessToken(principal)
	require.NoError(t, err)

	parsed, err := service.ValidateToken(accessToken, cfg.SecretKey.Access)
	require.NoError(t, err)

	claims, ok := parsed.Claims.(jwt.MapClaims)
	require.True(t, ok)
	_, hasCompany := claims["company"]
	assert.False(t, hasCompany)
}

func TestJWTService_ValidateToken_WrongSecret(t *testing.T) {
	cfg := testJWTConfig()
	service, err := NewJWTService(cfg)
	require.NoError(t, err)

	principal := domainauth.Principal{ID: uuid.New(), Email: "anna@budmax.example"}

	accessToken, err := service.GenerateAccessToken(principal)
	require.NoError(t, err)

	// An access token must not validate against the refresh secret.
	_, err = service.ValidateToken(accessToken, cfg.SecretKey.Refresh)
	assert.Error(t, err)
}

func TestJWTService_ValidateToken_Expired(t *testing.T) {
	cfg := testJWTConfig()
	cfg.Auth.AccessTokenTTL = -time.Minute
	service, err := NewJWTService(cfg)
	require.NoError(t, err)

	principal := domainauth.Principal{ID: uuid.New(), Email: "anna@budmax.example"}

	accessToken, err := service.GenerateAccessToken(principal)
	require.NoError(t, err)

	_, err = service.ValidateToken(accessToken, cfg.SecretKey.Access)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestJWTService_GetRefreshTokenDuration(t *testing.T) {
	cfg := testJWTConfig()
	service, err := NewJWTService(cfg)
	require.NoError(t, err)

	assert.Equal(t, 7*24*time.Hour, service.GetRefreshTokenDuration())
}
