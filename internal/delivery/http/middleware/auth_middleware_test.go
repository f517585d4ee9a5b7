package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"buildops/config"
	mockService "buildops/internal/mocks/service"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testAuthConfig() *config.Config {
	cfg := &config.Config{}
	cfg.SecretKey.Access = "access-secret"
	cfg.SecretKey.Refresh = "refresh-secret"

	return cfg
}

func invokeAuthenticate(t *testing.T, tokenSvc *mockService.MockTokenService, authHeader string) (*httptest.ResponseRecorder, bool) {
	e := echo.New()
	request := httptest.NewRequest(http.MethodGet, "/company/", nil)
	if authHeader != "" {
		request.Header.Set("Authorization", authHeader)
	}
	recorder := httptest.NewRecorder()
	c := e.NewContext(request, recorder)

	middleware := NewAuthMiddleware(tokenSvc, testAuthConfig())

	nextCalled := false
	handler := middleware.Authenticate(func(c echo.Context) error {
		nextCalled = true

		return c.NoContent(http.StatusOK)
	})

	require.NoError(t, handler(c))

	return recorder, nextCalled
}

func TestAuthMiddleware_MissingHeader(t *testing.T) {
	tokenSvc := mockService.NewMockTokenService(t)

	recorder, nextCalled := invokeAuthenticate(t, tokenSvc, "")

	assert.False(t, nextCalled)
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "TOKEN_MISSING")
}

func TestAuthMiddleware_NotBearer(t *testing.T) {
	tokenSvc := mockService.NewMockTokenService(t)

	recorder, nextCalled := invokeAuthenticate(t, tokenSvc, "Basic dXNlcjpwYXNz")

	assert.False(t, nextCalled)
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}

func TestAuthMiddleware_InvalidToken(t *testing.T) {
	tokenSvc := mockService.NewMockTokenService(t)
	tokenSvc.EXPECT().ValidateToken("garbage", "access-secret").
		Return(nil, jwt.ErrSignatureInvalid)

	recorder, nextCalled := invokeAuthenticate(t, tokenSvc, "Bearer garbage")

	assert.False(t, nextCalled)
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "TOKEN_INVALID")
}

func TestAuthMiddleware_RejectsRefreshToken(t *testing.T) {
	tokenSvc := mockService.NewMockTokenService(t)
	tokenSvc.EXPECT().ValidateToken("refresh-token", "access-secret").
		Return(&jwt.Token{
			Valid: true,
			Claims: jwt.MapClaims{
				"type": "refresh",
				"sub":  uuid.New().String(),
			},
		}, nil)

	recorder, nextCalled := invokeAuthenticate(t, tokenSvc, "Bearer refresh-token")

	assert.False(t, nextCalled)
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}

func TestAuthMiddleware_SetsPrincipal(t *testing.T) {
	userID := uuid.New()
	companyID := uuid.New()

	tokenSvc := mockService.NewMockTokenService(t)
	tokenSvc.EXPECT().ValidateToken("good-token", "access-secret").
		Return(&jwt.Token{
			Valid: true,
			Claims: jwt.MapClaims{
				"type":    "access",
				"sub":     userID.String(),
				"email":   "anna@budmax.example",
				"company": companyID.String(),
			},
		}, nil)

	e := echo.New()
	request := httptest.NewRequest(http.MethodGet, "/company/", nil)
	request.Header.Set("Authorization", "Bearer good-token")
	recorder := httptest.NewRecorder()
	c := e.NewContext(request, recorder)

	middleware := NewAuthMiddleware(tokenSvc, testAuthConfig())

	handler := middleware.Authenticate(func(c echo.Context) error {
		principal, ok := GetPrincipal(c)
		require.True(t, ok)
		assert.Equal(t, userID, principal.ID)
		assert.Equal(t, "anna@budmax.example", principal.Email)
		require.NotNil(t, principal.CompanyID)
		assert.Equal(t, companyID, *principal.CompanyID)

		return c.NoContent(http.StatusOK)
	})

	require.NoError(t, handler(c))
	assert.Equal(t, http.StatusOK, recorder.Code)
}

func TestAuthMiddleware_NoCompanyClaim(t *testing.T) {
	userID := uuid.New()

	tokenSvc := mockService.NewMockTokenService(t)
	tokenSvc.EXPECT().ValidateToken("good-token", "access-secret").
		Return(&jwt.Token{
			Valid: true,
			Claims: jwt.MapClaims{
				"type":  "access",
				"sub":   userID.String(),
				"email": "solo@budmax.example",
			},
		}, nil)

	e := echo.New()
	request := httptest.NewRequest(http.MethodGet, "/users/me", nil)
	request.Header.Set("Authorization", "Bearer good-token")
	recorder := httptest.NewRecorder()
	c := e.NewContext(request, recorder)

	middleware := NewAuthMiddleware(tokenSvc, testAuthConfig())

	handler := middleware.Authenticate(func(c echo.Context) error {
		principal, ok := GetPrincipal(c)
		require.True(t, ok)
		assert.Nil(t, principal.CompanyID)

		return c.NoContent(http.StatusOK)
	})

	require.NoError(t, handler(c))
	assert.Equal(t, http.StatusOK, recorder.Code)
}
