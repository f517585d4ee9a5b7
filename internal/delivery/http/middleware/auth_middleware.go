package middleware

import (
	"strings"

	"buildops/config"
	"buildops/internal/delivery/http/response"
	"buildops/internal/domain/auth"
	"buildops/internal/domain/service"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// principalKey is the echo context key the authenticated principal lives under.
const principalKey = "principal"

// AuthMiddleware provides middleware for JWT authentication.
type AuthMiddleware struct {
	tokenSvc service.TokenService
	cfg      *config.Config
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(tokenSvc service.TokenService, cfg *config.Config) *AuthMiddleware {
	return &AuthMiddleware{tokenSvc: tokenSvc, cfg: cfg}
}

// Authenticate validates the JWT access token and places the principal on the
// context. The company claim is what every tenant-scoped query derives from.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get("Authorization")
		if authHeader == "" {
			return response.Unauthorized(c, "TOKEN_MISSING", "Authorization header is missing")
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			return response.Unauthorized(c, "TOKEN_INVALID", "Invalid token format, must be Bearer token")
		}

		token, err := m.tokenSvc.ValidateToken(tokenString, m.cfg.SecretKey.Access)
		if err != nil || !token.Valid {
			return response.Unauthorized(c, "TOKEN_INVALID", "Invalid or expired token")
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			return response.Unauthorized(c, "TOKEN_INVALID", "Failed to parse token claims")
		}

		if tokenType, _ := claims["type"].(string); tokenType != "access" {
			return response.Unauthorized(c, "TOKEN_INVALID", "Token is not an access token")
		}

		subject, ok := claims["sub"].(string)
		if !ok {
			return response.Unauthorized(c, "TOKEN_INVALID", "Subject missing from token")
		}
		userID, err := uuid.Parse(subject)
		if err != nil {
			return response.Unauthorized(c, "TOKEN_INVALID", "Invalid subject in token")
		}

		principal := auth.Principal{ID: userID}
		principal.Email, _ = claims["email"].(string)
		if companyStr, ok := claims["company"].(string); ok {
			companyID, err := uuid.Parse(companyStr)
			if err != nil {
				return response.Unauthorized(c, "TOKEN_INVALID", "Invalid company in token")
			}
			principal.CompanyID = &companyID
		}

		c.Set(principalKey, principal)

		return next(c)
	}
}

// GetPrincipal extracts the authenticated principal set by Authenticate.
func GetPrincipal(c echo.Context) (auth.Principal, bool) {
	principal, ok := c.Get(principalKey).(auth.Principal)

	return principal, ok
}
