package middleware

import (
	"strings"

	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"

	"gemora/internal/usecase"
	apperrors "gemora/pkg/errors"
	"gemora/pkg/response"
)

type AuthMiddleware struct {
	authClient  usecase.FirebaseAuthClient
	jwtSecret   string
	environment string
}

func NewAuthMiddleware(authClient usecase.FirebaseAuthClient, jwtSecret, environment string) *AuthMiddleware {
	return &AuthMiddleware{
		authClient:  authClient,
		jwtSecret:   jwtSecret,
		environment: environment,
	}
}

// Authenticate rejects requests without a valid bearer token and stores the
// caller's uid on the echo context.
func (m *AuthMiddleware) Authenticate() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, err := m.extractToken(c)
			if err != nil {
				return response.Error(c, err)
			}

			uid, err := m.resolveUID(c, token)
			if err != nil {
				return response.Error(c, err)
			}

			c.Set("uid", uid)
			return next(c)
		}
	}
}

// OptionalAuthenticate resolves the uid when a bearer token is present but
// lets anonymous requests through.
func (m *AuthMiddleware) OptionalAuthenticate() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, err := m.extractToken(c)
			if err != nil {
				return next(c)
			}

			uid, err := m.resolveUID(c, token)
			if err != nil {
				return next(c)
			}

			c.Set("uid", uid)
			return next(c)
		}
	}
}

func (m *AuthMiddleware) extractToken(c echo.Context) (string, error) {
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader == "" {
		return "", apperrors.Unauthorized("Authorization header is required", nil)
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", apperrors.Unauthorized("Authorization header format must be Bearer {token}", nil)
	}

	return parts[1], nil
}

func (m *AuthMiddleware) resolveUID(c echo.Context, token string) (string, error) {
	uid, err := m.authClient.VerifyToken(c.Request().Context(), token)
	if err == nil {
		return uid, nil
	}

	// Development-only fallback for locally minted tokens.
	if m.environment == "development" {
		if uid, devErr := m.verifyDevToken(token); devErr == nil {
			return uid, nil
		}
	}

	return "", apperrors.Unauthorized("Invalid or expired token", err)
}

func (m *AuthMiddleware) verifyDevToken(token string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, apperrors.Unauthorized("Unexpected signing method", nil)
		}
		return []byte(m.jwtSecret), nil
	})
	if err != nil || !parsed.Valid || claims.Subject == "" {
		return "", apperrors.Unauthorized("Invalid dev token", err)
	}
	return claims.Subject, nil
}
