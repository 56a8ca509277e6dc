package middleware

import (
	"github.com/labstack/echo/v4"

	"gemora/internal/domain/entity"
	"gemora/internal/domain/repository"
	apperrors "gemora/pkg/errors"
	"gemora/pkg/response"
)

type AdminMiddleware struct {
	userRepo repository.UserRepository
}

func NewAdminMiddleware(userRepo repository.UserRepository) *AdminMiddleware {
	return &AdminMiddleware{
		userRepo: userRepo,
	}
}

// RequireAdmin must run after AuthMiddleware.Authenticate.
func (m *AdminMiddleware) RequireAdmin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			uid, ok := c.Get("uid").(string)
			if !ok || uid == "" {
				return response.Error(c, apperrors.Unauthorized("Authentication required", nil))
			}

			user, err := m.userRepo.GetByID(c.Request().Context(), uid)
			if err != nil {
				return response.Error(c, apperrors.Unauthorized("Invalid user", err))
			}

			if user.Role != entity.RoleAdmin {
				return response.Error(c, apperrors.Forbidden("Admin access required", nil))
			}

			return next(c)
		}
	}
}
