package handler

import (
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"

	"gemora/internal/domain/repository"
	apperrors "gemora/pkg/errors"
	"gemora/pkg/response"
)

// DevTokenHandler mints locally signed tokens so the API can be exercised
// without a Firebase client. Only routed in the development environment.
type DevTokenHandler struct {
	userRepo  repository.UserRepository
	jwtSecret string
	jwtExpiry time.Duration
}

func NewDevTokenHandler(userRepo repository.UserRepository, jwtSecret string, jwtExpiry time.Duration) *DevTokenHandler {
	return &DevTokenHandler{
		userRepo:  userRepo,
		jwtSecret: jwtSecret,
		jwtExpiry: jwtExpiry,
	}
}

func (h *DevTokenHandler) GenerateToken(c echo.Context) error {
	var req struct {
		UserID string `json:"user_id" validate:"required"`
	}
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	user, err := h.userRepo.GetByID(c.Request().Context(), req.UserID)
	if err != nil {
		return response.Error(c, err)
	}

	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   user.ID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(h.jwtExpiry)),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(h.jwtSecret))
	if err != nil {
		return response.Error(c, apperrors.Internal("Failed to sign token", err))
	}

	return response.Success(c, map[string]interface{}{
		"token": token,
		"user": map[string]interface{}{
			"id":       user.ID,
			"email":    user.Email,
			"username": user.Username,
			"role":     user.Role,
		},
	})
}
