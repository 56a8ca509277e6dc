package middleware

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "gemora/pkg/errors"
)

type stubAuthClient struct{}

func (s *stubAuthClient) CreateUser(ctx context.Context, email, password, displayName string) (string, error) {
	return "", apperrors.Internal("not implemented", nil)
}

func (s *stubAuthClient) VerifyToken(ctx context.Context, token string) (string, error) {
	return "", apperrors.Unauthorized("Invalid token", nil)
}

func (s *stubAuthClient) GenerateToken(ctx context.Context, uid string) (string, error) {
	return "", apperrors.Internal("not implemented", nil)
}

func (s *stubAuthClient) SignInWithEmailPassword(email, password string) (string, error) {
	return "", apperrors.Internal("not implemented", nil)
}

func mintToken(t *testing.T, secret, subject string, expiresIn time.Duration) string {
	t.Helper()
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiresIn)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func TestVerifyDevToken(t *testing.T) {
	m := NewAuthMiddleware(&stubAuthClient{}, "test-secret", "development")

	t.Run("valid token resolves the subject", func(t *testing.T) {
		token := mintToken(t, "test-secret", "user-1", time.Hour)

		uid, err := m.verifyDevToken(token)
		require.NoError(t, err)
		assert.Equal(t, "user-1", uid)
	})

	t.Run("wrong secret is rejected", func(t *testing.T) {
		token := mintToken(t, "other-secret", "user-1", time.Hour)

		_, err := m.verifyDevToken(token)
		assert.Error(t, err)
	})

	t.Run("expired token is rejected", func(t *testing.T) {
		token := mintToken(t, "test-secret", "user-1", -time.Hour)

		_, err := m.verifyDevToken(token)
		assert.Error(t, err)
	})

	t.Run("missing subject is rejected", func(t *testing.T) {
		token := mintToken(t, "test-secret", "", time.Hour)

		_, err := m.verifyDevToken(token)
		assert.Error(t, err)
	})
}
