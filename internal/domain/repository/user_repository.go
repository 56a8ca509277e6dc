package repository

import (
	"context"

	"gemora/internal/domain/entity"
)

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	Update(ctx context.Context, user *entity.User) error
	// Mutate runs fn inside a serialized read-modify-write on the user so
	// independently progressing onboarding sub-statuses never clobber each
	// other.
	Mutate(ctx context.Context, id string, fn func(user *entity.User) error) (*entity.User, error)
	FindByField(ctx context.Context, field, value string, limit, offset int) ([]*entity.User, int64, error)
}
