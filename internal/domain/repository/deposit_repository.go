package repository

import (
	"context"

	"gemora/internal/domain/entity"
)

type DepositRepository interface {
	Create(ctx context.Context, deposit *entity.BankDeposit) error
	GetByID(ctx context.Context, id string) (*entity.BankDeposit, error)
	// Mutate runs fn inside a serialized read-modify-write so two admins
	// reviewing the same deposit cannot both settle it.
	Mutate(ctx context.Context, id string, fn func(deposit *entity.BankDeposit) error) (*entity.BankDeposit, error)
	ListByStatus(ctx context.Context, status string, limit, offset int) ([]*entity.BankDeposit, int64, error)
	ListByAuctionID(ctx context.Context, auctionID string, limit, offset int) ([]*entity.BankDeposit, int64, error)
}
