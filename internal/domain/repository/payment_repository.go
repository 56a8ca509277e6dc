package repository

import (
	"context"

	"gemora/internal/domain/entity"
)

type PaymentRepository interface {
	Create(ctx context.Context, payment *entity.OnlinePayment) error
	GetByID(ctx context.Context, id string) (*entity.OnlinePayment, error)
	GetByTransactionID(ctx context.Context, transactionID string) (*entity.OnlinePayment, error)
	// Mutate runs fn inside a serialized read-modify-write so a code
	// verification racing a resend cannot lose either write.
	Mutate(ctx context.Context, id string, fn func(payment *entity.OnlinePayment) error) (*entity.OnlinePayment, error)
	ListByAuctionID(ctx context.Context, auctionID string, limit, offset int) ([]*entity.OnlinePayment, int64, error)
	ListByStatus(ctx context.Context, status string, limit, offset int) ([]*entity.OnlinePayment, int64, error)
}
