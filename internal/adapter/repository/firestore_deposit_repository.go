package repository

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"gemora/internal/domain/entity"
	"gemora/internal/domain/repository"
	"gemora/pkg/errors"
)

type firestoreDepositRepository struct {
	client *firestore.Client
}

func NewFirestoreDepositRepository(client *firestore.Client) repository.DepositRepository {
	return &firestoreDepositRepository{
		client: client,
	}
}

func (r *firestoreDepositRepository) Create(ctx context.Context, deposit *entity.BankDeposit) error {
	if deposit.ID == "" {
		doc := r.client.Collection("deposits").NewDoc()
		deposit.ID = doc.ID
	}

	now := time.Now()
	if deposit.CreatedAt.IsZero() {
		deposit.CreatedAt = now
	}
	deposit.UpdatedAt = now

	_, err := r.client.Collection("deposits").Doc(deposit.ID).Set(ctx, deposit)
	if err != nil {
		return errors.Internal("Failed to create deposit", err)
	}

	return nil
}

func (r *firestoreDepositRepository) GetByID(ctx context.Context, id string) (*entity.BankDeposit, error) {
	doc, err := r.client.Collection("deposits").Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Deposit", err)
		}
		return nil, errors.Internal("Failed to get deposit", err)
	}

	var deposit entity.BankDeposit
	if err := doc.DataTo(&deposit); err != nil {
		return nil, errors.Internal("Failed to parse deposit data", err)
	}

	return &deposit, nil
}

// Mutate serializes the read-modify-write on a single deposit so two
// administrators reviewing the same record cannot both settle it.
func (r *firestoreDepositRepository) Mutate(ctx context.Context, id string, fn func(deposit *entity.BankDeposit) error) (*entity.BankDeposit, error) {
	var updated *entity.BankDeposit
	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		docRef := r.client.Collection("deposits").Doc(id)
		doc, err := tx.Get(docRef)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				return errors.NotFound("Deposit", err)
			}
			return errors.Internal("Failed to get deposit", err)
		}

		var deposit entity.BankDeposit
		if err := doc.DataTo(&deposit); err != nil {
			return errors.Internal("Failed to parse deposit data", err)
		}

		if err := fn(&deposit); err != nil {
			return err
		}

		deposit.UpdatedAt = time.Now()
		updated = &deposit
		return tx.Set(docRef, &deposit)
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

func (r *firestoreDepositRepository) list(ctx context.Context, query firestore.Query, limit, offset int) ([]*entity.BankDeposit, int64, error) {
	allDocs, err := query.Documents(ctx).GetAll()
	if err != nil {
		return nil, 0, errors.Internal("Failed to count deposits", err)
	}
	total := int64(len(allDocs))

	query = query.OrderBy("createdAt", firestore.Desc)
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	iter := query.Documents(ctx)
	var deposits []*entity.BankDeposit

	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, 0, errors.Internal("Failed to iterate deposits", err)
		}

		var deposit entity.BankDeposit
		if err := doc.DataTo(&deposit); err != nil {
			return nil, 0, errors.Internal("Failed to parse deposit data", err)
		}
		deposits = append(deposits, &deposit)
	}

	return deposits, total, nil
}

func (r *firestoreDepositRepository) ListByStatus(ctx context.Context, status string, limit, offset int) ([]*entity.BankDeposit, int64, error) {
	query := r.client.Collection("deposits").Query
	if status != "" {
		query = query.Where("status", "==", status)
	}
	return r.list(ctx, query, limit, offset)
}

func (r *firestoreDepositRepository) ListByAuctionID(ctx context.Context, auctionID string, limit, offset int) ([]*entity.BankDeposit, int64, error) {
	query := r.client.Collection("deposits").Query.Where("auctionId", "==", auctionID)
	return r.list(ctx, query, limit, offset)
}
