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

type firestorePaymentRepository struct {
	client *firestore.Client
}

func NewFirestorePaymentRepository(client *firestore.Client) repository.PaymentRepository {
	return &firestorePaymentRepository{
		client: client,
	}
}

func (r *firestorePaymentRepository) Create(ctx context.Context, payment *entity.OnlinePayment) error {
	if payment.ID == "" {
		doc := r.client.Collection("payments").NewDoc()
		payment.ID = doc.ID
	}

	now := time.Now()
	if payment.CreatedAt.IsZero() {
		payment.CreatedAt = now
	}
	payment.UpdatedAt = now

	_, err := r.client.Collection("payments").Doc(payment.ID).Set(ctx, payment)
	if err != nil {
		return errors.Internal("Failed to create payment", err)
	}

	return nil
}

func (r *firestorePaymentRepository) GetByID(ctx context.Context, id string) (*entity.OnlinePayment, error) {
	doc, err := r.client.Collection("payments").Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Payment", err)
		}
		return nil, errors.Internal("Failed to get payment", err)
	}

	var payment entity.OnlinePayment
	if err := doc.DataTo(&payment); err != nil {
		return nil, errors.Internal("Failed to parse payment data", err)
	}

	return &payment, nil
}

func (r *firestorePaymentRepository) GetByTransactionID(ctx context.Context, transactionID string) (*entity.OnlinePayment, error) {
	iter := r.client.Collection("payments").Where("transactionId", "==", transactionID).Limit(1).Documents(ctx)
	doc, err := iter.Next()
	if err == iterator.Done {
		return nil, errors.NotFound("Payment", nil)
	}
	if err != nil {
		return nil, errors.Internal("Failed to get payment", err)
	}

	var payment entity.OnlinePayment
	if err := doc.DataTo(&payment); err != nil {
		return nil, errors.Internal("Failed to parse payment data", err)
	}

	return &payment, nil
}

// Mutate serializes the read-modify-write on a single payment so a code
// verification racing a resend cannot lose either write.
func (r *firestorePaymentRepository) Mutate(ctx context.Context, id string, fn func(payment *entity.OnlinePayment) error) (*entity.OnlinePayment, error) {
	var updated *entity.OnlinePayment
	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		docRef := r.client.Collection("payments").Doc(id)
		doc, err := tx.Get(docRef)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				return errors.NotFound("Payment", err)
			}
			return errors.Internal("Failed to get payment", err)
		}

		var payment entity.OnlinePayment
		if err := doc.DataTo(&payment); err != nil {
			return errors.Internal("Failed to parse payment data", err)
		}

		if err := fn(&payment); err != nil {
			return err
		}

		payment.UpdatedAt = time.Now()
		updated = &payment
		return tx.Set(docRef, &payment)
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

func (r *firestorePaymentRepository) list(ctx context.Context, query firestore.Query, limit, offset int) ([]*entity.OnlinePayment, int64, error) {
	allDocs, err := query.Documents(ctx).GetAll()
	if err != nil {
		return nil, 0, errors.Internal("Failed to count payments", err)
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
	var payments []*entity.OnlinePayment

	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, 0, errors.Internal("Failed to iterate payments", err)
		}

		var payment entity.OnlinePayment
		if err := doc.DataTo(&payment); err != nil {
			return nil, 0, errors.Internal("Failed to parse payment data", err)
		}
		payments = append(payments, &payment)
	}

	return payments, total, nil
}

func (r *firestorePaymentRepository) ListByAuctionID(ctx context.Context, auctionID string, limit, offset int) ([]*entity.OnlinePayment, int64, error) {
	query := r.client.Collection("payments").Query.Where("auctionId", "==", auctionID)
	return r.list(ctx, query, limit, offset)
}

func (r *firestorePaymentRepository) ListByStatus(ctx context.Context, status string, limit, offset int) ([]*entity.OnlinePayment, int64, error) {
	query := r.client.Collection("payments").Query
	if status != "" {
		query = query.Where("status", "==", status)
	}
	return r.list(ctx, query, limit, offset)
}
