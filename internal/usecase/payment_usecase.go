package usecase

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"github.com/google/uuid"

	"gemora/internal/domain/entity"
	"gemora/internal/domain/repository"
	"gemora/internal/domain/service"
	"gemora/pkg/errors"
	"gemora/pkg/utils"
)

// One-time codes are 6 digits with no leading zero and expire 7 minutes
// after issuance.
const (
	codeMin     = 100000
	codeMax     = 999999
	codeTTL     = 7 * time.Minute
	maxAttempts = 5
)

type PaymentUseCase struct {
	paymentRepo repository.PaymentRepository
	notifier    service.Notifier
	now         func() time.Time
}

func NewPaymentUseCase(paymentRepo repository.PaymentRepository, notifier service.Notifier) *PaymentUseCase {
	return &PaymentUseCase{
		paymentRepo: paymentRepo,
		notifier:    notifier,
		now:         time.Now,
	}
}

func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(codeMax-codeMin+1))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%d", codeMin+n.Int64()), nil
}

type InitiatePaymentInput struct {
	AuctionID  string  `json:"auction_id"`
	Amount     float64 `json:"amount"`
	PayerName  string  `json:"payer_name"`
	PayerEmail string  `json:"payer_email"`
	PayerPhone string  `json:"payer_phone"`
	CardNumber string  `json:"card_number"`
	CardBrand  string  `json:"card_brand"`
}

type InitiatePaymentResult struct {
	Payment *entity.OnlinePayment `json:"payment"`
	// Code is returned directly in demonstration mode only. A production
	// deployment must deliver it out of band and never echo it here.
	Code string `json:"code"`
}

func validateInitiateInput(input InitiatePaymentInput) error {
	fields := make(map[string]string)
	if input.AuctionID == "" {
		fields["auction_id"] = "auction_id is required"
	}
	if input.Amount <= 0 {
		fields["amount"] = "amount must be greater than zero"
	}
	if input.PayerName == "" {
		fields["payer_name"] = "payer_name is required"
	}
	if input.PayerEmail == "" {
		fields["payer_email"] = "payer_email is required"
	}
	if input.PayerPhone == "" {
		fields["payer_phone"] = "payer_phone is required"
	}
	if len(input.CardNumber) < 12 {
		fields["card_number"] = "card_number is invalid"
	}
	if len(fields) > 0 {
		return errors.Validation("Invalid payment details", fields)
	}
	return nil
}

// Initiate creates a pending payment with a fresh one-time code. Only
// the last four card digits are retained.
func (uc *PaymentUseCase) Initiate(ctx context.Context, input InitiatePaymentInput) (*InitiatePaymentResult, error) {
	if err := validateInitiateInput(input); err != nil {
		return nil, err
	}

	code, err := generateCode()
	if err != nil {
		return nil, errors.Internal("Failed to generate verification code", err)
	}

	now := uc.now()
	payment := &entity.OnlinePayment{
		AuctionID:     input.AuctionID,
		Amount:        input.Amount,
		PayerName:     input.PayerName,
		PayerEmail:    input.PayerEmail,
		PayerPhone:    input.PayerPhone,
		CardLast4:     input.CardNumber[len(input.CardNumber)-4:],
		CardBrand:     input.CardBrand,
		Code:          code,
		CodeExpiry:    now.Add(codeTTL),
		Status:        entity.PaymentStatusPending,
		TransactionID: uuid.New().String(),
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := uc.paymentRepo.Create(ctx, payment); err != nil {
		return nil, err
	}

	return &InitiatePaymentResult{Payment: payment, Code: code}, nil
}

// VerifyCode confirms the one-time code. Expiry is checked against the
// wall clock at verification and wins over a wrong code; a repeat call
// after success is rejected rather than silently re-verifying.
func (uc *PaymentUseCase) VerifyCode(ctx context.Context, paymentID, suppliedCode string) (*entity.OnlinePayment, error) {
	// Failed attempts must still be committed, so the closure records the
	// denial instead of returning it (a returned error aborts the write).
	var denied error
	payment, err := uc.paymentRepo.Mutate(ctx, paymentID, func(payment *entity.OnlinePayment) error {
		denied = nil
		if payment.Status == entity.PaymentStatusVerified || payment.Status == entity.PaymentStatusCompleted {
			return errors.Conflict("Payment is already verified")
		}
		if payment.Status != entity.PaymentStatusPending {
			return errors.Conflict("Payment can no longer be verified")
		}

		if uc.now().After(payment.CodeExpiry) {
			return errors.Expired("Verification code has expired")
		}

		if suppliedCode != payment.Code {
			payment.VerifyAttempts++
			if payment.VerifyAttempts >= maxAttempts {
				payment.Status = entity.PaymentStatusFailed
				denied = errors.TooManyRequests("Too many incorrect codes; payment failed")
			} else {
				denied = errors.Mismatch("Verification code does not match")
			}
			return nil
		}

		now := uc.now()
		payment.Status = entity.PaymentStatusVerified
		payment.VerifiedAt = &now
		return nil
	})
	if err != nil {
		return nil, err
	}
	if denied != nil {
		return nil, denied
	}
	return payment, nil
}

// ResendCode issues a fresh code and expiry window without touching the
// payment status. The previous code is unconditionally discarded.
func (uc *PaymentUseCase) ResendCode(ctx context.Context, paymentID string) (*entity.OnlinePayment, error) {
	code, err := generateCode()
	if err != nil {
		return nil, errors.Internal("Failed to generate verification code", err)
	}

	payment, err := uc.paymentRepo.Mutate(ctx, paymentID, func(payment *entity.OnlinePayment) error {
		if payment.Status != entity.PaymentStatusPending {
			return errors.Conflict("Only pending payments can receive a new code")
		}
		payment.Code = code
		payment.CodeExpiry = uc.now().Add(codeTTL)
		payment.VerifyAttempts = 0
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.notifier.Publish(ctx, service.Notification{
		Event:       service.EventCodeResent,
		RecipientID: payment.PayerEmail,
		Payload: map[string]interface{}{
			"payment_id": payment.ID,
			"expires_at": payment.CodeExpiry,
		},
	})

	return payment, nil
}

// UpdateStatus moves the payment along its defined edges. Values outside
// the closed status set are rejected, edges the machine does not define
// are conflicts.
func (uc *PaymentUseCase) UpdateStatus(ctx context.Context, actor Actor, paymentID, newStatus string) (*entity.OnlinePayment, error) {
	if !actor.IsAdmin() {
		return nil, errors.Forbidden("Only administrators can update payment status", nil)
	}
	if !entity.IsValidPaymentStatus(newStatus) {
		return nil, errors.Validation("Unknown payment status", map[string]string{
			"status": "status must be one of: pending verified completed failed cancelled",
		})
	}

	return uc.paymentRepo.Mutate(ctx, paymentID, func(payment *entity.OnlinePayment) error {
		if payment.Status == newStatus {
			return errors.Conflict("Payment already has that status")
		}
		if entity.IsTerminalPaymentStatus(payment.Status) {
			return errors.Conflict("Payment is in a terminal state")
		}

		switch newStatus {
		case entity.PaymentStatusVerified:
			// Verification only ever happens through the code path.
			return errors.Conflict("Payments are verified with the one-time code")
		case entity.PaymentStatusCompleted:
			if payment.Status != entity.PaymentStatusVerified {
				return errors.Conflict("Only verified payments can be completed")
			}
		case entity.PaymentStatusFailed:
			if payment.Status != entity.PaymentStatusPending {
				return errors.Conflict("Only pending payments can fail")
			}
		case entity.PaymentStatusCancelled:
			// Any non-terminal state may be cancelled.
		case entity.PaymentStatusPending:
			return errors.Conflict("Payments cannot return to pending")
		}

		payment.Status = newStatus
		return nil
	})
}

func (uc *PaymentUseCase) GetPayment(ctx context.Context, paymentID string) (*entity.OnlinePayment, error) {
	return uc.paymentRepo.GetByID(ctx, paymentID)
}

func (uc *PaymentUseCase) ListByStatus(ctx context.Context, actor Actor, status string, page, limit int) ([]*entity.OnlinePayment, int64, error) {
	if !actor.IsAdmin() {
		return nil, 0, errors.Forbidden("Only administrators can list payments", nil)
	}
	if status != "" && !entity.IsValidPaymentStatus(status) {
		return nil, 0, errors.Validation("Unknown payment status", map[string]string{
			"status": "status must be one of: pending verified completed failed cancelled",
		})
	}

	pagination := utils.NewPaginationParams(page, limit)
	return uc.paymentRepo.ListByStatus(ctx, status, pagination.PageSize, pagination.Offset)
}
