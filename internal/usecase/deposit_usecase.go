package usecase

import (
	"context"
	"time"

	"gemora/internal/domain/entity"
	"gemora/internal/domain/repository"
	"gemora/internal/domain/service"
	"gemora/pkg/errors"
	"gemora/pkg/utils"
)

type DepositUseCase struct {
	depositRepo repository.DepositRepository
	notifier    service.Notifier
}

func NewDepositUseCase(depositRepo repository.DepositRepository, notifier service.Notifier) *DepositUseCase {
	return &DepositUseCase{
		depositRepo: depositRepo,
		notifier:    notifier,
	}
}

type RecordDepositInput struct {
	AuctionID  string  `json:"auction_id"`
	Amount     float64 `json:"amount"`
	Bank       string  `json:"bank"`
	Branch     string  `json:"branch"`
	SlipURL    string  `json:"slip_url"`
	PayerName  string  `json:"payer_name"`
	PayerEmail string  `json:"payer_email"`
	PayerPhone string  `json:"payer_phone"`
}

// RecordDeposit registers a claimed bank transfer for manual review.
func (uc *DepositUseCase) RecordDeposit(ctx context.Context, input RecordDepositInput) (*entity.BankDeposit, error) {
	fields := make(map[string]string)
	if input.AuctionID == "" {
		fields["auction_id"] = "auction_id is required"
	}
	if input.Amount <= 0 {
		fields["amount"] = "amount must be greater than zero"
	}
	if input.Bank == "" {
		fields["bank"] = "bank is required"
	}
	if input.SlipURL == "" {
		fields["slip_url"] = "a deposit slip is required"
	}
	if len(fields) > 0 {
		return nil, errors.Validation("Invalid deposit details", fields)
	}

	now := time.Now()
	deposit := &entity.BankDeposit{
		AuctionID:  input.AuctionID,
		Amount:     input.Amount,
		Bank:       input.Bank,
		Branch:     input.Branch,
		SlipURL:    input.SlipURL,
		PayerName:  input.PayerName,
		PayerEmail: input.PayerEmail,
		PayerPhone: input.PayerPhone,
		Status:     entity.DepositStatusPending,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := uc.depositRepo.Create(ctx, deposit); err != nil {
		return nil, err
	}

	return deposit, nil
}

// SetStatus settles a pending deposit. The decision is terminal: a
// second settlement attempt conflicts rather than overwriting the first.
func (uc *DepositUseCase) SetStatus(ctx context.Context, actor Actor, depositID, status string) (*entity.BankDeposit, error) {
	if !actor.IsAdmin() {
		return nil, errors.Forbidden("Only administrators can review deposits", nil)
	}
	if !entity.IsValidDepositDecision(status) {
		return nil, errors.Validation("Unknown deposit status", map[string]string{
			"status": "status must be one of: success failure",
		})
	}

	deposit, err := uc.depositRepo.Mutate(ctx, depositID, func(deposit *entity.BankDeposit) error {
		if deposit.Status != entity.DepositStatusPending {
			return errors.Conflict("Deposit has already been reviewed")
		}

		now := time.Now()
		deposit.Status = status
		deposit.ReviewedBy = actor.ID
		deposit.ReviewedAt = &now
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.notifier.Publish(ctx, service.Notification{
		Event:       service.EventDepositReviewed,
		RecipientID: deposit.PayerEmail,
		Payload: map[string]interface{}{
			"deposit_id": deposit.ID,
			"status":     deposit.Status,
		},
	})

	return deposit, nil
}

func (uc *DepositUseCase) GetDeposit(ctx context.Context, depositID string) (*entity.BankDeposit, error) {
	return uc.depositRepo.GetByID(ctx, depositID)
}

// ListByStatus returns the admin reconciliation queue.
func (uc *DepositUseCase) ListByStatus(ctx context.Context, actor Actor, status string, page, limit int) ([]*entity.BankDeposit, int64, error) {
	if !actor.IsAdmin() {
		return nil, 0, errors.Forbidden("Only administrators can list deposits", nil)
	}
	if status != "" && status != entity.DepositStatusPending && !entity.IsValidDepositDecision(status) {
		return nil, 0, errors.Validation("Unknown deposit status", map[string]string{
			"status": "status must be one of: pending success failure",
		})
	}

	pagination := utils.NewPaginationParams(page, limit)
	return uc.depositRepo.ListByStatus(ctx, status, pagination.PageSize, pagination.Offset)
}
