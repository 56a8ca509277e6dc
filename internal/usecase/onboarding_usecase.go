package usecase

import (
	"context"
	"strings"
	"time"

	"gemora/internal/domain/entity"
	"gemora/internal/domain/repository"
	"gemora/internal/domain/service"
	"gemora/pkg/errors"
)

// Per-type upload limits for onboarding documents.
const (
	identityFileCount = 2
	identityMaxBytes  = 5 * 1024 * 1024
	businessMinFiles  = 1
	businessMaxFiles  = 5
	businessMaxBytes  = 10 * 1024 * 1024
)

// Review decisions an administrator can make on a document.
const (
	DecisionApproved = "approved"
	DecisionRejected = "rejected"
)

type OnboardingUseCase struct {
	userRepo        repository.UserRepository
	paymentRepo     repository.PaymentRepository
	depositRepo     repository.DepositRepository
	notifier        service.Notifier
	registrationFee float64
}

func NewOnboardingUseCase(
	userRepo repository.UserRepository,
	paymentRepo repository.PaymentRepository,
	depositRepo repository.DepositRepository,
	notifier service.Notifier,
	registrationFee float64,
) *OnboardingUseCase {
	return &OnboardingUseCase{
		userRepo:        userRepo,
		paymentRepo:     paymentRepo,
		depositRepo:     depositRepo,
		notifier:        notifier,
		registrationFee: registrationFee,
	}
}

type DocumentFileInput struct {
	URL         string `json:"url"`
	ContentType string `json:"content_type"`
	SizeBytes   int64  `json:"size_bytes"`
}

func isImageType(contentType string) bool {
	return strings.HasPrefix(contentType, "image/")
}

func validateDocumentFiles(documentType string, files []DocumentFileInput) error {
	fields := make(map[string]string)

	switch documentType {
	case entity.DocumentIdentity:
		if len(files) != identityFileCount {
			fields["files"] = "identity documents require exactly 2 images"
		}
		for _, f := range files {
			if !isImageType(f.ContentType) {
				fields["content_type"] = "identity documents must be images"
			}
			if f.SizeBytes > identityMaxBytes {
				fields["size"] = "identity images must be at most 5MB each"
			}
		}
	case entity.DocumentBusiness:
		if len(files) < businessMinFiles || len(files) > businessMaxFiles {
			fields["files"] = "business documents require between 1 and 5 files"
		}
		for _, f := range files {
			if !isImageType(f.ContentType) && f.ContentType != "application/pdf" {
				fields["content_type"] = "business documents must be images or PDFs"
			}
			if f.SizeBytes > businessMaxBytes {
				fields["size"] = "business files must be at most 10MB each"
			}
		}
	default:
		fields["document_type"] = "document_type must be one of: identity business"
	}

	if len(fields) > 0 {
		return errors.Validation("Invalid document submission", fields)
	}
	return nil
}

func documentReviewOf(user *entity.User, documentType string) *entity.DocumentReview {
	switch documentType {
	case entity.DocumentIdentity:
		return &user.IdentityReview
	case entity.DocumentBusiness:
		return &user.BusinessReview
	}
	return nil
}

// SubmitDocument files (or re-files) a document for review. Resubmitting
// over an approved document re-opens it to pending so the new content
// gets a fresh administrative decision.
func (uc *OnboardingUseCase) SubmitDocument(ctx context.Context, actor Actor, documentType string, files []DocumentFileInput) (*entity.User, error) {
	if err := validateDocumentFiles(documentType, files); err != nil {
		return nil, err
	}

	return uc.userRepo.Mutate(ctx, actor.ID, func(user *entity.User) error {
		review := documentReviewOf(user, documentType)

		docFiles := make([]entity.DocumentFile, len(files))
		for i, f := range files {
			docFiles[i] = entity.DocumentFile{
				URL:         f.URL,
				ContentType: f.ContentType,
				SizeBytes:   f.SizeBytes,
			}
		}

		now := time.Now()
		review.Status = entity.DocStatusPending
		review.Files = docFiles
		review.RejectionReason = ""
		review.ReviewedBy = ""
		review.ReviewedAt = nil
		review.SubmittedAt = &now
		return nil
	})
}

// ReviewDocument records an administrator's decision on a pending
// document. Rejection requires a human-readable reason.
func (uc *OnboardingUseCase) ReviewDocument(ctx context.Context, actor Actor, sellerID, documentType, decision, rejectionReason string) (*entity.User, error) {
	if !actor.IsAdmin() {
		return nil, errors.Forbidden("Only administrators can review documents", nil)
	}
	if documentType != entity.DocumentIdentity && documentType != entity.DocumentBusiness {
		return nil, errors.Validation("Unknown document type", map[string]string{
			"document_type": "document_type must be one of: identity business",
		})
	}
	if decision != DecisionApproved && decision != DecisionRejected {
		return nil, errors.Validation("Unknown review decision", map[string]string{
			"decision": "decision must be one of: approved rejected",
		})
	}
	if decision == DecisionRejected && rejectionReason == "" {
		return nil, errors.Validation("A rejection reason is required", map[string]string{
			"rejection_reason": "rejection_reason is required",
		})
	}

	user, err := uc.userRepo.Mutate(ctx, sellerID, func(user *entity.User) error {
		review := documentReviewOf(user, documentType)
		if review.Status != entity.DocStatusPending {
			return errors.Conflict("Document is not awaiting review")
		}

		now := time.Now()
		review.ReviewedBy = actor.ID
		review.ReviewedAt = &now
		if decision == DecisionApproved {
			review.Status = entity.DocStatusApproved
			review.RejectionReason = ""
		} else {
			review.Status = entity.DocStatusRejected
			review.RejectionReason = rejectionReason
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.notifier.Publish(ctx, service.Notification{
		Event:       service.EventDocumentReviewed,
		RecipientID: sellerID,
		Payload: map[string]interface{}{
			"document_type": documentType,
			"decision":      decision,
		},
	})

	return user, nil
}

// SkipOptional marks an optional document as skipped. Only the business
// document is optional.
func (uc *OnboardingUseCase) SkipOptional(ctx context.Context, actor Actor, documentType string) (*entity.User, error) {
	if documentType != entity.DocumentBusiness {
		return nil, errors.Validation("Document type cannot be skipped", map[string]string{
			"document_type": "only the business document is optional",
		})
	}

	return uc.userRepo.Mutate(ctx, actor.ID, func(user *entity.User) error {
		review := documentReviewOf(user, documentType)
		if review.Status == entity.DocStatusApproved {
			return errors.Conflict("Document is already approved")
		}
		review.Status = entity.DocStatusSkipped
		return nil
	})
}

type PayoutMethodInput struct {
	Type          string `json:"type"`
	BankName      string `json:"bank_name"`
	Branch        string `json:"branch"`
	AccountName   string `json:"account_name"`
	AccountNumber string `json:"account_number"`
	Provider      string `json:"provider"`
	Msisdn        string `json:"msisdn"`
}

func validatePayoutMethod(input PayoutMethodInput) error {
	fields := make(map[string]string)

	switch input.Type {
	case entity.PayoutBankAccount:
		if input.BankName == "" {
			fields["bank_name"] = "bank_name is required"
		}
		if input.Branch == "" {
			fields["branch"] = "branch is required"
		}
		if input.AccountName == "" {
			fields["account_name"] = "account_name is required"
		}
		if input.AccountNumber == "" {
			fields["account_number"] = "account_number is required"
		}
	case entity.PayoutMobileMoney:
		if input.Provider == "" {
			fields["provider"] = "provider is required"
		}
		if input.Msisdn == "" {
			fields["msisdn"] = "msisdn is required"
		}
		if input.AccountName == "" {
			fields["account_name"] = "account_name is required"
		}
	default:
		fields["type"] = "type must be one of: bank_account mobile_money"
	}

	if len(fields) > 0 {
		return errors.Validation("Invalid payout method", fields)
	}
	return nil
}

// RecordPayoutMethod stores the seller's payout configuration,
// overwriting any prior one.
func (uc *OnboardingUseCase) RecordPayoutMethod(ctx context.Context, actor Actor, input PayoutMethodInput) (*entity.User, error) {
	if err := validatePayoutMethod(input); err != nil {
		return nil, err
	}

	return uc.userRepo.Mutate(ctx, actor.ID, func(user *entity.User) error {
		method := &entity.PayoutMethod{
			Type:        input.Type,
			AccountName: input.AccountName,
			UpdatedAt:   time.Now(),
		}
		switch input.Type {
		case entity.PayoutBankAccount:
			method.BankName = input.BankName
			method.Branch = input.Branch
			method.AccountNumber = input.AccountNumber
		case entity.PayoutMobileMoney:
			method.Provider = input.Provider
			method.Msisdn = input.Msisdn
		}
		user.PayoutMethod = method
		return nil
	})
}

// Registration fee settlement sources.
const (
	FeeSourceOnline  = "online"
	FeeSourceDeposit = "deposit"
)

// SettleRegistrationFee marks the fee paid once a money-movement record
// reaches finality: a completed online payment or a successful bank
// deposit.
func (uc *OnboardingUseCase) SettleRegistrationFee(ctx context.Context, actor Actor, sellerID, source, referenceID string) (*entity.User, error) {
	if !actor.IsAdmin() && !actor.Owns(sellerID) {
		return nil, errors.Forbidden("You don't have permission to settle this fee", nil)
	}

	switch source {
	case FeeSourceOnline:
		payment, err := uc.paymentRepo.GetByID(ctx, referenceID)
		if err != nil {
			return nil, err
		}
		if payment.Status != entity.PaymentStatusCompleted {
			return nil, errors.Conflict("Payment has not been completed")
		}
		if payment.Amount < uc.registrationFee {
			return nil, errors.Validation("Payment amount does not cover the registration fee", map[string]string{
				"reference_id": "payment amount is below the registration fee",
			})
		}
	case FeeSourceDeposit:
		deposit, err := uc.depositRepo.GetByID(ctx, referenceID)
		if err != nil {
			return nil, err
		}
		if deposit.Status != entity.DepositStatusSuccess {
			return nil, errors.Conflict("Deposit has not been confirmed")
		}
		if deposit.Amount < uc.registrationFee {
			return nil, errors.Validation("Deposit amount does not cover the registration fee", map[string]string{
				"reference_id": "deposit amount is below the registration fee",
			})
		}
	default:
		return nil, errors.Validation("Unknown fee source", map[string]string{
			"source": "source must be one of: online deposit",
		})
	}

	return uc.userRepo.Mutate(ctx, sellerID, func(user *entity.User) error {
		if user.RegistrationFeePaid {
			return errors.Conflict("Registration fee is already settled")
		}
		user.RegistrationFeePaid = true
		user.RegistrationFeeRef = referenceID
		return nil
	})
}

// ActivationStatus breaks the activation decision into its inputs.
type ActivationStatus struct {
	IdentityStatus string `json:"identity_status"`
	BusinessStatus string `json:"business_status"`
	PayoutPresent  bool   `json:"payout_present"`
	FeePaid        bool   `json:"fee_paid"`
	Activated      bool   `json:"activated"`
}

// EvaluateActivation reads committed state only and never mutates.
func (uc *OnboardingUseCase) EvaluateActivation(ctx context.Context, sellerID string) (*ActivationStatus, error) {
	user, err := uc.userRepo.GetByID(ctx, sellerID)
	if err != nil {
		return nil, err
	}

	return &ActivationStatus{
		IdentityStatus: user.IdentityReview.Status,
		BusinessStatus: user.BusinessReview.Status,
		PayoutPresent:  user.PayoutMethod != nil,
		FeePaid:        user.RegistrationFeePaid,
		Activated:      user.Activated(),
	}, nil
}
