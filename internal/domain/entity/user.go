package entity

import (
	"time"
)

// Actor roles.
const (
	RoleSeller    = "seller"
	RoleBuyer     = "buyer"
	RoleAdmin     = "admin"
	RoleAnonymous = "anonymous"
)

// Onboarding document types.
const (
	DocumentIdentity = "identity"
	DocumentBusiness = "business"
)

// Per-document review sub-statuses.
const (
	DocStatusNotUploaded = "not_uploaded"
	DocStatusPending     = "pending"
	DocStatusApproved    = "approved"
	DocStatusRejected    = "rejected"
	DocStatusSkipped     = "skipped"
)

// Payout method variants.
const (
	PayoutBankAccount = "bank_account"
	PayoutMobileMoney = "mobile_money"
)

type DocumentFile struct {
	URL         string `json:"url" firestore:"url"`
	ContentType string `json:"content_type" firestore:"contentType"`
	SizeBytes   int64  `json:"size_bytes" firestore:"sizeBytes"`
}

// DocumentReview tracks one independently reviewed onboarding document.
type DocumentReview struct {
	Status          string         `json:"status" firestore:"status"`
	Files           []DocumentFile `json:"files,omitempty" firestore:"files,omitempty"`
	RejectionReason string         `json:"rejection_reason,omitempty" firestore:"rejectionReason,omitempty"`
	ReviewedBy      string         `json:"reviewed_by,omitempty" firestore:"reviewedBy,omitempty"`
	ReviewedAt      *time.Time     `json:"reviewed_at,omitempty" firestore:"reviewedAt,omitempty"`
	SubmittedAt     *time.Time     `json:"submitted_at,omitempty" firestore:"submittedAt,omitempty"`
}

// PayoutMethod holds the seller's payout configuration. The bank_account
// and mobile_money variants use disjoint field sets.
type PayoutMethod struct {
	Type          string    `json:"type" firestore:"type"`
	BankName      string    `json:"bank_name,omitempty" firestore:"bankName,omitempty"`
	Branch        string    `json:"branch,omitempty" firestore:"branch,omitempty"`
	AccountName   string    `json:"account_name" firestore:"accountName"`
	AccountNumber string    `json:"account_number,omitempty" firestore:"accountNumber,omitempty"`
	Provider      string    `json:"provider,omitempty" firestore:"provider,omitempty"`
	Msisdn        string    `json:"msisdn,omitempty" firestore:"msisdn,omitempty"`
	UpdatedAt     time.Time `json:"updated_at" firestore:"updatedAt"`
}

type User struct {
	ID       string `json:"id" firestore:"id"`
	Email    string `json:"email" firestore:"email"`
	Username string `json:"username" firestore:"username"`
	Phone    string `json:"phone" firestore:"phone"`
	Role     string `json:"role" firestore:"role"`

	IdentityReview DocumentReview `json:"identity_review" firestore:"identityReview"`
	BusinessReview DocumentReview `json:"business_review" firestore:"businessReview"`
	PayoutMethod   *PayoutMethod  `json:"payout_method,omitempty" firestore:"payoutMethod,omitempty"`

	RegistrationFeePaid bool   `json:"registration_fee_paid" firestore:"registrationFeePaid"`
	RegistrationFeeRef  string `json:"registration_fee_ref,omitempty" firestore:"registrationFeeRef,omitempty"`

	CreatedAt time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt time.Time `json:"updated_at" firestore:"updatedAt"`
}

// Activated reports whether the seller may transact: identity approved,
// business approved or skipped, payout method present, registration fee
// settled. Pure read over committed state.
func (u *User) Activated() bool {
	if u.IdentityReview.Status != DocStatusApproved {
		return false
	}
	if u.BusinessReview.Status != DocStatusApproved && u.BusinessReview.Status != DocStatusSkipped {
		return false
	}
	if u.PayoutMethod == nil {
		return false
	}
	return u.RegistrationFeePaid
}
