package entity

import (
	"time"
)

// Online payment statuses.
const (
	PaymentStatusPending   = "pending"
	PaymentStatusVerified  = "verified"
	PaymentStatusCompleted = "completed"
	PaymentStatusFailed    = "failed"
	PaymentStatusCancelled = "cancelled"
)

func IsValidPaymentStatus(status string) bool {
	switch status {
	case PaymentStatusPending, PaymentStatusVerified, PaymentStatusCompleted,
		PaymentStatusFailed, PaymentStatusCancelled:
		return true
	}
	return false
}

// IsTerminalPaymentStatus reports whether no further transition is allowed.
func IsTerminalPaymentStatus(status string) bool {
	switch status {
	case PaymentStatusCompleted, PaymentStatusFailed, PaymentStatusCancelled:
		return true
	}
	return false
}

// OnlinePayment is a card payment authorized with a short-lived one-time
// code. TransactionID is assigned once at creation and never changes.
type OnlinePayment struct {
	ID        string  `json:"id" firestore:"id"`
	AuctionID string  `json:"auction_id" firestore:"auctionId"`
	Amount    float64 `json:"amount" firestore:"amount"`

	PayerName  string `json:"payer_name" firestore:"payerName"`
	PayerEmail string `json:"payer_email" firestore:"payerEmail"`
	PayerPhone string `json:"payer_phone" firestore:"payerPhone"`

	CardLast4 string `json:"card_last4" firestore:"cardLast4"`
	CardBrand string `json:"card_brand" firestore:"cardBrand"`

	Code           string    `json:"-" firestore:"code"`
	CodeExpiry     time.Time `json:"code_expiry" firestore:"codeExpiry"`
	VerifyAttempts int       `json:"-" firestore:"verifyAttempts"`

	Status        string     `json:"status" firestore:"status"`
	TransactionID string     `json:"transaction_id" firestore:"transactionId"`
	VerifiedAt    *time.Time `json:"verified_at,omitempty" firestore:"verifiedAt,omitempty"`

	CreatedAt time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt time.Time `json:"updated_at" firestore:"updatedAt"`
}
