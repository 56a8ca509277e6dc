package entity

import (
	"time"
)

// Bank deposit statuses. A deposit starts pending and is settled exactly
// once by an administrator.
const (
	DepositStatusPending = "pending"
	DepositStatusSuccess = "success"
	DepositStatusFailure = "failure"
)

func IsValidDepositDecision(status string) bool {
	return status == DepositStatusSuccess || status == DepositStatusFailure
}

// BankDeposit is a claimed off-platform bank transfer awaiting manual
// reconciliation against the uploaded deposit slip.
type BankDeposit struct {
	ID        string  `json:"id" firestore:"id"`
	AuctionID string  `json:"auction_id" firestore:"auctionId"`
	Amount    float64 `json:"amount" firestore:"amount"`

	Bank       string `json:"bank" firestore:"bank"`
	Branch     string `json:"branch" firestore:"branch"`
	SlipURL    string `json:"slip_url" firestore:"slipUrl"`
	PayerName  string `json:"payer_name" firestore:"payerName"`
	PayerEmail string `json:"payer_email" firestore:"payerEmail"`
	PayerPhone string `json:"payer_phone" firestore:"payerPhone"`

	Status     string     `json:"status" firestore:"status"`
	ReviewedBy string     `json:"reviewed_by,omitempty" firestore:"reviewedBy,omitempty"`
	ReviewedAt *time.Time `json:"reviewed_at,omitempty" firestore:"reviewedAt,omitempty"`

	CreatedAt time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt time.Time `json:"updated_at" firestore:"updatedAt"`
}
