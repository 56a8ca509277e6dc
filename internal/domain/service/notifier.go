package service

import (
	"context"
)

// Notification event kinds published by the core workflows.
const (
	EventCodeResent       = "payment.code_resent"
	EventDocumentReviewed = "onboarding.document_reviewed"
	EventDepositReviewed  = "deposit.reviewed"
	EventListingReviewed  = "listing.reviewed"
)

type Notification struct {
	Event       string                 `json:"event"`
	RecipientID string                 `json:"recipient_id"`
	Payload     map[string]interface{} `json:"payload,omitempty"`
}

// Notifier delivers events fire-and-forget. Implementations must never
// surface delivery failures to the calling workflow.
type Notifier interface {
	Publish(ctx context.Context, n Notification)
}
