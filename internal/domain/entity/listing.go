package entity

import (
	"time"
)

// Review states for a listing's publication lifecycle.
const (
	ReviewStateDraft     = "draft"
	ReviewStateSubmitted = "submitted"
	ReviewStateVerified  = "verified"
	ReviewStateRejected  = "rejected"
)

// Closed set of gemstone categories.
var ListingCategories = []string{
	"ruby", "sapphire", "emerald", "diamond", "topaz", "garnet", "opal", "other",
}

func IsValidCategory(category string) bool {
	for _, c := range ListingCategories {
		if c == category {
			return true
		}
	}
	return false
}

type ListingImage struct {
	ID           string `json:"id" firestore:"id"`
	URL          string `json:"url" firestore:"url"`
	DisplayOrder int    `json:"display_order" firestore:"displayOrder"`
	IsPrimary    bool   `json:"is_primary" firestore:"isPrimary"`
}

type Listing struct {
	ID          string  `json:"id" firestore:"id"`
	SellerID    string  `json:"seller_id" firestore:"sellerId"`
	Name        string  `json:"name" firestore:"name"`
	Description string  `json:"description" firestore:"description"`
	Category    string  `json:"category" firestore:"category"`
	MinimumBid  float64 `json:"minimum_bid" firestore:"minimumBid"`

	WeightCarats float64 `json:"weight_carats,omitempty" firestore:"weightCarats,omitempty"`
	Color        string  `json:"color,omitempty" firestore:"color,omitempty"`
	Origin       string  `json:"origin,omitempty" firestore:"origin,omitempty"`

	Images []ListingImage `json:"images" firestore:"images"`
	Active bool           `json:"active" firestore:"active"`

	ReviewState      string     `json:"review_state" firestore:"reviewState"`
	ReviewedBy       string     `json:"reviewed_by,omitempty" firestore:"reviewedBy,omitempty"`
	ReviewedAt       *time.Time `json:"reviewed_at,omitempty" firestore:"reviewedAt,omitempty"`
	ReviewNotes      string     `json:"review_notes,omitempty" firestore:"reviewNotes,omitempty"`
	RejectionReason  string     `json:"rejection_reason,omitempty" firestore:"rejectionReason,omitempty"`
	ReviewSuggestion string     `json:"review_suggestion,omitempty" firestore:"reviewSuggestion,omitempty"`

	CreatedAt time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt time.Time `json:"updated_at" firestore:"updatedAt"`
}

// PrimaryImage returns the image flagged primary, or nil when the listing
// has no images.
func (l *Listing) PrimaryImage() *ListingImage {
	for i := range l.Images {
		if l.Images[i].IsPrimary {
			return &l.Images[i]
		}
	}
	return nil
}

// PubliclyVisible reports whether the listing is discoverable by anonymous
// and non-owning users.
func (l *Listing) PubliclyVisible() bool {
	return l.Active && l.ReviewState == ReviewStateVerified
}
