package usecase

import (
	"time"

	"gemora/internal/domain/entity"
)

// ListingView is the role-shaped projection of a listing. Review
// metadata is only populated for the owner and administrators; the
// reviewer identity only for administrators.
type ListingView struct {
	ID           string                `json:"id"`
	SellerID     string                `json:"seller_id"`
	Name         string                `json:"name"`
	Description  string                `json:"description"`
	Category     string                `json:"category"`
	MinimumBid   float64               `json:"minimum_bid"`
	WeightCarats float64               `json:"weight_carats,omitempty"`
	Color        string                `json:"color,omitempty"`
	Origin       string                `json:"origin,omitempty"`
	Images       []entity.ListingImage `json:"images"`
	CreatedAt    time.Time             `json:"created_at"`

	Active           *bool      `json:"active,omitempty"`
	ReviewState      string     `json:"review_state,omitempty"`
	RejectionReason  string     `json:"rejection_reason,omitempty"`
	ReviewSuggestion string     `json:"review_suggestion,omitempty"`
	ReviewNotes      string     `json:"review_notes,omitempty"`
	ReviewedAt       *time.Time `json:"reviewed_at,omitempty"`
	ReviewedBy       string     `json:"reviewed_by,omitempty"`
}

// ViewListingFor maps a listing to the projection the actor is allowed
// to see. Returns nil when the listing is not visible to the actor.
func ViewListingFor(l *entity.Listing, actor Actor) *ListingView {
	if !actor.CanSeeListing(l) {
		return nil
	}

	view := &ListingView{
		ID:           l.ID,
		SellerID:     l.SellerID,
		Name:         l.Name,
		Description:  l.Description,
		Category:     l.Category,
		MinimumBid:   l.MinimumBid,
		WeightCarats: l.WeightCarats,
		Color:        l.Color,
		Origin:       l.Origin,
		Images:       l.Images,
		CreatedAt:    l.CreatedAt,
	}

	if actor.IsAdmin() || actor.Owns(l.SellerID) {
		active := l.Active
		view.Active = &active
		view.ReviewState = l.ReviewState
		view.RejectionReason = l.RejectionReason
		view.ReviewSuggestion = l.ReviewSuggestion
		view.ReviewNotes = l.ReviewNotes
		view.ReviewedAt = l.ReviewedAt
	}

	if actor.IsAdmin() {
		view.ReviewedBy = l.ReviewedBy
	}

	return view
}

// ViewListingsFor projects a result page, dropping records the actor
// cannot see.
func ViewListingsFor(listings []*entity.Listing, actor Actor) []*ListingView {
	views := make([]*ListingView, 0, len(listings))
	for _, l := range listings {
		if view := ViewListingFor(l, actor); view != nil {
			views = append(views, view)
		}
	}
	return views
}
