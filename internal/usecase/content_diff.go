package usecase

import (
	"gemora/internal/domain/entity"
)

// ListingContent is the whitelisted set of fields whose mutation
// invalidates a prior approval. Review metadata, the active flag and
// image bookkeeping are deliberately excluded.
type ListingContent struct {
	Name         string
	Description  string
	Category     string
	MinimumBid   float64
	WeightCarats float64
	Color        string
	Origin       string
}

func ContentOf(l *entity.Listing) ListingContent {
	return ListingContent{
		Name:         l.Name,
		Description:  l.Description,
		Category:     l.Category,
		MinimumBid:   l.MinimumBid,
		WeightCarats: l.WeightCarats,
		Color:        l.Color,
		Origin:       l.Origin,
	}
}

// ContentChanged reports whether any whitelisted field differs.
func ContentChanged(before, after ListingContent) bool {
	return before != after
}
