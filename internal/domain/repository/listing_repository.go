package repository

import (
	"context"

	"gemora/internal/domain/entity"
)

// ListingFilter narrows listing queries. Zero values mean "no constraint".
type ListingFilter struct {
	Category    string
	SellerID    string
	ReviewState string
	MinPrice    float64
	MaxPrice    float64
	MinWeight   float64
	MaxWeight   float64
	PublicOnly  bool
}

type ListingRepository interface {
	Create(ctx context.Context, listing *entity.Listing) error
	GetByID(ctx context.Context, id string) (*entity.Listing, error)
	Update(ctx context.Context, listing *entity.Listing) error
	// Mutate runs fn inside a serialized read-modify-write on the listing
	// so concurrent transitions on the same record cannot lose updates.
	Mutate(ctx context.Context, id string, fn func(listing *entity.Listing) error) (*entity.Listing, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter ListingFilter, sort string, limit, offset int) ([]*entity.Listing, int64, error)
	SearchByName(ctx context.Context, query string, filter ListingFilter, limit, offset int) ([]*entity.Listing, int64, error)
	ListBySellerID(ctx context.Context, sellerID string, reviewState string, limit, offset int) ([]*entity.Listing, int64, error)
}
