package repository

import (
	"context"
	"sort"
	"strings"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"gemora/internal/domain/entity"
	"gemora/internal/domain/repository"
	"gemora/pkg/errors"
)

type firestoreListingRepository struct {
	client *firestore.Client
}

func NewFirestoreListingRepository(client *firestore.Client) repository.ListingRepository {
	return &firestoreListingRepository{
		client: client,
	}
}

func (r *firestoreListingRepository) Create(ctx context.Context, listing *entity.Listing) error {
	if listing.ID == "" {
		doc := r.client.Collection("listings").NewDoc()
		listing.ID = doc.ID
	}

	now := time.Now()
	if listing.CreatedAt.IsZero() {
		listing.CreatedAt = now
	}
	listing.UpdatedAt = now

	_, err := r.client.Collection("listings").Doc(listing.ID).Set(ctx, listing)
	if err != nil {
		return errors.Internal("Failed to create listing", err)
	}

	return nil
}

func (r *firestoreListingRepository) GetByID(ctx context.Context, id string) (*entity.Listing, error) {
	doc, err := r.client.Collection("listings").Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Listing", err)
		}
		return nil, errors.Internal("Failed to get listing", err)
	}

	var listing entity.Listing
	if err := doc.DataTo(&listing); err != nil {
		return nil, errors.Internal("Failed to parse listing data", err)
	}

	return &listing, nil
}

func (r *firestoreListingRepository) Update(ctx context.Context, listing *entity.Listing) error {
	listing.UpdatedAt = time.Now()

	_, err := r.client.Collection("listings").Doc(listing.ID).Set(ctx, listing)
	if err != nil {
		return errors.Internal("Failed to update listing", err)
	}

	return nil
}

// Mutate serializes the read-modify-write on a single listing so two
// concurrent transitions cannot lose updates. Errors returned by fn
// abort the write and surface unchanged.
func (r *firestoreListingRepository) Mutate(ctx context.Context, id string, fn func(listing *entity.Listing) error) (*entity.Listing, error) {
	var updated *entity.Listing
	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		docRef := r.client.Collection("listings").Doc(id)
		doc, err := tx.Get(docRef)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				return errors.NotFound("Listing", err)
			}
			return errors.Internal("Failed to get listing", err)
		}

		var listing entity.Listing
		if err := doc.DataTo(&listing); err != nil {
			return errors.Internal("Failed to parse listing data", err)
		}

		if err := fn(&listing); err != nil {
			return err
		}

		listing.UpdatedAt = time.Now()
		updated = &listing
		return tx.Set(docRef, &listing)
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

func (r *firestoreListingRepository) Delete(ctx context.Context, id string) error {
	_, err := r.client.Collection("listings").Doc(id).Delete(ctx)
	if err != nil {
		return errors.Internal("Failed to delete listing", err)
	}

	return nil
}

func (r *firestoreListingRepository) buildQuery(filter repository.ListingFilter) firestore.Query {
	query := r.client.Collection("listings").Query

	if filter.PublicOnly {
		query = query.Where("active", "==", true).Where("reviewState", "==", entity.ReviewStateVerified)
	}
	if filter.Category != "" {
		query = query.Where("category", "==", filter.Category)
	}
	if filter.SellerID != "" {
		query = query.Where("sellerId", "==", filter.SellerID)
	}
	if filter.ReviewState != "" {
		query = query.Where("reviewState", "==", filter.ReviewState)
	}
	if filter.MinPrice > 0 {
		query = query.Where("minimumBid", ">=", filter.MinPrice)
	}
	if filter.MaxPrice > 0 {
		query = query.Where("minimumBid", "<=", filter.MaxPrice)
	}

	return query
}

// matchesWeight applies the weight range in memory; Firestore only
// allows range filters on a single field per query.
func matchesWeight(listing *entity.Listing, filter repository.ListingFilter) bool {
	if filter.MinWeight > 0 && listing.WeightCarats < filter.MinWeight {
		return false
	}
	if filter.MaxWeight > 0 && listing.WeightCarats > filter.MaxWeight {
		return false
	}
	return true
}

func (r *firestoreListingRepository) List(ctx context.Context, filter repository.ListingFilter, sortField string, limit, offset int) ([]*entity.Listing, int64, error) {
	query := r.buildQuery(filter)

	docs, err := query.Documents(ctx).GetAll()
	if err != nil {
		return nil, 0, errors.Internal("Failed to list listings", err)
	}

	var listings []*entity.Listing
	for _, doc := range docs {
		var listing entity.Listing
		if err := doc.DataTo(&listing); err != nil {
			return nil, 0, errors.Internal("Failed to parse listing data", err)
		}
		if !matchesWeight(&listing, filter) {
			continue
		}
		listings = append(listings, &listing)
	}

	sortListings(listings, sortField)
	total := int64(len(listings))

	return paginateListings(listings, limit, offset), total, nil
}

func sortListings(listings []*entity.Listing, sortField string) {
	switch sortField {
	case "price_asc":
		sort.Slice(listings, func(i, j int) bool { return listings[i].MinimumBid < listings[j].MinimumBid })
	case "price_desc":
		sort.Slice(listings, func(i, j int) bool { return listings[i].MinimumBid > listings[j].MinimumBid })
	case "createdAt":
		sort.Slice(listings, func(i, j int) bool { return listings[i].CreatedAt.Before(listings[j].CreatedAt) })
	default:
		sort.Slice(listings, func(i, j int) bool { return listings[i].CreatedAt.After(listings[j].CreatedAt) })
	}
}

func paginateListings(listings []*entity.Listing, limit, offset int) []*entity.Listing {
	if offset >= len(listings) {
		return []*entity.Listing{}
	}
	end := len(listings)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return listings[offset:end]
}

func (r *firestoreListingRepository) SearchByName(ctx context.Context, query string, filter repository.ListingFilter, limit, offset int) ([]*entity.Listing, int64, error) {
	// Firestore has no full-text search; scan and match in memory the
	// same way the listing queries handle weight ranges.
	query = strings.ToLower(query)

	docs, err := r.buildQuery(filter).Documents(ctx).GetAll()
	if err != nil {
		return nil, 0, errors.Internal("Failed to search listings", err)
	}

	var matched []*entity.Listing
	for _, doc := range docs {
		var listing entity.Listing
		if err := doc.DataTo(&listing); err != nil {
			continue
		}
		if !matchesWeight(&listing, filter) {
			continue
		}
		if strings.Contains(strings.ToLower(listing.Name), query) {
			matched = append(matched, &listing)
		}
	}

	sortListings(matched, "")
	total := int64(len(matched))

	return paginateListings(matched, limit, offset), total, nil
}

func (r *firestoreListingRepository) ListBySellerID(ctx context.Context, sellerID string, reviewState string, limit, offset int) ([]*entity.Listing, int64, error) {
	query := r.client.Collection("listings").Query.Where("sellerId", "==", sellerID)
	if reviewState != "" {
		query = query.Where("reviewState", "==", reviewState)
	}

	allDocs, err := query.Documents(ctx).GetAll()
	if err != nil {
		return nil, 0, errors.Internal("Failed to count seller listings", err)
	}
	total := int64(len(allDocs))

	query = query.OrderBy("createdAt", firestore.Desc)
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	iter := query.Documents(ctx)
	var listings []*entity.Listing

	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, 0, errors.Internal("Failed to iterate seller listings", err)
		}

		var listing entity.Listing
		if err := doc.DataTo(&listing); err != nil {
			return nil, 0, errors.Internal("Failed to parse listing data", err)
		}
		listings = append(listings, &listing)
	}

	return listings, total, nil
}
