package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"gemora/internal/domain/entity"
	"gemora/internal/domain/repository"
	"gemora/internal/domain/service"
	"gemora/pkg/errors"
	"gemora/pkg/logger"
	"gemora/pkg/utils"
)

const maxListingImages = 5

// Image operation modes.
const (
	ImageModeReplace = "replace"
	ImageModeAppend  = "append"
)

type ListingUseCase struct {
	listingRepo repository.ListingRepository
	userRepo    repository.UserRepository
	fileService service.FileUploadService
	notifier    service.Notifier
}

func NewListingUseCase(
	listingRepo repository.ListingRepository,
	userRepo repository.UserRepository,
	fileService service.FileUploadService,
	notifier service.Notifier,
) *ListingUseCase {
	return &ListingUseCase{
		listingRepo: listingRepo,
		userRepo:    userRepo,
		fileService: fileService,
		notifier:    notifier,
	}
}

type ListingContentInput struct {
	Name         string  `json:"name"`
	Description  string  `json:"description"`
	Category     string  `json:"category"`
	MinimumBid   float64 `json:"minimum_bid"`
	WeightCarats float64 `json:"weight_carats"`
	Color        string  `json:"color"`
	Origin       string  `json:"origin"`
}

type ListingImageInput struct {
	URL          string `json:"url"`
	DisplayOrder int    `json:"display_order"`
}

func validateListingContent(input ListingContentInput) error {
	fields := make(map[string]string)
	if input.Name == "" {
		fields["name"] = "name is required"
	}
	if !entity.IsValidCategory(input.Category) {
		fields["category"] = "unknown category"
	}
	if input.MinimumBid <= 0 {
		fields["minimum_bid"] = "minimum bid must be greater than zero"
	}
	if len(fields) > 0 {
		return errors.Validation("Invalid listing content", fields)
	}
	return nil
}

func buildImageSet(inputs []ListingImageInput) []entity.ListingImage {
	images := make([]entity.ListingImage, len(inputs))
	for i, img := range inputs {
		images[i] = entity.ListingImage{
			ID:           uuid.New().String(),
			URL:          img.URL,
			DisplayOrder: img.DisplayOrder,
			IsPrimary:    i == 0,
		}
	}
	return images
}

func (uc *ListingUseCase) CreateListing(ctx context.Context, actor Actor, input ListingContentInput, images []ListingImageInput) (*entity.Listing, error) {
	if actor.Role != entity.RoleSeller && !actor.IsAdmin() {
		return nil, errors.Forbidden("Only sellers can create listings", nil)
	}

	if _, err := uc.userRepo.GetByID(ctx, actor.ID); err != nil {
		return nil, errors.BadRequest("Invalid seller", err)
	}

	if err := validateListingContent(input); err != nil {
		return nil, err
	}

	if len(images) > maxListingImages {
		return nil, errors.LimitExceeded("A listing can have at most 5 images")
	}

	now := time.Now()
	listing := &entity.Listing{
		SellerID:     actor.ID,
		Name:         input.Name,
		Description:  input.Description,
		Category:     input.Category,
		MinimumBid:   input.MinimumBid,
		WeightCarats: input.WeightCarats,
		Color:        input.Color,
		Origin:       input.Origin,
		Images:       buildImageSet(images),
		Active:       true,
		ReviewState:  entity.ReviewStateDraft,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := uc.listingRepo.Create(ctx, listing); err != nil {
		return nil, err
	}

	return listing, nil
}

// SubmitForReview hands the listing over for administrative review. A
// verified listing has nothing new to review; the verified -> submitted
// edge is taken by ApplyContentEdit when content actually changes.
func (uc *ListingUseCase) SubmitForReview(ctx context.Context, actor Actor, listingID string) (*entity.Listing, error) {
	return uc.listingRepo.Mutate(ctx, listingID, func(listing *entity.Listing) error {
		if !actor.CanManageListing(listing) {
			return errors.Forbidden("You don't have permission to submit this listing", nil)
		}

		switch listing.ReviewState {
		case entity.ReviewStateDraft, entity.ReviewStateRejected:
			listing.ReviewState = entity.ReviewStateSubmitted
			listing.RejectionReason = ""
			listing.ReviewSuggestion = ""
			return nil
		case entity.ReviewStateSubmitted:
			return errors.Conflict("Listing is already awaiting review")
		case entity.ReviewStateVerified:
			return errors.Conflict("Listing is already verified")
		default:
			return errors.Conflict("Listing cannot be submitted from its current state")
		}
	})
}

type ContentEditResult struct {
	Listing                *entity.Listing `json:"listing"`
	RequiresReVerification bool            `json:"requires_re_verification"`
}

// ApplyContentEdit updates the mutable fields. A non-admin edit that
// changes whitelisted content on a verified listing re-opens review.
func (uc *ListingUseCase) ApplyContentEdit(ctx context.Context, actor Actor, listingID string, input ListingContentInput) (*ContentEditResult, error) {
	if err := validateListingContent(input); err != nil {
		return nil, err
	}

	requiresReVerification := false
	listing, err := uc.listingRepo.Mutate(ctx, listingID, func(listing *entity.Listing) error {
		if !actor.CanManageListing(listing) {
			return errors.Forbidden("You don't have permission to edit this listing", nil)
		}

		before := ContentOf(listing)

		listing.Name = input.Name
		listing.Description = input.Description
		listing.Category = input.Category
		listing.MinimumBid = input.MinimumBid
		listing.WeightCarats = input.WeightCarats
		listing.Color = input.Color
		listing.Origin = input.Origin

		if !actor.IsAdmin() &&
			listing.ReviewState == entity.ReviewStateVerified &&
			ContentChanged(before, ContentOf(listing)) {
			listing.ReviewState = entity.ReviewStateSubmitted
			requiresReVerification = true
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &ContentEditResult{
		Listing:                listing,
		RequiresReVerification: requiresReVerification,
	}, nil
}

// ReplaceOrAppendImages rewrites or extends the image set. Replace mode
// releases the prior locators only after the record write commits;
// release failures are logged and never abort the operation.
func (uc *ListingUseCase) ReplaceOrAppendImages(ctx context.Context, actor Actor, listingID string, images []ListingImageInput, mode string) (*entity.Listing, error) {
	if mode != ImageModeReplace && mode != ImageModeAppend {
		return nil, errors.Validation("Invalid image mode", map[string]string{
			"mode": "mode must be one of: replace append",
		})
	}

	var released []string
	listing, err := uc.listingRepo.Mutate(ctx, listingID, func(listing *entity.Listing) error {
		if !actor.CanManageListing(listing) {
			return errors.Forbidden("You don't have permission to modify this listing", nil)
		}

		released = released[:0]
		switch mode {
		case ImageModeReplace:
			if len(images) == 0 {
				return errors.Validation("A listing must keep at least one image", map[string]string{
					"images": "replace requires at least one image",
				})
			}
			if len(images) > maxListingImages {
				return errors.LimitExceeded("A listing can have at most 5 images")
			}
			for _, img := range listing.Images {
				released = append(released, img.URL)
			}
			listing.Images = buildImageSet(images)

		case ImageModeAppend:
			if len(listing.Images)+len(images) > maxListingImages {
				return errors.LimitExceeded("A listing can have at most 5 images")
			}
			if len(listing.Images)+len(images) == 0 {
				return errors.Validation("A listing must keep at least one image", map[string]string{
					"images": "append requires at least one image on an empty listing",
				})
			}
			hasPrimary := listing.PrimaryImage() != nil
			for i, img := range images {
				listing.Images = append(listing.Images, entity.ListingImage{
					ID:           uuid.New().String(),
					URL:          img.URL,
					DisplayOrder: img.DisplayOrder,
					IsPrimary:    !hasPrimary && i == 0,
				})
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.releaseImages(ctx, released)

	return listing, nil
}

func (uc *ListingUseCase) releaseImages(ctx context.Context, locators []string) {
	for _, locator := range locators {
		if err := uc.fileService.DeleteFile(ctx, locator); err != nil {
			logger.LogStorageCleanupError(locator, err)
		}
	}
}

// Verify approves a submitted (or, permissively, rejected) listing.
func (uc *ListingUseCase) Verify(ctx context.Context, actor Actor, listingID string, notes string) (*entity.Listing, error) {
	if !actor.IsAdmin() {
		return nil, errors.Forbidden("Only administrators can verify listings", nil)
	}

	listing, err := uc.listingRepo.Mutate(ctx, listingID, func(listing *entity.Listing) error {
		if listing.ReviewState != entity.ReviewStateSubmitted && listing.ReviewState != entity.ReviewStateRejected {
			return errors.Conflict("Listing is not awaiting review")
		}

		now := time.Now()
		listing.ReviewState = entity.ReviewStateVerified
		listing.ReviewedBy = actor.ID
		listing.ReviewedAt = &now
		listing.ReviewNotes = notes
		listing.RejectionReason = ""
		listing.ReviewSuggestion = ""
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.notifier.Publish(ctx, service.Notification{
		Event:       service.EventListingReviewed,
		RecipientID: listing.SellerID,
		Payload: map[string]interface{}{
			"listing_id":   listing.ID,
			"review_state": listing.ReviewState,
		},
	})

	return listing, nil
}

// Reject turns down a submitted listing with a mandatory reason.
func (uc *ListingUseCase) Reject(ctx context.Context, actor Actor, listingID, reason, suggestions string) (*entity.Listing, error) {
	if !actor.IsAdmin() {
		return nil, errors.Forbidden("Only administrators can reject listings", nil)
	}
	if reason == "" {
		return nil, errors.Validation("A rejection reason is required", map[string]string{
			"reason": "reason is required",
		})
	}

	listing, err := uc.listingRepo.Mutate(ctx, listingID, func(listing *entity.Listing) error {
		if listing.ReviewState != entity.ReviewStateSubmitted {
			return errors.Conflict("Listing is not awaiting review")
		}

		now := time.Now()
		listing.ReviewState = entity.ReviewStateRejected
		listing.ReviewedBy = actor.ID
		listing.ReviewedAt = &now
		listing.RejectionReason = reason
		listing.ReviewSuggestion = suggestions
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.notifier.Publish(ctx, service.Notification{
		Event:       service.EventListingReviewed,
		RecipientID: listing.SellerID,
		Payload: map[string]interface{}{
			"listing_id":   listing.ID,
			"review_state": listing.ReviewState,
			"reason":       reason,
		},
	})

	return listing, nil
}

// SoftDelete hides the listing without destroying it. Reversible by an
// administrator through Restore.
func (uc *ListingUseCase) SoftDelete(ctx context.Context, actor Actor, listingID string) error {
	_, err := uc.listingRepo.Mutate(ctx, listingID, func(listing *entity.Listing) error {
		if !actor.CanManageListing(listing) {
			return errors.Forbidden("You don't have permission to delete this listing", nil)
		}
		listing.Active = false
		return nil
	})
	return err
}

func (uc *ListingUseCase) Restore(ctx context.Context, actor Actor, listingID string) (*entity.Listing, error) {
	if !actor.IsAdmin() {
		return nil, errors.Forbidden("Only administrators can restore listings", nil)
	}
	return uc.listingRepo.Mutate(ctx, listingID, func(listing *entity.Listing) error {
		listing.Active = true
		return nil
	})
}

// HardDelete removes the record, then releases image storage best
// effort. The record delete is the commit point: a failed release is
// logged and retried out of band, never rolled back.
func (uc *ListingUseCase) HardDelete(ctx context.Context, actor Actor, listingID string) error {
	if !actor.IsAdmin() {
		return errors.Forbidden("Only administrators can permanently delete listings", nil)
	}

	listing, err := uc.listingRepo.GetByID(ctx, listingID)
	if err != nil {
		return err
	}

	if err := uc.listingRepo.Delete(ctx, listingID); err != nil {
		return err
	}

	locators := make([]string, 0, len(listing.Images))
	for _, img := range listing.Images {
		locators = append(locators, img.URL)
	}
	uc.releaseImages(ctx, locators)

	return nil
}

func (uc *ListingUseCase) GetListing(ctx context.Context, actor Actor, listingID string) (*ListingView, error) {
	listing, err := uc.listingRepo.GetByID(ctx, listingID)
	if err != nil {
		return nil, err
	}

	view := ViewListingFor(listing, actor)
	if view == nil {
		// Hide the record's existence from actors who cannot see it.
		return nil, errors.NotFound("Listing", nil)
	}

	return view, nil
}

func (uc *ListingUseCase) ListListings(ctx context.Context, actor Actor, filter repository.ListingFilter, sort string, page, limit int) ([]*ListingView, int64, error) {
	if !actor.IsAdmin() {
		filter.PublicOnly = true
	}

	pagination := utils.NewPaginationParams(page, limit)
	listings, total, err := uc.listingRepo.List(ctx, filter, sort, pagination.PageSize, pagination.Offset)
	if err != nil {
		return nil, 0, err
	}

	return ViewListingsFor(listings, actor), total, nil
}

func (uc *ListingUseCase) SearchListings(ctx context.Context, actor Actor, query string, filter repository.ListingFilter, page, limit int) ([]*ListingView, int64, error) {
	if !actor.IsAdmin() {
		filter.PublicOnly = true
	}

	pagination := utils.NewPaginationParams(page, limit)
	listings, total, err := uc.listingRepo.SearchByName(ctx, query, filter, pagination.PageSize, pagination.Offset)
	if err != nil {
		return nil, 0, err
	}

	return ViewListingsFor(listings, actor), total, nil
}

func (uc *ListingUseCase) ListMyListings(ctx context.Context, actor Actor, reviewState string, page, limit int) ([]*ListingView, int64, error) {
	pagination := utils.NewPaginationParams(page, limit)
	listings, total, err := uc.listingRepo.ListBySellerID(ctx, actor.ID, reviewState, pagination.PageSize, pagination.Offset)
	if err != nil {
		return nil, 0, err
	}

	return ViewListingsFor(listings, actor), total, nil
}

// ListReviewQueue returns listings awaiting a review decision.
func (uc *ListingUseCase) ListReviewQueue(ctx context.Context, actor Actor, page, limit int) ([]*ListingView, int64, error) {
	if !actor.IsAdmin() {
		return nil, 0, errors.Forbidden("Only administrators can view the review queue", nil)
	}

	pagination := utils.NewPaginationParams(page, limit)
	listings, total, err := uc.listingRepo.List(ctx, repository.ListingFilter{
		ReviewState: entity.ReviewStateSubmitted,
	}, "createdAt", pagination.PageSize, pagination.Offset)
	if err != nil {
		return nil, 0, err
	}

	return ViewListingsFor(listings, actor), total, nil
}
