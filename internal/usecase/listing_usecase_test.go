package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gemora/internal/domain/entity"
	"gemora/internal/domain/repository"
	"gemora/pkg/errors"
)

func newListingFixture() (*ListingUseCase, *fakeListingRepo, *fakeFileService, *fakeNotifier) {
	listingRepo := newFakeListingRepo()
	userRepo := newFakeUserRepo(
		&entity.User{ID: "seller-1", Email: "seller@example.com", Role: entity.RoleSeller},
		&entity.User{ID: "admin-1", Email: "admin@example.com", Role: entity.RoleAdmin},
	)
	fileService := &fakeFileService{}
	notifier := &fakeNotifier{}
	uc := NewListingUseCase(listingRepo, userRepo, fileService, notifier)
	return uc, listingRepo, fileService, notifier
}

func validContent() ListingContentInput {
	return ListingContentInput{
		Name:         "Burmese Ruby",
		Description:  "Pigeon blood, untreated",
		Category:     "ruby",
		MinimumBid:   2500,
		WeightCarats: 1.8,
		Color:        "red",
		Origin:       "Myanmar",
	}
}

func TestCreateListing(t *testing.T) {
	ctx := context.Background()

	t.Run("seller creates a draft", func(t *testing.T) {
		uc, _, _, _ := newListingFixture()

		listing, err := uc.CreateListing(ctx, SellerActor("seller-1"), validContent(), []ListingImageInput{
			{URL: "https://img/1.jpg", DisplayOrder: 0},
			{URL: "https://img/2.jpg", DisplayOrder: 1},
		})

		require.NoError(t, err)
		assert.Equal(t, entity.ReviewStateDraft, listing.ReviewState)
		assert.True(t, listing.Active)
		require.Len(t, listing.Images, 2)
		assert.True(t, listing.Images[0].IsPrimary)
		assert.False(t, listing.Images[1].IsPrimary)
	})

	t.Run("weight color and origin may be omitted", func(t *testing.T) {
		uc, _, _, _ := newListingFixture()

		input := validContent()
		input.WeightCarats = 0
		input.Color = ""
		input.Origin = ""
		listing, err := uc.CreateListing(ctx, SellerActor("seller-1"), input, nil)
		require.NoError(t, err)
		assert.Zero(t, listing.WeightCarats)
	})

	t.Run("buyer is rejected", func(t *testing.T) {
		uc, _, _, _ := newListingFixture()

		_, err := uc.CreateListing(ctx, BuyerActor("buyer-1"), validContent(), nil)
		assert.True(t, errors.Is(err, "FORBIDDEN"))
	})

	t.Run("invalid content is rejected", func(t *testing.T) {
		uc, _, _, _ := newListingFixture()

		input := validContent()
		input.Category = "plastic"
		input.MinimumBid = 0
		_, err := uc.CreateListing(ctx, SellerActor("seller-1"), input, nil)
		assert.True(t, errors.Is(err, "VALIDATION_ERROR"))
	})

	t.Run("too many images", func(t *testing.T) {
		uc, _, _, _ := newListingFixture()

		images := make([]ListingImageInput, 6)
		for i := range images {
			images[i] = ListingImageInput{URL: "https://img/x.jpg", DisplayOrder: i}
		}
		_, err := uc.CreateListing(ctx, SellerActor("seller-1"), validContent(), images)
		assert.True(t, errors.Is(err, "LIMIT_EXCEEDED"))
	})
}

func seedListing(t *testing.T, repo *fakeListingRepo, state string) *entity.Listing {
	t.Helper()
	listing := &entity.Listing{
		SellerID:    "seller-1",
		Name:        "Burmese Ruby",
		Category:    "ruby",
		MinimumBid:  2500,
		Active:      true,
		ReviewState: state,
		Images: []entity.ListingImage{
			{ID: "img-1", URL: "https://img/1.jpg", IsPrimary: true},
		},
	}
	require.NoError(t, repo.Create(context.Background(), listing))
	return listing
}

func TestSubmitForReview(t *testing.T) {
	ctx := context.Background()
	seller := SellerActor("seller-1")

	t.Run("draft moves to submitted", func(t *testing.T) {
		uc, repo, _, _ := newListingFixture()
		l := seedListing(t, repo, entity.ReviewStateDraft)

		out, err := uc.SubmitForReview(ctx, seller, l.ID)
		require.NoError(t, err)
		assert.Equal(t, entity.ReviewStateSubmitted, out.ReviewState)
	})

	t.Run("rejected resubmission clears prior feedback", func(t *testing.T) {
		uc, repo, _, _ := newListingFixture()
		l := seedListing(t, repo, entity.ReviewStateRejected)
		l.RejectionReason = "blurry photos"
		l.ReviewSuggestion = "retake in daylight"
		require.NoError(t, repo.Update(ctx, l))

		out, err := uc.SubmitForReview(ctx, seller, l.ID)
		require.NoError(t, err)
		assert.Equal(t, entity.ReviewStateSubmitted, out.ReviewState)
		assert.Empty(t, out.RejectionReason)
		assert.Empty(t, out.ReviewSuggestion)
	})

	t.Run("already submitted conflicts", func(t *testing.T) {
		uc, repo, _, _ := newListingFixture()
		l := seedListing(t, repo, entity.ReviewStateSubmitted)

		_, err := uc.SubmitForReview(ctx, seller, l.ID)
		assert.True(t, errors.Is(err, "CONFLICT"))
	})

	t.Run("verified conflicts", func(t *testing.T) {
		uc, repo, _, _ := newListingFixture()
		l := seedListing(t, repo, entity.ReviewStateVerified)

		_, err := uc.SubmitForReview(ctx, seller, l.ID)
		assert.True(t, errors.Is(err, "CONFLICT"))
	})

	t.Run("stranger is rejected", func(t *testing.T) {
		uc, repo, _, _ := newListingFixture()
		l := seedListing(t, repo, entity.ReviewStateDraft)

		_, err := uc.SubmitForReview(ctx, SellerActor("seller-2"), l.ID)
		assert.True(t, errors.Is(err, "FORBIDDEN"))
	})
}

func TestApplyContentEdit(t *testing.T) {
	ctx := context.Background()

	t.Run("content change on verified re-opens review", func(t *testing.T) {
		uc, repo, _, _ := newListingFixture()
		l := seedListing(t, repo, entity.ReviewStateVerified)

		input := validContent()
		input.MinimumBid = 3000
		result, err := uc.ApplyContentEdit(ctx, SellerActor("seller-1"), l.ID, input)

		require.NoError(t, err)
		assert.True(t, result.RequiresReVerification)
		assert.Equal(t, entity.ReviewStateSubmitted, result.Listing.ReviewState)
	})

	t.Run("identical content keeps verification", func(t *testing.T) {
		uc, repo, _, _ := newListingFixture()
		l := seedListing(t, repo, entity.ReviewStateVerified)

		input := ListingContentInput{
			Name:       l.Name,
			Category:   l.Category,
			MinimumBid: l.MinimumBid,
		}
		result, err := uc.ApplyContentEdit(ctx, SellerActor("seller-1"), l.ID, input)

		require.NoError(t, err)
		assert.False(t, result.RequiresReVerification)
		assert.Equal(t, entity.ReviewStateVerified, result.Listing.ReviewState)
	})

	t.Run("admin edits do not re-open review", func(t *testing.T) {
		uc, repo, _, _ := newListingFixture()
		l := seedListing(t, repo, entity.ReviewStateVerified)

		input := validContent()
		input.Description = "corrected typo"
		result, err := uc.ApplyContentEdit(ctx, AdminActor("admin-1"), l.ID, input)

		require.NoError(t, err)
		assert.False(t, result.RequiresReVerification)
		assert.Equal(t, entity.ReviewStateVerified, result.Listing.ReviewState)
	})

	t.Run("draft edits never flag", func(t *testing.T) {
		uc, repo, _, _ := newListingFixture()
		l := seedListing(t, repo, entity.ReviewStateDraft)

		input := validContent()
		input.Name = "Renamed Ruby"
		result, err := uc.ApplyContentEdit(ctx, SellerActor("seller-1"), l.ID, input)

		require.NoError(t, err)
		assert.False(t, result.RequiresReVerification)
		assert.Equal(t, entity.ReviewStateDraft, result.Listing.ReviewState)
	})
}

func TestReplaceOrAppendImages(t *testing.T) {
	ctx := context.Background()
	seller := SellerActor("seller-1")

	t.Run("replace releases prior locators after commit", func(t *testing.T) {
		uc, repo, fileService, _ := newListingFixture()
		l := seedListing(t, repo, entity.ReviewStateDraft)

		out, err := uc.ReplaceOrAppendImages(ctx, seller, l.ID, []ListingImageInput{
			{URL: "https://img/new-1.jpg"},
			{URL: "https://img/new-2.jpg"},
		}, ImageModeReplace)

		require.NoError(t, err)
		require.Len(t, out.Images, 2)
		assert.True(t, out.Images[0].IsPrimary)
		assert.Equal(t, []string{"https://img/1.jpg"}, fileService.deleted)
	})

	t.Run("replace with empty set is rejected", func(t *testing.T) {
		uc, repo, fileService, _ := newListingFixture()
		l := seedListing(t, repo, entity.ReviewStateDraft)

		_, err := uc.ReplaceOrAppendImages(ctx, seller, l.ID, nil, ImageModeReplace)
		assert.True(t, errors.Is(err, "VALIDATION_ERROR"))
		assert.Empty(t, fileService.deleted)
	})

	t.Run("append keeps existing primary", func(t *testing.T) {
		uc, repo, fileService, _ := newListingFixture()
		l := seedListing(t, repo, entity.ReviewStateDraft)

		out, err := uc.ReplaceOrAppendImages(ctx, seller, l.ID, []ListingImageInput{
			{URL: "https://img/extra.jpg"},
		}, ImageModeAppend)

		require.NoError(t, err)
		require.Len(t, out.Images, 2)
		assert.True(t, out.Images[0].IsPrimary)
		assert.False(t, out.Images[1].IsPrimary)
		assert.Empty(t, fileService.deleted)
	})

	t.Run("append past the cap is rejected", func(t *testing.T) {
		uc, repo, _, _ := newListingFixture()
		l := seedListing(t, repo, entity.ReviewStateDraft)

		images := make([]ListingImageInput, 5)
		for i := range images {
			images[i] = ListingImageInput{URL: "https://img/extra.jpg"}
		}
		_, err := uc.ReplaceOrAppendImages(ctx, seller, l.ID, images, ImageModeAppend)
		assert.True(t, errors.Is(err, "LIMIT_EXCEEDED"))
	})

	t.Run("unknown mode is rejected", func(t *testing.T) {
		uc, repo, _, _ := newListingFixture()
		l := seedListing(t, repo, entity.ReviewStateDraft)

		_, err := uc.ReplaceOrAppendImages(ctx, seller, l.ID, []ListingImageInput{{URL: "https://img/x.jpg"}}, "merge")
		assert.True(t, errors.Is(err, "VALIDATION_ERROR"))
	})
}

func TestVerifyAndReject(t *testing.T) {
	ctx := context.Background()
	admin := AdminActor("admin-1")

	t.Run("verify stamps reviewer and notifies seller", func(t *testing.T) {
		uc, repo, _, notifier := newListingFixture()
		l := seedListing(t, repo, entity.ReviewStateSubmitted)

		out, err := uc.Verify(ctx, admin, l.ID, "stone matches certificate")
		require.NoError(t, err)
		assert.Equal(t, entity.ReviewStateVerified, out.ReviewState)
		assert.Equal(t, "admin-1", out.ReviewedBy)
		require.NotNil(t, out.ReviewedAt)
		assert.Equal(t, "stone matches certificate", out.ReviewNotes)

		require.Len(t, notifier.events, 1)
		assert.Equal(t, "listing.reviewed", notifier.events[0].Event)
		assert.Equal(t, "seller-1", notifier.events[0].RecipientID)
	})

	t.Run("verify requires admin", func(t *testing.T) {
		uc, repo, _, _ := newListingFixture()
		l := seedListing(t, repo, entity.ReviewStateSubmitted)

		_, err := uc.Verify(ctx, SellerActor("seller-1"), l.ID, "")
		assert.True(t, errors.Is(err, "FORBIDDEN"))
	})

	t.Run("verify on draft conflicts", func(t *testing.T) {
		uc, repo, _, _ := newListingFixture()
		l := seedListing(t, repo, entity.ReviewStateDraft)

		_, err := uc.Verify(ctx, admin, l.ID, "")
		assert.True(t, errors.Is(err, "CONFLICT"))
	})

	t.Run("reject requires a reason", func(t *testing.T) {
		uc, repo, _, _ := newListingFixture()
		l := seedListing(t, repo, entity.ReviewStateSubmitted)

		_, err := uc.Reject(ctx, admin, l.ID, "", "")
		assert.True(t, errors.Is(err, "VALIDATION_ERROR"))
	})

	t.Run("reject records reason and suggestions", func(t *testing.T) {
		uc, repo, _, notifier := newListingFixture()
		l := seedListing(t, repo, entity.ReviewStateSubmitted)

		out, err := uc.Reject(ctx, admin, l.ID, "photos too dark", "retake in daylight")
		require.NoError(t, err)
		assert.Equal(t, entity.ReviewStateRejected, out.ReviewState)
		assert.Equal(t, "photos too dark", out.RejectionReason)
		assert.Equal(t, "retake in daylight", out.ReviewSuggestion)
		require.Len(t, notifier.events, 1)
	})

	t.Run("reject on rejected conflicts", func(t *testing.T) {
		uc, repo, _, _ := newListingFixture()
		l := seedListing(t, repo, entity.ReviewStateRejected)

		_, err := uc.Reject(ctx, admin, l.ID, "again", "")
		assert.True(t, errors.Is(err, "CONFLICT"))
	})
}

func TestListingVisibility(t *testing.T) {
	ctx := context.Background()

	t.Run("hidden listing reads as not found for strangers", func(t *testing.T) {
		uc, repo, _, _ := newListingFixture()
		l := seedListing(t, repo, entity.ReviewStateDraft)

		_, err := uc.GetListing(ctx, AnonymousActor(), l.ID)
		assert.True(t, errors.Is(err, "NOT_FOUND"))
	})

	t.Run("owner sees review metadata, not reviewer identity", func(t *testing.T) {
		uc, repo, _, _ := newListingFixture()
		l := seedListing(t, repo, entity.ReviewStateRejected)
		l.RejectionReason = "blurry"
		l.ReviewedBy = "admin-1"
		require.NoError(t, repo.Update(ctx, l))

		view, err := uc.GetListing(ctx, SellerActor("seller-1"), l.ID)
		require.NoError(t, err)
		assert.Equal(t, entity.ReviewStateRejected, view.ReviewState)
		assert.Equal(t, "blurry", view.RejectionReason)
		assert.Empty(t, view.ReviewedBy)
	})

	t.Run("admin sees reviewer identity", func(t *testing.T) {
		uc, repo, _, _ := newListingFixture()
		l := seedListing(t, repo, entity.ReviewStateVerified)
		l.ReviewedBy = "admin-1"
		require.NoError(t, repo.Update(ctx, l))

		view, err := uc.GetListing(ctx, AdminActor("admin-2"), l.ID)
		require.NoError(t, err)
		assert.Equal(t, "admin-1", view.ReviewedBy)
	})

	t.Run("public view strips review metadata", func(t *testing.T) {
		uc, repo, _, _ := newListingFixture()
		l := seedListing(t, repo, entity.ReviewStateVerified)

		view, err := uc.GetListing(ctx, AnonymousActor(), l.ID)
		require.NoError(t, err)
		assert.Nil(t, view.Active)
		assert.Empty(t, view.ReviewState)
		assert.Empty(t, view.ReviewedBy)
	})

	t.Run("non-admin listing is forced public-only", func(t *testing.T) {
		uc, repo, _, _ := newListingFixture()
		seedListing(t, repo, entity.ReviewStateDraft)
		seedListing(t, repo, entity.ReviewStateVerified)

		views, total, err := uc.ListListings(ctx, BuyerActor("buyer-1"), repository.ListingFilter{}, "", 1, 20)
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		require.Len(t, views, 1)
	})

	t.Run("review queue requires admin", func(t *testing.T) {
		uc, _, _, _ := newListingFixture()

		_, _, err := uc.ListReviewQueue(ctx, SellerActor("seller-1"), 1, 20)
		assert.True(t, errors.Is(err, "FORBIDDEN"))
	})
}

func TestDeleteAndRestore(t *testing.T) {
	ctx := context.Background()

	t.Run("soft delete deactivates", func(t *testing.T) {
		uc, repo, _, _ := newListingFixture()
		l := seedListing(t, repo, entity.ReviewStateVerified)

		require.NoError(t, uc.SoftDelete(ctx, SellerActor("seller-1"), l.ID))

		stored, err := repo.GetByID(ctx, l.ID)
		require.NoError(t, err)
		assert.False(t, stored.Active)
		assert.Equal(t, entity.ReviewStateVerified, stored.ReviewState)
	})

	t.Run("restore requires admin", func(t *testing.T) {
		uc, repo, _, _ := newListingFixture()
		l := seedListing(t, repo, entity.ReviewStateVerified)
		require.NoError(t, uc.SoftDelete(ctx, SellerActor("seller-1"), l.ID))

		_, err := uc.Restore(ctx, SellerActor("seller-1"), l.ID)
		assert.True(t, errors.Is(err, "FORBIDDEN"))

		out, err := uc.Restore(ctx, AdminActor("admin-1"), l.ID)
		require.NoError(t, err)
		assert.True(t, out.Active)
	})

	t.Run("hard delete removes record then releases images", func(t *testing.T) {
		uc, repo, fileService, _ := newListingFixture()
		l := seedListing(t, repo, entity.ReviewStateVerified)

		require.NoError(t, uc.HardDelete(ctx, AdminActor("admin-1"), l.ID))

		_, err := repo.GetByID(ctx, l.ID)
		assert.True(t, errors.Is(err, "NOT_FOUND"))
		assert.Equal(t, []string{"https://img/1.jpg"}, fileService.deleted)
	})

	t.Run("hard delete requires admin", func(t *testing.T) {
		uc, repo, _, _ := newListingFixture()
		l := seedListing(t, repo, entity.ReviewStateVerified)

		err := uc.HardDelete(ctx, SellerActor("seller-1"), l.ID)
		assert.True(t, errors.Is(err, "FORBIDDEN"))
	})
}
