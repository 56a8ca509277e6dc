package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gemora/internal/domain/entity"
	"gemora/pkg/errors"
)

func newDepositFixture() (*DepositUseCase, *fakeDepositRepo, *fakeNotifier) {
	repo := newFakeDepositRepo()
	notifier := &fakeNotifier{}
	uc := NewDepositUseCase(repo, notifier)
	return uc, repo, notifier
}

func validDepositInput() RecordDepositInput {
	return RecordDepositInput{
		AuctionID:  "auction-1",
		Amount:     7500,
		Bank:       "Commercial Bank",
		Branch:     "Kandy",
		SlipURL:    "https://storage.example.com/slips/slip-1.jpg",
		PayerName:  "Nuwan Perera",
		PayerEmail: "nuwan@example.com",
		PayerPhone: "+94771234567",
	}
}

func TestRecordDeposit(t *testing.T) {
	ctx := context.Background()

	t.Run("starts pending", func(t *testing.T) {
		uc, _, _ := newDepositFixture()

		deposit, err := uc.RecordDeposit(ctx, validDepositInput())
		require.NoError(t, err)
		assert.Equal(t, entity.DepositStatusPending, deposit.Status)
		assert.Empty(t, deposit.ReviewedBy)
		assert.Nil(t, deposit.ReviewedAt)
	})

	t.Run("requires a slip and a positive amount", func(t *testing.T) {
		uc, _, _ := newDepositFixture()

		input := validDepositInput()
		input.SlipURL = ""
		input.Amount = -10
		_, err := uc.RecordDeposit(ctx, input)
		assert.True(t, errors.Is(err, "VALIDATION_ERROR"))
	})
}

func TestReviewDeposit(t *testing.T) {
	ctx := context.Background()
	admin := AdminActor("admin-1")

	seed := func(t *testing.T, uc *DepositUseCase) string {
		t.Helper()
		deposit, err := uc.RecordDeposit(ctx, validDepositInput())
		require.NoError(t, err)
		return deposit.ID
	}

	t.Run("admin settles to success", func(t *testing.T) {
		uc, _, notifier := newDepositFixture()
		id := seed(t, uc)

		deposit, err := uc.SetStatus(ctx, admin, id, entity.DepositStatusSuccess)
		require.NoError(t, err)
		assert.Equal(t, entity.DepositStatusSuccess, deposit.Status)
		assert.Equal(t, "admin-1", deposit.ReviewedBy)
		require.NotNil(t, deposit.ReviewedAt)

		require.Len(t, notifier.events, 1)
		assert.Equal(t, "deposit.reviewed", notifier.events[0].Event)
		assert.Equal(t, "nuwan@example.com", notifier.events[0].RecipientID)
	})

	t.Run("admin settles to failure", func(t *testing.T) {
		uc, _, _ := newDepositFixture()
		id := seed(t, uc)

		deposit, err := uc.SetStatus(ctx, admin, id, entity.DepositStatusFailure)
		require.NoError(t, err)
		assert.Equal(t, entity.DepositStatusFailure, deposit.Status)
	})

	t.Run("settlement is terminal", func(t *testing.T) {
		uc, _, _ := newDepositFixture()
		id := seed(t, uc)

		_, err := uc.SetStatus(ctx, admin, id, entity.DepositStatusSuccess)
		require.NoError(t, err)

		_, err = uc.SetStatus(ctx, admin, id, entity.DepositStatusFailure)
		assert.True(t, errors.Is(err, "CONFLICT"))
	})

	t.Run("non-admin is rejected", func(t *testing.T) {
		uc, _, _ := newDepositFixture()
		id := seed(t, uc)

		_, err := uc.SetStatus(ctx, BuyerActor("buyer-1"), id, entity.DepositStatusSuccess)
		assert.True(t, errors.Is(err, "FORBIDDEN"))
	})

	t.Run("pending is not a decision", func(t *testing.T) {
		uc, _, _ := newDepositFixture()
		id := seed(t, uc)

		_, err := uc.SetStatus(ctx, admin, id, entity.DepositStatusPending)
		assert.True(t, errors.Is(err, "VALIDATION_ERROR"))
	})
}

func TestListDeposits(t *testing.T) {
	ctx := context.Background()

	t.Run("requires admin", func(t *testing.T) {
		uc, _, _ := newDepositFixture()

		_, _, err := uc.ListByStatus(ctx, SellerActor("seller-1"), "", 1, 20)
		assert.True(t, errors.Is(err, "FORBIDDEN"))
	})

	t.Run("pending queue", func(t *testing.T) {
		uc, _, _ := newDepositFixture()
		first, err := uc.RecordDeposit(ctx, validDepositInput())
		require.NoError(t, err)
		_, err = uc.RecordDeposit(ctx, validDepositInput())
		require.NoError(t, err)

		_, err = uc.SetStatus(ctx, AdminActor("admin-1"), first.ID, entity.DepositStatusSuccess)
		require.NoError(t, err)

		deposits, total, err := uc.ListByStatus(ctx, AdminActor("admin-1"), entity.DepositStatusPending, 1, 20)
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		require.Len(t, deposits, 1)
	})
}
