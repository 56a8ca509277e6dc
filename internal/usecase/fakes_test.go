package usecase

import (
	"context"
	"fmt"
	"io"
	"strings"

	"gemora/internal/domain/entity"
	"gemora/internal/domain/repository"
	"gemora/internal/domain/service"
	"gemora/pkg/errors"
)

type fakeNotifier struct {
	events []service.Notification
}

func (f *fakeNotifier) Publish(ctx context.Context, n service.Notification) {
	f.events = append(f.events, n)
}

type fakeFileService struct {
	deleted   []string
	deleteErr error
}

func (f *fakeFileService) UploadFile(ctx context.Context, file io.Reader, fileType, folder string, isPublic bool) (string, error) {
	return "https://storage.example.com/fake", nil
}

func (f *fakeFileService) DeleteFile(ctx context.Context, fileURL string) error {
	f.deleted = append(f.deleted, fileURL)
	return f.deleteErr
}

func (f *fakeFileService) Close() error { return nil }

type fakeListingRepo struct {
	listings map[string]*entity.Listing
	seq      int
}

func newFakeListingRepo() *fakeListingRepo {
	return &fakeListingRepo{listings: make(map[string]*entity.Listing)}
}

func (r *fakeListingRepo) Create(ctx context.Context, listing *entity.Listing) error {
	if listing.ID == "" {
		r.seq++
		listing.ID = fmt.Sprintf("listing-%d", r.seq)
	}
	cp := *listing
	r.listings[listing.ID] = &cp
	return nil
}

func (r *fakeListingRepo) GetByID(ctx context.Context, id string) (*entity.Listing, error) {
	l, ok := r.listings[id]
	if !ok {
		return nil, errors.NotFound("Listing", nil)
	}
	cp := *l
	return &cp, nil
}

func (r *fakeListingRepo) Update(ctx context.Context, listing *entity.Listing) error {
	if _, ok := r.listings[listing.ID]; !ok {
		return errors.NotFound("Listing", nil)
	}
	cp := *listing
	r.listings[listing.ID] = &cp
	return nil
}

func (r *fakeListingRepo) Mutate(ctx context.Context, id string, fn func(listing *entity.Listing) error) (*entity.Listing, error) {
	l, ok := r.listings[id]
	if !ok {
		return nil, errors.NotFound("Listing", nil)
	}
	cp := *l
	if err := fn(&cp); err != nil {
		return nil, err
	}
	r.listings[id] = &cp
	out := cp
	return &out, nil
}

func (r *fakeListingRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.listings[id]; !ok {
		return errors.NotFound("Listing", nil)
	}
	delete(r.listings, id)
	return nil
}

func (r *fakeListingRepo) matches(l *entity.Listing, filter repository.ListingFilter) bool {
	if filter.PublicOnly && !l.PubliclyVisible() {
		return false
	}
	if filter.Category != "" && l.Category != filter.Category {
		return false
	}
	if filter.SellerID != "" && l.SellerID != filter.SellerID {
		return false
	}
	if filter.ReviewState != "" && l.ReviewState != filter.ReviewState {
		return false
	}
	return true
}

func (r *fakeListingRepo) List(ctx context.Context, filter repository.ListingFilter, sort string, limit, offset int) ([]*entity.Listing, int64, error) {
	var out []*entity.Listing
	for _, l := range r.listings {
		if r.matches(l, filter) {
			cp := *l
			out = append(out, &cp)
		}
	}
	return out, int64(len(out)), nil
}

func (r *fakeListingRepo) SearchByName(ctx context.Context, query string, filter repository.ListingFilter, limit, offset int) ([]*entity.Listing, int64, error) {
	var out []*entity.Listing
	for _, l := range r.listings {
		if r.matches(l, filter) && strings.Contains(strings.ToLower(l.Name), strings.ToLower(query)) {
			cp := *l
			out = append(out, &cp)
		}
	}
	return out, int64(len(out)), nil
}

func (r *fakeListingRepo) ListBySellerID(ctx context.Context, sellerID string, reviewState string, limit, offset int) ([]*entity.Listing, int64, error) {
	return r.List(ctx, repository.ListingFilter{SellerID: sellerID, ReviewState: reviewState}, "", limit, offset)
}

type fakePaymentRepo struct {
	payments map[string]*entity.OnlinePayment
	seq      int
}

func newFakePaymentRepo() *fakePaymentRepo {
	return &fakePaymentRepo{payments: make(map[string]*entity.OnlinePayment)}
}

func (r *fakePaymentRepo) Create(ctx context.Context, payment *entity.OnlinePayment) error {
	if payment.ID == "" {
		r.seq++
		payment.ID = fmt.Sprintf("payment-%d", r.seq)
	}
	cp := *payment
	r.payments[payment.ID] = &cp
	return nil
}

func (r *fakePaymentRepo) GetByID(ctx context.Context, id string) (*entity.OnlinePayment, error) {
	p, ok := r.payments[id]
	if !ok {
		return nil, errors.NotFound("Payment", nil)
	}
	cp := *p
	return &cp, nil
}

func (r *fakePaymentRepo) GetByTransactionID(ctx context.Context, transactionID string) (*entity.OnlinePayment, error) {
	for _, p := range r.payments {
		if p.TransactionID == transactionID {
			cp := *p
			return &cp, nil
		}
	}
	return nil, errors.NotFound("Payment", nil)
}

func (r *fakePaymentRepo) Mutate(ctx context.Context, id string, fn func(payment *entity.OnlinePayment) error) (*entity.OnlinePayment, error) {
	p, ok := r.payments[id]
	if !ok {
		return nil, errors.NotFound("Payment", nil)
	}
	cp := *p
	if err := fn(&cp); err != nil {
		return nil, err
	}
	r.payments[id] = &cp
	out := cp
	return &out, nil
}

func (r *fakePaymentRepo) ListByAuctionID(ctx context.Context, auctionID string, limit, offset int) ([]*entity.OnlinePayment, int64, error) {
	var out []*entity.OnlinePayment
	for _, p := range r.payments {
		if p.AuctionID == auctionID {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, int64(len(out)), nil
}

func (r *fakePaymentRepo) ListByStatus(ctx context.Context, status string, limit, offset int) ([]*entity.OnlinePayment, int64, error) {
	var out []*entity.OnlinePayment
	for _, p := range r.payments {
		if status == "" || p.Status == status {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, int64(len(out)), nil
}

type fakeDepositRepo struct {
	deposits map[string]*entity.BankDeposit
	seq      int
}

func newFakeDepositRepo() *fakeDepositRepo {
	return &fakeDepositRepo{deposits: make(map[string]*entity.BankDeposit)}
}

func (r *fakeDepositRepo) Create(ctx context.Context, deposit *entity.BankDeposit) error {
	if deposit.ID == "" {
		r.seq++
		deposit.ID = fmt.Sprintf("deposit-%d", r.seq)
	}
	cp := *deposit
	r.deposits[deposit.ID] = &cp
	return nil
}

func (r *fakeDepositRepo) GetByID(ctx context.Context, id string) (*entity.BankDeposit, error) {
	d, ok := r.deposits[id]
	if !ok {
		return nil, errors.NotFound("Deposit", nil)
	}
	cp := *d
	return &cp, nil
}

func (r *fakeDepositRepo) Mutate(ctx context.Context, id string, fn func(deposit *entity.BankDeposit) error) (*entity.BankDeposit, error) {
	d, ok := r.deposits[id]
	if !ok {
		return nil, errors.NotFound("Deposit", nil)
	}
	cp := *d
	if err := fn(&cp); err != nil {
		return nil, err
	}
	r.deposits[id] = &cp
	out := cp
	return &out, nil
}

func (r *fakeDepositRepo) ListByStatus(ctx context.Context, status string, limit, offset int) ([]*entity.BankDeposit, int64, error) {
	var out []*entity.BankDeposit
	for _, d := range r.deposits {
		if status == "" || d.Status == status {
			cp := *d
			out = append(out, &cp)
		}
	}
	return out, int64(len(out)), nil
}

func (r *fakeDepositRepo) ListByAuctionID(ctx context.Context, auctionID string, limit, offset int) ([]*entity.BankDeposit, int64, error) {
	var out []*entity.BankDeposit
	for _, d := range r.deposits {
		if d.AuctionID == auctionID {
			cp := *d
			out = append(out, &cp)
		}
	}
	return out, int64(len(out)), nil
}

type fakeUserRepo struct {
	users map[string]*entity.User
}

func newFakeUserRepo(users ...*entity.User) *fakeUserRepo {
	r := &fakeUserRepo{users: make(map[string]*entity.User)}
	for _, u := range users {
		cp := *u
		r.users[u.ID] = &cp
	}
	return r
}

func (r *fakeUserRepo) Create(ctx context.Context, user *entity.User) error {
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, errors.NotFound("User", nil)
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, errors.NotFound("User", nil)
}

func (r *fakeUserRepo) Update(ctx context.Context, user *entity.User) error {
	if _, ok := r.users[user.ID]; !ok {
		return errors.NotFound("User", nil)
	}
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

func (r *fakeUserRepo) Mutate(ctx context.Context, id string, fn func(user *entity.User) error) (*entity.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, errors.NotFound("User", nil)
	}
	cp := *u
	if err := fn(&cp); err != nil {
		return nil, err
	}
	r.users[id] = &cp
	out := cp
	return &out, nil
}

func (r *fakeUserRepo) FindByField(ctx context.Context, field, value string, limit, offset int) ([]*entity.User, int64, error) {
	var out []*entity.User
	for _, u := range r.users {
		match := false
		switch field {
		case "role":
			match = u.Role == value
		case "email":
			match = u.Email == value
		}
		if match {
			cp := *u
			out = append(out, &cp)
		}
	}
	return out, int64(len(out)), nil
}
