package handlers

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"server/internal/auth"
	"server/internal/domain"
	"server/internal/middleware"
	"server/internal/payment"
	"server/internal/storage"
)

type fakeUserRepo struct {
	byUsername map[string]*domain.User
	seq        int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byUsername: map[string]*domain.User{}}
}

func (f *fakeUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	if _, ok := f.byUsername[user.Username]; ok {
		return nil, domain.ErrConflict
	}
	f.seq++
	stored := *user
	stored.ID = fmt.Sprintf("user-%d", f.seq)
	stored.CreatedAt = time.Now()
	f.byUsername[user.Username] = &stored
	out := stored
	return &out, nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	for _, u := range f.byUsername {
		if u.ID == id {
			out := *u
			return &out, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeUserRepo) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	u, ok := f.byUsername[username]
	if !ok {
		return nil, domain.ErrNotFound
	}
	out := *u
	return &out, nil
}

func (f *fakeUserRepo) SetRole(_ context.Context, username string, role domain.UserRole) (*domain.User, error) {
	u, ok := f.byUsername[username]
	if !ok {
		return nil, domain.ErrNotFound
	}
	u.Role = role
	out := *u
	return &out, nil
}

type fakeCampaignRepo struct {
	items []*domain.Campaign
	seq   int
}

func (f *fakeCampaignRepo) Create(_ context.Context, c *domain.Campaign) (*domain.Campaign, error) {
	f.seq++
	stored := *c
	stored.ID = fmt.Sprintf("33333333-0000-0000-0000-%012d", f.seq)
	if stored.PaymentStatus == "" {
		stored.PaymentStatus = domain.PaymentStatusPending
	}
	stored.CreatedAt = time.Now().Add(time.Duration(f.seq) * time.Second)
	f.items = append(f.items, &stored)
	out := stored
	return &out, nil
}

func (f *fakeCampaignRepo) GetByID(_ context.Context, id string) (*domain.Campaign, error) {
	for _, c := range f.items {
		if c.ID == id {
			out := *c
			return &out, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeCampaignRepo) List(_ context.Context) ([]domain.Campaign, error) {
	out := make([]domain.Campaign, 0, len(f.items))
	for i := len(f.items) - 1; i >= 0; i-- {
		out = append(out, *f.items[i])
	}
	return out, nil
}

func (f *fakeCampaignRepo) AddToRaised(_ context.Context, id string, amount int64) (*domain.Campaign, error) {
	for _, c := range f.items {
		if c.ID == id {
			c.AmountRaised += amount
			out := *c
			return &out, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeCampaignRepo) Delete(_ context.Context, id string) error {
	for i, c := range f.items {
		if c.ID == id {
			f.items = append(f.items[:i], f.items[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

type fakeApplicationRepo struct {
	items     []*domain.CampaignApplication
	usernames map[string]string
	seq       int
}

func newFakeApplicationRepo() *fakeApplicationRepo {
	return &fakeApplicationRepo{usernames: map[string]string{}}
}

func (f *fakeApplicationRepo) Create(_ context.Context, app *domain.CampaignApplication) (*domain.CampaignApplication, error) {
	f.seq++
	stored := *app
	stored.ID = fmt.Sprintf("44444444-0000-0000-0000-%012d", f.seq)
	stored.Status = domain.ApplicationStatusPending
	stored.PaymentStatus = domain.PaymentStatusPending
	stored.AmountPaid = 0
	stored.CreatedAt = time.Now().Add(time.Duration(f.seq) * time.Second)
	f.items = append(f.items, &stored)
	out := stored
	return &out, nil
}

func (f *fakeApplicationRepo) ListPending(_ context.Context) ([]domain.CampaignApplication, error) {
	var out []domain.CampaignApplication
	for i := len(f.items) - 1; i >= 0; i-- {
		if f.items[i].Status != domain.ApplicationStatusPending {
			continue
		}
		item := *f.items[i]
		item.Username = f.usernames[item.UserID]
		out = append(out, item)
	}
	return out, nil
}

func (f *fakeApplicationRepo) ListByUser(_ context.Context, userID string) ([]domain.CampaignApplication, error) {
	var out []domain.CampaignApplication
	for i := len(f.items) - 1; i >= 0; i-- {
		if f.items[i].UserID == userID {
			out = append(out, *f.items[i])
		}
	}
	return out, nil
}

func (f *fakeApplicationRepo) Transition(_ context.Context, id string, to domain.ApplicationStatus) (*domain.CampaignApplication, error) {
	for _, app := range f.items {
		if app.ID == id && app.Status == domain.ApplicationStatusPending {
			app.Status = to
			out := *app
			return &out, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeApplicationRepo) UpdateNotes(_ context.Context, id, notes string) (*domain.CampaignApplication, error) {
	for _, app := range f.items {
		if app.ID == id {
			app.AdminNotes = notes
			out := *app
			return &out, nil
		}
	}
	return nil, domain.ErrNotFound
}

type fakeDonationRepo struct {
	items     []*domain.Donation
	campaigns *fakeCampaignRepo
	seq       int
}

func (f *fakeDonationRepo) Create(_ context.Context, d *domain.Donation) (*domain.Donation, error) {
	f.seq++
	stored := *d
	stored.ID = fmt.Sprintf("donation-%d", f.seq)
	stored.CreatedAt = time.Now()
	f.items = append(f.items, &stored)
	out := stored
	return &out, nil
}

func (f *fakeDonationRepo) ListByUser(_ context.Context, userID string) ([]domain.Donation, error) {
	var out []domain.Donation
	for i := len(f.items) - 1; i >= 0; i-- {
		if f.items[i].UserID != userID {
			continue
		}
		item := *f.items[i]
		if f.campaigns != nil {
			if c, err := f.campaigns.GetByID(context.Background(), item.CampaignID); err == nil {
				item.Campaign = c
			}
		}
		out = append(out, item)
	}
	return out, nil
}

type fakeGateway struct {
	orders      []payment.Order
	validOrder  string
	validPay    string
	validSig    string
	orderErr    error
	nextOrderID string
}

func (f *fakeGateway) CreateOrder(_ context.Context, amountRupees int64, receipt string) (*payment.Order, error) {
	if f.orderErr != nil {
		return nil, f.orderErr
	}
	id := f.nextOrderID
	if id == "" {
		id = fmt.Sprintf("order_%d", len(f.orders)+1)
	}
	order := payment.Order{ID: id, Amount: amountRupees * 100, Currency: "INR"}
	f.orders = append(f.orders, order)
	return &order, nil
}

func (f *fakeGateway) VerifySignature(orderID, paymentID, signature string) bool {
	return orderID == f.validOrder && paymentID == f.validPay && signature == f.validSig
}

type testApp struct {
	*App
	users        *fakeUserRepo
	campaigns    *fakeCampaignRepo
	applications *fakeApplicationRepo
	donations    *fakeDonationRepo
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	tokens, err := auth.NewTokenManager("test-secret")
	if err != nil {
		t.Fatalf("NewTokenManager() error: %v", err)
	}
	store, err := storage.NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore() error: %v", err)
	}
	users := newFakeUserRepo()
	campaigns := &fakeCampaignRepo{}
	applications := newFakeApplicationRepo()
	donations := &fakeDonationRepo{campaigns: campaigns}
	return &testApp{
		App: &App{
			Logger:       zerolog.Nop(),
			Users:        users,
			Campaigns:    campaigns,
			Applications: applications,
			Donations:    donations,
			Tokens:       tokens,
			Store:        store,
		},
		users:        users,
		campaigns:    campaigns,
		applications: applications,
		donations:    donations,
	}
}

// asUser attaches an authenticated identity, bypassing the router's auth
// middleware for direct handler calls.
func asUser(req *http.Request, userID string, role domain.UserRole) *http.Request {
	ctx := middleware.ContextWithIdentity(req.Context(), &auth.Identity{UserID: userID, Role: role})
	return req.WithContext(ctx)
}

// withURLParam injects a chi route parameter for direct handler calls.
func withURLParam(req *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func doJSON(t *testing.T, h http.HandlerFunc, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	rr := httptest.NewRecorder()
	h(rr, req)
	return rr
}
