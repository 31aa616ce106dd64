// Package handlers implements the REST API surface of the crowdfunding
// service. Handlers depend on repository and gateway interfaces only, so
// tests exercise them with in-memory fakes.
package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"server/internal/auth"
	"server/internal/domain"
	"server/internal/middleware"
	"server/internal/payment"
	"server/internal/storage"
)

// App bundles the dependencies shared by all handlers.
type App struct {
	Logger       zerolog.Logger
	Users        domain.UserRepository
	Campaigns    domain.CampaignRepository
	Applications domain.ApplicationRepository
	Donations    domain.DonationRepository
	Tokens       *auth.TokenManager
	Store        *storage.FileStore
	// Gateway is nil when no payment credentials are configured; donate then
	// credits amounts directly (development mode).
	Gateway payment.Gateway
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (a *App) error(w http.ResponseWriter, code int, msg string) {
	a.json(w, code, map[string]string{"error": msg})
}

// message writes a `{"message": ...}` body localized for the request.
func (a *App) message(w http.ResponseWriter, r *http.Request, code int, key string) {
	locale := middleware.LocaleFromContext(r.Context())
	a.json(w, code, map[string]string{"message": messageText(locale, key)})
}

func (a *App) identity(r *http.Request) *auth.Identity {
	return middleware.IdentityFromContext(r.Context())
}

type campaignJSON struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	Goal          int64     `json:"goal"`
	Image         string    `json:"image,omitempty"`
	PayoutName    string    `json:"payoutName,omitempty"`
	PayoutAccount string    `json:"payoutAccount,omitempty"`
	PayoutIFSC    string    `json:"payoutIFSC,omitempty"`
	PayoutUPI     string    `json:"payoutUPI,omitempty"`
	PaymentStatus string    `json:"paymentStatus"`
	PaymentID     string    `json:"paymentId,omitempty"`
	AmountPaid    int64     `json:"amountPaid"`
	AmountRaised  int64     `json:"amountRaised"`
	Progress      int       `json:"progress"`
	CreatedAt     time.Time `json:"createdAt"`
}

func toCampaignJSON(c *domain.Campaign) campaignJSON {
	return campaignJSON{
		ID:            c.ID,
		Title:         c.Title,
		Description:   c.Description,
		Goal:          c.Goal,
		Image:         c.Image,
		PayoutName:    c.Payout.Name,
		PayoutAccount: c.Payout.Account,
		PayoutIFSC:    c.Payout.IFSC,
		PayoutUPI:     c.Payout.UPI,
		PaymentStatus: string(c.PaymentStatus),
		PaymentID:     c.PaymentID,
		AmountPaid:    c.AmountPaid,
		AmountRaised:  c.AmountRaised,
		Progress:      c.Progress(),
		CreatedAt:     c.CreatedAt,
	}
}

type applicationJSON struct {
	ID            string    `json:"id"`
	User          string    `json:"user"`
	Username      string    `json:"username,omitempty"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	Goal          int64     `json:"goal"`
	Image         string    `json:"image,omitempty"`
	PayoutName    string    `json:"payoutName,omitempty"`
	PayoutAccount string    `json:"payoutAccount,omitempty"`
	PayoutIFSC    string    `json:"payoutIFSC,omitempty"`
	PayoutUPI     string    `json:"payoutUPI,omitempty"`
	PaymentStatus string    `json:"paymentStatus"`
	AmountPaid    int64     `json:"amountPaid"`
	Status        string    `json:"status"`
	AdminNotes    string    `json:"adminNotes"`
	CreatedAt     time.Time `json:"createdAt"`
}

func toApplicationJSON(app *domain.CampaignApplication) applicationJSON {
	return applicationJSON{
		ID:            app.ID,
		User:          app.UserID,
		Username:      app.Username,
		Title:         app.Title,
		Description:   app.Description,
		Goal:          app.Goal,
		Image:         app.Image,
		PayoutName:    app.Payout.Name,
		PayoutAccount: app.Payout.Account,
		PayoutIFSC:    app.Payout.IFSC,
		PayoutUPI:     app.Payout.UPI,
		PaymentStatus: string(app.PaymentStatus),
		AmountPaid:    app.AmountPaid,
		Status:        string(app.Status),
		AdminNotes:    app.AdminNotes,
		CreatedAt:     app.CreatedAt,
	}
}

type donationJSON struct {
	ID        string        `json:"id"`
	Amount    int64         `json:"amount"`
	CreatedAt time.Time     `json:"createdAt"`
	Campaign  *campaignJSON `json:"campaign,omitempty"`
}

func toDonationJSON(d *domain.Donation) donationJSON {
	out := donationJSON{ID: d.ID, Amount: d.Amount, CreatedAt: d.CreatedAt}
	if d.Campaign != nil {
		c := toCampaignJSON(d.Campaign)
		out.Campaign = &c
	}
	return out
}
