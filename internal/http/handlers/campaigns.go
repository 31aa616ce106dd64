package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"server/internal/domain"
)

// campaignID extracts and validates the id route parameter. Malformed ids are
// treated as unknown campaigns rather than surfacing a driver error.
func campaignID(r *http.Request) (string, bool) {
	id := chi.URLParam(r, "id")
	if _, err := uuid.Parse(id); err != nil {
		return "", false
	}
	return id, true
}

// ListCampaigns returns all campaigns, newest first.
func (a *App) ListCampaigns(w http.ResponseWriter, r *http.Request) {
	campaigns, err := a.Campaigns.List(r.Context())
	if err != nil {
		a.Logger.Error().Err(err).Msg("list campaigns failed")
		a.error(w, http.StatusInternalServerError, "server error")
		return
	}
	items := make([]campaignJSON, 0, len(campaigns))
	for i := range campaigns {
		items = append(items, toCampaignJSON(&campaigns[i]))
	}
	a.json(w, http.StatusOK, items)
}

// GetCampaign returns a single campaign.
func (a *App) GetCampaign(w http.ResponseWriter, r *http.Request) {
	id, ok := campaignID(r)
	if !ok {
		a.error(w, http.StatusNotFound, "campaign not found")
		return
	}
	campaign, err := a.Campaigns.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			a.error(w, http.StatusNotFound, "campaign not found")
			return
		}
		a.Logger.Error().Err(err).Msg("get campaign failed")
		a.error(w, http.StatusInternalServerError, "server error")
		return
	}
	a.json(w, http.StatusOK, toCampaignJSON(campaign))
}

type createCampaignRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Goal        int64  `json:"goal"`
}

// CreateCampaign creates a campaign directly. Admin only.
func (a *App) CreateCampaign(w http.ResponseWriter, r *http.Request) {
	var req createCampaignRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "invalid data")
		return
	}
	if req.Title == "" || req.Description == "" || req.Goal <= 0 {
		a.error(w, http.StatusBadRequest, "invalid data")
		return
	}
	campaign, err := a.Campaigns.Create(r.Context(), &domain.Campaign{
		Title:         req.Title,
		Description:   req.Description,
		Goal:          req.Goal,
		PaymentStatus: domain.PaymentStatusPending,
	})
	if err != nil {
		a.Logger.Error().Err(err).Msg("create campaign failed")
		a.error(w, http.StatusInternalServerError, "server error")
		return
	}
	a.json(w, http.StatusCreated, toCampaignJSON(campaign))
}

type donateRequest struct {
	Amount    int64  `json:"amount"`
	OrderID   string `json:"razorpay_order_id"`
	PaymentID string `json:"razorpay_payment_id"`
	Signature string `json:"razorpay_signature"`
}

// Donate credits an amount to a campaign and records the donation. When a
// payment gateway is configured, the checkout signature is verified before
// any credit happens; the client-reported amount alone is never trusted.
func (a *App) Donate(w http.ResponseWriter, r *http.Request) {
	identity := a.identity(r)
	if identity == nil {
		a.error(w, http.StatusUnauthorized, domain.ErrUnauthorized.Error())
		return
	}
	id, ok := campaignID(r)
	if !ok {
		a.error(w, http.StatusNotFound, "campaign not found")
		return
	}
	var req donateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if req.Amount <= 0 {
		a.error(w, http.StatusBadRequest, domain.ErrInvalidAmount.Error())
		return
	}
	if a.Gateway != nil {
		if req.OrderID == "" || req.PaymentID == "" || req.Signature == "" {
			a.error(w, http.StatusBadRequest, "payment verification required")
			return
		}
		if !a.Gateway.VerifySignature(req.OrderID, req.PaymentID, req.Signature) {
			a.error(w, http.StatusBadRequest, "payment verification failed")
			return
		}
	}

	campaign, err := a.Campaigns.AddToRaised(r.Context(), id, req.Amount)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			a.error(w, http.StatusNotFound, "campaign not found")
			return
		}
		a.Logger.Error().Err(err).Msg("credit campaign failed")
		a.error(w, http.StatusInternalServerError, "server error")
		return
	}

	_, err = a.Donations.Create(r.Context(), &domain.Donation{
		UserID:     identity.UserID,
		CampaignID: campaign.ID,
		Amount:     req.Amount,
	})
	if err != nil {
		a.Logger.Error().Err(err).Str("campaign_id", campaign.ID).Msg("record donation failed")
		a.error(w, http.StatusInternalServerError, "server error")
		return
	}
	a.json(w, http.StatusOK, toCampaignJSON(campaign))
}

// DeleteCampaign removes a campaign. Admin only.
func (a *App) DeleteCampaign(w http.ResponseWriter, r *http.Request) {
	id, ok := campaignID(r)
	if !ok {
		a.error(w, http.StatusNotFound, "campaign not found")
		return
	}
	if err := a.Campaigns.Delete(r.Context(), id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			a.error(w, http.StatusNotFound, "campaign not found")
			return
		}
		a.Logger.Error().Err(err).Msg("delete campaign failed")
		a.error(w, http.StatusInternalServerError, "server error")
		return
	}
	a.message(w, r, http.StatusOK, "campaign_deleted")
}
