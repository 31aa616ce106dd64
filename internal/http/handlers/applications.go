package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"server/internal/domain"
	"server/internal/middleware"
	"server/internal/payment"
)

const maxUploadBytes = 10 << 20

// Apply submits a campaign application on behalf of the caller. The request
// is multipart with an optional image part; only the stored filename is kept
// on the record.
func (a *App) Apply(w http.ResponseWriter, r *http.Request) {
	identity := a.identity(r)
	if identity == nil {
		a.error(w, http.StatusUnauthorized, domain.ErrUnauthorized.Error())
		return
	}
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		a.error(w, http.StatusBadRequest, "invalid data")
		return
	}

	goal, err := strconv.ParseInt(r.FormValue("goal"), 10, 64)
	if err != nil {
		a.error(w, http.StatusBadRequest, "invalid data")
		return
	}
	title := r.FormValue("title")
	description := r.FormValue("description")
	if title == "" || description == "" || goal <= 0 {
		a.error(w, http.StatusBadRequest, "invalid data")
		return
	}

	image := ""
	if file, header, err := r.FormFile("image"); err == nil {
		defer file.Close()
		data, err := io.ReadAll(io.LimitReader(file, maxUploadBytes))
		if err != nil {
			a.error(w, http.StatusBadRequest, "invalid data")
			return
		}
		image, err = a.Store.SaveUpload(r.Context(), header.Filename, data)
		if err != nil {
			a.Logger.Error().Err(err).Msg("store upload failed")
			a.error(w, http.StatusInternalServerError, "server error")
			return
		}
	}

	_, err = a.Applications.Create(r.Context(), &domain.CampaignApplication{
		UserID:      identity.UserID,
		Title:       title,
		Description: description,
		Goal:        goal,
		Image:       image,
		Payout: domain.Payout{
			Name:    r.FormValue("payoutName"),
			Account: r.FormValue("payoutAccount"),
			IFSC:    r.FormValue("payoutIFSC"),
			UPI:     r.FormValue("payoutUPI"),
		},
	})
	if err != nil {
		a.Logger.Error().Err(err).Msg("create application failed")
		a.error(w, http.StatusInternalServerError, "server error")
		return
	}
	a.message(w, r, http.StatusCreated, "application_submitted")
}

// ListPendingApplications is the admin review queue: pending applications
// only, owner username populated.
func (a *App) ListPendingApplications(w http.ResponseWriter, r *http.Request) {
	apps, err := a.Applications.ListPending(r.Context())
	if err != nil {
		a.Logger.Error().Err(err).Msg("list applications failed")
		a.error(w, http.StatusInternalServerError, "server error")
		return
	}
	items := make([]applicationJSON, 0, len(apps))
	for i := range apps {
		items = append(items, toApplicationJSON(&apps[i]))
	}
	a.json(w, http.StatusOK, items)
}

func applicationID(r *http.Request) (string, bool) {
	id := chi.URLParam(r, "id")
	if _, err := uuid.Parse(id); err != nil {
		return "", false
	}
	return id, true
}

// ApproveApplication moves a pending application to approved and materializes
// the campaign it describes. The transition is conditional on the pending
// status, so approving twice fails the second time.
func (a *App) ApproveApplication(w http.ResponseWriter, r *http.Request) {
	id, ok := applicationID(r)
	if !ok {
		a.error(w, http.StatusNotFound, "application not found or already processed")
		return
	}
	app, err := a.Applications.Transition(r.Context(), id, domain.ApplicationStatusApproved)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			a.error(w, http.StatusNotFound, "application not found or already processed")
			return
		}
		a.Logger.Error().Err(err).Msg("approve application failed")
		a.error(w, http.StatusInternalServerError, "server error")
		return
	}
	if _, err := a.Campaigns.Create(r.Context(), app.Campaign()); err != nil {
		a.Logger.Error().Err(err).Str("application_id", app.ID).Msg("materialize campaign failed")
		a.error(w, http.StatusInternalServerError, "server error")
		return
	}
	a.message(w, r, http.StatusOK, "application_approved")
}

// RejectApplication moves a pending application to rejected, terminally.
func (a *App) RejectApplication(w http.ResponseWriter, r *http.Request) {
	id, ok := applicationID(r)
	if !ok {
		a.error(w, http.StatusNotFound, "application not found or already processed")
		return
	}
	_, err := a.Applications.Transition(r.Context(), id, domain.ApplicationStatusRejected)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			a.error(w, http.StatusNotFound, "application not found or already processed")
			return
		}
		a.Logger.Error().Err(err).Msg("reject application failed")
		a.error(w, http.StatusInternalServerError, "server error")
		return
	}
	a.message(w, r, http.StatusOK, "application_rejected")
}

// MyApplications lists the caller's applications in every status.
func (a *App) MyApplications(w http.ResponseWriter, r *http.Request) {
	identity := a.identity(r)
	if identity == nil {
		a.error(w, http.StatusUnauthorized, domain.ErrUnauthorized.Error())
		return
	}
	apps, err := a.Applications.ListByUser(r.Context(), identity.UserID)
	if err != nil {
		a.Logger.Error().Err(err).Msg("list user applications failed")
		a.error(w, http.StatusInternalServerError, "server error")
		return
	}
	items := make([]applicationJSON, 0, len(apps))
	for i := range apps {
		items = append(items, toApplicationJSON(&apps[i]))
	}
	a.json(w, http.StatusOK, items)
}

type updateNotesRequest struct {
	Notes string `json:"notes"`
}

// UpdateApplicationNotes sets the free-text admin annotation. No workflow
// effect.
func (a *App) UpdateApplicationNotes(w http.ResponseWriter, r *http.Request) {
	id, ok := applicationID(r)
	if !ok {
		a.error(w, http.StatusNotFound, "application not found")
		return
	}
	var req updateNotesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "invalid payload")
		return
	}
	app, err := a.Applications.UpdateNotes(r.Context(), id, req.Notes)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			a.error(w, http.StatusNotFound, "application not found")
			return
		}
		a.Logger.Error().Err(err).Msg("update notes failed")
		a.error(w, http.StatusInternalServerError, "server error")
		return
	}
	locale := middleware.LocaleFromContext(r.Context())
	a.json(w, http.StatusOK, map[string]string{
		"message":    messageText(locale, "notes_updated"),
		"adminNotes": app.AdminNotes,
	})
}

type createOrderRequest struct {
	Amount int64 `json:"amount"`
}

// CreateOrder registers a payment-gateway order the client completes through
// checkout before donating.
func (a *App) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var req createOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if req.Amount <= 0 {
		a.error(w, http.StatusBadRequest, domain.ErrInvalidAmount.Error())
		return
	}
	if a.Gateway == nil {
		a.error(w, http.StatusServiceUnavailable, payment.ErrNotConfigured.Error())
		return
	}
	order, err := a.Gateway.CreateOrder(r.Context(), req.Amount, uuid.NewString())
	if err != nil {
		a.Logger.Error().Err(err).Msg("create order failed")
		a.error(w, http.StatusInternalServerError, "failed to create order")
		return
	}
	a.json(w, http.StatusOK, order)
}
