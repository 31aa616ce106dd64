package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"server/internal/domain"
)

func seedCampaign(t *testing.T, app *testApp, title string, goal int64) *domain.Campaign {
	t.Helper()
	c, err := app.campaigns.Create(context.Background(), &domain.Campaign{Title: title, Description: title + " fund", Goal: goal})
	if err != nil {
		t.Fatalf("seed campaign: %v", err)
	}
	return c
}

func TestCreateThenGetCampaign(t *testing.T) {
	app := newTestApp(t)

	body := `{"title":"Clean water","description":"Wells for the village","goal":50000}`
	req := asUser(httptest.NewRequest("POST", "/api/campaigns", strings.NewReader(body)), "admin-1", domain.UserRoleAdmin)
	rr := doJSON(t, app.CreateCampaign, req)
	if rr.Code != http.StatusCreated {
		t.Fatalf("create status = %d, body %s", rr.Code, rr.Body)
	}
	var created campaignJSON
	if err := json.NewDecoder(rr.Body).Decode(&created); err != nil {
		t.Fatalf("decode created campaign: %v", err)
	}

	get := withURLParam(httptest.NewRequest("GET", "/api/campaigns/"+created.ID, nil), "id", created.ID)
	rr = doJSON(t, app.GetCampaign, get)
	if rr.Code != http.StatusOK {
		t.Fatalf("get status = %d", rr.Code)
	}
	var got campaignJSON
	if err := json.NewDecoder(rr.Body).Decode(&got); err != nil {
		t.Fatalf("decode campaign: %v", err)
	}
	if got.Title != "Clean water" || got.Description != "Wells for the village" || got.Goal != 50000 {
		t.Fatalf("fetched campaign = %+v", got)
	}
	if got.AmountRaised != 0 || got.Progress != 0 {
		t.Fatalf("new campaign should start unfunded, got raised=%d progress=%d", got.AmountRaised, got.Progress)
	}
}

func TestCreateCampaignValidation(t *testing.T) {
	app := newTestApp(t)
	for _, body := range []string{
		`{"description":"d","goal":10}`,
		`{"title":"t","goal":10}`,
		`{"title":"t","description":"d","goal":0}`,
		`{"title":"t","description":"d","goal":-5}`,
		`not json`,
	} {
		req := asUser(httptest.NewRequest("POST", "/api/campaigns", strings.NewReader(body)), "admin-1", domain.UserRoleAdmin)
		rr := doJSON(t, app.CreateCampaign, req)
		if rr.Code != http.StatusBadRequest {
			t.Fatalf("body %s: status = %d, want 400", body, rr.Code)
		}
	}
	if len(app.campaigns.items) != 0 {
		t.Fatalf("invalid requests created %d campaigns", len(app.campaigns.items))
	}
}

func TestListCampaignsNewestFirst(t *testing.T) {
	app := newTestApp(t)
	seedCampaign(t, app, "First", 100)
	seedCampaign(t, app, "Second", 100)

	rr := doJSON(t, app.ListCampaigns, httptest.NewRequest("GET", "/api/campaigns", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	var items []campaignJSON
	if err := json.NewDecoder(rr.Body).Decode(&items); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(items) != 2 || items[0].Title != "Second" || items[1].Title != "First" {
		t.Fatalf("list order wrong: %+v", items)
	}
}

func donate(t *testing.T, app *testApp, campaignID, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest("POST", "/api/campaigns/"+campaignID+"/donate", strings.NewReader(body))
	req = asUser(req, "user-1", domain.UserRoleUser)
	req = withURLParam(req, "id", campaignID)
	return doJSON(t, app.Donate, req)
}

func TestDonateCreditsAndRecords(t *testing.T) {
	app := newTestApp(t)
	c := seedCampaign(t, app, "Books", 200)

	rr := donate(t, app, c.ID, `{"amount":50}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("donate status = %d, body %s", rr.Code, rr.Body)
	}
	var updated campaignJSON
	if err := json.NewDecoder(rr.Body).Decode(&updated); err != nil {
		t.Fatalf("decode updated campaign: %v", err)
	}
	if updated.AmountRaised != 50 {
		t.Fatalf("amountRaised = %d, want 50", updated.AmountRaised)
	}
	if updated.Progress != 25 {
		t.Fatalf("progress = %d, want 25", updated.Progress)
	}
	if len(app.donations.items) != 1 || app.donations.items[0].Amount != 50 || app.donations.items[0].UserID != "user-1" {
		t.Fatalf("donation record = %+v", app.donations.items)
	}

	// Overfund and confirm the progress cap.
	rr = donate(t, app, c.ID, `{"amount":400}`)
	if err := json.NewDecoder(rr.Body).Decode(&updated); err != nil {
		t.Fatalf("decode updated campaign: %v", err)
	}
	if updated.AmountRaised != 450 || updated.Progress != 100 {
		t.Fatalf("raised=%d progress=%d, want 450/100", updated.AmountRaised, updated.Progress)
	}
}

func TestDonateRejectsNonPositiveAmounts(t *testing.T) {
	app := newTestApp(t)
	c := seedCampaign(t, app, "Books", 200)

	for _, body := range []string{`{"amount":0}`, `{"amount":-10}`, `{}`} {
		rr := donate(t, app, c.ID, body)
		if rr.Code != http.StatusBadRequest {
			t.Fatalf("body %s: status = %d, want 400", body, rr.Code)
		}
	}
	got, _ := app.campaigns.GetByID(context.Background(), c.ID)
	if got.AmountRaised != 0 {
		t.Fatalf("rejected donations changed the total: %d", got.AmountRaised)
	}
	if len(app.donations.items) != 0 {
		t.Fatalf("rejected donations were recorded: %d", len(app.donations.items))
	}
}

func TestDonateUnknownCampaign(t *testing.T) {
	app := newTestApp(t)
	for _, id := range []string{"33333333-0000-0000-0000-000000000099", "not-a-uuid"} {
		rr := donate(t, app, id, `{"amount":10}`)
		if rr.Code != http.StatusNotFound {
			t.Fatalf("id %q: status = %d, want 404", id, rr.Code)
		}
	}
}

func TestDonateVerifiesGatewaySignature(t *testing.T) {
	app := newTestApp(t)
	app.Gateway = &fakeGateway{validOrder: "order_1", validPay: "pay_1", validSig: "sig_ok"}
	c := seedCampaign(t, app, "Books", 200)

	// Missing checkout fields.
	rr := donate(t, app, c.ID, `{"amount":50}`)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("missing fields: status = %d, want 400", rr.Code)
	}

	// Wrong signature credits nothing.
	rr = donate(t, app, c.ID, `{"amount":50,"razorpay_order_id":"order_1","razorpay_payment_id":"pay_1","razorpay_signature":"forged"}`)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("forged signature: status = %d, want 400", rr.Code)
	}
	got, _ := app.campaigns.GetByID(context.Background(), c.ID)
	if got.AmountRaised != 0 || len(app.donations.items) != 0 {
		t.Fatalf("forged signature credited funds: raised=%d donations=%d", got.AmountRaised, len(app.donations.items))
	}

	// Valid signature goes through.
	rr = donate(t, app, c.ID, `{"amount":50,"razorpay_order_id":"order_1","razorpay_payment_id":"pay_1","razorpay_signature":"sig_ok"}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("valid signature: status = %d, body %s", rr.Code, rr.Body)
	}
	got, _ = app.campaigns.GetByID(context.Background(), c.ID)
	if got.AmountRaised != 50 {
		t.Fatalf("amountRaised = %d, want 50", got.AmountRaised)
	}
}

func TestDeleteCampaign(t *testing.T) {
	app := newTestApp(t)
	c := seedCampaign(t, app, "Books", 200)

	req := asUser(httptest.NewRequest("DELETE", "/api/campaigns/"+c.ID, nil), "admin-1", domain.UserRoleAdmin)
	req = withURLParam(req, "id", c.ID)
	rr := doJSON(t, app.DeleteCampaign, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("delete status = %d", rr.Code)
	}

	req = asUser(httptest.NewRequest("DELETE", "/api/campaigns/"+c.ID, nil), "admin-1", domain.UserRoleAdmin)
	req = withURLParam(req, "id", c.ID)
	rr = doJSON(t, app.DeleteCampaign, req)
	if rr.Code != http.StatusNotFound {
		t.Fatalf("second delete status = %d, want 404", rr.Code)
	}
}
