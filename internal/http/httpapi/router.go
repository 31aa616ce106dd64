// Package httpapi wires handlers and middleware into the chi router.
package httpapi

import (
	stdhttp "net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"server/internal/http/handlers"
	"server/internal/infra"
	"server/internal/middleware"
)

// NewRouter builds the full REST surface. The lookup is optional and feeds
// locale detection for localized confirmation messages.
func NewRouter(app *handlers.App, cfg *infra.Config, lookup middleware.CountryLookup) stdhttp.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RealIP, chimw.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.CORS(cfg.AllowedOrigins))
	r.Use(middleware.Locale("en", lookup))
	r.Use(middleware.Logger(app.Logger))
	r.Use(middleware.RateLimit(cfg.RateLimitPerMin, time.Minute))

	authed := middleware.RequireAuth(app.Tokens)

	r.Get("/api/health", app.Health)

	r.Route("/api/auth", func(r chi.Router) {
		r.Post("/register", app.Register)
		r.Post("/login", app.Login)
		r.With(authed).Get("/donations", app.MyDonations)
	})

	r.Route("/api/campaigns", func(r chi.Router) {
		r.Get("/", app.ListCampaigns)
		r.Get("/{id}", app.GetCampaign)
		r.With(authed, middleware.RequireAdmin).Post("/", app.CreateCampaign)
		r.With(authed).Post("/{id}/donate", app.Donate)
		r.With(authed, middleware.RequireAdmin).Delete("/{id}", app.DeleteCampaign)
	})

	r.Route("/api/applications", func(r chi.Router) {
		r.With(authed).Post("/", app.Apply)
		r.With(authed, middleware.RequireAdmin).Get("/", app.ListPendingApplications)
		r.With(authed).Post("/create-order", app.CreateOrder)
		r.With(authed).Get("/user", app.MyApplications)
		r.With(authed, middleware.RequireAdmin).Post("/{id}/approve", app.ApproveApplication)
		r.With(authed, middleware.RequireAdmin).Post("/{id}/reject", app.RejectApplication)
		r.With(authed, middleware.RequireAdmin).Patch("/{id}/notes", app.UpdateApplicationNotes)
	})

	r.Get("/uploads/{filename}", app.ServeUpload)

	return r
}
