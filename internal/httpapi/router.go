// Package httpapi exposes the dashboard over HTTP: credential and OAuth
// auth flows, invoice CRUD, customer and dashboard reads, and the seed
// endpoint. Responses are JSON plus see-other redirects for form flows.
package httpapi

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/acmedash/acmedash/internal/auth"
	"github.com/acmedash/acmedash/internal/customer"
	"github.com/acmedash/acmedash/internal/dashboard"
	"github.com/acmedash/acmedash/internal/invoice"
	"github.com/acmedash/acmedash/internal/seed"
	"github.com/acmedash/acmedash/internal/session"
)

// Deps carries everything the router wires together.
type Deps struct {
	Logger   *slog.Logger
	Sessions *session.Manager

	Password auth.PasswordAuthenticator
	Verifier *auth.TokenVerifier
	OAuth    *auth.OAuthService

	Invoices  *invoice.Service
	Customers *customer.Service
	Dashboard *dashboard.Service
	Seeder    *seed.Seeder

	// Healthchecks back the readiness endpoint.
	Healthchecks []func(context.Context) error
}

// NewRouter assembles the HTTP surface.
func NewRouter(deps Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	authHandler := NewAuthHandler(deps.Password, deps.Verifier, deps.OAuth, deps.Sessions, deps.Logger)

	r.Post("/login", authHandler.Login)
	r.Post("/register", authHandler.Register)
	r.Post("/forgot-password", authHandler.ForgotPassword)
	r.Post("/reset-password", authHandler.ResetPassword)
	r.Post("/logout", authHandler.Logout)
	r.Get("/auth/confirm", authHandler.Confirm)

	if deps.OAuth != nil {
		r.Get("/auth/google", authHandler.GoogleSignIn)
		r.Get("/auth/google/callback", authHandler.GoogleCallback)
	}

	if deps.Seeder != nil {
		seedHandler := NewSeedHandler(deps.Seeder, deps.Logger)
		r.Get("/seed", seedHandler.Seed)
	}

	r.Get("/healthz", healthHandler(deps.Healthchecks))

	// Everything below requires a logged-in session.
	r.Group(func(r chi.Router) {
		r.Use(deps.Sessions.RequireAuth)

		dashboardHandler := NewDashboardHandler(deps.Dashboard)
		r.Get("/dashboard/cards", dashboardHandler.Cards)
		r.Get("/dashboard/revenue", dashboardHandler.Revenue)
		r.Get("/dashboard/latest-invoices", dashboardHandler.LatestInvoices)

		invoiceHandler := NewInvoiceHandler(deps.Invoices)
		r.Get("/invoices", invoiceHandler.List)
		r.Get("/invoices/pages", invoiceHandler.Pages)
		r.Get("/invoices/{id}", invoiceHandler.Get)
		r.Post("/invoices", invoiceHandler.Create)
		r.Post("/invoices/{id}", invoiceHandler.Update)
		r.Post("/invoices/{id}/delete", invoiceHandler.Delete)

		customerHandler := NewCustomerHandler(deps.Customers)
		r.Get("/customers", customerHandler.List)
		r.Get("/customers/search", customerHandler.Search)
	})

	return r
}

func healthHandler(checks []func(context.Context) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		for _, check := range checks {
			if err := check(r.Context()); err != nil {
				respondError(w, http.StatusServiceUnavailable, err.Error())
				return
			}
		}
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
