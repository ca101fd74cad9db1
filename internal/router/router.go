// Package router sets up all HTTP routes and middleware chains for the
// storefront. Shopper and admin routes share the session and CSRF stack;
// health and metrics endpoints sit outside it.
package router

import (
	"encoding/json"
	"io/fs"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"zebaish/internal/handlers"
	"zebaish/internal/imaging"
	"zebaish/internal/metrics"
	"zebaish/internal/middleware"
	"zebaish/internal/session"
)

// Deps is everything the router wires together.
type Deps struct {
	Sessions     *session.Store
	Shop         *handlers.Shop
	Admin        *handlers.Admin
	Metrics      *metrics.Storefront
	Gatherer     prometheus.Gatherer // served at /metrics; nil disables it
	Static       fs.FS               // served at /static/; nil disables it
	FormLimiter  *middleware.RateLimiter
	SecureCookie bool
	ProductCount func() int
}

// New creates and returns the configured Chi router with all middleware
// and route groups wired up.
func New(d Deps) chi.Router {
	r := chi.NewRouter()

	// Global middleware, applied to every request.
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger(d.Metrics))
	r.Use(middleware.SecureHeaders)
	r.Use(chimw.StripSlashes)

	r.Get("/health", healthHandler(d.ProductCount))
	if d.Gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(d.Gatherer, promhttp.HandlerOpts{}))
	}
	if d.Static != nil {
		r.Handle("/static/*", http.StripPrefix("/static/", staticHandler(d.Static)))
	}

	r.Group(func(r chi.Router) {
		r.Use(chimw.RequestSize(imaging.MaxUploadSize + 1<<20))
		r.Use(middleware.LoadShopper(d.Sessions, d.Metrics))
		r.Use(middleware.NewCSRF(d.SecureCookie))

		r.Get("/", d.Shop.Storefront)
		r.Get("/products/{ref}", d.Shop.Product)

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", d.Shop.Cart)
			r.Post("/{id}", d.Shop.AddToCart)
			r.Post("/{id}/quantity", d.Shop.UpdateQuantity)
			r.Post("/{id}/remove", d.Shop.RemoveFromCart)
		})

		r.Group(func(r chi.Router) {
			if d.FormLimiter != nil {
				r.Use(d.FormLimiter.Middleware)
			}
			r.Post("/checkout", d.Shop.Checkout)
			r.Post("/contact", d.Shop.Contact)
		})

		r.Route("/admin", func(r chi.Router) {
			r.Get("/", d.Admin.List)
			r.Route("/products", func(r chi.Router) {
				r.Get("/new", d.Admin.New)
				r.Post("/", d.Admin.Submit)
				r.Get("/{id}/edit", d.Admin.Edit)
				r.Get("/{id}/delete", d.Admin.ConfirmDelete)
				r.Post("/{id}/delete", d.Admin.Delete)
			})
			r.Post("/reset", d.Admin.Reset)
		})
	})

	return r
}

// staticHandler serves embedded assets with a day of browser caching.
func staticHandler(static fs.FS) http.Handler {
	files := http.FileServer(http.FS(static))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "public, max-age=86400")
		files.ServeHTTP(w, r)
	})
}

// healthHandler returns a JSON health check response with the catalog size.
func healthHandler(productCount func() int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body := map[string]any{"status": "ok"}
		if productCount != nil {
			body["products"] = productCount()
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(body)
	}
}
