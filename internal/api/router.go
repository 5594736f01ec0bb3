// InvoiceMe Organizer - Invoice intake and Drive folder organization
// Copyright 2026 InvoiceMe
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"net/http"
	"path"
	"path/filepath"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/invoiceme/organizer/internal/auth"
	"github.com/invoiceme/organizer/internal/config"
	"github.com/invoiceme/organizer/internal/middleware"
)

// Router wires handlers, session middleware, and static pages into one
// chi router.
type Router struct {
	handler  *Handler
	sessions *auth.Sessions
	cfg      *config.Config
}

// NewRouter creates a router around the given handler.
func NewRouter(handler *Handler, sessions *auth.Sessions, cfg *config.Config) *Router {
	return &Router{handler: handler, sessions: sessions, cfg: cfg}
}

// Setup configures all HTTP routes.
func (rt *Router) Setup() http.Handler {
	r := chi.NewRouter()

	// Global middleware, applied to every route in order.
	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   rt.cfg.Security.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type"},
		AllowCredentials: true,
		MaxAge:           86400,
	}))
	r.Use(middleware.SecurityHeaders)
	r.Use(middleware.PrometheusMetrics)

	r.Route("/api", func(r chi.Router) {
		r.Use(httprate.Limit(
			rt.cfg.Security.RateLimitRequests,
			rt.cfg.Security.RateLimitWindow,
			httprate.WithKeyFuncs(httprate.KeyByIP),
		))

		r.Get("/health", rt.handler.Health)

		r.Route("/auth", func(r chi.Router) {
			// Login gets the strictest bucket (brute-force prevention).
			r.With(httprate.Limit(
				rt.cfg.Security.LoginLimitRequests,
				rt.cfg.Security.LoginLimitWindow,
				httprate.WithKeyFuncs(httprate.KeyByIP),
			)).Post("/login", rt.handler.Login)

			r.Post("/logout", rt.handler.Logout)
		})

		// Everything below requires a valid session cookie.
		r.Group(func(r chi.Router) {
			r.Use(rt.sessions.RequireUser)

			r.Post("/drive/save-folders", rt.handler.SaveFolders)
			r.Post("/jobs/create", rt.handler.JobsCreate)
			r.Get("/jobs/list", rt.handler.JobsList)
			r.Get("/jobs/items", rt.handler.JobItems)
		})
	})

	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	// Static pages: login form and dashboard.
	r.Get("/*", rt.serveStatic)

	return r
}

// serveStatic serves the login and dashboard pages plus their assets from
// the configured web directory. Unknown paths fall back to the login page
// so stale bookmarks land somewhere useful.
func (rt *Router) serveStatic(w http.ResponseWriter, r *http.Request) {
	webDir := rt.cfg.Server.WebDir

	switch r.URL.Path {
	case "/", "/login":
		http.ServeFile(w, r, filepath.Join(webDir, "login.html"))
		return
	case "/dashboard":
		http.ServeFile(w, r, filepath.Join(webDir, "dashboard.html"))
		return
	}

	// path.Clean keeps the request inside the web dir.
	clean := path.Clean(r.URL.Path)
	full := filepath.Join(webDir, filepath.FromSlash(clean))

	if info, err := http.Dir(webDir).Open(clean); err == nil {
		_ = info.Close()
		http.ServeFile(w, r, full)
		return
	}

	http.ServeFile(w, r, filepath.Join(webDir, "login.html"))
}
