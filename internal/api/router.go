// Marquee - Film Affinity Estimator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tomtom215/marquee/internal/config"
	"github.com/tomtom215/marquee/internal/middleware"
)

// compressionLevel is the gzip level used for API responses.
const compressionLevel = 5

// Router wires the handler into a chi route tree.
type Router struct {
	handler       *Handler
	chiMiddleware *ChiMiddleware
}

// NewRouter creates a router. The middleware configuration is derived from cfg.
func NewRouter(handler *Handler, cfg *config.Config) *Router {
	mwConfig := DefaultChiMiddlewareConfig()
	if cfg != nil {
		mwConfig.CORSAllowedOrigins = cfg.Security.CORSOrigins
		mwConfig.RateLimitRequests = cfg.Security.RateLimitReqs
		mwConfig.RateLimitWindow = cfg.Security.RateLimitWindow
		mwConfig.RateLimitDisabled = cfg.Security.RateLimitDisabled
		mwConfig.TrustedProxies = cfg.Security.TrustedProxies
	}
	return &Router{
		handler:       handler,
		chiMiddleware: NewChiMiddleware(mwConfig),
	}
}

// SetupChi builds the HTTP handler.
func (router *Router) SetupChi() http.Handler {
	h := router.handler
	mw := router.chiMiddleware

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(mw.RealIP())
	r.Use(chimiddleware.Recoverer)
	r.Use(mw.CORS())

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		respondError(w, r, http.StatusNotFound, ErrCodeNotFound, "route not found", nil)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		respondError(w, r, http.StatusMethodNotAllowed, ErrCodeMethodNotAllowed, "method not allowed", nil)
	})

	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(APISecurityHeaders())
		r.Use(middleware.PrometheusMetrics)

		r.Group(func(r chi.Router) {
			r.Use(mw.RateLimit())
			if h.perfMon != nil {
				r.Use(h.perfMon.Middleware)
			}
			r.Use(chimiddleware.Compress(compressionLevel, "application/json"))
			if h.config != nil && h.config.Server.Timeout > 0 {
				r.Use(chimiddleware.Timeout(h.config.Server.Timeout))
			}

			r.Get("/health", h.Health)

			r.Get("/catalog/genres", h.CatalogGenres)
			r.Get("/catalog/themes", h.CatalogThemes)
			r.Get("/catalog/ratings", h.CatalogRatings)
			r.Get("/catalog/budgets", h.CatalogBudgets)
			r.Get("/catalog/seasons", h.CatalogSeasons)
			r.Get("/catalog/features", h.CatalogFeatures)

			r.Get("/genres/options", h.GenreOptions)

			r.Post("/estimate", h.Estimate)
			r.Post("/estimate/affinity", h.EstimateAffinity)
			r.Post("/estimate/production", h.EstimateProduction)
			r.Post("/estimate/resources", h.EstimateResources)
		})

		// The live connection is hijacked: no compression, no request timeout.
		r.Group(func(r chi.Router) {
			r.Use(mw.RateLimitCustom("live", RateLimitLive))
			r.Get("/live", h.Live)
		})
	})

	return r
}
