// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

// Package api provides HTTP routing for the recommend service using Chi.
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tomtom215/cartographus/internal/middleware"
)

// SetupChi configures the full route tree: health/metrics, the
// credential-flow stubs, and the recommend API surface.
func (router *Router) SetupChi() http.Handler {
	r := chi.NewRouter()

	// ========================
	// Global Middleware Stack
	// ========================
	r.Use(RequestIDWithLogging())
	r.Use(E2EDebugLogging())
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(router.chiMiddleware.CORS())
	r.Use(middleware.Compression)

	// ========================
	// Health and Metrics
	// ========================
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/healthz", router.handleLiveness)
		r.Get("/readyz", router.handleReadiness)
	})
	r.Handle("/metrics", promhttp.Handler())

	// ========================
	// Recommend API
	// ========================
	router.registerChiRecommendRoutes(r)

	return r
}

// handleLiveness reports the process is running and able to serve traffic.
func (router *Router) handleLiveness(w http.ResponseWriter, r *http.Request) {
	NewResponseWriter(w, r).Success(map[string]string{"status": "live"})
}

// handleReadiness reports the recommend engine is constructed and ready
// to accept requests. The engine holds no lazily-initialized state, so
// readiness tracks liveness once startup in cmd/server has completed.
func (router *Router) handleReadiness(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	if router.recommendHandler == nil {
		rw.Error(http.StatusServiceUnavailable, codeInternalFailure, "recommend engine not initialized")
		return
	}
	rw.Success(map[string]string{"status": "ready"})
}

// registerChiRecommendRoutes mounts the emotion/recommend/feedback/progress
// endpoints plus the credential-flow stubs the API contract documents.
func (router *Router) registerChiRecommendRoutes(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimitCustom(RateLimitAPI))
		r.Use(APISecurityHeaders())
		r.Use(RecommendMetrics())

		r.With(router.chiMiddleware.RateLimitCustom(RateLimitWrite)).Post("/api/v1/feedback", router.recommendHandler.Feedback)

		r.With(router.chiMiddleware.RateLimitCustom(RateLimitAnalyze)).Post("/api/v1/emotion/analyze", router.recommendHandler.AnalyzeEmotion)
		r.With(router.chiMiddleware.RateLimitCustom(RateLimitRecommend)).Post("/api/v1/recommend", router.recommendHandler.Recommend)
		r.Get("/api/v1/progress/{userID}", router.recommendHandler.Progress)
		r.Get("/api/v1/progress/{userID}/convergence", router.recommendHandler.Progress)
	})

	r.With(router.chiMiddleware.RateLimitCustom(RateLimitAuth)).Group(RegisterAuthStubs)
}
