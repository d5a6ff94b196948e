// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package api

import (
	"time"

	"github.com/tomtom215/cartographus/internal/recommend"
)

// Router owns the chi mux construction for the recommend API surface:
// emotion analysis, recommendation, feedback, and progress, plus the
// credential-flow stubs the spec's API contract documents. It carries
// no session, OIDC, or RBAC state, since this service has no
// authentication subsystem of its own.
type Router struct {
	recommendHandler *RecommendHandler
	chiMiddleware    *ChiMiddleware
}

// NewRouter constructs a Router around an already-wired recommend
// engine and Chi middleware stack. Both are built once at startup in
// cmd/server. cacheTTL controls response caching on the recommend
// endpoint; zero disables it.
func NewRouter(engine *recommend.Engine, chiMiddleware *ChiMiddleware, cacheTTL time.Duration) *Router {
	return &Router{
		recommendHandler: NewRecommendHandler(engine, cacheTTL),
		chiMiddleware:    chiMiddleware,
	}
}

// GetRecommendHandler returns the handler backing the recommend routes,
// primarily for tests that want to call handler methods directly.
func (router *Router) GetRecommendHandler() *RecommendHandler {
	return router.recommendHandler
}
