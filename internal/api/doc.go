// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

/*
Package api provides the HTTP REST API layer for the affect-aware
recommendation service.

This package exposes the recommend engine over HTTP: emotion analysis,
recommendation retrieval, feedback submission, and per-user progress
reporting. It serves as the only interface between clients and
internal/recommend.

Key Components:

  - Router: Chi route configuration and middleware stack integration
  - RecommendHandler: request handlers for the recommend endpoints
  - Response formatting: standardized JSON envelope with a stable
    error-code contract
  - Rate limiting: per-endpoint limits via go-chi/httprate
  - CORS: go-chi/cors, required for explicit origins

API Surface:

1. Recommend Endpoints (/api/v1/):
  - POST emotion/analyze: infer affect state and desired state from text
  - POST recommend: retrieve and rank content toward a desired state
  - POST feedback: report an outcome, apply reward shaping and a Q-table update
  - GET progress/{user_id}[/convergence]: learning-progress analytics

2. Credential-flow stubs (/api/v1/auth/):
  - register, login, refresh, logout all report E007 auth failure; this
    service has no credential subsystem of its own but keeps the routes
    live for API-contract parity.

3. Operational Endpoints:
  - GET healthz / readyz: liveness and readiness
  - GET /metrics: Prometheus scrape endpoint

Usage Example:

	import (
	    "github.com/tomtom215/cartographus/internal/api"
	    "github.com/tomtom215/cartographus/internal/recommend"
	)

	engine, _ := recommend.NewEngine(qstore, experiences, sessions, index, profiler, exploration, oracle, cfg, logger)
	chiMiddleware := api.NewChiMiddlewareFromConfig(corsOrigins, 100, time.Minute, false)
	router := api.NewRouter(engine, chiMiddleware, cfg.Recommend.CacheTTL)

	http.ListenAndServe(":3857", router.SetupChi())

Thread Safety:

RecommendHandler holds only a *recommend.Engine reference and no
request-scoped state; Engine itself is safe for concurrent use.

See Also:

  - internal/recommend: the engine this package serves over HTTP
  - internal/validation: request DTO validation
  - internal/metrics: Prometheus instrumentation recorded per request
*/
package api
