// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

/*
Package middleware provides standalone HTTP middleware that doesn't
depend on per-request API state.

Request ID propagation and Prometheus instrumentation for the
recommend routes live in internal/api/chi_middleware.go instead, since
both need access to the chi router's ChiMiddleware and the goccy/go-json
response envelope. This package holds what's left: middleware with no
such dependency.

# Components

  - Compression: gzip-encodes responses for clients advertising gzip
    support, skipping WebSocket upgrades.

# Usage

	r.Use(middleware.Compression)
*/
package middleware
