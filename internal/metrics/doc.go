// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

/*
Package metrics provides Prometheus instrumentation for the affect-aware
recommendation engine, built on github.com/prometheus/client_golang's
promauto package-level registration pattern.

# Overview

The package exposes metrics for:
  - Recommend API request latency, throughput, and in-flight count
  - Candidate retrieval size and hybrid-ranking duration
  - Exploration epsilon and decay steps
  - Shaped reward distribution, Q-table size, and policy convergence
  - Pending-session sweep throughput
  - Affect-oracle call outcomes and latency (including circuit-breaker trips)
  - Response cache hit/miss rate
  - Badger-backed store operation latency and errors

# Metrics Endpoint

Metrics are exposed at /metrics in Prometheus text format via
promhttp.Handler(), mounted alongside the recommend routes.

# Usage

Record functions wrap the package-level collectors so call sites in
internal/recommend and internal/api never touch *prometheus.Histogram or
*prometheus.CounterVec directly:

	start := time.Now()
	result, err := engine.Recommend(ctx, userID, current, nil, k)
	metrics.RecordAPIRequest("/api/v1/recommend", statusCode(err), time.Since(start))
	if err == nil {
	    for _, rec := range result.Recommendations {
	        metrics.RecordRecommendation(rec.IsExploration)
	    }
	}

# See Also

  - internal/recommend: the engine whose learning/exploration state this
    package instruments
  - internal/api/chi_middleware.go: records per-request metrics;
    internal/api/handlers_recommend.go records cache, recommendation and
    feedback metrics
*/
package metrics
