// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus instrumentation for the affect-aware recommendation engine.
// This package covers:
//   - HTTP request latency/throughput for the recommend API surface
//   - Reward shaping and Q-learning convergence
//   - Exploration rate and exploitation/exploration split
//   - Content retrieval (vector index) and response cache efficiency
//   - Background job health (session sweep, oracle circuit breaker)

var (
	// API Endpoint Metrics

	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommend_api_requests_total",
			Help: "Total number of recommendation API requests",
		},
		[]string{"endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "recommend_api_request_duration_seconds",
			Help:    "Duration of recommendation API requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint"},
	)

	ActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "recommend_api_active_requests",
			Help: "Number of in-flight recommendation API requests",
		},
	)

	// Recommendation / Ranking Metrics

	RecommendationsServed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommend_recommendations_served_total",
			Help: "Total number of recommendations returned to users",
		},
		[]string{"is_exploration"},
	)

	CandidatesRetrieved = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "recommend_candidates_retrieved",
			Help:    "Number of candidate items returned by vector-index retrieval before ranking",
			Buckets: []float64{1, 5, 10, 25, 50, 100, 250, 500},
		},
	)

	RankingDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "recommend_ranking_duration_seconds",
			Help:    "Duration of hybrid ranking (Q-value + similarity + diversity) per request",
			Buckets: prometheus.DefBuckets,
		},
	)

	// Exploration Metrics

	ExplorationRate = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "recommend_exploration_epsilon",
			Help: "Current epsilon value of the exploration controller",
		},
	)

	ExplorationDecayed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "recommend_exploration_decay_total",
			Help: "Total number of epsilon decay steps applied",
		},
	)

	// Reward / Learning Metrics

	RewardObserved = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "recommend_reward_observed",
			Help:    "Distribution of shaped reward values from feedback events",
			Buckets: []float64{-1, -0.5, -0.25, 0, 0.25, 0.5, 0.75, 1},
		},
	)

	QValueUpdates = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "recommend_q_value_updates_total",
			Help: "Total number of Q-table entries updated from feedback",
		},
	)

	QTableSize = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "recommend_q_table_entries",
			Help: "Current number of entries in the Q-table",
		},
	)

	PolicyConvergence = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "recommend_policy_convergence_ratio",
			Help: "Fraction of state/action pairs whose Q-value changed by less than the convergence threshold in the last sweep",
		},
	)

	// Session / Background Job Metrics

	PendingSessionsExpired = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "recommend_sessions_expired_total",
			Help: "Total number of pending recommendation sessions expired by the sweep job",
		},
	)

	SessionSweepDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "recommend_session_sweep_duration_seconds",
			Help:    "Duration of each pending-session sweep pass",
			Buckets: prometheus.DefBuckets,
		},
	)

	// Oracle / Circuit Breaker Metrics

	OracleRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommend_oracle_requests_total",
			Help: "Total number of affect-oracle calls by outcome",
		},
		[]string{"outcome"}, // "success", "error", "breaker_open"
	)

	OracleLatency = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "recommend_oracle_latency_seconds",
			Help:    "Latency of affect-oracle calls",
			Buckets: prometheus.DefBuckets,
		},
	)

	// Cache Metrics

	CacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommend_cache_hits_total",
			Help: "Total number of response cache hits",
		},
		[]string{"cache"},
	)

	CacheMisses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommend_cache_misses_total",
			Help: "Total number of response cache misses",
		},
		[]string{"cache"},
	)

	// Storage Metrics

	StoreOperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "recommend_store_operation_duration_seconds",
			Help:    "Duration of Badger-backed store operations",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)

	StoreErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommend_store_errors_total",
			Help: "Total number of store operation errors",
		},
		[]string{"operation"},
	)
)

// RecordAPIRequest records a completed HTTP request to the recommend API.
func RecordAPIRequest(endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest increments or decrements the in-flight request gauge.
func TrackActiveRequest(inc bool) {
	if inc {
		ActiveRequests.Inc()
		return
	}
	ActiveRequests.Dec()
}

// RecordRecommendation records one recommendation returned to a user.
func RecordRecommendation(isExploration bool) {
	label := "false"
	if isExploration {
		label = "true"
	}
	RecommendationsServed.WithLabelValues(label).Inc()
}

// RecordRanking records retrieval/ranking counters for one recommend call.
func RecordRanking(candidateCount int, duration time.Duration) {
	CandidatesRetrieved.Observe(float64(candidateCount))
	RankingDuration.Observe(duration.Seconds())
}

// UpdateExplorationRate sets the current epsilon gauge and records a decay step.
func UpdateExplorationRate(epsilon float64, decayed bool) {
	ExplorationRate.Set(epsilon)
	if decayed {
		ExplorationDecayed.Inc()
	}
}

// RecordFeedback records the reward and Q-table effects of one feedback event.
func RecordFeedback(reward float64, policyUpdated bool) {
	RewardObserved.Observe(reward)
	if policyUpdated {
		QValueUpdates.Inc()
	}
}

// UpdateLearningState updates the Q-table size and convergence gauges.
func UpdateLearningState(qTableEntries int64, convergenceRatio float64) {
	QTableSize.Set(float64(qTableEntries))
	PolicyConvergence.Set(convergenceRatio)
}

// RecordSessionSweep records one pass of the pending-session sweeper.
func RecordSessionSweep(expired int, duration time.Duration) {
	PendingSessionsExpired.Add(float64(expired))
	SessionSweepDuration.Observe(duration.Seconds())
}

// RecordOracleCall records the outcome and latency of one affect-oracle call.
func RecordOracleCall(outcome string, duration time.Duration) {
	OracleRequests.WithLabelValues(outcome).Inc()
	OracleLatency.Observe(duration.Seconds())
}

// RecordCacheHit records a cache hit for the named cache.
func RecordCacheHit(cache string) {
	CacheHits.WithLabelValues(cache).Inc()
}

// RecordCacheMiss records a cache miss for the named cache.
func RecordCacheMiss(cache string) {
	CacheMisses.WithLabelValues(cache).Inc()
}

// RecordStoreOperation records the duration and outcome of a store operation.
func RecordStoreOperation(operation string, duration time.Duration, err error) {
	StoreOperationDuration.WithLabelValues(operation).Observe(duration.Seconds())
	if err != nil {
		StoreErrors.WithLabelValues(operation).Inc()
	}
}
