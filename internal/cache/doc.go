// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

/*
Package cache provides thread-safe in-memory data structures for the
recommendation engine's hot path: response caching, duplicate-content
suppression during exploration, and bounded priority queues.

# Overview

  - Cache / Cacher: TTL-keyed cache, used to memoize a user's ranked
    recommendation list for the configured recommend.cache_ttl window so
    repeated requests within a session don't re-run retrieval and ranking.
  - BloomLRU / ExactLRU: probabilistic and exact recently-seen sets for
    duplicate suppression. No other package in this module constructs them.
  - MinHeap: generic timestamp-ordered min-heap that evicts its oldest
    entry in O(log n) once an optional capacity is exceeded. No other
    package in this module constructs one.
  - SlidingWindowCounter / SlidingWindowStore: bucketed per-key rate
    counters. No other package in this module constructs them.

# Usage

	respCache := cache.New(cfg.Recommend.CacheTTL)
	key := cache.GenerateKey("recommend", userID+":"+strconv.Itoa(k))
	if cached, ok := respCache.Get(key); ok {
	    return cached.(recommend.RecommendResult), nil
	}
	result, err := engine.Recommend(ctx, userID, current, nil, k)
	if err == nil {
	    respCache.Set(key, result)
	}

	seen := cache.NewBloomLRU(10000, 30*time.Minute, 0.01)
	if !seen.IsDuplicate(contentID) {
	    candidates = append(candidates, contentID)
	}

# Thread Safety

All exported types are safe for concurrent use; Cache and LRUCache use
sync.RWMutex / sync.Mutex internally.

# See Also

  - internal/recommend: the engine this package caches and dedupes for
  - internal/api/handlers_recommend.go: HTTP layer wiring a Cacher in front
    of Engine.Recommend
*/
package cache
