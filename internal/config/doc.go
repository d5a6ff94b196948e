// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

/*
Package config provides centralized configuration management.

It handles loading, validation, and parsing of environment variables and an
optional YAML config file for the HTTP transport, transport-level security,
logging, and the affect-aware recommendation engine.

# Configuration Sources

The package reads configuration in three layers, later layers overriding
earlier ones:

 1. Built-in defaults
 2. An optional YAML config file (config.yaml, or the path in CONFIG_PATH)
 3. Environment variables

# Configuration Structure

  - ServerConfig: HTTP listener settings (host, port, timeout, environment)
  - SecurityConfig: CORS, rate limiting, trusted proxies
  - LoggingConfig: zerolog level, format, caller annotation
  - RecommendConfig: Q-learning hyperparameters, session TTL, durable store path

# Environment Variables

HTTP Server (ServerConfig):
  - HTTP_HOST: Bind address (default: 0.0.0.0)
  - HTTP_PORT: Listen port (default: 3857)
  - HTTP_TIMEOUT: Request timeout (default: 30s)
  - ENVIRONMENT: development, staging, production (default: development)

Security (SecurityConfig):
  - RATE_LIMIT_REQUESTS: Requests per window (default: 100)
  - RATE_LIMIT_WINDOW: Rate limit window (default: 1m)
  - DISABLE_RATE_LIMIT: Disable rate limiting (default: false)
  - CORS_ORIGINS: Comma-separated allowed origins (default: *)
  - TRUSTED_PROXIES: Comma-separated trusted proxy IPs/CIDRs

Logging (LoggingConfig):
  - LOG_LEVEL: trace, debug, info, warn, error (default: info)
  - LOG_FORMAT: json, console (default: json)
  - LOG_CALLER: include caller file:line (default: false)

Recommendation Engine (RecommendConfig):
  - RECOMMEND_ENABLED: Enable the engine (default: false)
  - RECOMMEND_DATA_DIR: Durable badger store directory (default: /data/recommend)
  - Q_LEARNING_RATE, Q_DISCOUNT: Q-learning alpha/gamma (default: 0.10, 0.95)
  - EPSILON_INITIAL, EPSILON_MIN, EPSILON_DECAY: exploration schedule
  - EXPERIENCE_RING: per-user experience log capacity (default: 1000)
  - SESSION_TTL_SECONDS: pending recommendation TTL (default: 86400)
  - REWARD_PROXIMITY_THRESHOLD: proximity bonus distance (default: 0.30)
  - RECOMMEND_DEFAULT_K, RECOMMEND_MAX_K: result count bounds (default: 10, 50)
  - RECOMMEND_CACHE_TTL: response cache TTL (default: 30s)
  - RECOMMEND_LOCK_WAIT: per-user busy-signal threshold (default: 2s)

# Usage Example

	import "github.com/tomtom215/cartographus/internal/config"

	cfg, err := config.Load()
	if err != nil {
	    log.Fatalf("failed to load config: %v", err)
	}
	fmt.Printf("Starting server on %s:%d\n", cfg.Server.Host, cfg.Server.Port)

# Validation

  - HTTP_PORT must be between 1 and 65535
  - CORS_ORIGINS=* is rejected when ENVIRONMENT=production
  - LOG_LEVEL and LOG_FORMAT must be one of the documented values
  - When RECOMMEND_ENABLED=true, RECOMMEND_DATA_DIR is required and all
    hyperparameters must fall within their valid ranges

# Thread Safety

The Config struct is immutable after Load() returns and safe for concurrent
read access from multiple goroutines.
*/
package config
