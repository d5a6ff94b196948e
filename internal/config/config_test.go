// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package config

import (
	"os"
	"testing"
	"time"
)

// setupTestEnv sets up test environment variables and returns a cleanup function.
func setupTestEnv(t *testing.T, envVars map[string]string) func() {
	t.Helper()
	os.Clearenv()
	for k, v := range envVars {
		if err := os.Setenv(k, v); err != nil {
			t.Fatalf("failed to set env var %s: %v", k, err)
		}
	}
	return func() {
		os.Clearenv()
	}
}

func assertNoError(t *testing.T, err error, testName string) {
	t.Helper()
	if err != nil {
		t.Fatalf("%s: unexpected error: %v", testName, err)
	}
}

func assertError(t *testing.T, err error, testName string) {
	t.Helper()
	if err == nil {
		t.Fatalf("%s: expected an error, got nil", testName)
	}
}

func TestLoadLegacy_Defaults(t *testing.T) {
	cleanup := setupTestEnv(t, map[string]string{})
	defer cleanup()

	cfg, err := LoadLegacy()
	assertNoError(t, err, "LoadLegacy defaults")

	if cfg.Server.Port != 3857 {
		t.Errorf("Server.Port = %d, want 3857", cfg.Server.Port)
	}
	if cfg.Server.Host != "0.0.0.0" {
		t.Errorf("Server.Host = %q, want 0.0.0.0", cfg.Server.Host)
	}
	if cfg.Server.Environment != "development" {
		t.Errorf("Server.Environment = %q, want development", cfg.Server.Environment)
	}
	if cfg.Security.RateLimitReqs != 100 {
		t.Errorf("Security.RateLimitReqs = %d, want 100", cfg.Security.RateLimitReqs)
	}
	if len(cfg.Security.CORSOrigins) != 1 || cfg.Security.CORSOrigins[0] != "*" {
		t.Errorf("Security.CORSOrigins = %v, want [*]", cfg.Security.CORSOrigins)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("Logging.Level = %q, want info", cfg.Logging.Level)
	}
	if cfg.Recommend.Enabled {
		t.Errorf("Recommend.Enabled should be false by default")
	}
	if cfg.Recommend.DataDir != "/data/recommend" {
		t.Errorf("Recommend.DataDir = %q, want /data/recommend", cfg.Recommend.DataDir)
	}
}

func TestLoadLegacy_EnvOverrides(t *testing.T) {
	cleanup := setupTestEnv(t, map[string]string{
		"HTTP_PORT":   "9090",
		"HTTP_HOST":   "127.0.0.1",
		"ENVIRONMENT": "production",
		"CORS_ORIGINS": "https://a.example.com,https://b.example.com",
		"LOG_LEVEL":   "debug",
		"LOG_FORMAT":  "console",
	})
	defer cleanup()

	cfg, err := LoadLegacy()
	assertNoError(t, err, "LoadLegacy overrides")

	if cfg.Server.Port != 9090 {
		t.Errorf("Server.Port = %d, want 9090", cfg.Server.Port)
	}
	if cfg.Server.Host != "127.0.0.1" {
		t.Errorf("Server.Host = %q, want 127.0.0.1", cfg.Server.Host)
	}
	if !cfg.IsProduction() {
		t.Errorf("expected IsProduction() true")
	}
	if len(cfg.Security.CORSOrigins) != 2 {
		t.Errorf("Security.CORSOrigins = %v, want 2 entries", cfg.Security.CORSOrigins)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want debug", cfg.Logging.Level)
	}
	if cfg.Logging.Format != "console" {
		t.Errorf("Logging.Format = %q, want console", cfg.Logging.Format)
	}
}

func TestLoadLegacy_WildcardCORSRejectedInProduction(t *testing.T) {
	cleanup := setupTestEnv(t, map[string]string{
		"ENVIRONMENT":  "production",
		"CORS_ORIGINS": "*",
	})
	defer cleanup()

	_, err := LoadLegacy()
	assertError(t, err, "wildcard CORS in production")
}

func TestValidate_Server(t *testing.T) {
	tests := []struct {
		name    string
		port    int
		wantErr bool
	}{
		{"valid port", 3857, false},
		{"min valid port", 1, false},
		{"max valid port", 65535, false},
		{"zero port", 0, true},
		{"negative port", -1, true},
		{"too large port", 65536, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			cfg.Server.Port = tt.port
			err := cfg.Validate()
			if tt.wantErr {
				assertError(t, err, tt.name)
			} else {
				assertNoError(t, err, tt.name)
			}
		})
	}
}

func TestValidate_RateLimits(t *testing.T) {
	tests := []struct {
		name     string
		reqs     int
		window   time.Duration
		disabled bool
		wantErr  bool
	}{
		{"valid", 100, time.Minute, false, false},
		{"disabled skips checks", 0, 0, true, false},
		{"zero requests", 0, time.Minute, false, true},
		{"too many requests", 200000, time.Minute, false, true},
		{"window too short", 100, time.Millisecond, false, true},
		{"window too long", 100, 2 * time.Hour, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			cfg.Security.RateLimitReqs = tt.reqs
			cfg.Security.RateLimitWindow = tt.window
			cfg.Security.RateLimitDisabled = tt.disabled
			err := cfg.Validate()
			if tt.wantErr {
				assertError(t, err, tt.name)
			} else {
				assertNoError(t, err, tt.name)
			}
		})
	}
}

func TestValidate_Logging(t *testing.T) {
	tests := []struct {
		name    string
		level   string
		format  string
		wantErr bool
	}{
		{"valid info json", "info", "json", false},
		{"valid trace console", "trace", "console", false},
		{"empty format allowed", "info", "", false},
		{"invalid level", "verbose", "json", true},
		{"invalid format", "info", "xml", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			cfg.Logging.Level = tt.level
			cfg.Logging.Format = tt.format
			err := cfg.Validate()
			if tt.wantErr {
				assertError(t, err, tt.name)
			} else {
				assertNoError(t, err, tt.name)
			}
		})
	}
}

func TestValidate_Recommend(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(r *RecommendConfig)
		wantErr bool
	}{
		{"disabled skips validation", func(r *RecommendConfig) { r.Enabled = false; r.DataDir = "" }, false},
		{"valid", func(r *RecommendConfig) {}, false},
		{"missing data dir", func(r *RecommendConfig) { r.DataDir = "" }, true},
		{"learning rate out of range", func(r *RecommendConfig) { r.QLearningRate = 1.5 }, true},
		{"discount out of range", func(r *RecommendConfig) { r.QDiscount = -0.1 }, true},
		{"epsilon min above initial", func(r *RecommendConfig) { r.EpsilonMin = 0.9; r.EpsilonInitial = 0.3 }, true},
		{"experience ring too small", func(r *RecommendConfig) { r.ExperienceRing = 0 }, true},
		{"zero session ttl", func(r *RecommendConfig) { r.SessionTTL = 0 }, true},
		{"negative reward proximity", func(r *RecommendConfig) { r.RewardProximityThreshold = -1 }, true},
		{"zero default k", func(r *RecommendConfig) { r.DefaultK = 0 }, true},
		{"max k below default k", func(r *RecommendConfig) { r.MaxK = 5; r.DefaultK = 10 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			cfg.Recommend.Enabled = true
			tt.mutate(&cfg.Recommend)
			err := cfg.Validate()
			if tt.wantErr {
				assertError(t, err, tt.name)
			} else {
				assertNoError(t, err, tt.name)
			}
		})
	}
}

func TestIsProductionIsDevelopment(t *testing.T) {
	tests := []struct {
		env      string
		wantProd bool
		wantDev  bool
	}{
		{"production", true, false},
		{"prod", true, false},
		{"development", false, true},
		{"dev", false, true},
		{"", false, true},
		{"staging", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.env, func(t *testing.T) {
			cfg := validConfig()
			cfg.Server.Environment = tt.env
			if got := cfg.IsProduction(); got != tt.wantProd {
				t.Errorf("IsProduction() = %v, want %v", got, tt.wantProd)
			}
			if got := cfg.IsDevelopment(); got != tt.wantDev {
				t.Errorf("IsDevelopment() = %v, want %v", got, tt.wantDev)
			}
		})
	}
}

func TestShouldWarnAboutCORS(t *testing.T) {
	cfg := validConfig()
	cfg.Security.CORSOrigins = []string{"*"}
	if !cfg.ShouldWarnAboutCORS() {
		t.Errorf("expected warning for wildcard CORS")
	}
	cfg.Security.CORSOrigins = []string{"https://example.com"}
	if cfg.ShouldWarnAboutCORS() {
		t.Errorf("expected no warning for explicit origins")
	}
}

// validConfig returns a Config that passes Validate() so individual fields
// can be mutated per test case.
func validConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:        3857,
			Host:        "0.0.0.0",
			Timeout:     30 * time.Second,
			Environment: "development",
		},
		Security: SecurityConfig{
			RateLimitReqs:   100,
			RateLimitWindow: time.Minute,
			CORSOrigins:     []string{"https://example.com"},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
		Recommend: RecommendConfig{
			Enabled:                  false,
			DataDir:                  "/data/recommend",
			QLearningRate:            0.10,
			QDiscount:                0.95,
			EpsilonInitial:           0.30,
			EpsilonMin:               0.05,
			EpsilonDecay:             0.995,
			ExperienceRing:           1000,
			SessionTTL:               24 * time.Hour,
			RewardProximityThreshold: 0.30,
			DefaultK:                 10,
			MaxK:                     50,
			CacheTTL:                 30 * time.Second,
			PerUserLockWait:          2 * time.Second,
		},
	}
}
