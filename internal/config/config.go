// Coursematch - Remedial Course Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coursematch

package config

import (
	"fmt"
	"time"

	"github.com/tomtom215/coursematch/internal/recommend"
)

// Config holds all application configuration.
//
// Loading order (Koanf v2):
//  1. Defaults built into defaultConfig
//  2. Optional YAML file (CONFIG_PATH, then config.yaml in the usual places)
//  3. Environment variables
//
// Sections:
//   - Server: HTTP listener
//   - Logging: zerolog level and format
//   - Security: CORS and inbound rate limiting
//   - Catalog: where courses come from and how they are refreshed
//   - Recommend: scorer weights and request limits
//   - CourseInfo: optional upstream used to fill in missing course details
type Config struct {
	Server     ServerConfig     `koanf:"server"`
	Logging    LoggingConfig    `koanf:"logging"`
	Security   SecurityConfig   `koanf:"security"`
	Catalog    CatalogConfig    `koanf:"catalog"`
	Recommend  RecommendConfig  `koanf:"recommend"`
	CourseInfo CourseInfoConfig `koanf:"course_info"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port        int           `koanf:"port"`
	Host        string        `koanf:"host"`
	Timeout     time.Duration `koanf:"timeout"`     // read/write timeout of the http.Server
	Environment string        `koanf:"environment"` // development, staging, production
}

// Addr returns the listen address.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// LoggingConfig holds zerolog settings.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// SecurityConfig holds CORS and inbound rate limit settings.
type SecurityConfig struct {
	CORSOrigins       []string      `koanf:"cors_origins"`
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
	MaxBodyBytes      int64         `koanf:"max_body_bytes"`
}

// CatalogConfig controls catalog loading.
type CatalogConfig struct {
	// Path is the catalog file (COURSE_CSV_PATH).
	Path string `koanf:"path"`

	// Format is csv, json, yaml or empty to infer from the extension.
	Format string `koanf:"format"`

	// Watch reloads the catalog when the file changes.
	Watch bool `koanf:"watch"`

	// ReloadInterval reloads the catalog periodically. Zero disables it.
	ReloadInterval time.Duration `koanf:"reload_interval"`

	// Enrich fills missing titles, descriptions and links from the
	// course-info service after each load. Requires course_info.enabled.
	Enrich bool `koanf:"enrich"`
}

// RecommendConfig holds scorer weights and per-request limits.
type RecommendConfig struct {
	CategoryWeight         float64       `koanf:"category_weight"`
	PartialCategoryFactor  float64       `koanf:"partial_category_factor"`
	TextWeight             float64       `koanf:"text_weight"`
	TitleWeight            float64       `koanf:"title_weight"`
	DescriptionWeight      float64       `koanf:"description_weight"`
	MinTokenLength         int           `koanf:"min_token_length"`
	DedupeAcrossWeaknesses bool          `koanf:"dedupe_across_weaknesses"`
	MaxWeaknesses          int           `koanf:"max_weaknesses"`
	RequestTimeout         time.Duration `koanf:"request_timeout"`
}

// ScorerConfig converts the section into the scorer configuration.
func (r RecommendConfig) ScorerConfig() *recommend.Config {
	return &recommend.Config{
		Weights: recommend.ScoringWeights{
			Category:              r.CategoryWeight,
			PartialCategoryFactor: r.PartialCategoryFactor,
			Text:                  r.TextWeight,
		},
		Text: recommend.TextConfig{
			TitleWeight:       r.TitleWeight,
			DescriptionWeight: r.DescriptionWeight,
			MinTokenLength:    r.MinTokenLength,
		},
		DedupeAcrossWeaknesses: r.DedupeAcrossWeaknesses,
	}
}

// CourseInfoConfig configures the optional course-info upstream.
type CourseInfoConfig struct {
	Enabled        bool          `koanf:"enabled"`
	BaseURL        string        `koanf:"base_url"`
	Timeout        time.Duration `koanf:"timeout"`
	CacheTTL       time.Duration `koanf:"cache_ttl"`
	RateLimit      float64       `koanf:"rate_limit"` // requests per second, 0 = unlimited
	Burst          int           `koanf:"burst"`
	MaxConcurrency int           `koanf:"max_concurrency"`
	RetryAttempts  int           `koanf:"retry_attempts"` // extra attempts after a transient failure
	RetryDelay     time.Duration `koanf:"retry_delay"`    // first backoff, doubled per attempt
}

// IsProduction reports whether the server runs in production mode.
func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}
