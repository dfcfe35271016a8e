// Coursematch - Remedial Course Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coursematch

package config

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

// Validate checks that the configuration is usable. Error messages name the
// environment variable that controls the offending setting.
func (c *Config) Validate() error {
	if err := c.validateServer(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	if err := c.validateSecurity(); err != nil {
		return err
	}
	if err := c.validateCatalog(); err != nil {
		return err
	}
	if err := c.validateRecommend(); err != nil {
		return err
	}
	return c.validateCourseInfo()
}

var validEnvironments = map[string]bool{
	"development": true,
	"staging":     true,
	"production":  true,
}

func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535")
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("HTTP_TIMEOUT must be positive")
	}
	if !validEnvironments[c.Server.Environment] {
		return fmt.Errorf("ENVIRONMENT must be one of: development, staging, production")
	}
	return nil
}

var validLogLevels = map[string]bool{
	"trace": true,
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

var validLogFormats = map[string]bool{
	"json":    true,
	"console": true,
}

func (c *Config) validateLogging() error {
	if !validLogLevels[c.Logging.Level] {
		return fmt.Errorf("LOG_LEVEL must be one of: trace, debug, info, warn, error")
	}
	if c.Logging.Format != "" && !validLogFormats[c.Logging.Format] {
		return fmt.Errorf("LOG_FORMAT must be one of: json, console")
	}
	return nil
}

const (
	minRateLimitRequests = 1
	maxRateLimitRequests = 100000
	minRateLimitWindow   = time.Second
	maxRateLimitWindow   = time.Hour
)

func (c *Config) validateSecurity() error {
	if c.Security.MaxBodyBytes <= 0 {
		return fmt.Errorf("MAX_BODY_BYTES must be positive")
	}
	if c.IsProduction() {
		for _, origin := range c.Security.CORSOrigins {
			if origin == "*" {
				return fmt.Errorf("CORS_ORIGINS must not contain '*' when ENVIRONMENT=production")
			}
		}
	}
	if c.Security.RateLimitDisabled {
		return nil
	}
	if c.Security.RateLimitReqs < minRateLimitRequests || c.Security.RateLimitReqs > maxRateLimitRequests {
		return fmt.Errorf("RATE_LIMIT_REQUESTS must be between %d and %d", minRateLimitRequests, maxRateLimitRequests)
	}
	if c.Security.RateLimitWindow < minRateLimitWindow || c.Security.RateLimitWindow > maxRateLimitWindow {
		return fmt.Errorf("RATE_LIMIT_WINDOW must be between %v and %v", minRateLimitWindow, maxRateLimitWindow)
	}
	return nil
}

var validCatalogFormats = map[string]bool{
	"":     true,
	"csv":  true,
	"json": true,
	"yaml": true,
	"yml":  true,
}

// minReloadInterval keeps periodic reloads from spinning on a large file.
const minReloadInterval = time.Second

func (c *Config) validateCatalog() error {
	if strings.TrimSpace(c.Catalog.Path) == "" {
		return fmt.Errorf("COURSE_CSV_PATH is required")
	}
	format := strings.ToLower(c.Catalog.Format)
	if !validCatalogFormats[format] {
		return fmt.Errorf("CATALOG_FORMAT must be one of: csv, json, yaml")
	}
	if format == "" {
		switch strings.ToLower(filepath.Ext(c.Catalog.Path)) {
		case ".csv", ".json", ".yaml", ".yml":
		default:
			return fmt.Errorf("CATALOG_FORMAT is required when COURSE_CSV_PATH has no .csv, .json or .yaml extension")
		}
	}
	if c.Catalog.ReloadInterval != 0 && c.Catalog.ReloadInterval < minReloadInterval {
		return fmt.Errorf("CATALOG_RELOAD_INTERVAL must be 0 or at least %v", minReloadInterval)
	}
	if c.Catalog.Enrich && !c.CourseInfo.Enabled {
		return fmt.Errorf("CATALOG_ENRICH requires COURSE_INFO_ENABLED=true")
	}
	return nil
}

func (c *Config) validateRecommend() error {
	if err := c.Recommend.ScorerConfig().Validate(); err != nil {
		return fmt.Errorf("RECOMMEND_* weights are invalid: %w", err)
	}
	if c.Recommend.MaxWeaknesses < 1 {
		return fmt.Errorf("RECOMMEND_MAX_WEAKNESSES must be positive")
	}
	if c.Recommend.RequestTimeout <= 0 {
		return fmt.Errorf("RECOMMEND_REQUEST_TIMEOUT must be positive")
	}
	return nil
}

func (c *Config) validateCourseInfo() error {
	if !c.CourseInfo.Enabled {
		return nil
	}
	if err := validateHTTPURL(c.CourseInfo.BaseURL, "COURSE_INFO_API_BASE_URL"); err != nil {
		return err
	}
	if c.CourseInfo.Timeout <= 0 {
		return fmt.Errorf("COURSE_INFO_API_TIMEOUT must be positive")
	}
	if c.CourseInfo.CacheTTL < 0 {
		return fmt.Errorf("COURSE_INFO_CACHE_TTL must not be negative")
	}
	if c.CourseInfo.RateLimit < 0 {
		return fmt.Errorf("COURSE_INFO_RATE_LIMIT must not be negative")
	}
	if c.CourseInfo.RateLimit > 0 && c.CourseInfo.Burst < 1 {
		return fmt.Errorf("COURSE_INFO_BURST must be positive when COURSE_INFO_RATE_LIMIT is set")
	}
	if c.CourseInfo.MaxConcurrency < 1 {
		return fmt.Errorf("COURSE_INFO_MAX_CONCURRENCY must be positive")
	}
	if c.CourseInfo.RetryAttempts < 0 {
		return fmt.Errorf("COURSE_INFO_RETRY_ATTEMPTS must not be negative")
	}
	return nil
}
