// Coursematch - Remedial Course Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coursematch

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"

	"github.com/tomtom215/coursematch/internal/recommend"
)

// DefaultConfigPaths are searched in order; the first existing file wins.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/coursematch/config.yaml",
	"/etc/coursematch/config.yml",
}

// ConfigPathEnvVar overrides the config file location.
const ConfigPathEnvVar = "CONFIG_PATH"

// courseInfoTimeoutSecondsEnv holds the upstream timeout as float seconds.
// It is applied after koanf so that "2.5" works alongside Go durations.
const courseInfoTimeoutSecondsEnv = "COURSE_INFO_API_TIMEOUT_SECONDS"

func defaultConfig() *Config {
	scorer := recommend.DefaultConfig()
	return &Config{
		Server: ServerConfig{
			Port:        8000,
			Host:        "0.0.0.0",
			Timeout:     30 * time.Second,
			Environment: "development",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
		Security: SecurityConfig{
			CORSOrigins:     []string{"*"},
			RateLimitReqs:   100,
			RateLimitWindow: time.Minute,
			MaxBodyBytes:    1 << 20,
		},
		Catalog: CatalogConfig{
			Path:           "data/courses.csv",
			ReloadInterval: 0,
		},
		Recommend: RecommendConfig{
			CategoryWeight:         scorer.Weights.Category,
			PartialCategoryFactor:  scorer.Weights.PartialCategoryFactor,
			TextWeight:             scorer.Weights.Text,
			TitleWeight:            scorer.Text.TitleWeight,
			DescriptionWeight:      scorer.Text.DescriptionWeight,
			MinTokenLength:         scorer.Text.MinTokenLength,
			DedupeAcrossWeaknesses: scorer.DedupeAcrossWeaknesses,
			MaxWeaknesses:          100,
			RequestTimeout:         10 * time.Second,
		},
		CourseInfo: CourseInfoConfig{
			Enabled:        false,
			BaseURL:        "http://localhost:8001",
			Timeout:        5 * time.Second,
			CacheTTL:       10 * time.Minute,
			RateLimit:      20,
			Burst:          10,
			MaxConcurrency: 8,
			RetryAttempts:  2,
			RetryDelay:     200 * time.Millisecond,
		},
	}
}

// LoadWithKoanf loads configuration from defaults, an optional YAML file and
// the environment, in that order of increasing precedence, then validates it.
func LoadWithKoanf() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if path := findConfigFile(); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := applyTimeoutSeconds(cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

// ConfigFilePath returns the config file LoadWithKoanf would read, or "".
func ConfigFilePath() string {
	return findConfigFile()
}

func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}
	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// applyTimeoutSeconds maps COURSE_INFO_API_TIMEOUT_SECONDS onto
// course_info.timeout. It wins over COURSE_INFO_API_TIMEOUT when both are set.
func applyTimeoutSeconds(cfg *Config) error {
	raw := strings.TrimSpace(os.Getenv(courseInfoTimeoutSecondsEnv))
	if raw == "" {
		return nil
	}
	secs, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return fmt.Errorf("%s must be a number of seconds: %w", courseInfoTimeoutSecondsEnv, err)
	}
	cfg.CourseInfo.Timeout = time.Duration(secs * float64(time.Second))
	return nil
}

// sliceConfigPaths are split on commas when they arrive as strings.
var sliceConfigPaths = []string{
	"security.cors_origins",
}

func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		strVal, ok := k.Get(path).(string)
		if !ok || strVal == "" {
			continue
		}
		parts := strings.Split(strVal, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if len(trimmed) > 0 {
			if err := k.Set(path, trimmed); err != nil {
				return fmt.Errorf("failed to set %s: %w", path, err)
			}
		}
	}
	return nil
}

// envMappings maps environment variable names (lowercased) to koanf paths.
// Unlisted variables are ignored.
var envMappings = map[string]string{
	// Server
	"http_port":    "server.port",
	"http_host":    "server.host",
	"http_timeout": "server.timeout",
	"environment":  "server.environment",

	// Logging
	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",

	// Security
	"cors_origins":        "security.cors_origins",
	"rate_limit_requests": "security.rate_limit_reqs",
	"rate_limit_window":   "security.rate_limit_window",
	"disable_rate_limit":  "security.rate_limit_disabled",
	"max_body_bytes":      "security.max_body_bytes",

	// Catalog
	"course_csv_path":         "catalog.path",
	"catalog_path":            "catalog.path",
	"catalog_format":          "catalog.format",
	"catalog_watch":           "catalog.watch",
	"catalog_reload_interval": "catalog.reload_interval",
	"catalog_enrich":          "catalog.enrich",

	// Recommend
	"recommend_category_weight":          "recommend.category_weight",
	"recommend_partial_category_factor":  "recommend.partial_category_factor",
	"recommend_text_weight":              "recommend.text_weight",
	"recommend_title_weight":             "recommend.title_weight",
	"recommend_description_weight":       "recommend.description_weight",
	"recommend_min_token_length":         "recommend.min_token_length",
	"recommend_dedupe_across_weaknesses": "recommend.dedupe_across_weaknesses",
	"recommend_max_weaknesses":           "recommend.max_weaknesses",
	"recommend_request_timeout":          "recommend.request_timeout",

	// Course info
	"course_info_enabled":         "course_info.enabled",
	"course_info_api_base_url":    "course_info.base_url",
	"course_info_api_timeout":     "course_info.timeout",
	"course_info_cache_ttl":       "course_info.cache_ttl",
	"course_info_rate_limit":      "course_info.rate_limit",
	"course_info_burst":           "course_info.burst",
	"course_info_max_concurrency": "course_info.max_concurrency",
	"course_info_retry_attempts":  "course_info.retry_attempts",
	"course_info_retry_delay":     "course_info.retry_delay",
}

// envTransformFunc maps an environment variable to its koanf path, or ""
// to skip it.
func envTransformFunc(key string) string {
	return envMappings[strings.ToLower(key)]
}

// WatchFile calls onChange whenever the file at path is written or
// replaced. If the watch ends (file removed, watcher error) onError is called
// once and no further notifications follow. The returned stop function
// releases the underlying fsnotify watcher.
func WatchFile(path string, onChange func(), onError func(error)) (stop func() error, err error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", path, err)
	}
	provider := file.Provider(abs)
	err = provider.Watch(func(_ any, err error) {
		if err != nil {
			if onError != nil {
				onError(err)
			}
			return
		}
		onChange()
	})
	if err != nil {
		return nil, fmt.Errorf("failed to watch %s: %w", abs, err)
	}
	return provider.Unwatch, nil
}
