// Coursematch - Remedial Course Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coursematch

package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"
)

// Tests here use t.Setenv and therefore cannot run in parallel.

func writeConfigFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	t.Setenv(ConfigPathEnvVar, path)
	return path
}

func TestLoadWithKoanf_Defaults(t *testing.T) {
	t.Setenv(ConfigPathEnvVar, filepath.Join(t.TempDir(), "missing.yaml"))

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf() error = %v", err)
	}
	if cfg.Server.Port != 8000 {
		t.Errorf("Server.Port = %d, want 8000", cfg.Server.Port)
	}
	if cfg.Catalog.Path != "data/courses.csv" {
		t.Errorf("Catalog.Path = %q", cfg.Catalog.Path)
	}
	if cfg.Recommend.CategoryWeight != 1.0 || cfg.Recommend.TextWeight != 0.5 {
		t.Errorf("Recommend weights = %+v", cfg.Recommend)
	}
	if cfg.CourseInfo.Enabled {
		t.Error("CourseInfo should be disabled by default")
	}
	if !reflect.DeepEqual(cfg.Security.CORSOrigins, []string{"*"}) {
		t.Errorf("CORSOrigins = %v", cfg.Security.CORSOrigins)
	}
}

func TestLoadWithKoanf_File(t *testing.T) {
	writeConfigFile(t, `
server:
  port: 9100
catalog:
  path: /srv/catalog.yaml
  watch: true
recommend:
  text_weight: 0.25
  dedupe_across_weaknesses: true
security:
  cors_origins:
    - https://a.example
    - https://b.example
`)

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf() error = %v", err)
	}
	if cfg.Server.Port != 9100 {
		t.Errorf("Server.Port = %d, want 9100", cfg.Server.Port)
	}
	if cfg.Catalog.Path != "/srv/catalog.yaml" || !cfg.Catalog.Watch {
		t.Errorf("Catalog = %+v", cfg.Catalog)
	}
	if cfg.Recommend.TextWeight != 0.25 || !cfg.Recommend.DedupeAcrossWeaknesses {
		t.Errorf("Recommend = %+v", cfg.Recommend)
	}
	if cfg.Recommend.CategoryWeight != 1.0 {
		t.Errorf("unset CategoryWeight = %v, want default 1.0", cfg.Recommend.CategoryWeight)
	}
	if len(cfg.Security.CORSOrigins) != 2 {
		t.Errorf("CORSOrigins = %v", cfg.Security.CORSOrigins)
	}
}

func TestLoadWithKoanf_EnvOverridesFile(t *testing.T) {
	writeConfigFile(t, "server:\n  port: 9100\n")
	t.Setenv("HTTP_PORT", "9200")
	t.Setenv("COURSE_CSV_PATH", "/data/courses.json")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("DISABLE_RATE_LIMIT", "true")
	t.Setenv("RECOMMEND_CATEGORY_WEIGHT", "2")
	t.Setenv("CATALOG_RELOAD_INTERVAL", "5m")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf() error = %v", err)
	}
	if cfg.Server.Port != 9200 {
		t.Errorf("Server.Port = %d, want 9200", cfg.Server.Port)
	}
	if cfg.Catalog.Path != "/data/courses.json" {
		t.Errorf("Catalog.Path = %q", cfg.Catalog.Path)
	}
	if want := []string{"https://a.example", "https://b.example"}; !reflect.DeepEqual(cfg.Security.CORSOrigins, want) {
		t.Errorf("CORSOrigins = %v, want %v", cfg.Security.CORSOrigins, want)
	}
	if !cfg.Security.RateLimitDisabled {
		t.Error("RateLimitDisabled should be true")
	}
	if cfg.Recommend.CategoryWeight != 2 {
		t.Errorf("CategoryWeight = %v, want 2", cfg.Recommend.CategoryWeight)
	}
	if cfg.Catalog.ReloadInterval != 5*time.Minute {
		t.Errorf("ReloadInterval = %v", cfg.Catalog.ReloadInterval)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q", cfg.Logging.Level)
	}
}

func TestLoadWithKoanf_CourseInfoTimeoutSeconds(t *testing.T) {
	t.Setenv(ConfigPathEnvVar, filepath.Join(t.TempDir(), "missing.yaml"))
	t.Setenv("COURSE_INFO_ENABLED", "true")
	t.Setenv("COURSE_INFO_API_BASE_URL", "http://course-info:8001")
	t.Setenv("COURSE_INFO_API_TIMEOUT", "10s")
	t.Setenv("COURSE_INFO_API_TIMEOUT_SECONDS", "2.5")

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf() error = %v", err)
	}
	if cfg.CourseInfo.Timeout != 2500*time.Millisecond {
		t.Errorf("CourseInfo.Timeout = %v, want 2.5s", cfg.CourseInfo.Timeout)
	}
	if cfg.CourseInfo.BaseURL != "http://course-info:8001" {
		t.Errorf("CourseInfo.BaseURL = %q", cfg.CourseInfo.BaseURL)
	}
}

func TestLoadWithKoanf_InvalidTimeoutSeconds(t *testing.T) {
	t.Setenv(ConfigPathEnvVar, filepath.Join(t.TempDir(), "missing.yaml"))
	t.Setenv("COURSE_INFO_API_TIMEOUT_SECONDS", "soon")

	_, err := LoadWithKoanf()
	if err == nil || !strings.Contains(err.Error(), "COURSE_INFO_API_TIMEOUT_SECONDS") {
		t.Errorf("error = %v, want mention of COURSE_INFO_API_TIMEOUT_SECONDS", err)
	}
}

func TestLoadWithKoanf_ValidationFailure(t *testing.T) {
	t.Setenv(ConfigPathEnvVar, filepath.Join(t.TempDir(), "missing.yaml"))
	t.Setenv("HTTP_PORT", "70000")

	_, err := LoadWithKoanf()
	if err == nil || !strings.Contains(err.Error(), "HTTP_PORT") {
		t.Errorf("error = %v, want HTTP_PORT validation failure", err)
	}
}

func TestEnvTransformFunc(t *testing.T) {
	tests := map[string]string{
		"COURSE_CSV_PATH":          "catalog.path",
		"COURSE_INFO_API_BASE_URL": "course_info.base_url",
		"HTTP_PORT":                "server.port",
		"LOG_FORMAT":               "logging.format",
		"PATH":                     "",
		"HOME":                     "",
	}
	for in, want := range tests {
		if got := envTransformFunc(in); got != want {
			t.Errorf("envTransformFunc(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestWatchFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "courses.csv")
	if err := os.WriteFile(path, []byte("id\n1\n"), 0o600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	changed := make(chan struct{}, 8)
	stop, err := WatchFile(path, func() { changed <- struct{}{} }, nil)
	if err != nil {
		t.Fatalf("WatchFile() error = %v", err)
	}
	defer func() { _ = stop() }()

	if err := os.WriteFile(path, []byte("id\n1\n2\n"), 0o600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	select {
	case <-changed:
	case <-time.After(5 * time.Second):
		t.Fatal("no change notification within 5s")
	}
}

func TestWatchFile_MissingFile(t *testing.T) {
	if _, err := WatchFile(filepath.Join(t.TempDir(), "nope.csv"), func() {}, nil); err == nil {
		t.Error("expected error for a missing file")
	}
}
