// Coursematch - Remedial Course Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coursematch

package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/coursematch/internal/config"
	"github.com/tomtom215/coursematch/internal/recommend"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()

	path := filepath.Join(t.TempDir(), "courses.csv")
	csv := "id,lesson_title,description,pattern_type\n" +
		"c1,Fractions Basics,Adding fractions,numeracy\n" +
		"c2,Reading Skills,Short texts,literacy\n"
	if err := os.WriteFile(path, []byte(csv), 0o600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	scorer := recommend.DefaultConfig()
	return &config.Config{
		Server:  config.ServerConfig{Host: "127.0.0.1", Port: 0, Timeout: 5 * time.Second},
		Logging: config.LoggingConfig{Level: "error", Format: "json"},
		Security: config.SecurityConfig{
			RateLimitDisabled: true,
			MaxBodyBytes:      1 << 20,
		},
		Catalog: config.CatalogConfig{Path: path},
		Recommend: config.RecommendConfig{
			CategoryWeight:        scorer.Weights.Category,
			PartialCategoryFactor: scorer.Weights.PartialCategoryFactor,
			TextWeight:            scorer.Weights.Text,
			TitleWeight:           scorer.Text.TitleWeight,
			DescriptionWeight:     scorer.Text.DescriptionWeight,
			MinTokenLength:        scorer.Text.MinTokenLength,
			MaxWeaknesses:         10,
			RequestTimeout:        time.Second,
		},
	}
}

func TestNewApp_ServesAfterFirstLoad(t *testing.T) {
	cfg := testConfig(t)
	a, err := newApp(cfg, zerolog.Nop())
	if err != nil {
		t.Fatalf("newApp() error = %v", err)
	}

	ready := func() int {
		rec := httptest.NewRecorder()
		a.server.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/health/ready", nil))
		return rec.Code
	}
	if got := ready(); got != http.StatusServiceUnavailable {
		t.Fatalf("ready before load = %d, want 503", got)
	}

	// Only the data layer is exercised; the HTTP server is driven directly.
	result, err := a.store.Reload(context.Background())
	if err != nil {
		t.Fatalf("Reload() error = %v", err)
	}
	if result.Courses != 2 {
		t.Errorf("courses = %d, want 2", result.Courses)
	}
	if got := ready(); got != http.StatusOK {
		t.Fatalf("ready after load = %d, want 200", got)
	}

	body := `{"weaknesses":[{"weakness":"adding fractions","pattern_type":"numeracy"}]}`
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/course-recommendations", strings.NewReader(body))
	a.server.Handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), `"c1"`) {
		t.Errorf("body = %s, want course c1", rec.Body.String())
	}
}

func TestNewApp_WithCourseInfo(t *testing.T) {
	cfg := testConfig(t)
	cfg.CourseInfo = config.CourseInfoConfig{
		Enabled:        true,
		BaseURL:        "http://127.0.0.1:1",
		Timeout:        time.Second,
		CacheTTL:       time.Minute,
		MaxConcurrency: 2,
	}
	cfg.Catalog.Enrich = true

	a, err := newApp(cfg, zerolog.Nop())
	if err != nil {
		t.Fatalf("newApp() error = %v", err)
	}
	if a.server.Addr != "127.0.0.1:0" {
		t.Errorf("Addr = %q", a.server.Addr)
	}
}

func TestNewApp_InvalidCourseInfo(t *testing.T) {
	cfg := testConfig(t)
	cfg.CourseInfo = config.CourseInfoConfig{Enabled: true, BaseURL: "::not a url"}

	if _, err := newApp(cfg, zerolog.Nop()); err == nil {
		t.Error("newApp() error = nil, want invalid base URL error")
	}
}
