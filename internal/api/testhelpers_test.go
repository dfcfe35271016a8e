// Coursematch - Remedial Course Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coursematch

package api

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/tomtom215/coursematch/internal/catalog"
	"github.com/tomtom215/coursematch/internal/recommend"
)

func testCatalog() *recommend.Catalog {
	return recommend.NewCatalog([]recommend.Course{
		{ID: "c1", LessonTitle: "Fractions Basics", Description: "Adding and comparing fractions", Tags: []string{"numeracy"}, Link: "https://example.com/c1"},
		{ID: "c2", LessonTitle: "Algebra Foundations", Description: "Solving linear equations", Tags: []string{"algebra"}},
		{ID: "c3", LessonTitle: "Reading Comprehension", Description: "Understanding short texts", Tags: []string{"literacy"}, Metadata: map[string]any{"level": "beginner"}},
	}, "memory")
}

func newTestServer(t *testing.T, provider CatalogProvider, limits HandlerConfig, mw *ChiMiddleware) http.Handler {
	t.Helper()

	rec, err := recommend.NewRecommender(nil, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewRecommender() error = %v", err)
	}
	if provider == nil {
		provider = catalog.NewStaticStore(testCatalog())
	}
	if mw == nil {
		cfg := DefaultChiMiddlewareConfig()
		cfg.RateLimitDisabled = true
		mw = NewChiMiddleware(cfg)
	}
	return NewRouter(NewHandler(provider, rec, limits), mw).SetupChi()
}

func doJSON(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != "" {
		reader = bytes.NewReader([]byte(body))
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) APIResponse {
	t.Helper()

	var env APIResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("response is not an envelope: %v\n%s", err, rec.Body.String())
	}
	return env
}
