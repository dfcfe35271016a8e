// Coursematch - Remedial Course Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coursematch

package api

import (
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"

	"github.com/tomtom215/coursematch/internal/catalog"
)

func writeCatalogFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
}

func TestCatalogSummary(t *testing.T) {
	t.Parallel()

	h := newTestServer(t, nil, HandlerConfig{}, nil)
	rec := doJSON(t, h, http.MethodGet, "/api/v1/catalog", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	env := decodeEnvelope(t, rec)
	data, _ := env.Data.(map[string]any)
	if data["loaded"] != true || data["courses"] != float64(3) || data["source"] != "memory" {
		t.Errorf("summary = %v", data)
	}
}

func TestCatalogReload(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "courses.csv")
	writeCatalogFile(t, path, "id,lesson_title,pattern_type\nc1,Fractions,numeracy\n")

	store := catalog.NewStore(path, "", nil, zerolog.Nop())
	h := newTestServer(t, store, HandlerConfig{}, nil)

	// Before the first load the recommendation route is unavailable.
	rec := doJSON(t, h, http.MethodPost, "/v1/course-recommendations", `{"weaknesses":[{"text":"fractions"}]}`)
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status before load = %d, want 503", rec.Code)
	}

	rec = doJSON(t, h, http.MethodPost, "/api/v1/catalog/reload", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("reload status = %d, body = %s", rec.Code, rec.Body.String())
	}
	data, _ := decodeEnvelope(t, rec).Data.(map[string]any)
	if data["changed"] != true || data["courses"] != float64(1) {
		t.Errorf("reload result = %v", data)
	}
	firstVersion, _ := data["version"].(string)

	rec = doJSON(t, h, http.MethodPost, "/v1/course-recommendations", `{"weaknesses":[{"text":"fractions"}]}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status after load = %d", rec.Code)
	}
	if got := rec.Header().Get(CatalogVersionHeader); got != firstVersion {
		t.Errorf("%s = %q, want %q", CatalogVersionHeader, got, firstVersion)
	}

	// An invalid file is rejected and the previous snapshot stays live.
	writeCatalogFile(t, path, "id,lesson_title\n,Missing ID\n")
	rec = doJSON(t, h, http.MethodPost, "/api/v1/catalog/reload", "")
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("invalid reload status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if env := decodeEnvelope(t, rec); env.Error == nil || env.Error.Code != ErrCodeValidationFailed {
		t.Errorf("envelope = %+v", env)
	}
	if got := store.Summary().Version; got != firstVersion {
		t.Errorf("version after failed reload = %q, want %q", got, firstVersion)
	}

	// A missing file is an internal error, not a validation error.
	if err := os.Remove(path); err != nil {
		t.Fatalf("Remove() error = %v", err)
	}
	rec = doJSON(t, h, http.MethodPost, "/api/v1/catalog/reload", "")
	if rec.Code != http.StatusInternalServerError {
		t.Errorf("missing file reload status = %d, want 500", rec.Code)
	}
}

func TestCatalogReload_StaticStoreWithoutCatalog(t *testing.T) {
	t.Parallel()

	h := newTestServer(t, catalog.NewStaticStore(nil), HandlerConfig{}, nil)
	rec := doJSON(t, h, http.MethodPost, "/api/v1/catalog/reload", "")

	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", rec.Code)
	}
}
