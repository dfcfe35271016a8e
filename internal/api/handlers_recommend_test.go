// Coursematch - Remedial Course Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coursematch

package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/tomtom215/coursematch/internal/catalog"
	"github.com/tomtom215/coursematch/internal/metrics"
	"github.com/tomtom215/coursematch/internal/recommend"
)

func TestRecommend_ReturnsGroupsInInputOrder(t *testing.T) {
	t.Parallel()

	h := newTestServer(t, nil, HandlerConfig{}, nil)

	for _, path := range []string{"/v1/course-recommendations", "/api/v1/course-recommendations"} {
		t.Run(path, func(t *testing.T) {
			rec := doJSON(t, h, http.MethodPost, path, `{
				"weaknesses": [
					{"weakness": "Struggles with reading comprehension", "pattern_type": "literacy"},
					{"text": "Adding fractions", "pattern_type": "numeracy", "id": "w-2"}
				],
				"max_courses_per_weakness": 2
			}`)

			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
			}
			if rec.Header().Get(CatalogVersionHeader) == "" {
				t.Error("missing catalog version header")
			}
			if rec.Header().Get("X-Request-ID") == "" {
				t.Error("missing X-Request-ID header")
			}

			var groups []recommend.WeaknessRecommendations
			if err := json.Unmarshal(rec.Body.Bytes(), &groups); err != nil {
				t.Fatalf("body is not a JSON array: %v", err)
			}
			if len(groups) != 2 {
				t.Fatalf("len(groups) = %d, want 2", len(groups))
			}
			if groups[0].Weakness.Text != "Struggles with reading comprehension" {
				t.Errorf("groups[0].Weakness = %+v", groups[0].Weakness)
			}
			if groups[1].Weakness.ID != "w-2" {
				t.Errorf("groups[1].Weakness.ID = %q, want w-2", groups[1].Weakness.ID)
			}
			if len(groups[0].Recommendations) == 0 || groups[0].Recommendations[0].Course.ID != "c3" {
				t.Errorf("literacy group = %+v", groups[0].Recommendations)
			}
			if len(groups[1].Recommendations) == 0 || groups[1].Recommendations[0].Course.ID != "c1" {
				t.Errorf("numeracy group = %+v", groups[1].Recommendations)
			}
			for _, g := range groups {
				if len(g.Recommendations) > 2 {
					t.Errorf("per-weakness cap exceeded: %d", len(g.Recommendations))
				}
			}
		})
	}
}

func TestRecommend_EmptyWeaknesses(t *testing.T) {
	t.Parallel()

	h := newTestServer(t, nil, HandlerConfig{}, nil)
	rec := doJSON(t, h, http.MethodPost, "/v1/course-recommendations", `{"weaknesses": []}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if got := strings.TrimSpace(rec.Body.String()); got != "[]" {
		t.Errorf("body = %s, want []", got)
	}
}

func TestRecommend_OverallCap(t *testing.T) {
	t.Parallel()

	h := newTestServer(t, nil, HandlerConfig{}, nil)
	rec := doJSON(t, h, http.MethodPost, "/v1/course-recommendations", `{
		"weaknesses": [
			{"text": "fractions", "pattern_type": "numeracy"},
			{"text": "reading", "pattern_type": "literacy"}
		],
		"max_courses_overall": 1
	}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var groups []recommend.WeaknessRecommendations
	if err := json.Unmarshal(rec.Body.Bytes(), &groups); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if len(groups) != 2 {
		t.Fatalf("len(groups) = %d, want 2", len(groups))
	}
	if total := recommend.Total(groups); total != 1 {
		t.Errorf("total recommendations = %d, want 1", total)
	}
	if groups[1].Recommendations == nil {
		t.Error("empty groups must serialize as [] not null")
	}
}

func TestRecommend_Errors(t *testing.T) {
	t.Parallel()

	h := newTestServer(t, nil, HandlerConfig{MaxWeaknesses: 2, MaxBodyBytes: 512}, nil)

	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantCode   string
		wantField  string
	}{
		{name: "malformed JSON", body: `{"weaknesses": [`, wantStatus: http.StatusBadRequest, wantCode: ErrCodeBadRequest},
		{name: "empty body", body: ``, wantStatus: http.StatusBadRequest, wantCode: ErrCodeBadRequest},
		{name: "trailing data", body: `{"weaknesses": []} {}`, wantStatus: http.StatusBadRequest, wantCode: ErrCodeBadRequest},
		{name: "missing weaknesses", body: `{}`, wantStatus: http.StatusBadRequest, wantCode: ErrCodeValidationFailed},
		{name: "zero overall cap", body: `{"weaknesses": [], "max_courses_overall": 0}`, wantStatus: http.StatusBadRequest, wantCode: ErrCodeValidationFailed},
		{name: "negative per-weakness cap", body: `{"weaknesses": [], "max_courses_per_weakness": -1}`, wantStatus: http.StatusBadRequest, wantCode: ErrCodeValidationFailed},
		{name: "missing text", body: `{"weaknesses": [{"text": "ok"}, {"description": "no text"}]}`, wantStatus: http.StatusBadRequest, wantCode: ErrCodeValidationFailed, wantField: "weaknesses[1]"},
		{name: "non-object weakness", body: `{"weaknesses": ["just a string"]}`, wantStatus: http.StatusBadRequest, wantCode: ErrCodeValidationFailed, wantField: "weaknesses[0]"},
		{name: "too many weaknesses", body: `{"weaknesses": [{"text":"a"},{"text":"b"},{"text":"c"}]}`, wantStatus: http.StatusBadRequest, wantCode: ErrCodeValidationFailed, wantField: "weaknesses"},
		{name: "body too large", body: `{"weaknesses": [{"text": "` + strings.Repeat("x", 1024) + `"}]}`, wantStatus: http.StatusRequestEntityTooLarge, wantCode: ErrCodeRequestTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doJSON(t, h, http.MethodPost, "/v1/course-recommendations", tt.body)
			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d, body = %s", rec.Code, tt.wantStatus, rec.Body.String())
			}
			env := decodeEnvelope(t, rec)
			if env.Success || env.Error == nil {
				t.Fatalf("envelope = %+v, want error", env)
			}
			if env.Error.Code != tt.wantCode {
				t.Errorf("code = %q, want %q", env.Error.Code, tt.wantCode)
			}
			if env.Error.RequestID == "" {
				t.Error("error envelope should carry the request id")
			}
			if tt.wantField != "" {
				details, _ := env.Error.Details.(map[string]any)
				field, _ := details["field"].(string)
				if !strings.HasPrefix(field, tt.wantField) {
					t.Errorf("details = %v, want field prefix %q", env.Error.Details, tt.wantField)
				}
			}
		})
	}
}

func TestRecommend_CatalogNotLoaded(t *testing.T) {
	t.Parallel()

	h := newTestServer(t, catalog.NewStaticStore(nil), HandlerConfig{}, nil)

	before := testutil.ToFloat64(metrics.RecommendationRequests.WithLabelValues(metrics.OutcomeUnavailable))
	rec := doJSON(t, h, http.MethodPost, "/v1/course-recommendations", `{"weaknesses": [{"text": "x"}]}`)

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", rec.Code)
	}
	if env := decodeEnvelope(t, rec); env.Error.Code != ErrCodeServiceUnavailable {
		t.Errorf("code = %q", env.Error.Code)
	}
	after := testutil.ToFloat64(metrics.RecommendationRequests.WithLabelValues(metrics.OutcomeUnavailable))
	if after-before < 1 {
		t.Error("unavailable outcome not recorded")
	}
}

func TestRecommend_DeadlineExceeded(t *testing.T) {
	t.Parallel()

	h := newTestServer(t, nil, HandlerConfig{RequestTimeout: 5 * time.Second}, nil)

	ctx, cancel := context.WithDeadline(context.Background(), time.Now().Add(-time.Second))
	defer cancel()
	req := httptest.NewRequest(http.MethodPost, "/v1/course-recommendations",
		strings.NewReader(`{"weaknesses": [{"text": "fractions"}]}`)).WithContext(ctx)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503\n%s", rec.Code, rec.Body.String())
	}
	if env := decodeEnvelope(t, rec); env.Error.Code != ErrCodeTimeout {
		t.Errorf("code = %q, want %q", env.Error.Code, ErrCodeTimeout)
	}
}

func TestRecommend_Idempotent(t *testing.T) {
	t.Parallel()

	h := newTestServer(t, nil, HandlerConfig{RequestTimeout: 5 * time.Second}, nil)
	body := `{"weaknesses": [{"text": "fractions and equations", "pattern_type": "numeracy"}, {"text": "reading"}]}`

	first := doJSON(t, h, http.MethodPost, "/v1/course-recommendations", body)
	second := doJSON(t, h, http.MethodPost, "/v1/course-recommendations", body)

	if first.Code != http.StatusOK || second.Code != http.StatusOK {
		t.Fatalf("status = %d/%d", first.Code, second.Code)
	}
	if first.Body.String() != second.Body.String() {
		t.Errorf("responses differ:\n%s\n%s", first.Body.String(), second.Body.String())
	}
}

func TestRecommendLegacy(t *testing.T) {
	t.Parallel()

	h := newTestServer(t, nil, HandlerConfig{}, nil)
	rec := doJSON(t, h, http.MethodPost, "/recommendations", `{
		"weaknesses": [{"weakness": "reading comprehension", "pattern_type": "literacy", "metadata": {"source": "quiz"}}],
		"max_courses": 1
	}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var resp LegacyRecommendationResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if len(resp.Recommendations) != 1 {
		t.Fatalf("len(recommendations) = %d, want 1", len(resp.Recommendations))
	}
	group := resp.Recommendations[0]
	if group.Weakness.Metadata["source"] != "quiz" {
		t.Errorf("weakness metadata = %v", group.Weakness.Metadata)
	}
	if len(group.RecommendedCourses) != 1 {
		t.Fatalf("max_courses not applied: %d courses", len(group.RecommendedCourses))
	}
	course := group.RecommendedCourses[0]
	if course.CourseID != "c3" || course.WeaknessID != group.Weakness.ID || course.Reason == "" {
		t.Errorf("course = %+v", course)
	}
	if !strings.Contains(rec.Body.String(), `"recommended_courses"`) {
		t.Error("legacy shape must use recommended_courses")
	}
}

func TestRecommendLegacy_Options(t *testing.T) {
	t.Parallel()

	two, three := 2, 3
	tests := []struct {
		name string
		req  LegacyRecommendationRequest
		want *int
	}{
		{name: "max_courses only", req: LegacyRecommendationRequest{MaxCourses: &two}, want: &two},
		{name: "per-weakness wins", req: LegacyRecommendationRequest{MaxCourses: &two, MaxCoursesPerWeakness: &three}, want: &three},
		{name: "neither", req: LegacyRecommendationRequest{}, want: nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.req.Options().MaxCoursesPerWeakness
			if (got == nil) != (tt.want == nil) || (got != nil && *got != *tt.want) {
				t.Errorf("MaxCoursesPerWeakness = %v, want %v", got, tt.want)
			}
		})
	}
}
