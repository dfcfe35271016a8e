// Coursematch - Remedial Course Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coursematch

package recommend

import (
	"math"
	"strings"
	"testing"
)

func newTestMatcher(t *testing.T) *Matcher {
	t.Helper()
	m, err := NewMatcher(nil)
	if err != nil {
		t.Fatalf("NewMatcher() error = %v", err)
	}
	return m
}

func TestMatcher_ExactCategoryOutranksNoCategory(t *testing.T) {
	t.Parallel()

	m := newTestMatcher(t)
	w := Weakness{ID: "w", Text: "Adding fractions with unlike denominators", PatternType: "numeracy"}
	courses := []Course{
		{ID: "plain", LessonTitle: "Fractions Workshop", Description: "Adding fractions", Tags: []string{"arts"}},
		{ID: "tagged", LessonTitle: "Fractions Workshop", Description: "Adding fractions", Tags: []string{"numeracy"}},
	}

	recs, err := m.Match(w, courses, nil)
	if err != nil {
		t.Fatalf("Match() error = %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("len(recs) = %d, want 2", len(recs))
	}
	if recs[0].Course.ID != "tagged" {
		t.Errorf("top = %q, want tagged", recs[0].Course.ID)
	}
	if !(recs[0].Score > recs[1].Score) {
		t.Errorf("tagged score %v should be strictly greater than %v", recs[0].Score, recs[1].Score)
	}
}

func TestMatcher_CategoryScore(t *testing.T) {
	t.Parallel()

	m := newTestMatcher(t)
	tests := []struct {
		name string
		hint string
		tags []string
		want float64
	}{
		{name: "exact", hint: "numeracy", tags: []string{"numeracy"}, want: 1.0},
		{name: "case and separators", hint: "Reading Comprehension", tags: []string{"reading-comprehension"}, want: 1.0},
		{name: "shared segment", hint: "reading", tags: []string{"reading_comprehension"}, want: 0.5},
		{name: "segment prefix", hint: "math", tags: []string{"mathematics"}, want: 0.5},
		{name: "prefix of later segment", hint: "fraction", tags: []string{"numeracy_fractions"}, want: 0.5},
		{name: "inside a segment", hint: "art", tags: []string{"smart_goals"}, want: 0},
		{name: "suffix of a segment", hint: "ratio", tags: []string{"proration"}, want: 0},
		{name: "short prefix", hint: "art", tags: []string{"artistry"}, want: 0},
		{name: "exact beats partial", hint: "reading", tags: []string{"reading_fluency", "reading"}, want: 1.0},
		{name: "no match", hint: "numeracy", tags: []string{"literacy"}, want: 0},
		{name: "empty hint", hint: "", tags: []string{"numeracy"}, want: 0},
		{name: "no tags", hint: "numeracy", tags: nil, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := m.CategoryScore(tt.hint, tt.tags); got != tt.want {
				t.Errorf("CategoryScore(%q, %v) = %v, want %v", tt.hint, tt.tags, got, tt.want)
			}
		})
	}
}

func TestMatcher_TextScore(t *testing.T) {
	t.Parallel()

	m := newTestMatcher(t)
	w := Weakness{Text: "linear equations"}

	tests := []struct {
		name   string
		course Course
		want   float64
	}{
		{name: "all in title", course: Course{LessonTitle: "Linear Equations"}, want: 0.5},
		{name: "half in title", course: Course{LessonTitle: "Quadratic Equations"}, want: 0.25},
		{name: "description only", course: Course{LessonTitle: "Algebra", Description: "Solving equations"}, want: 0.125},
		{name: "tag counts as title", course: Course{LessonTitle: "Algebra", Tags: []string{"linear"}}, want: 0.25},
		{name: "no overlap", course: Course{LessonTitle: "Phonics"}, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := m.TextScore(w, tt.course); math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("TextScore() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMatcher_ExcludesZeroScores(t *testing.T) {
	t.Parallel()

	m := newTestMatcher(t)
	recs, err := m.Match(
		Weakness{ID: "w", Text: "phonics", PatternType: "literacy"},
		[]Course{{ID: "a", LessonTitle: "Geometry", Tags: []string{"numeracy"}}},
		nil,
	)
	if err != nil {
		t.Fatalf("Match() error = %v", err)
	}
	if recs == nil || len(recs) != 0 {
		t.Errorf("Match() = %v, want empty non-nil slice", recs)
	}
}

func TestMatcher_EmptyCatalog(t *testing.T) {
	t.Parallel()

	m := newTestMatcher(t)
	recs, err := m.Match(Weakness{ID: "w", Text: "anything"}, nil, Limit(3))
	if err != nil {
		t.Fatalf("Match() error = %v", err)
	}
	if len(recs) != 0 {
		t.Errorf("len(recs) = %d, want 0", len(recs))
	}
}

func TestMatcher_StableTies(t *testing.T) {
	t.Parallel()

	m := newTestMatcher(t)
	courses := []Course{
		{ID: "third", LessonTitle: "C", Tags: []string{"numeracy"}},
		{ID: "first", LessonTitle: "A", Tags: []string{"numeracy"}},
		{ID: "second", LessonTitle: "B", Tags: []string{"numeracy"}},
	}
	recs, err := m.Match(Weakness{ID: "w", Text: "zzz", PatternType: "numeracy"}, courses, nil)
	if err != nil {
		t.Fatalf("Match() error = %v", err)
	}
	got := strings.Join(ids(recs), ",")
	if got != "third,first,second" {
		t.Errorf("order = %s, want catalog order third,first,second", got)
	}
}

func TestMatcher_DedupesByCourseID(t *testing.T) {
	t.Parallel()

	m := newTestMatcher(t)
	courses := []Course{
		{ID: "dup", LessonTitle: "Counting", Tags: []string{"numeracy"}},
		{ID: "dup", LessonTitle: "Counting Again", Tags: []string{"numeracy"}, Description: "counting"},
		{ID: "solo", LessonTitle: "Counting Coins", Tags: []string{"numeracy"}},
	}
	recs, err := m.Match(Weakness{ID: "w", Text: "counting", PatternType: "numeracy"}, courses, nil)
	if err != nil {
		t.Fatalf("Match() error = %v", err)
	}
	assertSortedUnique(t, recs)
	if len(recs) != 2 {
		t.Errorf("len(recs) = %d, want 2", len(recs))
	}
}

func TestMatcher_Limit(t *testing.T) {
	t.Parallel()

	m := newTestMatcher(t)
	courses := []Course{
		{ID: "a", LessonTitle: "A", Tags: []string{"numeracy"}},
		{ID: "b", LessonTitle: "B", Tags: []string{"numeracy"}},
		{ID: "c", LessonTitle: "C", Tags: []string{"numeracy"}},
	}
	w := Weakness{ID: "w", Text: "zzz", PatternType: "numeracy"}

	recs, err := m.Match(w, courses, Limit(2))
	if err != nil {
		t.Fatalf("Match() error = %v", err)
	}
	if len(recs) != 2 {
		t.Errorf("len(recs) = %d, want 2", len(recs))
	}

	if _, err := m.Match(w, courses, Limit(0)); !IsValidation(err) {
		t.Errorf("Match(limit=0) error = %v, want validation error", err)
	}
}

func TestMatcher_MissingCourseID(t *testing.T) {
	t.Parallel()

	m := newTestMatcher(t)
	courses := []Course{
		{ID: "a", LessonTitle: "Counting", Tags: []string{"numeracy"}},
		{LessonTitle: "Unrelated"},
	}
	_, err := m.Match(Weakness{ID: "w", Text: "counting"}, courses, nil)
	ve, ok := AsValidation(err)
	if !ok {
		t.Fatalf("error = %v, want *ValidationError", err)
	}
	if ve.Index != 1 || ve.Field != "catalog[1].id" {
		t.Errorf("ValidationError = %+v", ve)
	}
}

func TestMatcher_Reason(t *testing.T) {
	t.Parallel()

	m := newTestMatcher(t)
	courses := []Course{
		{ID: "exact", LessonTitle: "Fractions", Tags: []string{"numeracy"}},
		{ID: "partial", LessonTitle: "Fractions", Tags: []string{"numeracy_advanced"}},
	}
	recs, err := m.Match(Weakness{ID: "w", Text: "fractions", PatternType: "numeracy"}, courses, nil)
	if err != nil {
		t.Fatalf("Match() error = %v", err)
	}
	if want := "matches category 'numeracy'; shares terms: fraction"; recs[0].Reason != want {
		t.Errorf("Reason = %q, want %q", recs[0].Reason, want)
	}
	if !strings.HasPrefix(recs[1].Reason, "partially matches category") {
		t.Errorf("Reason = %q, want partial category prefix", recs[1].Reason)
	}
	if recs[0].Breakdown.Category != 1.0 || recs[0].Breakdown.Text != 0.5 {
		t.Errorf("Breakdown = %+v", recs[0].Breakdown)
	}
}

func TestMatcher_WeightsIsolateSignals(t *testing.T) {
	t.Parallel()

	courses := []Course{
		{ID: "a", LessonTitle: "Fractions", Tags: []string{"literacy"}},
		{ID: "b", LessonTitle: "Phonics", Tags: []string{"numeracy"}},
	}
	w := Weakness{ID: "w", Text: "fractions", PatternType: "numeracy"}

	textOnly := DefaultConfig()
	textOnly.Weights.Category = 0
	m, err := NewMatcher(textOnly)
	if err != nil {
		t.Fatalf("NewMatcher() error = %v", err)
	}
	recs, _ := m.Match(w, courses, nil)
	if got := ids(recs); len(got) != 1 || got[0] != "a" {
		t.Errorf("text-only = %v, want [a]", got)
	}

	categoryOnly := DefaultConfig()
	categoryOnly.Weights.Text = 0
	m, err = NewMatcher(categoryOnly)
	if err != nil {
		t.Fatalf("NewMatcher() error = %v", err)
	}
	recs, _ = m.Match(w, courses, nil)
	if got := ids(recs); len(got) != 1 || got[0] != "b" {
		t.Errorf("category-only = %v, want [b]", got)
	}
}
