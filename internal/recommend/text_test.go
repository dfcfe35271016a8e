// Coursematch - Remedial Course Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coursematch

package recommend

import (
	"reflect"
	"testing"
)

func TestTokenize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		min  int
		want []string
	}{
		{name: "stop words and plurals", in: "The Students' Fractions!", min: 2, want: []string{"fraction"}},
		{name: "punctuation split", in: "word-problems/ratios", min: 2, want: []string{"word", "problem", "ratio"}},
		{name: "ies plural", in: "Categories", min: 2, want: []string{"category"}},
		{name: "min length", in: "go to x y", min: 2, want: []string{"go"}},
		{name: "fullwidth folded", in: "ＡＬＧＥＢＲＡ", min: 2, want: []string{"algebra"}},
		{name: "empty", in: "   ", min: 2, want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tokenize(tt.in, tt.min); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("tokenize(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestSingular(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"equations": "equation",
		"stories":   "story",
		"class":     "class",
		"status":    "status",
		"analysis":  "analysis",
		"bus":       "bus",
		"math":      "math",
	}
	for in, want := range tests {
		if got := singular(in); got != want {
			t.Errorf("singular(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestNormalizeTag(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"Reading Comprehension":   "reading_comprehension",
		"reading-comprehension":   "reading_comprehension",
		"  READING_COMPREHENSION": "reading_comprehension",
		"math/geometry":           "math_geometry",
		"numeracy!":               "numeracy",
		"":                        "",
	}
	for in, want := range tests {
		if got := normalizeTag(in); got != want {
			t.Errorf("normalizeTag(%q) = %q, want %q", in, got, want)
		}
	}
}
