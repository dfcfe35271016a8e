// Coursematch - Remedial Course Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coursematch

package recommend

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// Matcher scores catalog courses against a single weakness.
// It holds only read-only configuration and is safe for concurrent use.
type Matcher struct {
	weights ScoringWeights
	text    TextConfig
}

// NewMatcher creates a Matcher. A nil cfg uses DefaultConfig.
func NewMatcher(cfg *Config) (*Matcher, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &Matcher{
		weights: cfg.Weights,
		text:    cfg.Text,
	}, nil
}

// courseProfile caches the normalized matching features of one course.
type courseProfile struct {
	tags       []string
	titleToks  map[string]struct{}
	descToks   map[string]struct{}
	catalogIdx int
}

// weaknessProfile caches the normalized matching features of one weakness.
type weaknessProfile struct {
	hint   string
	tokens []string // distinct, sorted
}

// Match scores every course against w and returns the ranked, de-duplicated
// and truncated recommendations. A nil limit returns all scored courses.
func (m *Matcher) Match(w Weakness, courses []Course, limit *int) ([]Recommendation, error) {
	if err := checkLimit("max_courses_per_weakness", limit); err != nil {
		return nil, err
	}
	if err := ValidateCourses(courses); err != nil {
		return nil, err
	}
	return m.match(w, courses, m.profileCourses(courses), limit)
}

// CategoryScore returns the categorical sub-score of a weakness category
// hint against a course's tags.
func (m *Matcher) CategoryScore(hint string, tags []string) float64 {
	normTags := make([]string, 0, len(tags))
	for _, t := range tags {
		if nt := normalizeTag(t); nt != "" {
			normTags = append(normTags, nt)
		}
	}
	return m.categoryScore(normalizeTag(hint), normTags)
}

// TextScore returns the textual sub-score of w against c.
func (m *Matcher) TextScore(w Weakness, c Course) float64 {
	score, _ := m.textScore(m.profileWeakness(w), m.profileCourse(c, 0))
	return score
}

func (m *Matcher) match(w Weakness, courses []Course, profiles []courseProfile, limit *int) ([]Recommendation, error) {
	wp := m.profileWeakness(w)

	recs := make([]Recommendation, 0)
	for i := range profiles {
		p := &profiles[i]
		category := m.categoryScore(wp.hint, p.tags)
		text, shared := m.textScore(wp, *p)
		score := category + text
		if math.IsNaN(score) || math.IsInf(score, 0) {
			return nil, &InternalError{
				Op:  "match",
				Err: fmt.Errorf("non-finite score %v for course %q", score, courses[p.catalogIdx].ID),
			}
		}
		if score <= 0 {
			continue
		}
		recs = append(recs, Recommendation{
			Course:     courses[p.catalogIdx],
			Score:      score,
			WeaknessID: w.ID,
			Reason:     buildReason(wp.hint, category, category == m.weights.Category, shared),
			Breakdown:  ScoreBreakdown{Category: category, Text: text},
		})
	}

	// Stable keeps catalog order for equal scores.
	sort.SliceStable(recs, func(i, j int) bool {
		return recs[i].Score > recs[j].Score
	})

	recs = dedupeByCourse(recs)

	if limit != nil && len(recs) > *limit {
		recs = recs[:*limit]
	}
	return recs, nil
}

func (m *Matcher) categoryScore(hint string, tags []string) float64 {
	if hint == "" || m.weights.Category == 0 {
		return 0
	}
	best := 0.0
	for _, tag := range tags {
		if tag == hint {
			return m.weights.Category
		}
		if partialTagMatch(hint, tag) {
			best = m.weights.Category * m.weights.PartialCategoryFactor
		}
	}
	return best
}

// minPrefixSegmentLen is the shortest segment that may match as a prefix of
// another ("math" vs "mathematics"). Shorter ones must match whole.
const minPrefixSegmentLen = 4

// partialTagMatch reports whether two tags share a "_" segment
// ("reading_comprehension" vs "reading") or a segment of one starts a
// segment of the other. Containment in the middle of a segment does not
// count, so "art" does not match "smart_goals".
func partialTagMatch(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	segs := tagSegments(b)
	for _, sa := range tagSegments(a) {
		for _, sb := range segs {
			if segmentMatch(sa, sb) {
				return true
			}
		}
	}
	return false
}

func segmentMatch(a, b string) bool {
	if a == b {
		return true
	}
	if len(a) > len(b) {
		a, b = b, a
	}
	return len([]rune(a)) >= minPrefixSegmentLen && strings.HasPrefix(b, a)
}

// textScore returns the weighted token overlap ratio and the shared tokens.
func (m *Matcher) textScore(wp weaknessProfile, cp courseProfile) (float64, []string) {
	if len(wp.tokens) == 0 || m.weights.Text == 0 {
		return 0, nil
	}
	var hits float64
	var shared []string
	for _, tok := range wp.tokens {
		if _, ok := cp.titleToks[tok]; ok {
			hits += m.text.TitleWeight
			shared = append(shared, tok)
			continue
		}
		if _, ok := cp.descToks[tok]; ok {
			hits += m.text.DescriptionWeight
			shared = append(shared, tok)
		}
	}
	return m.weights.Text * hits / float64(len(wp.tokens)), shared
}

func (m *Matcher) profileWeakness(w Weakness) weaknessProfile {
	set := tokenSet(m.text.MinTokenLength, w.Text, w.Description)
	tokens := make([]string, 0, len(set))
	for tok := range set {
		tokens = append(tokens, tok)
	}
	sort.Strings(tokens)
	return weaknessProfile{
		hint:   normalizeTag(w.PatternType),
		tokens: tokens,
	}
}

func (m *Matcher) profileCourses(courses []Course) []courseProfile {
	profiles := make([]courseProfile, len(courses))
	for i := range courses {
		profiles[i] = m.profileCourse(courses[i], i)
	}
	return profiles
}

func (m *Matcher) profileCourse(c Course, idx int) courseProfile {
	tags := make([]string, 0, len(c.Tags))
	for _, t := range c.Tags {
		if nt := normalizeTag(t); nt != "" {
			tags = append(tags, nt)
		}
	}
	return courseProfile{
		tags:       tags,
		titleToks:  tokenSet(m.text.MinTokenLength, append([]string{c.LessonTitle}, c.Tags...)...),
		descToks:   tokenSet(m.text.MinTokenLength, c.Description),
		catalogIdx: idx,
	}
}

// dedupeByCourse keeps the first occurrence of each course ID. Input must be
// sorted best first.
func dedupeByCourse(recs []Recommendation) []Recommendation {
	seen := make(map[string]struct{}, len(recs))
	out := recs[:0]
	for _, r := range recs {
		if _, dup := seen[r.Course.ID]; dup {
			continue
		}
		seen[r.Course.ID] = struct{}{}
		out = append(out, r)
	}
	return out
}

func buildReason(hint string, category float64, exact bool, shared []string) string {
	parts := make([]string, 0, 2)
	switch {
	case category > 0 && exact:
		parts = append(parts, fmt.Sprintf("matches category '%s'", hint))
	case category > 0:
		parts = append(parts, fmt.Sprintf("partially matches category '%s'", hint))
	}
	if len(shared) > 0 {
		parts = append(parts, "shares terms: "+strings.Join(shared, ", "))
	}
	return strings.Join(parts, "; ")
}

func checkLimit(field string, limit *int) error {
	if limit != nil && *limit < 1 {
		return newValidationError(field, "must be a positive integer, got %d", *limit)
	}
	return nil
}
