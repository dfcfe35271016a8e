// Coursematch - Remedial Course Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coursematch

package recommend

import (
	"time"
)

// Weakness identifies one learner deficiency.
// Values are produced by NormalizeWeakness and are not modified afterwards.
type Weakness struct {
	// ID identifies the weakness within a request.
	// Derived from the weakness content when the caller does not supply one.
	ID string `json:"id"`

	// Text is the free-form description of the deficiency (required).
	Text string `json:"text"`

	// Description is optional supplementary detail used for matching.
	Description string `json:"description,omitempty"`

	// PatternType is an optional coarse category hint (e.g. "numeracy").
	PatternType string `json:"pattern_type,omitempty"`

	// Importance is a caller-supplied priority. Default: 1.0, also used
	// when the caller sends 0.
	// It is carried through to the output and does not affect scoring.
	Importance float64 `json:"importance"`

	// Metadata is opaque caller data echoed back in the response.
	Metadata map[string]any `json:"metadata,omitempty"`
}

// Course is a catalog entry representing a remedial lesson.
type Course struct {
	// ID is the required identity field of a catalog entry.
	ID string `json:"id"`

	// LessonTitle is the display name.
	LessonTitle string `json:"lesson_title"`

	// Description is free text used for textual scoring.
	Description string `json:"description,omitempty"`

	// Link points at the lesson.
	Link string `json:"link,omitempty"`

	// Tags holds pattern types used for categorical matching.
	Tags []string `json:"tags,omitempty"`

	// Metadata is opaque catalog data.
	Metadata map[string]any `json:"metadata,omitempty"`
}

// ScoreBreakdown exposes the two sub-scores summed into Recommendation.Score.
type ScoreBreakdown struct {
	Category float64 `json:"category"`
	Text     float64 `json:"text"`
}

// Recommendation pairs one Course with its matching strength for one Weakness.
type Recommendation struct {
	Course     Course         `json:"course"`
	Score      float64        `json:"score"`
	WeaknessID string         `json:"weakness_id"`
	Reason     string         `json:"reason"`
	Breakdown  ScoreBreakdown `json:"breakdown"`
}

// WeaknessRecommendations groups one Weakness with its ranked recommendations.
type WeaknessRecommendations struct {
	Weakness        Weakness         `json:"weakness"`
	Recommendations []Recommendation `json:"recommendations"`
}

// Options carries the two independent caps of a recommendation call.
// A nil cap means unbounded at that level.
type Options struct {
	MaxCoursesOverall     *int `json:"max_courses_overall,omitempty"`
	MaxCoursesPerWeakness *int `json:"max_courses_per_weakness,omitempty"`
}

// Limit returns a pointer to n, for building Options literals.
func Limit(n int) *int {
	return &n
}

// Request is the input to Recommender.Recommend.
type Request struct {
	// Weaknesses holds raw weakness values (maps or Weakness values).
	Weaknesses []any

	// Catalog is the snapshot to score against.
	Catalog *Catalog

	// Options are the caps for this call.
	Options Options

	// RequestID is used for log correlation only.
	RequestID string
}

// Response is the output of Recommender.Recommend.
type Response struct {
	Results  []WeaknessRecommendations `json:"results"`
	Metadata ResponseMetadata          `json:"metadata"`
}

// ResponseMetadata describes how a response was produced.
type ResponseMetadata struct {
	CatalogVersion  string        `json:"catalog_version"`
	CatalogSize     int           `json:"catalog_size"`
	Weaknesses      int           `json:"weaknesses"`
	Recommendations int           `json:"recommendations"`
	Latency         time.Duration `json:"-"`
}

// Total returns the number of recommendations across all groups.
func Total(groups []WeaknessRecommendations) int {
	n := 0
	for i := range groups {
		n += len(groups[i].Recommendations)
	}
	return n
}
