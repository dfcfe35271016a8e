// Coursematch - Remedial Course Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coursematch

package api

import (
	"github.com/tomtom215/coursematch/internal/recommend"
)

// LegacyRecommendationResponse is the body of POST /recommendations.
type LegacyRecommendationResponse struct {
	Recommendations []LegacyWeaknessGroup `json:"recommendations"`
}

// LegacyWeaknessGroup pairs a weakness with its recommended courses.
type LegacyWeaknessGroup struct {
	Weakness           LegacyWeakness      `json:"weakness"`
	RecommendedCourses []LegacyCourseScore `json:"recommended_courses"`
}

// LegacyWeakness is the weakness as echoed by the legacy route.
type LegacyWeakness struct {
	ID         string         `json:"id"`
	Text       string         `json:"text"`
	Importance float64        `json:"importance"`
	Metadata   map[string]any `json:"metadata"`
}

// LegacyCourseScore flattens a course and its score into one object.
type LegacyCourseScore struct {
	CourseID    string         `json:"course_id"`
	LessonTitle string         `json:"lesson_title"`
	Description string         `json:"description"`
	Link        string         `json:"link"`
	Metadata    map[string]any `json:"metadata"`
	WeaknessID  string         `json:"weakness_id"`
	Score       float64        `json:"score"`
	Reason      string         `json:"reason"`
}

func toLegacyResponse(groups []recommend.WeaknessRecommendations) LegacyRecommendationResponse {
	out := LegacyRecommendationResponse{Recommendations: make([]LegacyWeaknessGroup, len(groups))}
	for i, g := range groups {
		courses := make([]LegacyCourseScore, len(g.Recommendations))
		for j, rec := range g.Recommendations {
			courses[j] = LegacyCourseScore{
				CourseID:    rec.Course.ID,
				LessonTitle: rec.Course.LessonTitle,
				Description: rec.Course.Description,
				Link:        rec.Course.Link,
				Metadata:    nonNilMap(rec.Course.Metadata),
				WeaknessID:  rec.WeaknessID,
				Score:       rec.Score,
				Reason:      rec.Reason,
			}
		}
		out.Recommendations[i] = LegacyWeaknessGroup{
			Weakness: LegacyWeakness{
				ID:         g.Weakness.ID,
				Text:       g.Weakness.Text,
				Importance: g.Weakness.Importance,
				Metadata:   nonNilMap(g.Weakness.Metadata),
			},
			RecommendedCourses: courses,
		}
	}
	return out
}

func nonNilMap(m map[string]any) map[string]any {
	if m == nil {
		return map[string]any{}
	}
	return m
}
