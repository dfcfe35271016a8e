// Coursematch - Remedial Course Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coursematch

package courseinfo

import (
	"strings"

	"github.com/goccy/go-json"
)

// Info is the subset of course details used to enrich catalog rows.
type Info struct {
	LessonTitle string `json:"lesson_title,omitempty"`
	Description string `json:"description,omitempty"`
	Link        string `json:"link,omitempty"`
}

// IsEmpty reports whether no field is set.
func (i Info) IsEmpty() bool {
	return i.LessonTitle == "" && i.Description == "" && i.Link == ""
}

var (
	titleKeys       = []string{"lesson_title", "lessonTitle"}
	descriptionKeys = []string{"description", "short_description", "shortDescription"}
	linkKeys        = []string{"link", "course_url"}
)

// decodeInfo parses a course-info response body.
// decodeError is a 200 reply whose body is not a JSON object. Retrying it
// would return the same body.
type decodeError struct {
	err error
}

func (e *decodeError) Error() string {
	return "failed to decode course info: " + e.err.Error()
}

func (e *decodeError) Unwrap() error {
	return e.err
}

func decodeInfo(body []byte) (Info, error) {
	var payload map[string]any
	if err := json.Unmarshal(body, &payload); err != nil {
		return Info{}, &decodeError{err: err}
	}
	if payload == nil {
		return Info{}, nil
	}
	if inner, ok := payload["course"].(map[string]any); ok {
		payload = inner
	}

	return Info{
		LessonTitle: firstString(payload, titleKeys),
		Description: firstString(payload, descriptionKeys),
		Link:        firstString(payload, linkKeys),
	}, nil
}

func firstString(m map[string]any, keys []string) string {
	for _, k := range keys {
		if s, ok := m[k].(string); ok {
			if s = strings.TrimSpace(s); s != "" {
				return s
			}
		}
	}
	return ""
}
