// Coursematch - Remedial Course Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coursematch

package recommend

import (
	"fmt"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
)

// Catalog is an immutable snapshot of the course catalog.
// Callers must not modify Courses after the snapshot is published.
type Catalog struct {
	Courses  []Course  `json:"courses"`
	Version  string    `json:"version"`
	Source   string    `json:"source"`
	LoadedAt time.Time `json:"loaded_at"`
}

// NewCatalog builds a snapshot over courses. The version is a content hash,
// so two snapshots of the same courses share a version.
func NewCatalog(courses []Course, source string) *Catalog {
	return &Catalog{
		Courses:  courses,
		Version:  catalogVersion(courses),
		Source:   source,
		LoadedAt: time.Now().UTC(),
	}
}

// Len returns the number of courses, treating a nil catalog as empty.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.Courses)
}

// Validate checks that every course carries its identity field.
func (c *Catalog) Validate() error {
	if c == nil {
		return nil
	}
	return ValidateCourses(c.Courses)
}

// ValidateCourses returns a *ValidationError for the first course whose ID
// is empty.
func ValidateCourses(courses []Course) error {
	for i := range courses {
		if strings.TrimSpace(courses[i].ID) == "" {
			return &ValidationError{
				Field:   fmt.Sprintf("catalog[%d].id", i),
				Index:   i,
				Message: "course is missing its id",
			}
		}
	}
	return nil
}

func catalogVersion(courses []Course) string {
	h := xxhash.New()
	for i := range courses {
		c := &courses[i]
		_, _ = h.WriteString(c.ID)
		_, _ = h.Write([]byte{0})
		_, _ = h.WriteString(c.LessonTitle)
		_, _ = h.Write([]byte{0})
		_, _ = h.WriteString(c.Description)
		_, _ = h.Write([]byte{0})
		_, _ = h.WriteString(strings.Join(c.Tags, ","))
		_, _ = h.Write([]byte{0})
		_, _ = h.WriteString(c.Link)
		_, _ = h.Write([]byte{1})
	}
	return fmt.Sprintf("%016x", h.Sum64())
}
