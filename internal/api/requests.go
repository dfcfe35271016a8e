// Coursematch - Remedial Course Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coursematch

package api

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/goccy/go-json"

	"github.com/tomtom215/coursematch/internal/recommend"
	"github.com/tomtom215/coursematch/internal/validation"
)

// errMalformedBody marks decode failures that map to 400 BAD_REQUEST.
var errMalformedBody = errors.New("malformed request body")

// RecommendationRequest is the body of POST /v1/course-recommendations.
//
// Weaknesses items stay untyped so that each one is normalized, and
// reported by index, by the recommend package.
type RecommendationRequest struct {
	Weaknesses            []any `json:"weaknesses" validate:"required"`
	MaxCoursesOverall     *int  `json:"max_courses_overall,omitempty" validate:"omitempty,min=1"`
	MaxCoursesPerWeakness *int  `json:"max_courses_per_weakness,omitempty" validate:"omitempty,min=1"`
}

// Options returns the caps of the request.
func (r *RecommendationRequest) Options() recommend.Options {
	return recommend.Options{
		MaxCoursesOverall:     r.MaxCoursesOverall,
		MaxCoursesPerWeakness: r.MaxCoursesPerWeakness,
	}
}

// LegacyRecommendationRequest is the body of POST /recommendations.
// max_courses is the per-weakness cap; max_courses_per_weakness wins when
// both are present.
type LegacyRecommendationRequest struct {
	Weaknesses            []any `json:"weaknesses" validate:"required"`
	MaxCourses            *int  `json:"max_courses,omitempty" validate:"omitempty,min=1"`
	MaxCoursesPerWeakness *int  `json:"max_courses_per_weakness,omitempty" validate:"omitempty,min=1"`
	MaxCoursesOverall     *int  `json:"max_courses_overall,omitempty" validate:"omitempty,min=1"`
}

// Options returns the caps of the request.
func (r *LegacyRecommendationRequest) Options() recommend.Options {
	perWeakness := r.MaxCoursesPerWeakness
	if perWeakness == nil {
		perWeakness = r.MaxCourses
	}
	return recommend.Options{
		MaxCoursesOverall:     r.MaxCoursesOverall,
		MaxCoursesPerWeakness: perWeakness,
	}
}

// decodeJSON reads one JSON document from r into dst and validates it.
// Numbers decode as json.Number so integer ids survive unchanged.
func decodeJSON(w http.ResponseWriter, r *http.Request, maxBytes int64, dst any) error {
	body := r.Body
	if maxBytes > 0 {
		body = http.MaxBytesReader(w, r.Body, maxBytes)
	}

	data, err := io.ReadAll(body)
	if err != nil {
		var mbe *http.MaxBytesError
		if errors.As(err, &mbe) {
			return mbe
		}
		return fmt.Errorf("%w: %v", errMalformedBody, err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return fmt.Errorf("%w: %w", errMalformedBody, ErrEmptyBody)
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("%w: invalid JSON: %v", errMalformedBody, err)
	}
	if dec.More() {
		return fmt.Errorf("%w: %w", errMalformedBody, ErrTrailingData)
	}

	if verr := validation.ValidateStruct(dst); verr != nil {
		return verr
	}
	return nil
}
