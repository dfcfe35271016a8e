// Coursematch - Remedial Course Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coursematch

package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/tomtom215/coursematch/internal/catalog"
	"github.com/tomtom215/coursematch/internal/logging"
	"github.com/tomtom215/coursematch/internal/metrics"
	"github.com/tomtom215/coursematch/internal/recommend"
	"github.com/tomtom215/coursematch/internal/validation"
)

// Request body errors
var (
	// ErrEmptyBody indicates a POST without a JSON body
	ErrEmptyBody = errors.New("request body is empty")

	// ErrTrailingData indicates extra content after the JSON document
	ErrTrailingData = errors.New("request body must contain a single JSON object")

	// ErrTooManyWeaknesses indicates a request above recommend.max_weaknesses
	ErrTooManyWeaknesses = errors.New("too many weaknesses")
)

// validationDetails is the details object of a VALIDATION_FAILED error.
type validationDetails struct {
	Field string `json:"field,omitempty"`
	Index *int   `json:"index,omitempty"`
}

// writeRecommendError maps a recommendation failure to a response and
// records the outcome.
func writeRecommendError(rw *ResponseWriter, r *http.Request, err error) {
	var (
		ve  *recommend.ValidationError
		rve *validation.RequestValidationError
		mbe *http.MaxBytesError
	)

	switch {
	case errors.As(err, &ve):
		metrics.RecordRecommendationFailure(metrics.OutcomeValidationError)
		details := validationDetails{Field: ve.Field}
		if ve.Index >= 0 {
			idx := ve.Index
			details.Index = &idx
		}
		rw.ValidationError(ve.Error(), details)

	case errors.As(err, &rve):
		metrics.RecordRecommendationFailure(metrics.OutcomeValidationError)
		api := rve.ToAPIError()
		rw.ValidationError(api.Message, api.Details)

	case errors.As(err, &mbe):
		metrics.RecordRecommendationFailure(metrics.OutcomeValidationError)
		rw.Error(http.StatusRequestEntityTooLarge, ErrCodeRequestTooLarge, "request body too large")

	case errors.Is(err, ErrTooManyWeaknesses):
		metrics.RecordRecommendationFailure(metrics.OutcomeValidationError)
		rw.ValidationError(err.Error(), validationDetails{Field: "weaknesses"})

	case errors.Is(err, errMalformedBody):
		metrics.RecordRecommendationFailure(metrics.OutcomeValidationError)
		rw.BadRequest(err.Error())

	case errors.Is(err, catalog.ErrNotLoaded):
		metrics.RecordRecommendationFailure(metrics.OutcomeUnavailable)
		rw.ServiceUnavailable("course catalog is not loaded")

	case errors.Is(err, context.DeadlineExceeded):
		metrics.RecordRecommendationFailure(metrics.OutcomeInternalError)
		logging.Ctx(r.Context()).Warn().Err(err).Msg("Recommendation timed out")
		rw.Error(http.StatusServiceUnavailable, ErrCodeTimeout, "recommendation timed out")

	default:
		metrics.RecordRecommendationFailure(metrics.OutcomeInternalError)
		logging.Ctx(r.Context()).Error().Err(err).Msg("Recommendation failed")
		rw.InternalError("failed to generate recommendations")
	}
}
