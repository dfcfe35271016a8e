// Coursematch - Remedial Course Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coursematch

package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/tomtom215/coursematch/internal/catalog"
	"github.com/tomtom215/coursematch/internal/logging"
	"github.com/tomtom215/coursematch/internal/metrics"
	"github.com/tomtom215/coursematch/internal/recommend"
)

// CatalogVersionHeader carries the version of the snapshot used.
const CatalogVersionHeader = "X-Catalog-Version"

// Recommend handles POST /v1/course-recommendations
//
// @Summary Recommend remedial courses
// @Description Scores every catalog course against each weakness and returns one group per weakness, in input order.
// @Description Caps are optional; when present they must be at least 1.
// @Tags Recommendations
// @Accept json
// @Produce json
// @Param request body RecommendationRequest true "Weaknesses and caps"
// @Success 200 {array} recommend.WeaknessRecommendations "Grouped recommendations"
// @Failure 400 {object} APIResponse "Malformed body or invalid input"
// @Failure 503 {object} APIResponse "Catalog not loaded"
// @Failure 500 {object} APIResponse "Internal error"
// @Router /v1/course-recommendations [post]
func (h *Handler) Recommend(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	var req RecommendationRequest
	if err := decodeJSON(w, r, h.limits.MaxBodyBytes, &req); err != nil {
		writeRecommendError(rw, r, err)
		return
	}

	resp, err := h.recommend(r, req.Weaknesses, req.Options())
	if err != nil {
		writeRecommendError(rw, r, err)
		return
	}

	w.Header().Set(CatalogVersionHeader, resp.Metadata.CatalogVersion)
	rw.JSON(http.StatusOK, resp.Results)
}

// RecommendLegacy handles POST /recommendations
//
// @Summary Recommend remedial courses (legacy shape)
// @Description Accepts max_courses as the per-weakness cap and returns {"recommendations": [...]} with recommended_courses per weakness.
// @Tags Recommendations
// @Accept json
// @Produce json
// @Param request body LegacyRecommendationRequest true "Weaknesses and max_courses"
// @Success 200 {object} LegacyRecommendationResponse
// @Failure 400 {object} APIResponse "Malformed body or invalid input"
// @Failure 503 {object} APIResponse "Catalog not loaded"
// @Router /recommendations [post]
func (h *Handler) RecommendLegacy(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	var req LegacyRecommendationRequest
	if err := decodeJSON(w, r, h.limits.MaxBodyBytes, &req); err != nil {
		writeRecommendError(rw, r, err)
		return
	}

	resp, err := h.recommend(r, req.Weaknesses, req.Options())
	if err != nil {
		writeRecommendError(rw, r, err)
		return
	}

	w.Header().Set(CatalogVersionHeader, resp.Metadata.CatalogVersion)
	rw.JSON(http.StatusOK, toLegacyResponse(resp.Results))
}

// recommend runs one recommendation against the current snapshot.
func (h *Handler) recommend(r *http.Request, weaknesses []any, opts recommend.Options) (*recommend.Response, error) {
	if h.limits.MaxWeaknesses > 0 && len(weaknesses) > h.limits.MaxWeaknesses {
		return nil, fmt.Errorf("%w: %d given, at most %d allowed", ErrTooManyWeaknesses, len(weaknesses), h.limits.MaxWeaknesses)
	}

	snapshot := h.catalog.Current()
	if snapshot == nil {
		return nil, catalog.ErrNotLoaded
	}

	ctx := r.Context()
	if h.limits.RequestTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.limits.RequestTimeout)
		defer cancel()
	}

	start := time.Now()
	resp, err := h.recommender.Recommend(ctx, recommend.Request{
		Weaknesses: weaknesses,
		Catalog:    snapshot,
		Options:    opts,
		RequestID:  logging.RequestIDFromContext(ctx),
	})
	if err != nil {
		return nil, err
	}

	metrics.RecordRecommendation(resp.Metadata.Weaknesses, resp.Metadata.Recommendations, time.Since(start))
	logging.Ctx(ctx).Info().
		Int("weaknesses", resp.Metadata.Weaknesses).
		Int("recommendations", resp.Metadata.Recommendations).
		Str("catalog_version", resp.Metadata.CatalogVersion).
		Str("caps", opts.String()).
		Msg("Recommendations served")
	return resp, nil
}
