// Coursematch - Remedial Course Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coursematch

package api

import (
	"errors"
	"net/http"

	"github.com/tomtom215/coursematch/internal/catalog"
	"github.com/tomtom215/coursematch/internal/logging"
	"github.com/tomtom215/coursematch/internal/validation"
)

// CatalogSummary handles GET /api/v1/catalog
//
// @Summary Current catalog snapshot
// @Tags Catalog
// @Produce json
// @Success 200 {object} APIResponse{data=catalog.Summary}
// @Router /api/v1/catalog [get]
func (h *Handler) CatalogSummary(w http.ResponseWriter, r *http.Request) {
	NewResponseWriter(w, r).Success(h.catalog.Summary())
}

// CatalogReload handles POST /api/v1/catalog/reload
// A failed reload keeps serving the previous snapshot.
//
// @Summary Reload the catalog file
// @Tags Catalog
// @Produce json
// @Success 200 {object} APIResponse{data=catalog.ReloadResult}
// @Failure 422 {object} APIResponse "Catalog file is invalid"
// @Failure 500 {object} APIResponse "Catalog could not be read"
// @Router /api/v1/catalog/reload [post]
func (h *Handler) CatalogReload(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	result, err := h.catalog.Reload(r.Context())
	if err != nil {
		var verr *validation.RequestValidationError
		switch {
		case errors.As(err, &verr):
			api := verr.ToAPIError()
			rw.ErrorWithDetails(http.StatusUnprocessableEntity, api.Code, "catalog is invalid: "+api.Message, api.Details)
		case errors.Is(err, catalog.ErrUnsupportedFormat):
			rw.Error(http.StatusUnprocessableEntity, ErrCodeValidationFailed, err.Error())
		case errors.Is(err, catalog.ErrNotLoaded):
			rw.ServiceUnavailable("course catalog is not loaded")
		default:
			logging.Ctx(r.Context()).Error().Err(err).Msg("Catalog reload failed")
			rw.InternalError("catalog reload failed")
		}
		return
	}

	rw.Success(result)
}
