// Coursematch - Remedial Course Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coursematch

package api

import (
	"net/http"
	"time"
)

// HealthStatus is the body of the liveness and readiness probes.
type HealthStatus struct {
	Status         string  `json:"status"`
	CatalogLoaded  bool    `json:"catalog_loaded"`
	CatalogVersion string  `json:"catalog_version,omitempty"`
	CatalogCourses int     `json:"catalog_courses"`
	UptimeSeconds  float64 `json:"uptime_seconds"`
}

// Health handles GET /health
//
// @Summary Basic health check
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]string "{"status":"ok"}"
// @Router /health [get]
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	NewResponseWriter(w, r).JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// HealthLive handles GET /api/v1/health/live
// Returns 200 while the process is running, regardless of the catalog.
//
// @Summary Liveness probe
// @Tags Health
// @Produce json
// @Success 200 {object} APIResponse{data=HealthStatus}
// @Router /api/v1/health/live [get]
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	NewResponseWriter(w, r).Success(h.healthStatus("alive"))
}

// HealthReady handles GET /api/v1/health/ready
// Returns 503 until the first catalog snapshot has been published.
//
// @Summary Readiness probe
// @Tags Health
// @Produce json
// @Success 200 {object} APIResponse{data=HealthStatus}
// @Failure 503 {object} APIResponse{data=HealthStatus}
// @Router /api/v1/health/ready [get]
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	if !h.catalog.Ready() {
		rw.writeJSON(http.StatusServiceUnavailable, APIResponse{
			Success: false,
			Data:    h.healthStatus("not_ready"),
			Error:   &APIError{Code: ErrCodeServiceUnavailable, Message: "course catalog is not loaded"},
			Meta:    rw.meta(),
		})
		return
	}
	rw.Success(h.healthStatus("ready"))
}

// Favicon handles GET /favicon.ico with an empty 204.
func (h *Handler) Favicon(w http.ResponseWriter, r *http.Request) {
	NewResponseWriter(w, r).NoContent()
}

func (h *Handler) healthStatus(status string) HealthStatus {
	sum := h.catalog.Summary()
	return HealthStatus{
		Status:         status,
		CatalogLoaded:  sum.Loaded,
		CatalogVersion: sum.Version,
		CatalogCourses: sum.Courses,
		UptimeSeconds:  time.Since(h.startTime).Seconds(),
	}
}
