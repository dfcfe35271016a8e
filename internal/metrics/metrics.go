// Coursematch - Remedial Course Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coursematch

// Package metrics defines the Prometheus collectors of the service. All
// collectors register with the default registry through promauto and are
// served by promhttp at /metrics.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// API endpoint metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of in-flight API requests",
		},
	)

	APIRateLimitHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_rate_limit_hits_total",
			Help: "Total number of rate limit rejections",
		},
		[]string{"endpoint"},
	)

	// Recommendation metrics
	RecommendationRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommendation_requests_total",
			Help: "Recommendation calls by outcome",
		},
		[]string{"outcome"}, // success, validation_error, internal_error, unavailable
	)

	RecommendationWeaknesses = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "recommendation_weaknesses_per_request",
			Help:    "Number of weaknesses submitted per recommendation call",
			Buckets: []float64{0, 1, 2, 5, 10, 20, 50, 100},
		},
	)

	RecommendationsReturned = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "recommendations_returned_per_request",
			Help:    "Number of recommendations returned per call across all weaknesses",
			Buckets: []float64{0, 1, 5, 10, 25, 50, 100, 250},
		},
	)

	RecommendationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "recommendation_duration_seconds",
			Help:    "Time spent scoring one recommendation call",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5},
		},
	)

	// Catalog metrics
	CatalogCourses = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "catalog_courses",
			Help: "Number of courses in the active catalog snapshot",
		},
	)

	CatalogReloads = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_reloads_total",
			Help: "Catalog reload attempts by result",
		},
		[]string{"result"}, // success, failure, unchanged
	)

	CatalogLastReload = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "catalog_last_reload_timestamp_seconds",
			Help: "Unix time of the last successful catalog load",
		},
	)

	CatalogEnriched = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "catalog_courses_enriched_total",
			Help: "Courses whose missing fields were filled from the course-info service",
		},
	)

	// Course-info client metrics
	CourseInfoFetches = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "course_info_fetches_total",
			Help: "Course-info lookups by result",
		},
		[]string{"result"}, // success, not_found, error, rejected
	)

	CourseInfoDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "course_info_fetch_duration_seconds",
			Help:    "Course-info HTTP round trip duration",
			Buckets: prometheus.DefBuckets,
		},
	)

	CourseInfoCacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "course_info_cache_hits_total",
			Help: "Course-info lookups served from the in-process cache",
		},
	)

	CourseInfoCacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "course_info_cache_misses_total",
			Help: "Course-info lookups that missed the in-process cache",
		},
	)

	// Circuit breaker metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_requests_total",
			Help: "Requests through the circuit breaker by result",
		},
		[]string{"name", "result"}, // success, failure, rejected
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_state_transitions_total",
			Help: "Circuit breaker state transitions",
		},
		[]string{"name", "from_state", "to_state"},
	)
)

// RecordAPIRequest records one completed API request.
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest increments or decrements the in-flight gauge.
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// Recommendation outcomes.
const (
	OutcomeSuccess         = "success"
	OutcomeValidationError = "validation_error"
	OutcomeInternalError   = "internal_error"
	OutcomeUnavailable     = "unavailable"
)

// RecordRecommendation records one successful recommendation call.
func RecordRecommendation(weaknesses, returned int, duration time.Duration) {
	RecommendationRequests.WithLabelValues(OutcomeSuccess).Inc()
	RecommendationWeaknesses.Observe(float64(weaknesses))
	RecommendationsReturned.Observe(float64(returned))
	RecommendationDuration.Observe(duration.Seconds())
}

// RecordRecommendationFailure records a failed recommendation call.
func RecordRecommendationFailure(outcome string) {
	RecommendationRequests.WithLabelValues(outcome).Inc()
}

// RecordCatalogLoad records a catalog reload attempt. courses is ignored
// when err is non-nil.
func RecordCatalogLoad(courses int, changed bool, err error) {
	switch {
	case err != nil:
		CatalogReloads.WithLabelValues("failure").Inc()
		return
	case changed:
		CatalogReloads.WithLabelValues("success").Inc()
	default:
		CatalogReloads.WithLabelValues("unchanged").Inc()
	}
	CatalogCourses.Set(float64(courses))
	CatalogLastReload.Set(float64(time.Now().Unix()))
}

// RecordCourseInfoFetch records one upstream course-info lookup.
func RecordCourseInfoFetch(result string, duration time.Duration) {
	CourseInfoFetches.WithLabelValues(result).Inc()
	if duration > 0 {
		CourseInfoDuration.Observe(duration.Seconds())
	}
}

// RecordCourseInfoCache records a cache hit or miss.
func RecordCourseInfoCache(hit bool) {
	if hit {
		CourseInfoCacheHits.Inc()
	} else {
		CourseInfoCacheMisses.Inc()
	}
}
