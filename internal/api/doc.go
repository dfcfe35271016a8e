// Coursematch - Remedial Course Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coursematch

/*
Package api exposes the recommender over HTTP using the chi router.

# Routes

	POST /v1/course-recommendations         grouped recommendations (JSON array)
	POST /api/v1/course-recommendations     same, under the versioned prefix
	POST /recommendations                   legacy shape {"recommendations": [...]}
	GET  /health                            {"status":"ok"}
	GET  /api/v1/health/live                liveness
	GET  /api/v1/health/ready               503 until a catalog is loaded
	GET  /api/v1/catalog                    current snapshot summary
	POST /api/v1/catalog/reload             reload the catalog file
	GET  /favicon.ico                       204
	GET  /metrics                           Prometheus
	GET  /swagger/*                         API docs

# Middleware

Every request passes RequestID, RealIP, Recoverer and CORS. API routes
add per-IP rate limiting (go-chi/httprate), security headers and
Prometheus request metrics.

# Errors

Failures use the APIResponse envelope:

	{"success":false,"error":{"code":"VALIDATION_FAILED","message":"...","details":{...}},"meta":{...}}

recommend.ValidationError and malformed bodies map to 400, a missing
catalog to 503 and anything else to 500 with a generic message.
*/
package api
