// Coursematch - Remedial Course Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coursematch

// General API information for swag.
//
// @title Coursematch API
// @version 1.0
// @description Recommends remedial courses for learner weaknesses by scoring a course catalog.
// @description
// @description ## Scoring
// @description
// @description Each course scores a category term (exact or partial pattern_type match against
// @description the course tags) plus a text term (shared tokens between the weakness and the
// @description course title, tags and description). Courses scoring zero are omitted.
// @description
// @description ## Error Responses
// @description
// @description Errors use the envelope:
// @description ```json
// @description {
// @description   "success": false,
// @description   "error": {"code": "VALIDATION_FAILED", "message": "...", "details": {"field": "weaknesses[0].weakness", "index": 0}},
// @description   "meta": {"request_id": "...", "timestamp": "2026-01-01T00:00:00Z"}
// @description }
// @description ```
//
// @contact.name GitHub Repository
// @contact.url https://github.com/tomtom215/coursematch/issues
//
// @license.name AGPL-3.0-or-later
// @license.url https://www.gnu.org/licenses/agpl-3.0.html
//
// @host localhost:8000
// @BasePath /
// @schemes http https
//
// @tag.name Recommendations
// @tag.description Course recommendations for learner weaknesses
//
// @tag.name Catalog
// @tag.description Catalog summary and reload
//
// @tag.name Health
// @tag.description Liveness and readiness probes
package main
