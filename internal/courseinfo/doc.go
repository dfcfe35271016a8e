// Coursematch - Remedial Course Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coursematch

/*
Package courseinfo is the client for the optional course-info service.

The service answers GET {base}/v1/course-info/{id} with the title,
description and link of one course. Coursematch uses it to fill in catalog
rows that lack those fields.

# Resilience

Every request goes through, in order:

  - the in-process TTL cache (internal/cache)
  - an outbound token bucket (golang.org/x/time/rate)
  - up to course_info.retry_attempts retries of transport errors, 429 and
    5xx replies, with doubling backoff from course_info.retry_delay
  - a circuit breaker (sony/gobreaker/v2) around each attempt that opens
    after 60% failures over at least 10 requests
  - an http.Client with the configured timeout

Lookup never fails: errors are logged at warn level and an empty Info is
returned, so enrichment degrades to the catalog as loaded. Fetch returns
the error for callers that need it.

# Payload

The response may be the course object itself or wrap it under "course".
Field aliases are accepted:

	lesson_title | lessonTitle
	description  | short_description | shortDescription
	link         | course_url
*/
package courseinfo
