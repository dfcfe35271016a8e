// Coursematch - Remedial Course Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coursematch

/*
Package config loads service configuration with Koanf v2.

Sources, lowest precedence first:

 1. Built-in defaults (structs provider)
 2. A YAML file: $CONFIG_PATH, else config.yaml / config.yml in the working
    directory, else /etc/coursematch/config.yaml
 3. Environment variables, mapped explicitly in envMappings

Example config.yaml:

	server:
	  port: 8000
	catalog:
	  path: /data/courses.csv
	  watch: true
	recommend:
	  category_weight: 1.0
	  text_weight: 0.5
	course_info:
	  enabled: true
	  base_url: http://course-info:8001

Frequently used environment variables:

  - HTTP_PORT, HTTP_HOST, HTTP_TIMEOUT, ENVIRONMENT
  - LOG_LEVEL, LOG_FORMAT, LOG_CALLER
  - CORS_ORIGINS (comma-separated), RATE_LIMIT_REQUESTS, RATE_LIMIT_WINDOW, DISABLE_RATE_LIMIT
  - COURSE_CSV_PATH, CATALOG_FORMAT, CATALOG_WATCH, CATALOG_RELOAD_INTERVAL, CATALOG_ENRICH
  - RECOMMEND_CATEGORY_WEIGHT, RECOMMEND_TEXT_WEIGHT, RECOMMEND_DEDUPE_ACROSS_WEAKNESSES, ...
  - COURSE_INFO_ENABLED, COURSE_INFO_API_BASE_URL, COURSE_INFO_API_TIMEOUT
  - COURSE_INFO_API_TIMEOUT_SECONDS (float seconds; overrides COURSE_INFO_API_TIMEOUT)

Durations accept Go syntax ("30s", "5m").
*/
package config
