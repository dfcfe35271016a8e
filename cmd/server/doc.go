// Coursematch - Remedial Course Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coursematch

/*
Package main is the coursematch HTTP server.

It loads a course catalog, keeps it fresh, and answers recommendation
requests that pair learner weaknesses with remedial courses.

# Process Layout

	RootSupervisor ("coursematch")
	├── DataSupervisor ("data-layer")
	│   ├── catalog-service
	│   └── ttl-cache (course-info responses, when enabled)
	└── APISupervisor ("api-layer")
	    └── http-server

Startup order:

 1. Configuration (koanf: defaults, YAML file, environment)
 2. Logging (zerolog)
 3. Course-info client and enricher, if course_info.enabled
 4. Catalog store, recommender, chi router
 5. Supervisor tree; the catalog service performs the first load

The HTTP server starts immediately. /api/v1/health/ready and the
recommendation routes answer 503 until the first catalog load succeeds.

# Configuration

	HTTP_PORT=8000
	LOG_LEVEL=info                     # trace, debug, info, warn, error
	LOG_FORMAT=json                    # json or console
	COURSE_CSV_PATH=data/courses.csv   # csv, json or yaml catalog
	CATALOG_WATCH=true                 # reload when the file changes
	CATALOG_RELOAD_INTERVAL=5m
	COURSE_INFO_ENABLED=false
	COURSE_INFO_API_BASE_URL=http://localhost:8001
	COURSE_INFO_API_TIMEOUT_SECONDS=5
	CATALOG_ENRICH=false               # fill missing titles and links from course-info

A YAML file named by CONFIG_PATH (or config.yaml) may set the same values;
the environment wins.

# Signal Handling

SIGINT and SIGTERM cancel the tree. The HTTP server drains in-flight
requests for up to 10s, then services that did not stop are reported.

# API Documentation

Swagger UI is served at /swagger/index.html.
*/
package main
