// Coursematch - Remedial Course Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coursematch

/*
Package supervisor runs the long-lived parts of coursematch under suture v4.

	RootSupervisor ("coursematch")
	├── DataSupervisor ("data-layer")
	│   ├── CatalogService (initial load, interval and file-watch reloads)
	│   └── course-info cache cleanup (when course_info.enabled)
	└── APISupervisor ("api-layer")
	    └── HTTPServerService

Supervisor events are logged through sutureslog, backed by the zerolog
slog adapter from internal/logging:

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	tree.AddDataService(services.NewCatalogService(store, cfg.Catalog, logger))
	tree.AddAPIService(services.NewHTTPServerService(server, 10*time.Second))
	err = tree.Serve(ctx)

Service implementations live in the services subpackage.
*/
package supervisor
