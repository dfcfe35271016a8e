// Coursematch - Remedial Course Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coursematch

// Package services adapts coursematch components to suture.Service.
//
// HTTPServerService turns ListenAndServe and Shutdown into a context-aware
// Serve. CatalogService owns the catalog reload loop. The course-info
// cache already implements Serve and String and is added to the tree as is.
package services
