// Coursematch - Remedial Course Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coursematch

/*
Package catalog loads the course catalog and publishes it as immutable
recommend.Catalog snapshots.

# Sources

A catalog is a single file in one of three formats, chosen by
catalog.format or inferred from the extension:

  - CSV (.csv): one course per row with a header line
  - JSON (.json): an array of courses, or {"courses": [...]}
  - YAML (.yaml, .yml): {"courses": [...]}

Column and key names accept the aliases used by upstream exports:

	id           | course_id
	lesson_title | lessonTitle | title
	description  | short_description | shortDescription
	link         | course_url | url
	tags         | pattern_type | pattern_types | category

CSV tag cells are split on ';', '|' or ','. Unrecognized CSV columns and
unrecognized keys are kept in Course.Metadata.

# Snapshots

Store holds the current snapshot in an atomic.Pointer. Reload builds a
complete new snapshot off to the side, validates it, optionally enriches
it through the course-info service, and swaps it in only if its content
version differs. A failed reload leaves the previous snapshot in place.
*/
package catalog
