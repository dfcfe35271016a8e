// Coursematch - Remedial Course Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coursematch

// Package recommend ranks remedial courses against learner weaknesses.
//
// # Architecture
//
// The package has three layers, leaf first:
//
//   - Normalization: raw weaknesses (maps decoded from JSON, or Weakness
//     values) are converted into one canonical Weakness shape
//   - Matcher: scores every catalog course against a single weakness
//   - Recommender: runs the Matcher over all weaknesses and enforces the
//     per-weakness and overall caps
//
// # Scoring
//
// A course score is the sum of two independent sub-scores:
//
//	score = category + text
//
//	category = Weights.Category                                 (exact tag match)
//	         | Weights.Category * Weights.PartialCategoryFactor  (partial tag match)
//	         | 0
//
//	text = Weights.Text * sum(hit weight of each distinct weakness token)
//	                    / distinct weakness tokens
//
// A token found in the course title or tags has hit weight
// Text.TitleWeight, one found only in the description has
// Text.DescriptionWeight, and a missing token has zero.
//
// Courses scoring zero are excluded. Results are stable-sorted by score
// descending so equal scores keep catalog order.
//
// # Determinism
//
// Every function in this package is a pure function of its inputs. The
// catalog is passed in as an immutable snapshot, weakness IDs that are not
// supplied are derived from the weakness content (UUIDv5, salted with the
// input position when the same content repeats in one call), and no random
// or time-dependent value reaches the output.
//
// # Usage
//
//	catalog := recommend.NewCatalog(courses, "courses.csv")
//	results, err := recommend.Recommend(
//	    []any{map[string]any{"weakness": "Struggles with linear equations", "pattern_type": "numeracy"}},
//	    catalog,
//	    recommend.Options{MaxCoursesPerWeakness: recommend.Limit(5)},
//	)
//
// For services, build a Recommender once and reuse it:
//
//	rec, err := recommend.NewRecommender(cfg, logger)
//	resp, err := rec.Recommend(ctx, recommend.Request{Weaknesses: raw, Catalog: store.Snapshot()})
//
// # Thread Safety
//
// Matcher and Recommender hold only read-only configuration after
// construction and are safe for concurrent use.
package recommend
