// Coursematch - Remedial Course Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coursematch

package catalog

import (
	"context"
	"sync/atomic"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/tomtom215/coursematch/internal/courseinfo"
	"github.com/tomtom215/coursematch/internal/recommend"
)

// DefaultEnrichConcurrency bounds parallel course-info lookups.
const DefaultEnrichConcurrency = 8

// Enricher fills missing course fields from the course-info service.
type Enricher struct {
	fetcher     courseinfo.Fetcher
	concurrency int
	logger      zerolog.Logger
}

// NewEnricher returns an Enricher that runs at most concurrency lookups at
// once. A non-positive concurrency uses DefaultEnrichConcurrency.
func NewEnricher(fetcher courseinfo.Fetcher, concurrency int, logger zerolog.Logger) *Enricher {
	if concurrency <= 0 {
		concurrency = DefaultEnrichConcurrency
	}
	return &Enricher{
		fetcher:     fetcher,
		concurrency: concurrency,
		logger:      logger.With().Str("component", "enricher").Logger(),
	}
}

// needsEnrichment reports whether any display field is missing.
func needsEnrichment(c *recommend.Course) bool {
	return c.LessonTitle == "" || c.Description == "" || c.Link == ""
}

// Enrich returns a copy of courses with empty titles, descriptions and links
// filled from the service, and the number of courses that changed. Fields
// already present in the catalog are never overwritten. The input slice is
// not modified. Lookup failures leave the course as loaded.
func (e *Enricher) Enrich(ctx context.Context, courses []recommend.Course) ([]recommend.Course, int, error) {
	out := make([]recommend.Course, len(courses))
	copy(out, courses)

	var enriched atomic.Int64
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.concurrency)

	for i := range out {
		if !needsEnrichment(&out[i]) {
			continue
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			info := e.fetcher.Lookup(gctx, out[i].ID)
			if applyInfo(&out[i], info) {
				enriched.Add(1)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, 0, err
	}

	n := int(enriched.Load())
	e.logger.Debug().Int("courses", len(out)).Int("enriched", n).Msg("Catalog enrichment finished")
	return out, n, nil
}

// applyInfo copies non-empty fields of info into empty fields of c.
func applyInfo(c *recommend.Course, info courseinfo.Info) bool {
	changed := false
	if c.LessonTitle == "" && info.LessonTitle != "" {
		c.LessonTitle = info.LessonTitle
		changed = true
	}
	if c.Description == "" && info.Description != "" {
		c.Description = info.Description
		changed = true
	}
	if c.Link == "" && info.Link != "" {
		c.Link = info.Link
		changed = true
	}
	return changed
}
