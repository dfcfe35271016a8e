// Coursematch - Remedial Course Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coursematch

package recommend

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/rs/zerolog"
)

// Recommender drives the Matcher across every weakness of a request and
// enforces the per-weakness and overall caps.
//
// A Recommender is immutable after construction and safe for concurrent use.
type Recommender struct {
	cfg     *Config
	matcher *Matcher
	logger  zerolog.Logger
}

// NewRecommender creates a Recommender. A nil cfg uses DefaultConfig.
func NewRecommender(cfg *Config, logger zerolog.Logger) (*Recommender, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	m, err := NewMatcher(cfg)
	if err != nil {
		return nil, err
	}
	return &Recommender{
		cfg:     cfg.Clone(),
		matcher: m,
		logger:  logger.With().Str("component", "recommender").Logger(),
	}, nil
}

// Config returns a copy of the active configuration.
func (r *Recommender) Config() *Config {
	return r.cfg.Clone()
}

// Recommend produces one WeaknessRecommendations per input weakness.
//
// The call either fully succeeds or fails with a *ValidationError or an
// *InternalError; no partial result is ever returned. ctx is checked on
// entry and before each weakness is matched, so a deadline that expires
// mid-request fails the whole call with ctx.Err().
func (r *Recommender) Recommend(ctx context.Context, req Request) (*Response, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	start := time.Now()

	if err := checkLimit("max_courses_overall", req.Options.MaxCoursesOverall); err != nil {
		return nil, err
	}
	if err := checkLimit("max_courses_per_weakness", req.Options.MaxCoursesPerWeakness); err != nil {
		return nil, err
	}

	weaknesses, err := NormalizeWeaknesses(req.Weaknesses)
	if err != nil {
		return nil, err
	}

	var courses []Course
	var version string
	if req.Catalog != nil {
		courses = req.Catalog.Courses
		version = req.Catalog.Version
	}
	if err := ValidateCourses(courses); err != nil {
		return nil, err
	}

	profiles := r.matcher.profileCourses(courses)
	groups := make([][]Recommendation, len(weaknesses))
	for i := range weaknesses {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		recs, err := r.matcher.match(weaknesses[i], courses, profiles, req.Options.MaxCoursesPerWeakness)
		if err != nil {
			return nil, err
		}
		groups[i] = recs
	}

	if r.cfg.DedupeAcrossWeaknesses {
		groups = dedupeAcrossGroups(groups)
	}
	if req.Options.MaxCoursesOverall != nil {
		groups = capOverall(groups, *req.Options.MaxCoursesOverall)
	}

	results := make([]WeaknessRecommendations, len(weaknesses))
	for i := range weaknesses {
		recs := groups[i]
		if recs == nil {
			recs = []Recommendation{}
		}
		results[i] = WeaknessRecommendations{
			Weakness:        weaknesses[i],
			Recommendations: recs,
		}
	}

	resp := &Response{
		Results: results,
		Metadata: ResponseMetadata{
			CatalogVersion:  version,
			CatalogSize:     len(courses),
			Weaknesses:      len(weaknesses),
			Recommendations: Total(results),
			Latency:         time.Since(start),
		},
	}

	r.logger.Debug().
		Str("request_id", req.RequestID).
		Str("catalog_version", version).
		Int("weaknesses", resp.Metadata.Weaknesses).
		Int("recommendations", resp.Metadata.Recommendations).
		Dur("latency", resp.Metadata.Latency).
		Msg("Recommendations computed")

	return resp, nil
}

// Recommend runs a single call with DefaultConfig and no logging.
func Recommend(weaknesses []any, catalog *Catalog, opts Options) ([]WeaknessRecommendations, error) {
	r, err := NewRecommender(nil, zerolog.Nop())
	if err != nil {
		return nil, &InternalError{Op: "recommend", Err: err}
	}
	resp, err := r.Recommend(context.Background(), Request{
		Weaknesses: weaknesses,
		Catalog:    catalog,
		Options:    opts,
	})
	if err != nil {
		return nil, err
	}
	return resp.Results, nil
}

// candidate locates one recommendation inside the per-weakness groups.
type candidate struct {
	score    float64
	weakness int
	rank     int
}

// flatten returns every recommendation ordered by score descending, then
// weakness index, then rank within the group.
func flatten(groups [][]Recommendation) []candidate {
	all := make([]candidate, 0, totalLen(groups))
	for wi, recs := range groups {
		for ri := range recs {
			all = append(all, candidate{score: recs[ri].Score, weakness: wi, rank: ri})
		}
	}
	sort.SliceStable(all, func(i, j int) bool {
		a, b := all[i], all[j]
		if a.score != b.score {
			return a.score > b.score
		}
		if a.weakness != b.weakness {
			return a.weakness < b.weakness
		}
		return a.rank < b.rank
	})
	return all
}

// capOverall keeps the n globally best recommendations. Surviving entries
// keep their relative order inside each group.
func capOverall(groups [][]Recommendation, n int) [][]Recommendation {
	if totalLen(groups) <= n {
		return groups
	}
	return keep(groups, flatten(groups)[:n])
}

// dedupeAcrossGroups keeps each course only at its globally best position.
func dedupeAcrossGroups(groups [][]Recommendation) [][]Recommendation {
	seen := make(map[string]struct{})
	survivors := make([]candidate, 0, totalLen(groups))
	for _, c := range flatten(groups) {
		id := groups[c.weakness][c.rank].Course.ID
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		survivors = append(survivors, c)
	}
	return keep(groups, survivors)
}

// keep rebuilds the groups from the selected candidates, preserving rank
// order within each group.
func keep(groups [][]Recommendation, selected []candidate) [][]Recommendation {
	marked := make([][]bool, len(groups))
	for i := range groups {
		marked[i] = make([]bool, len(groups[i]))
	}
	for _, c := range selected {
		marked[c.weakness][c.rank] = true
	}

	out := make([][]Recommendation, len(groups))
	for wi, recs := range groups {
		kept := make([]Recommendation, 0, len(recs))
		for ri := range recs {
			if marked[wi][ri] {
				kept = append(kept, recs[ri])
			}
		}
		out[wi] = kept
	}
	return out
}

func totalLen(groups [][]Recommendation) int {
	n := 0
	for _, g := range groups {
		n += len(g)
	}
	return n
}

// String implements fmt.Stringer for log output.
func (o Options) String() string {
	f := func(p *int) string {
		if p == nil {
			return "unbounded"
		}
		return fmt.Sprint(*p)
	}
	return fmt.Sprintf("overall=%s per_weakness=%s", f(o.MaxCoursesOverall), f(o.MaxCoursesPerWeakness))
}
