// Coursematch - Remedial Course Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coursematch

package catalog

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/coursematch/internal/metrics"
	"github.com/tomtom215/coursematch/internal/recommend"
)

// ErrNotLoaded is returned while no snapshot has been published.
var ErrNotLoaded = errors.New("catalog not loaded")

// Summary describes the current snapshot.
type Summary struct {
	Loaded   bool      `json:"loaded"`
	Version  string    `json:"version,omitempty"`
	Source   string    `json:"source"`
	Format   string    `json:"format,omitempty"`
	Courses  int       `json:"courses"`
	LoadedAt time.Time `json:"loaded_at,omitempty"`
}

// ReloadResult reports the outcome of one Reload.
type ReloadResult struct {
	Changed  bool   `json:"changed"`
	Version  string `json:"version"`
	Courses  int    `json:"courses"`
	Enriched int    `json:"enriched"`
}

// Store publishes catalog snapshots loaded from one file.
// Readers call Current once per request and keep that snapshot.
type Store struct {
	path     string
	format   string
	enricher *Enricher
	logger   zerolog.Logger

	current  atomic.Pointer[recommend.Catalog]
	reloadMu sync.Mutex
}

// NewStore creates a Store for the file at path. format may be empty to
// infer it from the extension. enricher may be nil.
func NewStore(path, format string, enricher *Enricher, logger zerolog.Logger) *Store {
	return &Store{
		path:     path,
		format:   format,
		enricher: enricher,
		logger:   logger.With().Str("component", "catalog").Str("path", path).Logger(),
	}
}

// NewStaticStore returns a Store that always serves catalog. Reload is a
// no-op that reports the current snapshot.
func NewStaticStore(catalog *recommend.Catalog) *Store {
	s := &Store{logger: zerolog.Nop()}
	if catalog != nil {
		s.current.Store(catalog)
	}
	return s
}

// Path returns the catalog file path.
func (s *Store) Path() string {
	return s.path
}

// Current returns the published snapshot, or nil before the first
// successful load.
func (s *Store) Current() *recommend.Catalog {
	return s.current.Load()
}

// Ready reports whether a snapshot has been published.
func (s *Store) Ready() bool {
	return s.current.Load() != nil
}

// Summary describes the current snapshot.
func (s *Store) Summary() Summary {
	sum := Summary{Source: s.path, Format: s.format}
	if cat := s.current.Load(); cat != nil {
		sum.Loaded = true
		sum.Version = cat.Version
		sum.Source = cat.Source
		sum.Courses = cat.Len()
		sum.LoadedAt = cat.LoadedAt
	}
	return sum
}

// Reload loads the file, validates and enriches it, and publishes the result
// if its version differs from the current snapshot. On error the current
// snapshot is kept. Concurrent calls are serialized.
func (s *Store) Reload(ctx context.Context) (ReloadResult, error) {
	s.reloadMu.Lock()
	defer s.reloadMu.Unlock()

	if s.path == "" {
		cat := s.current.Load()
		if cat == nil {
			return ReloadResult{}, ErrNotLoaded
		}
		return ReloadResult{Version: cat.Version, Courses: cat.Len()}, nil
	}

	start := time.Now()
	result, err := s.reload(ctx)
	metrics.RecordCatalogLoad(result.Courses, result.Changed, err)
	if err != nil {
		s.logger.Error().Err(err).Msg("Catalog reload failed, keeping previous snapshot")
		return result, err
	}

	event := s.logger.Debug()
	if result.Changed {
		event = s.logger.Info()
	}
	event.Str("version", result.Version).
		Int("courses", result.Courses).
		Int("enriched", result.Enriched).
		Bool("changed", result.Changed).
		Dur("duration", time.Since(start)).
		Msg("Catalog reloaded")
	return result, nil
}

func (s *Store) reload(ctx context.Context) (ReloadResult, error) {
	courses, err := LoadFile(s.path, s.format)
	if err != nil {
		return ReloadResult{}, err
	}

	enriched := 0
	if s.enricher != nil {
		courses, enriched, err = s.enricher.Enrich(ctx, courses)
		if err != nil {
			return ReloadResult{}, err
		}
		metrics.CatalogEnriched.Add(float64(enriched))
	}

	next := recommend.NewCatalog(courses, s.path)
	if err := next.Validate(); err != nil {
		return ReloadResult{}, err
	}

	result := ReloadResult{Version: next.Version, Courses: next.Len(), Enriched: enriched}
	if prev := s.current.Load(); prev != nil && prev.Version == next.Version {
		return result, nil
	}
	s.current.Store(next)
	result.Changed = true
	return result, nil
}
