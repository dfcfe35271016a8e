// Coursematch - Remedial Course Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coursematch

package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/coursematch/internal/catalog"
	"github.com/tomtom215/coursematch/internal/config"
)

// CatalogReloader is implemented by *catalog.Store.
type CatalogReloader interface {
	Path() string
	Reload(ctx context.Context) (catalog.ReloadResult, error)
}

// WatchFunc starts watching path. It has the signature of config.WatchFile.
type WatchFunc func(path string, onChange func(), onError func(error)) (stop func() error, err error)

// CatalogServiceConfig controls when the catalog is reloaded.
type CatalogServiceConfig struct {
	// Watch reloads whenever the catalog file changes.
	Watch bool

	// Interval reloads periodically. Zero disables it.
	Interval time.Duration

	// ReloadTimeout bounds one reload, including enrichment.
	// Default: 2m
	ReloadTimeout time.Duration
}

// CatalogServiceConfigFrom maps the catalog config section.
func CatalogServiceConfigFrom(cfg config.CatalogConfig) CatalogServiceConfig {
	return CatalogServiceConfig{
		Watch:    cfg.Watch,
		Interval: cfg.ReloadInterval,
	}
}

// CatalogService loads the catalog when it starts and keeps it fresh.
//
// A failed load is logged and the previous snapshot stays live. Losing the
// file watch ends Serve with an error so that suture restarts the service,
// which reloads once and watches again.
type CatalogService struct {
	store  CatalogReloader
	config CatalogServiceConfig
	watch  WatchFunc
	logger zerolog.Logger
	name   string
}

// NewCatalogService creates the service.
//
//nolint:gocritic // zerolog.Logger is passed by value
func NewCatalogService(store CatalogReloader, cfg CatalogServiceConfig, logger zerolog.Logger) *CatalogService {
	if cfg.ReloadTimeout <= 0 {
		cfg.ReloadTimeout = 2 * time.Minute
	}
	return &CatalogService{
		store:  store,
		config: cfg,
		watch:  config.WatchFile,
		logger: logger.With().Str("service", "catalog").Logger(),
		name:   "catalog-service",
	}
}

// Serve implements suture.Service.
func (s *CatalogService) Serve(ctx context.Context) error {
	s.reload(ctx, "startup")

	changed := make(chan struct{}, 1)
	watchErr := make(chan error, 1)

	if s.config.Watch {
		stop, err := s.watch(s.store.Path(),
			func() {
				select {
				case changed <- struct{}{}:
				default:
				}
			},
			func(err error) {
				select {
				case watchErr <- err:
				default:
				}
			},
		)
		if err != nil {
			return fmt.Errorf("catalog watch failed: %w", err)
		}
		defer func() {
			if err := stop(); err != nil {
				s.logger.Debug().Err(err).Msg("catalog unwatch failed")
			}
		}()
	}

	var tick <-chan time.Time
	if s.config.Interval > 0 {
		ticker := time.NewTicker(s.config.Interval)
		defer ticker.Stop()
		tick = ticker.C
	}

	s.logger.Info().
		Bool("watch", s.config.Watch).
		Dur("interval", s.config.Interval).
		Msg("catalog service running")

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-tick:
			s.reload(ctx, "interval")
		case <-changed:
			s.reload(ctx, "file change")
		case err := <-watchErr:
			return fmt.Errorf("catalog watch ended: %w", err)
		}
	}
}

func (s *CatalogService) reload(ctx context.Context, trigger string) {
	reloadCtx, cancel := context.WithTimeout(ctx, s.config.ReloadTimeout)
	defer cancel()

	result, err := s.store.Reload(reloadCtx)
	if err != nil {
		if errors.Is(err, context.Canceled) && ctx.Err() != nil {
			return
		}
		s.logger.Warn().Err(err).Str("trigger", trigger).Msg("catalog reload failed")
		return
	}
	s.logger.Debug().
		Str("trigger", trigger).
		Bool("changed", result.Changed).
		Str("version", result.Version).
		Msg("catalog reload complete")
}

// String implements fmt.Stringer.
func (s *CatalogService) String() string {
	return s.name
}
