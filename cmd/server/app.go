// Coursematch - Remedial Course Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coursematch

package main

import (
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/coursematch/internal/api"
	"github.com/tomtom215/coursematch/internal/catalog"
	"github.com/tomtom215/coursematch/internal/config"
	"github.com/tomtom215/coursematch/internal/courseinfo"
	"github.com/tomtom215/coursematch/internal/logging"
	"github.com/tomtom215/coursematch/internal/recommend"
	"github.com/tomtom215/coursematch/internal/supervisor"
	"github.com/tomtom215/coursematch/internal/supervisor/services"
)

// app is the fully wired server, ready for tree.Serve.
type app struct {
	tree   *supervisor.SupervisorTree
	store  *catalog.Store
	server *http.Server
}

// newApp builds every component from cfg and registers the long-running
// ones with a new supervisor tree. Nothing is started.
//
//nolint:gocritic // zerolog.Logger is passed by value
func newApp(cfg *config.Config, logger zerolog.Logger) (*app, error) {
	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.TreeConfig{
		FailureThreshold: 5,
		FailureBackoff:   15 * time.Second,
		ShutdownTimeout:  10 * time.Second,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create supervisor tree: %w", err)
	}

	var enricher *catalog.Enricher
	if cfg.CourseInfo.Enabled {
		client, err := courseinfo.NewClient(cfg.CourseInfo, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to create course-info client: %w", err)
		}
		tree.AddDataService(client.Cache())

		if cfg.Catalog.Enrich {
			enricher = catalog.NewEnricher(client, cfg.CourseInfo.MaxConcurrency, logger)
		} else {
			logger.Info().Msg("Course-info client enabled without catalog.enrich; catalog entries are used as loaded")
		}
	}

	store := catalog.NewStore(cfg.Catalog.Path, cfg.Catalog.Format, enricher, logger)
	tree.AddDataService(services.NewCatalogService(store, services.CatalogServiceConfigFrom(cfg.Catalog), logger))

	recommender, err := recommend.NewRecommender(cfg.Recommend.ScorerConfig(), logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create recommender: %w", err)
	}

	handler := api.NewHandler(store, recommender, api.HandlerConfigFrom(cfg))
	mw := api.NewChiMiddleware(api.ChiMiddlewareConfigFrom(cfg.Security))
	router := api.NewRouter(handler, mw)

	server := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           router.SetupChi(),
		ReadTimeout:       cfg.Server.Timeout,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      cfg.Server.Timeout,
		IdleTimeout:       60 * time.Second,
	}
	tree.AddAPIService(services.NewHTTPServerService(server, 10*time.Second))

	return &app{tree: tree, store: store, server: server}, nil
}
