// Coursematch - Remedial Course Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coursematch

package api

import (
	"context"
	"time"

	"github.com/tomtom215/coursematch/internal/catalog"
	"github.com/tomtom215/coursematch/internal/config"
	"github.com/tomtom215/coursematch/internal/recommend"
)

// CatalogProvider supplies catalog snapshots to the handlers.
// *catalog.Store implements it.
type CatalogProvider interface {
	Current() *recommend.Catalog
	Ready() bool
	Summary() catalog.Summary
	Reload(ctx context.Context) (catalog.ReloadResult, error)
}

var _ CatalogProvider = (*catalog.Store)(nil)

// HandlerConfig holds per-request limits.
type HandlerConfig struct {
	MaxBodyBytes   int64
	MaxWeaknesses  int
	RequestTimeout time.Duration
}

// HandlerConfigFrom extracts the handler limits from the application config.
func HandlerConfigFrom(cfg *config.Config) HandlerConfig {
	return HandlerConfig{
		MaxBodyBytes:   cfg.Security.MaxBodyBytes,
		MaxWeaknesses:  cfg.Recommend.MaxWeaknesses,
		RequestTimeout: cfg.Recommend.RequestTimeout,
	}
}

// Handler serves the recommendation, catalog and health endpoints.
type Handler struct {
	catalog     CatalogProvider
	recommender *recommend.Recommender
	limits      HandlerConfig
	startTime   time.Time
}

// NewHandler creates a Handler.
func NewHandler(provider CatalogProvider, recommender *recommend.Recommender, limits HandlerConfig) *Handler {
	return &Handler{
		catalog:     provider,
		recommender: recommender,
		limits:      limits,
		startTime:   time.Now(),
	}
}
