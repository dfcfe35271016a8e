// Coursematch - Remedial Course Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coursematch

// Package logging provides the service-wide zerolog logger.
//
// Call Init once from main with the logging section of the configuration:
//
//	logging.Init(logging.Config{Level: cfg.Logging.Level, Format: cfg.Logging.Format})
//	logging.Info().Msg("Server starting")
//
// Handlers log through Ctx so that every line carries the request ID set by
// the request ID middleware:
//
//	logging.Ctx(r.Context()).Warn().Err(err).Msg("Recommendation failed")
//
// Environment variables (read by internal/config):
//   - LOG_LEVEL: trace, debug, info, warn, error (default: info)
//   - LOG_FORMAT: json, console (default: json)
//   - LOG_CALLER: include caller file:line (default: false)
//
// SlogHandler adapts zerolog for libraries that only accept *slog.Logger,
// which is how the supervisor tree's sutureslog handler reports events.
package logging
