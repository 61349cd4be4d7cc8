// Marvin - MaNGA Survey Data Browser and API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marvin

// Package logging provides the zerolog-based logger shared by every Marvin
// component.
//
// The package keeps one process logger, configured once from main via Init,
// plus helpers that enrich log lines with the request and correlation IDs
// carried in a context.Context:
//
//	logging.Init(logging.Config{Level: "info", Format: "json"})
//	logging.Info().Str("plateifu", "8485-1901").Msg("Cube loaded")
//	logging.Ctx(r.Context()).Warn().Err(err).Msg("Spectrum extraction failed")
//
// # Configuration
//
// Environment Variables (read by internal/config, not here):
//   - LOG_LEVEL: trace, debug, info, warn, error (default: info)
//   - LOG_FORMAT: json, console (default: json)
//   - LOG_CALLER: include caller file:line (default: false)
//
// # slog bridge
//
// Libraries that want a *slog.Logger (sutureslog for the supervisor tree) get
// one through NewSlogLogger, which writes to the same zerolog output.
package logging
