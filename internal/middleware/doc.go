// Marvin - MaNGA Survey Data Browser and API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marvin

/*
Package middleware provides HTTP middleware components for the application.

Key Components:

  - Release: collects request parameters and resolves the request's data
    release into an immutable RequestConfig stored in the request context
  - Request ID: UUID-based request tracking for distributed tracing
  - Prometheus Metrics: HTTP request/response instrumentation, labelled by
    chi route pattern
  - Compression: gzip responses for clients that accept it

Request-scoped Release:

Every API request works against exactly one data release. The Release
middleware resolves it from the release parameter (query string, form or
JSON body) or the configured default, and handlers read it back:

	rc := middleware.RequestConfigFrom(r.Context())
	drpver := rc.DRPVer

Nothing process-wide is modified, so concurrent requests for different
releases never observe each other's settings.

Middleware Stack:

The API router applies, in order:

	r.Use(chiMiddleware(middleware.RequestID))
	r.Use(chiMiddleware(middleware.PrometheusMetrics))
	r.Use(chiMiddleware(middleware.Compression))
	r.Use(middleware.Release(cfg.Data))

Thread Safety:

All middleware components are safe for concurrent use. Request state lives
in context.Context only; Prometheus collectors are atomic.
*/
package middleware
