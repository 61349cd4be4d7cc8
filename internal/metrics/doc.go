// Marvin - MaNGA Survey Data Browser and API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marvin

/*
Package metrics provides Prometheus metrics collection and export for observability.

# Overview

The package provides metrics for:
  - HTTP request latency and throughput
  - DuckDB cube metadata queries
  - Cube loads and spectrum extractions
  - Cube LRU and spectrum cache efficiency
  - Circuit breaker state transitions

# Metrics Endpoint

Metrics are exposed at /metrics in Prometheus text format:

	curl http://localhost:5000/metrics

All collectors are registered with the default registry through promauto at
package init, so importing the package is enough to expose them.
*/
package metrics
