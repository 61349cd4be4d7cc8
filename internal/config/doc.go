// Marvin - MaNGA Survey Data Browser and API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marvin

/*
Package config provides centralized configuration management for Marvin.

Configuration is layered with Koanf v2: struct defaults, then an optional
YAML file (CONFIG_PATH, config.yaml, /etc/marvin/config.yaml), then
environment variables. Only environment variables listed in envMappings are
read.

# Environment Variables

Server:
  - HTTP_HOST, HTTP_PORT, HTTP_TIMEOUT
  - MARVIN_BASE: URL prefix (default: marvin2)
  - ENVIRONMENT: development or production
  - LIB_PATH: directory served under /{base}/lib/

Data:
  - MANGA_SPECTRO_REDUX: root of the DRP redux tree
  - MARVIN_RELEASE: default data release (default: MPL-4)

Database:
  - DUCKDB_PATH, DUCKDB_MAX_MEMORY, DUCKDB_THREADS
  - SEED_CUBES: insert the reference cube records on startup

Cache:
  - CACHE_ENABLED, CACHE_PATH, CACHE_TTL
  - CUBE_CACHE_CAPACITY, CUBE_CACHE_TTL

Security:
  - CORS_ORIGINS (comma-separated), RATE_LIMIT_REQUESTS, RATE_LIMIT_WINDOW,
    DISABLE_RATE_LIMIT

Logging:
  - LOG_LEVEL, LOG_FORMAT, LOG_CALLER

The release table (release -> drpver/dapver) is only configurable from the
YAML file:

	data:
	  default_release: MPL-5
	  releases:
	    MPL-5:
	      drpver: v2_0_1
	      dapver: 2.0.2
*/
package config
