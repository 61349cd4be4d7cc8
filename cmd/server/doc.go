// Marvin - MaNGA Survey Data Browser and API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marvin

/*
Package main is the entry point for the Marvin API server.

Marvin serves MaNGA integral field unit data cubes over HTTP: cube metadata
resolved from a DuckDB catalog, and spectra extracted at pixel or sky
positions from the LOGCUBE files of the DRP redux tree.

# Application Architecture

	RootSupervisor ("marvin")
	├── DataSupervisor ("data-layer")
	│   ├── cube-cache-cleanup   (expire decoded cubes)
	│   ├── spectrum-cache-gc    (badger value log GC, when CACHE_ENABLED)
	│   └── duckdb-checkpoint
	└── APISupervisor ("api-layer")
	    └── http-server

Initialization order:

 1. Configuration: Koanf v2 (defaults, config.yaml, environment)
 2. Logging: zerolog with JSON or console output
 3. Catalog: DuckDB cube table, seeded with the reference galaxies when SEED_CUBES=true
 4. Spectrum cache: BadgerDB when CACHE_ENABLED=true
 5. Cube loader: in-memory LRU of decoded cubes, circuit breaker in front of the catalog
 6. Supervisor tree and HTTP server

# Configuration

	HTTP_PORT=5000                     # listen port
	MARVIN_BASE=marvin2                # URL prefix: /marvin2/api/...
	ENVIRONMENT=development            # development or production
	LIB_PATH=./lib                     # static files under /marvin2/lib/
	MANGA_SPECTRO_REDUX=/data/redux    # DRP output root
	MARVIN_RELEASE=MPL-4               # release used when a request names none
	DUCKDB_PATH=/data/marvin.duckdb
	CACHE_ENABLED=true
	CACHE_PATH=/data/cache/spectra
	LOG_LEVEL=info
	LOG_FORMAT=json

Releases and their DRP/DAP versions are configured in config.yaml:

	data:
	  releases:
	    MPL-4: {drpver: v1_5_1, dapver: 1.1.1}

# Example

	curl 'http://localhost:5000/marvin2/api/cubes/8485-1901/spectra/?release=MPL-4&x=10&y=10'

# Signal Handling

SIGINT and SIGTERM cancel the supervisor tree. The HTTP server drains
in-flight requests for up to 10 seconds, then the cache and database are
closed.
*/
package main
