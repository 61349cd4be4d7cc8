// Marvin - MaNGA Survey Data Browser and API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marvin

/*
Package api provides the Marvin HTTP API built on the Chi router.

Every resource is a View registered under /{base}/api in this order:

	cubes    GET  /cubes/                        index
	         GET  /cubes/{name}/                 cube metadata (also POST)
	plate    GET  /plate/{plateid}/cubes/        plate-IFUs on a plate
	spaxels  GET  /cubes/{name}/spectra/         spectrum at (x, y) or (ra, dec) (also POST)
	general  GET  /general/mangaid2plateifu/{mangaid}/
	         GET  /general/releases/

Health probes live at /api/v1/health/live and /api/v1/health/ready, Prometheus
metrics at /metrics and static files at /{base}/lib/.

Responses use one envelope:

	{"status":"success","data":...,"metadata":{"timestamp":...,"release":"MPL-4"}}
	{"status":"error","data":null,"error":{"code":"VALIDATION_ERROR","message":...,"details":{...}}}

Parameter validation failures return 422 with per-field messages under
details.validation_errors. Cube failures are mapped by kind: coordinate
errors return 400, missing cubes 404 and backing store failures 503.
*/
package api
