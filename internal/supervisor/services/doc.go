// Marvin - MaNGA Survey Data Browser and API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marvin

// Package services adapts Marvin's long-running components to suture.Service.
//
// HTTPServerService runs the API server in the api layer. PeriodicService
// runs maintenance in the data layer: expiring cached cubes, badger value
// log GC and DuckDB checkpoints.
package services
