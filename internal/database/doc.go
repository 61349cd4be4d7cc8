// Marvin - MaNGA Survey Data Browser and API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marvin

// Package database is the backing store for cube metadata.
//
// # Overview
//
// Cube records (plate-IFU, MaNGA ID, plate, IFU design, IFU centre and
// redshift) live in a single DuckDB table. The store answers the lookups a
// cube needs before its FITS file is read, plus the plate and MaNGA ID
// queries of the general API.
//
// # Files
//
//   - database.go: connection lifecycle, pool tuning, checkpoint on close
//   - schema.go: table and index creation
//   - cubes.go: cube record queries and upserts
//   - seed.go: reference records for a fresh store
//   - breaker.go: circuit breaker around cube lookups
//
// # Errors
//
// A lookup that matches no row returns cube.ErrNoRecord. The breaker counts
// only real query failures, so unknown identifiers never open the circuit.
//
// # Usage
//
//	db, err := database.New(&cfg.Database)
//	if err != nil {
//	    return err
//	}
//	defer db.Close()
//
//	store := database.NewBreakerStore(db, database.DefaultBreakerSettings())
//	rec, err := store.CubeByPlateIFU(ctx, "8485-1901")
package database
