// Marvin - MaNGA Survey Data Browser and API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marvin

/*
Package cache provides the two caching layers in front of FITS decoding.

# LRU

LRU is a generic, thread-safe least-recently-used cache with TTL. The server
keeps decoded cubes in it so repeated spectrum requests against the same
galaxy do not re-read a 20+ MB FITS file:

	cubes := cache.NewLRU[*cube.Cube](16, 10*time.Minute)
	cubes.Add("MPL-4/8485-1901", c)

# Badger

Badger persists JSON-encoded values in BadgerDB with a per-entry TTL. It is
used for extracted spectra, which stay valid for as long as the underlying
DRP version is unchanged:

	db, _ := cache.OpenBadger("/data/cache/spectra")
	spectra := cache.NewBadger[cube.Spectrum](db, "spectrum:", 24*time.Hour)
*/
package cache
