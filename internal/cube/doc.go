// Marvin - MaNGA Survey Data Browser and API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marvin

/*
Package cube implements the MaNGA data cube domain object.

A Cube is built from exactly one of a FITS file path, a plate-IFU designation
or a MaNGA ID. Identifier-based cubes are resolved through a Store and read
their flux lazily from the DRP redux tree on the first extraction.

# Spectrum Extraction

GetSpectrum takes loosely-typed caller input (CoordinateArgs, as parsed from a
request) and resolves it to a Coordinate before touching any data:

	spec, err := c.GetSpectrum(cube.Pixel(10, 5))
	spec, err := c.GetSpectrum(cube.Sky(232.546383, 48.6883954))

Validation failures and bounds violations are returned as *Error values whose
Kind identifies the failure. Callers match with errors.Is against the
exported sentinels:

	if errors.Is(err, cube.ErrOutOfBounds) { ... }

# Loader

Loader is the request-facing entry point. It resolves a name to a cube
through the Store, keeps decoded cubes in an LRU and caches extracted spectra
in BadgerDB.
*/
package cube
