// Marvin - MaNGA Survey Data Browser and API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marvin

// Package fits reads MaNGA DRP data cubes (LOGCUBE/LINCUBE) from FITS files.
//
// Files may be plain or gzip-compressed; compression is detected from the
// stream's magic bytes rather than the file name. The flux array is taken
// from the FLUX extension when present, otherwise from the first image HDU
// with three axes, so both full DRP products and trimmed single-HDU cubes
// load the same way.
//
// Flux values are stored in FITS order: the x axis varies fastest, then y,
// then wavelength. Use (*Cube).Index to address a voxel.
package fits
