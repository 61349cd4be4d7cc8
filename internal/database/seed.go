// Marvin - MaNGA Survey Data Browser and API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marvin

package database

import (
	"context"

	"github.com/tomtom215/marvin/internal/cube"
	"github.com/tomtom215/marvin/internal/logging"
)

// ReferenceCubes are the records a fresh store is seeded with: the galaxies
// used throughout the Marvin documentation.
var ReferenceCubes = []cube.Record{
	{
		PlateIFU: "8485-1901",
		MangaID:  "1-209232",
		Plate:    8485,
		IFU:      "1901",
		RA:       232.544703894,
		Dec:      48.6902009334,
		Redshift: 0.0407447,
	},
	{
		PlateIFU: "7443-12701",
		MangaID:  "12-98126",
		Plate:    7443,
		IFU:      "12701",
		RA:       230.50746239,
		Dec:      43.53234873,
		Redshift: 0.020290,
	},
}

// Seed upserts ReferenceCubes.
func (db *DB) Seed(ctx context.Context) error {
	if err := db.UpsertCubes(ctx, ReferenceCubes...); err != nil {
		return err
	}
	logging.Info().Int("cubes", len(ReferenceCubes)).Msg("Seeded reference cube records")
	return nil
}
