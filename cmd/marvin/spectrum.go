// Marvin - MaNGA Survey Data Browser and API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marvin

package main

import (
	"fmt"
	"io"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/tomtom215/marvin/internal/cube"
)

type spectrumFlags struct {
	x, y    int
	ra, dec float64
	asJSON  bool
}

func newSpectrumCmd() *cobra.Command {
	var f spectrumFlags

	cmd := &cobra.Command{
		Use:   "spectrum <file>",
		Short: "Extract the spectrum at (x, y) or (ra, dec)",
		Long: `Extract the flux column of one spaxel. Give either --x and --y
(0-based pixel) or --ra and --dec (degrees, converted through the cube WCS).`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := cube.New(cmd.Context(), cube.Options{Filename: args[0]})
			if err != nil {
				return err
			}

			spec, err := c.GetSpectrum(coordinateArgs(cmd, f))
			if err != nil {
				return err
			}

			if f.asJSON {
				return writeSpectrumJSON(cmd.OutOrStdout(), spec)
			}
			return writeSpectrumTable(cmd.OutOrStdout(), spec)
		},
	}

	cmd.Flags().IntVar(&f.x, "x", 0, "pixel column")
	cmd.Flags().IntVar(&f.y, "y", 0, "pixel row")
	cmd.Flags().Float64Var(&f.ra, "ra", 0, "right ascension in degrees")
	cmd.Flags().Float64Var(&f.dec, "dec", 0, "declination in degrees")
	cmd.Flags().BoolVar(&f.asJSON, "json", false, "write JSON instead of a table")
	return cmd
}

// coordinateArgs sets only the flags given on the command line, so a
// missing --y is reported rather than defaulting to 0.
func coordinateArgs(cmd *cobra.Command, f spectrumFlags) cube.CoordinateArgs {
	var args cube.CoordinateArgs
	flags := cmd.Flags()
	if flags.Changed("x") {
		args.X = &f.x
	}
	if flags.Changed("y") {
		args.Y = &f.y
	}
	if flags.Changed("ra") {
		args.RA = &f.ra
	}
	if flags.Changed("dec") {
		args.Dec = &f.dec
	}
	return args
}

func writeSpectrumJSON(w io.Writer, spec *cube.Spectrum) error {
	return json.NewEncoder(w).Encode(spec)
}

func writeSpectrumTable(w io.Writer, spec *cube.Spectrum) error {
	if _, err := fmt.Fprintf(w, "# x=%d y=%d\n", spec.X, spec.Y); err != nil {
		return err
	}
	for k, flux := range spec.Flux {
		var err error
		if k < len(spec.Wavelength) {
			_, err = fmt.Fprintf(w, "%.4f\t%g\n", spec.Wavelength[k], flux)
		} else {
			_, err = fmt.Fprintf(w, "%d\t%g\n", k, flux)
		}
		if err != nil {
			return err
		}
	}
	return nil
}
