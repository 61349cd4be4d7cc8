// Marvin - MaNGA Survey Data Browser and API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marvin

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tomtom215/marvin/internal/cube"
)

func newInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info <file>",
		Short: "Print the identity and shape of a cube",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := cube.New(cmd.Context(), cube.Options{Filename: args[0]})
			if err != nil {
				return err
			}

			nx, ny, nwave := c.Shape()
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "plateifu:  %s\n", c.PlateIFU)
			fmt.Fprintf(out, "mangaid:   %s\n", c.MangaID)
			fmt.Fprintf(out, "plate:     %d\n", c.Plate)
			fmt.Fprintf(out, "ra, dec:   %.6f, %.6f\n", c.RA, c.Dec)
			fmt.Fprintf(out, "shape:     %d x %d x %d\n", nx, ny, nwave)
			return nil
		},
	}
}
