// Marvin - MaNGA Survey Data Browser and API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marvin

// Package main implements the marvin command line tool, which reads local
// MaNGA LOGCUBE files without a server or catalog.
//
//	marvin info manga-8485-1901-LOGCUBE.fits.gz
//	marvin spectrum manga-8485-1901-LOGCUBE.fits.gz --x 10 --y 10
//	marvin spectrum manga-8485-1901-LOGCUBE.fits.gz --ra 232.5447 --dec 48.6902 --json
package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/tomtom215/marvin/internal/logging"
)

func newRootCmd() *cobra.Command {
	var logLevel string

	root := &cobra.Command{
		Use:           "marvin",
		Short:         "Inspect MaNGA data cubes",
		Long:          `marvin reads MaNGA LOGCUBE files and extracts spectra at pixel or sky positions.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			cfg := logging.DefaultConfig()
			cfg.Level = logLevel
			cfg.Format = "console"
			cfg.Output = cmd.ErrOrStderr()
			logging.Init(cfg)
		},
	}
	root.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level (debug, info, warn, error)")

	root.AddCommand(newInfoCmd(), newSpectrumCmd())
	return root
}

func main() {
	root := newRootCmd()
	if err := root.Execute(); err != nil {
		root.PrintErrln("Error:", err)
		os.Exit(1)
	}
}
