// Marvin - MaNGA Survey Data Browser and API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marvin

package api

import (
	"context"
	"time"

	"github.com/tomtom215/marvin/internal/config"
	"github.com/tomtom215/marvin/internal/cube"
)

// CubeService resolves cube names and extracts spectra. *cube.Loader
// implements it.
type CubeService interface {
	Cube(ctx context.Context, name, release string) (*cube.Cube, error)
	Spectrum(ctx context.Context, name, release string, args cube.CoordinateArgs) (*cube.Spectrum, error)
}

// Catalog answers plate and target queries. *database.DB implements it.
type Catalog interface {
	CubesByPlate(ctx context.Context, plate int) ([]cube.Record, error)
	MangaIDToPlateIFU(ctx context.Context, mangaid string) (string, error)
}

// Pinger reports whether a dependency is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Dependencies are the services the API is built from.
type Dependencies struct {
	Config  *config.Config
	Cubes   CubeService
	Catalog Catalog
	// Health is checked by the readiness probe; nil means never ready.
	Health Pinger
}

// Handler holds the dependencies shared by all views.
type Handler struct {
	cfg       *config.Config
	cubes     CubeService
	catalog   Catalog
	health    Pinger
	startTime time.Time
}

// NewHandler creates a Handler.
func NewHandler(deps Dependencies) *Handler {
	return &Handler{
		cfg:       deps.Config,
		cubes:     deps.Cubes,
		catalog:   deps.Catalog,
		health:    deps.Health,
		startTime: time.Now(),
	}
}
