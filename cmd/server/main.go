// Marvin - MaNGA Survey Data Browser and API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marvin

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/tomtom215/marvin/internal/api"
	"github.com/tomtom215/marvin/internal/cache"
	"github.com/tomtom215/marvin/internal/config"
	"github.com/tomtom215/marvin/internal/cube"
	"github.com/tomtom215/marvin/internal/database"
	"github.com/tomtom215/marvin/internal/logging"
	"github.com/tomtom215/marvin/internal/supervisor"
	"github.com/tomtom215/marvin/internal/supervisor/services"
)

// Maintenance intervals of the data layer.
const (
	cubeCleanupInterval = time.Minute
	badgerGCInterval    = 10 * time.Minute
	checkpointInterval  = 5 * time.Minute
)

func main() {
	// Load configuration first to get logging settings
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	logging.Info().
		Str("environment", cfg.Server.Environment).
		Str("api_prefix", cfg.Server.APIPrefix()).
		Str("redux_path", cfg.Data.ReduxPath).
		Str("default_release", cfg.Data.DefaultRelease).
		Strs("releases", cfg.Data.ReleaseNames()).
		Str("db_path", cfg.Database.Path).
		Msg("Configuration loaded")

	db, err := database.New(&cfg.Database)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize database")
	}
	defer func() {
		if err := db.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing database")
		}
	}()

	if cfg.Database.Seed {
		if err := db.Seed(context.Background()); err != nil {
			// Close database before fatal exit to ensure defer runs
			if closeErr := db.Close(); closeErr != nil {
				logging.Error().Err(closeErr).Msg("Error closing database")
			}
			logging.Fatal().Err(err).Msg("Failed to seed cube catalog")
		}
	}
	if n, err := db.CountCubes(context.Background()); err == nil {
		logging.Info().Int("cubes", n).Msg("Cube catalog ready")
	}

	var badgerDB *badger.DB
	if cfg.Cache.Enabled {
		badgerDB, err = cache.OpenBadger(cfg.Cache.Path)
		if err != nil {
			logging.Fatal().Err(err).Msg("Failed to open spectrum cache")
		}
		defer func() {
			if err := badgerDB.Close(); err != nil {
				logging.Error().Err(err).Msg("Error closing spectrum cache")
			}
		}()
		logging.Info().Str("path", cfg.Cache.Path).Dur("ttl", cfg.Cache.TTL).Msg("Spectrum cache enabled")
	}

	cubes := cache.NewLRU[*cube.Cube](cfg.Cache.CubeCapacity, cfg.Cache.CubeTTL)
	loader := newCubeLoader(cfg, db, cubes, badgerDB)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create supervisor tree")
	}

	// Data layer services
	tree.AddDataService(services.NewPeriodicService("cube-cache-cleanup", cubeCleanupInterval,
		func(context.Context) error {
			if n := cubes.CleanupExpired(); n > 0 {
				logging.Debug().Int("expired", n).Msg("Evicted expired cubes")
			}
			return nil
		}))
	tree.AddDataService(services.NewPeriodicService("duckdb-checkpoint", checkpointInterval, db.Checkpoint))
	if badgerDB != nil {
		tree.AddDataService(services.NewPeriodicService("spectrum-cache-gc", badgerGCInterval,
			func(context.Context) error { return cache.GCBadger(badgerDB, 0.5) }))
	}

	router := api.NewRouter(api.Dependencies{
		Config:  cfg,
		Cubes:   loader,
		Catalog: db,
		Health:  db,
	})
	server := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           router.SetupChi(),
		ReadTimeout:       cfg.Server.Timeout,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      cfg.Server.Timeout,
		IdleTimeout:       60 * time.Second,
	}

	// API layer services
	tree.AddAPIService(services.NewHTTPServerService(server, 10*time.Second))
	logging.Info().Str("addr", server.Addr).Msg("HTTP server service added")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	logging.Info().Msg("Starting supervisor tree...")
	errCh := tree.ServeBackground(ctx)

	select {
	case <-ctx.Done():
		logging.Info().Msg("Context canceled, waiting for supervisor to finish...")
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor tree error")
		}
	}

	for err := range errCh {
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor shutdown error")
		}
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	for _, svc := range unstopped {
		logging.Warn().Str("service", svc.Name).Msg("Service failed to stop")
	}

	logging.Info().Msg("Marvin stopped gracefully")
}

// newCubeLoader builds the cube loader. Store lookups go through a circuit
// breaker; spectra are cached in badgerDB when it is not nil.
func newCubeLoader(cfg *config.Config, db *database.DB, cubes *cache.LRU[*cube.Cube], badgerDB *badger.DB) *cube.Loader {
	drpvers := make(map[string]string, len(cfg.Data.Releases))
	for name, rc := range cfg.Data.Releases {
		drpvers[name] = rc.DRPVer
	}

	var spectra *cache.Badger[cube.Spectrum]
	if badgerDB != nil {
		spectra = cache.NewBadger[cube.Spectrum](badgerDB, "spectrum:", cfg.Cache.TTL)
	}

	store := database.NewBreakerStore(db, database.DefaultBreakerSettings())
	return cube.NewLoader(store, cube.LoaderConfig{
		ReduxPath:   cfg.Data.ReduxPath,
		DRPVersions: drpvers,
	}, cubes, spectra)
}
