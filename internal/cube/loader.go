// Marvin - MaNGA Survey Data Browser and API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marvin

package cube

import (
	"context"

	"github.com/tomtom215/marvin/internal/cache"
	"github.com/tomtom215/marvin/internal/logging"
	"github.com/tomtom215/marvin/internal/metrics"
)

// LoaderConfig holds the data locations a Loader resolves against.
type LoaderConfig struct {
	ReduxPath string
	// DRPVersions maps a data release (MPL-4) to its DRP version (v1_5_1).
	DRPVersions map[string]string
}

// Loader resolves request names to cubes and spectra, caching decoded cubes
// in memory and extracted spectra on disk. Safe for concurrent use.
type Loader struct {
	store   Store
	cfg     LoaderConfig
	cubes   *cache.LRU[*Cube]
	spectra *cache.Badger[Spectrum]
}

// NewLoader creates a Loader. spectra may be nil to disable the spectrum cache.
func NewLoader(store Store, cfg LoaderConfig, cubes *cache.LRU[*Cube], spectra *cache.Badger[Spectrum]) *Loader {
	if cubes == nil {
		cubes = cache.NewLRU[*Cube](0, 0)
	}
	return &Loader{store: store, cfg: cfg, cubes: cubes, spectra: spectra}
}

// Cube resolves a plate-IFU or MaNGA ID for a release. The flux is not read.
func (l *Loader) Cube(ctx context.Context, name, release string) (*Cube, error) {
	key := release + "/" + name
	if c, ok := l.cubes.Get(key); ok {
		metrics.RecordCacheLookup("cube", true)
		return c, nil
	}
	metrics.RecordCacheLookup("cube", false)

	opts := Options{
		Release:   release,
		DRPVer:    l.cfg.DRPVersions[release],
		ReduxPath: l.cfg.ReduxPath,
		Store:     l.store,
	}
	switch ParseIdentifier(name) {
	case IdentifierMangaID:
		opts.MangaID = name
	default:
		opts.PlateIFU = name
	}

	c, err := New(ctx, opts)
	if err != nil {
		return nil, err
	}
	l.cubes.Add(key, c)
	return c, nil
}

// Spectrum extracts the spectrum of a named cube. The coordinate arguments
// are validated before the store or any file is touched.
func (l *Loader) Spectrum(ctx context.Context, name, release string, args CoordinateArgs) (*Spectrum, error) {
	coord, err := args.Resolve()
	if err != nil {
		metrics.RecordSpectrumExtraction(args.system(), extractionResult(err))
		return nil, err
	}

	c, err := l.Cube(ctx, name, release)
	if err != nil {
		return nil, err
	}

	ctx = logging.ContextWithPlateIFU(ctx, c.PlateIFU)
	key := release + "/" + c.PlateIFU + "/" + coord.String()
	if spec, ok := l.cachedSpectrum(ctx, key); ok {
		return spec, nil
	}

	spec, err := c.GetSpectrum(args)
	if err != nil {
		return nil, err
	}

	if l.spectra != nil {
		if err := l.spectra.Set(key, *spec); err != nil {
			metrics.RecordCacheError("spectrum", "set")
			logging.Ctx(ctx).Warn().Err(err).Str("key", key).Msg("Failed to cache spectrum")
		}
	}
	return spec, nil
}

func (l *Loader) cachedSpectrum(ctx context.Context, key string) (*Spectrum, bool) {
	if l.spectra == nil {
		return nil, false
	}
	spec, found, err := l.spectra.Get(key)
	if err != nil {
		metrics.RecordCacheError("spectrum", "get")
		logging.Ctx(ctx).Warn().Err(err).Str("key", key).Msg("Spectrum cache read failed")
		return nil, false
	}
	metrics.RecordCacheLookup("spectrum", found)
	if !found {
		return nil, false
	}
	return &spec, true
}

// Evict drops a cached cube, for example after its record was updated.
func (l *Loader) Evict(name, release string) {
	l.cubes.Remove(release + "/" + name)
}
