// Marvin - MaNGA Survey Data Browser and API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marvin

package cube

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/tomtom215/marvin/internal/fits"
	"github.com/tomtom215/marvin/internal/logging"
	"github.com/tomtom215/marvin/internal/metrics"
	"github.com/tomtom215/marvin/internal/wcs"
)

// spaxelScale is the MaNGA spaxel size in degrees (0.5 arcsec), used when a
// cube header carries no celestial WCS.
const spaxelScale = 0.5 / 3600

// ErrNoRecord is returned by a Store when no cube matches the identifier.
var ErrNoRecord = errors.New("no matching cube record")

// Record is the cube metadata held by the backing store.
type Record struct {
	PlateIFU string  `json:"plateifu"`
	MangaID  string  `json:"mangaid"`
	Plate    int     `json:"plate"`
	IFU      string  `json:"ifu"`
	RA       float64 `json:"ra"`
	Dec      float64 `json:"dec"`
	Redshift float64 `json:"redshift"`
}

// Store resolves cube identifiers to records.
type Store interface {
	CubeByPlateIFU(ctx context.Context, plateifu string) (*Record, error)
	CubeByMangaID(ctx context.Context, mangaid string) (*Record, error)
}

// Options selects how a cube is built. Exactly one of Filename, PlateIFU and
// MangaID must be set.
type Options struct {
	Filename string
	PlateIFU string
	MangaID  string

	Release   string
	DRPVer    string
	ReduxPath string
	Store     Store
}

// Cube is a MaNGA data cube. The embedded Record holds its identity.
type Cube struct {
	Record

	Filename string
	Release  string
	DRPVer   string

	mu        sync.Mutex
	data      *fits.Cube
	celestial *wcs.TAN
	spectral  *wcs.Spectral
}

// New builds a cube. File-based cubes are read immediately; identifier-based
// cubes are resolved through opts.Store and read their flux on first use.
func New(ctx context.Context, opts Options) (*Cube, error) {
	set := 0
	for _, v := range []string{opts.Filename, opts.PlateIFU, opts.MangaID} {
		if v != "" {
			set++
		}
	}
	switch {
	case set == 0:
		return nil, newError(MissingIdentifier, MsgMissingIdentifier, nil)
	case set > 1:
		return nil, newError(MissingIdentifier, MsgTooManyIdentifier, nil)
	}

	c := &Cube{Release: opts.Release, DRPVer: opts.DRPVer}
	if opts.Filename != "" {
		c.Filename = opts.Filename
		if err := c.Load(); err != nil {
			return nil, err
		}
		c.identityFromHeader()
		return c, nil
	}

	rec, err := lookup(ctx, opts)
	if err != nil {
		return nil, err
	}
	c.Record = *rec
	if opts.ReduxPath != "" && opts.DRPVer != "" {
		c.Filename = ReduxPath(opts.ReduxPath, opts.DRPVer, rec.Plate, rec.PlateIFU)
	}

	logging.Ctx(ctx).Debug().
		Str("plateifu", rec.PlateIFU).
		Str("mangaid", rec.MangaID).
		Str("release", opts.Release).
		Msg("Cube resolved from store")
	return c, nil
}

func lookup(ctx context.Context, opts Options) (*Record, error) {
	id := opts.PlateIFU
	field := "plateifu"
	if id == "" {
		id, field = opts.MangaID, "mangaid"
	}
	msg := fmt.Sprintf("could not retrieve cube for %s %s", field, id)

	if opts.Store == nil {
		return nil, newError(BackingStoreLookupFailed, msg, errors.New("no backing store configured"))
	}

	var (
		rec *Record
		err error
	)
	if opts.PlateIFU != "" {
		rec, err = opts.Store.CubeByPlateIFU(ctx, opts.PlateIFU)
	} else {
		rec, err = opts.Store.CubeByMangaID(ctx, opts.MangaID)
	}
	if err != nil {
		return nil, newError(BackingStoreLookupFailed, msg, err)
	}
	if rec == nil {
		return nil, newError(BackingStoreLookupFailed, msg, ErrNoRecord)
	}
	return rec, nil
}

// Load reads the flux array and WCS if they are not loaded yet. A failed load
// is not remembered; the next call tries again.
func (c *Cube) Load() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.data != nil {
		return nil
	}
	if c.Filename == "" {
		return newError(SourceNotFound, "no cube file is associated with "+c.PlateIFU, nil)
	}

	start := time.Now()
	data, err := fits.Open(c.Filename)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			metrics.RecordCubeLoad("not_found", time.Since(start))
			return newError(SourceNotFound, c.Filename+" does not exist", err)
		}
		metrics.RecordCubeLoad("error", time.Since(start))
		return fmt.Errorf("load cube %s: %w", c.Filename, err)
	}
	metrics.RecordCubeLoad("success", time.Since(start))

	hdr := data.Keywords()
	celestial, err := wcs.CelestialFromHeader(hdr)
	if err != nil {
		logging.Warn().Err(err).Str("file", c.Filename).Msg("No usable celestial WCS, using nominal spaxel grid")
	}
	spectral, _ := wcs.SpectralFromHeader(hdr)

	c.data = data
	c.celestial = celestial
	c.spectral = spectral
	return nil
}

// Loaded reports whether the flux array is in memory.
func (c *Cube) Loaded() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.data != nil
}

// Shape returns the spatial and spectral extent. All values are zero until
// the cube is loaded.
func (c *Cube) Shape() (nx, ny, nwave int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.data == nil {
		return 0, 0, 0
	}
	return c.data.NX, c.data.NY, c.data.NWave
}

// identityFromHeader fills the Record from primary header keywords.
func (c *Cube) identityFromHeader() {
	hdr := c.data.Keywords()

	c.PlateIFU, _ = hdr.String("PLATEIFU")
	c.MangaID, _ = hdr.String("MANGAID")
	c.Plate, _ = hdr.Int("PLATEID")
	c.IFU, _ = hdr.String("IFUDSGN")

	if plate, ifu, ok := SplitPlateIFU(c.PlateIFU); ok {
		if c.Plate == 0 {
			c.Plate = plate
		}
		if c.IFU == "" {
			c.IFU = ifu
		}
	}
	if c.PlateIFU == "" && c.Plate != 0 && c.IFU != "" {
		c.PlateIFU = strconv.Itoa(c.Plate) + "-" + c.IFU
	}

	var ok bool
	if c.RA, ok = hdr.Float("IFURA"); !ok {
		c.RA, _ = hdr.Float("OBJRA")
	}
	if c.Dec, ok = hdr.Float("IFUDEC"); !ok {
		c.Dec, _ = hdr.Float("OBJDEC")
	}
}

// celestialWCS returns the header WCS, or a nominal TAN grid centred on the
// cube's sky position. Must be called with c.mu held.
func (c *Cube) celestialWCS() (*wcs.TAN, error) {
	if c.celestial != nil {
		return c.celestial, nil
	}
	return wcs.NewTAN(
		[2]float64{c.RA, c.Dec},
		[2]float64{float64(c.data.NX)/2 + 1, float64(c.data.NY)/2 + 1},
		[2][2]float64{{-spaxelScale, 0}, {0, spaxelScale}},
	)
}
