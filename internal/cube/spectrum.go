// Marvin - MaNGA Survey Data Browser and API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marvin

package cube

import (
	"math"

	"github.com/tomtom215/marvin/internal/metrics"
)

// Spectrum is the flux column at one spaxel of the cube named by PlateIFU.
type Spectrum struct {
	PlateIFU   string    `json:"plateifu"`
	X          int       `json:"x"`
	Y          int       `json:"y"`
	Flux       []float32 `json:"flux"`
	Wavelength []float64 `json:"wavelength,omitempty"`
}

// GetSpectrum returns the spectrum at the requested position. The argument
// combination is validated before any data is read; the cube is not modified.
func (c *Cube) GetSpectrum(args CoordinateArgs) (*Spectrum, error) {
	spec, err := c.getSpectrum(args)
	metrics.RecordSpectrumExtraction(args.system(), extractionResult(err))
	return spec, err
}

func (c *Cube) getSpectrum(args CoordinateArgs) (*Spectrum, error) {
	coord, err := args.Resolve()
	if err != nil {
		return nil, err
	}
	if err := c.Load(); err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	x, y, err := c.toPixel(coord)
	if err != nil {
		return nil, err
	}

	d := c.data
	flux := make([]float32, d.NWave)
	for k := range flux {
		flux[k] = d.Data[d.Index(x, y, k)]
	}

	spec := &Spectrum{PlateIFU: c.PlateIFU, X: x, Y: y, Flux: flux}
	if c.spectral != nil {
		spec.Wavelength = c.spectral.Grid(d.NWave)
	}
	return spec, nil
}

// toPixel resolves a coordinate to an in-bounds spaxel. Must be called with
// c.mu held and data loaded.
func (c *Cube) toPixel(coord Coordinate) (x, y int, err error) {
	switch p := coord.(type) {
	case PixelCoord:
		x, y = p.X, p.Y
	case SkyCoord:
		w, err := c.celestialWCS()
		if err != nil {
			return 0, 0, err
		}
		fx, fy, ok := w.WorldToPixel(p.RA, p.Dec)
		if !ok || !fitsInt(fx) || !fitsInt(fy) {
			return 0, 0, newError(CoordinateOutOfBounds, MsgOutOfBounds, nil)
		}
		x, y = int(math.RoundToEven(fx)), int(math.RoundToEven(fy))
	}

	if x < 0 || x >= c.data.NX || y < 0 || y >= c.data.NY {
		return 0, 0, newError(CoordinateOutOfBounds, MsgOutOfBounds, nil)
	}
	return x, y, nil
}

// fitsInt reports whether v can be rounded to an int without overflow.
func fitsInt(v float64) bool {
	return !math.IsNaN(v) && math.Abs(v) < 1<<31
}

func extractionResult(err error) string {
	switch KindOf(err) {
	case KindUnknown:
		if err == nil {
			return "success"
		}
		return "error"
	case CoordinateOutOfBounds:
		return "out_of_bounds"
	case SourceNotFound:
		return "not_found"
	default:
		return "invalid_input"
	}
}
