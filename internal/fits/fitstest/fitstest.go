// Marvin - MaNGA Survey Data Browser and API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marvin

// Package fitstest writes small synthetic MaNGA-like cubes for tests.
//
// The default cube mimics the header of manga-8485-1901-LOGCUBE with a
// reduced wavelength axis, and each voxel holds Voxel(x, y, k) so tests can
// check exactly which column was extracted.
package fitstest

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/astrogo/fitsio"
	"github.com/klauspost/compress/gzip"
)

// Reference values of the 8485-1901 cube.
const (
	PlateIFU = "8485-1901"
	MangaID  = "1-209232"
	Plate    = 8485
	RA       = 232.544703894
	Dec      = 48.6902009334
)

// CubeSpec describes a synthetic cube.
type CubeSpec struct {
	NX, NY, NWave int

	// Cards are written to the primary header in addition to the defaults.
	Cards []fitsio.Card

	// AsExtension writes an empty primary HDU followed by a FLUX extension.
	AsExtension bool

	// NoWCS omits the celestial and spectral WCS keywords.
	NoWCS bool

	// Value overrides Voxel.
	Value func(x, y, k int) float32
}

// Voxel is the default flux value at (x, y, k).
func Voxel(x, y, k int) float32 {
	return float32(x) + 100*float32(y) + 10000*float32(k)
}

// DefaultSpec returns a 34x34 cube with 20 wavelength channels.
func DefaultSpec() CubeSpec {
	return CubeSpec{NX: 34, NY: 34, NWave: 20}
}

// cards returns the identity and WCS keywords of the reference cube.
func (s CubeSpec) cards() []fitsio.Card {
	cards := []fitsio.Card{
		{Name: "PLATEIFU", Value: PlateIFU},
		{Name: "MANGAID", Value: MangaID},
		{Name: "PLATEID", Value: Plate},
		{Name: "IFUDSGN", Value: "1901"},
		{Name: "IFURA", Value: RA},
		{Name: "IFUDEC", Value: Dec},
	}
	if !s.NoWCS {
		cards = append(cards, WCSCards(s.NX, s.NY)...)
	}
	return append(cards, s.Cards...)
}

// WCSCards returns a TAN celestial WCS centred on the cube with 0.5 arcsec
// spaxels and a WAVE-LOG spectral axis in metres.
func WCSCards(nx, ny int) []fitsio.Card {
	return []fitsio.Card{
		{Name: "CTYPE1", Value: "RA---TAN"},
		{Name: "CTYPE2", Value: "DEC--TAN"},
		{Name: "CRVAL1", Value: RA},
		{Name: "CRVAL2", Value: Dec},
		{Name: "CRPIX1", Value: float64(nx)/2 + 1},
		{Name: "CRPIX2", Value: float64(ny)/2 + 1},
		{Name: "CD1_1", Value: -0.000138889},
		{Name: "CD2_2", Value: 0.000138889},
		{Name: "CTYPE3", Value: "WAVE-LOG"},
		{Name: "CUNIT3", Value: "m"},
		{Name: "CRVAL3", Value: 3.62159598486e-07},
		{Name: "CRPIX3", Value: 1.0},
		{Name: "CD3_3", Value: 8.33903304339e-11},
	}
}

// Data returns the flux array in FITS order.
func (s CubeSpec) Data() []float32 {
	value := s.Value
	if value == nil {
		value = Voxel
	}
	data := make([]float32, s.NX*s.NY*s.NWave)
	for k := 0; k < s.NWave; k++ {
		for y := 0; y < s.NY; y++ {
			for x := 0; x < s.NX; x++ {
				data[k*s.NX*s.NY+y*s.NX+x] = value(x, y, k)
			}
		}
	}
	return data
}

// Encode writes the cube as FITS to w.
func Encode(w io.Writer, s CubeSpec) error {
	f, err := fitsio.Create(w)
	if err != nil {
		return err
	}

	if s.AsExtension {
		phdu, err := fitsio.NewPrimaryHDU(fitsio.NewHeader(s.cards(), fitsio.IMAGE_HDU, 8, nil))
		if err != nil {
			return err
		}
		if err := f.Write(phdu); err != nil {
			return err
		}
	}

	img := fitsio.NewImage(-32, []int{s.NX, s.NY, s.NWave})
	defer img.Close()

	cards := s.cards()
	if s.AsExtension {
		cards = append([]fitsio.Card{{Name: "EXTNAME", Value: "FLUX"}}, WCSCards(s.NX, s.NY)...)
	}
	if err := img.Header().Append(cards...); err != nil {
		return err
	}
	if err := img.Write(s.Data()); err != nil {
		return err
	}
	if err := f.Write(img); err != nil {
		return err
	}
	return f.Close()
}

// Write encodes the cube to path, gzip-compressing when the name ends in .gz.
// Parent directories are created.
func Write(t testing.TB, path string, s CubeSpec) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	out, err := os.Create(path) //nolint:gosec // test path
	if err != nil {
		t.Fatalf("create %s: %v", path, err)
	}
	defer func() {
		if err := out.Close(); err != nil {
			t.Fatalf("close %s: %v", path, err)
		}
	}()

	var w io.Writer = out
	if strings.HasSuffix(path, ".gz") {
		zw := gzip.NewWriter(out)
		defer func() {
			if err := zw.Close(); err != nil {
				t.Fatalf("gzip close: %v", err)
			}
		}()
		w = zw
	}

	if err := Encode(w, s); err != nil {
		t.Fatalf("encode %s: %v", path, err)
	}
}
