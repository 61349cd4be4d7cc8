// Marvin - MaNGA Survey Data Browser and API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marvin

// Package wcs converts between pixel and world coordinates for the celestial
// and spectral axes of MaNGA data cubes.
//
// Only the gnomonic (TAN) celestial projection and linear or logarithmic
// (WAVE, WAVE-LOG) spectral axes are supported, which covers every DRP cube.
// Pixel coordinates are 0-based throughout; the FITS 1-based convention is
// handled internally.
package wcs

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// ErrSingularMatrix is returned when the CD matrix cannot be inverted.
var ErrSingularMatrix = errors.New("wcs: singular CD matrix")

// ErrUnsupportedProjection is returned for CTYPE values other than TAN.
var ErrUnsupportedProjection = errors.New("wcs: unsupported projection")

// Keywords is the subset of a FITS header the WCS needs.
type Keywords interface {
	Float(key string) (float64, bool)
	String(key string) (string, bool)
}

// TAN is a gnomonic celestial projection.
type TAN struct {
	CRVAL [2]float64    // reference RA, Dec in degrees
	CRPIX [2]float64    // reference pixel, 1-based
	CD    [2][2]float64 // degrees per pixel

	inv [2][2]float64
}

// NewTAN builds a projection and precomputes the inverse CD matrix.
func NewTAN(crval, crpix [2]float64, cd [2][2]float64) (*TAN, error) {
	det := cd[0][0]*cd[1][1] - cd[0][1]*cd[1][0]
	if det == 0 || math.IsNaN(det) {
		return nil, ErrSingularMatrix
	}
	return &TAN{
		CRVAL: crval,
		CRPIX: crpix,
		CD:    cd,
		inv: [2][2]float64{
			{cd[1][1] / det, -cd[0][1] / det},
			{-cd[1][0] / det, cd[0][0] / det},
		},
	}, nil
}

// CelestialFromHeader reads CTYPE1/2, CRVAL1/2, CRPIX1/2 and either the CDi_j
// matrix or CDELTi with an optional PCi_j matrix.
func CelestialFromHeader(h Keywords) (*TAN, error) {
	for _, key := range []string{"CTYPE1", "CTYPE2"} {
		if ctype, ok := h.String(key); ok && !strings.HasSuffix(strings.TrimSpace(ctype), "-TAN") {
			return nil, fmt.Errorf("%w: %s=%q", ErrUnsupportedProjection, key, ctype)
		}
	}

	var crval, crpix [2]float64
	for i, axis := range []string{"1", "2"} {
		v, ok := h.Float("CRVAL" + axis)
		if !ok {
			return nil, fmt.Errorf("wcs: missing CRVAL%s", axis)
		}
		p, ok := h.Float("CRPIX" + axis)
		if !ok {
			return nil, fmt.Errorf("wcs: missing CRPIX%s", axis)
		}
		crval[i], crpix[i] = v, p
	}

	cd, err := linearMatrix(h)
	if err != nil {
		return nil, err
	}
	return NewTAN(crval, crpix, cd)
}

// linearMatrix returns CDi_j when present, otherwise CDELTi * PCi_j.
func linearMatrix(h Keywords) ([2][2]float64, error) {
	var cd [2][2]float64
	found := false
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			if v, ok := h.Float(fmt.Sprintf("CD%d_%d", i+1, j+1)); ok {
				cd[i][j] = v
				found = true
			}
		}
	}
	if found {
		return cd, nil
	}

	cdelt1, ok1 := h.Float("CDELT1")
	cdelt2, ok2 := h.Float("CDELT2")
	if !ok1 || !ok2 {
		return cd, errors.New("wcs: header has neither CDi_j nor CDELTi keywords")
	}
	pc := [2][2]float64{{1, 0}, {0, 1}}
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			if v, ok := h.Float(fmt.Sprintf("PC%d_%d", i+1, j+1)); ok {
				pc[i][j] = v
			}
		}
	}
	scale := [2]float64{cdelt1, cdelt2}
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			cd[i][j] = scale[i] * pc[i][j]
		}
	}
	return cd, nil
}

// WorldToPixel projects (ra, dec) in degrees to fractional 0-based pixel
// coordinates. ok is false when the point lies on or beyond the horizon of
// the tangent plane and has no projection.
func (w *TAN) WorldToPixel(ra, dec float64) (x, y float64, ok bool) {
	ra0, dec0 := rad(w.CRVAL[0]), rad(w.CRVAL[1])
	a, d := rad(ra), rad(dec)

	dra := a - ra0
	cosc := math.Sin(dec0)*math.Sin(d) + math.Cos(dec0)*math.Cos(d)*math.Cos(dra)
	if cosc <= 0 {
		return 0, 0, false
	}

	xi := deg(math.Cos(d) * math.Sin(dra) / cosc)
	eta := deg((math.Cos(dec0)*math.Sin(d) - math.Sin(dec0)*math.Cos(d)*math.Cos(dra)) / cosc)

	px := w.inv[0][0]*xi + w.inv[0][1]*eta + w.CRPIX[0]
	py := w.inv[1][0]*xi + w.inv[1][1]*eta + w.CRPIX[1]
	return px - 1, py - 1, true
}

// PixelToWorld converts 0-based pixel coordinates to (ra, dec) in degrees.
func (w *TAN) PixelToWorld(x, y float64) (ra, dec float64) {
	dx := x + 1 - w.CRPIX[0]
	dy := y + 1 - w.CRPIX[1]
	xi := rad(w.CD[0][0]*dx + w.CD[0][1]*dy)
	eta := rad(w.CD[1][0]*dx + w.CD[1][1]*dy)

	ra0, dec0 := rad(w.CRVAL[0]), rad(w.CRVAL[1])
	den := math.Cos(dec0) - eta*math.Sin(dec0)
	a := ra0 + math.Atan2(xi, den)
	d := math.Atan2(math.Sin(dec0)+eta*math.Cos(dec0), math.Hypot(xi, den))

	ra = math.Mod(deg(a), 360)
	if ra < 0 {
		ra += 360
	}
	return ra, deg(d)
}

func rad(v float64) float64 { return v * math.Pi / 180 }
func deg(v float64) float64 { return v * 180 / math.Pi }
