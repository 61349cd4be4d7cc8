// Marvin - MaNGA Survey Data Browser and API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marvin

package wcs

import (
	"errors"
	"math"
	"strings"
)

// Spectral describes the third (wavelength) axis of a cube.
type Spectral struct {
	CType string
	CRVAL float64
	CDELT float64
	CRPIX float64 // 1-based
	Unit  string
}

// SpectralFromHeader reads CTYPE3, CRVAL3, CRPIX3, CD3_3 (or CDELT3) and CUNIT3.
func SpectralFromHeader(h Keywords) (*Spectral, error) {
	s := &Spectral{CRPIX: 1}
	s.CType, _ = h.String("CTYPE3")
	s.Unit, _ = h.String("CUNIT3")
	s.CType = strings.TrimSpace(s.CType)
	s.Unit = strings.TrimSpace(s.Unit)

	var ok bool
	if s.CRVAL, ok = h.Float("CRVAL3"); !ok {
		return nil, errors.New("wcs: missing CRVAL3")
	}
	if p, ok := h.Float("CRPIX3"); ok {
		s.CRPIX = p
	}
	if s.CDELT, ok = h.Float("CD3_3"); !ok {
		if s.CDELT, ok = h.Float("CDELT3"); !ok {
			return nil, errors.New("wcs: header has neither CD3_3 nor CDELT3")
		}
	}
	return s, nil
}

// Logarithmic reports whether the axis uses the WAVE-LOG algorithm.
func (s *Spectral) Logarithmic() bool {
	return strings.HasSuffix(s.CType, "-LOG")
}

// At returns the wavelength of 0-based channel k, in Angstrom when CUNIT3 is
// metres and in header units otherwise.
func (s *Spectral) At(k int) float64 {
	w := s.CDELT * (float64(k) + 1 - s.CRPIX)
	var v float64
	if s.Logarithmic() {
		v = s.CRVAL * math.Exp(w/s.CRVAL)
	} else {
		v = s.CRVAL + w
	}
	if s.Unit == "m" {
		v *= 1e10
	}
	return v
}

// Grid returns the wavelengths of the first n channels.
func (s *Spectral) Grid(n int) []float64 {
	out := make([]float64, n)
	for k := range out {
		out[k] = s.At(k)
	}
	return out
}
