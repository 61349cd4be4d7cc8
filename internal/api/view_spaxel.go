// Marvin - MaNGA Survey Data Browser and API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marvin

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
)

// SpaxelView serves spectra extracted from cubes.
type SpaxelView struct {
	h *Handler
}

func (v *SpaxelView) Name() string { return "spaxels" }

func (v *SpaxelView) Register(r chi.Router) {
	r.Get("/cubes/{name}/spectra/", v.GetSpectrum)
	r.Post("/cubes/{name}/spectra/", v.GetSpectrum)
}

// GetSpectrum handles GET and POST /cubes/{name}/spectra/. Exactly one of
// (x, y) and (ra, dec) must be given.
func (v *SpaxelView) GetSpectrum(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	params, err := requestParams(r)
	if err != nil {
		respondBadParams(w, r, err)
		return
	}
	req, verr := v.h.parseCubeRequest(r, params)
	args, cerr := parseCoordinateArgs(params)
	if verr = verr.Merge(cerr); verr != nil {
		respondValidation(w, r, verr)
		return
	}

	spec, err := v.h.cubes.Spectrum(r.Context(), req.Name, req.Release, args)
	if err != nil {
		respondCubeError(w, r, err)
		return
	}

	respondSuccess(w, r, map[string]interface{}{
		"plateifu":   spec.PlateIFU,
		"x":          spec.X,
		"y":          spec.Y,
		"flux":       spec.Flux,
		"wavelength": spec.Wavelength,
	}, start)
}
