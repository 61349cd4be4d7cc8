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

// CubeView serves cube metadata.
type CubeView struct {
	h *Handler
}

func (v *CubeView) Name() string { return "cubes" }

func (v *CubeView) Register(r chi.Router) {
	r.Get("/cubes/", v.Index)
	r.Get("/cubes/{name}/", v.GetCube)
	r.Post("/cubes/{name}/", v.GetCube)
}

// Index handles GET /cubes/.
func (v *CubeView) Index(w http.ResponseWriter, r *http.Request) {
	respondSuccess(w, r, "this is a cube", time.Time{})
}

// GetCube handles GET and POST /cubes/{name}/. name is a plate-IFU or a
// MaNGA ID; release is required.
func (v *CubeView) GetCube(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	params, err := requestParams(r)
	if err != nil {
		respondBadParams(w, r, err)
		return
	}
	req, verr := v.h.parseCubeRequest(r, params)
	if verr != nil {
		respondValidation(w, r, verr)
		return
	}

	c, err := v.h.cubes.Cube(r.Context(), req.Name, req.Release)
	if err != nil {
		respondCubeError(w, r, err)
		return
	}

	respondSuccess(w, r, map[string]interface{}{
		"plateifu": c.PlateIFU,
		"mangaid":  c.MangaID,
		"ra":       c.RA,
		"dec":      c.Dec,
		"redshift": c.Redshift,
	}, start)
}
