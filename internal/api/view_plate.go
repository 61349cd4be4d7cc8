// Marvin - MaNGA Survey Data Browser and API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marvin

package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/marvin/internal/validation"
)

// PlateView lists the cubes observed on a plate.
type PlateView struct {
	h *Handler
}

func (v *PlateView) Name() string { return "plate" }

func (v *PlateView) Register(r chi.Router) {
	r.Get("/plate/{plateid}/cubes/", v.GetPlateCubes)
}

// GetPlateCubes handles GET /plate/{plateid}/cubes/.
func (v *PlateView) GetPlateCubes(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	raw := chi.URLParam(r, "plateid")
	plate, err := strconv.Atoi(raw)
	if err != nil || plate <= 0 {
		respondValidation(w, r, validation.NotAnInteger("plateid"))
		return
	}

	records, err := v.h.catalog.CubesByPlate(r.Context(), plate)
	if err != nil {
		respondError(w, r, http.StatusServiceUnavailable, ErrCodeServiceUnavailable, "Backing store unavailable", err)
		return
	}

	plateifus := make([]string, len(records))
	for i, rec := range records {
		plateifus[i] = rec.PlateIFU
	}
	respondSuccess(w, r, map[string]interface{}{
		"plateid":   plate,
		"plateifus": plateifus,
	}, start)
}
