// Marvin - MaNGA Survey Data Browser and API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marvin

package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/marvin/internal/cube"
	"github.com/tomtom215/marvin/internal/validation"
)

// GeneralView answers catalog questions that are not tied to one cube.
type GeneralView struct {
	h *Handler
}

func (v *GeneralView) Name() string { return "general" }

func (v *GeneralView) Register(r chi.Router) {
	r.Get("/general/mangaid2plateifu/{mangaid}/", v.MangaIDToPlateIFU)
	r.Get("/general/releases/", v.Releases)
}

// MangaIDToPlateIFU handles GET /general/mangaid2plateifu/{mangaid}/.
func (v *GeneralView) MangaIDToPlateIFU(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	req := mangaIDRequest{MangaID: chi.URLParam(r, "mangaid")}
	if verr := validation.ValidateStruct(&req); verr != nil {
		respondValidation(w, r, verr)
		return
	}

	plateifu, err := v.h.catalog.MangaIDToPlateIFU(r.Context(), req.MangaID)
	switch {
	case errors.Is(err, cube.ErrNoRecord):
		respondError(w, r, http.StatusNotFound, ErrCodeNotFound, "no plateifu found for mangaid "+req.MangaID, nil)
		return
	case err != nil:
		respondError(w, r, http.StatusServiceUnavailable, ErrCodeServiceUnavailable, "Backing store unavailable", err)
		return
	}

	respondSuccess(w, r, map[string]string{"plateifu": plateifu}, start)
}

// Releases handles GET /general/releases/.
func (v *GeneralView) Releases(w http.ResponseWriter, r *http.Request) {
	data := v.h.cfg.Data
	releases := make(map[string]map[string]string, len(data.Releases))
	for _, name := range data.ReleaseNames() {
		rc := data.Releases[name]
		releases[name] = map[string]string{"drpver": rc.DRPVer, "dapver": rc.DAPVer}
	}
	respondSuccess(w, r, map[string]interface{}{
		"default":  data.DefaultRelease,
		"releases": releases,
	}, time.Time{})
}
