// Marvin - MaNGA Survey Data Browser and API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marvin

package api

import (
	"math"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/marvin/internal/cube"
	"github.com/tomtom215/marvin/internal/middleware"
	"github.com/tomtom215/marvin/internal/validation"
)

// cubeRequest holds the arguments shared by every cube endpoint.
type cubeRequest struct {
	Name    string `form:"name" validate:"required,min=4,plateifu_pattern"`
	Release string `form:"release" validate:"required"`
}

// mangaIDRequest holds the argument of the mangaid lookup.
type mangaIDRequest struct {
	MangaID string `form:"mangaid" validate:"required,plateifu_pattern"`
}

// requestParams returns the parameters collected by the Release middleware,
// parsing them when the handler runs outside of it. A malformed body is an
// error, never an empty parameter set.
func requestParams(r *http.Request) (url.Values, error) {
	if params := middleware.ParamsFrom(r.Context()); params != nil {
		return params, nil
	}
	return middleware.ParseParams(r)
}

// respondBadParams answers a request whose parameters could not be parsed.
func respondBadParams(w http.ResponseWriter, r *http.Request, err error) {
	respondError(w, r, http.StatusBadRequest, ErrCodeBadRequest, err.Error(), err)
}

// parseCubeRequest reads and validates the cube name and release. The
// release must be given explicitly and be one of the configured releases.
func (h *Handler) parseCubeRequest(r *http.Request, params url.Values) (cubeRequest, *validation.RequestValidationError) {
	req := cubeRequest{
		Name:    chi.URLParam(r, "name"),
		Release: params.Get("release"),
	}

	verr := validation.ValidateStruct(&req)
	return req, verr.Merge(validation.OneOf("release", req.Release, h.cfg.Data.ReleaseNames()))
}

// parseCoordinateArgs reads x, y, ra and dec. Absent parameters stay nil so
// the cube package can tell which coordinate system was requested.
func parseCoordinateArgs(params url.Values) (cube.CoordinateArgs, *validation.RequestValidationError) {
	var (
		args cube.CoordinateArgs
		verr *validation.RequestValidationError
	)

	for _, p := range []struct {
		name string
		dst  **int
	}{{"x", &args.X}, {"y", &args.Y}} {
		raw := params.Get(p.name)
		if raw == "" {
			continue
		}
		v, err := strconv.Atoi(raw)
		if err != nil {
			verr = verr.Merge(validation.NotAnInteger(p.name))
			continue
		}
		*p.dst = &v
	}

	for _, p := range []struct {
		name string
		dst  **float64
	}{{"ra", &args.RA}, {"dec", &args.Dec}} {
		raw := params.Get(p.name)
		if raw == "" {
			continue
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			verr = verr.Merge(validation.NotANumber(p.name))
			continue
		}
		*p.dst = &v
	}

	return args, verr
}
