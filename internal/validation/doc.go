// Marvin - MaNGA Survey Data Browser and API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marvin

// Package validation provides request validation using go-playground/validator v10.
//
// It wraps a thread-safe singleton validator and translates failures into the
// field-level messages the Marvin API has always returned, for example
// "Missing data for required field." or "Shorter than minimum length 4.".
// Field names come from `form` struct tags so that errors are keyed by the
// query/form parameter the client actually sent.
//
// # Quick Start
//
//	type CubeRequest struct {
//	    Name    string `form:"name" validate:"required,min=4,plateifu_pattern"`
//	    Release string `form:"release" validate:"required"`
//	}
//
//	verr := validation.ValidateStruct(&req)
//	verr = verr.Merge(validation.OneOf("release", req.Release, releases))
//	if verr != nil {
//	    // verr.FieldErrors() -> {"release": ["Missing data for required field."]}
//	}
//
// # Custom Tags
//
//   - plateifu_pattern: value matches ^[0-9-]*$ (plate-ifu or mangaid)
package validation
