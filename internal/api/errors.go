// Marvin - MaNGA Survey Data Browser and API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marvin

package api

import (
	"errors"
	"net/http"

	"github.com/tomtom215/marvin/internal/cube"
)

// cubeErrorStatus maps a cube failure to its HTTP status and error code.
func cubeErrorStatus(err error) (int, string) {
	switch cube.KindOf(err) {
	case cube.AmbiguousCoordinateInput, cube.IncompleteCoordinate, cube.NoCoordinateSpecified:
		return http.StatusBadRequest, ErrCodeInvalidCoordinate
	case cube.CoordinateOutOfBounds:
		return http.StatusBadRequest, ErrCodeOutOfBounds
	case cube.MissingIdentifier:
		return http.StatusBadRequest, ErrCodeBadRequest
	case cube.SourceNotFound:
		return http.StatusNotFound, ErrCodeCubeNotFound
	case cube.BackingStoreLookupFailed:
		if errors.Is(err, cube.ErrNoRecord) {
			return http.StatusNotFound, ErrCodeCubeNotFound
		}
		return http.StatusServiceUnavailable, ErrCodeServiceUnavailable
	default:
		return http.StatusInternalServerError, ErrCodeInternal
	}
}

// cubeErrorMessage returns the client-facing message for err. Input errors
// carry their own message; messages of other failures may name server paths
// or driver errors and are replaced.
func cubeErrorMessage(err error) string {
	var ce *cube.Error
	if !errors.As(err, &ce) {
		return "Internal server error"
	}
	switch ce.Kind {
	case cube.SourceNotFound:
		return "Cube data not found"
	case cube.BackingStoreLookupFailed:
		if errors.Is(err, cube.ErrNoRecord) {
			return ce.Message
		}
		return "Backing store unavailable"
	default:
		return ce.Message
	}
}

// respondCubeError sends the error envelope for a failure returned by the
// cube package. The kind is reported in details.
func respondCubeError(w http.ResponseWriter, r *http.Request, err error) {
	status, code := cubeErrorStatus(err)
	respondAPIError(w, r, status, &APIError{
		Code:    code,
		Message: cubeErrorMessage(err),
		Details: map[string]interface{}{"kind": cube.KindOf(err).String()},
	}, err)
}
