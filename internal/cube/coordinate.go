// Marvin - MaNGA Survey Data Browser and API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marvin

package cube

import "fmt"

// Coordinate is a resolved spatial position: PixelCoord or SkyCoord.
type Coordinate interface {
	fmt.Stringer
	isCoordinate()
}

// PixelCoord addresses a spaxel by 0-based column (X) and row (Y).
type PixelCoord struct {
	X, Y int
}

// SkyCoord addresses a position by right ascension and declination in degrees.
type SkyCoord struct {
	RA, Dec float64
}

func (PixelCoord) isCoordinate() {}
func (SkyCoord) isCoordinate()   {}

func (p PixelCoord) String() string { return fmt.Sprintf("(x=%d, y=%d)", p.X, p.Y) }
func (s SkyCoord) String() string   { return fmt.Sprintf("(ra=%g, dec=%g)", s.RA, s.Dec) }

// CoordinateArgs is optional, unvalidated coordinate input as received from
// a caller. Nil fields were not supplied.
type CoordinateArgs struct {
	X, Y    *int
	RA, Dec *float64
}

// Pixel returns args with x and y set.
func Pixel(x, y int) CoordinateArgs {
	return CoordinateArgs{X: &x, Y: &y}
}

// Sky returns args with ra and dec set.
func Sky(ra, dec float64) CoordinateArgs {
	return CoordinateArgs{RA: &ra, Dec: &dec}
}

// Resolve validates the argument combination and returns the coordinate.
// Checks run in a fixed order: mixing systems, incomplete pixel pair,
// incomplete sky pair, nothing supplied.
func (a CoordinateArgs) Resolve() (Coordinate, error) {
	anyPixel := a.X != nil || a.Y != nil
	anySky := a.RA != nil || a.Dec != nil

	switch {
	case anyPixel && anySky:
		return nil, newError(AmbiguousCoordinateInput, MsgAmbiguous, nil)
	case anyPixel && (a.X == nil || a.Y == nil):
		return nil, newError(IncompleteCoordinate, MsgIncompletePixel, nil)
	case anySky && (a.RA == nil || a.Dec == nil):
		return nil, newError(IncompleteCoordinate, MsgIncompleteSky, nil)
	case anyPixel:
		return PixelCoord{X: *a.X, Y: *a.Y}, nil
	case anySky:
		return SkyCoord{RA: *a.RA, Dec: *a.Dec}, nil
	default:
		return nil, newError(NoCoordinateSpecified, MsgNoCoordinate, nil)
	}
}

// system names the coordinate system for metrics labels.
func (a CoordinateArgs) system() string {
	switch {
	case a.X != nil || a.Y != nil:
		if a.RA != nil || a.Dec != nil {
			return "mixed"
		}
		return "pixel"
	case a.RA != nil || a.Dec != nil:
		return "sky"
	default:
		return "none"
	}
}
