// Marvin - MaNGA Survey Data Browser and API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marvin

package cube

import (
	"errors"
	"fmt"
)

// Kind classifies a cube error.
type Kind int

const (
	KindUnknown Kind = iota
	MissingIdentifier
	SourceNotFound
	AmbiguousCoordinateInput
	IncompleteCoordinate
	NoCoordinateSpecified
	CoordinateOutOfBounds
	BackingStoreLookupFailed
)

var kindNames = map[Kind]string{
	KindUnknown:              "Unknown",
	MissingIdentifier:        "MissingIdentifier",
	SourceNotFound:           "SourceNotFound",
	AmbiguousCoordinateInput: "AmbiguousCoordinateInput",
	IncompleteCoordinate:     "IncompleteCoordinate",
	NoCoordinateSpecified:    "NoCoordinateSpecified",
	CoordinateOutOfBounds:    "CoordinateOutOfBounds",
	BackingStoreLookupFailed: "BackingStoreLookupFailed",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Messages returned to API clients.
const (
	MsgMissingIdentifier = "Enter filename, plateifu, or mangaid!"
	MsgTooManyIdentifier = "Enter only one of filename, plateifu, or mangaid!"
	MsgAmbiguous         = "Either use (x, y) or (ra, dec)"
	MsgIncompletePixel   = "Specify both x and y"
	MsgIncompleteSky     = "Specify both ra and dec"
	MsgNoCoordinate      = "You need to specify either (x, y) or (ra, dec)"
	MsgOutOfBounds       = "pixel coordinates outside cube"
)

// Error is a classified cube failure.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches any *Error of the same Kind, so errors.Is(err, ErrOutOfBounds)
// holds regardless of message or cause.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

// Sentinels for errors.Is.
var (
	ErrMissingIdentifier = &Error{Kind: MissingIdentifier, Message: MsgMissingIdentifier}
	ErrSourceNotFound    = &Error{Kind: SourceNotFound, Message: "cube source not found"}
	ErrAmbiguous         = &Error{Kind: AmbiguousCoordinateInput, Message: MsgAmbiguous}
	ErrIncomplete        = &Error{Kind: IncompleteCoordinate, Message: "incomplete coordinate"}
	ErrNoCoordinate      = &Error{Kind: NoCoordinateSpecified, Message: MsgNoCoordinate}
	ErrOutOfBounds       = &Error{Kind: CoordinateOutOfBounds, Message: MsgOutOfBounds}
	ErrLookupFailed      = &Error{Kind: BackingStoreLookupFailed, Message: "backing store lookup failed"}
)

func newError(kind Kind, msg string, err error) *Error {
	return &Error{Kind: kind, Message: msg, Err: err}
}

// KindOf returns the Kind of the first *Error in err's chain, or KindUnknown.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// IsInputError reports whether err was caused by invalid caller input rather
// than a missing source or failing dependency.
func IsInputError(err error) bool {
	switch KindOf(err) {
	case MissingIdentifier, AmbiguousCoordinateInput, IncompleteCoordinate,
		NoCoordinateSpecified, CoordinateOutOfBounds:
		return true
	default:
		return false
	}
}
