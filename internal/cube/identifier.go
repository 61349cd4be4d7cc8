// Marvin - MaNGA Survey Data Browser and API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marvin

package cube

import (
	"path/filepath"
	"strconv"
	"strings"
)

// IdentifierType is the kind of target name a caller supplied.
type IdentifierType int

const (
	IdentifierUnknown IdentifierType = iota
	IdentifierPlateIFU
	IdentifierMangaID
)

func (t IdentifierType) String() string {
	switch t {
	case IdentifierPlateIFU:
		return "plateifu"
	case IdentifierMangaID:
		return "mangaid"
	default:
		return "unknown"
	}
}

// ParseIdentifier classifies a name. Plate-IFUs start with a plate number of
// at least four digits (8485-1901); MaNGA IDs start with a short catalog
// prefix (1-209232, 12-193481).
func ParseIdentifier(name string) IdentifierType {
	prefix, rest, ok := strings.Cut(name, "-")
	if !ok || prefix == "" || rest == "" {
		return IdentifierUnknown
	}
	if len(prefix) >= 4 {
		return IdentifierPlateIFU
	}
	return IdentifierMangaID
}

// SplitPlateIFU returns the plate number and IFU design of a plate-IFU.
func SplitPlateIFU(plateifu string) (plate int, ifu string, ok bool) {
	p, ifu, found := strings.Cut(plateifu, "-")
	if !found {
		return 0, "", false
	}
	plate, err := strconv.Atoi(p)
	if err != nil {
		return 0, "", false
	}
	return plate, ifu, true
}

// ReduxPath returns the DRP location of a LOGCUBE:
// <redux>/<drpver>/<plate>/stack/manga-<plateifu>-LOGCUBE.fits.gz
func ReduxPath(redux, drpver string, plate int, plateifu string) string {
	return filepath.Join(redux, drpver, strconv.Itoa(plate), "stack",
		"manga-"+plateifu+"-LOGCUBE.fits.gz")
}
