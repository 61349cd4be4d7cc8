// Marvin - MaNGA Survey Data Browser and API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marvin

package fits

import (
	"math/big"
	"strconv"
	"strings"

	"github.com/astrogo/fitsio"
)

// Header is an immutable snapshot of FITS header keywords.
type Header struct {
	values map[string]interface{}
}

func newHeader(h *fitsio.Header) Header {
	hdr := Header{values: make(map[string]interface{})}
	if h == nil {
		return hdr
	}
	for _, key := range h.Keys() {
		if card := h.Get(key); card != nil && card.Value != nil {
			hdr.values[strings.ToUpper(key)] = card.Value
		}
	}
	return hdr
}

// Merge returns a header holding h's keywords, with other's keywords filling
// the gaps.
func (h Header) Merge(other Header) Header {
	out := Header{values: make(map[string]interface{}, len(h.values)+len(other.values))}
	for k, v := range other.values {
		out.values[k] = v
	}
	for k, v := range h.values {
		out.values[k] = v
	}
	return out
}

// Has reports whether the keyword is present.
func (h Header) Has(key string) bool {
	_, ok := h.values[strings.ToUpper(key)]
	return ok
}

// Float returns a numeric keyword as float64.
func (h Header) Float(key string) (float64, bool) {
	switch v := h.values[strings.ToUpper(key)].(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case *big.Int:
		f, _ := new(big.Float).SetInt(v).Float64()
		return f, true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		return f, err == nil
	default:
		return 0, false
	}
}

// Int returns an integer keyword. Float values are accepted when integral.
func (h Header) Int(key string) (int, bool) {
	switch v := h.values[strings.ToUpper(key)].(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case float64:
		if v == float64(int(v)) {
			return int(v), true
		}
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(v))
		return n, err == nil
	}
	return 0, false
}

// String returns a keyword as a trimmed string. Numbers are formatted.
func (h Header) String(key string) (string, bool) {
	switch v := h.values[strings.ToUpper(key)].(type) {
	case string:
		return strings.TrimSpace(v), true
	case int:
		return strconv.Itoa(v), true
	case int64:
		return strconv.FormatInt(v, 10), true
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64), true
	default:
		return "", false
	}
}
