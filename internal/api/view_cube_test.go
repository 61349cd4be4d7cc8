// Marvin - MaNGA Survey Data Browser and API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marvin

package api

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"

	"github.com/tomtom215/marvin/internal/fits/fitstest"
)

type cubeData struct {
	PlateIFU string  `json:"plateifu"`
	MangaID  string  `json:"mangaid"`
	RA       float64 `json:"ra"`
	Dec      float64 `json:"dec"`
	Redshift float64 `json:"redshift"`
}

func TestCubeView_Index(t *testing.T) {
	env := newTestEnv(t)

	rec := env.get(t, "/marvin2/api/cubes/")
	assertStatus(t, rec, http.StatusOK)

	resp := decodeResponse(t, rec)
	var data string
	decodeData(t, resp, &data)
	if data != "this is a cube" {
		t.Errorf("data = %q, want %q", data, "this is a cube")
	}
	if resp.Status != "success" {
		t.Errorf("status = %q, want success", resp.Status)
	}
}

func TestCubeView_GetCube(t *testing.T) {
	env := newTestEnv(t)

	tests := []struct {
		name string
		send func(t *testing.T) *httptest.ResponseRecorder
	}{
		{"GET plateifu", func(t *testing.T) *httptest.ResponseRecorder {
			return env.get(t, "/marvin2/api/cubes/8485-1901/?release=MPL-4")
		}},
		{"POST form", func(t *testing.T) *httptest.ResponseRecorder {
			return env.postForm(t, "/marvin2/api/cubes/8485-1901/", "release=MPL-4")
		}},
		{"POST json", func(t *testing.T) *httptest.ResponseRecorder {
			return env.do(t, http.MethodPost, "/marvin2/api/cubes/8485-1901/",
				strings.NewReader(`{"release":"MPL-4"}`), "application/json")
		}},
		{"GET mangaid", func(t *testing.T) *httptest.ResponseRecorder {
			return env.get(t, "/marvin2/api/cubes/1-209232/?release=MPL-4")
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := tt.send(t)
			assertStatus(t, rec, http.StatusOK)

			resp := decodeResponse(t, rec)
			var data cubeData
			decodeData(t, resp, &data)

			want := cubeData{
				PlateIFU: fitstest.PlateIFU,
				MangaID:  fitstest.MangaID,
				RA:       fitstest.RA,
				Dec:      fitstest.Dec,
				Redshift: 0.0407447,
			}
			if data != want {
				t.Errorf("data = %+v, want %+v", data, want)
			}
			if resp.Metadata.Release != "MPL-4" || resp.Metadata.DRPVer != "v1_5_1" {
				t.Errorf("metadata release = %q/%q, want MPL-4/v1_5_1", resp.Metadata.Release, resp.Metadata.DRPVer)
			}
		})
	}
}

func TestCubeView_Validation(t *testing.T) {
	env := newTestEnv(t)

	tests := []struct {
		name   string
		target string
		want   map[string][]string
	}{
		{
			name:   "missing release",
			target: "/marvin2/api/cubes/8485-1901/",
			want:   map[string][]string{"release": {"Missing data for required field."}},
		},
		{
			name:   "bad name",
			target: "/marvin2/api/cubes/badname/?release=MPL-4",
			want:   map[string][]string{"name": {"String does not match expected pattern."}},
		},
		{
			name:   "short name",
			target: "/marvin2/api/cubes/84/?release=MPL-4",
			want:   map[string][]string{"name": {"Shorter than minimum length 4."}},
		},
		{
			name:   "unknown release",
			target: "/marvin2/api/cubes/8485-1901/?release=MPL-99",
			want:   map[string][]string{"release": {"Must be one of: MPL-4, MPL-5."}},
		},
		{
			name:   "bad name and missing release",
			target: "/marvin2/api/cubes/badname/",
			want: map[string][]string{
				"name":    {"String does not match expected pattern."},
				"release": {"Missing data for required field."},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := env.get(t, tt.target)
			assertStatus(t, rec, http.StatusUnprocessableEntity)

			resp := decodeResponse(t, rec)
			if resp.Status != "error" {
				t.Errorf("status = %q, want error", resp.Status)
			}
			if resp.Error.Code != ErrCodeValidation {
				t.Errorf("code = %q, want %q", resp.Error.Code, ErrCodeValidation)
			}
			if got := validationErrors(t, resp); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("validation_errors = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCubeView_Errors(t *testing.T) {
	tests := []struct {
		name     string
		storeErr error
		target   string
		status   int
		code     string
		kind     string
	}{
		{
			name:   "unknown plateifu",
			target: "/marvin2/api/cubes/9999-1/?release=MPL-4",
			status: http.StatusNotFound,
			code:   ErrCodeCubeNotFound,
			kind:   "BackingStoreLookupFailed",
		},
		{
			name:     "store down",
			storeErr: errors.New("connection refused"),
			target:   "/marvin2/api/cubes/8485-1901/?release=MPL-4",
			status:   http.StatusServiceUnavailable,
			code:     ErrCodeServiceUnavailable,
			kind:     "BackingStoreLookupFailed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			env.store.setErr(tt.storeErr)

			rec := env.get(t, tt.target)
			assertStatus(t, rec, tt.status)

			resp := decodeResponse(t, rec)
			if resp.Error.Code != tt.code {
				t.Errorf("code = %q, want %q", resp.Error.Code, tt.code)
			}
			if kind := resp.Error.Details["kind"]; kind != tt.kind {
				t.Errorf("kind = %v, want %q", kind, tt.kind)
			}
			if strings.Contains(resp.Error.Message, "connection refused") {
				t.Errorf("message leaks driver error: %q", resp.Error.Message)
			}
		})
	}
}
