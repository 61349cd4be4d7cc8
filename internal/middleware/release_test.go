// Marvin - MaNGA Survey Data Browser and API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marvin

package middleware

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/tomtom215/marvin/internal/config"
	"github.com/tomtom215/marvin/internal/logging"
)

func testDataConfig() config.DataConfig {
	return config.DataConfig{
		DefaultRelease: "MPL-4",
		Releases: map[string]config.ReleaseConfig{
			"MPL-4": {DRPVer: "v1_5_1", DAPVer: "1.1.1"},
			"MPL-5": {DRPVer: "v2_0_1", DAPVer: "2.0.2"},
		},
	}
}

// serveRelease runs req through the Release middleware and returns what the
// handler observed.
func serveRelease(t *testing.T, req *http.Request) (RequestConfig, url.Values, *httptest.ResponseRecorder) {
	t.Helper()
	var (
		rc     RequestConfig
		params url.Values
	)
	h := Release(testDataConfig())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rc = RequestConfigFrom(r.Context())
		params = ParamsFrom(r.Context())
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rc, params, rec
}

func TestRelease_Resolution(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  RequestConfig
	}{
		{"default", "", RequestConfig{Release: "MPL-4", DRPVer: "v1_5_1", DAPVer: "1.1.1", Known: true}},
		{"explicit", "?release=MPL-5", RequestConfig{Release: "MPL-5", DRPVer: "v2_0_1", DAPVer: "2.0.2", Known: true}},
		{"unknown", "?release=DR99", RequestConfig{Release: "DR99"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rc, _, _ := serveRelease(t, httptest.NewRequest(http.MethodGet, "/cubes/8485-1901/"+tt.query, nil))
			if rc != tt.want {
				t.Errorf("RequestConfig = %+v, want %+v", rc, tt.want)
			}
		})
	}
}

func TestRelease_FormBody(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/cubes/8485-1901/",
		strings.NewReader("release=MPL-5&x=10&y=5"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	rc, params, _ := serveRelease(t, req)
	if rc.Release != "MPL-5" || rc.DRPVer != "v2_0_1" {
		t.Errorf("RequestConfig = %+v", rc)
	}
	if params.Get("x") != "10" || params.Get("y") != "5" {
		t.Errorf("params = %v", params)
	}
}

func TestRelease_JSONBody(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/cubes/8485-1901/spectra/",
		strings.NewReader(`{"release": "MPL-4", "ra": 232.546383, "dec": 48.6883954, "flags": [1, 2], "note": null}`))
	req.Header.Set("Content-Type", "application/json; charset=utf-8")

	rc, params, _ := serveRelease(t, req)
	if rc.Release != "MPL-4" {
		t.Errorf("Release = %q", rc.Release)
	}
	if params.Get("ra") != "232.546383" || params.Get("dec") != "48.6883954" {
		t.Errorf("params = %v", params)
	}
	if got := params["flags"]; len(got) != 2 || got[0] != "1" || got[1] != "2" {
		t.Errorf("flags = %v", got)
	}
	if _, ok := params["note"]; ok {
		t.Error("null values should be treated as absent")
	}
}

func TestRelease_QueryTakesPrecedence(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/cubes/8485-1901/?release=MPL-5",
		strings.NewReader(`{"release": "MPL-4"}`))
	req.Header.Set("Content-Type", "application/json")

	rc, _, _ := serveRelease(t, req)
	if rc.Release != "MPL-5" {
		t.Errorf("Release = %q, want MPL-5", rc.Release)
	}
}

func TestRelease_InvalidJSON(t *testing.T) {
	tests := []string{`{"release": `, `{"x": {"nested": 1}}`, `[1, 2]`}
	for _, body := range tests {
		req := httptest.NewRequest(http.MethodPost, "/cubes/", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")

		_, _, rec := serveRelease(t, req)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("body %q: status = %d, want 400", body, rec.Code)
		}
	}
}

func TestRelease_EmptyJSONBody(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/cubes/", strings.NewReader(""))
	req.Header.Set("Content-Type", "application/json")

	rc, _, rec := serveRelease(t, req)
	if rec.Code != http.StatusOK || rc.Release != "MPL-4" {
		t.Errorf("status = %d, release = %q", rec.Code, rc.Release)
	}
}

func TestRequestConfigFrom_Missing(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if rc := RequestConfigFrom(req.Context()); rc != (RequestConfig{}) {
		t.Errorf("RequestConfigFrom() = %+v, want zero value", rc)
	}
	if p := ParamsFrom(req.Context()); p != nil {
		t.Errorf("ParamsFrom() = %v, want nil", p)
	}
}

func TestRelease_TagsLogContext(t *testing.T) {
	var got string
	h := Release(testDataConfig())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = logging.ReleaseFromContext(r.Context())
	}))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/cubes/8485-1901/?release=MPL-5", nil))
	if got != "MPL-5" {
		t.Errorf("log context release = %q, want MPL-5", got)
	}
}
