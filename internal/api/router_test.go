// Marvin - MaNGA Survey Data Browser and API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marvin

package api

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRouter_ViewOrder(t *testing.T) {
	h := NewHandler(Dependencies{Config: testConfig(t)})

	var names []string
	for _, v := range h.Views() {
		names = append(names, v.Name())
	}
	if got, want := strings.Join(names, ","), "cubes,plate,spaxels,general"; got != want {
		t.Errorf("views = %s, want %s", got, want)
	}
}

func TestRouter_Health(t *testing.T) {
	env := newTestEnv(t)

	assertStatus(t, env.get(t, "/api/v1/health/live"), http.StatusOK)
	assertStatus(t, env.get(t, "/api/v1/health/ready"), http.StatusOK)

	env.store.setErr(errUnreachable)
	rec := env.get(t, "/api/v1/health/ready")
	assertStatus(t, rec, http.StatusServiceUnavailable)
	if resp := decodeResponse(t, rec); resp.Status != "not_ready" {
		t.Errorf("status = %q, want not_ready", resp.Status)
	}
}

func TestRouter_ReadyWithoutHealthCheck(t *testing.T) {
	env := newTestEnvWith(t, testConfig(t), func(d *Dependencies) { d.Health = nil })
	assertStatus(t, env.get(t, "/api/v1/health/ready"), http.StatusServiceUnavailable)
}

func TestRouter_Lib(t *testing.T) {
	cfg := testConfig(t)
	cfg.Server.LibPath = t.TempDir()
	if err := os.WriteFile(filepath.Join(cfg.Server.LibPath, "marvin.js"), []byte("// lib"), 0o600); err != nil {
		t.Fatal(err)
	}
	env := newTestEnvWith(t, cfg, func(*Dependencies) {})

	rec := env.get(t, "/marvin2/lib/marvin.js")
	assertStatus(t, rec, http.StatusOK)
	if rec.Body.String() != "// lib" {
		t.Errorf("body = %q, want %q", rec.Body.String(), "// lib")
	}

	assertStatus(t, env.get(t, "/marvin2/lib/missing.js"), http.StatusNotFound)
}

func TestRouter_Metrics(t *testing.T) {
	env := newTestEnv(t)
	assertStatus(t, env.get(t, "/marvin2/api/cubes/"), http.StatusOK)

	rec := env.get(t, "/metrics")
	assertStatus(t, rec, http.StatusOK)
	if !strings.Contains(rec.Body.String(), "marvin_api_requests_total") {
		t.Error("metrics output missing marvin_api_requests_total")
	}
}

func TestRouter_Headers(t *testing.T) {
	env := newTestEnv(t)

	rec := env.get(t, "/marvin2/api/cubes/")
	if got := rec.Header().Get("X-Content-Type-Options"); got != "nosniff" {
		t.Errorf("X-Content-Type-Options = %q, want nosniff", got)
	}
	if rec.Header().Get("X-Request-ID") == "" {
		t.Error("X-Request-ID not set")
	}
	if got := rec.Header().Get("Content-Type"); got != "application/json" {
		t.Errorf("Content-Type = %q, want application/json", got)
	}

	if id := decodeResponse(t, rec).Metadata.RequestID; id != rec.Header().Get("X-Request-ID") {
		t.Errorf("metadata request_id = %q, want header value", id)
	}
}

func TestRouter_NotFound(t *testing.T) {
	env := newTestEnv(t)

	rec := env.get(t, "/marvin2/api/nothing/")
	assertStatus(t, rec, http.StatusNotFound)
	if resp := decodeResponse(t, rec); resp.Error == nil || resp.Error.Code != ErrCodeNotFound {
		t.Errorf("error = %+v, want code %s", resp.Error, ErrCodeNotFound)
	}
}

func TestRouter_BadBody(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/marvin2/api/cubes/8485-1901/", strings.NewReader("{"), "application/json")
	assertStatus(t, rec, http.StatusBadRequest)
}
