// Marvin - MaNGA Survey Data Browser and API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marvin

package api

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/marvin/internal/cache"
	"github.com/tomtom215/marvin/internal/config"
	"github.com/tomtom215/marvin/internal/cube"
	"github.com/tomtom215/marvin/internal/fits/fitstest"
)

// fakeStore is an in-memory cube store and catalog.
type fakeStore struct {
	mu      sync.Mutex
	records []cube.Record
	err     error
}

func (s *fakeStore) find(match func(cube.Record) bool) (*cube.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	for _, r := range s.records {
		if match(r) {
			rec := r
			return &rec, nil
		}
	}
	return nil, cube.ErrNoRecord
}

func (s *fakeStore) CubeByPlateIFU(_ context.Context, plateifu string) (*cube.Record, error) {
	return s.find(func(r cube.Record) bool { return r.PlateIFU == plateifu })
}

func (s *fakeStore) CubeByMangaID(_ context.Context, mangaid string) (*cube.Record, error) {
	return s.find(func(r cube.Record) bool { return r.MangaID == mangaid })
}

func (s *fakeStore) MangaIDToPlateIFU(ctx context.Context, mangaid string) (string, error) {
	rec, err := s.CubeByMangaID(ctx, mangaid)
	if err != nil {
		return "", err
	}
	return rec.PlateIFU, nil
}

func (s *fakeStore) CubesByPlate(_ context.Context, plate int) ([]cube.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	out := []cube.Record{}
	for _, r := range s.records {
		if r.Plate == plate {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *fakeStore) Ping(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

func (s *fakeStore) setErr(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = err
}

func referenceRecords() []cube.Record {
	return []cube.Record{
		{
			PlateIFU: fitstest.PlateIFU,
			MangaID:  fitstest.MangaID,
			Plate:    fitstest.Plate,
			IFU:      "1901",
			RA:       fitstest.RA,
			Dec:      fitstest.Dec,
			Redshift: 0.0407447,
		},
		{
			PlateIFU: "8485-12701",
			MangaID:  "1-210962",
			Plate:    8485,
			IFU:      "12701",
			RA:       233.000,
			Dec:      48.500,
		},
	}
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		Server: config.ServerConfig{
			Base:        "marvin2",
			Environment: "development",
		},
		Data: config.DataConfig{
			ReduxPath:      t.TempDir(),
			DefaultRelease: "MPL-4",
			Releases: map[string]config.ReleaseConfig{
				"MPL-4": {DRPVer: "v1_5_1", DAPVer: "1.1.1"},
				"MPL-5": {DRPVer: "v2_0_1", DAPVer: "2.0.2"},
			},
		},
		Security: config.SecurityConfig{
			RateLimitReqs:     100,
			RateLimitWindow:   time.Minute,
			RateLimitDisabled: true,
		},
	}
}

// testEnv is a router backed by a fake store and a synthetic 8485-1901 cube
// written for MPL-4 only.
type testEnv struct {
	cfg     *config.Config
	store   *fakeStore
	handler http.Handler
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	return newTestEnvWith(t, testConfig(t), func(*Dependencies) {})
}

func newTestEnvWith(t *testing.T, cfg *config.Config, adjust func(*Dependencies)) *testEnv {
	t.Helper()
	fitstest.Write(t,
		cube.ReduxPath(cfg.Data.ReduxPath, "v1_5_1", fitstest.Plate, fitstest.PlateIFU),
		fitstest.DefaultSpec())

	store := &fakeStore{records: referenceRecords()}
	drpvers := make(map[string]string, len(cfg.Data.Releases))
	for name, rc := range cfg.Data.Releases {
		drpvers[name] = rc.DRPVer
	}
	loader := cube.NewLoader(store, cube.LoaderConfig{
		ReduxPath:   cfg.Data.ReduxPath,
		DRPVersions: drpvers,
	}, cache.NewLRU[*cube.Cube](8, time.Minute), nil)

	deps := Dependencies{
		Config:  cfg,
		Cubes:   loader,
		Catalog: store,
		Health:  store,
	}
	adjust(&deps)
	return &testEnv{cfg: cfg, store: store, handler: NewRouter(deps).SetupChi()}
}

func (e *testEnv) do(t *testing.T, method, target string, body io.Reader, contentType string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, req)
	return rec
}

func (e *testEnv) get(t *testing.T, target string) *httptest.ResponseRecorder {
	t.Helper()
	return e.do(t, http.MethodGet, target, nil, "")
}

func (e *testEnv) postForm(t *testing.T, target, form string) *httptest.ResponseRecorder {
	t.Helper()
	return e.do(t, http.MethodPost, target, strings.NewReader(form), "application/x-www-form-urlencoded")
}

// testResponse mirrors APIResponse with the data left undecoded.
type testResponse struct {
	Status   string          `json:"status"`
	Data     json.RawMessage `json:"data"`
	Metadata Metadata        `json:"metadata"`
	Error    *APIError       `json:"error"`
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) testResponse {
	t.Helper()
	var resp testResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v; body = %s", err, rec.Body.String())
	}
	return resp
}

func decodeData(t *testing.T, resp testResponse, dst interface{}) {
	t.Helper()
	if err := json.Unmarshal(resp.Data, dst); err != nil {
		t.Fatalf("decode data: %v; data = %s", err, resp.Data)
	}
}

func assertStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rec.Code != want {
		t.Fatalf("status = %d, want %d; body = %s", rec.Code, want, rec.Body.String())
	}
}

// validationErrors returns details.validation_errors of an error response.
func validationErrors(t *testing.T, resp testResponse) map[string][]string {
	t.Helper()
	if resp.Error == nil {
		t.Fatal("response has no error")
	}
	raw, ok := resp.Error.Details["validation_errors"].(map[string]interface{})
	if !ok {
		t.Fatalf("details.validation_errors missing: %#v", resp.Error.Details)
	}
	out := make(map[string][]string, len(raw))
	for field, msgs := range raw {
		list, _ := msgs.([]interface{})
		for _, m := range list {
			s, _ := m.(string)
			out[field] = append(out[field], s)
		}
	}
	return out
}

var errUnreachable = errors.New("store unreachable")
