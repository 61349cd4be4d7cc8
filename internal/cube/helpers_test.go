// Marvin - MaNGA Survey Data Browser and API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marvin

package cube

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"

	"github.com/tomtom215/marvin/internal/fits/fitstest"
)

// memStore is an in-memory Store that counts lookups.
type memStore struct {
	mu      sync.Mutex
	records []Record
	err     error
	calls   int
}

func (s *memStore) CubeByPlateIFU(_ context.Context, plateifu string) (*Record, error) {
	return s.find(func(r Record) bool { return r.PlateIFU == plateifu })
}

func (s *memStore) CubeByMangaID(_ context.Context, mangaid string) (*Record, error) {
	return s.find(func(r Record) bool { return r.MangaID == mangaid })
}

func (s *memStore) find(match func(Record) bool) (*Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	for _, r := range s.records {
		if match(r) {
			rec := r
			return &rec, nil
		}
	}
	return nil, ErrNoRecord
}

func (s *memStore) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

func referenceRecord() Record {
	return Record{
		PlateIFU: fitstest.PlateIFU,
		MangaID:  fitstest.MangaID,
		Plate:    fitstest.Plate,
		IFU:      "1901",
		RA:       fitstest.RA,
		Dec:      fitstest.Dec,
		Redshift: 0.0407447,
	}
}

// writeReduxCube writes a synthetic 8485-1901 cube into a fake redux tree and
// returns the redux root.
func writeReduxCube(t *testing.T, drpver string) string {
	t.Helper()
	redux := t.TempDir()
	fitstest.Write(t, ReduxPath(redux, drpver, fitstest.Plate, fitstest.PlateIFU), fitstest.DefaultSpec())
	return redux
}

// fileCube writes a synthetic cube and opens it by filename.
func fileCube(t *testing.T, spec fitstest.CubeSpec) *Cube {
	t.Helper()
	path := filepath.Join(t.TempDir(), "manga-8485-1901-LOGCUBE.fits.gz")
	fitstest.Write(t, path, spec)

	c, err := New(context.Background(), Options{Filename: path})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return c
}

func assertKind(t *testing.T, err error, want Kind) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %v error, got nil", want)
	}
	if got := KindOf(err); got != want {
		t.Fatalf("error kind = %v (%v), want %v", got, err, want)
	}
}

func assertMessage(t *testing.T, err error, want string) {
	t.Helper()
	var e *Error
	if !errors.As(err, &e) {
		t.Fatalf("error %v is not a *cube.Error", err)
	}
	if e.Message != want {
		t.Errorf("message = %q, want %q", e.Message, want)
	}
}

var errMock = errors.New("mock failure")
