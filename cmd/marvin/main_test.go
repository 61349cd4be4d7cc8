// Marvin - MaNGA Survey Data Browser and API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marvin

package main

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goccy/go-json"

	"github.com/tomtom215/marvin/internal/cube"
	"github.com/tomtom215/marvin/internal/fits/fitstest"
)

func writeCube(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "manga-8485-1901-LOGCUBE.fits.gz")
	fitstest.Write(t, path, fitstest.DefaultSpec())
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestInfo(t *testing.T) {
	out, err := execute(t, "info", writeCube(t))
	if err != nil {
		t.Fatalf("info: %v", err)
	}
	for _, want := range []string{"8485-1901", "1-209232", "34 x 34 x 20"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestSpectrum_PixelTable(t *testing.T) {
	out, err := execute(t, "spectrum", writeCube(t), "--x", "10", "--y", "3")
	if err != nil {
		t.Fatalf("spectrum: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(out), "\n")
	if lines[0] != "# x=10 y=3" {
		t.Errorf("header = %q", lines[0])
	}
	if len(lines) != 1+fitstest.DefaultSpec().NWave {
		t.Errorf("lines = %d, want %d", len(lines), 1+fitstest.DefaultSpec().NWave)
	}
	if !strings.HasSuffix(lines[1], "\t310") {
		t.Errorf("first row = %q, want flux 310", lines[1])
	}
}

func TestSpectrum_SkyJSON(t *testing.T) {
	out, err := execute(t, "spectrum", writeCube(t), "--ra", "232.546383", "--dec", "48.6883954", "--json")
	if err != nil {
		t.Fatalf("spectrum: %v", err)
	}

	var got struct {
		PlateIFU string    `json:"plateifu"`
		X        int       `json:"x"`
		Y        int       `json:"y"`
		Flux     []float64 `json:"flux"`
	}
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("decode: %v\n%s", err, out)
	}
	if got.PlateIFU != fitstest.PlateIFU || got.X != 9 || got.Y != 4 {
		t.Errorf("got %s (%d, %d), want %s (9, 4)", got.PlateIFU, got.X, got.Y, fitstest.PlateIFU)
	}
}

func TestSpectrum_Errors(t *testing.T) {
	path := writeCube(t)

	tests := []struct {
		name string
		args []string
		want error
	}{
		{"x only", []string{"--x", "1"}, cube.ErrIncomplete},
		{"none", nil, cube.ErrNoCoordinate},
		{"both", []string{"--x", "1", "--y", "1", "--ra", "1", "--dec", "1"}, cube.ErrAmbiguous},
		{"out of bounds", []string{"--x", "34", "--y", "0"}, cube.ErrOutOfBounds},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, append([]string{"spectrum", path}, tt.args...)...)
			if !errors.Is(err, tt.want) {
				t.Errorf("error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestSpectrum_MissingFile(t *testing.T) {
	_, err := execute(t, "spectrum", filepath.Join(t.TempDir(), "nope.fits.gz"), "--x", "0", "--y", "0")
	if !errors.Is(err, cube.ErrSourceNotFound) {
		t.Errorf("error = %v, want SourceNotFound", err)
	}
}
